package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"helishuttle/internal/domain"
	"helishuttle/internal/domain/models"
	"helishuttle/internal/utils"
)

// SlotRef is how the booking page echoes back a chosen slot.
type SlotRef struct {
	ID models.FlexInt `json:"id"`
}

// CreateBookingRequest is the confirmation payload. Fare fields sent by the
// client are not read; totals are recomputed.
type CreateBookingRequest struct {
	TripType         models.TripType          `json:"tripType"`
	From             string                   `json:"from"`
	To               string                   `json:"to"`
	DepartureDate    string                   `json:"departureDate"`
	ReturnDate       string                   `json:"returnDate"`
	PackageOption    models.PackageOption     `json:"packageOption"`
	Passengers       models.FlexInt           `json:"passengers"`
	PassengerDetails []models.PassengerDetail `json:"passengerDetails"`

	SelectedFlightID         models.FlexInt `json:"selectedFlightId"`
	SelectedFlightOutboundID models.FlexInt `json:"selectedFlightOutboundId"`
	SelectedFlightReturnID   models.FlexInt `json:"selectedFlightReturnId"`
	SelectedFlight           *SlotRef       `json:"selectedFlight"`
	SelectedFlightOutbound   *SlotRef       `json:"selectedFlightOutbound"`
	SelectedFlightReturn     *SlotRef       `json:"selectedFlightReturn"`
}

type PaymentReferenceResult struct {
	BookingID      int64  `json:"bookingId"`
	TransactionRef string `json:"transactionRef"`
	WhatsAppLink   string `json:"whatsappLink"`
}

var passengerValidator = newPassengerValidator()

func newPassengerValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type BookingService struct {
	Bookings  BookingStore
	Slots     SlotStore
	Payments  PaymentService
	RequestID string
}

func (s BookingService) bookings() BookingStore { return bookingStoreOrDefault(s.Bookings) }
func (s BookingService) slots() SlotStore       { return slotStoreOrDefault(s.Slots) }

func (s BookingService) Create(ctx context.Context, req CreateBookingRequest) (models.CustomerBooking, error) {
	b, weights, err := s.validate(req)
	if err != nil {
		return models.CustomerBooking{}, err
	}

	if b.TripType == models.TripRoundTrip {
		out, err := s.resolveLeg(ctx, pickID(req.SelectedFlightOutboundID, req.SelectedFlightOutbound), "selectedFlightOutbound", b.From, b.To, b.DepartureDate, b.Passengers)
		if err != nil {
			return models.CustomerBooking{}, err
		}
		ret, err := s.resolveLeg(ctx, pickID(req.SelectedFlightReturnID, req.SelectedFlightReturn), "selectedFlightReturn", b.To, b.From, b.ReturnDate, b.Passengers)
		if err != nil {
			return models.CustomerBooking{}, err
		}
		b.SelectedFlightOutbound, b.SelectedFlightReturn = &out, &ret
	} else {
		leg, err := s.resolveLeg(ctx, pickID(req.SelectedFlightID, req.SelectedFlight), "selectedFlight", b.From, b.To, b.DepartureDate, b.Passengers)
		if err != nil {
			return models.CustomerBooking{}, err
		}
		b.SelectedFlight = &leg
	}

	quote, err := domain.Quote(b.TripType, b.PackageOption, b.Passengers, weights)
	if err != nil {
		return models.CustomerBooking{}, err
	}
	b.PackageOption = quote.PackageOption
	b.BaseFare = quote.BaseFare
	b.OverweightFees = quote.OverweightFees
	b.FinalTotal = quote.FinalTotal
	b.PaymentStatus = models.PaymentPending

	if err := s.bookings().Create(ctx, &b); err != nil {
		if domain.IsConflict(err) || domain.IsValidation(err) {
			return models.CustomerBooking{}, err
		}
		return models.CustomerBooking{}, domain.InternalError{Msg: "could not save booking", Err: err}
	}
	utils.LogEvent(s.RequestID, "bookings", "create", fmt.Sprintf("booking_id=%d trip=%s pax=%d total=%d", b.ID, b.TripType, b.Passengers, b.FinalTotal))
	return b, nil
}

func (s BookingService) validate(req CreateBookingRequest) (models.CustomerBooking, []int, error) {
	b := models.CustomerBooking{
		TripType:      req.TripType,
		From:          strings.TrimSpace(req.From),
		To:            strings.TrimSpace(req.To),
		DepartureDate: strings.TrimSpace(req.DepartureDate),
		PackageOption: req.PackageOption,
		Passengers:    req.Passengers.Int(),
	}
	if !b.TripType.Valid() {
		return b, nil, domain.ValidationError{Field: "tripType", Msg: "must be oneWay or roundTrip"}
	}
	if b.From == "" || b.To == "" {
		return b, nil, domain.ValidationError{Field: "from", Msg: "origin and destination are required"}
	}
	if b.From == b.To {
		return b, nil, domain.ValidationError{Field: "to", Msg: "must differ from origin"}
	}
	if !utils.IsDate(b.DepartureDate) {
		return b, nil, domain.ValidationError{Field: "departureDate", Msg: "must be YYYY-MM-DD"}
	}
	if b.TripType == models.TripRoundTrip {
		b.ReturnDate = strings.TrimSpace(req.ReturnDate)
		if !utils.IsDate(b.ReturnDate) {
			return b, nil, domain.ValidationError{Field: "returnDate", Msg: "must be YYYY-MM-DD"}
		}
		if b.ReturnDate < b.DepartureDate {
			return b, nil, domain.ValidationError{Field: "returnDate", Msg: "must not be before departure"}
		}
	} else {
		b.PackageOption = ""
	}

	if b.Passengers == 0 {
		b.Passengers = len(req.PassengerDetails)
	}
	if b.Passengers < 1 || b.Passengers > models.MaxSeatsPerSlot {
		return b, nil, domain.ValidationError{Field: "passengers", Msg: fmt.Sprintf("must be between 1 and %d", models.MaxSeatsPerSlot)}
	}
	if len(req.PassengerDetails) != b.Passengers {
		return b, nil, domain.ValidationError{Field: "passengerDetails", Msg: fmt.Sprintf("expected %d passengers, got %d", b.Passengers, len(req.PassengerDetails))}
	}

	weights := make([]int, 0, b.Passengers)
	b.PassengerDetails = make([]models.PassengerDetail, 0, b.Passengers)
	for i, p := range req.PassengerDetails {
		p = cleanPassenger(p)
		if err := passengerValidator.Struct(p); err != nil {
			return b, nil, passengerError(i, err)
		}
		b.PassengerDetails = append(b.PassengerDetails, p)
		weights = append(weights, p.Weight.Int())
	}
	return b, weights, nil
}

func cleanPassenger(p models.PassengerDetail) models.PassengerDetail {
	p.Name = utils.NormalizeSpace(p.Name)
	p.Gender = strings.TrimSpace(p.Gender)
	p.Email = strings.TrimSpace(p.Email)
	p.Mobile = strings.TrimSpace(p.Mobile)
	p.Nationality = utils.NormalizeSpace(p.Nationality)
	p.IdentityCardType = strings.TrimSpace(p.IdentityCardType)
	p.IdentityCardImageURL = strings.TrimSpace(p.IdentityCardImageURL)
	return p
}

func passengerError(i int, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.ValidationError{Field: fmt.Sprintf("passengerDetails[%d]", i), Msg: err.Error(), Err: err}
	}
	fe := verrs[0]
	return domain.ValidationError{
		Field: fmt.Sprintf("passengerDetails[%d].%s", i, fe.Field()),
		Msg:   describeRule(fe),
		Err:   err,
	}
}

func describeRule(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "len":
		return fmt.Sprintf("must be %s digits", fe.Param())
	case "numeric":
		return "must contain digits only"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "url":
		return "must be a URL"
	default:
		return "is invalid"
	}
}

func pickID(id models.FlexInt, ref *SlotRef) int64 {
	if id > 0 {
		return int64(id)
	}
	if ref != nil && ref.ID > 0 {
		return int64(ref.ID)
	}
	return 0
}

// resolveLeg loads the chosen slot and checks it flies the requested leg with
// room for the party. The repository re-checks seats atomically on insert.
func (s BookingService) resolveLeg(ctx context.Context, id int64, field, from, to, date string, passengers int) (models.Slot, error) {
	if id <= 0 {
		return models.Slot{}, domain.ValidationError{Field: field, Msg: "is required"}
	}
	slot, err := s.slots().GetByID(ctx, id)
	if err != nil {
		return models.Slot{}, err
	}
	if slot.From != from || slot.To != to || slot.Date != date {
		return models.Slot{}, domain.ValidationError{Field: field, Msg: fmt.Sprintf("slot %d does not fly %s -> %s on %s", id, from, to, date)}
	}
	if !domain.CanSeat(slot, passengers) {
		return models.Slot{}, domain.ConflictError{Resource: "slot", Msg: fmt.Sprintf("only %d seats left on slot %d", slot.SeatsAvailable, id)}
	}
	return slot, nil
}

// List returns every booking, or only those flying on date when it is set.
func (s BookingService) List(ctx context.Context, date string) ([]models.CustomerBooking, error) {
	date = strings.TrimSpace(date)
	if date != "" && !utils.IsDate(date) {
		return nil, domain.ValidationError{Field: "date", Msg: "must be YYYY-MM-DD"}
	}
	all, err := s.bookings().List(ctx)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	if date == "" {
		return all, nil
	}
	out := []models.CustomerBooking{}
	for _, b := range all {
		if b.TouchesDate(date) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s BookingService) Get(ctx context.Context, id int64) (models.CustomerBooking, error) {
	return s.bookings().GetByID(ctx, id)
}

func (s BookingService) Delete(ctx context.Context, id int64) error {
	if err := s.bookings().Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "bookings", "delete", fmt.Sprintf("booking_id=%d", id))
	return nil
}

// PaymentInstructions loads the booking and builds its UPI/bank details.
func (s BookingService) PaymentInstructions(ctx context.Context, id int64) (PaymentInstructions, error) {
	b, err := s.bookings().GetByID(ctx, id)
	if err != nil {
		return PaymentInstructions{}, err
	}
	return s.Payments.Instructions(b)
}

// SubmitPaymentReference stores the transaction id suffix and returns the
// WhatsApp link the customer uses to confirm payment.
func (s BookingService) SubmitPaymentReference(ctx context.Context, id int64, suffix string) (PaymentReferenceResult, error) {
	ref, err := ValidateReference(suffix)
	if err != nil {
		return PaymentReferenceResult{}, err
	}
	if _, err := s.bookings().GetByID(ctx, id); err != nil {
		return PaymentReferenceResult{}, err
	}
	link, err := s.Payments.WhatsAppLink(id, ref)
	if err != nil {
		return PaymentReferenceResult{}, err
	}
	if err := s.bookings().SetPaymentReference(ctx, id, ref, models.PaymentReferenceSubmitted); err != nil {
		return PaymentReferenceResult{}, err
	}
	utils.LogEvent(s.RequestID, "payments", "reference", fmt.Sprintf("booking_id=%d", id))
	return PaymentReferenceResult{BookingID: id, TransactionRef: ref, WhatsAppLink: link}, nil
}
