package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FlexInt accepts 72, "72" and "" (as 0). Form inputs arrive as strings.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || string(b) == "null":
		*n = 0
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("not a whole number: %q", s)
		}
		*n = FlexInt(v)
		return nil
	default:
		var v int
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*n = FlexInt(v)
		return nil
	}
}

func (n FlexInt) Int() int { return int(n) }

type PassengerDetail struct {
	Name                 string  `json:"name" validate:"required"`
	Age                  FlexInt `json:"age" validate:"min=1,max=120"`
	Gender               string  `json:"gender" validate:"oneof=Male Female Other"`
	Email                string  `json:"email" validate:"required,email"`
	Mobile               string  `json:"mobile" validate:"required,len=10,numeric"`
	Nationality          string  `json:"nationality" validate:"required"`
	Weight               FlexInt `json:"weight" validate:"min=1,max=300"`
	IdentityCardType     string  `json:"identityCardType" validate:"oneof=Passport Aadhar PAN"`
	IdentityCardImageURL string  `json:"identityCardImageUrl" validate:"omitempty,url"`
}

// CustomerBooking is a confirmed customer reservation. One-way bookings carry
// SelectedFlight; round trips carry the outbound and return legs.
type CustomerBooking struct {
	ID                     int64             `json:"id"`
	TripType               TripType          `json:"tripType"`
	From                   string            `json:"from"`
	To                     string            `json:"to"`
	DepartureDate          string            `json:"departureDate"`
	ReturnDate             string            `json:"returnDate,omitempty"`
	PackageOption          PackageOption     `json:"packageOption,omitempty"`
	Passengers             int               `json:"passengers"`
	BaseFare               int64             `json:"baseFare"`
	OverweightFees         int64             `json:"overweightFees"`
	FinalTotal             int64             `json:"finalTotal"`
	PassengerDetails       []PassengerDetail `json:"passengerDetails"`
	SelectedFlight         *Slot             `json:"selectedFlight,omitempty"`
	SelectedFlightOutbound *Slot             `json:"selectedFlightOutbound,omitempty"`
	SelectedFlightReturn   *Slot             `json:"selectedFlightReturn,omitempty"`
	TransactionRef         string            `json:"transactionRef,omitempty"`
	PaymentStatus          PaymentStatus     `json:"paymentStatus"`
	CreatedAt              time.Time         `json:"createdAt"`
}

// Legs returns the slots this booking holds seats on.
func (b CustomerBooking) Legs() []*Slot {
	out := []*Slot{}
	for _, s := range []*Slot{b.SelectedFlight, b.SelectedFlightOutbound, b.SelectedFlightReturn} {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// TouchesDate reports whether the booking flies on date: the departure date,
// or the return date of a round trip.
func (b CustomerBooking) TouchesDate(date string) bool {
	if b.DepartureDate == date {
		return true
	}
	return b.TripType == TripRoundTrip && b.ReturnDate != "" && b.ReturnDate == date
}
