package services

import (
	"context"
	"fmt"
	"strings"

	"helishuttle/internal/domain"
	"helishuttle/internal/domain/models"
	"helishuttle/internal/utils"
)

// CreateSlotRequest is the admin "Add Slot" form. RouteType wins over
// explicit From/To when both are sent.
type CreateSlotRequest struct {
	RouteType      models.RouteType `json:"routeType"`
	From           string           `json:"from"`
	To             string           `json:"to"`
	Date           string           `json:"date"`
	DepartureTime  string           `json:"departureTime"`
	ArrivalTime    string           `json:"arrivalTime"`
	SeatsAvailable models.FlexInt   `json:"seatsAvailable"`
	Price          int64            `json:"price"`
	Notes          string           `json:"notes"`
}

type SlotService struct {
	Slots     SlotStore
	RequestID string
}

func (s SlotService) store() SlotStore { return slotStoreOrDefault(s.Slots) }

func (s SlotService) Create(ctx context.Context, req CreateSlotRequest) (models.Slot, error) {
	slot, err := BuildSlot(req)
	if err != nil {
		return models.Slot{}, err
	}
	created, err := s.store().Create(ctx, slot)
	if err != nil {
		return models.Slot{}, domain.InternalError{Msg: "could not save slot", Err: err}
	}
	utils.LogEvent(s.RequestID, "slots", "create", fmt.Sprintf("slot_id=%d %s->%s %s %s", created.ID, created.From, created.To, created.Date, created.Time))
	return created, nil
}

// BuildSlot validates the form and fills Time, Duration and the default notes.
func BuildSlot(req CreateSlotRequest) (models.Slot, error) {
	from, to := strings.TrimSpace(req.From), strings.TrimSpace(req.To)
	if req.RouteType != "" {
		var err error
		if from, to, err = domain.RouteEndpoints(req.RouteType); err != nil {
			return models.Slot{}, err
		}
	}
	if from == "" || to == "" {
		return models.Slot{}, domain.ValidationError{Field: "routeType", Msg: "route is required"}
	}
	if strings.EqualFold(from, to) {
		return models.Slot{}, domain.ValidationError{Field: "to", Msg: "must differ from origin"}
	}

	date := strings.TrimSpace(req.Date)
	if !utils.IsDate(date) {
		return models.Slot{}, domain.ValidationError{Field: "date", Msg: "must be YYYY-MM-DD"}
	}

	dep, arr := strings.TrimSpace(req.DepartureTime), strings.TrimSpace(req.ArrivalTime)
	minutes, err := domain.FlightDuration(dep, arr)
	if err != nil {
		return models.Slot{}, err
	}
	// both parsed above
	dep, _ = domain.FormatClock(dep)
	arr, _ = domain.FormatClock(arr)

	seats := req.SeatsAvailable.Int()
	if seats < 1 || seats > models.MaxSeatsPerSlot {
		return models.Slot{}, domain.ValidationError{Field: "seatsAvailable", Msg: fmt.Sprintf("must be between 1 and %d", models.MaxSeatsPerSlot)}
	}
	if req.Price < 0 {
		return models.Slot{}, domain.ValidationError{Field: "price", Msg: "must not be negative"}
	}

	notes := utils.NormalizeSpace(req.Notes)
	if notes == "" {
		notes = domain.SeatNote(seats)
	}

	return models.Slot{
		From:           from,
		To:             to,
		Date:           date,
		Time:           dep + " - " + arr,
		Duration:       fmt.Sprintf("%d minutes", minutes),
		SeatsAvailable: seats,
		Price:          req.Price,
		Notes:          notes,
	}, nil
}

// List returns slots sorted by date then departure time.
func (s SlotService) List(ctx context.Context, f models.SlotFilter) ([]models.Slot, error) {
	if f.Date != "" && !utils.IsDate(f.Date) {
		return nil, domain.ValidationError{Field: "date", Msg: "must be YYYY-MM-DD"}
	}
	slots, err := s.store().List(ctx, f)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	domain.SortByDeparture(slots)
	return slots, nil
}

func (s SlotService) Get(ctx context.Context, id int64) (models.Slot, error) {
	return s.store().GetByID(ctx, id)
}

func (s SlotService) Delete(ctx context.Context, id int64) error {
	if err := s.store().Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "slots", "delete", fmt.Sprintf("slot_id=%d", id))
	return nil
}
