package services

import (
	"context"
	"strings"

	"helishuttle/internal/domain"
	"helishuttle/internal/domain/models"
	"helishuttle/internal/utils"
)

type DashboardService struct {
	Bookings BookingStore
	Slots    SlotStore
}

// Summary totals every booking and lists the slots flying on date (today
// when empty), earliest departure first.
func (s DashboardService) Summary(ctx context.Context, date string) (models.DashboardSummary, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		date = utils.Today()
	}
	if !utils.IsDate(date) {
		return models.DashboardSummary{}, domain.ValidationError{Field: "date", Msg: "must be YYYY-MM-DD"}
	}

	bookings, err := bookingStoreOrDefault(s.Bookings).List(ctx)
	if err != nil {
		return models.DashboardSummary{}, domain.InternalError{Err: err}
	}
	slots, err := slotStoreOrDefault(s.Slots).List(ctx, models.SlotFilter{Date: date})
	if err != nil {
		return models.DashboardSummary{}, domain.InternalError{Err: err}
	}
	return Summarize(date, bookings, slots), nil
}

func Summarize(date string, bookings []models.CustomerBooking, slots []models.Slot) models.DashboardSummary {
	out := models.DashboardSummary{Date: date}
	for _, b := range bookings {
		out.TotalSeatsBooked += b.Passengers
		out.TotalPayment += b.FinalTotal
	}

	onDate := []models.Slot{}
	for _, sl := range slots {
		if sl.Date == date {
			onDate = append(onDate, sl)
		}
	}
	domain.SortByDeparture(onDate)
	for _, sl := range onDate {
		out.SeatsLeft += sl.SeatsAvailable
		if sl.SeatsAvailable > 0 {
			out.FlightsLeftToFly++
		}
	}
	out.Slots = domain.Annotate(onDate, 1)
	return out
}
