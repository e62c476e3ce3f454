package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"helishuttle/internal/domain/models"
)

// MatchSlots keeps slots whose from, to and date equal the query exactly.
func MatchSlots(slots []models.Slot, from, to, date string) []models.Slot {
	out := []models.Slot{}
	for _, s := range slots {
		if s.From == from && s.To == to && s.Date == date {
			out = append(out, s)
		}
	}
	return out
}

// MatchRoundTrip returns the outbound legs (from→to on departureDate) and the
// return legs (to→from on returnDate).
func MatchRoundTrip(slots []models.Slot, from, to, departureDate, returnDate string) (outbound, inbound []models.Slot) {
	return MatchSlots(slots, from, to, departureDate), MatchSlots(slots, to, from, returnDate)
}

func CanSeat(s models.Slot, passengers int) bool {
	return passengers > 0 && s.SeatsAvailable >= passengers
}

func SeatBandFor(seats int) models.SeatBand {
	switch {
	case seats <= 0:
		return models.SeatBandSoldOut
	case seats <= 2:
		return models.SeatBandLastSeats
	case seats < models.MaxSeatsPerSlot:
		return models.SeatBandFilling
	default:
		return models.SeatBandOpen
	}
}

// Annotate marks each slot as selectable for the given party size.
func Annotate(slots []models.Slot, passengers int) []models.SlotView {
	out := make([]models.SlotView, 0, len(slots))
	for _, s := range slots {
		out = append(out, models.SlotView{
			Slot:       s,
			Selectable: CanSeat(s, passengers),
			SeatBand:   SeatBandFor(s.SeatsAvailable),
		})
	}
	return out
}

// SortByDeparture orders slots by date, then by the departure half of Time.
// Slots with unparseable times sort last within their date.
func SortByDeparture(slots []models.Slot) {
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].Date != slots[j].Date {
			return slots[i].Date < slots[j].Date
		}
		return departureMinutes(slots[i].Time) < departureMinutes(slots[j].Time)
	})
}

func departureMinutes(window string) int {
	dep, _, _ := strings.Cut(window, "-")
	m, err := ClockMinutes(dep)
	if err != nil {
		return 24 * 60
	}
	return m
}

// ClockMinutes parses "HH:MM" into minutes after midnight.
func ClockMinutes(hhmm string) (int, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(hhmm), ":")
	if !ok {
		return 0, ValidationError{Field: "time", Msg: fmt.Sprintf("%q is not HH:MM", hhmm)}
	}
	if !clockPart(h) || !clockPart(m) {
		return 0, ValidationError{Field: "time", Msg: fmt.Sprintf("%q is not HH:MM", hhmm)}
	}
	hour, err1 := strconv.Atoi(h)
	minute, err2 := strconv.Atoi(m)
	if err1 != nil || err2 != nil || hour > 23 || minute > 59 {
		return 0, ValidationError{Field: "time", Msg: fmt.Sprintf("%q is not HH:MM", hhmm)}
	}
	return hour*60 + minute, nil
}

func clockPart(s string) bool {
	if len(s) == 0 || len(s) > 2 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatClock rewrites a valid time as zero-padded "HH:MM".
func FormatClock(hhmm string) (string, error) {
	mins, err := ClockMinutes(hhmm)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60), nil
}

// FlightDuration returns minutes from departure to arrival, wrapping past midnight.
func FlightDuration(departure, arrival string) (int, error) {
	dep, err := ClockMinutes(departure)
	if err != nil {
		return 0, ValidationError{Field: "departureTime", Msg: "must be HH:MM", Err: err}
	}
	arr, err := ClockMinutes(arrival)
	if err != nil {
		return 0, ValidationError{Field: "arrivalTime", Msg: "must be HH:MM", Err: err}
	}
	diff := arr - dep
	if diff < 0 {
		diff += 24 * 60
	}
	return diff, nil
}

// RouteEndpoints maps the admin direction switch to from/to places.
func RouteEndpoints(rt models.RouteType) (from, to string, err error) {
	switch rt {
	case models.RouteHelipadToAirport:
		return models.PlaceHelipad, models.PlaceAirport, nil
	case models.RouteAirportToHelipad:
		return models.PlaceAirport, models.PlaceHelipad, nil
	default:
		return "", "", ValidationError{Field: "routeType", Msg: "must be helipadToAirport or airportToHelipad"}
	}
}

// SeatNote is the default notes text shown on a slot card.
func SeatNote(seats int) string {
	return fmt.Sprintf("Seat Left %d", seats)
}
