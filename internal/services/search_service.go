package services

import (
	"context"
	"fmt"
	"strings"

	"helishuttle/internal/domain"
	"helishuttle/internal/domain/models"
	"helishuttle/internal/utils"
)

type SearchQuery struct {
	TripType      models.TripType      `form:"tripType" json:"tripType"`
	From          string               `form:"from" json:"from"`
	To            string               `form:"to" json:"to"`
	DepartureDate string               `form:"departureDate" json:"departureDate"`
	ReturnDate    string               `form:"returnDate" json:"returnDate"`
	Passengers    int                  `form:"passengers" json:"passengers"`
	PackageOption models.PackageOption `form:"packageOption" json:"packageOption"`
}

// SearchResult.Return is nil for one-way trips and empty when no return leg
// matches.
type SearchResult struct {
	TripType   models.TripType   `json:"tripType"`
	Passengers int               `json:"passengers"`
	Outbound   []models.SlotView `json:"outbound"`
	Return     []models.SlotView `json:"return"`
	Quote      domain.FareQuote  `json:"quote"`
}

type QuoteRequest struct {
	TripType      models.TripType      `json:"tripType"`
	PackageOption models.PackageOption `json:"packageOption"`
	Passengers    int                  `json:"passengers"`
	Weights       []models.FlexInt     `json:"weights"`
}

type SearchService struct {
	Slots     SlotStore
	RequestID string
}

func (s SearchService) store() SlotStore { return slotStoreOrDefault(s.Slots) }

func (q *SearchQuery) normalize() error {
	q.From = strings.TrimSpace(q.From)
	q.To = strings.TrimSpace(q.To)
	q.DepartureDate = strings.TrimSpace(q.DepartureDate)
	q.ReturnDate = strings.TrimSpace(q.ReturnDate)
	if q.TripType == "" {
		q.TripType = models.TripOneWay
	}
	if q.Passengers == 0 {
		q.Passengers = 1
	}

	if !q.TripType.Valid() {
		return domain.ValidationError{Field: "tripType", Msg: "must be oneWay or roundTrip"}
	}
	if q.From == "" || q.To == "" {
		return domain.ValidationError{Field: "from", Msg: "origin and destination are required"}
	}
	if q.From == q.To {
		return domain.ValidationError{Field: "to", Msg: "must differ from origin"}
	}
	if !utils.IsDate(q.DepartureDate) {
		return domain.ValidationError{Field: "departureDate", Msg: "must be YYYY-MM-DD"}
	}
	if q.TripType == models.TripRoundTrip {
		if !utils.IsDate(q.ReturnDate) {
			return domain.ValidationError{Field: "returnDate", Msg: "must be YYYY-MM-DD"}
		}
		if q.ReturnDate < q.DepartureDate {
			return domain.ValidationError{Field: "returnDate", Msg: "must not be before departure"}
		}
	}
	if q.Passengers < 1 || q.Passengers > models.MaxSeatsPerSlot {
		return domain.ValidationError{Field: "passengers", Msg: fmt.Sprintf("must be between 1 and %d", models.MaxSeatsPerSlot)}
	}
	return nil
}

// Search lists the legs matching the query, each marked selectable when it
// can seat the whole party, together with the base fare quote.
func (s SearchService) Search(ctx context.Context, q SearchQuery) (SearchResult, error) {
	if err := q.normalize(); err != nil {
		return SearchResult{}, err
	}

	quote, err := domain.Quote(q.TripType, q.PackageOption, q.Passengers, nil)
	if err != nil {
		return SearchResult{}, err
	}

	outbound, err := s.legs(ctx, q.From, q.To, q.DepartureDate)
	if err != nil {
		return SearchResult{}, err
	}
	res := SearchResult{
		TripType:   q.TripType,
		Passengers: q.Passengers,
		Outbound:   domain.Annotate(outbound, q.Passengers),
		Quote:      quote,
	}

	if q.TripType == models.TripRoundTrip {
		inbound, err := s.legs(ctx, q.To, q.From, q.ReturnDate)
		if err != nil {
			return SearchResult{}, err
		}
		res.Return = domain.Annotate(inbound, q.Passengers)
	}

	utils.LogEvent(s.RequestID, "search", "search", fmt.Sprintf("%s %s->%s %s outbound=%d return=%d", q.TripType, q.From, q.To, q.DepartureDate, len(res.Outbound), len(res.Return)))
	return res, nil
}

func (s SearchService) legs(ctx context.Context, from, to, date string) ([]models.Slot, error) {
	slots, err := s.store().List(ctx, models.SlotFilter{Date: date, From: from, To: to})
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	// the column collation is case-insensitive; keep the match exact
	slots = domain.MatchSlots(slots, from, to, date)
	domain.SortByDeparture(slots)
	return slots, nil
}

// Quote prices a party without touching any slot. Passengers defaults to the
// number of weights sent.
func (s SearchService) Quote(req QuoteRequest) (domain.FareQuote, error) {
	weights := make([]int, 0, len(req.Weights))
	for _, w := range req.Weights {
		weights = append(weights, w.Int())
	}
	n := req.Passengers
	if n == 0 {
		n = len(weights)
	}
	return domain.Quote(req.TripType, req.PackageOption, n, weights)
}
