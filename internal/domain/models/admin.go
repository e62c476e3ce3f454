package models

import "time"

type Admin struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// DashboardSummary feeds the admin landing page for one date.
type DashboardSummary struct {
	Date             string     `json:"date"`
	TotalSeatsBooked int        `json:"totalSeatsBooked"`
	TotalPayment     int64      `json:"totalPayment"`
	SeatsLeft        int        `json:"seatsLeft"`
	FlightsLeftToFly int        `json:"flightsLeftToFly"`
	Slots            []SlotView `json:"slots"`
}
