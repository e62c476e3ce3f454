package models

import "time"

// Slot is one bookable flight leg on a given date. Time is "HH:MM - HH:MM".
type Slot struct {
	ID             int64     `json:"id"`
	From           string    `json:"from"`
	To             string    `json:"to"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	Duration       string    `json:"duration"`
	SeatsAvailable int       `json:"seatsAvailable"`
	Price          int64     `json:"price"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
}

// SlotFilter narrows slot listings; empty fields match everything.
type SlotFilter struct {
	Date string
	From string
	To   string
}

// SlotView is a slot annotated for a specific passenger count.
type SlotView struct {
	Slot
	Selectable bool     `json:"selectable"`
	SeatBand   SeatBand `json:"seatBand"`
}
