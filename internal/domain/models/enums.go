package models

type TripType string

const (
	TripOneWay    TripType = "oneWay"
	TripRoundTrip TripType = "roundTrip"
)

func (t TripType) Valid() bool {
	return t == TripOneWay || t == TripRoundTrip
}

type PackageOption string

const (
	PackageBase    PackageOption = "base"
	PackagePremium PackageOption = "premium"
)

func (p PackageOption) Valid() bool {
	return p == PackageBase || p == PackagePremium
}

// RouteType is the admin form's direction switch.
type RouteType string

const (
	RouteHelipadToAirport RouteType = "helipadToAirport"
	RouteAirportToHelipad RouteType = "airportToHelipad"
)

const (
	PlaceHelipad = "Helipad"
	PlaceAirport = "Airport"
)

type PaymentStatus string

const (
	PaymentPending            PaymentStatus = "pending"
	PaymentReferenceSubmitted PaymentStatus = "reference_submitted"
)

// SeatBand buckets a slot's remaining capacity for the dashboard.
type SeatBand string

const (
	SeatBandOpen      SeatBand = "open"
	SeatBandFilling   SeatBand = "filling"
	SeatBandLastSeats SeatBand = "last_seats"
	SeatBandSoldOut   SeatBand = "sold_out"
)

// MaxSeatsPerSlot is the cabin capacity offered per leg.
const MaxSeatsPerSlot = 6
