package domain

import (
	"fmt"

	"helishuttle/internal/domain/models"
)

// Fares in rupees.
const (
	OneWayFare           int64 = 18_000
	RoundTripBaseFare    int64 = 35_000
	RoundTripPremiumFare int64 = 50_000
)

// FreeWeightKg is the per-passenger allowance; each kg above it costs
// OverweightRatePerKg.
const FreeWeightKg = 75

const OverweightRatePerKg int64 = 1_500

// MaxPassengerWeightKg bounds the weights a quote accepts.
const MaxPassengerWeightKg = 300

type PassengerFare struct {
	Weight        int   `json:"weight"`
	OverweightFee int64 `json:"overweightFee"`
}

type FareQuote struct {
	TripType       models.TripType      `json:"tripType"`
	PackageOption  models.PackageOption `json:"packageOption,omitempty"`
	Passengers     int                  `json:"passengers"`
	RatePerSeat    int64                `json:"ratePerSeat"`
	BaseFare       int64                `json:"baseFare"`
	OverweightFees int64                `json:"overweightFees"`
	FinalTotal     int64                `json:"finalTotal"`
	PerPassenger   []PassengerFare      `json:"perPassenger,omitempty"`
}

// SeatRate is the per-passenger price for a trip type and package. An empty
// package on a round trip means base.
func SeatRate(trip models.TripType, pkg models.PackageOption) (int64, error) {
	switch trip {
	case models.TripOneWay:
		return OneWayFare, nil
	case models.TripRoundTrip:
		switch pkg {
		case "", models.PackageBase:
			return RoundTripBaseFare, nil
		case models.PackagePremium:
			return RoundTripPremiumFare, nil
		default:
			return 0, ValidationError{Field: "packageOption", Msg: "must be base or premium"}
		}
	default:
		return 0, ValidationError{Field: "tripType", Msg: "must be oneWay or roundTrip"}
	}
}

func BaseFare(trip models.TripType, pkg models.PackageOption, passengers int) (int64, error) {
	if passengers < 1 || passengers > models.MaxSeatsPerSlot {
		return 0, ValidationError{Field: "passengers", Msg: fmt.Sprintf("must be between 1 and %d", models.MaxSeatsPerSlot)}
	}
	rate, err := SeatRate(trip, pkg)
	if err != nil {
		return 0, err
	}
	return rate * int64(passengers), nil
}

func OverweightFee(weightKg int) int64 {
	if weightKg <= FreeWeightKg {
		return 0
	}
	return int64(weightKg-FreeWeightKg) * OverweightRatePerKg
}

func OverweightFees(weights []int) int64 {
	var total int64
	for _, w := range weights {
		total += OverweightFee(w)
	}
	return total
}

// Quote prices a trip. weights may be shorter than passengers (unknown weights
// carry no surcharge) but never longer.
func Quote(trip models.TripType, pkg models.PackageOption, passengers int, weights []int) (FareQuote, error) {
	base, err := BaseFare(trip, pkg, passengers)
	if err != nil {
		return FareQuote{}, err
	}
	if len(weights) > passengers {
		return FareQuote{}, ValidationError{Field: "weights", Msg: "more weights than passengers"}
	}
	for i, w := range weights {
		if w < 1 || w > MaxPassengerWeightKg {
			return FareQuote{}, ValidationError{Field: fmt.Sprintf("weights[%d]", i), Msg: fmt.Sprintf("must be between 1 and %d", MaxPassengerWeightKg)}
		}
	}
	rate, _ := SeatRate(trip, pkg)

	q := FareQuote{
		TripType:    trip,
		Passengers:  passengers,
		RatePerSeat: rate,
		BaseFare:    base,
	}
	if trip == models.TripRoundTrip {
		q.PackageOption = pkg
		if q.PackageOption == "" {
			q.PackageOption = models.PackageBase
		}
	}
	for _, w := range weights {
		fee := OverweightFee(w)
		q.PerPassenger = append(q.PerPassenger, PassengerFare{Weight: w, OverweightFee: fee})
		q.OverweightFees += fee
	}
	q.FinalTotal = q.BaseFare + q.OverweightFees
	return q, nil
}
