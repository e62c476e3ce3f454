package domain

import (
	"testing"

	"helishuttle/internal/domain/models"
)

func TestBaseFareOneWay(t *testing.T) {
	for n := 1; n <= 6; n++ {
		got, err := BaseFare(models.TripOneWay, "", n)
		if err != nil {
			t.Fatalf("BaseFare(oneWay, %d) error: %v", n, err)
		}
		if want := int64(18000 * n); got != want {
			t.Fatalf("BaseFare(oneWay, %d) = %d, want %d", n, got, want)
		}
	}
}

func TestBaseFareRoundTripPackages(t *testing.T) {
	cases := []struct {
		pkg  models.PackageOption
		n    int
		want int64
	}{
		{models.PackageBase, 1, 35000},
		{models.PackageBase, 3, 105000},
		{"", 2, 70000},
		{models.PackagePremium, 1, 50000},
		{models.PackagePremium, 4, 200000},
	}
	for _, tc := range cases {
		got, err := BaseFare(models.TripRoundTrip, tc.pkg, tc.n)
		if err != nil {
			t.Fatalf("BaseFare(roundTrip, %q, %d) error: %v", tc.pkg, tc.n, err)
		}
		if got != tc.want {
			t.Fatalf("BaseFare(roundTrip, %q, %d) = %d, want %d", tc.pkg, tc.n, got, tc.want)
		}
	}
}

func TestBaseFareRejectsBadInput(t *testing.T) {
	if _, err := BaseFare(models.TripOneWay, "", 0); !IsValidation(err) {
		t.Fatalf("zero passengers should be a validation error, got %v", err)
	}
	if _, err := BaseFare("multiCity", "", 1); !IsValidation(err) {
		t.Fatalf("unknown trip type should be a validation error, got %v", err)
	}
	if _, err := BaseFare(models.TripRoundTrip, "gold", 1); !IsValidation(err) {
		t.Fatalf("unknown package should be a validation error, got %v", err)
	}
}

func TestOverweightFee(t *testing.T) {
	cases := map[int]int64{
		0:   0,
		60:  0,
		75:  0,
		76:  1500,
		80:  7500,
		100: 37500,
	}
	for w, want := range cases {
		if got := OverweightFee(w); got != want {
			t.Fatalf("OverweightFee(%d) = %d, want %d", w, got, want)
		}
	}
	if got := OverweightFees([]int{70, 80, 90}); got != 7500+22500 {
		t.Fatalf("OverweightFees = %d, want 30000", got)
	}
}

func TestQuoteCombinesBaseAndSurcharge(t *testing.T) {
	q, err := Quote(models.TripRoundTrip, models.PackagePremium, 2, []int{78, 60})
	if err != nil {
		t.Fatalf("Quote error: %v", err)
	}
	if q.BaseFare != 100000 || q.OverweightFees != 4500 || q.FinalTotal != 104500 {
		t.Fatalf("unexpected quote: %+v", q)
	}
	if q.RatePerSeat != 50000 || len(q.PerPassenger) != 2 || q.PerPassenger[0].OverweightFee != 4500 {
		t.Fatalf("unexpected per-passenger breakdown: %+v", q)
	}
}

func TestQuoteDefaultsPackageOnRoundTripOnly(t *testing.T) {
	q, err := Quote(models.TripRoundTrip, "", 1, nil)
	if err != nil {
		t.Fatalf("Quote error: %v", err)
	}
	if q.PackageOption != models.PackageBase {
		t.Fatalf("round trip without package should quote base, got %q", q.PackageOption)
	}

	q, err = Quote(models.TripOneWay, models.PackagePremium, 1, nil)
	if err != nil {
		t.Fatalf("Quote error: %v", err)
	}
	if q.PackageOption != "" || q.FinalTotal != 18000 {
		t.Fatalf("one-way quote should ignore package, got %+v", q)
	}
}

func TestQuoteRejectsExtraWeights(t *testing.T) {
	if _, err := Quote(models.TripOneWay, "", 1, []int{70, 80}); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestQuoteBoundsPartySizeAndWeights(t *testing.T) {
	if _, err := Quote(models.TripOneWay, "", 1<<60, nil); !IsValidation(err) {
		t.Fatalf("oversized party should be a validation error, got %v", err)
	}
	if _, err := BaseFare(models.TripRoundTrip, "", models.MaxSeatsPerSlot+1); !IsValidation(err) {
		t.Fatalf("party above cabin size should be a validation error, got %v", err)
	}
	for _, w := range []int{0, -5, MaxPassengerWeightKg + 1, 1 << 62} {
		if _, err := Quote(models.TripOneWay, "", 1, []int{w}); !IsValidation(err) {
			t.Fatalf("weight %d should be a validation error, got %v", w, err)
		}
	}
	q, err := Quote(models.TripOneWay, "", models.MaxSeatsPerSlot, []int{MaxPassengerWeightKg})
	if err != nil {
		t.Fatalf("Quote error: %v", err)
	}
	if want := 18000*int64(models.MaxSeatsPerSlot) + int64(MaxPassengerWeightKg-FreeWeightKg)*OverweightRatePerKg; q.FinalTotal != want {
		t.Fatalf("FinalTotal = %d, want %d", q.FinalTotal, want)
	}
}
