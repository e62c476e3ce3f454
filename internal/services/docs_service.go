package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"helishuttle/internal/domain"
	"helishuttle/internal/domain/models"
	"helishuttle/internal/utils"
)

// DocsService renders the booking confirmation PDF.
type DocsService struct {
	Bookings  BookingStore
	RequestID string
}

func (s DocsService) BookingConfirmation(ctx context.Context, id int64) ([]byte, string, error) {
	b, err := bookingStoreOrDefault(s.Bookings).GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	pdf, filename, err := buildConfirmationPDF(b, time.Now())
	if err != nil {
		return nil, "", domain.InternalError{Msg: "could not render confirmation", Err: err}
	}
	utils.LogEvent(s.RequestID, "docs", "booking_confirmation", fmt.Sprintf("booking_id=%d", id))
	return pdf, filename, nil
}

func buildConfirmationPDF(b models.CustomerBooking, issued time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Confirmation", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING CONFIRMATION")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking ID     : #%d", b.ID),
		fmt.Sprintf("Issued         : %s", utils.FormatDateTime(issued)),
		fmt.Sprintf("Trip           : %s", tripLabel(b)),
		fmt.Sprintf("Route          : %s -> %s", safe(b.From, "-"), safe(b.To, "-")),
		fmt.Sprintf("Departure Date : %s", safe(b.DepartureDate, "-")),
	}
	if b.TripType == models.TripRoundTrip {
		lines = append(lines, fmt.Sprintf("Return Date    : %s", safe(b.ReturnDate, "-")))
	}
	lines = append(lines, fmt.Sprintf("Passengers     : %d", b.Passengers))
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Flights")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for i, leg := range b.Legs() {
		pdf.Cell(0, 6, fmt.Sprintf("%d) %s -> %s  %s  %s  (%s)", i+1, leg.From, leg.To, leg.Date, leg.Time, safe(leg.Duration, "-")))
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Passenger Details")
	pdf.Ln(8)

	widths := []float64{8, 52, 14, 20, 18, 30, 48}
	header := []string{"#", "Name", "Age", "Gender", "Weight", "ID Type", "Mobile"}
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range header {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
	for i, p := range b.PassengerDetails {
		row := []string{
			fmt.Sprintf("%d", i+1),
			safe(p.Name, "-"),
			fmt.Sprintf("%d", p.Age.Int()),
			safe(p.Gender, "-"),
			fmt.Sprintf("%d kg", p.Weight.Int()),
			safe(p.IdentityCardType, "-"),
			safe(p.Mobile, "-"),
		}
		for j, v := range row {
			pdf.CellFormat(widths[j], 7, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Price Breakdown")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, "Base fare       : "+utils.FormatRupees(b.BaseFare))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Overweight fees : "+utils.FormatRupees(b.OverweightFees))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total           : "+utils.FormatRupees(b.FinalTotal))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, fmt.Sprintf("Payment status: %s. Passengers above %d kg pay %s per extra kg. Carry the identity card used for booking.",
		safe(string(b.PaymentStatus), string(models.PaymentPending)), domain.FreeWeightKg, utils.FormatRupees(domain.OverweightRatePerKg)), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("Booking_%d.pdf", b.ID), nil
}

func tripLabel(b models.CustomerBooking) string {
	if b.TripType == models.TripRoundTrip {
		pkg := b.PackageOption
		if pkg == "" {
			pkg = models.PackageBase
		}
		return fmt.Sprintf("Round trip (%s package)", pkg)
	}
	return "One way"
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}
