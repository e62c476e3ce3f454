package services

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"helishuttle/internal/domain"
	"helishuttle/internal/domain/models"
	"helishuttle/internal/utils"
)

const bookingsSheet = "Bookings"

var bookingExportHeader = []any{
	"Booking ID", "Trip Type", "From", "To", "Departure Date", "Return Date",
	"Passenger Name", "Age", "Gender", "Email", "Mobile", "Nationality",
	"Weight", "ID Type", "ID Image",
}

type ExportService struct {
	Bookings  BookingService
	RequestID string
}

// BookingsWorkbook writes one row per passenger of the bookings flying on
// date (all bookings when date is empty).
func (s ExportService) BookingsWorkbook(ctx context.Context, date string) ([]byte, string, error) {
	bookings, err := s.Bookings.List(ctx, date)
	if err != nil {
		return nil, "", err
	}
	data, err := buildBookingsWorkbook(bookings)
	if err != nil {
		return nil, "", domain.InternalError{Msg: "could not build workbook", Err: err}
	}

	label := date
	if label == "" {
		label = "all"
	}
	utils.LogEvent(s.RequestID, "export", "bookings_xlsx", fmt.Sprintf("date=%s bookings=%d", label, len(bookings)))
	return data, fmt.Sprintf("Bookings_%s.xlsx", utils.SafeFilenamePart(label)), nil
}

func buildBookingsWorkbook(bookings []models.CustomerBooking) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", bookingsSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(bookingsSheet, "A1", &bookingExportHeader); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(bookingExportHeader))
	if err := f.SetCellStyle(bookingsSheet, "A1", lastCol+"1", bold); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(bookingsSheet, "A", lastCol, 18); err != nil {
		return nil, err
	}

	row := 2
	for _, b := range bookings {
		passengers := b.PassengerDetails
		if len(passengers) == 0 {
			passengers = []models.PassengerDetail{{}}
		}
		for _, p := range passengers {
			values := []any{
				b.ID, string(b.TripType), b.From, b.To, b.DepartureDate, b.ReturnDate,
				p.Name, p.Age.Int(), p.Gender, p.Email, p.Mobile, p.Nationality,
				p.Weight.Int(), p.IdentityCardType, p.IdentityCardImageURL,
			}
			cell, _ := excelize.CoordinatesToCellName(1, row)
			if err := f.SetSheetRow(bookingsSheet, cell, &values); err != nil {
				return nil, err
			}
			if p.IdentityCardImageURL != "" {
				link, _ := excelize.CoordinatesToCellName(len(values), row)
				if err := f.SetCellHyperLink(bookingsSheet, link, p.IdentityCardImageURL, "External"); err != nil {
					return nil, err
				}
			}
			row++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
