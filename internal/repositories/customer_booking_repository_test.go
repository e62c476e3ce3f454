package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helishuttle/internal/domain"
	"helishuttle/internal/domain/models"
)

var bookingRowColumns = []string{
	"id", "trip_type", "route_from", "route_to", "departure_date", "return_date", "package_option",
	"passengers", "base_fare", "overweight_fees", "final_total",
	"selected_flight", "selected_flight_outbound", "selected_flight_return",
	"transaction_ref", "payment_status", "created_at",
}

var passengerRowColumns = []string{
	"booking_id", "name", "age", "gender", "email", "mobile", "nationality", "weight",
	"identity_card_type", "identity_card_image_url",
}

func oneWayBooking() *models.CustomerBooking {
	return &models.CustomerBooking{
		TripType:      models.TripOneWay,
		From:          "Helipad",
		To:            "Airport",
		DepartureDate: "2025-02-12",
		Passengers:    2,
		BaseFare:      36000,
		FinalTotal:    36000,
		PaymentStatus: models.PaymentPending,
		SelectedFlight: &models.Slot{
			ID: 11, From: "Helipad", To: "Airport", Date: "2025-02-12", Time: "09:00 - 09:10", SeatsAvailable: 6,
		},
		PassengerDetails: []models.PassengerDetail{
			{Name: "Asha", Age: 34, Gender: "Female", Email: "asha@example.com", Mobile: "9876543210", Nationality: "Indian", Weight: 60, IdentityCardType: "Aadhar"},
			{Name: "Ravi", Age: 36, Gender: "Male", Email: "ravi@example.com", Mobile: "9876543211", Nationality: "Indian", Weight: 70, IdentityCardType: "PAN"},
		},
	}
}

func TestCustomerBookingCreateReservesSeatsInTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE slots").WithArgs(2, int64(11), 2).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO customer_bookings").WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec("INSERT INTO booking_passengers").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO booking_passengers").WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	b := oneWayBooking()
	require.NoError(t, CustomerBookingRepository{DB: db}.Create(context.Background(), b))
	assert.Equal(t, int64(42), b.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerBookingCreateConflictsWhenLegIsFull(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE slots").WithArgs(2, int64(11), 2).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err = CustomerBookingRepository{DB: db}.Create(context.Background(), oneWayBooking())
	assert.True(t, domain.IsConflict(err), "got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerBookingGetByIDAttachesPassengers(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	snapshot := []byte(`{"id":11,"from":"Helipad","to":"Airport","date":"2025-02-12","time":"09:00 - 09:10","seatsAvailable":6}`)
	mock.ExpectQuery("FROM customer_bookings WHERE id = \\?").WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(bookingRowColumns).AddRow(
			7, "oneWay", "Helipad", "Airport", "2025-02-12", "", "",
			1, 18000, 1500, 19500,
			snapshot, nil, nil,
			"", "pending", time.Now(),
		))
	mock.ExpectQuery("FROM booking_passengers").WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(passengerRowColumns).
			AddRow(7, "Asha", 34, "Female", "asha@example.com", "9876543210", "Indian", 76, "Passport", "https://img.example.com/a.jpg"))

	b, err := CustomerBookingRepository{DB: db}.GetByID(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, b.SelectedFlight)
	assert.Equal(t, int64(11), b.SelectedFlight.ID)
	assert.Nil(t, b.SelectedFlightReturn)
	require.Len(t, b.PassengerDetails, 1)
	assert.Equal(t, 76, b.PassengerDetails[0].Weight.Int())
	assert.Equal(t, models.PaymentPending, b.PaymentStatus)
}

func TestCustomerBookingDeleteReleasesSeats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT passengers").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"passengers", "selected_flight_id", "selected_flight_outbound_id", "selected_flight_return_id"}).
			AddRow(3, nil, 21, 22))
	mock.ExpectExec("DELETE FROM customer_bookings").WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("SET seats_available = seats_available \\+ \\?").WithArgs(3, int64(21)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("SET seats_available = seats_available \\+ \\?").WithArgs(3, int64(22)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, CustomerBookingRepository{DB: db}.Delete(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerBookingSetPaymentReferenceIsIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := CustomerBookingRepository{DB: db}
	mock.ExpectExec("UPDATE customer_bookings SET transaction_ref").
		WithArgs("12345", "reference_submitted", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// same values again: MySQL reports no changed row
	mock.ExpectExec("UPDATE customer_bookings SET transaction_ref").
		WithArgs("12345", "reference_submitted", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.SetPaymentReference(context.Background(), 7, "12345", models.PaymentReferenceSubmitted))
	require.NoError(t, repo.SetPaymentReference(context.Background(), 7, "12345", models.PaymentReferenceSubmitted))
	assert.NoError(t, mock.ExpectationsWereMet())
}
