package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	intconfig "helishuttle/internal/config"
	intdb "helishuttle/internal/db"
	"helishuttle/internal/domain"
	"helishuttle/internal/domain/models"
)

// CustomerBookingRepository stores bookings in customer_bookings and their
// passengers in booking_passengers.
type CustomerBookingRepository struct {
	DB *sql.DB
}

func (r CustomerBookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingColumns = `
	id,
	trip_type,
	route_from,
	route_to,
	DATE_FORMAT(departure_date, '%Y-%m-%d'),
	COALESCE(DATE_FORMAT(return_date, '%Y-%m-%d'), ''),
	COALESCE(package_option, ''),
	passengers,
	base_fare,
	overweight_fees,
	final_total,
	selected_flight,
	selected_flight_outbound,
	selected_flight_return,
	COALESCE(transaction_ref, ''),
	payment_status,
	created_at`

func scanBooking(row rowScanner) (models.CustomerBooking, error) {
	var (
		b                    models.CustomerBooking
		tripType, pkg, payst string
		single, out, ret     []byte
		createdAt            sql.NullTime
	)
	err := row.Scan(
		&b.ID,
		&tripType,
		&b.From,
		&b.To,
		&b.DepartureDate,
		&b.ReturnDate,
		&pkg,
		&b.Passengers,
		&b.BaseFare,
		&b.OverweightFees,
		&b.FinalTotal,
		&single,
		&out,
		&ret,
		&b.TransactionRef,
		&payst,
		&createdAt,
	)
	if err != nil {
		return models.CustomerBooking{}, err
	}
	b.TripType = models.TripType(tripType)
	b.PackageOption = models.PackageOption(pkg)
	b.PaymentStatus = models.PaymentStatus(payst)
	b.CreatedAt = createdAt.Time

	if b.SelectedFlight, err = decodeSlot(single); err != nil {
		return b, err
	}
	if b.SelectedFlightOutbound, err = decodeSlot(out); err != nil {
		return b, err
	}
	if b.SelectedFlightReturn, err = decodeSlot(ret); err != nil {
		return b, err
	}
	b.PassengerDetails = []models.PassengerDetail{}
	return b, nil
}

func decodeSlot(raw []byte) (*models.Slot, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var s models.Slot
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode slot snapshot: %w", err)
	}
	return &s, nil
}

func encodeSlot(s *models.Slot) (any, any, error) {
	if s == nil {
		return nil, nil, nil
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, nil, err
	}
	return s.ID, string(raw), nil
}

// Create reserves seats on every leg and inserts the booking with its
// passengers in one transaction. A full leg aborts everything with a
// ConflictError.
func (r CustomerBookingRepository) Create(ctx context.Context, b *models.CustomerBooking) error {
	tx, err := r.db().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin booking tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, leg := range b.Legs() {
		if err := reserveSeats(ctx, tx, leg.ID, b.Passengers); err != nil {
			if errors.Is(err, ErrSeatsUnavailable) {
				return domain.ConflictError{
					Resource: "slot",
					Msg:      fmt.Sprintf("%s → %s on %s %s has fewer than %d seats left", leg.From, leg.To, leg.Date, leg.Time, b.Passengers),
					Err:      err,
				}
			}
			return err
		}
	}

	singleID, singleRaw, err := encodeSlot(b.SelectedFlight)
	if err != nil {
		return fmt.Errorf("encode selected flight: %w", err)
	}
	outID, outRaw, err := encodeSlot(b.SelectedFlightOutbound)
	if err != nil {
		return fmt.Errorf("encode outbound flight: %w", err)
	}
	retID, retRaw, err := encodeSlot(b.SelectedFlightReturn)
	if err != nil {
		return fmt.Errorf("encode return flight: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO customer_bookings (
			trip_type, route_from, route_to, departure_date, return_date, package_option,
			passengers, base_fare, overweight_fees, final_total,
			selected_flight_id, selected_flight,
			selected_flight_outbound_id, selected_flight_outbound,
			selected_flight_return_id, selected_flight_return,
			payment_status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		string(b.TripType), b.From, b.To, b.DepartureDate, intdb.NullIfEmpty(b.ReturnDate), intdb.NullIfEmpty(string(b.PackageOption)),
		b.Passengers, b.BaseFare, b.OverweightFees, b.FinalTotal,
		singleID, singleRaw,
		outID, outRaw,
		retID, retRaw,
		string(b.PaymentStatus),
	)
	if err != nil {
		return fmt.Errorf("insert customer booking: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("customer booking id: %w", err)
	}

	for i, p := range b.PassengerDetails {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO booking_passengers (
				booking_id, position, name, age, gender, email, mobile,
				nationality, weight, identity_card_type, identity_card_image_url
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, id, i+1, p.Name, p.Age.Int(), p.Gender, p.Email, p.Mobile,
			p.Nationality, p.Weight.Int(), p.IdentityCardType, p.IdentityCardImageURL); err != nil {
			return fmt.Errorf("insert passenger %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit booking: %w", err)
	}
	b.ID = id
	return nil
}

// List returns all bookings, newest first, with passengers attached.
func (r CustomerBookingRepository) List(ctx context.Context) ([]models.CustomerBooking, error) {
	rows, err := r.db().QueryContext(ctx, `SELECT `+bookingColumns+` FROM customer_bookings ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list customer bookings: %w", err)
	}
	defer rows.Close()

	out := []models.CustomerBooking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return out, fmt.Errorf("scan customer booking: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return out, err
	}
	if len(out) == 0 {
		return out, nil
	}

	ids := make([]int64, 0, len(out))
	for _, b := range out {
		ids = append(ids, b.ID)
	}
	byBooking, err := r.passengers(ctx, r.db(), ids)
	if err != nil {
		return out, err
	}
	for i := range out {
		if ps, ok := byBooking[out[i].ID]; ok {
			out[i].PassengerDetails = ps
		}
	}
	return out, nil
}

func (r CustomerBookingRepository) GetByID(ctx context.Context, id int64) (models.CustomerBooking, error) {
	return r.getByID(ctx, r.db(), id)
}

type queryer interface {
	intdb.QueryRower
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (r CustomerBookingRepository) getByID(ctx context.Context, q queryer, id int64) (models.CustomerBooking, error) {
	if id <= 0 {
		return models.CustomerBooking{}, domain.ValidationError{Field: "id", Msg: "invalid booking id"}
	}
	b, err := scanBooking(q.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM customer_bookings WHERE id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.CustomerBooking{}, domain.NotFoundError{Resource: "booking", Err: err}
	}
	if err != nil {
		return models.CustomerBooking{}, fmt.Errorf("get customer booking %d: %w", id, err)
	}
	byBooking, err := r.passengers(ctx, q, []int64{id})
	if err != nil {
		return b, err
	}
	if ps, ok := byBooking[id]; ok {
		b.PassengerDetails = ps
	}
	return b, nil
}

func (r CustomerBookingRepository) passengers(ctx context.Context, q queryer, bookingIDs []int64) (map[int64][]models.PassengerDetail, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(bookingIDs)), ",")
	args := make([]any, 0, len(bookingIDs))
	for _, id := range bookingIDs {
		args = append(args, id)
	}

	rows, err := q.QueryContext(ctx, `
		SELECT booking_id, name, age, gender, email, mobile, nationality, weight,
		       identity_card_type, COALESCE(identity_card_image_url, '')
		FROM booking_passengers
		WHERE booking_id IN (`+placeholders+`)
		ORDER BY booking_id ASC, position ASC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("list booking passengers: %w", err)
	}
	defer rows.Close()

	out := map[int64][]models.PassengerDetail{}
	for rows.Next() {
		var (
			bookingID   int64
			age, weight int
			p           models.PassengerDetail
		)
		if err := rows.Scan(&bookingID, &p.Name, &age, &p.Gender, &p.Email, &p.Mobile,
			&p.Nationality, &weight, &p.IdentityCardType, &p.IdentityCardImageURL); err != nil {
			return out, fmt.Errorf("scan booking passenger: %w", err)
		}
		p.Age = models.FlexInt(age)
		p.Weight = models.FlexInt(weight)
		out[bookingID] = append(out[bookingID], p)
	}
	return out, rows.Err()
}

// Delete removes a booking (passengers cascade) and gives its seats back.
func (r CustomerBookingRepository) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "invalid booking id"}
	}
	tx, err := r.db().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var (
		passengers                int
		single, outbound, inbound sql.NullInt64
	)
	err = tx.QueryRowContext(ctx, `
		SELECT passengers, selected_flight_id, selected_flight_outbound_id, selected_flight_return_id
		FROM customer_bookings WHERE id = ? FOR UPDATE
	`, id).Scan(&passengers, &single, &outbound, &inbound)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: "booking", Err: err}
	}
	if err != nil {
		return fmt.Errorf("lock booking %d: %w", id, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM customer_bookings WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete booking %d: %w", id, err)
	}
	for _, leg := range []sql.NullInt64{single, outbound, inbound} {
		if !leg.Valid || leg.Int64 <= 0 {
			continue
		}
		if err := releaseSeats(ctx, tx, leg.Int64, passengers); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// SetPaymentReference records the customer's transaction id suffix. Callers
// check the booking exists; resubmitting the same reference is a no-op.
func (r CustomerBookingRepository) SetPaymentReference(ctx context.Context, id int64, ref string, status models.PaymentStatus) error {
	if _, err := r.db().ExecContext(ctx, `
		UPDATE customer_bookings SET transaction_ref = ?, payment_status = ? WHERE id = ?
	`, ref, string(status), id); err != nil {
		return fmt.Errorf("set payment reference on %d: %w", id, err)
	}
	return nil
}
