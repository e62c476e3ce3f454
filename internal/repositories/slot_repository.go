package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "helishuttle/internal/config"
	intdb "helishuttle/internal/db"
	"helishuttle/internal/domain"
	"helishuttle/internal/domain/models"
)

// ErrSeatsUnavailable is returned when a conditional seat decrement matched no row.
var ErrSeatsUnavailable = errors.New("not enough seats left")

type SlotRepository struct {
	DB *sql.DB
}

func (r SlotRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const slotColumns = `
	id,
	route_from,
	route_to,
	DATE_FORMAT(flight_date, '%Y-%m-%d'),
	flight_time,
	COALESCE(duration,''),
	seats_available,
	price,
	COALESCE(notes,''),
	created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSlot(row rowScanner) (models.Slot, error) {
	var s models.Slot
	var createdAt sql.NullTime
	err := row.Scan(
		&s.ID,
		&s.From,
		&s.To,
		&s.Date,
		&s.Time,
		&s.Duration,
		&s.SeatsAvailable,
		&s.Price,
		&s.Notes,
		&createdAt,
	)
	if err != nil {
		return models.Slot{}, err
	}
	s.CreatedAt = createdAt.Time
	return s, nil
}

func (r SlotRepository) Create(ctx context.Context, s models.Slot) (models.Slot, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO slots (route_from, route_to, flight_date, flight_time, duration, seats_available, price, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, s.From, s.To, s.Date, s.Time, s.Duration, s.SeatsAvailable, s.Price, s.Notes)
	if err != nil {
		return models.Slot{}, fmt.Errorf("insert slot: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Slot{}, fmt.Errorf("insert slot id: %w", err)
	}
	s.ID = id
	return s, nil
}

// List returns slots ordered by date and departure time text.
func (r SlotRepository) List(ctx context.Context, f models.SlotFilter) ([]models.Slot, error) {
	where := []string{"1=1"}
	args := []any{}
	if d := strings.TrimSpace(f.Date); d != "" {
		where = append(where, "flight_date = ?")
		args = append(args, d)
	}
	if v := strings.TrimSpace(f.From); v != "" {
		where = append(where, "route_from = ?")
		args = append(args, v)
	}
	if v := strings.TrimSpace(f.To); v != "" {
		where = append(where, "route_to = ?")
		args = append(args, v)
	}

	rows, err := r.db().QueryContext(ctx, `SELECT `+slotColumns+`
		FROM slots
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY flight_date ASC, flight_time ASC, id ASC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	out := []models.Slot{}
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return out, fmt.Errorf("scan slot: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r SlotRepository) GetByID(ctx context.Context, id int64) (models.Slot, error) {
	return r.getByID(ctx, r.db(), id)
}

func (r SlotRepository) getByID(ctx context.Context, q intdb.QueryRower, id int64) (models.Slot, error) {
	if id <= 0 {
		return models.Slot{}, domain.ValidationError{Field: "id", Msg: "invalid slot id"}
	}
	s, err := scanSlot(q.QueryRowContext(ctx, `SELECT `+slotColumns+` FROM slots WHERE id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Slot{}, domain.NotFoundError{Resource: "slot", Err: err}
	}
	if err != nil {
		return models.Slot{}, fmt.Errorf("get slot %d: %w", id, err)
	}
	return s, nil
}

func (r SlotRepository) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "invalid slot id"}
	}
	res, err := r.db().ExecContext(ctx, `DELETE FROM slots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete slot %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "slot"}
	}
	return nil
}

// reserveSeats decrements seats only while enough remain. Seat notes follow
// the new count when they still carry the default text.
func reserveSeats(ctx context.Context, ex intdb.Execer, slotID int64, n int) error {
	res, err := ex.ExecContext(ctx, `
		UPDATE slots
		SET seats_available = seats_available - ?,
		    notes = IF(notes LIKE 'Seat Left %', CONCAT('Seat Left ', seats_available), notes)
		WHERE id = ? AND seats_available >= ?
	`, n, slotID, n)
	if err != nil {
		return fmt.Errorf("reserve seats on slot %d: %w", slotID, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrSeatsUnavailable
	}
	return nil
}

func releaseSeats(ctx context.Context, ex intdb.Execer, slotID int64, n int) error {
	_, err := ex.ExecContext(ctx, `
		UPDATE slots
		SET seats_available = seats_available + ?,
		    notes = IF(notes LIKE 'Seat Left %', CONCAT('Seat Left ', seats_available), notes)
		WHERE id = ?
	`, n, slotID)
	if err != nil {
		return fmt.Errorf("release seats on slot %d: %w", slotID, err)
	}
	return nil
}
