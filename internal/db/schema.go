package db

import (
	"context"
	"fmt"
)

type tableDDL struct {
	name string
	ddl  string
}

// Tables in creation order; booking_passengers references customer_bookings.
var schema = []tableDDL{
	{"slots", `
CREATE TABLE IF NOT EXISTS slots (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	route_from VARCHAR(64) NOT NULL,
	route_to VARCHAR(64) NOT NULL,
	flight_date DATE NOT NULL,
	flight_time VARCHAR(32) NOT NULL,
	duration VARCHAR(32) NOT NULL DEFAULT '',
	seats_available INT NOT NULL DEFAULT 0,
	price BIGINT NOT NULL DEFAULT 0,
	notes VARCHAR(255) NOT NULL DEFAULT '',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_route_date (route_from, route_to, flight_date)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`},
	{"customer_bookings", `
CREATE TABLE IF NOT EXISTS customer_bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	trip_type VARCHAR(16) NOT NULL,
	route_from VARCHAR(64) NOT NULL,
	route_to VARCHAR(64) NOT NULL,
	departure_date DATE NOT NULL,
	return_date DATE NULL,
	package_option VARCHAR(16) NULL,
	passengers INT NOT NULL,
	base_fare BIGINT NOT NULL,
	overweight_fees BIGINT NOT NULL,
	final_total BIGINT NOT NULL,
	selected_flight_id BIGINT NULL,
	selected_flight JSON NULL,
	selected_flight_outbound_id BIGINT NULL,
	selected_flight_outbound JSON NULL,
	selected_flight_return_id BIGINT NULL,
	selected_flight_return JSON NULL,
	transaction_ref VARCHAR(16) NULL,
	payment_status VARCHAR(32) NOT NULL DEFAULT 'pending',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_departure_date (departure_date),
	KEY idx_return_date (return_date)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`},
	{"booking_passengers", `
CREATE TABLE IF NOT EXISTS booking_passengers (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	booking_id BIGINT NOT NULL,
	position INT NOT NULL,
	name VARCHAR(255) NOT NULL,
	age INT NOT NULL,
	gender VARCHAR(16) NOT NULL,
	email VARCHAR(255) NOT NULL,
	mobile VARCHAR(32) NOT NULL,
	nationality VARCHAR(64) NOT NULL,
	weight INT NOT NULL,
	identity_card_type VARCHAR(32) NOT NULL,
	identity_card_image_url VARCHAR(512) NOT NULL DEFAULT '',
	UNIQUE KEY uniq_booking_position (booking_id, position),
	CONSTRAINT fk_booking_passengers_booking FOREIGN KEY (booking_id)
		REFERENCES customer_bookings (id) ON DELETE CASCADE
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`},
	{"admins", `
CREATE TABLE IF NOT EXISTS admins (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	email VARCHAR(255) NOT NULL,
	password_hash VARCHAR(255) NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_admin_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`},
}

// SchemaConn is what EnsureSchema needs from *sql.DB.
type SchemaConn interface {
	QueryRower
	Execer
}

// EnsureSchema creates missing tables. Existing tables are left untouched.
func EnsureSchema(ctx context.Context, conn SchemaConn) error {
	for _, t := range schema {
		if HasTable(ctx, conn, t.name) {
			continue
		}
		if _, err := conn.ExecContext(ctx, t.ddl); err != nil {
			return fmt.Errorf("create table %s: %w", t.name, err)
		}
	}
	return nil
}
