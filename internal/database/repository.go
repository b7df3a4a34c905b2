package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository is a Postgres-backed Store
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a repository on an existing connection pool
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Connect opens a pgx pool and verifies the connection
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// EnsureSchema creates the bookings table if it does not exist
func (r *Repository) EnsureSchema(ctx context.Context) error {
	ddl := `
		CREATE TABLE IF NOT EXISTS bookings (
			id            BIGSERIAL PRIMARY KEY,
			customer_name TEXT NOT NULL,
			phone_number  TEXT NOT NULL,
			date          TEXT NOT NULL,
			start_time    TEXT NOT NULL,
			duration      INTEGER NOT NULL,
			status        TEXT NOT NULL DEFAULT 'pending'
		)
	`
	if _, err := r.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("failed to ensure bookings schema: %w", err)
	}
	return nil
}

// CreateBooking inserts a booking and returns it with the assigned id
func (r *Repository) CreateBooking(ctx context.Context, req InsertBooking) (*Booking, error) {
	query := `
		INSERT INTO bookings (customer_name, phone_number, date, start_time, duration, status)
		VALUES ($1, $2, $3, $4, $5, 'pending')
		RETURNING id, customer_name, phone_number, date, start_time, duration, status
	`

	var b Booking
	err := r.pool.QueryRow(ctx, query,
		req.CustomerName, req.PhoneNumber, req.Date, req.StartTime, req.Duration,
	).Scan(&b.ID, &b.CustomerName, &b.PhoneNumber, &b.Date, &b.StartTime, &b.Duration, &b.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to insert booking: %w", err)
	}

	return &b, nil
}

// GetBookings returns all bookings in ascending id order
func (r *Repository) GetBookings(ctx context.Context) ([]Booking, error) {
	query := `
		SELECT id, customer_name, phone_number, date, start_time, duration, status
		FROM bookings
		ORDER BY id ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetBookingsByDate returns bookings whose date matches exactly
func (r *Repository) GetBookingsByDate(ctx context.Context, date string) ([]Booking, error) {
	query := `
		SELECT id, customer_name, phone_number, date, start_time, duration, status
		FROM bookings
		WHERE date = $1
		ORDER BY id ASC
	`

	rows, err := r.pool.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings by date: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateBookingStatus applies an admin decision to a pending booking
func (r *Repository) UpdateBookingStatus(ctx context.Context, id int64, status Status) (*Booking, error) {
	query := `
		UPDATE bookings
		SET status = $2
		WHERE id = $1 AND status = 'pending'
		RETURNING id, customer_name, phone_number, date, start_time, duration, status
	`

	var b Booking
	err := r.pool.QueryRow(ctx, query, id, status).
		Scan(&b.ID, &b.CustomerName, &b.PhoneNumber, &b.Date, &b.StartTime, &b.Duration, &b.Status)
	if err == nil {
		return &b, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	// No pending row matched: distinguish a missing booking from a decided one.
	var existing Status
	err = r.pool.QueryRow(ctx, `SELECT status FROM bookings WHERE id = $1`, id).Scan(&existing)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up booking %d: %w", id, err)
	}
	return nil, ErrAlreadyDecided
}

func scanBookings(rows pgx.Rows) ([]Booking, error) {
	var bookings []Booking
	for rows.Next() {
		var b Booking
		err := rows.Scan(&b.ID, &b.CustomerName, &b.PhoneNumber, &b.Date, &b.StartTime, &b.Duration, &b.Status)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bookings: %w", err)
	}
	return bookings, nil
}
