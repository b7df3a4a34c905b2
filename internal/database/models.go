package database

import (
	"context"
	"errors"
)

var (
	ErrNotFound       = errors.New("booking not found")
	ErrAlreadyDecided = errors.New("booking already decided")
)

// Status represents the lifecycle state of a booking
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// IsDecision reports whether s is a valid admin decision
func (s Status) IsDecision() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransition reports whether a booking may move from one status to another.
// Only pending bookings can be decided; decided bookings stay decided.
func CanTransition(from, to Status) bool {
	return from == StatusPending && to.IsDecision()
}

// Booking represents a reservation request for the practice room
type Booking struct {
	ID           int64  `json:"id"`
	CustomerName string `json:"customerName"`
	PhoneNumber  string `json:"phoneNumber"`
	Date         string `json:"date"`      // YYYY-MM-DD
	StartTime    string `json:"startTime"` // HH:MM, half-hour aligned
	Duration     int    `json:"duration"`  // hours, 1-10
	Status       Status `json:"status"`
}

// InsertBooking carries the client-supplied fields of a new booking.
// ID and Status are assigned by the store.
type InsertBooking struct {
	CustomerName string `json:"customerName"`
	PhoneNumber  string `json:"phoneNumber"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
	Duration     int    `json:"duration"`
}

// Store is the persistence boundary for bookings
type Store interface {
	CreateBooking(ctx context.Context, req InsertBooking) (*Booking, error)
	GetBookings(ctx context.Context) ([]Booking, error)
	GetBookingsByDate(ctx context.Context, date string) ([]Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, status Status) (*Booking, error)
}
