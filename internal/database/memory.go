package database

import (
	"context"
	"sort"
	"sync"
)

// MemStore is an in-memory Store. All data is lost on restart; a deployment
// that needs durability swaps in Repository, which implements the same
// interface against Postgres.
type MemStore struct {
	mu       sync.RWMutex
	bookings map[int64]Booking
	nextID   int64
}

// NewMemStore creates an empty in-memory store
func NewMemStore() *MemStore {
	return &MemStore{
		bookings: make(map[int64]Booking),
		nextID:   1,
	}
}

// CreateBooking assigns the next id and stores the booking as pending
func (s *MemStore) CreateBooking(ctx context.Context, req InsertBooking) (*Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking := Booking{
		ID:           s.nextID,
		CustomerName: req.CustomerName,
		PhoneNumber:  req.PhoneNumber,
		Date:         req.Date,
		StartTime:    req.StartTime,
		Duration:     req.Duration,
		Status:       StatusPending,
	}
	s.bookings[booking.ID] = booking
	s.nextID++

	return &booking, nil
}

// GetBookings returns all bookings in ascending id order
func (s *MemStore) GetBookings(ctx context.Context) ([]Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bookings := make([]Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		bookings = append(bookings, b)
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].ID < bookings[j].ID })

	return bookings, nil
}

// GetBookingsByDate returns bookings whose date matches exactly
func (s *MemStore) GetBookingsByDate(ctx context.Context, date string) ([]Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var bookings []Booking
	for _, b := range s.bookings {
		if b.Date == date {
			bookings = append(bookings, b)
		}
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].ID < bookings[j].ID })

	return bookings, nil
}

// UpdateBookingStatus applies an admin decision to a pending booking
func (s *MemStore) UpdateBookingStatus(ctx context.Context, id int64, status Status) (*Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !CanTransition(booking.Status, status) {
		return nil, ErrAlreadyDecided
	}

	booking.Status = status
	s.bookings[id] = booking

	return &booking, nil
}
