package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/soundroom/studio-booking/internal/database"
	"github.com/soundroom/studio-booking/internal/metrics"
	"github.com/soundroom/studio-booking/internal/schedule"
)

// Broadcaster pushes booking changes to connected clients
type Broadcaster interface {
	BroadcastBookingCreated(booking *database.Booking)
	BroadcastBookingDecided(booking *database.Booking)
}

// BookingService defines the booking service interface
type BookingService interface {
	CreateBooking(ctx context.Context, req database.InsertBooking) (*database.Booking, error)
	GetBookings(ctx context.Context) ([]database.Booking, error)
	GetBookingsByDate(ctx context.Context, date string) ([]database.Booking, error)
	GetDaySchedule(ctx context.Context, date string) ([]schedule.Slot, error)
	Approve(ctx context.Context, id int64) (*database.Booking, error)
	Reject(ctx context.Context, id int64) (*database.Booking, error)
}

// bookingServiceImpl implements BookingService
type bookingServiceImpl struct {
	store  database.Store
	hub    Broadcaster
	logger *zap.Logger
}

// NewBookingService creates a new BookingService. hub may be nil when no
// push channel is wired (tests, CLI tooling).
func NewBookingService(store database.Store, hub Broadcaster, logger *zap.Logger) BookingService {
	return &bookingServiceImpl{
		store:  store,
		hub:    hub,
		logger: logger,
	}
}

// CreateBooking validates and stores a new reservation request. The stored
// record is always pending regardless of input.
func (s *bookingServiceImpl) CreateBooking(ctx context.Context, req database.InsertBooking) (*database.Booking, error) {
	if err := ValidateInsert(req); err != nil {
		metrics.IncInvalidInput()
		return nil, err
	}

	booking, err := s.store.CreateBooking(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	metrics.IncBookingCreated()
	s.logger.Info("booking created",
		zap.Int64("id", booking.ID),
		zap.String("date", booking.Date),
		zap.String("start_time", booking.StartTime),
		zap.Int("duration", booking.Duration))

	if s.hub != nil {
		s.hub.BroadcastBookingCreated(booking)
	}
	return booking, nil
}

func (s *bookingServiceImpl) GetBookings(ctx context.Context) ([]database.Booking, error) {
	return s.store.GetBookings(ctx)
}

func (s *bookingServiceImpl) GetBookingsByDate(ctx context.Context, date string) ([]database.Booking, error) {
	return s.store.GetBookingsByDate(ctx, date)
}

// GetDaySchedule derives the 48-slot occupancy grid for a date
func (s *bookingServiceImpl) GetDaySchedule(ctx context.Context, date string) ([]schedule.Slot, error) {
	bookings, err := s.store.GetBookingsByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings for %s: %w", date, err)
	}
	return schedule.Grid(date, bookings), nil
}

// Approve marks a pending booking approved
func (s *bookingServiceImpl) Approve(ctx context.Context, id int64) (*database.Booking, error) {
	return s.decide(ctx, id, database.StatusApproved)
}

// Reject marks a pending booking rejected
func (s *bookingServiceImpl) Reject(ctx context.Context, id int64) (*database.Booking, error) {
	return s.decide(ctx, id, database.StatusRejected)
}

func (s *bookingServiceImpl) decide(ctx context.Context, id int64, status database.Status) (*database.Booking, error) {
	booking, err := s.store.UpdateBookingStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	metrics.IncBookingDecision(string(status))
	s.logger.Info("booking decided",
		zap.Int64("id", booking.ID),
		zap.String("status", string(booking.Status)))

	if s.hub != nil {
		s.hub.BroadcastBookingDecided(booking)
	}
	return booking, nil
}
