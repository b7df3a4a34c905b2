package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/soundroom/studio-booking/internal/database"
	"github.com/soundroom/studio-booking/internal/schedule"
)

// MockBookingService is a mock implementation of BookingService
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CreateBooking(ctx context.Context, req database.InsertBooking) (*database.Booking, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Booking), args.Error(1)
}

func (m *MockBookingService) GetBookings(ctx context.Context) ([]database.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]database.Booking), args.Error(1)
}

func (m *MockBookingService) GetBookingsByDate(ctx context.Context, date string) ([]database.Booking, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]database.Booking), args.Error(1)
}

func (m *MockBookingService) GetDaySchedule(ctx context.Context, date string) ([]schedule.Slot, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schedule.Slot), args.Error(1)
}

func (m *MockBookingService) Approve(ctx context.Context, id int64) (*database.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Booking), args.Error(1)
}

func (m *MockBookingService) Reject(ctx context.Context, id int64) (*database.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Booking), args.Error(1)
}
