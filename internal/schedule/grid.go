// Package schedule derives the day's half-hour slot grid and tracks the
// in-progress slot selection for a booking session. Slots are not persisted;
// occupancy is computed per request from the bookings on a date.
package schedule

import (
	"fmt"

	"github.com/soundroom/studio-booking/internal/database"
)

// SlotCount is the number of half-hour slots in a day
const SlotCount = 48

// SlotStatus is the derived occupancy of a single slot
type SlotStatus string

const (
	SlotFree     SlotStatus = "free"
	SlotPending  SlotStatus = "pending"
	SlotApproved SlotStatus = "approved"
)

// Slot pairs a time label with its derived occupancy
type Slot struct {
	Time   string     `json:"time"`
	Status SlotStatus `json:"status"`
}

var timeSlots = buildTimeSlots()

func buildTimeSlots() []string {
	slots := make([]string, SlotCount)
	for i := range slots {
		minute := "00"
		if i%2 == 1 {
			minute = "30"
		}
		slots[i] = fmt.Sprintf("%02d:%s", i/2, minute)
	}
	return slots
}

// TimeSlots returns the day's 48 labels, 00:00 through 23:30
func TimeSlots() []string {
	out := make([]string, SlotCount)
	copy(out, timeSlots)
	return out
}

// SlotIndex returns a label's position in the day grid, or -1 if the label
// is not a valid half-hour time
func SlotIndex(label string) int {
	for i, t := range timeSlots {
		if t == label {
			return i
		}
	}
	return -1
}

// statusAt computes the occupancy of the slot at index idx on the given date.
// A booking covers indices [start, start+duration*2); rejected bookings do
// not occupy slots. When bookings overlap (the store does not prevent it) the
// first match in list order wins; callers must not rely on which one that is.
func statusAt(idx int, date string, bookings []database.Booking) SlotStatus {
	for _, b := range bookings {
		if b.Date != date || b.Status == database.StatusRejected {
			continue
		}
		start := SlotIndex(b.StartTime)
		if start < 0 {
			continue
		}
		if idx >= start && idx < start+b.Duration*2 {
			if b.Status == database.StatusApproved {
				return SlotApproved
			}
			return SlotPending
		}
	}
	return SlotFree
}

// StatusOf computes the occupancy of a single labeled slot
func StatusOf(label, date string, bookings []database.Booking) SlotStatus {
	idx := SlotIndex(label)
	if idx < 0 {
		return SlotFree
	}
	return statusAt(idx, date, bookings)
}

// Grid computes the full day grid for a date
func Grid(date string, bookings []database.Booking) []Slot {
	grid := make([]Slot, SlotCount)
	for i := range grid {
		grid[i] = Slot{
			Time:   timeSlots[i],
			Status: statusAt(i, date, bookings),
		}
	}
	return grid
}
