package schedule

import "errors"

// ErrNotContiguous is returned when a toggle would break the contiguous run.
// It is a session-local condition, surfaced to the user as a notice, never as
// an HTTP error.
var ErrNotContiguous = errors.New("only consecutive time slots can be selected")

// Selection tracks the in-progress contiguous slot pick of one booking
// session. It is sequential state for a single user and is not safe for
// concurrent use.
//
// Invariant: the selected labels always form one contiguous run of grid
// indices, built by appending at the tail or truncating from the tail.
type Selection struct {
	times []string
}

// NewSelection returns an empty selection
func NewSelection() *Selection {
	return &Selection{}
}

// Times returns the selected labels in grid order
func (s *Selection) Times() []string {
	out := make([]string, len(s.times))
	copy(out, s.times)
	return out
}

// Len returns the number of selected slots
func (s *Selection) Len() int {
	return len(s.times)
}

// IsEmpty reports whether nothing is selected
func (s *Selection) IsEmpty() bool {
	return len(s.times) == 0
}

// Reset clears the selection; called on date change and after submission
func (s *Selection) Reset() {
	s.times = nil
}

// Toggle applies a click on the slot labeled t. Occupied slots are ignored.
// Deselecting a chosen slot also drops everything chosen after it, so the
// remaining run stays contiguous. A new slot is accepted only immediately
// after the current tail; otherwise ErrNotContiguous is returned and the
// selection is unchanged.
func (s *Selection) Toggle(t string, status SlotStatus) error {
	if status != SlotFree {
		return nil
	}

	idx := SlotIndex(t)
	if idx < 0 {
		return nil
	}

	for k, chosen := range s.times {
		if chosen == t {
			s.times = s.times[:k]
			return nil
		}
	}

	if len(s.times) == 0 {
		s.times = []string{t}
		return nil
	}

	last := SlotIndex(s.times[len(s.times)-1])
	if idx != last+1 {
		return ErrNotContiguous
	}

	s.times = append(s.times, t)
	return nil
}
