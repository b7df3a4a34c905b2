package service

import (
	"strings"
	"time"

	"github.com/soundroom/studio-booking/internal/database"
	"github.com/soundroom/studio-booking/internal/schedule"
)

// User-facing validation messages, checked in this order on submission.
const (
	MsgSelectDate     = "Please select a date"
	MsgSelectTime     = "Please select a time"
	MsgWholeHoursOnly = "Bookings must be made in whole-hour increments"
)

const (
	minPhoneLen = 10
	maxPhoneLen = 13
	minDuration = 1
	maxDuration = 10
)

// ValidationError is a rejected booking submission. Its message is safe to
// show to the user.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// FormatPhoneNumber strips non-digit characters and regroups the digits as
// XXX, XXX-XXXX or XXX-XXXX-XXXX, ignoring input past the 13-character
// formatted maximum.
func FormatPhoneNumber(value string) string {
	var digits []byte
	for i := 0; i < len(value); i++ {
		if value[i] >= '0' && value[i] <= '9' {
			digits = append(digits, value[i])
		}
	}
	if len(digits) > 11 {
		digits = digits[:11]
	}

	s := string(digits)
	switch {
	case len(s) <= 3:
		return s
	case len(s) <= 7:
		return s[:3] + "-" + s[3:]
	default:
		return s[:3] + "-" + s[3:7] + "-" + s[7:]
	}
}

// ValidateInsert applies the schema-level checks to a booking request
func ValidateInsert(req database.InsertBooking) error {
	if strings.TrimSpace(req.CustomerName) == "" {
		return invalid("Please enter your name")
	}
	if req.PhoneNumber == "" {
		return invalid("Please enter your phone number")
	}
	if len(req.PhoneNumber) < minPhoneLen || len(req.PhoneNumber) > maxPhoneLen {
		return invalid("Phone number must be 10 to 13 characters")
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return invalid("Invalid booking date")
	}
	if schedule.SlotIndex(req.StartTime) < 0 {
		return invalid("Invalid start time")
	}
	if req.Duration < minDuration || req.Duration > maxDuration {
		return invalid("Duration must be between 1 and 10 hours")
	}
	return nil
}

// BuildBookingRequest converts a date, an in-progress slot selection and the
// form fields into a create request. Checks run in submission order: missing
// date, empty selection, odd slot count, then the schema checks. The caller
// resets the selection after a successful submit.
func BuildBookingRequest(date string, sel *schedule.Selection, customerName, phoneNumber string) (*database.InsertBooking, error) {
	if date == "" {
		return nil, invalid(MsgSelectDate)
	}
	if sel == nil || sel.IsEmpty() {
		return nil, invalid(MsgSelectTime)
	}
	if sel.Len()%2 != 0 {
		return nil, invalid(MsgWholeHoursOnly)
	}

	times := sel.Times()
	req := database.InsertBooking{
		CustomerName: strings.TrimSpace(customerName),
		PhoneNumber:  FormatPhoneNumber(phoneNumber),
		Date:         date,
		StartTime:    times[0],
		Duration:     len(times) / 2,
	}
	if err := ValidateInsert(req); err != nil {
		return nil, err
	}
	return &req, nil
}
