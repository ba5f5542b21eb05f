// Package schedule builds the canonical working-day slots and owns the date and time formats.
package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var (
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidTime = errors.New("invalid time, expected HH:MM")
)

// Policy describes the shape of a working day.
type Policy struct {
	StartHour  int
	SlotCount  int
	SlotLength time.Duration
	ClosedDays []time.Weekday
}

// DefaultPolicy opens at 10:00 with eight hourly slots and closes on weekends.
func DefaultPolicy() Policy {
	return Policy{
		StartHour:  10,
		SlotCount:  8,
		SlotLength: time.Hour,
		ClosedDays: []time.Weekday{time.Saturday, time.Sunday},
	}
}

// NewPolicy builds an hourly policy from configuration values.
func NewPolicy(startHour, slotCount int, closedDays []string) (Policy, error) {
	days, err := ParseWeekdays(closedDays)
	if err != nil {
		return Policy{}, err
	}
	p := Policy{StartHour: startHour, SlotCount: slotCount, SlotLength: time.Hour, ClosedDays: days}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// Validate rejects policies whose slots do not fit in a single day.
func (p Policy) Validate() error {
	if p.StartHour < 0 || p.StartHour > 23 {
		return fmt.Errorf("start hour %d out of range", p.StartHour)
	}
	if p.SlotCount <= 0 || p.SlotLength <= 0 {
		return fmt.Errorf("policy needs a positive slot count and length")
	}
	end := time.Duration(p.StartHour)*time.Hour + time.Duration(p.SlotCount)*p.SlotLength
	if end > 24*time.Hour {
		return fmt.Errorf("slots run past midnight")
	}
	return nil
}

// IsClosed reports whether no slots are offered on day.
func (p Policy) IsClosed(day time.Weekday) bool {
	for _, d := range p.ClosedDays {
		if d == day {
			return true
		}
	}
	return false
}

// GenerateSlots returns the ordered slot times offered on date.
// A closed day yields an empty, non-nil list.
func (p Policy) GenerateSlots(date string) ([]string, error) {
	d, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	if p.IsClosed(d.Weekday()) {
		return []string{}, nil
	}

	start := time.Date(d.Year(), d.Month(), d.Day(), p.StartHour, 0, 0, 0, time.UTC)
	slots := make([]string, 0, p.SlotCount)
	for i := 0; i < p.SlotCount; i++ {
		slots = append(slots, start.Add(time.Duration(i)*p.SlotLength).Format(TimeLayout))
	}
	return slots, nil
}

// ParseDate accepts only the canonical zero-padded YYYY-MM-DD form.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil || t.Format(DateLayout) != s {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// ParseTime accepts only the canonical zero-padded HH:MM form.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil || t.Format(TimeLayout) != s {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return t, nil
}

// Weekday numbers days from Monday = 0 to Sunday = 6.
func Weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// MinutesBetween returns to minus from, in minutes.
func MinutesBetween(from, to string) (int, error) {
	f, err := ParseTime(from)
	if err != nil {
		return 0, err
	}
	t, err := ParseTime(to)
	if err != nil {
		return 0, err
	}
	return int(t.Sub(f) / time.Minute), nil
}

// Today returns the calendar date of now.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

var weekdayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

// ParseWeekdays maps English day names to weekdays.
func ParseWeekdays(names []string) ([]time.Weekday, error) {
	days := make([]time.Weekday, 0, len(names))
	for _, n := range names {
		d, ok := weekdayNames[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", n)
		}
		days = append(days, d)
	}
	return days, nil
}
