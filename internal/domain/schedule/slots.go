package schedule

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// SlotGranularity is the fixed length of a bookable slot.
const SlotGranularity = 30 * time.Minute

const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04"
	DateTimeLayout = DateLayout + " " + TimeLayout
)

// Weekday numbers days Monday=0 … Sunday=6.
func Weekday(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

func ValidateWeekday(weekday int) error {
	if weekday < 0 || weekday > 6 {
		return httperr.InvalidRange("weekday must be between 0 (Monday) and 6 (Sunday)")
	}
	return nil
}

func ValidateHours(startHour, endHour int) error {
	if startHour < 0 || startHour > 23 || endHour < 0 || endHour > 23 {
		return httperr.InvalidRange("hours must be between 0 and 23")
	}
	if startHour >= endHour {
		return httperr.InvalidRange("start hour must be before end hour")
	}
	return nil
}

// NewShift builds a shift that already satisfies every range rule.
func NewShift(barberID uint, weekday, startHour, endHour int) (*models.Shift, error) {
	if err := ValidateWeekday(weekday); err != nil {
		return nil, err
	}
	if err := ValidateHours(startHour, endHour); err != nil {
		return nil, err
	}
	return &models.Shift{
		BarberID:  barberID,
		Weekday:   weekday,
		StartHour: startHour,
		EndHour:   endHour,
	}, nil
}

func ParseDate(value string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, value, loc)
	if err != nil {
		return time.Time{}, httperr.InvalidDateFormat("date must use YYYY-MM-DD")
	}
	return d, nil
}

func ParseSlot(date, hm string, loc *time.Location) (time.Time, error) {
	ts, err := time.ParseInLocation(DateTimeLayout, date+" "+hm, loc)
	if err != nil {
		return time.Time{}, httperr.InvalidDateFormat("date and time must use YYYY-MM-DD and HH:MM")
	}
	return ts, nil
}

// DayBounds returns the first and last representable instants of date's
// calendar day.
func DayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return start, start.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func atHour(date time.Time, hour int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, date.Location())
}

// CandidateSlots lists every slot start in [startHour:00, endHour:00) on
// date, in chronological order.
func CandidateSlots(date time.Time, startHour, endHour int) []time.Time {
	start := atHour(date, startHour)
	end := atHour(date, endHour)

	var slots []time.Time
	for cur := start; cur.Before(end); cur = cur.Add(SlotGranularity) {
		slots = append(slots, cur)
	}
	return slots
}

// FreeSlots drops every candidate that matches a booked instant exactly.
func FreeSlots(candidates []time.Time, booked []time.Time) []string {
	taken := make(map[int64]struct{}, len(booked))
	for _, b := range booked {
		taken[b.UnixNano()] = struct{}{}
	}

	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := taken[c.UnixNano()]; ok {
			continue
		}
		out = append(out, c.Format(TimeLayout))
	}
	return out
}

// Offers reports whether ts is a slot the shift hands out: inside the
// window and on a granularity boundary counted from the start hour.
func Offers(shift *models.Shift, ts time.Time) bool {
	if shift == nil || Weekday(ts) != shift.Weekday {
		return false
	}
	start := atHour(ts, shift.StartHour)
	end := atHour(ts, shift.EndHour)
	if ts.Before(start) || !ts.Before(end) {
		return false
	}
	return ts.Sub(start)%SlotGranularity == 0
}
