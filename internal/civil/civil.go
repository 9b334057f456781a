// Package civil provides the canonical calendar-date value used everywhere
// dates are stored, compared, or used as map keys. External inputs arrive in
// two historical formats (ISO "2006-01-02" and Brazilian "02/01/2006"); both
// are normalized at the boundary and never compared as raw strings.
package civil

import (
	"fmt"
	"strings"
	"time"
)

// Date is a calendar date without time-of-day or location. The zero value is
// not a valid date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ErrInvalidDate indicates a date string that matches neither accepted format
// or names a day that does not exist.
var ErrInvalidDate = fmt.Errorf("civil: data inválida")

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return Date{Year: year, Month: month, Day: day}
}

// ParseDate accepts the ISO form "2006-01-02" and the legacy Brazilian form
// "02/01/2006", returning the same canonical value for either. Parsing the
// output of String is always the identity.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)

	layout := "2006-01-02"
	if strings.Contains(s, "/") {
		layout = "02/01/2006"
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// MustParseDate is a test and fixture helper that panics on malformed input.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// String renders the canonical ISO form used for storage keys.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// BR renders the Brazilian display form.
func (d Date) BR() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, int(d.Month), d.Year)
}

// IsZero reports whether d is the zero value.
func (d Date) IsZero() bool {
	return d == Date{}
}

// IsValid reports whether d names an existing calendar day.
func (d Date) IsValid() bool {
	return !d.IsZero() && DateOf(d.In(time.UTC)) == d
}

// In returns the midnight instant of d in the supplied location.
func (d Date) In(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday {
	return d.In(time.UTC).Weekday()
}

// IsDomingo reports whether d falls on a Sunday.
func (d Date) IsDomingo() bool {
	return d.Weekday() == time.Sunday
}

// IsSabado reports whether d falls on a Saturday.
func (d Date) IsSabado() bool {
	return d.Weekday() == time.Saturday
}

// IsFimDeSemana reports whether d falls on a weekend.
func (d Date) IsFimDeSemana() bool {
	return d.IsDomingo() || d.IsSabado()
}

// AddDays returns the date n days after d (or before, for negative n).
func (d Date) AddDays(n int) Date {
	return DateOf(d.In(time.UTC).AddDate(0, 0, n))
}

// Before reports whether d precedes other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// After reports whether d follows other.
func (d Date) After(other Date) bool {
	return other.Before(d)
}

// FirstOfMonth returns the first day of d's month.
func (d Date) FirstOfMonth() Date {
	return Date{Year: d.Year, Month: d.Month, Day: 1}
}

// DaysInMonth returns the number of days in d's month.
func (d Date) DaysInMonth() int {
	first := time.Date(d.Year, d.Month, 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1).Day()
}

// AddMonths returns the first day of the month n months away from d's month.
// Month navigation always lands on day one so a cursor never skips short months.
func (d Date) AddMonths(n int) Date {
	first := time.Date(d.Year, d.Month, 1, 0, 0, 0, 0, time.UTC)
	return DateOf(first.AddDate(0, n, 0))
}
