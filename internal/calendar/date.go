package calendar

import (
	"cmp"
	"fmt"
	"time"
)

// Date is a day in the Persian calendar.
//
// Dates are immutable values; every operation that changes a field returns
// a new Date. The zero Date is not valid.
type Date struct {
	year  int
	month int
	day   int
}

// NewDate returns the Persian date year/month/day, or ErrInvalidDate.
func NewDate(year, month, day int) (Date, error) {
	d := Date{year: year, month: month, day: day}
	if !d.IsValid() {
		return Date{}, ErrInvalidDate
	}
	return d, nil
}

// DateFromUncheckedParts builds a Date without validation.
//
// The caller guarantees the parts form a valid date. Operations on a Date
// that violates this are undefined: some report ErrInvalidDate, others
// (FirstDayOfMonth and friends) silently produce garbage. Use IsValid to
// check after the fact.
func DateFromUncheckedParts(year, month, day int) Date {
	return Date{year: year, month: month, day: day}
}

// DateFromOrdinal returns the date for the 1-based day-of-year ordinal.
func DateFromOrdinal(year, ordinal int) (Date, error) {
	if ordinal < 1 || ordinal > DaysInYear(year) {
		return Date{}, ErrInvalidOrdinal
	}

	month := 1
	remaining := ordinal
	for month < 12 {
		length := DaysInMonth(year, month)
		if remaining <= length {
			break
		}
		remaining -= length
		month++
	}

	return NewDate(year, month, remaining)
}

// Today returns the current Persian date in the host's local time zone.
func Today() (Date, error) {
	return DateFromGregorian(time.Now())
}

// Year returns the year.
func (d Date) Year() int { return d.year }

// Month returns the month, 1 (Farvardin) through 12 (Esfand).
func (d Date) Month() int { return d.month }

// Day returns the day of the month.
func (d Date) Day() int { return d.day }

// IsValid reports whether d is a real Persian date within the supported
// range.
func (d Date) IsValid() bool {
	if d.year < MinYear || d.year > MaxYear {
		return false
	}
	if d.month < 1 || d.month > 12 {
		return false
	}
	return d.day >= 1 && d.day <= DaysInMonth(d.year, d.month)
}

// IsLeapYear reports whether d falls in a Persian leap year.
func (d Date) IsLeapYear() bool {
	return IsPersianLeapYear(d.year)
}

// Weekday returns the Persian name of the day of the week.
func (d Date) Weekday() (string, error) {
	n, err := d.WeekdayNumber()
	if err != nil {
		return "", err
	}
	return WeekdayNames[n], nil
}

// WeekdayNumber returns the day of the week with Saturday as 0 and Friday
// as 6.
func (d Date) WeekdayNumber() (int, error) {
	g, err := d.ToGregorian()
	if err != nil {
		return 0, err
	}
	// time.Weekday counts from Sunday; the Persian week starts a day earlier.
	return (int(g.Weekday()) + 1) % 7, nil
}

// Ordinal returns the 1-based day of the year.
func (d Date) Ordinal() (int, error) {
	if !d.IsValid() {
		return 0, ErrInvalidDate
	}
	return daysBeforeMonth(d.year, d.month) + d.day, nil
}

// WeekOfYear returns the week number within the Persian year.
//
// Weeks run Saturday through Friday. Week 1 is the (possibly partial) week
// containing Farvardin 1st, so a year spans 53 or 54 weeks.
func (d Date) WeekOfYear() (int, error) {
	ordinal, err := d.Ordinal()
	if err != nil {
		return 0, err
	}
	firstWeekday, err := d.FirstDayOfYear().WeekdayNumber()
	if err != nil {
		return 0, err
	}
	return (ordinal+firstWeekday-1)/7 + 1, nil
}

// FirstDayOfMonth returns the 1st of d's month. d must be valid.
func (d Date) FirstDayOfMonth() Date {
	return Date{year: d.year, month: d.month, day: 1}
}

// LastDayOfMonth returns the last day of d's month. d must be valid.
func (d Date) LastDayOfMonth() Date {
	return Date{year: d.year, month: d.month, day: DaysInMonth(d.year, d.month)}
}

// FirstDayOfYear returns Farvardin 1st of d's year. d must be valid.
func (d Date) FirstDayOfYear() Date {
	return Date{year: d.year, month: 1, day: 1}
}

// LastDayOfYear returns the last day of Esfand in d's year. d must be valid.
func (d Date) LastDayOfYear() Date {
	return Date{year: d.year, month: 12, day: DaysInMonth(d.year, 12)}
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to
// or after other. Fields are compared as stored, without validation.
func (d Date) Compare(other Date) int {
	switch {
	case d.year != other.year:
		return cmp.Compare(d.year, other.year)
	case d.month != other.month:
		return cmp.Compare(d.month, other.month)
	default:
		return cmp.Compare(d.day, other.day)
	}
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }

// After reports whether d is later than other.
func (d Date) After(other Date) bool { return d.Compare(other) > 0 }

// Equal reports whether d and other are the same day.
func (d Date) Equal(other Date) bool { return d == other }

// String formats d as YYYY/MM/DD.
func (d Date) String() string {
	return fmt.Sprintf("%d/%02d/%02d", d.year, d.month, d.day)
}
