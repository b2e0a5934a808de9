package calendar

import "time"

const secondsPerDay = 24 * 60 * 60

// epoch is Farvardin 1st, year 1, in the proleptic Gregorian calendar.
var epoch = time.Date(622, time.March, 21, 0, 0, 0, 0, time.UTC)

// maxDayOffset is the day offset of MaxDate from the epoch.
var maxDayOffset = daysBeforeYear(MaxYear) + int64(DaysInYear(MaxYear)) - 1

// GregorianDate returns midnight UTC of the given Gregorian day. Unlike
// time.Date it rejects out-of-range months and days instead of normalizing
// them.
func GregorianDate(year int, month time.Month, day int) (time.Time, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, ErrGregorianConversion
	}
	return t, nil
}

// gregorianDayIndex returns the number of whole days from the epoch to the
// calendar day of t, read in t's own location.
func gregorianDayIndex(t time.Time) int64 {
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return (midnight.Unix() - epoch.Unix()) / secondsPerDay
}

// DateFromGregorian converts the calendar day of t (in t's location) to a
// Persian date.
//
// It returns ErrGregorianConversion for days before 622-03-21 or after
// the last day of Persian year 9999.
func DateFromGregorian(t time.Time) (Date, error) {
	days := gregorianDayIndex(t)
	if days < 0 {
		return Date{}, ErrGregorianConversion
	}
	return dateFromDayIndex(days)
}

// dateFromDayIndex maps a day offset from the epoch to a Persian date.
//
// The year is first estimated as days/365 and then refined until
// Farvardin 1st of the candidate year is on or before the target and
// Farvardin 1st of the following year is after it.
func dateFromDayIndex(days int64) (Date, error) {
	if days < 0 {
		return Date{}, ErrGregorianConversion
	}

	year := MinYear + int(min(days/365, MaxYear))
	maxIterations := MaxYear - MinYear + 2
	for i := 0; ; i++ {
		if i > maxIterations {
			return Date{}, ErrGregorianConversion
		}
		if daysBeforeYear(year) > days {
			year--
			continue
		}
		if year > MaxYear {
			return Date{}, ErrGregorianConversion
		}
		if year == MaxYear || daysBeforeYear(year+1) > days {
			break
		}
		year++
	}

	remaining := int(days - daysBeforeYear(year))
	if remaining >= DaysInYear(year) {
		// Only reachable for year == MaxYear: the day lies in year 10000.
		return Date{}, ErrGregorianConversion
	}

	month := 1
	for ; month < 12; month++ {
		length := DaysInMonth(year, month)
		if remaining < length {
			break
		}
		remaining -= length
	}

	d, err := NewDate(year, month, remaining+1)
	if err != nil {
		return Date{}, ErrGregorianConversion
	}
	return d, nil
}

// dayIndex returns the number of days between the epoch and d. d must be
// valid.
func (d Date) dayIndex() (int64, error) {
	offset := daysBeforeYear(d.year) + int64(daysBeforeMonth(d.year, d.month)) + int64(d.day-1)
	if offset < 0 || offset > maxDayOffset {
		return 0, ErrGregorianConversion
	}
	return offset, nil
}

// ToGregorian returns midnight UTC of the Gregorian day equal to d.
func (d Date) ToGregorian() (time.Time, error) {
	if !d.IsValid() {
		return time.Time{}, ErrInvalidDate
	}
	offset, err := d.dayIndex()
	if err != nil {
		return time.Time{}, err
	}
	return epoch.AddDate(0, 0, int(offset)), nil
}
