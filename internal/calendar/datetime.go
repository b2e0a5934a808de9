package calendar

import (
	"cmp"
	"fmt"
	"time"
)

// DateTime is a Persian date with a second-resolution time of day.
// It carries no time zone; see ZonedDateTime for that.
type DateTime struct {
	date   Date
	hour   int
	minute int
	second int
}

func validClock(hour, minute, second int) bool {
	return hour >= 0 && hour <= 23 &&
		minute >= 0 && minute <= 59 &&
		second >= 0 && second <= 59
}

// NewDateTime validates and builds a DateTime. The date is checked first,
// so an invalid date reports ErrInvalidDate even if the time is also bad.
func NewDateTime(year, month, day, hour, minute, second int) (DateTime, error) {
	d, err := NewDate(year, month, day)
	if err != nil {
		return DateTime{}, err
	}
	return NewDateTimeFromDate(d, hour, minute, second)
}

// NewDateTimeFromDate attaches a time of day to d. Only the time is
// validated.
func NewDateTimeFromDate(d Date, hour, minute, second int) (DateTime, error) {
	if !validClock(hour, minute, second) {
		return DateTime{}, ErrInvalidTime
	}
	return DateTime{date: d, hour: hour, minute: minute, second: second}, nil
}

// DateTimeFromUncheckedParts builds a DateTime without validation. The
// same caller obligations as DateFromUncheckedParts apply.
func DateTimeFromUncheckedParts(year, month, day, hour, minute, second int) DateTime {
	return DateTime{
		date:   DateFromUncheckedParts(year, month, day),
		hour:   hour,
		minute: minute,
		second: second,
	}
}

// DateTimeFromGregorian converts the wall clock of t (in t's location).
// Sub-second precision is discarded.
func DateTimeFromGregorian(t time.Time) (DateTime, error) {
	d, err := DateFromGregorian(t)
	if err != nil {
		return DateTime{}, err
	}
	return NewDateTimeFromDate(d, t.Hour(), t.Minute(), t.Second())
}

// Now returns the current Persian date and time in the host's local zone.
func Now() (DateTime, error) {
	return DateTimeFromGregorian(time.Now())
}

// ToGregorian returns the equivalent Gregorian wall clock, expressed in
// UTC.
func (dt DateTime) ToGregorian() (time.Time, error) {
	if err := dt.check(); err != nil {
		return time.Time{}, err
	}
	g, err := dt.date.ToGregorian()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(g.Year(), g.Month(), g.Day(), dt.hour, dt.minute, dt.second, 0, time.UTC), nil
}

// check reports ErrInvalidDate for a bad date part, else ErrInvalidTime
// for a bad clock.
func (dt DateTime) check() error {
	if !dt.date.IsValid() {
		return ErrInvalidDate
	}
	if !validClock(dt.hour, dt.minute, dt.second) {
		return ErrInvalidTime
	}
	return nil
}

// Date returns the date part.
func (dt DateTime) Date() Date { return dt.date }

func (dt DateTime) Year() int { return dt.date.year }
func (dt DateTime) Month() int { return dt.date.month }
func (dt DateTime) Day() int { return dt.date.day }
func (dt DateTime) Hour() int { return dt.hour }
func (dt DateTime) Minute() int { return dt.minute }
func (dt DateTime) Second() int { return dt.second }

// Clock returns the hour, minute and second.
func (dt DateTime) Clock() (hour, minute, second int) {
	return dt.hour, dt.minute, dt.second
}

// IsValid reports whether both the date and the time of day are valid.
func (dt DateTime) IsValid() bool {
	return dt.check() == nil
}

// withDate keeps the time of day and swaps the date.
func (dt DateTime) withDate(d Date, err error) (DateTime, error) {
	if err != nil {
		return DateTime{}, err
	}
	dt.date = d
	return dt, nil
}

// AddDays shifts the date by days, keeping the time of day.
func (dt DateTime) AddDays(days int) (DateTime, error) {
	if err := dt.check(); err != nil {
		return DateTime{}, err
	}
	return dt.withDate(dt.date.AddDays(days))
}

// SubDays moves the date back by days, keeping the time of day.
func (dt DateTime) SubDays(days int) (DateTime, error) {
	if err := dt.check(); err != nil {
		return DateTime{}, err
	}
	return dt.withDate(dt.date.SubDays(days))
}

// AddMonths shifts the date by months with day clamping, keeping the time
// of day.
func (dt DateTime) AddMonths(months int) (DateTime, error) {
	if err := dt.check(); err != nil {
		return DateTime{}, err
	}
	return dt.withDate(dt.date.AddMonths(months))
}

// SubMonths moves the date back by months with day clamping.
func (dt DateTime) SubMonths(months int) (DateTime, error) {
	if err := dt.check(); err != nil {
		return DateTime{}, err
	}
	return dt.withDate(dt.date.SubMonths(months))
}

// AddYears shifts the date by years with leap-day clamping.
func (dt DateTime) AddYears(years int) (DateTime, error) {
	if err := dt.check(); err != nil {
		return DateTime{}, err
	}
	return dt.withDate(dt.date.AddYears(years))
}

// SubYears moves the date back by years with leap-day clamping.
func (dt DateTime) SubYears(years int) (DateTime, error) {
	if err := dt.check(); err != nil {
		return DateTime{}, err
	}
	return dt.withDate(dt.date.SubYears(years))
}

func (dt DateTime) WithYear(year int) (DateTime, error) {
	return dt.withDate(dt.date.WithYear(year))
}

func (dt DateTime) WithMonth(month int) (DateTime, error) {
	return dt.withDate(dt.date.WithMonth(month))
}

func (dt DateTime) WithDay(day int) (DateTime, error) {
	return dt.withDate(dt.date.WithDay(day))
}

// WithHour replaces the hour. The date must be valid.
func (dt DateTime) WithHour(hour int) (DateTime, error) {
	return dt.WithTime(hour, dt.minute, dt.second)
}

// WithMinute replaces the minute. The date must be valid.
func (dt DateTime) WithMinute(minute int) (DateTime, error) {
	return dt.WithTime(dt.hour, minute, dt.second)
}

// WithSecond replaces the second. The date must be valid.
func (dt DateTime) WithSecond(second int) (DateTime, error) {
	return dt.WithTime(dt.hour, dt.minute, second)
}

// WithTime replaces the whole time of day. The date must be valid.
func (dt DateTime) WithTime(hour, minute, second int) (DateTime, error) {
	if !dt.date.IsValid() {
		return DateTime{}, ErrInvalidDate
	}
	return NewDateTimeFromDate(dt.date, hour, minute, second)
}

// AddDuration adds a signed duration. Rollover across minutes, hours,
// days, months and years is handled by the Gregorian round trip. Results
// outside 1/1/1 00:00:00 to MaxDate 23:59:59 fail with
// ErrGregorianConversion.
func (dt DateTime) AddDuration(d time.Duration) (DateTime, error) {
	g, err := dt.ToGregorian()
	if err != nil {
		return DateTime{}, err
	}
	return DateTimeFromGregorian(g.Add(d))
}

// SubDuration subtracts a signed duration.
func (dt DateTime) SubDuration(d time.Duration) (DateTime, error) {
	if d == minDuration {
		return DateTime{}, ErrArithmeticOverflow
	}
	return dt.AddDuration(-d)
}

const minDuration time.Duration = -1 << 63

// Sub returns dt - other. Differences beyond roughly 292 years saturate at
// the bounds of time.Duration.
func (dt DateTime) Sub(other DateTime) (time.Duration, error) {
	a, err := dt.ToGregorian()
	if err != nil {
		return 0, err
	}
	b, err := other.ToGregorian()
	if err != nil {
		return 0, err
	}
	return a.Sub(b), nil
}

// Weekday returns the Persian weekday name of the date part.
func (dt DateTime) Weekday() (string, error) { return dt.date.Weekday() }

// WeekdayNumber returns the Saturday-based weekday of the date part.
func (dt DateTime) WeekdayNumber() (int, error) { return dt.date.WeekdayNumber() }

// Ordinal returns the day of the year of the date part.
func (dt DateTime) Ordinal() (int, error) { return dt.date.Ordinal() }

// WeekOfYear returns the week number of the date part.
func (dt DateTime) WeekOfYear() (int, error) { return dt.date.WeekOfYear() }

// Season returns the season of the date part.
func (dt DateTime) Season() (Season, error) { return dt.date.Season() }

// StartOfSeason moves to the first day of the season, keeping the time.
func (dt DateTime) StartOfSeason() (DateTime, error) {
	return dt.withDate(dt.date.StartOfSeason())
}

// EndOfSeason moves to the last day of the season, keeping the time.
func (dt DateTime) EndOfSeason() (DateTime, error) {
	return dt.withDate(dt.date.EndOfSeason())
}

// Compare orders by date, then by time of day.
func (dt DateTime) Compare(other DateTime) int {
	if c := dt.date.Compare(other.date); c != 0 {
		return c
	}
	if c := cmp.Compare(dt.hour, other.hour); c != 0 {
		return c
	}
	if c := cmp.Compare(dt.minute, other.minute); c != 0 {
		return c
	}
	return cmp.Compare(dt.second, other.second)
}

func (dt DateTime) Before(other DateTime) bool { return dt.Compare(other) < 0 }
func (dt DateTime) After(other DateTime) bool { return dt.Compare(other) > 0 }
func (dt DateTime) Equal(other DateTime) bool { return dt == other }

// String formats dt as YYYY/MM/DD HH:MM:SS.
func (dt DateTime) String() string {
	return fmt.Sprintf("%s %02d:%02d:%02d", dt.date, dt.hour, dt.minute, dt.second)
}
