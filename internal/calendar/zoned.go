package calendar

import (
	"fmt"
	"slices"
	"time"
)

// TimeZone maps between local wall clocks and instants.
//
// Resolve returns every instant whose local wall clock equals wall, in
// ascending order: none inside a forward gap, two inside a backward
// overlap, one otherwise. Only the calendar fields of wall are used.
type TimeZone interface {
	Resolve(wall time.Time) []time.Time
	In(instant time.Time) time.Time
}

// UTC is the zero-offset zone.
var UTC TimeZone = Location(time.UTC)

// locationZone adapts a *time.Location to TimeZone.
type locationZone struct {
	loc *time.Location
}

// Location wraps loc as a TimeZone. A nil loc means UTC.
func Location(loc *time.Location) TimeZone {
	if loc == nil {
		loc = time.UTC
	}
	return locationZone{loc: loc}
}

// LoadZone looks up an IANA zone name such as "Asia/Tehran".
func LoadZone(name string) (TimeZone, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load zone %q: %w", name, err)
	}
	return Location(loc), nil
}

func (z locationZone) String() string { return z.loc.String() }

func (z locationZone) In(instant time.Time) time.Time { return instant.In(z.loc) }

func (z locationZone) Resolve(wall time.Time) []time.Time {
	y, mo, d := wall.Date()
	h, mi, s := wall.Clock()
	naive := time.Date(y, mo, d, h, mi, s, 0, time.UTC).Unix()

	// Every offset that can apply to this wall clock is in force somewhere
	// within a day of it.
	offsets := make([]int, 0, 3)
	for _, probe := range []int64{naive - secondsPerDay, naive, naive + secondsPerDay} {
		_, off := time.Unix(probe, 0).In(z.loc).Zone()
		if !slices.Contains(offsets, off) {
			offsets = append(offsets, off)
		}
	}

	var out []time.Time
	for _, off := range offsets {
		t := time.Unix(naive-int64(off), 0).In(z.loc)
		ty, tmo, td := t.Date()
		th, tmi, ts := t.Clock()
		if ty == y && tmo == mo && td == d && th == h && tmi == mi && ts == s {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b time.Time) int { return a.Compare(b) })
	return slices.CompactFunc(out, func(a, b time.Time) bool { return a.Equal(b) })
}

// ZonedDateTime is a single instant viewed in a time zone. Its Persian
// date and time are derived from the local wall clock.
type ZonedDateTime struct {
	instant time.Time
	tz      TimeZone
}

// NewZoned resolves a local Persian date and time in tz. An ambiguous wall
// clock resolves to the earlier instant; one that does not exist in tz
// (a daylight-saving gap) fails with ErrInvalidTime.
func NewZoned(year, month, day, hour, minute, second int, tz TimeZone) (ZonedDateTime, error) {
	dt, err := NewDateTime(year, month, day, hour, minute, second)
	if err != nil {
		return ZonedDateTime{}, err
	}
	wall, err := dt.ToGregorian()
	if err != nil {
		return ZonedDateTime{}, err
	}
	if tz == nil {
		tz = UTC
	}
	instants := tz.Resolve(wall)
	if len(instants) == 0 {
		return ZonedDateTime{}, ErrInvalidTime
	}
	return ZonedDateTime{instant: instants[0], tz: tz}, nil
}

// NowIn returns the current instant in tz.
func NowIn(tz TimeZone) ZonedDateTime {
	return ZonedFromInstant(time.Now(), tz)
}

// ZonedFromInstant views t in tz.
func ZonedFromInstant(t time.Time, tz TimeZone) ZonedDateTime {
	if tz == nil {
		tz = UTC
	}
	return ZonedDateTime{instant: t.Truncate(time.Second), tz: tz}
}

func (z ZonedDateTime) local() time.Time {
	if z.tz == nil {
		return z.instant.UTC()
	}
	return z.tz.In(z.instant)
}

// DateTime returns the local Persian date and time.
func (z ZonedDateTime) DateTime() (DateTime, error) {
	return DateTimeFromGregorian(z.local())
}

// Date returns the local Persian date.
func (z ZonedDateTime) Date() (Date, error) {
	return DateFromGregorian(z.local())
}

// Instant returns the underlying instant.
func (z ZonedDateTime) Instant() time.Time { return z.instant }

// Zone returns the time zone.
func (z ZonedDateTime) Zone() TimeZone { return z.tz }

// Offset returns the zone abbreviation and offset east of UTC in effect at
// the instant.
func (z ZonedDateTime) Offset() (name string, seconds int) {
	return z.local().Zone()
}

// WithTimeZone views the same instant in tz.
func (z ZonedDateTime) WithTimeZone(tz TimeZone) ZonedDateTime {
	return ZonedFromInstant(z.instant, tz)
}

// AddDuration moves the instant by d. The local result must still be a
// supported Persian date.
func (z ZonedDateTime) AddDuration(d time.Duration) (ZonedDateTime, error) {
	next := ZonedDateTime{instant: z.instant.Add(d), tz: z.tz}
	if _, err := next.Date(); err != nil {
		return ZonedDateTime{}, err
	}
	return next, nil
}

// SubDuration moves the instant back by d.
func (z ZonedDateTime) SubDuration(d time.Duration) (ZonedDateTime, error) {
	if d == minDuration {
		return ZonedDateTime{}, ErrArithmeticOverflow
	}
	return z.AddDuration(-d)
}

// Sub returns the elapsed time between the two instants.
func (z ZonedDateTime) Sub(other ZonedDateTime) time.Duration {
	return z.instant.Sub(other.instant)
}

// Compare orders by instant; the zone is ignored.
func (z ZonedDateTime) Compare(other ZonedDateTime) int {
	return z.instant.Compare(other.instant)
}

func (z ZonedDateTime) Equal(other ZonedDateTime) bool  { return z.instant.Equal(other.instant) }
func (z ZonedDateTime) Before(other ZonedDateTime) bool { return z.instant.Before(other.instant) }
func (z ZonedDateTime) After(other ZonedDateTime) bool  { return z.instant.After(other.instant) }

// String formats z as YYYY/MM/DD HH:MM:SS +HH:MM. Out-of-range instants
// fall back to the Gregorian wall clock.
func (z ZonedDateTime) String() string {
	local := z.local()
	offset := local.Format("-07:00")
	dt, err := DateTimeFromGregorian(local)
	if err != nil {
		return local.Format("2006-01-02 15:04:05 ") + offset
	}
	return dt.String() + " " + offset
}
