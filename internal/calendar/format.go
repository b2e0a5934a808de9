package calendar

import (
	"fmt"
	"strconv"
	"strings"
)

// Named layouts accepted by Date.Format in place of a pattern.
const (
	StyleShort = "short" // 1403/05/02
	StyleLong  = "long"  // 2 مرداد 1403
	StyleISO   = "iso"   // 1403-05-02
)

// Placeholders written by Format when a field cannot be rendered.
const (
	invalidMonthToken = "?InvalidMonth?"
	weekdayErrorToken = "?WeekdayError?"
	weekdayNumToken   = "?"
	ordinalErrorToken = "???"
	seasonErrorToken  = "?SeasonError?"
)

// Format renders d using a named style (StyleShort, StyleLong, StyleISO) or
// a strftime-style pattern:
//
//	%Y  year            %m  month, 2 digits     %d  day, 2 digits
//	%B  month name      %A  weekday name        %w  weekday, Saturday=0
//	%j  day of year, 3 digits                   %K  season name
//	%%  literal percent sign
//
// Unknown specifiers are copied through unchanged. Format never fails:
// values that cannot be computed are replaced with placeholder tokens such
// as "?WeekdayError?".
func (d Date) Format(pattern string) string {
	switch pattern {
	case StyleShort:
		return fmt.Sprintf("%d/%02d/%02d", d.year, d.month, d.day)
	case StyleLong:
		name, ok := MonthName(d.month)
		if !ok {
			name = invalidMonthToken
		}
		return fmt.Sprintf("%d %s %d", d.day, name, d.year)
	case StyleISO:
		return fmt.Sprintf("%d-%02d-%02d", d.year, d.month, d.day)
	}
	return newFormatter(d, nil).run(pattern)
}

// Format renders dt with the same specifiers as Date.Format plus:
//
//	%H  hour, 2 digits   %M  minute, 2 digits   %S  second, 2 digits
//	%T  %H:%M:%S
//
// Named styles are not recognized; the argument is always a pattern.
func (dt DateTime) Format(pattern string) string {
	c := [3]int{dt.hour, dt.minute, dt.second}
	return newFormatter(dt.date, &c).run(pattern)
}

// formatter renders one pattern. Derived values that need a calendar
// computation are computed on first use and reused for repeated
// specifiers.
type formatter struct {
	date  Date
	clock *[3]int // nil for date-only values

	weekday    *string
	weekdayNum *string
	ordinal    *string
	season     *string
}

func newFormatter(d Date, clock *[3]int) *formatter {
	return &formatter{date: d, clock: clock}
}

func (f *formatter) run(pattern string) string {
	var b strings.Builder
	b.Grow(len(pattern) + 16)

	// Specifiers are ASCII, so bytes are scanned directly and everything
	// else, including invalid UTF-8, is copied as is.
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		if i+1 == len(pattern) {
			b.WriteByte('%')
			break
		}
		i++
		if !f.writeSpec(&b, pattern[i]) {
			b.WriteByte('%')
			b.WriteByte(pattern[i])
		}
	}
	return b.String()
}

// writeSpec writes the expansion of %spec and reports whether spec is
// known.
func (f *formatter) writeSpec(b *strings.Builder, spec byte) bool {
	switch spec {
	case '%':
		b.WriteByte('%')
	case 'Y':
		b.WriteString(strconv.Itoa(f.date.year))
	case 'm':
		writePadded(b, f.date.month, 2)
	case 'd':
		writePadded(b, f.date.day, 2)
	case 'B':
		if name, ok := MonthName(f.date.month); ok {
			b.WriteString(name)
		} else {
			b.WriteString(invalidMonthToken)
		}
	case 'A':
		b.WriteString(f.cached(&f.weekday, func() string {
			name, err := f.date.Weekday()
			if err != nil {
				return weekdayErrorToken
			}
			return name
		}))
	case 'w':
		b.WriteString(f.cached(&f.weekdayNum, func() string {
			n, err := f.date.WeekdayNumber()
			if err != nil {
				return weekdayNumToken
			}
			return strconv.Itoa(n)
		}))
	case 'j':
		b.WriteString(f.cached(&f.ordinal, func() string {
			n, err := f.date.Ordinal()
			if err != nil {
				return ordinalErrorToken
			}
			return fmt.Sprintf("%03d", n)
		}))
	case 'K':
		b.WriteString(f.cached(&f.season, func() string {
			s, err := f.date.Season()
			if err != nil {
				return seasonErrorToken
			}
			return s.PersianName()
		}))
	case 'H', 'M', 'S', 'T':
		if f.clock == nil {
			return false
		}
		switch spec {
		case 'H':
			writePadded(b, f.clock[0], 2)
		case 'M':
			writePadded(b, f.clock[1], 2)
		case 'S':
			writePadded(b, f.clock[2], 2)
		case 'T':
			fmt.Fprintf(b, "%02d:%02d:%02d", f.clock[0], f.clock[1], f.clock[2])
		}
	default:
		return false
	}
	return true
}

func (f *formatter) cached(slot **string, compute func() string) string {
	if *slot == nil {
		v := compute()
		*slot = &v
	}
	return **slot
}

func writePadded(b *strings.Builder, n, width int) {
	fmt.Fprintf(b, "%0*d", width, n)
}
