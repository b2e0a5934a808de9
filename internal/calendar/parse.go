package calendar

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// ParseDate parses input according to pattern and returns the date.
//
// The matcher is strict and single-pass:
//
//   - literal pattern bytes must match the input byte for byte
//   - %Y consumes exactly 4 ASCII digits; %m and %d exactly 2
//   - %B consumes the first Persian month name that prefixes the input
//   - %% consumes a literal '%'
//
// Any other specifier fails with UnsupportedSpecifier. Trailing input, or
// a pattern that never sets the year, month and day, fails with
// FormatMismatch. A well-formed but impossible date fails with
// InvalidDateValue.
func ParseDate(input, pattern string) (Date, error) {
	p := parser{input: input, pattern: pattern}
	if err := p.run(false); err != nil {
		return Date{}, err
	}
	if p.year == nil || p.month == nil || p.day == nil {
		return Date{}, parseErr(FormatMismatch)
	}
	d, err := NewDate(*p.year, *p.month, *p.day)
	if err != nil {
		return Date{}, parseErr(InvalidDateValue)
	}
	return d, nil
}

// ParseDateTime parses input according to pattern and returns the date
// and time. In addition to the ParseDate specifiers it accepts %H, %M and
// %S (2 digits each) and %T (an HH:MM:SS block). All six fields must be
// present in the pattern.
func ParseDateTime(input, pattern string) (DateTime, error) {
	p := parser{input: input, pattern: pattern}
	if err := p.run(true); err != nil {
		return DateTime{}, err
	}
	if p.year == nil || p.month == nil || p.day == nil ||
		p.hour == nil || p.minute == nil || p.second == nil {
		return DateTime{}, parseErr(FormatMismatch)
	}

	dt, err := NewDateTime(*p.year, *p.month, *p.day, *p.hour, *p.minute, *p.second)
	switch {
	case err == nil:
		return dt, nil
	case errors.Is(err, ErrInvalidTime):
		return DateTime{}, parseErr(InvalidTimeValue)
	default:
		return DateTime{}, parseErr(InvalidDateValue)
	}
}

type parser struct {
	input   string
	pattern string

	year, month, day     *int
	hour, minute, second *int
}

func (p *parser) run(withTime bool) error {
	in, pat := p.input, p.pattern

	for len(pat) > 0 {
		if pat[0] != '%' {
			if len(in) == 0 || in[0] != pat[0] {
				return parseErr(FormatMismatch)
			}
			in, pat = in[1:], pat[1:]
			continue
		}

		if len(pat) < 2 {
			return parseErr(FormatMismatch)
		}
		spec := pat[1]
		pat = pat[2:]

		var err error
		switch spec {
		case '%':
			if len(in) == 0 || in[0] != '%' {
				return parseErr(FormatMismatch)
			}
			in = in[1:]
		case 'Y':
			in, err = takeDigits(in, 4, &p.year)
		case 'm':
			in, err = takeDigits(in, 2, &p.month)
		case 'd':
			in, err = takeDigits(in, 2, &p.day)
		case 'B':
			in, err = p.takeMonthName(in)
		case 'H', 'M', 'S', 'T':
			if !withTime {
				return parseErr(UnsupportedSpecifier)
			}
			switch spec {
			case 'H':
				in, err = takeDigits(in, 2, &p.hour)
			case 'M':
				in, err = takeDigits(in, 2, &p.minute)
			case 'S':
				in, err = takeDigits(in, 2, &p.second)
			case 'T':
				in, err = p.takeClock(in)
			}
		default:
			// %A, %w, %j and %K are output-only.
			return parseErr(UnsupportedSpecifier)
		}
		if err != nil {
			return err
		}
	}

	if len(in) > 0 {
		return parseErr(FormatMismatch)
	}
	return nil
}

// takeDigits consumes exactly n ASCII digits from in and stores their value.
func takeDigits(in string, n int, dst **int) (string, error) {
	v, ok := digits(in, n)
	if !ok {
		return in, parseErr(InvalidNumber)
	}
	*dst = &v
	return in[n:], nil
}

// digits parses the first n bytes of s as a decimal number.
func digits(s string, n int) (int, bool) {
	if len(s) < n {
		return 0, false
	}
	v := 0
	for i := 0; i < n; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + int(c-'0')
	}
	return v, true
}

// takeClock consumes an HH:MM:SS block. Any structural deviation, digits
// included, is a FormatMismatch.
func (p *parser) takeClock(in string) (string, error) {
	if len(in) < 8 || in[2] != ':' || in[5] != ':' {
		return in, parseErr(FormatMismatch)
	}
	h, okH := digits(in[0:2], 2)
	m, okM := digits(in[3:5], 2)
	s, okS := digits(in[6:8], 2)
	if !okH || !okM || !okS {
		return in, parseErr(FormatMismatch)
	}
	p.hour, p.minute, p.second = &h, &m, &s
	return in[8:], nil
}

// takeMonthName matches the remaining input against MonthNames in table
// order and consumes the first name that prefixes it.
func (p *parser) takeMonthName(in string) (string, error) {
	if !utf8.ValidString(in) {
		return in, parseErr(InvalidMonthName)
	}
	for i, name := range MonthNames {
		if strings.HasPrefix(in, name) {
			month := i + 1
			p.month = &month
			return in[len(name):], nil
		}
	}
	return in, parseErr(InvalidMonthName)
}
