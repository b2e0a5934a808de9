package calendar

import "errors"

var (
	// ErrInvalidDate is returned when a year/month/day combination is not a
	// valid Persian date or the year is outside [MinYear, MaxYear].
	ErrInvalidDate = errors.New("invalid persian date: year must be 1-9999, month 1-12, day within month length")

	// ErrInvalidTime is returned when hour, minute or second is outside the
	// 24-hour clock range.
	ErrInvalidTime = errors.New("invalid time: hour must be 0-23, minute and second 0-59")

	// ErrInvalidOrdinal is returned when a day-of-year is outside
	// [1, DaysInYear(year)].
	ErrInvalidOrdinal = errors.New("invalid ordinal day: must be 1-365, or 1-366 in a leap year")

	// ErrGregorianConversion is returned when a value cannot be mapped to or
	// from the Gregorian calendar (before the epoch, beyond year 9999, or an
	// internal overflow).
	ErrGregorianConversion = errors.New("gregorian conversion failed: date out of supported range")

	// ErrArithmeticOverflow is returned when date arithmetic leaves the
	// supported year range.
	ErrArithmeticOverflow = errors.New("date arithmetic overflow: result outside supported range 1-9999")

	// ErrParse is the parent of every *ParseError.
	ErrParse = errors.New("date parse error")
)

// ParseErrorKind identifies why parsing failed.
type ParseErrorKind int

const (
	// FormatMismatch: the input does not follow the pattern's structure,
	// has trailing text, or the pattern omits a required field.
	FormatMismatch ParseErrorKind = iota + 1
	// InvalidNumber: a numeric field is not made of the expected number of
	// ASCII digits.
	InvalidNumber
	// InvalidDateValue: the parsed year, month and day are not a valid date.
	InvalidDateValue
	// InvalidTimeValue: the parsed hour, minute and second are not a valid time.
	InvalidTimeValue
	// UnsupportedSpecifier: the pattern uses a specifier that can only be
	// formatted (%A, %w, %j, %K) or is unknown.
	UnsupportedSpecifier
	// InvalidMonthName: %B did not match any Persian month name.
	InvalidMonthName
)

var parseErrorMessages = map[ParseErrorKind]string{
	FormatMismatch:       "input does not match the pattern structure",
	InvalidNumber:        "numeric field has non-digit characters or the wrong digit count",
	InvalidDateValue:     "parsed year, month and day form an invalid date",
	InvalidTimeValue:     "parsed hour, minute and second form an invalid time",
	UnsupportedSpecifier: "pattern uses a specifier that cannot be parsed",
	InvalidMonthName:     "unrecognized persian month name",
}

var parseErrorCodes = map[ParseErrorKind]string{
	FormatMismatch:       "format_mismatch",
	InvalidNumber:        "invalid_number",
	InvalidDateValue:     "invalid_date_value",
	InvalidTimeValue:     "invalid_time_value",
	UnsupportedSpecifier: "unsupported_specifier",
	InvalidMonthName:     "invalid_month_name",
}

// String returns a stable snake_case identifier for the kind.
func (k ParseErrorKind) String() string {
	if code, ok := parseErrorCodes[k]; ok {
		return code
	}
	return "unknown"
}

// ParseError describes a failed ParseDate or ParseDateTime call.
//
// Match a specific kind with errors.Is(err, &ParseError{Kind: InvalidNumber}),
// or any parse failure with errors.Is(err, ErrParse).
type ParseError struct {
	Kind ParseErrorKind
}

func (e *ParseError) Error() string {
	msg, ok := parseErrorMessages[e.Kind]
	if !ok {
		msg = "unknown parse failure"
	}
	return "date parse error: " + msg
}

// Is matches another *ParseError of the same kind.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Kind == e.Kind
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

func parseErr(kind ParseErrorKind) error {
	return &ParseError{Kind: kind}
}
