// Package calendar provides Persian (Jalali) calendar calculations:
// conversion to and from the Gregorian calendar, date arithmetic, and
// strftime-style formatting and parsing.
//
// Gregorian values are represented with the standard time package. The
// Persian calendar epoch (1/1/1) is the proleptic Gregorian date 622-03-21.
package calendar

// Supported year range.
const (
	MinYear = 1
	MaxYear = 9999
)

var (
	// MinDate is the first supported Persian date (Farvardin 1st, year 1).
	MinDate = Date{year: MinYear, month: 1, day: 1}

	// MaxDate is the last supported Persian date. Year 9999 is a common
	// year under the 33-year rule, so Esfand ends on the 29th.
	MaxDate = Date{year: MaxYear, month: 12, day: 29}
)

// leapRemainders lists the positions within the 33-year cycle that are
// leap years.
var leapRemainders = [...]int{1, 5, 9, 13, 17, 22, 26, 30}

// MonthNames holds the Persian month names, Farvardin first.
var MonthNames = [12]string{
	"فروردین",
	"اردیبهشت",
	"خرداد",
	"تیر",
	"مرداد",
	"شهریور",
	"مهر",
	"آبان",
	"آذر",
	"دی",
	"بهمن",
	"اسفند",
}

// WeekdayNames holds the Persian weekday names. The Persian week starts on
// Saturday, so index 0 is Shanbeh and index 6 is Jomeh (Friday).
var WeekdayNames = [7]string{
	"شنبه",
	"یکشنبه",
	"دوشنبه",
	"سه‌شنبه",
	"چهارشنبه",
	"پنجشنبه",
	"جمعه",
}

var seasonNamesPersian = [4]string{"بهار", "تابستان", "پاییز", "زمستان"}

var seasonNamesEnglish = [4]string{"Spring", "Summer", "Autumn", "Winter"}

// IsPersianLeapYear reports whether year is a leap year in the Persian
// calendar.
//
// This uses a fixed 33-year cycle in which years with remainder
// 1, 5, 9, 13, 17, 22, 26 or 30 are leap. It is an arithmetic
// approximation of the astronomical calendar, not an observation-based
// computation. Years below 1 are never leap.
func IsPersianLeapYear(year int) bool {
	if year <= 0 {
		return false
	}
	r := year % 33
	for _, leap := range leapRemainders {
		if r == leap {
			return true
		}
	}
	return false
}

// IsGregorianLeapYear reports whether year is a leap year in the
// proleptic Gregorian calendar.
func IsGregorianLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInMonth returns the length of a Persian month.
//
// The first six months have 31 days, the next five have 30, and Esfand
// has 30 days in a leap year and 29 otherwise. An invalid month returns 0;
// callers must check for it.
func DaysInMonth(year, month int) int {
	switch {
	case month >= 1 && month <= 6:
		return 31
	case month >= 7 && month <= 11:
		return 30
	case month == 12:
		if IsPersianLeapYear(year) {
			return 30
		}
		return 29
	default:
		return 0
	}
}

// DaysInYear returns 366 for Persian leap years and 365 otherwise.
func DaysInYear(year int) int {
	if IsPersianLeapYear(year) {
		return 366
	}
	return 365
}

// MonthName returns the Persian name of month (1-12).
func MonthName(month int) (string, bool) {
	if month < 1 || month > 12 {
		return "", false
	}
	return MonthNames[month-1], true
}

// WeekdayName returns the Persian weekday name for a Saturday-based index.
func WeekdayName(index int) (string, bool) {
	if index < 0 || index > 6 {
		return "", false
	}
	return WeekdayNames[index], true
}

// leapYearsThrough counts the leap years in [1, year].
func leapYearsThrough(year int) int {
	if year <= 0 {
		return 0
	}
	count := (year / 33) * len(leapRemainders)
	rem := year % 33
	for _, leap := range leapRemainders {
		if leap <= rem {
			count++
		}
	}
	return count
}

// daysBeforeYear returns the number of days from 1/1/1 to Farvardin 1st of
// year: the sum of the lengths of years 1 through year-1.
func daysBeforeYear(year int) int64 {
	prior := int64(year - 1)
	return prior*365 + int64(leapYearsThrough(year-1))
}

// daysBeforeMonth returns the number of days in the months preceding month
// within year.
func daysBeforeMonth(year, month int) int {
	days := 0
	for m := 1; m < month; m++ {
		days += DaysInMonth(year, m)
	}
	return days
}
