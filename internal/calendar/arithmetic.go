package calendar

// AddDays returns d shifted by days (which may be negative).
//
// The shift is performed on the day count, so it crosses month and year
// boundaries exactly. A result before 1/1/1 or after MaxDate fails with
// ErrGregorianConversion, the same error DateTime.AddDuration reports at
// those bounds. A shift too large for the day counter itself fails with
// ErrArithmeticOverflow.
func (d Date) AddDays(days int) (Date, error) {
	if !d.IsValid() {
		return Date{}, ErrInvalidDate
	}
	if days == 0 {
		return d, nil
	}
	offset, err := d.dayIndex()
	if err != nil {
		return Date{}, err
	}

	if int64(days) > maxDayOffset || int64(days) < -maxDayOffset {
		return Date{}, ErrArithmeticOverflow
	}
	target := offset + int64(days)
	if target < 0 || target > maxDayOffset {
		return Date{}, ErrGregorianConversion
	}
	return dateFromDayIndex(target)
}

// SubDays returns d moved back by days. days must not be negative.
func (d Date) SubDays(days int) (Date, error) {
	if days < 0 {
		return Date{}, ErrArithmeticOverflow
	}
	return d.AddDays(-days)
}

// AddMonths returns d shifted by months (which may be negative).
//
// If the target month is shorter than d's day, the day is clamped to the
// last day of that month: 1403/01/31 plus six months is 1403/07/30.
func (d Date) AddMonths(months int) (Date, error) {
	if !d.IsValid() {
		return Date{}, ErrInvalidDate
	}
	if months == 0 {
		return d, nil
	}

	if months > 12*MaxYear || months < -12*MaxYear {
		return Date{}, ErrArithmeticOverflow
	}
	total := int64(d.year)*12 + int64(d.month-1) + int64(months)
	targetYear := floorDiv(total, 12)
	if targetYear < MinYear || targetYear > MaxYear {
		return Date{}, ErrArithmeticOverflow
	}
	targetMonth := int(total-targetYear*12) + 1

	day := min(d.day, DaysInMonth(int(targetYear), targetMonth))
	return NewDate(int(targetYear), targetMonth, day)
}

// SubMonths returns d moved back by months. months must not be negative.
func (d Date) SubMonths(months int) (Date, error) {
	if months < 0 {
		return Date{}, ErrArithmeticOverflow
	}
	return d.AddMonths(-months)
}

// AddYears returns d shifted by years (which may be negative).
//
// Esfand 30th of a leap year becomes Esfand 29th when the target year is
// common; every other day is kept as is.
func (d Date) AddYears(years int) (Date, error) {
	if !d.IsValid() {
		return Date{}, ErrInvalidDate
	}
	if years == 0 {
		return d, nil
	}
	if years > MaxYear || years < -MaxYear {
		return Date{}, ErrArithmeticOverflow
	}
	target := d.year + years
	if target < MinYear || target > MaxYear {
		return Date{}, ErrArithmeticOverflow
	}
	return NewDate(target, d.month, clampLeapDay(target, d.month, d.day))
}

// SubYears returns d moved back by years. years must not be negative.
func (d Date) SubYears(years int) (Date, error) {
	if years < 0 {
		return Date{}, ErrArithmeticOverflow
	}
	return d.AddYears(-years)
}

// DaysBetween returns the absolute number of days between d and other.
func (d Date) DaysBetween(other Date) (int, error) {
	if !d.IsValid() || !other.IsValid() {
		return 0, ErrInvalidDate
	}
	a, err := d.dayIndex()
	if err != nil {
		return 0, err
	}
	b, err := other.dayIndex()
	if err != nil {
		return 0, err
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return int(diff), nil
}

// WithYear returns d with the year replaced, clamping Esfand 30th to the
// 29th when the new year is not leap.
func (d Date) WithYear(year int) (Date, error) {
	if !d.IsValid() {
		return Date{}, ErrInvalidDate
	}
	if year < MinYear || year > MaxYear {
		return Date{}, ErrInvalidDate
	}
	return NewDate(year, d.month, clampLeapDay(year, d.month, d.day))
}

// WithMonth returns d with the month replaced, clamping the day to the new
// month's length.
func (d Date) WithMonth(month int) (Date, error) {
	if !d.IsValid() {
		return Date{}, ErrInvalidDate
	}
	if month < 1 || month > 12 {
		return Date{}, ErrInvalidDate
	}
	return NewDate(d.year, month, min(d.day, DaysInMonth(d.year, month)))
}

// WithDay returns d with the day replaced. The day is not clamped.
func (d Date) WithDay(day int) (Date, error) {
	if !d.IsValid() {
		return Date{}, ErrInvalidDate
	}
	return NewDate(d.year, d.month, day)
}

func clampLeapDay(year, month, day int) int {
	if month == 12 && day == 30 && !IsPersianLeapYear(year) {
		return 29
	}
	return day
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
