package calendar

// Season is one of the four three-month quarters of the Persian year.
type Season int

const (
	Spring Season = iota // Bahar: Farvardin - Khordad
	Summer               // Tabestan: Tir - Shahrivar
	Autumn               // Paeez: Mehr - Azar
	Winter               // Zemestan: Dey - Esfand
)

// SeasonOf returns the season containing month (1-12).
func SeasonOf(month int) (Season, bool) {
	if month < 1 || month > 12 {
		return 0, false
	}
	return Season((month - 1) / 3), true
}

// Seasons returns the four seasons in calendar order.
func Seasons() []Season {
	return []Season{Spring, Summer, Autumn, Winter}
}

// PersianName returns the Persian name, e.g. "بهار".
func (s Season) PersianName() string {
	if s < Spring || s > Winter {
		return ""
	}
	return seasonNamesPersian[s]
}

// EnglishName returns the English name, e.g. "Spring".
func (s Season) EnglishName() string {
	if s < Spring || s > Winter {
		return ""
	}
	return seasonNamesEnglish[s]
}

// StartMonth returns the first month of the season.
func (s Season) StartMonth() int { return int(s)*3 + 1 }

// EndMonth returns the last month of the season.
func (s Season) EndMonth() int { return int(s)*3 + 3 }

func (s Season) String() string { return s.PersianName() }

// Season returns the season d falls in.
func (d Date) Season() (Season, error) {
	if !d.IsValid() {
		return 0, ErrInvalidDate
	}
	s, _ := SeasonOf(d.month)
	return s, nil
}

// StartOfSeason returns the first day of d's season.
func (d Date) StartOfSeason() (Date, error) {
	s, err := d.Season()
	if err != nil {
		return Date{}, err
	}
	return NewDate(d.year, s.StartMonth(), 1)
}

// EndOfSeason returns the last day of d's season. For winter this is
// Esfand 29th or 30th depending on the year.
func (d Date) EndOfSeason() (Date, error) {
	s, err := d.Season()
	if err != nil {
		return Date{}, err
	}
	end := s.EndMonth()
	return NewDate(d.year, end, DaysInMonth(d.year, end))
}
