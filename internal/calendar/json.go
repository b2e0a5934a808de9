package calendar

import "encoding/json"

type dateJSON struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

type dateTimeJSON struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
	Second int `json:"second"`
}

// MarshalJSON encodes the raw fields, e.g. {"year":1403,"month":5,"day":2}.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(dateJSON{Year: d.year, Month: d.month, Day: d.day})
}

// UnmarshalJSON decodes the raw fields without validating them. Call
// IsValid on the result before trusting it.
func (d *Date) UnmarshalJSON(b []byte) error {
	var v dateJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*d = DateFromUncheckedParts(v.Year, v.Month, v.Day)
	return nil
}

// MarshalJSON encodes the raw date and time fields.
func (dt DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(dateTimeJSON{
		Year:   dt.date.year,
		Month:  dt.date.month,
		Day:    dt.date.day,
		Hour:   dt.hour,
		Minute: dt.minute,
		Second: dt.second,
	})
}

// UnmarshalJSON decodes the raw fields without validating them.
func (dt *DateTime) UnmarshalJSON(b []byte) error {
	var v dateTimeJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*dt = DateTimeFromUncheckedParts(v.Year, v.Month, v.Day, v.Hour, v.Minute, v.Second)
	return nil
}
