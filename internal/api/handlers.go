package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/parsical/internal/calendar"
	"github.com/zapponejosh/parsical/internal/config"
	"github.com/zapponejosh/parsical/internal/database"
	"github.com/zapponejosh/parsical/internal/logger"
	"github.com/zapponejosh/parsical/internal/metrics"
)

// pathDatePattern is how Persian dates appear in URLs and query strings.
const pathDatePattern = "%Y-%m-%d"

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db      *database.DB
	cfg     *config.Config
	logger  *slog.Logger
	metrics *metrics.Metrics
	zone    calendar.TimeZone
	now     func() time.Time
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *database.DB, cfg *config.Config, log *slog.Logger, m *metrics.Metrics) *Handlers {
	return &Handlers{
		db:      db,
		cfg:     cfg,
		logger:  log,
		metrics: m,
		zone:    calendar.Location(cfg.Location()),
		now:     time.Now,
	}
}

// DateInfo describes one Persian date.
type DateInfo struct {
	Date          string `json:"date"`
	Year          int    `json:"year"`
	Month         int    `json:"month"`
	Day           int    `json:"day"`
	MonthName     string `json:"month_name"`
	Weekday       string `json:"weekday"`
	WeekdayNumber int    `json:"weekday_number"`
	Ordinal       int    `json:"ordinal"`
	WeekOfYear    int    `json:"week_of_year"`
	Season        string `json:"season"`
	SeasonEnglish string `json:"season_english"`
	IsLeapYear    bool   `json:"is_leap_year"`
	Gregorian     string `json:"gregorian"`
}

func newDateInfo(d calendar.Date) (DateInfo, error) {
	g, err := d.ToGregorian()
	if err != nil {
		return DateInfo{}, err
	}
	weekday, err := d.Weekday()
	if err != nil {
		return DateInfo{}, err
	}
	weekdayNum, err := d.WeekdayNumber()
	if err != nil {
		return DateInfo{}, err
	}
	ordinal, err := d.Ordinal()
	if err != nil {
		return DateInfo{}, err
	}
	week, err := d.WeekOfYear()
	if err != nil {
		return DateInfo{}, err
	}
	season, err := d.Season()
	if err != nil {
		return DateInfo{}, err
	}
	monthName, _ := calendar.MonthName(d.Month())

	return DateInfo{
		Date:          d.String(),
		Year:          d.Year(),
		Month:         d.Month(),
		Day:           d.Day(),
		MonthName:     monthName,
		Weekday:       weekday,
		WeekdayNumber: weekdayNum,
		Ordinal:       ordinal,
		WeekOfYear:    week,
		Season:        season.PersianName(),
		SeasonEnglish: season.EnglishName(),
		IsLeapYear:    d.IsLeapYear(),
		Gregorian:     g.Format(time.DateOnly),
	}, nil
}

// DateTimeInfo describes a Persian date and time of day.
type DateTimeInfo struct {
	DateInfo
	DateTime string `json:"datetime"`
	Hour     int    `json:"hour"`
	Minute   int    `json:"minute"`
	Second   int    `json:"second"`
}

func newDateTimeInfo(dt calendar.DateTime) (DateTimeInfo, error) {
	info, err := newDateInfo(dt.Date())
	if err != nil {
		return DateTimeInfo{}, err
	}
	return DateTimeInfo{
		DateInfo: info,
		DateTime: dt.String(),
		Hour:     dt.Hour(),
		Minute:   dt.Minute(),
		Second:   dt.Second(),
	}, nil
}

// writeDate answers with the DateInfo of d.
func (h *Handlers) writeDate(w http.ResponseWriter, r *http.Request, d calendar.Date) {
	info, err := newDateInfo(d)
	if err != nil {
		h.writeFailure(w, r, "describe date", err)
		return
	}
	WriteSuccess(w, info)
}

// writeFailure reports err to the client and logs anything unexpected.
func (h *Handlers) writeFailure(w http.ResponseWriter, r *http.Request, op string, err error) {
	if status, _ := classifyError(err); status >= http.StatusInternalServerError {
		logger.Error(r.Context(), op+" failed", err)
	}
	WriteDomainError(w, err)
}

// pathDate reads a YYYY-MM-DD Persian date from the named URL parameter.
func (h *Handlers) pathDate(w http.ResponseWriter, r *http.Request, name string) (calendar.Date, bool) {
	return h.parsePersian(w, r, chi.URLParam(r, name), name)
}

func (h *Handlers) parsePersian(w http.ResponseWriter, r *http.Request, raw, name string) (calendar.Date, bool) {
	if raw == "" {
		WriteBadRequest(w, fmt.Sprintf("%s parameter is required", name))
		return calendar.Date{}, false
	}
	d, err := calendar.ParseDate(raw, pathDatePattern)
	if err != nil {
		h.countParseFailure(err)
		WriteDomainError(w, fmt.Errorf("%s %q: %w", name, raw, err))
		return calendar.Date{}, false
	}
	return d, true
}

func (h *Handlers) countParseFailure(err error) {
	var pe *calendar.ParseError
	if errors.As(err, &pe) {
		h.metrics.IncrementParseFailures(pe.Kind.String())
	}
}

// queryInt reads an optional integer query parameter.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, raw)
	}
	return n, nil
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status        string `json:"status"`
	SchemaVersion int    `json:"schema_version"`
	Events        int    `json:"events"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	st, err := h.db.Health(ctx)
	if err != nil {
		h.logger.Warn("health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Event store unhealthy", "HEALTH_CHECK_FAILED")
		return
	}

	WriteSuccess(w, HealthResponse{
		Status:        "healthy",
		SchemaVersion: st.SchemaVersion,
		Events:        st.Events,
	})
}

// GetToday handles GET /api/v1/today
func (h *Handlers) GetToday(w http.ResponseWriter, r *http.Request) {
	z := calendar.ZonedFromInstant(h.now(), h.zone)
	today, err := z.Date()
	if err != nil {
		h.writeFailure(w, r, "today", err)
		return
	}
	h.writeDate(w, r, today)
}

// NowResponse is the body of GET /api/v1/now.
type NowResponse struct {
	DateTimeInfo
	Zone          string `json:"zone"`
	Offset        string `json:"offset"`
	OffsetSeconds int    `json:"offset_seconds"`
	Instant       string `json:"instant"`
	Display       string `json:"display"`
}

// GetNow handles GET /api/v1/now?tz=Asia/Tehran
func (h *Handlers) GetNow(w http.ResponseWriter, r *http.Request) {
	zoneName := r.URL.Query().Get("tz")
	if zoneName == "" {
		zoneName = h.cfg.Timezone
	}
	tz, err := calendar.LoadZone(zoneName)
	if err != nil {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Unknown time zone %q", zoneName), "INVALID_TIMEZONE")
		return
	}

	z := calendar.ZonedFromInstant(h.now(), tz)
	dt, err := z.DateTime()
	if err != nil {
		h.writeFailure(w, r, "now", err)
		return
	}
	info, err := newDateTimeInfo(dt)
	if err != nil {
		h.writeFailure(w, r, "now", err)
		return
	}

	_, offset := z.Offset()
	WriteSuccess(w, NowResponse{
		DateTimeInfo:  info,
		Zone:          zoneName,
		Offset:        tz.In(z.Instant()).Format("-07:00"),
		OffsetSeconds: offset,
		Instant:       z.Instant().UTC().Format(time.RFC3339),
		Display:       z.String(),
	})
}

// ConvertGregorian handles GET /api/v1/convert/gregorian/{date}
// where date is a Gregorian YYYY-MM-DD.
func (h *Handlers) ConvertGregorian(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "date")
	g, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD", raw))
		return
	}

	d, err := calendar.DateFromGregorian(g)
	if err != nil {
		h.writeFailure(w, r, "convert to persian", err)
		return
	}
	h.metrics.IncrementConversions(metrics.ToPersian)

	logger.Debug(r.Context(), "converted gregorian date",
		slog.String("gregorian", raw), logger.DateAttr("persian", d))
	h.writeDate(w, r, d)
}

// ConvertPersian handles GET /api/v1/convert/persian/{date}
// where date is a Persian YYYY-MM-DD.
func (h *Handlers) ConvertPersian(w http.ResponseWriter, r *http.Request) {
	d, ok := h.pathDate(w, r, "date")
	if !ok {
		return
	}
	h.metrics.IncrementConversions(metrics.ToGregorian)
	h.writeDate(w, r, d)
}

// GetDate handles GET /api/v1/dates/{date}
func (h *Handlers) GetDate(w http.ResponseWriter, r *http.Request) {
	d, ok := h.pathDate(w, r, "date")
	if !ok {
		return
	}
	h.writeDate(w, r, d)
}

// FormatDate handles GET /api/v1/dates/{date}/format?pattern=%d %B %Y
func (h *Handlers) FormatDate(w http.ResponseWriter, r *http.Request) {
	d, ok := h.pathDate(w, r, "date")
	if !ok {
		return
	}
	pattern := r.URL.Query().Get("pattern")
	if pattern == "" {
		pattern = h.cfg.DefaultPattern
	}

	WriteSuccess(w, map[string]string{
		"date":      d.String(),
		"pattern":   pattern,
		"formatted": d.Format(pattern),
	})
}

// ShiftDate handles GET /api/v1/dates/{date}/shift?years=&months=&days=
//
// Years are applied first, then months, then days, each with the usual
// clamping.
func (h *Handlers) ShiftDate(w http.ResponseWriter, r *http.Request) {
	d, ok := h.pathDate(w, r, "date")
	if !ok {
		return
	}

	var amounts [3]int
	for i, name := range []string{"years", "months", "days"} {
		n, err := queryInt(r, name)
		if err != nil {
			WriteBadRequest(w, err.Error())
			return
		}
		amounts[i] = n
	}

	shifted, err := d.AddYears(amounts[0])
	if err == nil {
		shifted, err = shifted.AddMonths(amounts[1])
	}
	if err == nil {
		shifted, err = shifted.AddDays(amounts[2])
	}
	if err != nil {
		h.writeFailure(w, r, "shift date", err)
		return
	}
	h.writeDate(w, r, shifted)
}

// GetDaysBetween handles GET /api/v1/dates/between?from=&to=
func (h *Handlers) GetDaysBetween(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, ok := h.parsePersian(w, r, q.Get("from"), "from")
	if !ok {
		return
	}
	to, ok := h.parsePersian(w, r, q.Get("to"), "to")
	if !ok {
		return
	}

	days, err := from.DaysBetween(to)
	if err != nil {
		h.writeFailure(w, r, "days between", err)
		return
	}
	WriteSuccess(w, map[string]any{
		"from": from.String(),
		"to":   to.String(),
		"days": days,
	})
}

// GetDateRange handles GET /api/v1/dates/range?from=&to=
// The span is capped by MAX_RANGE_DAYS.
func (h *Handlers) GetDateRange(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, ok := h.parsePersian(w, r, q.Get("from"), "from")
	if !ok {
		return
	}
	to, ok := h.parsePersian(w, r, q.Get("to"), "to")
	if !ok {
		return
	}

	if from.After(to) {
		WriteBadRequest(w, "from must be before or equal to to")
		return
	}
	span, err := from.DaysBetween(to)
	if err != nil {
		h.writeFailure(w, r, "date range", err)
		return
	}
	if span+1 > h.cfg.MaxRangeDays {
		WriteError(w, http.StatusBadRequest,
			fmt.Sprintf("Date range cannot exceed %d days", h.cfg.MaxRangeDays), "RANGE_TOO_LARGE")
		return
	}

	days := make([]DateInfo, 0, span+1)
	current := from
	for i := 0; i <= span; i++ {
		info, err := newDateInfo(current)
		if err != nil {
			h.writeFailure(w, r, "date range", err)
			return
		}
		days = append(days, info)
		if i < span {
			if current, err = current.AddDays(1); err != nil {
				h.writeFailure(w, r, "date range", err)
				return
			}
		}
	}

	WriteSuccess(w, map[string]any{
		"from":  from.String(),
		"to":    to.String(),
		"count": len(days),
		"days":  days,
	})
}

// MonthResponse is the body of GET /api/v1/months/{year}/{month}.
type MonthResponse struct {
	Year        int        `json:"year"`
	Month       int        `json:"month"`
	MonthName   string     `json:"month_name"`
	DaysInMonth int        `json:"days_in_month"`
	Season      string     `json:"season"`
	Days        []DateInfo `json:"days"`
}

// GetMonth handles GET /api/v1/months/{year}/{month}
func (h *Handlers) GetMonth(w http.ResponseWriter, r *http.Request) {
	year, err1 := strconv.Atoi(chi.URLParam(r, "year"))
	month, err2 := strconv.Atoi(chi.URLParam(r, "month"))
	if err1 != nil || err2 != nil {
		WriteBadRequest(w, "year and month must be integers")
		return
	}

	first, err := calendar.NewDate(year, month, 1)
	if err != nil {
		h.writeFailure(w, r, "month grid", err)
		return
	}

	resp := MonthResponse{
		Year:        year,
		Month:       month,
		DaysInMonth: calendar.DaysInMonth(year, month),
	}
	resp.MonthName, _ = calendar.MonthName(month)
	if s, ok := calendar.SeasonOf(month); ok {
		resp.Season = s.PersianName()
	}

	for day := first; day.Month() == month; {
		info, err := newDateInfo(day)
		if err != nil {
			h.writeFailure(w, r, "month grid", err)
			return
		}
		resp.Days = append(resp.Days, info)
		if day.Equal(day.LastDayOfMonth()) {
			break
		}
		if day, err = day.AddDays(1); err != nil {
			h.writeFailure(w, r, "month grid", err)
			return
		}
	}

	WriteSuccess(w, resp)
}

// SeasonInfo describes one season of a year.
type SeasonInfo struct {
	Name        string `json:"name"`
	EnglishName string `json:"english_name"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Days        int    `json:"days"`
}

// GetSeasons handles GET /api/v1/seasons/{year}
func (h *Handlers) GetSeasons(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		WriteBadRequest(w, "year must be an integer")
		return
	}

	seasons := make([]SeasonInfo, 0, 4)
	for _, s := range calendar.Seasons() {
		start, err := calendar.NewDate(year, s.StartMonth(), 1)
		if err != nil {
			h.writeFailure(w, r, "seasons", err)
			return
		}
		end, err := start.EndOfSeason()
		if err != nil {
			h.writeFailure(w, r, "seasons", err)
			return
		}
		days, err := start.DaysBetween(end)
		if err != nil {
			h.writeFailure(w, r, "seasons", err)
			return
		}
		seasons = append(seasons, SeasonInfo{
			Name:        s.PersianName(),
			EnglishName: s.EnglishName(),
			Start:       start.String(),
			End:         end.String(),
			Days:        days + 1,
		})
	}

	WriteSuccess(w, map[string]any{
		"year":         year,
		"is_leap_year": calendar.IsPersianLeapYear(year),
		"seasons":      seasons,
	})
}

// ParseRequest is the body of POST /api/v1/parse.
type ParseRequest struct {
	Input    string `json:"input" validate:"required,max=256"`
	Pattern  string `json:"pattern" validate:"max=128"`
	WithTime bool   `json:"with_time"`
}

// Parse handles POST /api/v1/parse
func (h *Handlers) Parse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Pattern == "" {
		req.Pattern = h.cfg.DefaultPattern
	}

	if req.WithTime {
		dt, err := calendar.ParseDateTime(req.Input, req.Pattern)
		if err != nil {
			h.countParseFailure(err)
			WriteDomainError(w, err)
			return
		}
		info, err := newDateTimeInfo(dt)
		if err != nil {
			h.writeFailure(w, r, "parse", err)
			return
		}
		WriteSuccess(w, info)
		return
	}

	d, err := calendar.ParseDate(req.Input, req.Pattern)
	if err != nil {
		h.countParseFailure(err)
		WriteDomainError(w, err)
		return
	}
	h.writeDate(w, r, d)
}
