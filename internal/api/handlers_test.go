package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/parsical/internal/config"
	"github.com/zapponejosh/parsical/internal/database"
	"github.com/zapponejosh/parsical/internal/metrics"
)

// =============================================================================
// TEST SETUP HELPERS
// =============================================================================

const testAPIKey = "test-key-32-characters-minimum-length"

// fixedNow is 1403/05/02 15:30 in Tehran.
var fixedNow = time.Date(2024, 7, 23, 12, 0, 0, 0, time.UTC)

// testEnv sets up a complete test environment with database, config, and handlers
type testEnv struct {
	db       *database.DB
	cfg      *config.Config
	metrics  *metrics.Metrics
	handlers *Handlers
	router   http.Handler
}

// setupTest creates a fresh test environment
func setupTest(t *testing.T) *testEnv {
	t.Helper()

	dbCfg := database.Config{
		Path:            ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := database.Open(dbCfg, logger)
	require.NoError(t, err, "open test database")
	t.Cleanup(func() { db.Close() })

	_, err = db.Migrate(context.Background())
	require.NoError(t, err, "migrate test database")

	cfg := &config.Config{
		Port:           8080,
		Env:            config.EnvProduction,
		DatabasePath:   ":memory:",
		APIKey:         testAPIKey,
		LogLevel:       "error",
		LogFormat:      "text",
		Timezone:       "Asia/Tehran",
		DefaultPattern: "%Y/%m/%d",
		MaxRangeDays:   93,
	}

	m := metrics.New(prometheus.NewRegistry())
	handlers := NewHandlers(db, cfg, logger, m)
	handlers.now = func() time.Time { return fixedNow }

	return &testEnv{
		db:       db,
		cfg:      cfg,
		metrics:  m,
		handlers: handlers,
		router:   SetupRoutes(handlers, cfg, logger, m),
	}
}

// makeRequest is a helper to make HTTP requests with optional API key
func makeRequest(method, path string, body any, apiKey string) *http.Request {
	var bodyReader io.Reader
	if body != nil {
		jsonData, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(jsonData)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")

	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	return req
}

// do serves req through the full router.
func (env *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	return rr
}

// parseResponse decodes the envelope and, on success, its data into v.
func parseResponse(t *testing.T, rr *httptest.ResponseRecorder, v any) Response {
	t.Helper()

	var raw struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   *ErrorInfo      `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw), "body: %s", rr.Body.String())

	if v != nil && len(raw.Data) > 0 {
		require.NoError(t, json.Unmarshal(raw.Data, v))
	}
	return Response{Success: raw.Success, Error: raw.Error}
}

// expectError checks the status and error code of a failed response.
func expectError(t *testing.T, rr *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	require.Equal(t, status, rr.Code, "body: %s", rr.Body.String())
	resp := parseResponse(t, rr, nil)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, code, resp.Error.Code)
}

// =============================================================================
// CALENDAR ENDPOINTS
// =============================================================================

func TestHealthCheck(t *testing.T) {
	env := setupTest(t)

	rr := env.do(makeRequest(http.MethodGet, "/health", nil, ""))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	var health HealthResponse
	parseResponse(t, rr, &health)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, 2, health.SchemaVersion)
	assert.Zero(t, health.Events)
}

func TestGetToday(t *testing.T) {
	env := setupTest(t)

	rr := env.do(makeRequest(http.MethodGet, "/api/v1/today", nil, ""))
	require.Equal(t, http.StatusOK, rr.Code)

	var info DateInfo
	parseResponse(t, rr, &info)
	assert.Equal(t, "1403/05/02", info.Date)
	assert.Equal(t, "مرداد", info.MonthName)
	assert.Equal(t, 3, info.WeekdayNumber)
	assert.Equal(t, "Summer", info.SeasonEnglish)
	assert.True(t, info.IsLeapYear)
	assert.Equal(t, "2024-07-23", info.Gregorian)
}

func TestGetNow(t *testing.T) {
	env := setupTest(t)

	rr := env.do(makeRequest(http.MethodGet, "/api/v1/now", nil, ""))
	require.Equal(t, http.StatusOK, rr.Code)

	var now NowResponse
	parseResponse(t, rr, &now)
	assert.Equal(t, "1403/05/02 15:30:00", now.DateTime)
	assert.Equal(t, "+03:30", now.Offset)
	assert.Equal(t, 12600, now.OffsetSeconds)
	assert.Equal(t, "2024-07-23T12:00:00Z", now.Instant)

	rr = env.do(makeRequest(http.MethodGet, "/api/v1/now?tz=UTC", nil, ""))
	require.Equal(t, http.StatusOK, rr.Code)
	parseResponse(t, rr, &now)
	assert.Equal(t, "1403/05/02 12:00:00", now.DateTime)
	assert.Equal(t, 0, now.OffsetSeconds)

	rr = env.do(makeRequest(http.MethodGet, "/api/v1/now?tz=Mars/Olympus", nil, ""))
	expectError(t, rr, http.StatusBadRequest, "INVALID_TIMEZONE")
}

func TestConvert(t *testing.T) {
	env := setupTest(t)

	tests := []struct {
		name          string
		path          string
		wantPersian   string
		wantGregorian string
	}{
		{"nowruz 1404", "/api/v1/convert/gregorian/2025-03-21", "1404/01/01", "2025-03-21"},
		{"revolution day", "/api/v1/convert/gregorian/1979-02-11", "1357/11/22", "1979-02-11"},
		{"last day of leap year", "/api/v1/convert/persian/1403-12-30", "1403/12/30", "2025-03-20"},
		{"nowruz 1403", "/api/v1/convert/persian/1403-01-01", "1403/01/01", "2024-03-20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(makeRequest(http.MethodGet, tt.path, nil, ""))
			require.Equal(t, http.StatusOK, rr.Code, "body: %s", rr.Body.String())

			var info DateInfo
			parseResponse(t, rr, &info)
			assert.Equal(t, tt.wantPersian, info.Date)
			assert.Equal(t, tt.wantGregorian, info.Gregorian)
		})
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(env.metrics.Conversions.WithLabelValues(metrics.ToPersian)))
	assert.Equal(t, 2.0, testutil.ToFloat64(env.metrics.Conversions.WithLabelValues(metrics.ToGregorian)))
}

func TestConvert_Errors(t *testing.T) {
	env := setupTest(t)

	tests := []struct {
		name   string
		path   string
		status int
		code   string
	}{
		{"bad gregorian", "/api/v1/convert/gregorian/2025-13-01", http.StatusBadRequest, "BAD_REQUEST"},
		{"before epoch", "/api/v1/convert/gregorian/0500-01-01", http.StatusUnprocessableEntity, "OUT_OF_RANGE"},
		{"no esfand 30 in common year", "/api/v1/convert/persian/1404-12-30", http.StatusBadRequest, "PARSE_INVALID_DATE_VALUE"},
		{"trailing text", "/api/v1/convert/persian/1403-01-01x", http.StatusBadRequest, "PARSE_FORMAT_MISMATCH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectError(t, env.do(makeRequest(http.MethodGet, tt.path, nil, "")), tt.status, tt.code)
		})
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.ParseFailures.WithLabelValues("invalid_date_value")))
}

func TestFormatDate(t *testing.T) {
	env := setupTest(t)

	rr := env.do(makeRequest(http.MethodGet, "/api/v1/dates/1403-05-02/format", nil, ""))
	require.Equal(t, http.StatusOK, rr.Code)
	var out map[string]string
	parseResponse(t, rr, &out)
	assert.Equal(t, "1403/05/02", out["formatted"])

	rr = env.do(makeRequest(http.MethodGet, "/api/v1/dates/1403-05-02/format?pattern=%25d+%25B+%25Y", nil, ""))
	require.Equal(t, http.StatusOK, rr.Code)
	parseResponse(t, rr, &out)
	assert.Equal(t, "02 مرداد 1403", out["formatted"])
}

func TestShiftDate(t *testing.T) {
	env := setupTest(t)

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"no-op", "", "1403/12/30"},
		{"clamps into common year", "years=1", "1404/12/29"},
		{"one day into new year", "days=1", "1404/01/01"},
		{"back a month", "months=-1", "1403/11/30"},
		{"years then months then days", "years=1&months=1&days=-1", "1405/01/28"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(makeRequest(http.MethodGet, "/api/v1/dates/1403-12-30/shift?"+tt.query, nil, ""))
			require.Equal(t, http.StatusOK, rr.Code, "body: %s", rr.Body.String())
			var info DateInfo
			parseResponse(t, rr, &info)
			assert.Equal(t, tt.want, info.Date)
		})
	}

	rr := env.do(makeRequest(http.MethodGet, "/api/v1/dates/9999-12-29/shift?days=1", nil, ""))
	expectError(t, rr, http.StatusUnprocessableEntity, "OUT_OF_RANGE")

	rr = env.do(makeRequest(http.MethodGet, "/api/v1/dates/1403-01-01/shift?days=x", nil, ""))
	expectError(t, rr, http.StatusBadRequest, "BAD_REQUEST")
}

func TestGetDaysBetween(t *testing.T) {
	env := setupTest(t)

	rr := env.do(makeRequest(http.MethodGet, "/api/v1/dates/between?from=1403-01-01&to=1404-01-01", nil, ""))
	require.Equal(t, http.StatusOK, rr.Code)
	var out struct {
		Days int `json:"days"`
	}
	parseResponse(t, rr, &out)
	assert.Equal(t, 366, out.Days)

	rr = env.do(makeRequest(http.MethodGet, "/api/v1/dates/between?from=1404-01-01&to=1403-01-01", nil, ""))
	require.Equal(t, http.StatusOK, rr.Code)
	parseResponse(t, rr, &out)
	assert.Equal(t, -366, out.Days)

	rr = env.do(makeRequest(http.MethodGet, "/api/v1/dates/between?from=1403-01-01", nil, ""))
	expectError(t, rr, http.StatusBadRequest, "BAD_REQUEST")
}

func TestGetDateRange(t *testing.T) {
	env := setupTest(t)

	rr := env.do(makeRequest(http.MethodGet, "/api/v1/dates/range?from=1403-12-28&to=1404-01-02", nil, ""))
	require.Equal(t, http.StatusOK, rr.Code, "body: %s", rr.Body.String())

	var out struct {
		Count int        `json:"count"`
		Days  []DateInfo `json:"days"`
	}
	parseResponse(t, rr, &out)
	require.Equal(t, 5, out.Count)
	assert.Equal(t, "1403/12/28", out.Days[0].Date)
	assert.Equal(t, "1403/12/30", out.Days[2].Date)
	assert.Equal(t, "1404/01/01", out.Days[3].Date)
	assert.Equal(t, "2025-03-21", out.Days[3].Gregorian)

	// Exactly the limit: Farvardin through Khordad is 93 days.
	rr = env.do(makeRequest(http.MethodGet, "/api/v1/dates/range?from=1403-01-01&to=1403-03-31", nil, ""))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = env.do(makeRequest(http.MethodGet, "/api/v1/dates/range?from=1403-01-01&to=1403-04-01", nil, ""))
	expectError(t, rr, http.StatusBadRequest, "RANGE_TOO_LARGE")

	rr = env.do(makeRequest(http.MethodGet, "/api/v1/dates/range?from=1403-02-01&to=1403-01-01", nil, ""))
	expectError(t, rr, http.StatusBadRequest, "BAD_REQUEST")
}

func TestGetMonth(t *testing.T) {
	env := setupTest(t)

	rr := env.do(makeRequest(http.MethodGet, "/api/v1/months/1403/12", nil, ""))
	require.Equal(t, http.StatusOK, rr.Code)
	var month MonthResponse
	parseResponse(t, rr, &month)
	assert.Equal(t, 30, month.DaysInMonth)
	assert.Len(t, month.Days, 30)
	assert.Equal(t, "اسفند", month.MonthName)
	assert.Equal(t, "زمستان", month.Season)
	assert.Equal(t, "1403/12/30", month.Days[29].Date)

	rr = env.do(makeRequest(http.MethodGet, "/api/v1/months/1404/12", nil, ""))
	require.Equal(t, http.StatusOK, rr.Code)
	parseResponse(t, rr, &month)
	assert.Len(t, month.Days, 29)

	expectError(t, env.do(makeRequest(http.MethodGet, "/api/v1/months/1403/13", nil, "")),
		http.StatusBadRequest, "INVALID_DATE")
}

func TestGetSeasons(t *testing.T) {
	env := setupTest(t)

	rr := env.do(makeRequest(http.MethodGet, "/api/v1/seasons/1404", nil, ""))
	require.Equal(t, http.StatusOK, rr.Code)

	var out struct {
		IsLeapYear bool         `json:"is_leap_year"`
		Seasons    []SeasonInfo `json:"seasons"`
	}
	parseResponse(t, rr, &out)
	assert.False(t, out.IsLeapYear)
	require.Len(t, out.Seasons, 4)

	wantDays := []int{93, 93, 90, 89}
	for i, s := range out.Seasons {
		assert.Equal(t, wantDays[i], s.Days, s.EnglishName)
	}
	assert.Equal(t, "1404/10/01", out.Seasons[3].Start)
	assert.Equal(t, "1404/12/29", out.Seasons[3].End)
}

func TestParse(t *testing.T) {
	env := setupTest(t)

	tests := []struct {
		name     string
		req      ParseRequest
		wantDate string
		wantCode string
	}{
		{"default pattern", ParseRequest{Input: "1403/05/02"}, "1403/05/02", ""},
		{"month name", ParseRequest{Input: "02 مرداد 1403", Pattern: "%d %B %Y"}, "1403/05/02", ""},
		{"with time", ParseRequest{Input: "1403/05/02 18:30:00", Pattern: "%Y/%m/%d %T", WithTime: true}, "1403/05/02", ""},
		{"bad digits", ParseRequest{Input: "14x3/05/02"}, "", "PARSE_INVALID_NUMBER"},
		{"bad month name", ParseRequest{Input: "02 Foo 1403", Pattern: "%d %B %Y"}, "", "PARSE_INVALID_MONTH_NAME"},
		{"bad time", ParseRequest{Input: "1403/05/02 24:00:00", Pattern: "%Y/%m/%d %T", WithTime: true}, "", "PARSE_INVALID_TIME_VALUE"},
		{"empty input", ParseRequest{Pattern: "%Y/%m/%d"}, "", "VALIDATION_FAILED"},
		{"long pattern", ParseRequest{Input: "1403/05/02", Pattern: strings.Repeat("%Y", 65)}, "", "VALIDATION_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(makeRequest(http.MethodPost, "/api/v1/parse", tt.req, ""))
			if tt.wantCode != "" {
				expectError(t, rr, http.StatusBadRequest, tt.wantCode)
				return
			}
			require.Equal(t, http.StatusOK, rr.Code, "body: %s", rr.Body.String())
			var info DateTimeInfo
			parseResponse(t, rr, &info)
			assert.Equal(t, tt.wantDate, info.Date)
			if tt.req.WithTime {
				assert.Equal(t, 18, info.Hour)
				assert.Equal(t, 30, info.Minute)
			}
		})
	}

	rr := env.do(httptest.NewRequest(http.MethodPost, "/api/v1/parse", strings.NewReader("{")))
	expectError(t, rr, http.StatusBadRequest, "BAD_REQUEST")
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	env := setupTest(t)

	expectError(t, env.do(makeRequest(http.MethodGet, "/api/v1/nope", nil, "")),
		http.StatusNotFound, "NOT_FOUND")
	expectError(t, env.do(makeRequest(http.MethodPut, "/api/v1/today", nil, "")),
		http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED")
}

func TestMetricsUseRoutePattern(t *testing.T) {
	env := setupTest(t)

	env.do(makeRequest(http.MethodGet, "/api/v1/dates/1403-05-02", nil, ""))
	env.do(makeRequest(http.MethodGet, "/api/v1/dates/1403-05-03", nil, ""))

	got := testutil.ToFloat64(env.metrics.HTTPRequests.WithLabelValues(http.MethodGet, "/api/v1/dates/{date}", "200"))
	assert.Equal(t, 2.0, got)

	rr := env.do(makeRequest(http.MethodGet, "/metrics", nil, ""))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "parsical_http_requests_total")
}

// =============================================================================
// MIDDLEWARE
// =============================================================================

func TestAuthMiddleware(t *testing.T) {
	env := setupTest(t)

	tests := []struct {
		name   string
		apiKey string
		status int
	}{
		{"valid key", testAPIKey, http.StatusOK},
		{"missing key", "", http.StatusUnauthorized},
		{"invalid key", "wrong-key", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(makeRequest(http.MethodGet, "/api/v1/events", nil, tt.apiKey))
			assert.Equal(t, tt.status, rr.Code)
		})
	}
}

func TestAuthMiddleware_DevelopmentWithoutKey(t *testing.T) {
	env := setupTest(t)
	env.cfg.Env = config.EnvDevelopment
	env.cfg.APIKey = ""

	rr := env.do(makeRequest(http.MethodGet, "/api/v1/events", nil, ""))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	env := setupTest(t)

	const id = "4f6c1b8e-2a7d-4c1e-9f3b-0d5e6a7b8c9d"
	req := makeRequest(http.MethodGet, "/health", nil, "")
	req.Header.Set("X-Request-ID", id)
	assert.Equal(t, id, env.do(req).Header().Get("X-Request-ID"))

	req = makeRequest(http.MethodGet, "/health", nil, "")
	req.Header.Set("X-Request-ID", "not a uuid")
	got := env.do(req).Header().Get("X-Request-ID")
	assert.NotEqual(t, "not a uuid", got)
	assert.Len(t, got, 36)
}

func TestRecoveryMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := RecoveryMiddleware(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	expectError(t, rr, http.StatusInternalServerError, "INTERNAL_ERROR")
}

func TestRateLimitMiddleware(t *testing.T) {
	env := setupTest(t)
	env.cfg.RateLimitRPS = 1
	env.cfg.RateLimitBurst = 2
	router := SetupRoutes(env.handlers, env.cfg, slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics.New(prometheus.NewRegistry()))

	get := func(path, addr string) *httptest.ResponseRecorder {
		req := makeRequest(http.MethodGet, path, nil, "")
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusOK, get("/api/v1/today", "192.0.2.1:1000").Code)
	assert.Equal(t, http.StatusOK, get("/api/v1/today", "192.0.2.1:1001").Code)

	rr := get("/api/v1/today", "192.0.2.1:1002")
	expectError(t, rr, http.StatusTooManyRequests, "RATE_LIMITED")
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))

	// Other clients and routes outside /api/v1 are unaffected.
	assert.Equal(t, http.StatusOK, get("/api/v1/today", "192.0.2.2:1000").Code)
	assert.Equal(t, http.StatusOK, get("/health", "192.0.2.1:1003").Code)
}

func TestClientLimiter_ExpiresIdleClients(t *testing.T) {
	cl := newClientLimiter(1, 1)
	start := time.Date(2024, 7, 23, 0, 0, 0, 0, time.UTC)

	assert.True(t, cl.allow("a", start))
	assert.False(t, cl.allow("a", start))
	assert.Len(t, cl.visitors, 1)

	later := start.Add(visitorTTL + time.Minute)
	assert.True(t, cl.allow("b", later))
	assert.Len(t, cl.visitors, 1, "idle client should have been swept")
}

// =============================================================================
// EVENT ENDPOINTS
// =============================================================================

func TestEvents_FullFlow(t *testing.T) {
	env := setupTest(t)

	// Create
	rr := env.do(makeRequest(http.MethodPost, "/api/v1/events",
		CreateEventRequest{Title: "Nowruz", At: "1404/01/01 12:31:30"}, testAPIKey))
	require.Equal(t, http.StatusCreated, rr.Code, "body: %s", rr.Body.String())

	var created EventResponse
	parseResponse(t, rr, &created)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "1404/01/01 12:31:30", created.At)
	assert.True(t, created.Valid)
	require.NotNil(t, created.Date)
	assert.Equal(t, "2025-03-21", created.Date.Gregorian)
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.EventsCreated))

	// A bare date is midnight
	rr = env.do(makeRequest(http.MethodPost, "/api/v1/events",
		CreateEventRequest{Title: "Yalda", At: "1403/09/30"}, testAPIKey))
	require.Equal(t, http.StatusCreated, rr.Code)

	// List in calendar order
	rr = env.do(makeRequest(http.MethodGet, "/api/v1/events", nil, testAPIKey))
	require.Equal(t, http.StatusOK, rr.Code)
	var list struct {
		Count  int             `json:"count"`
		Events []EventResponse `json:"events"`
	}
	parseResponse(t, rr, &list)
	require.Equal(t, 2, list.Count)
	assert.Equal(t, "Yalda", list.Events[0].Title)
	assert.Equal(t, "1403/09/30 00:00:00", list.Events[0].At)

	rr = env.do(makeRequest(http.MethodGet, "/api/v1/events?year=1404&month=1", nil, testAPIKey))
	parseResponse(t, rr, &list)
	assert.Equal(t, 1, list.Count)

	// Get
	rr = env.do(makeRequest(http.MethodGet, "/api/v1/events/"+created.ID, nil, testAPIKey))
	require.Equal(t, http.StatusOK, rr.Code)

	// Delete
	rr = env.do(makeRequest(http.MethodDelete, "/api/v1/events/"+created.ID, nil, testAPIKey))
	assert.Equal(t, http.StatusNoContent, rr.Code)

	expectError(t, env.do(makeRequest(http.MethodGet, "/api/v1/events/"+created.ID, nil, testAPIKey)),
		http.StatusNotFound, "NOT_FOUND")
	expectError(t, env.do(makeRequest(http.MethodDelete, "/api/v1/events/"+created.ID, nil, testAPIKey)),
		http.StatusNotFound, "NOT_FOUND")
}

func TestCreateEvent_Invalid(t *testing.T) {
	env := setupTest(t)

	tests := []struct {
		name string
		req  CreateEventRequest
		code string
	}{
		{"missing title", CreateEventRequest{At: "1403/01/01"}, "VALIDATION_FAILED"},
		{"blank title", CreateEventRequest{Title: " ", At: "1403/01/01"}, "INVALID_EVENT"},
		{"long title", CreateEventRequest{Title: strings.Repeat("x", 201), At: "1403/01/01"}, "VALIDATION_FAILED"},
		{"missing at", CreateEventRequest{Title: "x"}, "VALIDATION_FAILED"},
		{"invalid date", CreateEventRequest{Title: "x", At: "1404/12/30"}, "PARSE_INVALID_DATE_VALUE"},
		{"invalid time", CreateEventRequest{Title: "x", At: "1403/01/01 25:00:00"}, "PARSE_INVALID_TIME_VALUE"},
		{"garbage", CreateEventRequest{Title: "x", At: "tomorrow"}, "PARSE_INVALID_NUMBER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(makeRequest(http.MethodPost, "/api/v1/events", tt.req, testAPIKey))
			expectError(t, rr, http.StatusBadRequest, tt.code)
		})
	}

	n, err := env.db.CountEvents(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestValidationMessage(t *testing.T) {
	env := setupTest(t)

	rr := env.do(makeRequest(http.MethodPost, "/api/v1/events", map[string]string{}, testAPIKey))
	expectError(t, rr, http.StatusBadRequest, "VALIDATION_FAILED")

	var resp Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "title is required; at is required", resp.Error.Message)
}

func TestListEvents_BadFilter(t *testing.T) {
	env := setupTest(t)

	for _, q := range []string{"year=abc", "month=3", "year=1403&month=13"} {
		rr := env.do(makeRequest(http.MethodGet, "/api/v1/events?"+q, nil, testAPIKey))
		expectError(t, rr, http.StatusBadRequest, "BAD_REQUEST")
	}
}
