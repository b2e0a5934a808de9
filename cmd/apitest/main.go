// Command apitest runs a smoke test suite against a running parsical API.
//
// Usage:
//
//	go run ./cmd/apitest -url http://localhost:8080 -key $API_KEY
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/zapponejosh/parsical/internal/api"
)

// =============================================================================
// Test Runner
// =============================================================================

type TestRunner struct {
	baseURL      string
	apiKey       string
	client       *http.Client
	verbose      bool
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL, apiKey string, verbose bool) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		verbose: verbose,
	}
}

func (tr *TestRunner) Run() {
	fmt.Println("==============================================")
	fmt.Println("Parsical API Test Suite")
	fmt.Println("==============================================")
	fmt.Printf("Base URL: %s\n", tr.baseURL)
	fmt.Println()

	tr.testHealth()
	tr.testToday()
	tr.testConversions()
	tr.testDateRange()
	tr.testErrorCodes()
	tr.testEvents()

	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	var health api.HealthResponse
	if _, err := tr.call(http.MethodGet, "/health", nil, &health); err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	if health.Status == "healthy" {
		tr.recordSuccess(fmt.Sprintf("Health check passed (schema v%d, %d events)", health.SchemaVersion, health.Events))
	} else {
		tr.recordError("Health", fmt.Sprintf("Unexpected status: %s", health.Status))
	}
}

func (tr *TestRunner) testToday() {
	tr.printSection("Today")

	var today api.DateInfo
	if _, err := tr.call(http.MethodGet, "/api/v1/today", nil, &today); err != nil {
		tr.recordError("Today", err.Error())
		return
	}
	tr.recordSuccess(fmt.Sprintf("Today: %s (%s, %s)", today.Date, today.Weekday, today.Gregorian))

	var now api.NowResponse
	if _, err := tr.call(http.MethodGet, "/api/v1/now?tz=America/New_York", nil, &now); err != nil {
		tr.recordError("Now (New York)", err.Error())
		return
	}
	tr.recordSuccess(fmt.Sprintf("Now in New York: %s", now.Display))
}

func (tr *TestRunner) testConversions() {
	tr.printSection("Conversions")

	testCases := []struct {
		path        string
		persian     string
		gregorian   string
		description string
	}{
		{"/api/v1/convert/gregorian/2024-03-20", "1403/01/01", "2024-03-20", "Nowruz 1403"},
		{"/api/v1/convert/gregorian/2025-03-21", "1404/01/01", "2025-03-21", "Nowruz 1404"},
		{"/api/v1/convert/gregorian/1979-02-11", "1357/11/22", "1979-02-11", "22 Bahman 1357"},
		{"/api/v1/convert/persian/1403-12-30", "1403/12/30", "2025-03-20", "Last day of leap year 1403"},
		{"/api/v1/convert/persian/1403-05-02", "1403/05/02", "2024-07-23", "Mid-summer"},
	}

	for _, tc := range testCases {
		var info api.DateInfo
		if _, err := tr.call(http.MethodGet, tc.path, nil, &info); err != nil {
			tr.recordError(tc.description, err.Error())
			continue
		}

		if info.Date == tc.persian && info.Gregorian == tc.gregorian {
			tr.recordSuccess(fmt.Sprintf("%s = %s (%s)", info.Date, info.Gregorian, tc.description))
		} else {
			tr.recordError(tc.description, fmt.Sprintf("Expected %s = %s, got %s = %s",
				tc.persian, tc.gregorian, info.Date, info.Gregorian))
		}

		if tr.verbose {
			tr.printDateDetail(&info)
		}
	}
}

func (tr *TestRunner) testDateRange() {
	tr.printSection("Date Range Tests")

	var rangeData struct {
		Count int            `json:"count"`
		Days  []api.DateInfo `json:"days"`
	}
	if _, err := tr.call(http.MethodGet, "/api/v1/dates/range?from=1403-12-28&to=1404-01-03", nil, &rangeData); err != nil {
		tr.recordError("Range (new year)", err.Error())
		return
	}
	if rangeData.Count == 6 && rangeData.Days[3].Date == "1404/01/01" {
		tr.recordSuccess("Range across Nowruz returns 6 days")
	} else {
		tr.recordError("Range (new year)", fmt.Sprintf("Unexpected range: %d days", rangeData.Count))
	}

	status, err := tr.call(http.MethodGet, "/api/v1/dates/range?from=1403-01-01&to=1404-01-01", nil, nil)
	if status == http.StatusBadRequest {
		tr.recordSuccess("Year-long range rejected")
	} else {
		tr.recordError("Range (too large)", fmt.Sprintf("Expected 400, got %d (%v)", status, err))
	}
}

func (tr *TestRunner) testErrorCodes() {
	tr.printSection("Error Codes")

	testCases := []struct {
		path   string
		status int
		code   string
	}{
		{"/api/v1/convert/persian/1404-12-30", http.StatusBadRequest, "PARSE_INVALID_DATE_VALUE"},
		{"/api/v1/convert/gregorian/0500-01-01", http.StatusUnprocessableEntity, "OUT_OF_RANGE"},
		{"/api/v1/dates/9999-12-29/shift?days=1", http.StatusUnprocessableEntity, "OUT_OF_RANGE"},
		{"/api/v1/dates/9999-01-01/shift?years=1", http.StatusUnprocessableEntity, "ARITHMETIC_OVERFLOW"},
		{"/api/v1/months/1403/13", http.StatusBadRequest, "INVALID_DATE"},
	}

	for _, tc := range testCases {
		status, err := tr.call(http.MethodGet, tc.path, nil, nil)
		if status == tc.status && err != nil && strings.Contains(err.Error(), tc.code) {
			tr.recordSuccess(fmt.Sprintf("%s -> %d %s", tc.path, status, tc.code))
		} else {
			tr.recordError(tc.path, fmt.Sprintf("Expected %d %s, got %d (%v)", tc.status, tc.code, status, err))
		}
	}
}

func (tr *TestRunner) testEvents() {
	tr.printSection("Events")

	if tr.apiKey == "" {
		fmt.Println("  (skipped: no -key given)")
		return
	}

	var created api.EventResponse
	_, err := tr.call(http.MethodPost, "/api/v1/events",
		api.CreateEventRequest{Title: "apitest", At: "1404/01/01 12:00:00"}, &created)
	if err != nil {
		tr.recordError("Create event", err.Error())
		return
	}
	tr.recordSuccess(fmt.Sprintf("Created event %s at %s", created.ID, created.At))

	var fetched api.EventResponse
	if _, err := tr.call(http.MethodGet, "/api/v1/events/"+created.ID, nil, &fetched); err != nil {
		tr.recordError("Get event", err.Error())
	} else if fetched.At != created.At {
		tr.recordError("Get event", fmt.Sprintf("Expected %s, got %s", created.At, fetched.At))
	} else {
		tr.recordSuccess("Fetched event round-trips")
	}

	status, _ := tr.call(http.MethodDelete, "/api/v1/events/"+created.ID, nil, nil)
	if status == http.StatusNoContent {
		tr.recordSuccess("Deleted event")
	} else {
		tr.recordError("Delete event", fmt.Sprintf("HTTP %d", status))
	}
}

// =============================================================================
// Helpers
// =============================================================================

// call sends a request and decodes the data field into target. Failed
// responses come back as an error carrying the API's code.
func (tr *TestRunner) call(method, path string, body, target any) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, tr.baseURL+path, reader)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if tr.apiKey != "" {
		req.Header.Set("X-API-Key", tr.apiKey)
	}

	resp, err := tr.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return resp.StatusCode, nil
	}

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   *api.ErrorInfo  `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}

	if !envelope.Success {
		if envelope.Error != nil {
			return resp.StatusCode, fmt.Errorf("API error %s: %s", envelope.Error.Code, envelope.Error.Message)
		}
		return resp.StatusCode, fmt.Errorf("API error: HTTP %d", resp.StatusCode)
	}

	if target != nil {
		if err := json.Unmarshal(envelope.Data, target); err != nil {
			return resp.StatusCode, fmt.Errorf("decode data: %w", err)
		}
	}
	return resp.StatusCode, nil
}

func (tr *TestRunner) printSection(name string) {
	fmt.Println()
	fmt.Printf("--- %s ---\n", name)
	fmt.Println()
}

func (tr *TestRunner) printDateDetail(d *api.DateInfo) {
	fmt.Printf("    %s %d %s %d, day %d, week %d, %s\n",
		d.Weekday, d.Day, d.MonthName, d.Year, d.Ordinal, d.WeekOfYear, d.Season)
}

func (tr *TestRunner) recordSuccess(msg string) {
	tr.successCount++
	fmt.Printf("  ✓ %s\n", msg)
}

func (tr *TestRunner) recordError(context, msg string) {
	tr.errorCount++
	errStr := fmt.Sprintf("%s: %s", context, msg)
	tr.errors = append(tr.errors, errStr)
	fmt.Printf("  ✗ %s\n", errStr)
}

func (tr *TestRunner) printSummary() {
	fmt.Println()
	fmt.Println("==============================================")
	fmt.Println("Summary")
	fmt.Println("==============================================")
	fmt.Printf("  Passed: %d\n", tr.successCount)
	fmt.Printf("  Failed: %d\n", tr.errorCount)
	fmt.Println()

	if tr.errorCount > 0 {
		fmt.Println("Failures:")
		for _, err := range tr.errors {
			fmt.Printf("  • %s\n", err)
		}
		fmt.Println()
	}

	if tr.errorCount == 0 {
		fmt.Println("All tests passed! ✓")
	} else {
		fmt.Printf("Tests completed with %d failure(s)\n", tr.errorCount)
	}
}

// =============================================================================
// Main
// =============================================================================

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	apiKey := flag.String("key", os.Getenv("API_KEY"), "API key for the event endpoints")
	verbose := flag.Bool("v", false, "Verbose output (show date details)")
	flag.Parse()

	// Check if server is reachable
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	runner := NewTestRunner(*baseURL, *apiKey, *verbose)
	runner.Run()

	if runner.errorCount > 0 {
		os.Exit(1)
	}
}
