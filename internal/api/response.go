package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/zapponejosh/parsical/internal/calendar"
	"github.com/zapponejosh/parsical/internal/database"
)

// Response represents a standard API response.
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo contains error details.
type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// WriteCreated writes a 201 Created response.
func WriteCreated(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, status int, message string, code ...string) error {
	errInfo := ErrorInfo{
		Message: message,
	}
	if len(code) > 0 {
		errInfo.Code = code[0]
	}

	return WriteJSON(w, status, Response{
		Success: false,
		Error:   &errInfo,
	})
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusNotFound, message, "NOT_FOUND")
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusBadRequest, message, "BAD_REQUEST")
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusInternalServerError, message, "INTERNAL_ERROR")
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusUnauthorized, message, "UNAUTHORIZED")
}

// errorMapping pairs a sentinel with its HTTP status and machine code.
type errorMapping struct {
	target error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{calendar.ErrInvalidDate, http.StatusBadRequest, "INVALID_DATE"},
	{calendar.ErrInvalidTime, http.StatusBadRequest, "INVALID_TIME"},
	{calendar.ErrInvalidOrdinal, http.StatusBadRequest, "INVALID_ORDINAL"},
	{calendar.ErrGregorianConversion, http.StatusUnprocessableEntity, "OUT_OF_RANGE"},
	{calendar.ErrArithmeticOverflow, http.StatusUnprocessableEntity, "ARITHMETIC_OVERFLOW"},
	{database.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	{database.ErrInvalidEvent, http.StatusBadRequest, "INVALID_EVENT"},
}

// classifyError maps an error to a status and a stable code. Parse errors
// get PARSE_<KIND>, e.g. PARSE_INVALID_NUMBER.
func classifyError(err error) (status int, code string) {
	var pe *calendar.ParseError
	if errors.As(err, &pe) {
		return http.StatusBadRequest, "PARSE_" + strings.ToUpper(pe.Kind.String())
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}

// WriteDomainError writes err using its mapped status and code. Unmapped
// errors are reported as a generic internal error.
func WriteDomainError(w http.ResponseWriter, err error) error {
	status, code := classifyError(err)
	if status == http.StatusInternalServerError {
		return WriteInternalError(w, "Internal server error")
	}
	return WriteError(w, status, err.Error(), code)
}
