package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/parsical/internal/database"
	"github.com/zapponejosh/parsical/internal/eventfile"
	"github.com/zapponejosh/parsical/internal/logger"
)

// EventResponse is the JSON form of a stored event.
type EventResponse struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	At        string        `json:"at"`
	Date      *DateTimeInfo `json:"date,omitempty"`
	Valid     bool          `json:"valid"`
	CreatedAt string        `json:"created_at"`
}

func newEventResponse(e *database.Event) EventResponse {
	resp := EventResponse{
		ID:        e.ID,
		Title:     e.Title,
		At:        e.At.String(),
		Valid:     e.At.IsValid(),
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
	}
	if resp.Valid {
		if info, err := newDateTimeInfo(e.At); err == nil {
			resp.Date = &info
		}
	}
	return resp
}

// CreateEventRequest is the body of POST /api/v1/events.
type CreateEventRequest struct {
	Title string `json:"title" validate:"required,max=200"`
	At    string `json:"at" validate:"required"`
}

// ListEvents handles GET /api/v1/events?year=&month=&limit=
func (h *Handlers) ListEvents(w http.ResponseWriter, r *http.Request) {
	var f database.EventFilter
	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"year", &f.Year},
		{"month", &f.Month},
		{"limit", &f.Limit},
	} {
		n, err := queryInt(r, p.name)
		if err != nil {
			WriteBadRequest(w, err.Error())
			return
		}
		*p.dst = n
	}
	if f.Month != 0 && f.Year == 0 {
		WriteBadRequest(w, "month filter requires year")
		return
	}
	if f.Month < 0 || f.Month > 12 {
		WriteBadRequest(w, "month must be between 1 and 12")
		return
	}

	events, err := h.db.ListEvents(r.Context(), f)
	if err != nil {
		h.writeFailure(w, r, "list events", err)
		return
	}

	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, newEventResponse(e))
	}
	WriteSuccess(w, map[string]any{
		"count":  len(out),
		"events": out,
	})
}

// CreateEvent handles POST /api/v1/events
func (h *Handlers) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !decodeBody(w, r, &req) {
		return
	}

	at, err := eventfile.ParseTime(req.At)
	if err != nil {
		h.countParseFailure(err)
		WriteDomainError(w, fmt.Errorf("at %q: %w", req.At, err))
		return
	}

	e := &database.Event{Title: strings.TrimSpace(req.Title), At: at}
	if err := h.db.CreateEvent(r.Context(), e); err != nil {
		h.writeFailure(w, r, "create event", err)
		return
	}
	h.metrics.IncrementEventsCreated()

	logger.Info(r.Context(), "event created",
		slog.String("event_id", e.ID),
		logger.DateTimeAttr("at", e.At),
	)
	WriteCreated(w, newEventResponse(e))
}

// GetEvent handles GET /api/v1/events/{id}
func (h *Handlers) GetEvent(w http.ResponseWriter, r *http.Request) {
	e, err := h.db.GetEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, "Event not found")
			return
		}
		h.writeFailure(w, r, "get event", err)
		return
	}
	WriteSuccess(w, newEventResponse(e))
}

// DeleteEvent handles DELETE /api/v1/events/{id}
func (h *Handlers) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.db.DeleteEvent(r.Context(), id); err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, "Event not found")
			return
		}
		h.writeFailure(w, r, "delete event", err)
		return
	}

	logger.Info(r.Context(), "event deleted", slog.String("event_id", id))
	w.WriteHeader(http.StatusNoContent)
}
