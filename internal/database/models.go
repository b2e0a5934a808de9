package database

import (
	"time"

	"github.com/zapponejosh/parsical/internal/calendar"
)

// Event is a titled moment on the Persian calendar.
type Event struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	At        calendar.DateTime `json:"at"`
	CreatedAt time.Time         `json:"created_at"`
}

// EventFilter narrows ListEvents. Zero fields match everything.
type EventFilter struct {
	Year  int
	Month int
	Limit int
}

// DefaultEventLimit caps ListEvents when the filter gives no limit.
const DefaultEventLimit = 100
