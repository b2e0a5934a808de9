// Package eventfile reads calendar event lists from YAML, TOML or JSON
// files for bulk import.
//
// A file holds a single "events" list:
//
//	events:
//	  - title: Nowruz
//	    at: "1404/01/01 12:31:30"
//	  - title: Yalda
//	    at: "1403/09/30"
package eventfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/zapponejosh/parsical/internal/calendar"
	"github.com/zapponejosh/parsical/internal/database"
)

// Format identifies a file encoding.
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
	JSON Format = "json"
)

// ErrUnknownFormat is returned for file extensions other than .yaml, .yml,
// .toml and .json.
var ErrUnknownFormat = errors.New("unknown event file format")

// Event times are written "1403/05/02 18:30:00", or as a bare date for
// midnight.
const (
	DateTimePattern = "%Y/%m/%d %T"
	DatePattern     = "%Y/%m/%d"
)

// ParseTime reads an event time in DateTimePattern or DatePattern.
func ParseTime(s string) (calendar.DateTime, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ":") {
		return calendar.ParseDateTime(s, DateTimePattern)
	}
	d, err := calendar.ParseDate(s, DatePattern)
	if err != nil {
		return calendar.DateTime{}, err
	}
	return calendar.NewDateTimeFromDate(d, 0, 0, 0)
}

// Entry is one event as written in a file.
type Entry struct {
	Title string `yaml:"title" toml:"title" json:"title"`
	At    string `yaml:"at" toml:"at" json:"at"`
}

type document struct {
	Events []Entry `yaml:"events" toml:"events" json:"events"`
}

// FormatOf picks the format from a file name's extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	case ".json":
		return JSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// Load reads and decodes the event file at path.
func Load(path string) ([]*database.Event, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open event file: %w", err)
	}
	defer f.Close()

	return Read(f, format)
}

// Read decodes an event list and parses every event time. The first bad
// entry stops the read, and the error names its position.
func Read(r io.Reader, format Format) ([]*database.Event, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read event file: %w", err)
	}

	var doc document
	switch format {
	case YAML:
		err = yaml.Unmarshal(data, &doc)
	case TOML:
		err = toml.Unmarshal(data, &doc)
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}

	events := make([]*database.Event, 0, len(doc.Events))
	for i, entry := range doc.Events {
		at, err := ParseTime(entry.At)
		if err != nil {
			return nil, fmt.Errorf("event %d (%q): at %q: %w", i, entry.Title, entry.At, err)
		}
		events = append(events, &database.Event{
			Title: strings.TrimSpace(entry.Title),
			At:    at,
		})
	}
	return events, nil
}
