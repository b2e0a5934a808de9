package eventfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/parsical/internal/calendar"
)

const yamlEvents = `
events:
  - title: Nowruz
    at: "1404/01/01 12:31:30"
  - title: Yalda
    at: 1403/09/30
`

const tomlEvents = `
[[events]]
title = "Nowruz"
at = "1404/01/01 12:31:30"

[[events]]
title = "Yalda"
at = "1403/09/30"
`

const jsonEvents = `{"events": [
  {"title": "Nowruz", "at": "1404/01/01 12:31:30"},
  {"title": "Yalda", "at": "1403/09/30"}
]}`

func TestRead(t *testing.T) {
	tests := []struct {
		format Format
		input  string
	}{
		{YAML, yamlEvents},
		{TOML, tomlEvents},
		{JSON, jsonEvents},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			events, err := Read(strings.NewReader(tt.input), tt.format)
			require.NoError(t, err)
			require.Len(t, events, 2)

			assert.Equal(t, "Nowruz", events[0].Title)
			assert.Equal(t, "1404/01/01 12:31:30", events[0].At.String())
			assert.Equal(t, "Yalda", events[1].Title)
			assert.Equal(t, "1403/09/30 00:00:00", events[1].At.String())
		})
	}
}

func TestReadErrors(t *testing.T) {
	t.Run("bad entry names its position", func(t *testing.T) {
		input := "events:\n  - title: ok\n    at: 1403/01/01\n  - title: leap\n    at: 1404/12/30\n"
		_, err := Read(strings.NewReader(input), YAML)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `event 1 ("leap")`)
		assert.True(t, errors.Is(err, &calendar.ParseError{Kind: calendar.InvalidDateValue}))
	})

	t.Run("malformed document", func(t *testing.T) {
		_, err := Read(strings.NewReader("events = ["), TOML)
		assert.Error(t, err)
	})

	t.Run("unknown json field", func(t *testing.T) {
		_, err := Read(strings.NewReader(`{"evnts": []}`), JSON)
		assert.Error(t, err)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := Read(strings.NewReader(""), Format("xml"))
		assert.ErrorIs(t, err, ErrUnknownFormat)
	})
}

func TestFormatOf(t *testing.T) {
	tests := map[string]Format{
		"events.yaml":      YAML,
		"events.YML":       YAML,
		"dir/events.toml":  TOML,
		"/tmp/events.json": JSON,
	}
	for path, want := range tests {
		got, err := FormatOf(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := FormatOf("events.csv")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holidays.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlEvents), 0o644))

	events, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, events, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		input string
		want  string
		kind  calendar.ParseErrorKind
	}{
		{"1403/05/02 18:30:00", "1403/05/02 18:30:00", 0},
		{" 1403/05/02 ", "1403/05/02 00:00:00", 0},
		{"1403/05/02 18:30", "", calendar.FormatMismatch},
		{"1403/05/02 24:00:00", "", calendar.InvalidTimeValue},
		{"1404/12/30", "", calendar.InvalidDateValue},
		{"tomorrow", "", calendar.InvalidNumber},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTime(tt.input)
			if tt.kind != 0 {
				assert.ErrorIs(t, err, &calendar.ParseError{Kind: tt.kind})
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}
