package calendar

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	b, err := json.Marshal(mustDate(t, 1403, 5, 2))
	require.NoError(t, err)
	assert.JSONEq(t, `{"year":1403,"month":5,"day":2}`, string(b))

	var d Date
	require.NoError(t, json.Unmarshal(b, &d))
	assert.Equal(t, mustDate(t, 1403, 5, 2), d)
}

func TestDateJSONDoesNotValidate(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`{"year":1404,"month":12,"day":30}`), &d))
	assert.False(t, d.IsValid())
	assert.Equal(t, 30, d.Day())

	assert.Error(t, json.Unmarshal([]byte(`"1403/05/02"`), &d))
}

func TestDateTimeJSON(t *testing.T) {
	dt, err := NewDateTime(1403, 5, 2, 14, 30, 5)
	require.NoError(t, err)

	b, err := json.Marshal(dt)
	require.NoError(t, err)
	assert.JSONEq(t, `{"year":1403,"month":5,"day":2,"hour":14,"minute":30,"second":5}`, string(b))

	var got DateTime
	require.NoError(t, json.Unmarshal([]byte(`{"year":1403,"month":5,"day":2,"hour":25,"minute":0,"second":0}`), &got))
	assert.False(t, got.IsValid())
	assert.Equal(t, 25, got.Hour())
}
