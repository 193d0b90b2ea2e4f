package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDateTimeMarshal(t *testing.T) {
	d := NewDateTime(time.Date(2024, 7, 1, 12, 30, 0, 0, time.UTC))
	b, err := json.Marshal(d)
	require.NoError(t, err)
	require.Equal(t, `"2024-07-01T12:30:00"`, string(b))
}

func TestDateTimeMarshal_Zero(t *testing.T) {
	b, err := json.Marshal(DateTime{})
	require.NoError(t, err)
	require.Equal(t, "null", string(b))
}

func TestDateTimeUnmarshal(t *testing.T) {
	var d DateTime
	require.NoError(t, json.Unmarshal([]byte(`"2024-07-01T12:30:00"`), &d))
	require.Equal(t, time.Date(2024, 7, 1, 12, 30, 0, 0, time.UTC), d.Time)

	// fractional seconds are accepted on input
	require.NoError(t, json.Unmarshal([]byte(`"2024-07-01T12:30:00.123456"`), &d))
	require.Equal(t, 123456000, d.Nanosecond())

	require.NoError(t, json.Unmarshal([]byte("null"), &d))
	require.True(t, d.IsZero())
}

func TestDateTimeUnmarshal_Invalid(t *testing.T) {
	var d DateTime
	require.Error(t, json.Unmarshal([]byte(`"01-07-2024"`), &d))
}
