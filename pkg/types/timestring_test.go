package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"09:00", "09:00", false},
		{"23:59", "23:59", false},
		{"00:00", "00:00", false},
		{"9:00", "", true},
		{"24:00", "", true},
		{"09:60", "", true},
		{"09-00", "", true},
		{"", "", true},
		{"morning", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2026, 3, 15, 9, 5, 0, 0, time.UTC))
	assert.Equal(t, "09:05", ts.String())
}

func TestTimeStringComparisons(t *testing.T) {
	nine, err := NewTimeStringFromString("09:00")
	require.NoError(t, err)
	ten, err := NewTimeStringFromString("10:00")
	require.NoError(t, err)

	assert.True(t, nine.IsBefore(ten))
	assert.False(t, ten.IsBefore(nine))
	assert.True(t, ten.IsAfter(nine))
	assert.True(t, nine.Equal(nine))
	assert.False(t, nine.Equal(ten))
}

func TestTimeStringAddMinutes(t *testing.T) {
	ts, err := NewTimeStringFromString("09:00")
	require.NoError(t, err)

	got, err := ts.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, "09:30", got.String())

	// Переход через полночь недопустим
	late, err := NewTimeStringFromString("23:45")
	require.NoError(t, err)
	_, err = late.AddMinutes(30)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeStringScan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:30"))
	assert.Equal(t, "10:30", ts.String())

	// PostgreSQL TIME приходит как "HH:MM:SS"
	require.NoError(t, ts.Scan("10:30:00"))
	assert.Equal(t, "10:30", ts.String())

	require.NoError(t, ts.Scan([]byte("11:00:00")))
	assert.Equal(t, "11:00", ts.String())

	require.NoError(t, ts.Scan(time.Date(2026, 3, 15, 14, 15, 0, 0, time.UTC)))
	assert.Equal(t, "14:15", ts.String())

	assert.Error(t, ts.Scan(42))
}

func TestTimeStringJSON(t *testing.T) {
	ts, err := NewTimeStringFromString("09:00")
	require.NoError(t, err)

	data, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"09:00"`, string(data))

	var parsed TimeString
	require.NoError(t, json.Unmarshal([]byte(`"15:45"`), &parsed))
	assert.Equal(t, "15:45", parsed.String())

	assert.Error(t, json.Unmarshal([]byte(`"bad"`), &parsed))
}
