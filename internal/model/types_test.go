package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2026, time.March, 9)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-09"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, d.Equal(back))
}

func TestDateUnmarshalRejectsOtherLayouts(t *testing.T) {
	var d Date
	err := json.Unmarshal([]byte(`"09/03/2026"`), &d)
	assert.Error(t, err)
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2026, 3, 9, 15, 30, 0, 0, time.UTC)))
	assert.Equal(t, "2026-03-09", d.String())

	require.NoError(t, d.Scan([]byte("1999-12-31")))
	assert.Equal(t, "1999-12-31", d.String())

	assert.Error(t, d.Scan(42))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("1985-06-01")
	require.NoError(t, err)
	assert.Equal(t, "1985-06-01", d.String())

	_, err = ParseDate("01-06-1985")
	assert.Error(t, err)
}

func TestParseTimeOfDayNormalizes(t *testing.T) {
	got, err := ParseTimeOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay("09:30:00"), got)

	got, err = ParseTimeOfDay("09:30:15")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay("09:30:15"), got)
}

func TestParseTimeOfDayRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "9h30", "25:00", "09:61"} {
		_, err := ParseTimeOfDay(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestTimeOfDayScan(t *testing.T) {
	var tod TimeOfDay
	require.NoError(t, tod.Scan(time.Date(0, 1, 1, 9, 30, 0, 0, time.UTC)))
	assert.Equal(t, TimeOfDay("09:30:00"), tod)

	require.NoError(t, tod.Scan("14:00:00"))
	assert.Equal(t, TimeOfDay("14:00:00"), tod)
}
