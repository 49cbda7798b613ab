package booking

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-07-14")
	require.NoError(t, err)
	assert.Equal(t, "2026-07-14", d.String())

	_, err = ParseDate("14/07/2026")
	assert.Error(t, err)
	_, err = ParseDate("2026-07-14T10:00:00Z")
	assert.Error(t, err)
}

func TestDateOfTruncates(t *testing.T) {
	ts := time.Date(2026, time.July, 14, 23, 45, 12, 0, time.UTC)
	assert.True(t, DateOf(ts).Equal(NewDate(2026, time.July, 14)))
}

func TestDateJSONRoundTrip(t *testing.T) {
	type payload struct {
		From Date `json:"from"`
	}

	raw, err := json.Marshal(payload{From: NewDate(2026, time.March, 1)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"from":"2026-03-01"}`, string(raw))

	var decoded payload
	require.NoError(t, json.Unmarshal([]byte(`{"from":"2026-03-01"}`), &decoded))
	assert.True(t, decoded.From.Equal(NewDate(2026, time.March, 1)))

	assert.Error(t, json.Unmarshal([]byte(`{"from":20260301}`), &decoded))
}

func TestDateRangeOverlaps(t *testing.T) {
	day := func(d int) Date { return NewDate(2026, time.June, d) }
	rng := func(from, to int) DateRange { return DateRange{From: day(from), To: day(to)} }

	tests := []struct {
		name string
		a, b DateRange
		want bool
	}{
		{"identical", rng(10, 15), rng(10, 15), true},
		{"contained", rng(10, 20), rng(12, 14), true},
		{"partial front", rng(10, 15), rng(13, 20), true},
		{"partial back", rng(13, 20), rng(10, 15), true},
		{"touching end-start", rng(10, 15), rng(15, 20), true},
		{"touching start-end", rng(15, 20), rng(10, 15), true},
		{"adjacent days", rng(10, 14), rng(15, 20), false},
		{"disjoint", rng(1, 5), rng(20, 25), false},
		{"single day equal", rng(10, 10), rng(10, 10), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "overlap is symmetric")
		})
	}
}
