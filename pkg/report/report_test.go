package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalizeRange(t *testing.T) {
	t.Run("parses a valid pair", func(t *testing.T) {
		from, to, err := NormalizeRange("2024-03-01", "2024-03-07")

		require.NoError(t, err)
		assert.Equal(t, date(1), from)
		assert.Equal(t, date(7), to)
	})

	t.Run("single day range is valid", func(t *testing.T) {
		from, to, err := NormalizeRange("2024-03-01", "2024-03-01")

		require.NoError(t, err)
		assert.Equal(t, from, to)
	})

	t.Run("rejects unparsable dates", func(t *testing.T) {
		for _, pair := range [][2]string{
			{"01.03.2024", "2024-03-07"},
			{"2024-03-01", "next week"},
			{"", "2024-03-07"},
		} {
			_, _, err := NormalizeRange(pair[0], pair[1])
			assert.ErrorIs(t, err, ErrInvalidDate, "pair %v", pair)
		}
	})

	t.Run("rejects an inverted range instead of swapping", func(t *testing.T) {
		_, _, err := NormalizeRange("2024-03-07", "2024-03-01")

		assert.ErrorIs(t, err, ErrInvalidRange)
	})
}

func TestExtendRange(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		wantFrom time.Time
		wantTo   time.Time
	}{
		{"interior date leaves the window alone", date(5), date(1), date(7)},
		{"boundary date leaves the window alone", date(7), date(1), date(7)},
		{"later date moves the upper bound", date(12), date(1), date(12)},
		{"earlier date moves the lower bound", date(1).AddDate(0, -1, 0), date(1).AddDate(0, -1, 0), date(7)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := ExtendRange(date(1), date(7), tt.date)

			assert.Equal(t, tt.wantFrom, from)
			assert.Equal(t, tt.wantTo, to)
		})
	}
}
