package domain_test

import (
	"testing"
	"time"

	"github.com/comitanigiacomo/habit-horizon/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayKey(t *testing.T) {
	t.Run("Same local day produces the same key", func(t *testing.T) {
		morning := time.Date(2024, 3, 6, 0, 0, 1, 0, time.UTC)
		night := time.Date(2024, 3, 6, 23, 59, 59, 0, time.UTC)

		assert.Equal(t, "2024-03-06", domain.DayKey(morning))
		assert.Equal(t, domain.DayKey(morning), domain.DayKey(night))
	})

	t.Run("Key follows the location of the time value", func(t *testing.T) {
		loc := time.FixedZone("UTC+9", 9*3600)
		utcEvening := time.Date(2024, 3, 6, 20, 0, 0, 0, time.UTC)

		assert.Equal(t, "2024-03-06", domain.DayKey(utcEvening))
		assert.Equal(t, "2024-03-07", domain.DayKey(utcEvening.In(loc)))
	})
}

func TestParseDayKey(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)

	got, err := domain.ParseDayKey("2024-02-29", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, loc), got)

	_, err = domain.ParseDayKey("29/02/2024", loc)
	assert.ErrorIs(t, err, domain.ErrInvalidDayKey)
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name string
		day  time.Time
		want time.Time
	}{
		{"Monday stays", time.Date(2024, 3, 4, 15, 0, 0, 0, time.UTC), time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)},
		{"Wednesday", time.Date(2024, 3, 6, 8, 0, 0, 0, time.UTC), time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)},
		{"Sunday belongs to previous Monday", time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC), time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)},
		{"Across month boundary", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), time.Date(2024, 2, 26, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.StartOfWeek(tt.day))
			assert.Equal(t, tt.want.AddDate(0, 0, 6), domain.EndOfWeek(tt.day))
		})
	}
}

func TestAddDays_AcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Skipf("tzdata not available: %v", err)
	}

	// DST starts on 2024-03-31 in Europe/Rome; that day lasts 23 hours.
	start := time.Date(2024, 3, 31, 0, 0, 0, 0, loc)
	next := domain.AddDays(start, 1)

	assert.Equal(t, "2024-04-01", domain.DayKey(next))
	assert.Equal(t, 1, domain.DaysBetween(start, next))
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 3, 4, 23, 0, 0, 0, time.UTC)
	b := time.Date(2024, 3, 6, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, 2, domain.DaysBetween(a, b))
	assert.Equal(t, -2, domain.DaysBetween(b, a))
	assert.Equal(t, 0, domain.DaysBetween(a, a))
}
