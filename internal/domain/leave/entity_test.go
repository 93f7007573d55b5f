package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestedDaysBetween_Inclusive(t *testing.T) {
	start := time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 12, RequestedDaysBetween(start, end))
	assert.Equal(t, 1, RequestedDaysBetween(start, start))
}

func TestRequestedDaysBetween_AcrossDSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2026-03-08 is only 23 hours long in this zone; the count is calendar
	// based, so the short day still counts as a full day.
	start := time.Date(2026, 3, 7, 0, 0, 0, 0, loc)
	end := time.Date(2026, 3, 9, 0, 0, 0, 0, loc)

	assert.Equal(t, 3, RequestedDaysBetween(start, end))
}

func TestRemainingDays(t *testing.T) {
	b := Balance{AnnualQuota: 18, UsedDays: 7}
	assert.Equal(t, 11, b.RemainingDays())
}
