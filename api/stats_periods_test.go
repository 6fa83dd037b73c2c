package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodSettings(t *testing.T) {
	for _, period := range []string{"week", "month", "year"} {
		_, ok := periodSettings(period)
		assert.True(t, ok, period)
	}

	_, ok := periodSettings("decade")
	assert.False(t, ok)
}

func TestDateRangeWeek(t *testing.T) {
	cfg, _ := periodSettings("week")
	now := time.Date(2024, 5, 15, 13, 45, 0, 0, time.UTC)

	start, end := dateRange(cfg, now)

	assert.Equal(t, time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 2024, end.Year())
	assert.Equal(t, time.May, end.Month())
	assert.Equal(t, 15, end.Day())
	assert.Equal(t, 23, end.Hour())
}

func TestDateRangeYearStartsOnMonthBoundary(t *testing.T) {
	cfg, _ := periodSettings("year")
	now := time.Date(2024, 5, 15, 13, 45, 0, 0, time.UTC)

	start, _ := dateRange(cfg, now)

	assert.Equal(t, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), start)
}

func TestBucketKeysWeek(t *testing.T) {
	cfg, _ := periodSettings("week")
	start := time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC)

	keys := bucketKeys(cfg, start)

	require.Len(t, keys, 7)
	assert.Equal(t, "2024-05-09", keys[0])
	assert.Equal(t, "2024-05-15", keys[6])
}

func TestBucketKeysYear(t *testing.T) {
	cfg, _ := periodSettings("year")
	start := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)

	keys := bucketKeys(cfg, start)

	require.Len(t, keys, 12)
	assert.Equal(t, "2023-06", keys[0])
	assert.Equal(t, "2024-05", keys[11])
}

func TestPeriodLabels(t *testing.T) {
	now := time.Date(2024, 5, 15, 13, 45, 0, 0, time.UTC) // a Wednesday

	week, _ := periodSettings("week")
	labels := periodLabels(week, now)
	require.Len(t, labels, 7)
	assert.Equal(t, "Thu", labels[0])
	assert.Equal(t, "Wed", labels[6])

	month, _ := periodSettings("month")
	labels = periodLabels(month, now)
	require.Len(t, labels, 30)
	assert.Equal(t, "Apr 16", labels[0])
	assert.Equal(t, "May 15", labels[29])

	year, _ := periodSettings("year")
	labels = periodLabels(year, now)
	require.Len(t, labels, 12)
	assert.Equal(t, "Jun", labels[0])
	assert.Equal(t, "May", labels[11])
}

func TestFillSeriesZeroFillsGaps(t *testing.T) {
	keys := []string{"2024-05-09", "2024-05-10", "2024-05-11"}
	counts := map[string]int64{"2024-05-10": 4}

	series := fillSeries(keys, counts)

	assert.Equal(t, []int64{0, 4, 0}, series)
}

func TestCountsByKey(t *testing.T) {
	rows := []bucketCount{
		{Key: "2024-05-09", Total: 2},
		{Key: "2024-05-11", Total: 3},
	}

	counts, total := countsByKey(rows)

	assert.Equal(t, int64(5), total)
	assert.Equal(t, int64(2), counts["2024-05-09"])
	assert.Equal(t, int64(3), counts["2024-05-11"])
}
