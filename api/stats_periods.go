package api

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// periodConfig drives the time-bucketed statistics endpoints. A period maps
// to a fixed number of buckets: 7 daily ones for a week, 30 for a month and
// 12 monthly ones for a year.
type periodConfig struct {
	buckets  int
	monthly  bool
	keyFmt   string // Go layout matching the store's $dateToString output
	labelFmt string // human label shown on the chart axis
	mongoFmt string // $dateToString format
}

var periods = map[string]periodConfig{
	"week":  {buckets: 7, keyFmt: "2006-01-02", labelFmt: "Mon", mongoFmt: "%Y-%m-%d"},
	"month": {buckets: 30, keyFmt: "2006-01-02", labelFmt: "Jan 02", mongoFmt: "%Y-%m-%d"},
	"year":  {buckets: 12, monthly: true, keyFmt: "2006-01", labelFmt: "Jan", mongoFmt: "%Y-%m"},
}

func periodSettings(period string) (periodConfig, bool) {
	cfg, ok := periods[period]
	return cfg, ok
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// dateRange returns the inclusive window a period covers, aligned to now.
func dateRange(cfg periodConfig, now time.Time) (start, end time.Time) {
	end = endOfDay(now)

	if cfg.monthly {
		start = startOfMonth(now).AddDate(0, -(cfg.buckets - 1), 0)
	} else {
		start = startOfDay(now).AddDate(0, 0, -(cfg.buckets - 1))
	}

	return start, end
}

// bucketKeys enumerates every bucket key in the window, in order. The series
// is zero-filled from these so gaps in the data still show up as zeroes.
func bucketKeys(cfg periodConfig, start time.Time) []string {
	keys := make([]string, cfg.buckets)

	for i := range keys {
		if cfg.monthly {
			keys[i] = start.AddDate(0, i, 0).Format(cfg.keyFmt)
		} else {
			keys[i] = start.AddDate(0, 0, i).Format(cfg.keyFmt)
		}
	}

	return keys
}

// periodLabels generates the chart axis labels, aligned so the last label is
// "now".
func periodLabels(cfg periodConfig, now time.Time) []string {
	labels := make([]string, cfg.buckets)

	for i := range labels {
		if cfg.monthly {
			labels[i] = now.AddDate(0, -(cfg.buckets - 1 - i), 0).Format(cfg.labelFmt)
		} else {
			labels[i] = now.AddDate(0, 0, -(cfg.buckets - 1 - i)).Format(cfg.labelFmt)
		}
	}

	return labels
}

// fillSeries turns sparse bucket counts into a dense, ordered series.
func fillSeries(keys []string, counts map[string]int64) []int64 {
	series := make([]int64, len(keys))
	for i, k := range keys {
		series[i] = counts[k]
	}
	return series
}

// bucketCount is one $group result row.
type bucketCount struct {
	Key   string `bson:"_id"`
	Total int64  `bson:"total"`
}

func countsByKey(rows []bucketCount) (map[string]int64, int64) {
	counts := make(map[string]int64, len(rows))
	var total int64

	for _, r := range rows {
		counts[r.Key] = r.Total
		total += r.Total
	}

	return counts, total
}

// groupByBucket is the shared $group stage: one row per bucket key.
func groupByBucket(cfg periodConfig, dateField string) bson.D {
	return bson.D{{Key: "$group", Value: bson.M{
		"_id": bson.M{"$dateToString": bson.M{
			"format": cfg.mongoFmt,
			"date":   "$" + dateField,
		}},
		"total": bson.M{"$sum": 1},
	}}}
}
