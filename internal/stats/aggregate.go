package stats

import (
	"time"

	"github.com/pbaille/moodlog/internal/domain"
)

const dayFormat = "2006-01-02"

// DailyAverage collapses raw entries into the mean score per day. Grouping
// is exact string equality on the day field; no rounding is applied here.
func DailyAverage(entries []domain.ScoreEntry) map[string]float64 {
	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, e := range entries {
		sums[e.Day] += e.Score
		counts[e.Day]++
	}

	avgs := make(map[string]float64, len(sums))
	for d, sum := range sums {
		avgs[d] = float64(sum) / float64(counts[d])
	}
	return avgs
}

// LastNDates returns n contiguous ISO dates ending at today, oldest first
func LastNDates(today time.Time, n int) []string {
	days := make([]string, n)
	for i := 0; i < n; i++ {
		days[i] = today.AddDate(0, 0, i-(n-1)).Format(dayFormat)
	}
	return days
}

// AlignedSeries maps entries onto the n trailing days ending at today.
// The result always has length n; days without any record are marked
// absent rather than zero.
func AlignedSeries(entries []domain.ScoreEntry, today time.Time, n int) []domain.DayValue {
	avgs := DailyAverage(entries)

	series := make([]domain.DayValue, n)
	for i, d := range LastNDates(today, n) {
		v, ok := avgs[d]
		series[i] = domain.DayValue{Day: d, Avg: v, HasData: ok}
	}
	return series
}

// Summary reports count, mean, min and max over the present values of a
// series. count is zero when every day is absent; the other values are
// meaningless in that case.
func Summary(series []domain.DayValue) (count int, mean, min, max float64) {
	var sum float64
	for _, dv := range series {
		if !dv.HasData {
			continue
		}
		if count == 0 || dv.Avg < min {
			min = dv.Avg
		}
		if count == 0 || dv.Avg > max {
			max = dv.Avg
		}
		sum += dv.Avg
		count++
	}
	if count > 0 {
		mean = sum / float64(count)
	}
	return count, mean, min, max
}
