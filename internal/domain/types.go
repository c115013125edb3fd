package domain

// Tier buckets a score into a message category
type Tier string

const (
	TierLow  Tier = "low"
	TierMid  Tier = "mid"
	TierHigh Tier = "high"
)

// ScoreEntry is one logged (day, score) pair as read back from the log
type ScoreEntry struct {
	Day   string
	Score int
}

// DayValue is one point of an aligned series: a calendar day and its
// daily average, with HasData false marking a gap
type DayValue struct {
	Day     string
	Avg     float64
	HasData bool
}

// DiaryEntry is a logged record carrying a non-empty note. Score stays a
// raw string: diary rows are displayed, never computed on.
type DiaryEntry struct {
	Day   string
	Score string
	Note  string
}
