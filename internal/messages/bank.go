package messages

import (
	"encoding/json"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/pbaille/moodlog/internal/domain"
)

const dayFormat = "2006-01-02"

// Bank holds the message pool for each score tier
type Bank struct {
	Low  []string `json:"low"`
	Mid  []string `json:"mid"`
	High []string `json:"high"`
}

// Built-in pools, used per tier when the bank file is missing one and
// wholesale when the file is absent or unreadable.
var defaults = Bank{
	Low: []string{
		"Hard days pass. You showed up, and that counts.",
		"Take care of yourself first. One step at a time.",
	},
	Mid: []string{
		"Steady pace, steady progress. That's a win.",
		"Decent form today. Give yourself some credit.",
	},
	High: []string{
		"Great shape. Keep shining!",
		"Ride this momentum and make more good things happen.",
	},
}

// Load reads the message bank from the first of paths that exists. Each
// tier falls back to the built-in pool independently; an absent file or a
// decode failure falls back wholesale. The returned notice is non-empty
// when defaults were substituted, for the caller to print.
func Load(paths ...string) (Bank, string) {
	var path string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			path = p
			break
		}
	}
	if path == "" {
		return defaults, "message bank not found, using built-in messages"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return defaults, "message bank unreadable, using built-in messages"
	}
	var b Bank
	if err := json.Unmarshal(data, &b); err != nil {
		return defaults, "message bank unreadable, using built-in messages"
	}

	if len(b.Low) == 0 {
		b.Low = defaults.Low
	}
	if len(b.Mid) == 0 {
		b.Mid = defaults.Mid
	}
	if len(b.High) == 0 {
		b.High = defaults.High
	}
	return b, ""
}

// TierFor maps a 1-10 score onto a message tier
func TierFor(score int) domain.Tier {
	switch {
	case score <= 4:
		return domain.TierLow
	case score <= 7:
		return domain.TierMid
	default:
		return domain.TierHigh
	}
}

// pool returns the tier's messages, never empty: a tier emptied after load
// still produces one built-in line.
func (b Bank) pool(tier domain.Tier) []string {
	var p []string
	switch tier {
	case domain.TierLow:
		p = b.Low
	case domain.TierMid:
		p = b.Mid
	default:
		p = b.High
	}
	if len(p) > 0 {
		return p
	}
	switch tier {
	case domain.TierLow:
		return defaults.Low[:1]
	case domain.TierMid:
		return defaults.Mid[:1]
	default:
		return defaults.High[:1]
	}
}

// Choose picks a message for the score's tier, avoiding exclude and every
// entry of excludes when possible. When nothing survives the filter the
// whole pool is drawn from again; selection never fails.
func Choose(rng *rand.Rand, score int, bank Bank, exclude string, excludes map[string]bool) string {
	pool := bank.pool(TierFor(score))

	var candidates []string
	for _, m := range pool {
		if m == exclude || excludes[m] {
			continue
		}
		candidates = append(candidates, m)
	}
	if len(candidates) == 0 {
		candidates = pool
	}
	return candidates[rng.Intn(len(candidates))]
}

// RecentlyUsed collects the message texts of rows dated within the trailing
// window of days ending at today, inclusive. Rows whose date field does not
// parse as an ISO date are ignored. Exclusion crosses tiers on purpose.
func RecentlyUsed(rows [][]string, today time.Time, window int) map[string]bool {
	used := make(map[string]bool)

	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	cutoff := day.AddDate(0, 0, -(window - 1))

	for _, r := range rows {
		if len(r) < 3 {
			continue
		}
		d, err := time.ParseInLocation(dayFormat, strings.TrimSpace(r[0]), today.Location())
		if err != nil {
			continue
		}
		if d.Before(cutoff) || d.After(day) {
			continue
		}
		used[r[2]] = true
	}
	return used
}
