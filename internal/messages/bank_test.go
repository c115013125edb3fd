package messages

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pbaille/moodlog/internal/domain"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestTierFor(t *testing.T) {
	cases := []struct {
		score int
		want  domain.Tier
	}{
		{1, domain.TierLow},
		{4, domain.TierLow},
		{5, domain.TierMid},
		{7, domain.TierMid},
		{8, domain.TierHigh},
		{10, domain.TierHigh},
	}
	for _, c := range cases {
		if got := TierFor(c.score); got != c.want {
			t.Errorf("TierFor(%d): got %s, want %s", c.score, got, c.want)
		}
	}
}

func TestChooseAvoidsExcluded(t *testing.T) {
	bank := Bank{Low: []string{"A", "B"}}

	// With "A" excluded the only viable candidate is "B".
	for i := 0; i < 20; i++ {
		if got := Choose(testRNG(), 3, bank, "A", nil); got != "B" {
			t.Fatalf("expected B, got %q", got)
		}
	}
}

func TestChooseAvoidsRecentSet(t *testing.T) {
	bank := Bank{Mid: []string{"A", "B", "C"}}
	used := map[string]bool{"A": true, "C": true}

	for i := 0; i < 20; i++ {
		rng := rand.New(rand.NewSource(int64(i)))
		if got := Choose(rng, 6, bank, "", used); got != "B" {
			t.Fatalf("expected B, got %q", got)
		}
	}
}

func TestChooseExhaustionFallsBackToPool(t *testing.T) {
	bank := Bank{High: []string{"A", "B"}}
	used := map[string]bool{"A": true, "B": true}

	for i := 0; i < 20; i++ {
		rng := rand.New(rand.NewSource(int64(i)))
		got := Choose(rng, 9, bank, "", used)
		if got != "A" && got != "B" {
			t.Fatalf("expected a pool message, got %q", got)
		}
	}
}

func TestChooseSwapWithSingleMessagePool(t *testing.T) {
	bank := Bank{Low: []string{"A"}}

	first := Choose(testRNG(), 2, bank, "", nil)
	if first != "A" {
		t.Fatalf("expected A, got %q", first)
	}
	// Swapping with "A" excluded has nowhere else to go.
	second := Choose(testRNG(), 2, bank, first, nil)
	if second != "A" {
		t.Errorf("expected the same message back, got %q", second)
	}
}

func TestChooseEmptyTierUsesBuiltIn(t *testing.T) {
	got := Choose(testRNG(), 3, Bank{}, "", nil)
	if got != defaults.Low[0] {
		t.Errorf("expected built-in low message, got %q", got)
	}
}

func TestRecentlyUsed(t *testing.T) {
	today := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	rows := [][]string{
		{"2024-03-10", "5", "today msg", ""},
		{"2024-03-09", "6", "yesterday msg", ""},
		{"2024-02-10", "4", "cutoff msg", ""},   // exactly window days back
		{"2024-02-09", "4", "too old msg", ""},  // one day before the window
		{"2024-03-11", "7", "future msg", ""},   // backdated into the future
		{"not-a-date", "5", "bad date msg", ""}, // skipped
		{"2024-03-08", "5"},                     // too few fields
	}

	used := RecentlyUsed(rows, today, 30)

	for _, want := range []string{"today msg", "yesterday msg", "cutoff msg"} {
		if !used[want] {
			t.Errorf("expected %q in recent set", want)
		}
	}
	for _, skip := range []string{"too old msg", "future msg", "bad date msg"} {
		if used[skip] {
			t.Errorf("did not expect %q in recent set", skip)
		}
	}
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	bank, notice := Load(filepath.Join(t.TempDir(), "nope.json"))
	if notice == "" {
		t.Error("expected a fallback notice")
	}
	if len(bank.Low) != 2 || len(bank.Mid) != 2 || len(bank.High) != 2 {
		t.Errorf("expected built-in defaults, got %+v", bank)
	}
}

func TestLoadBadJSONFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	bank, notice := Load(path)
	if notice == "" {
		t.Error("expected a fallback notice")
	}
	if len(bank.Low) != 2 {
		t.Errorf("expected built-in defaults, got %+v", bank)
	}
}

func TestLoadDefaultsMissingTiersIndependently(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.json")
	if err := os.WriteFile(path, []byte(`{"low": ["only low"]}`), 0644); err != nil {
		t.Fatal(err)
	}

	bank, notice := Load(path)
	if notice != "" {
		t.Errorf("unexpected notice: %q", notice)
	}
	if len(bank.Low) != 1 || bank.Low[0] != "only low" {
		t.Errorf("low tier not taken from file: %+v", bank.Low)
	}
	if len(bank.Mid) != 2 || len(bank.High) != 2 {
		t.Errorf("missing tiers not defaulted: %+v", bank)
	}
}

func TestLoadProbesSecondPath(t *testing.T) {
	dir := t.TempDir()
	second := filepath.Join(dir, "message.json")
	if err := os.WriteFile(second, []byte(`{"mid": ["from second"]}`), 0644); err != nil {
		t.Fatal(err)
	}

	bank, notice := Load(filepath.Join(dir, "messages.json"), second)
	if notice != "" {
		t.Errorf("unexpected notice: %q", notice)
	}
	if len(bank.Mid) != 1 || bank.Mid[0] != "from second" {
		t.Errorf("second path not used: %+v", bank.Mid)
	}
}
