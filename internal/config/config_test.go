package config

import (
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MOODLOG_DATA_DIR", "")
	t.Setenv("MOODLOG_LOG_FILE", "")
	t.Setenv("MOODLOG_MESSAGES", "")
	t.Setenv("MOODLOG_RECENT_WINDOW", "")

	cfg := Load()
	if cfg.DataDir != "data" {
		t.Errorf("DataDir: got %q", cfg.DataDir)
	}
	if cfg.LogPath != filepath.Join("data", "mood_log.csv") {
		t.Errorf("LogPath: got %q", cfg.LogPath)
	}
	if len(cfg.MessagePaths) != 2 || cfg.MessagePaths[0] != "messages.json" {
		t.Errorf("MessagePaths: got %v", cfg.MessagePaths)
	}
	if cfg.RecentWindow != 30 {
		t.Errorf("RecentWindow: got %d", cfg.RecentWindow)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MOODLOG_DATA_DIR", "/tmp/moods")
	t.Setenv("MOODLOG_LOG_FILE", "")
	t.Setenv("MOODLOG_MESSAGES", "/etc/moodlog/bank.json")
	t.Setenv("MOODLOG_RECENT_WINDOW", "14")

	cfg := Load()
	if cfg.DataDir != "/tmp/moods" {
		t.Errorf("DataDir: got %q", cfg.DataDir)
	}
	if cfg.LogPath != filepath.Join("/tmp/moods", "mood_log.csv") {
		t.Errorf("LogPath did not follow the data dir: got %q", cfg.LogPath)
	}
	if len(cfg.MessagePaths) != 1 || cfg.MessagePaths[0] != "/etc/moodlog/bank.json" {
		t.Errorf("MessagePaths: got %v", cfg.MessagePaths)
	}
	if cfg.RecentWindow != 14 {
		t.Errorf("RecentWindow: got %d", cfg.RecentWindow)
	}
}

func TestLoadRejectsBadWindow(t *testing.T) {
	t.Setenv("MOODLOG_RECENT_WINDOW", "zero")

	if cfg := Load(); cfg.RecentWindow != 30 {
		t.Errorf("expected the default window, got %d", cfg.RecentWindow)
	}
}
