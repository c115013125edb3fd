package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultDataDir      = "data"
	defaultLogName      = "mood_log.csv"
	defaultRecentWindow = 30
)

// Config carries the resolved runtime settings
type Config struct {
	DataDir      string   // directory for the log file and chart exports
	LogPath      string   // full path of the CSV log
	MessagePaths []string // candidate message bank locations, first hit wins
	RecentWindow int      // trailing days considered for message repetition
}

// Load reads an optional .env file and resolves settings from the
// environment, falling back to defaults. Nothing is required.
func Load() Config {
	_ = godotenv.Load() // absence of .env is the normal case

	dataDir := getEnv("MOODLOG_DATA_DIR", defaultDataDir)
	logPath := getEnv("MOODLOG_LOG_FILE", filepath.Join(dataDir, defaultLogName))

	// Both spellings of the bank file have been seen in the wild.
	msgPaths := []string{"messages.json", "message.json"}
	if p := os.Getenv("MOODLOG_MESSAGES"); p != "" {
		msgPaths = []string{p}
	}

	return Config{
		DataDir:      dataDir,
		LogPath:      logPath,
		MessagePaths: msgPaths,
		RecentWindow: getEnvAsInt("MOODLOG_RECENT_WINDOW", defaultRecentWindow),
	}
}

func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return defaultValue
}
