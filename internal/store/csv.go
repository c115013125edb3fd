package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pbaille/moodlog/internal/domain"
)

// header is the current (v2) column layout of the log file.
var header = []string{"date", "score", "message", "note"}

// ErrUnreadable marks a log file the migration could not parse
var ErrUnreadable = errors.New("log file unreadable")

// Store reads and appends mood records in a comma-delimited log file.
// The file is opened and closed inside every call; no handle is held
// between operations.
type Store struct {
	path string
}

// New creates a Store for the log file at path
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the location of the log file
func (s *Store) Path() string {
	return s.path
}

// EnsureStorage guarantees the log file exists with the current header,
// creating parent directories and a header-only file as needed. Existing
// files are run through schema migration. Safe to call on every start.
func (s *Store) EnsureStorage() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}

	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s.writeFile(nil)
		}
		return fmt.Errorf("stat log file: %w", err)
	}

	if err := s.UpgradeSchema(); err != nil {
		if errors.Is(err, ErrUnreadable) {
			// The readers skip what they cannot parse; a session must
			// never die on a file they still handle.
			fmt.Fprintf(os.Stderr, "schema migration skipped: %v\n", err)
			return nil
		}
		return err
	}
	return nil
}

// UpgradeSchema rewrites a legacy three-column log file under the current
// four-column header, appending an empty note to every three-field row and
// passing any other row through unchanged. A file already carrying four or
// more header fields is left alone, as is the file on any read failure.
// Running it twice changes nothing.
func (s *Store) UpgradeSchema() error {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open log file: %w", err)
	}

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	f.Close()
	if err != nil {
		// Never rewrite on a partial read; the data on disk wins.
		return fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	if len(rows) == 0 {
		// Zero-byte file: normalize to a header-only v2 file.
		return s.writeFile(nil)
	}
	if len(rows[0]) != 3 {
		return nil
	}
	return s.writeFile(rows[1:])
}

// Append writes exactly one record row to the end of the log file
func (s *Store) Append(day string, score int, message, note string) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{day, strconv.Itoa(score), message, note}); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush record: %w", err)
	}
	return nil
}

// ReadAll returns every row carrying a day and an integer score. Rows with
// fewer than two fields or an unparseable score are skipped; hand-edited
// junk must never break reporting. A missing file yields an empty result.
func (s *Store) ReadAll() ([]domain.ScoreEntry, error) {
	rows, err := s.ReadRows()
	if err != nil {
		return nil, err
	}

	var out []domain.ScoreEntry
	for _, r := range rows {
		if len(r) < 2 {
			continue
		}
		score, err := strconv.Atoi(strings.TrimSpace(r[1]))
		if err != nil {
			continue
		}
		out = append(out, domain.ScoreEntry{Day: strings.TrimSpace(r[0]), Score: score})
	}
	return out, nil
}

// ReadForDay returns the raw rows recorded for the given day. Comparison is
// exact string equality on the first field.
func (s *Store) ReadForDay(day string) ([][]string, error) {
	rows, err := s.ReadRows()
	if err != nil {
		return nil, err
	}

	var out [][]string
	for _, r := range rows {
		if len(r) >= 1 && r[0] == day {
			out = append(out, r)
		}
	}
	return out, nil
}

// ReadDiaryRows returns, in file order, the entries whose note field is
// non-blank after trimming.
func (s *Store) ReadDiaryRows() ([]domain.DiaryEntry, error) {
	rows, err := s.ReadRows()
	if err != nil {
		return nil, err
	}

	var out []domain.DiaryEntry
	for _, r := range rows {
		if len(r) < 4 || strings.TrimSpace(r[3]) == "" {
			continue
		}
		out = append(out, domain.DiaryEntry{Day: r[0], Score: r[1], Note: r[3]})
	}
	return out, nil
}

// ReadRows returns every data row in the file, header excluded. Rows the
// CSV parser rejects are skipped. A missing file yields no rows, no error.
func (s *Store) ReadRows() ([][]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var rows [][]string
	first := true
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		wasFirst := first
		first = false
		if err != nil {
			// Corrupt row; keep reading the rest. A corrupt first line
			// still counts as the header.
			continue
		}
		if wasFirst {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// writeFile replaces the log file with the v2 header followed by rows.
// Three-field rows gain an empty note on the way through.
func (s *Store) writeFile(rows [][]string) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create log file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if len(row) == 3 {
			row = append(row[:3:3], "")
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush log file: %w", err)
	}
	return f.Close()
}
