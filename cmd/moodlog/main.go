package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pbaille/moodlog/internal/config"
	"github.com/pbaille/moodlog/internal/domain"
	"github.com/pbaille/moodlog/internal/messages"
	"github.com/pbaille/moodlog/internal/render"
	"github.com/pbaille/moodlog/internal/stats"
	"github.com/pbaille/moodlog/internal/store"
)

const dayFormat = "2006-01-02"

var cfg config.Config

func main() {
	cfg = config.Load()

	rootCmd := &cobra.Command{
		Use:   "moodlog",
		Short: "Daily mood logging with trend reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive()
		},
	}

	rootCmd.AddCommand(trendCmd())
	rootCmd.AddCommand(barCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(diaryCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func getStore() (*store.Store, error) {
	s := store.New(cfg.LogPath)
	if err := s.EnsureStorage(); err != nil {
		return nil, err
	}
	return s, nil
}

// alignedSeries reads the whole log and aligns it onto the n trailing days
func alignedSeries(n int) ([]domain.DayValue, error) {
	s, err := getStore()
	if err != nil {
		return nil, err
	}
	entries, err := s.ReadAll()
	if err != nil {
		return nil, err
	}
	return stats.AlignedSeries(entries, time.Now(), n), nil
}

func trendCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Print an ascii trend of recent daily averages",
		RunE: func(cmd *cobra.Command, args []string) error {
			n := clamp(days, 1, 365)
			series, err := alignedSeries(n)
			if err != nil {
				return err
			}
			render.Trend(os.Stdout, series, n)
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "n", 30, "number of trailing days")
	return cmd
}

func barCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "bar",
		Short: "Print an ascii bar chart of recent daily averages",
		RunE: func(cmd *cobra.Command, args []string) error {
			n := clamp(days, 1, 365)
			series, err := alignedSeries(n)
			if err != nil {
				return err
			}
			render.BarChart(os.Stdout, series, n)
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "n", 30, "number of trailing days")
	return cmd
}

func exportCmd() *cobra.Command {
	var days int
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a trend chart to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			n := clamp(days, 1, 365)
			series, err := alignedSeries(n)
			if err != nil {
				return err
			}

			var path string
			switch format {
			case "png":
				path, err = render.ExportPNG(series, n, cfg.DataDir, out)
			case "html":
				path, err = render.ExportHTML(series, n, cfg.DataDir, out)
			default:
				return fmt.Errorf("unknown format: %s (want png or html)", format)
			}
			if err != nil {
				fmt.Printf("chart not produced: %v\n", err)
				return nil
			}
			fmt.Printf("chart written: %s\n", path)
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "n", 30, "number of trailing days")
	cmd.Flags().StringVarP(&format, "format", "f", "png", "output format: png or html")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (defaults to the data dir)")
	return cmd
}

func diaryCmd() *cobra.Command {
	var last int

	cmd := &cobra.Command{
		Use:   "diary",
		Short: "List recent entries that carry a note",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			entries, err := s.ReadDiaryRows()
			if err != nil {
				return err
			}
			render.Diary(os.Stdout, entries, clamp(last, 1, 100))
			return nil
		},
	}

	cmd.Flags().IntVarP(&last, "last", "k", 10, "number of diary entries to show")
	return cmd
}

// runInteractive is the default session: prompt for a score or a command,
// log the score with a message and an optional note, echo a weekly summary.
func runInteractive() error {
	s, err := getStore()
	if err != nil {
		return err
	}

	bank, notice := messages.Load(cfg.MessagePaths...)
	if notice != "" {
		fmt.Println(notice)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	in := bufio.NewScanner(os.Stdin)

	fmt.Println("=== How are you doing from 1-10 ===")

	for {
		today := time.Now().Format(dayFormat)

		existing, err := s.ReadForDay(today)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			fmt.Printf("Note: today (%s) already has %d entries.\n", today, len(existing))
		}

		raw, ok := prompt(in, "How is it going? Enter 1-10 to log, V to visualize, D for diary, N to quit: ")
		if !ok {
			return nil // stdin closed
		}

		switch strings.ToLower(raw) {
		case "n", "no":
			fmt.Println("Bye. Have a good one!")
			return nil
		case "v":
			if err := visualizeMenu(in, s); err != nil {
				return err
			}
			continue
		case "d":
			if err := diaryPrompt(in, s); err != nil {
				return err
			}
			continue
		}

		score, err := strconv.Atoi(raw)
		if err != nil {
			fmt.Println("Unrecognized input. Enter 1-10, V, D or N.")
			continue
		}
		if score < 1 || score > 10 {
			fmt.Println("Enter an integer between 1 and 10.")
			continue
		}

		if err := logScore(in, s, bank, rng, today, score); err != nil {
			return err
		}
	}
}

// logScore runs the score path: pick a message avoiding recent repeats,
// offer one swap, take an optional note, append and echo the last week.
func logScore(in *bufio.Scanner, s *store.Store, bank messages.Bank, rng *rand.Rand, today string, score int) error {
	rows, err := s.ReadRows()
	if err != nil {
		return err
	}
	used := messages.RecentlyUsed(rows, time.Now(), cfg.RecentWindow)

	msg := messages.Choose(rng, score, bank, "", used)
	fmt.Println("\n-- Today's message --")
	fmt.Println(msg)

	swap, _ := prompt(in, "\nSwap for another? (Y to swap / anything else to keep): ")
	if l := strings.ToLower(swap); l == "y" || l == "yes" {
		alt := messages.Choose(rng, score, bank, msg, used)
		if alt != msg {
			msg = alt
			fmt.Println("\n-- Today's message (swapped) --")
			fmt.Println(msg)
		} else {
			fmt.Println("\nNo alternative available, keeping this one.")
		}
	}

	note, _ := prompt(in, "\nAnything to note down? (leave empty to skip): ")

	if err := s.Append(today, score, msg, note); err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	fmt.Println("\nLogged.")

	entries, err := s.ReadAll()
	if err != nil {
		return err
	}
	render.SummaryTable(os.Stdout, stats.AlignedSeries(entries, time.Now(), 7), 7)
	return nil
}

func visualizeMenu(in *bufio.Scanner, s *store.Store) error {
	fmt.Println("\nVisualization options:")
	fmt.Println("1) ascii trend (last 30 days)")
	fmt.Println("2) ascii bars (last 30 days)")
	fmt.Println("3) export PNG (last 30 days)")
	fmt.Println("4) export HTML (last 30 days)")
	fmt.Println("5) ascii trend, custom day count")

	choice, ok := prompt(in, "Pick [1-5] (anything else to go back): ")
	if !ok {
		return nil
	}

	entries, err := s.ReadAll()
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		render.Trend(os.Stdout, stats.AlignedSeries(entries, time.Now(), 30), 30)
	case "2":
		render.BarChart(os.Stdout, stats.AlignedSeries(entries, time.Now(), 30), 30)
	case "3":
		path, err := render.ExportPNG(stats.AlignedSeries(entries, time.Now(), 30), 30, cfg.DataDir, "")
		if err != nil {
			fmt.Printf("PNG not produced: %v\n", err)
		} else {
			fmt.Printf("PNG written: %s\n", path)
		}
	case "4":
		path, err := render.ExportHTML(stats.AlignedSeries(entries, time.Now(), 30), 30, cfg.DataDir, "")
		if err != nil {
			fmt.Printf("HTML not produced: %v\n", err)
		} else {
			fmt.Printf("HTML written: %s\n", path)
		}
	case "5":
		raw, ok := prompt(in, "How many days? (default 30): ")
		if !ok {
			return nil
		}
		n := 30
		if v, err := strconv.Atoi(raw); err == nil {
			n = v
		}
		n = clamp(n, 7, 180)
		render.Trend(os.Stdout, stats.AlignedSeries(entries, time.Now(), n), n)
	default:
		fmt.Println("Back to the main menu.")
	}
	return nil
}

func diaryPrompt(in *bufio.Scanner, s *store.Store) error {
	raw, ok := prompt(in, "How many diary entries? (default 10): ")
	if !ok {
		return nil
	}
	k := 10
	if v, err := strconv.Atoi(raw); err == nil {
		k = v
	}

	entries, err := s.ReadDiaryRows()
	if err != nil {
		return err
	}
	render.Diary(os.Stdout, entries, clamp(k, 1, 100))
	return nil
}

func prompt(in *bufio.Scanner, msg string) (string, bool) {
	fmt.Print(msg)
	if !in.Scan() {
		return "", false
	}
	return strings.TrimSpace(in.Text()), true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
