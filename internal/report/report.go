package report

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/derekprior/fixtures/internal/schedule"
	"github.com/derekprior/fixtures/internal/strategy"
	"github.com/derekprior/fixtures/internal/team"
)

// Separator is printed after each weekend by Display.
const Separator = "----------"

// Display prints each weekend's matches followed by a separator line.
func Display(w io.Writer, weekends []schedule.Weekend) error {
	bw := bufio.NewWriter(w)
	for _, weekend := range weekends {
		for _, m := range weekend.Matches {
			fmt.Fprintf(bw, "%s vs %s (Leg %d)\n", m.Home.Name, m.Away.Name, m.Leg)
		}
		fmt.Fprintln(bw, Separator)
	}
	return bw.Flush()
}

// DisplayMatches prints matches in list order without weekend grouping.
func DisplayMatches(w io.Writer, matches []strategy.Match) error {
	bw := bufio.NewWriter(w)
	for _, m := range matches {
		fmt.Fprintf(bw, "%s vs %s (Leg %d)\n", m.Home.Name, m.Away.Name, m.Leg)
	}
	return bw.Flush()
}

// PrintTeams prints one line per team.
func PrintTeams(w io.Writer, teams []team.Team) error {
	bw := bufio.NewWriter(w)
	for _, t := range teams {
		fmt.Fprintf(bw, "%s from %s at %s\n", t.Name, t.Town, t.Stadium)
	}
	return bw.Flush()
}

// Write emits one "<home> vs <away>, Leg <n>" line per match.
func Write(w io.Writer, weekends []schedule.Weekend) error {
	bw := bufio.NewWriter(w)
	for _, weekend := range weekends {
		for _, m := range weekend.Matches {
			fmt.Fprintf(bw, "%s vs %s, Leg %d\n", m.Home.Name, m.Away.Name, m.Leg)
		}
	}
	return bw.Flush()
}

// WriteFile writes the fixtures to path, replacing any existing file.
func WriteFile(path string, weekends []schedule.Weekend) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating fixtures file: %w", err)
	}
	if err := Write(f, weekends); err != nil {
		f.Close()
		return fmt.Errorf("writing fixtures: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing fixtures file: %w", err)
	}
	return nil
}
