package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/derekprior/fixtures/internal/schedule"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801"))
)

// Summary prints match counts, the per-team metrics table and any
// doubled-weekend warnings.
func Summary(w io.Writer, result *schedule.Result) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Fixture Summary"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %d teams, %d matches, %d weekends\n",
		len(result.Teams), len(result.Matches), len(result.Weekends))
	if result.Dropped != nil {
		fmt.Fprintf(&b, "  %s\n", warningStyle.Render(fmt.Sprintf(
			"⚠ %s vs %s (Leg %d) has no partner and was left out",
			result.Dropped.Home.Name, result.Dropped.Away.Name, result.Dropped.Leg)))
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Per Team Metrics:"))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("  %-15s %7s %4s %4s %7s %7s", "Team", "Matches", "Home", "Away", "Derbies", "Doubled")))
	b.WriteString("\n")
	for _, t := range result.Teams {
		m := result.TeamMetrics[t.Name]
		if m == nil {
			continue
		}
		fmt.Fprintf(&b, "  %-15s %7d %4d %4d %7d %7d\n", t.Name, m.Matches, m.Home, m.Away, m.Derbies, m.Doubled)
	}

	b.WriteString("\n")
	if len(result.Warnings) > 0 {
		b.WriteString(warningStyle.Render(fmt.Sprintf("Doubled weekends (%d):", len(result.Warnings))))
		b.WriteString("\n")
		for _, warning := range result.Warnings {
			fmt.Fprintf(&b, "  ⚠ %s\n", warning)
		}
	} else {
		b.WriteString(okStyle.Render("✓ No team plays twice in a weekend"))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
