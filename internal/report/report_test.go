package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derekprior/fixtures/internal/schedule"
	"github.com/derekprior/fixtures/internal/strategy"
	"github.com/derekprior/fixtures/internal/team"
)

func testTeams() []team.Team {
	return []team.Team{
		{Name: "A", Town: "Town1", Stadium: "S1"},
		{Name: "B", Town: "Town1", Stadium: "S2"},
		{Name: "C", Town: "Town2", Stadium: "S3"},
	}
}

// orderedWeekends packs the unshuffled matches so the output is predictable.
func orderedWeekends() []schedule.Weekend {
	matches := (&strategy.DoubleRoundRobin{}).GenerateMatches(testTeams())
	weekends, _ := schedule.Pack(matches[:4])
	return weekends
}

func TestDisplay(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Display(&buf, orderedWeekends()))

	want := "A vs B (Leg 1)\n" +
		"B vs A (Leg 2)\n" +
		"----------\n" +
		"A vs C (Leg 1)\n" +
		"C vs A (Leg 2)\n" +
		"----------\n"
	assert.Equal(t, want, buf.String())
}

func TestDisplayEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Display(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestDisplayMatches(t *testing.T) {
	var buf bytes.Buffer
	matches := (&strategy.DoubleRoundRobin{}).GenerateMatches(testTeams())
	require.NoError(t, DisplayMatches(&buf, matches[:2]))
	assert.Equal(t, "A vs B (Leg 1)\nB vs A (Leg 2)\n", buf.String())
}

func TestPrintTeams(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintTeams(&buf, testTeams()[:2]))
	assert.Equal(t, "A from Town1 at S1\nB from Town1 at S2\n", buf.String())
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is longer than the new output\n"), 0644))

	require.NoError(t, WriteFile(path, orderedWeekends()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "A vs B, Leg 1\nB vs A, Leg 2\nA vs C, Leg 1\nC vs A, Leg 2\n", string(data))
}

func TestWriteFileBadPath(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "fixtures.csv"), orderedWeekends())
	assert.Error(t, err)
}

func TestSummary(t *testing.T) {
	matches := (&strategy.DoubleRoundRobin{}).GenerateMatches(testTeams())
	result, err := schedule.Schedule(testTeams(), &strategy.DoubleRoundRobin{}, schedule.NewRand(nil))
	require.NoError(t, err)

	t.Run("counts and metrics", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Summary(&buf, result))
		out := buf.String()
		assert.Contains(t, out, "3 teams, 6 matches, 3 weekends")
		assert.Contains(t, out, "Per Team Metrics:")
		for _, tm := range testTeams() {
			assert.Contains(t, out, tm.Name+" ")
		}
		assert.NotContains(t, out, "has no partner")
	})

	t.Run("dropped match is reported", func(t *testing.T) {
		withDrop := *result
		withDrop.Dropped = &matches[5]
		var buf bytes.Buffer
		require.NoError(t, Summary(&buf, &withDrop))
		assert.Contains(t, buf.String(), "C vs B (Leg 2) has no partner")
	})

	t.Run("doubled column", func(t *testing.T) {
		withDoubled := *result
		withDoubled.TeamMetrics = map[string]*schedule.TeamMetrics{
			"A": {Matches: 4, Home: 2, Away: 2, Derbies: 2, Doubled: 1},
		}
		var buf bytes.Buffer
		require.NoError(t, Summary(&buf, &withDoubled))
		out := buf.String()
		assert.Contains(t, out, "Doubled")
		assert.Contains(t, out, "  A                     4    2    2       2       1\n")
	})

	t.Run("warnings", func(t *testing.T) {
		withWarnings := *result
		withWarnings.Warnings = []string{"A plays both matches of weekend 1"}
		var buf bytes.Buffer
		require.NoError(t, Summary(&buf, &withWarnings))
		out := buf.String()
		assert.Contains(t, out, "Doubled weekends (1):")
		assert.True(t, strings.Contains(out, "A plays both matches of weekend 1"))
	})
}
