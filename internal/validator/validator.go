package validator

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/derekprior/fixtures/internal/excel"
	"github.com/derekprior/fixtures/internal/schedule"
	"github.com/derekprior/fixtures/internal/team"
)

// Violation represents a problem found in a fixtures file.
type Violation struct {
	Row     int
	Type    string // "error" or "warning"
	Message string
}

// Validate reads a fixtures file (text or .xlsx workbook) and checks it
// against the team list.
func Validate(teams []team.Team, path string) ([]Violation, error) {
	var (
		matches []parsedMatch
		bad     []Violation
		err     error
	)
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		matches, bad, err = readWorkbook(path)
	} else {
		matches, bad, err = readText(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading fixtures: %w", err)
	}

	violations := bad
	violations = append(violations, checkUnknownTeams(teams, matches)...)
	violations = append(violations, checkPairs(teams, matches)...)
	violations = append(violations, checkLegOrder(matches)...)
	violations = append(violations, checkDoubledWeekends(matches)...)
	violations = append(violations, checkDerbyFlags(teams, matches)...)

	return violations, nil
}

type parsedMatch struct {
	Row     int
	Weekend int
	Home    string
	Away    string
	Leg     int
	Derby   *bool // only known for workbooks
}

func readText(path string) ([]parsedMatch, []Violation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	var (
		matches    []parsedMatch
		violations []Violation
	)
	scanner := bufio.NewScanner(f)
	row := 0
	for scanner.Scan() {
		row++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		home, away, leg, ok := parseLine(line)
		if !ok {
			violations = append(violations, Violation{
				Row:     row,
				Type:    "error",
				Message: fmt.Sprintf("cannot parse %q", line),
			})
			continue
		}
		matches = append(matches, parsedMatch{
			Row:     row,
			Weekend: len(matches)/schedule.MatchesPerWeekend + 1,
			Home:    home,
			Away:    away,
			Leg:     leg,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	return matches, violations, nil
}

// parseLine parses "<home> vs <away>, Leg <n>".
func parseLine(line string) (home, away string, leg int, ok bool) {
	i := strings.LastIndex(line, ", Leg ")
	if i < 0 {
		return "", "", 0, false
	}
	leg, err := strconv.Atoi(strings.TrimSpace(line[i+len(", Leg "):]))
	if err != nil || (leg != 1 && leg != 2) {
		return "", "", 0, false
	}
	home, away, found := strings.Cut(line[:i], " vs ")
	if !found || home == "" || away == "" {
		return "", "", 0, false
	}
	return home, away, leg, true
}

func readWorkbook(path string) ([]parsedMatch, []Violation, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(excel.FixturesSheet)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", excel.FixturesSheet, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%s is empty", excel.FixturesSheet)
	}

	var (
		matches    []parsedMatch
		violations []Violation
	)
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) == 0 {
			continue
		}
		rowNum := i + 1
		if len(row) < 4 {
			violations = append(violations, Violation{
				Row:     rowNum,
				Type:    "error",
				Message: fmt.Sprintf("row has %d columns, want at least 4", len(row)),
			})
			continue
		}
		weekend, werr := strconv.Atoi(row[0])
		leg, lerr := strconv.Atoi(row[3])
		if werr != nil || lerr != nil || (leg != 1 && leg != 2) || row[1] == "" || row[2] == "" {
			violations = append(violations, Violation{
				Row:     rowNum,
				Type:    "error",
				Message: fmt.Sprintf("cannot parse row %v", row),
			})
			continue
		}
		derby := len(row) > 4 && strings.EqualFold(row[4], "Yes")
		matches = append(matches, parsedMatch{
			Row:     rowNum,
			Weekend: weekend,
			Home:    row[1],
			Away:    row[2],
			Leg:     leg,
			Derby:   &derby,
		})
	}
	return matches, violations, nil
}

func checkUnknownTeams(teams []team.Team, matches []parsedMatch) []Violation {
	known := make(map[string]bool, len(teams))
	for _, t := range teams {
		known[t.Name] = true
	}

	var violations []Violation
	for _, m := range matches {
		for _, name := range []string{m.Home, m.Away} {
			if !known[name] {
				violations = append(violations, Violation{
					Row:     m.Row,
					Type:    "error",
					Message: fmt.Sprintf("unknown team %q", name),
				})
			}
		}
		if m.Home == m.Away {
			violations = append(violations, Violation{
				Row:     m.Row,
				Type:    "error",
				Message: fmt.Sprintf("%s is listed against itself", m.Home),
			})
		}
	}
	return violations
}

type pairKey struct {
	a, b string
}

func normalizePair(a, b string) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}
}

func checkPairs(teams []team.Team, matches []parsedMatch) []Violation {
	byPair := make(map[pairKey][]parsedMatch)
	for _, m := range matches {
		pk := normalizePair(m.Home, m.Away)
		byPair[pk] = append(byPair[pk], m)
	}

	var violations []Violation
	// Walk the roster so violations come out in a stable order.
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			a, b := teams[i].Name, teams[j].Name
			legs := byPair[normalizePair(a, b)]

			count := map[int][]parsedMatch{}
			hosts := map[string]int{}
			for _, m := range legs {
				count[m.Leg] = append(count[m.Leg], m)
				hosts[m.Home]++
			}

			for _, leg := range []int{1, 2} {
				switch n := len(count[leg]); {
				case n == 0:
					violations = append(violations, Violation{
						Type:    "error",
						Message: fmt.Sprintf("%s vs %s: leg %d missing", a, b, leg),
					})
				case n > 1:
					violations = append(violations, Violation{
						Row:     count[leg][1].Row,
						Type:    "error",
						Message: fmt.Sprintf("%s vs %s: leg %d appears %d times", a, b, leg, n),
					})
				}
			}

			if len(legs) == 2 && len(hosts) == 1 {
				violations = append(violations, Violation{
					Row:     legs[1].Row,
					Type:    "error",
					Message: fmt.Sprintf("%s vs %s: %s hosts both legs", a, b, legs[0].Home),
				})
			}
		}
	}
	return violations
}

func checkLegOrder(matches []parsedMatch) []Violation {
	var violations []Violation
	firstLeg2 := 0
	for _, m := range matches {
		if m.Leg == 2 && firstLeg2 == 0 {
			firstLeg2 = m.Row
		}
		if m.Leg == 1 && firstLeg2 != 0 {
			violations = append(violations, Violation{
				Row:  m.Row,
				Type: "error",
				Message: fmt.Sprintf("%s vs %s (Leg 1) comes after the second legs started at row %d",
					m.Home, m.Away, firstLeg2),
			})
		}
	}
	return violations
}

func checkDoubledWeekends(matches []parsedMatch) []Violation {
	type teamWeekend struct {
		team    string
		weekend int
	}
	seen := make(map[teamWeekend]bool)

	var violations []Violation
	for _, m := range matches {
		for _, name := range []string{m.Home, m.Away} {
			tw := teamWeekend{name, m.Weekend}
			if seen[tw] {
				violations = append(violations, Violation{
					Row:     m.Row,
					Type:    "warning",
					Message: fmt.Sprintf("%s plays both matches of weekend %d", name, m.Weekend),
				})
			}
			seen[tw] = true
		}
	}
	return violations
}

func checkDerbyFlags(teams []team.Team, matches []parsedMatch) []Violation {
	towns := make(map[string]string, len(teams))
	for _, t := range teams {
		towns[t.Name] = t.Town
	}

	var violations []Violation
	for _, m := range matches {
		if m.Derby == nil {
			continue
		}
		homeTown, ok1 := towns[m.Home]
		awayTown, ok2 := towns[m.Away]
		if !ok1 || !ok2 {
			continue
		}
		if want := homeTown == awayTown; *m.Derby != want {
			violations = append(violations, Violation{
				Row:     m.Row,
				Type:    "warning",
				Message: fmt.Sprintf("%s vs %s derby flag is %v, towns say %v", m.Home, m.Away, *m.Derby, want),
			})
		}
	}
	return violations
}
