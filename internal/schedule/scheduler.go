package schedule

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/derekprior/fixtures/internal/strategy"
	"github.com/derekprior/fixtures/internal/team"
)

// TeamMetrics holds per-team fixture statistics.
type TeamMetrics struct {
	Matches int
	Home    int
	Away    int
	Derbies int
	// Doubled counts weekends in which the team plays both matches.
	Doubled int
}

// Result is the output of the scheduling process.
type Result struct {
	ID          string
	Teams       []team.Team
	Matches     []strategy.Match // final order, after shuffle and sort
	Weekends    []Weekend
	Dropped     *strategy.Match // unpaired trailing match, if any
	Warnings    []string
	TeamMetrics map[string]*TeamMetrics
}

// Schedule generates the matches for teams, shuffles them with rng, puts
// all first legs ahead of the second legs and packs them into weekends.
// Fewer than two teams is not an error; the result is simply empty.
func Schedule(teams []team.Team, strat strategy.Strategy, rng *rand.Rand) (*Result, error) {
	if err := team.CheckUnique(teams); err != nil {
		return nil, err
	}
	if strat == nil {
		return nil, fmt.Errorf("no strategy given")
	}

	matches := strat.GenerateMatches(teams)
	Shuffle(matches, rng)
	SortByLeg(matches)
	weekends, dropped := Pack(matches)

	s := &scheduler{teams: teams, weekends: weekends}
	warnings, metrics := s.buildMetrics()

	return &Result{
		ID:          uuid.NewString(),
		Teams:       teams,
		Matches:     matches,
		Weekends:    weekends,
		Dropped:     dropped,
		Warnings:    warnings,
		TeamMetrics: metrics,
	}, nil
}

type scheduler struct {
	teams    []team.Team
	weekends []Weekend
}

func (s *scheduler) buildMetrics() ([]string, map[string]*TeamMetrics) {
	var warnings []string
	metrics := make(map[string]*TeamMetrics, len(s.teams))
	for _, t := range s.teams {
		metrics[t.Name] = &TeamMetrics{}
	}

	for _, w := range s.weekends {
		appearances := make(map[string]int)
		for _, m := range w.Matches {
			home, away := metrics[m.Home.Name], metrics[m.Away.Name]
			home.Matches++
			home.Home++
			away.Matches++
			away.Away++
			if m.Derby {
				home.Derbies++
				away.Derbies++
			}
			appearances[m.Home.Name]++
			appearances[m.Away.Name]++
		}
		// Iterate the roster rather than the map to keep warnings ordered.
		for _, t := range s.teams {
			if appearances[t.Name] > 1 {
				metrics[t.Name].Doubled++
				warnings = append(warnings, fmt.Sprintf("%s plays both matches of weekend %d", t.Name, w.Number))
			}
		}
	}

	return warnings, metrics
}
