package strategy

import (
	"fmt"

	"github.com/derekprior/fixtures/internal/team"
)

// Match represents one leg of a fixture between two teams.
type Match struct {
	Home  team.Team
	Away  team.Team
	Derby bool   // both teams come from the same town
	Leg   int    // 1 or 2
	Label string // unique identifier like "Match 1"
}

// Stadium is where the match is played: the home team's ground.
func (m Match) Stadium() string {
	return m.Home.Stadium
}

// Pair returns the two team names in a stable order so that both legs of
// a fixture map to the same key.
func (m Match) Pair() (string, string) {
	a, b := m.Home.Name, m.Away.Name
	if a > b {
		a, b = b, a
	}
	return a, b
}

// Strategy generates the list of matches for a season.
type Strategy interface {
	GenerateMatches(teams []team.Team) []Match
}

// DefaultName is used when no strategy is configured.
const DefaultName = "double_round_robin"

// Get returns a Strategy by name.
func Get(name string) (Strategy, error) {
	switch name {
	case DefaultName, "":
		return &DoubleRoundRobin{}, nil
	default:
		return nil, fmt.Errorf("unknown strategy: %q", name)
	}
}

// DoubleRoundRobin pairs every team with every other team twice, once at
// home and once away.
type DoubleRoundRobin struct{}

// GenerateMatches walks every index pair i < j in input order and emits
// leg 1 (i at home) followed by leg 2 (j at home).
func (s *DoubleRoundRobin) GenerateMatches(teams []team.Team) []Match {
	if len(teams) < 2 {
		return nil
	}

	matches := make([]Match, 0, len(teams)*(len(teams)-1))
	matchNum := 1
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			derby := teams[i].Town == teams[j].Town
			matches = append(matches,
				Match{
					Home:  teams[i],
					Away:  teams[j],
					Derby: derby,
					Leg:   1,
					Label: fmt.Sprintf("Match %d", matchNum),
				},
				Match{
					Home:  teams[j],
					Away:  teams[i],
					Derby: derby,
					Leg:   2,
					Label: fmt.Sprintf("Match %d", matchNum+1),
				},
			)
			matchNum += 2
		}
	}
	return matches
}
