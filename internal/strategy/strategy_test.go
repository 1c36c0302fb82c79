package strategy

import (
	"fmt"
	"testing"

	"github.com/derekprior/fixtures/internal/team"
)

func testTeams() []team.Team {
	return []team.Team{
		{Name: "Rovers", Town: "Ashford", Stadium: "Park"},
		{Name: "United", Town: "Ashford", Stadium: "Meadow"},
		{Name: "City", Town: "Brampton", Stadium: "Lane"},
		{Name: "Athletic", Town: "Carlow", Stadium: "Ground"},
		{Name: "Wanderers", Town: "Brampton", Stadium: "Common"},
	}
}

func TestDoubleRoundRobinMatches(t *testing.T) {
	s := &DoubleRoundRobin{}
	teams := testTeams()
	matches := s.GenerateMatches(teams)

	t.Run("total match count", func(t *testing.T) {
		// 5 teams × 4 opponents = 20 directed matches
		if len(matches) != 20 {
			t.Errorf("total matches = %d, want 20", len(matches))
		}
	})

	t.Run("each pair plays one leg 1 and one leg 2", func(t *testing.T) {
		type pair struct{ a, b string }
		legs := make(map[pair][]int)
		for _, m := range matches {
			a, b := m.Pair()
			legs[pair{a, b}] = append(legs[pair{a, b}], m.Leg)
		}
		if len(legs) != 10 {
			t.Errorf("distinct pairs = %d, want 10", len(legs))
		}
		for p, l := range legs {
			if len(l) != 2 || l[0]+l[1] != 3 {
				t.Errorf("%s vs %s legs = %v, want [1 2]", p.a, p.b, l)
			}
		}
	})

	t.Run("home and away swap between legs", func(t *testing.T) {
		home := make(map[string]bool)
		for _, m := range matches {
			key := m.Home.Name + ">" + m.Away.Name
			if home[key] {
				t.Errorf("%s hosts %s twice", m.Home.Name, m.Away.Name)
			}
			home[key] = true
		}
	})

	t.Run("each team hosts and visits every opponent", func(t *testing.T) {
		hosted := make(map[string]int)
		visited := make(map[string]int)
		for _, m := range matches {
			hosted[m.Home.Name]++
			visited[m.Away.Name]++
		}
		for _, tm := range teams {
			if hosted[tm.Name] != 4 || visited[tm.Name] != 4 {
				t.Errorf("%s: %d home, %d away, want 4 and 4", tm.Name, hosted[tm.Name], visited[tm.Name])
			}
		}
	})

	t.Run("derby flag matches towns on both legs", func(t *testing.T) {
		for _, m := range matches {
			want := m.Home.Town == m.Away.Town
			if m.Derby != want {
				t.Errorf("%s vs %s derby = %v, want %v", m.Home.Name, m.Away.Name, m.Derby, want)
			}
		}
	})

	t.Run("generation order is lexicographic with adjacent legs", func(t *testing.T) {
		k := 0
		for i := 0; i < len(teams); i++ {
			for j := i + 1; j < len(teams); j++ {
				leg1, leg2 := matches[k], matches[k+1]
				if leg1.Home.Name != teams[i].Name || leg1.Away.Name != teams[j].Name || leg1.Leg != 1 {
					t.Errorf("match %d = %s vs %s leg %d, want %s vs %s leg 1",
						k, leg1.Home.Name, leg1.Away.Name, leg1.Leg, teams[i].Name, teams[j].Name)
				}
				if leg2.Home.Name != teams[j].Name || leg2.Away.Name != teams[i].Name || leg2.Leg != 2 {
					t.Errorf("match %d = %s vs %s leg %d, want %s vs %s leg 2",
						k+1, leg2.Home.Name, leg2.Away.Name, leg2.Leg, teams[j].Name, teams[i].Name)
				}
				k += 2
			}
		}
	})

	t.Run("each match has a unique label", func(t *testing.T) {
		seen := make(map[string]bool)
		for _, m := range matches {
			if m.Label == "" {
				t.Error("match has empty label")
			}
			if seen[m.Label] {
				t.Errorf("duplicate label: %s", m.Label)
			}
			seen[m.Label] = true
		}
	})
}

func TestDoubleRoundRobinCounts(t *testing.T) {
	s := &DoubleRoundRobin{}
	for n := 0; n <= 8; n++ {
		t.Run(fmt.Sprintf("%d teams", n), func(t *testing.T) {
			teams := make([]team.Team, n)
			for i := range teams {
				teams[i] = team.Team{Name: fmt.Sprintf("T%d", i), Town: "X", Stadium: "S"}
			}
			got := len(s.GenerateMatches(teams))
			if want := n * (n - 1); n >= 2 && got != want {
				t.Errorf("matches = %d, want %d", got, want)
			}
			if n < 2 && got != 0 {
				t.Errorf("matches = %d, want 0", got)
			}
		})
	}
}

func TestGet(t *testing.T) {
	for _, name := range []string{"", DefaultName} {
		s, err := Get(name)
		if err != nil {
			t.Fatalf("Get(%q) error: %v", name, err)
		}
		if _, ok := s.(*DoubleRoundRobin); !ok {
			t.Errorf("Get(%q) = %T, want *DoubleRoundRobin", name, s)
		}
	}
	if _, err := Get("swiss"); err == nil {
		t.Error("Get(swiss) should fail")
	}
}

func TestStadium(t *testing.T) {
	m := Match{Home: testTeams()[0], Away: testTeams()[1]}
	if m.Stadium() != "Park" {
		t.Errorf("Stadium() = %q, want Park", m.Stadium())
	}
}
