package prompt

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(t *testing.T, m tea.Model, text string) tea.Model {
	t.Helper()
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestEnterAcceptsTrimmedValue(t *testing.T) {
	var m tea.Model = newModel("Team file?", "teams.csv")
	m = typeText(t, m, " league.csv ")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	final := m.(model)
	assert.True(t, final.done)
	assert.False(t, final.cancelled)
	assert.Equal(t, "league.csv", final.value)
	assert.Empty(t, final.View())
}

func TestEmptyAnswerUsesPlaceholder(t *testing.T) {
	var m tea.Model = newModel("Team file?", "teams.csv")
	m = typeText(t, m, "   ")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	final := m.(model)
	assert.True(t, final.done)
	assert.Equal(t, "teams.csv", final.value)
}

func TestEscCancels(t *testing.T) {
	var m tea.Model = newModel("Team file?", "")
	m = typeText(t, m, "abc")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	final := m.(model)
	assert.True(t, final.cancelled)
	assert.False(t, final.done)
}

func TestViewShowsQuestion(t *testing.T) {
	m := newModel("Which file holds the teams?", "teams.csv")
	assert.Contains(t, m.View(), "Which file holds the teams?")
}
