package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled is returned when the user quits the prompt without answering.
var ErrCancelled = errors.New("prompt cancelled")

var questionStyle = lipgloss.NewStyle().Bold(true)

// model is a single-line text prompt. Enter accepts, Esc or Ctrl+C cancels.
// An empty answer takes the placeholder.
type model struct {
	question  string
	input     textinput.Model
	value     string
	done      bool
	cancelled bool
}

func newModel(question, placeholder string) model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Focus()
	return model{question: question, input: ti}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.value = strings.TrimSpace(m.input.Value())
			if m.value == "" {
				m.value = m.input.Placeholder
			}
			m.done = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.done || m.cancelled {
		return ""
	}
	return fmt.Sprintf("%s\n%s\n", questionStyle.Render(m.question), m.input.View())
}

// Ask shows question and returns the trimmed answer, or placeholder when
// the answer is empty. Input and output are
// passed in so the prompt can run against a terminal or a test harness.
func Ask(question, placeholder string, in io.Reader, out io.Writer) (string, error) {
	p := tea.NewProgram(
		newModel(question, placeholder),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("running prompt: %w", err)
	}

	m, ok := final.(model)
	if !ok || m.cancelled || !m.done {
		return "", ErrCancelled
	}
	return m.value, nil
}
