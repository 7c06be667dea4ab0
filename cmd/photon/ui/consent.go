package ui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"photon/internal/sdk"
)

// consentModel asks a single yes/no question and quits on a clear answer.
type consentModel struct {
	prompt    string
	styles    Styles
	answered  bool
	yes       bool
	cancelled bool
	invalid   bool
}

func newConsentModel(prompt string, styles Styles) consentModel {
	return consentModel{prompt: prompt, styles: styles}
}

func (m consentModel) Init() tea.Cmd {
	return nil
}

func (m consentModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.cancelled = true
		return m, tea.Quit
	case tea.KeyRunes:
		if yes, ok := sdk.ParseAnswer(string(key.Runes)); ok {
			m.answered = true
			m.yes = yes
			m.invalid = false
			return m, tea.Quit
		}
	}

	m.invalid = true
	return m, nil
}

func (m consentModel) View() string {
	s := m.styles.Bold.Render(m.prompt) + " [Y/N]: "
	switch {
	case m.answered && m.yes:
		s += m.styles.Success.Render("yes")
	case m.answered:
		s += m.styles.Failure.Render("no")
	case m.cancelled:
		s += m.styles.Muted.Render("cancelled")
	case m.invalid:
		s += m.styles.Warning.Render("(press y or n)")
	}
	return s + "\n"
}

// KeyPrompter asks for consent with single key presses on a terminal.
type KeyPrompter struct {
	in  io.Reader
	out io.Writer
}

// NewKeyPrompter creates a prompter reading keys from in.
func NewKeyPrompter(in io.Reader, out io.Writer) *KeyPrompter {
	return &KeyPrompter{in: in, out: out}
}

// Confirm implements sdk.ConsentProvider.
func (p *KeyPrompter) Confirm(ctx context.Context, prompt string) (bool, error) {
	program := tea.NewProgram(
		newConsentModel(prompt, NewStyles(p.out)),
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)

	final, err := program.Run()
	if err != nil {
		return false, fmt.Errorf("consent prompt: %w", err)
	}

	m, ok := final.(consentModel)
	if !ok {
		return false, fmt.Errorf("consent prompt: unexpected model %T", final)
	}
	if !m.answered {
		return false, sdk.ErrNoAnswer
	}
	return m.yes, nil
}
