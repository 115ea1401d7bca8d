package params

import (
	"errors"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/bethesim/internal/physics"
)

var ErrCanceled = errors.New("params: input canceled")

var (
	formTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ffff"))
	formLabel   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899")).Width(4)
	formFocused = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff00ff"))
	formValue   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ccff"))
	formHint    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688")).Italic(true)
)

// Form is a bubbletea model editing the five correction parameters. Empty or
// malformed entries fall back to their defaults.
type Form struct {
	defaults physics.CorrectionParameters
	inputs   []string
	focus    int
	done     bool
	canceled bool
}

func NewForm(def physics.CorrectionParameters) *Form {
	return &Form{
		defaults: def,
		inputs:   make([]string, len(fields)),
	}
}

func (f *Form) Init() tea.Cmd {
	return nil
}

func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil
	}

	n := len(fields)
	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		f.canceled = true
		return f, tea.Quit
	case tea.KeyEnter:
		if f.focus == n-1 {
			f.done = true
			return f, tea.Quit
		}
		f.focus++
	case tea.KeyTab, tea.KeyDown:
		f.focus = (f.focus + 1) % n
	case tea.KeyShiftTab, tea.KeyUp:
		f.focus = (f.focus - 1 + n) % n
	case tea.KeyBackspace:
		if in := []rune(f.inputs[f.focus]); len(in) > 0 {
			f.inputs[f.focus] = string(in[:len(in)-1])
		}
	case tea.KeyRunes:
		f.inputs[f.focus] += string(key.Runes)
	}
	return f, nil
}

func (f *Form) View() string {
	var sb strings.Builder
	sb.WriteString(formTitle.Render("Density correction parameters"))
	sb.WriteString("\n\n")

	def := f.defaults
	for i, fl := range fields {
		cursor := "  "
		label := formLabel.Render(fl.label)
		if i == f.focus {
			cursor = formFocused.Render("> ")
			label = formFocused.Width(4).Render(fl.label)
		}

		value := f.inputs[i]
		if value == "" {
			value = formHint.Render(formatDefault(*fl.ref(&def)))
		} else {
			value = formValue.Render(value)
		}
		sb.WriteString(cursor + label + " " + value + "\n")
	}

	sb.WriteString("\n")
	sb.WriteString(formHint.Render("enter: next/confirm  tab: move  esc: cancel"))
	sb.WriteString("\n")
	return sb.String()
}

// Parameters returns the entered values with per-field fallback.
func (f *Form) Parameters() physics.CorrectionParameters {
	p := f.defaults
	for i, fl := range fields {
		ref := fl.ref(&p)
		*ref = parseOr(f.inputs[i], *ref)
	}
	return p
}

func (f *Form) Done() bool     { return f.done }
func (f *Form) Canceled() bool { return f.canceled }

// RunForm runs the form on in/out and returns the confirmed parameters.
func RunForm(in io.Reader, out io.Writer, def physics.CorrectionParameters) (physics.CorrectionParameters, error) {
	p := tea.NewProgram(NewForm(def), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return def, err
	}

	form := final.(*Form)
	if form.Canceled() || !form.Done() {
		return def, ErrCanceled
	}
	return form.Parameters(), nil
}
