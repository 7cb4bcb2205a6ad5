package gate

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Prompt is a modal yes/no dialog drawn in the terminal with bubbletea.
type Prompt struct {
	in   io.Reader
	out  io.Writer
	opts []tea.ProgramOption
}

// NewPrompt creates a modal prompt over in and out.
func NewPrompt(in io.Reader, out io.Writer, opts ...tea.ProgramOption) *Prompt {
	return &Prompt{in: in, out: out, opts: opts}
}

// Confirm shows the dialog and blocks until the operator answers.
func (p *Prompt) Confirm(title string) (bool, error) {
	opts := append([]tea.ProgramOption{tea.WithInput(p.in), tea.WithOutput(p.out)}, p.opts...)
	final, err := tea.NewProgram(newConfirmModel(title), opts...).Run()
	if err != nil {
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}
	m, ok := final.(confirmModel)
	if !ok {
		return false, fmt.Errorf("confirmation prompt returned %T", final)
	}
	return m.decided && m.answer, nil
}

// confirmKeys are the bindings of the modal prompt.
type confirmKeys struct {
	yes    key.Binding
	no     key.Binding
	toggle key.Binding
	choose key.Binding
}

func newConfirmKeys() confirmKeys {
	return confirmKeys{
		yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		no: key.NewBinding(
			key.WithKeys("n", "N", "q", "esc", "ctrl+c"),
			key.WithHelp("n/esc", "no"),
		),
		toggle: key.NewBinding(
			key.WithKeys("left", "right", "h", "l", "tab", "shift+tab"),
			key.WithHelp("←/→", "move"),
		),
		choose: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
	}
}

func (k confirmKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.yes, k.no, k.toggle, k.choose}
}

func (k confirmKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// confirmModel is the bubbletea model behind Prompt. Yes has focus initially.
type confirmModel struct {
	title   string
	focus   bool // true = Yes
	decided bool
	answer  bool

	keys confirmKeys
	help help.Model
}

func newConfirmModel(title string) confirmModel {
	h := help.New()
	h.Styles.ShortKey = hintKeyStyle
	h.Styles.ShortDesc = hintStyle
	h.Styles.ShortSeparator = hintStyle
	return confirmModel{title: title, focus: true, keys: newConfirmKeys(), help: h}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.yes):
			return m.decide(true)
		case key.Matches(msg, m.keys.no):
			return m.decide(false)
		case key.Matches(msg, m.keys.toggle):
			m.focus = !m.focus
			return m, nil
		case key.Matches(msg, m.keys.choose):
			return m.decide(m.focus)
		}
	}
	return m, nil
}

func (m confirmModel) decide(answer bool) (tea.Model, tea.Cmd) {
	m.decided = true
	m.answer = answer
	return m, tea.Quit
}

var promptHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#5A56E0")).
	Padding(0, 1)

var promptBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#5A56E0")).
	Padding(1, 2)

var buttonStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FFF7DB")).
	Background(lipgloss.Color("#888B7E")).
	Padding(0, 3).
	MarginRight(2)

var activeButtonStyle = buttonStyle.
	Background(lipgloss.Color("#F25D94")).
	Underline(true)

var (
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	hintKeyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#BBBBBB"))
)

func (m confirmModel) View() string {
	if m.decided {
		return ""
	}

	yes, no := buttonStyle.Render("Yes"), buttonStyle.Render("No")
	if m.focus {
		yes = activeButtonStyle.Render("Yes")
	} else {
		no = activeButtonStyle.Render("No")
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		promptHeaderStyle.Render("Next Presentation"),
		"",
		fmt.Sprintf("Do you want to proceed to '%s'?", m.title),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, yes, no),
		"",
		m.help.View(m.keys),
	)
	return promptBoxStyle.Render(body) + "\n"
}
