package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/servio/internal/cli/formatter"
	"github.com/alexanderramin/servio/internal/gig"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
)

type budgetKeys struct {
	Save   key.Binding
	Cancel key.Binding
}

var defaultBudgetKeys = budgetKeys{
	Save:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
	Cancel: key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
}

// budgetEditor edits the project budget of one gig. While the budget is
// pinned to the roles total the input is read-only.
type budgetEditor struct {
	ctrl  *gig.Controller
	input textinput.Model
	keys  budgetKeys
	err   error

	saved     bool
	cancelled bool
}

func newBudgetEditor(ctrl *gig.Controller) *budgetEditor {
	in := textinput.New()
	in.Prompt = "$ "
	in.Placeholder = "1500"
	in.CharLimit = 16
	in.SetValue(string(ctrl.Draft().ProjectBudget))
	if !ctrl.BudgetLocked() {
		in.Focus()
	}
	return &budgetEditor{ctrl: ctrl, input: in, keys: defaultBudgetKeys}
}

func (m *budgetEditor) Init() tea.Cmd {
	if m.ctrl.BudgetLocked() {
		return nil
	}
	return textinput.Blink
}

func (m *budgetEditor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.cancelled = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Save):
			if m.commit() {
				m.saved = true
				return m, tea.Quit
			}
			return m, nil
		}
	}
	if m.ctrl.BudgetLocked() {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.err = nil
	return m, cmd
}

var errBudgetFormat = errors.New("enter a number like 1500 or 1500.50")

// commit pushes the typed value into the controller. A locked budget saves
// as is.
func (m *budgetEditor) commit() bool {
	if m.ctrl.BudgetLocked() {
		return true
	}
	raw := strings.TrimPrefix(strings.TrimSpace(m.input.Value()), "$")
	if _, err := decimal.NewFromString(raw); err != nil {
		m.err = errBudgetFormat
		return false
	}
	if err := m.ctrl.SetProjectBudget(raw); err != nil {
		m.err = err
		return false
	}
	return true
}

func (m *budgetEditor) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header("Project budget") + "\n\n")
	b.WriteString(m.input.View() + "\n\n")

	total, _ := decimal.NewFromString(m.ctrl.RolesTotal())
	b.WriteString(formatter.Field("roles total", formatter.Money(total)))
	if m.ctrl.BudgetLocked() {
		b.WriteString(formatter.StyleYellow.Render("Locked to the total cost of roles.") + "\n")
	} else if typed, err := decimal.NewFromString(strings.TrimSpace(m.input.Value())); err == nil && total.IsPositive() && !typed.Equal(total) {
		b.WriteString(formatter.Dim(fmt.Sprintf("Differs from the roles total by %s.", formatter.Money(typed.Sub(total).Abs()))) + "\n")
	}
	if m.err != nil {
		b.WriteString(formatter.StyleRed.Render(m.err.Error()) + "\n")
	}

	b.WriteString("\n" + formatter.Dim(helpLine(m.keys.Save, m.keys.Cancel)))
	return b.String()
}

func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, k := range bindings {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}
