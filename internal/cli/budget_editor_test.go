package cli

import (
	"testing"
	"time"

	"github.com/alexanderramin/servio/internal/domain"
	"github.com/alexanderramin/servio/internal/gig"
	"github.com/alexanderramin/servio/internal/teatest"
	"github.com/alexanderramin/servio/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBudgetDriver(t *testing.T, g *domain.GigDraft) (*teatest.Driver, *gig.Controller) {
	t.Helper()
	ctrl := gig.NewController(g, nil, nil, gig.Config{})
	d := teatest.New(t, newBudgetEditor(ctrl), teatest.WithSize(80, 24))
	d.DrainInit()
	return d, ctrl
}

func editor(t *testing.T, d *teatest.Driver) *budgetEditor {
	t.Helper()
	m, ok := d.Model.(*budgetEditor)
	require.True(t, ok)
	return m
}

func TestBudgetEditor_SavesTypedBudget(t *testing.T) {
	d, ctrl := newBudgetDriver(t, testutil.NewTestGig(time.Now()))

	d.ClearInput()
	d.Type("1500")
	assert.Contains(t, d.View(), "Differs from the roles total by $1000.00")
	d.PressEnter()

	assert.True(t, d.Quitting)
	assert.True(t, editor(t, d).saved)
	assert.Equal(t, domain.Amount("1500"), ctrl.Draft().ProjectBudget)
}

func TestBudgetEditor_RejectsGarbage(t *testing.T) {
	d, ctrl := newBudgetDriver(t, testutil.NewTestGig(time.Now()))

	d.ClearInput()
	d.Type("lots")
	d.PressEnter()

	assert.False(t, d.Quitting)
	assert.Contains(t, d.View(), errBudgetFormat.Error())
	assert.Equal(t, domain.Amount("1000"), ctrl.Draft().ProjectBudget)

	d.PressBackspace()
	assert.NotContains(t, d.View(), errBudgetFormat.Error(), "editing clears the error")
}

func TestBudgetEditor_LockedIsReadOnly(t *testing.T) {
	d, ctrl := newBudgetDriver(t, testutil.NewTestGig(time.Now(), testutil.WithBudget("")))
	require.True(t, ctrl.BudgetLocked())

	d.Type("9")
	assert.Contains(t, d.View(), "Locked to the total cost of roles.")
	assert.Equal(t, "500", editor(t, d).input.Value())

	d.PressEnter()
	assert.True(t, d.Quitting)
	assert.Equal(t, "500", ctrl.Draft().ProjectBudget.Decimal().String())
}

func TestBudgetEditor_Cancel(t *testing.T) {
	for name, cancel := range map[string]func(*teatest.Driver){
		"esc":    (*teatest.Driver).PressEsc,
		"ctrl+c": (*teatest.Driver).PressCtrlC,
	} {
		t.Run(name, func(t *testing.T) {
			d, ctrl := newBudgetDriver(t, testutil.NewTestGig(time.Now()))

			d.Type("5")
			cancel(d)

			assert.True(t, d.Quitting)
			m := editor(t, d)
			assert.True(t, m.cancelled)
			assert.False(t, m.saved)
			assert.Equal(t, domain.Amount("1000"), ctrl.Draft().ProjectBudget)
		})
	}
}
