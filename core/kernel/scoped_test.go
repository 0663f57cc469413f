package kernel

import (
	"testing"

	"github.com/ldoolitt/yosys/core/rtlil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scopeObservation struct {
	activeModule string
	selected     []string
	depth        int
}

func observingPass(name string, seen *[]scopeObservation, err error) *testPass {
	return newTestPass(name, func(k *Kernel, args []string) error {
		d := k.Design()

		// Unrelated nested selections must net out.
		d.PushSelection(rtlil.NewSelection(true))
		d.PopSelection()

		obs := scopeObservation{activeModule: d.SelectedActiveModule(), depth: d.SelectionDepth()}
		for _, m := range d.SelectedModules() {
			obs.selected = append(obs.selected, m.Name)
		}
		*seen = append(*seen, obs)

		// Leak a frame for the dispatcher to clean up.
		d.PushSelection(rtlil.NewSelection(false))
		return err
	})
}

func TestKernel_CallOnModule(t *testing.T) {
	var seen []scopeObservation
	k, _ := newTestKernel(t,
		observingPass("somecmd", &seen, nil),
		observingPass("failing", &seen, Errorf("failed")),
	)
	d := k.Design()
	addModules(t, d, `\a`, `\b`)
	d.SetSelectedActiveModule(`\a`)
	depth := d.SelectionDepth()

	require.NoError(t, k.CallOnModule(d.Module(`\b`), []string{"somecmd"}))
	assert.Equal(t, `\a`, d.SelectedActiveModule())
	assert.Equal(t, depth, d.SelectionDepth())

	require.NoError(t, k.CallOnModuleString(d.Module(`\b`), "somecmd; somecmd"))
	assert.Equal(t, `\a`, d.SelectedActiveModule())
	assert.Equal(t, depth, d.SelectionDepth())

	assert.Error(t, k.CallOnModule(d.Module(`\b`), []string{"failing"}))
	assert.Equal(t, `\a`, d.SelectedActiveModule())
	assert.Equal(t, depth, d.SelectionDepth())

	require.Len(t, seen, 4)
	for _, obs := range seen {
		assert.Equal(t, `\b`, obs.activeModule)
		assert.Equal(t, []string{`\b`}, obs.selected)
		assert.Equal(t, depth+1, obs.depth)
	}
}

func TestKernel_CallOnSelection(t *testing.T) {
	var seen []scopeObservation
	k, _ := newTestKernel(t,
		observingPass("somecmd", &seen, nil),
		observingPass("failing", &seen, Errorf("failed")),
	)
	d := k.Design()
	addModules(t, d, `\a`, `\b`, `\c`)
	d.SetSelectedActiveModule(`\c`)
	depth := d.SelectionDepth()

	sel := rtlil.NewSelection(false)
	sel.Select(d.Module(`\a`))
	sel.Select(d.Module(`\b`))

	require.NoError(t, k.CallOnSelection(sel, []string{"somecmd"}))
	require.NoError(t, k.CallOnSelectionString(sel, "somecmd"))
	assert.Error(t, k.CallOnSelection(sel, []string{"failing"}))

	assert.Equal(t, `\c`, d.SelectedActiveModule())
	assert.Equal(t, depth, d.SelectionDepth())

	require.Len(t, seen, 3)
	for _, obs := range seen {
		assert.Empty(t, obs.activeModule)
		assert.Equal(t, []string{`\a`, `\b`}, obs.selected)
	}
}

func TestKernel_CallOnModuleUnknownCommand(t *testing.T) {
	k, _ := newTestKernel(t)
	d := k.Design()
	addModules(t, d, `\a`)

	assert.Error(t, k.CallOnModule(d.Module(`\a`), []string{"missing"}))
	assert.Empty(t, d.SelectedActiveModule())
	assert.Equal(t, 1, d.SelectionDepth())
}
