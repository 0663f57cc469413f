package commands

import (
	"testing"

	"github.com/ldoolitt/yosys/core/kernel"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleScript = `# build a design inline
read_ilang <<EOT
module \top
  wire input \a
  wire output \y
  wire \spare
  cell $not \u0
    connect A \a
    connect Y \y
  end
end
EOT
clean -purge
ls
cd top; ls
`

func TestScript(t *testing.T) {
	k, fs, out := newTestKernel(t)
	require.NoError(t, afero.WriteFile(fs, "build.ys", []byte(exampleScript), 0644))

	require.NoError(t, k.CallString("script build.ys"))

	assert.Contains(t, out.String(), "Input filename: <<EOT\n")
	assert.Contains(t, out.String(), "Removed 1 unused wires.\n")
	assert.Contains(t, out.String(), "\n1 modules:\n  top\n")
	assert.Contains(t, out.String(), "\n2 wires:\n  a\n  y\n")
	assert.Equal(t, "yosys [top]> ", k.Prompt())
	assert.Contains(t, k.LastHereDocument(), "module \\top\n")
	assert.Nil(t, k.Script())
}

func TestScript_StopsAtError(t *testing.T) {
	k, fs, out := newTestKernel(t)
	require.NoError(t, afero.WriteFile(fs, "broken.ys", []byte("log one\nsynth\nlog two\n"), 0644))

	err := k.CallString("script broken.ys")

	assert.EqualError(t, err, "No such command: synth (type 'help' for a command overview)")
	assert.Equal(t, "one\n", out.String())
}

func TestScript_CallFrontend(t *testing.T) {
	k, fs, out := newTestKernel(t)
	require.NoError(t, afero.WriteFile(fs, "hello.ys", []byte("log hello\n"), 0644))

	require.NoError(t, k.CallFrontend(nil, "hello.ys", []string{"script"}))
	assert.Equal(t, "hello\n", out.String())
}

func TestScript_MissingFile(t *testing.T) {
	k, _, _ := newTestKernel(t)

	err := k.CallString("script missing.ys")

	var cmdErr *kernel.CommandError
	if assert.ErrorAs(t, err, &cmdErr) {
		assert.Contains(t, cmdErr.Msg, "Can't open input file `missing.ys' for reading")
	}
}
