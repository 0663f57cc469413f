package commands

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleDump = `# Generated by yosys
module \buf
  wire input \a
  wire output \y
  cell $buf \u0
    connect A \a
    connect Y \y
  end
end
module \inv
  wire $n1
  wire input \a
  wire \spare
  wire output \y
  cell $not \u0
    connect A \a
    connect Y \y
  end
end
`

func TestIlang_RoundTrip(t *testing.T) {
	k, fs, out := newTestKernel(t)
	loadExampleDesign(t, k, fs)

	assert.Contains(t, out.String(), "\n1. Executing ILANG frontend.\nInput filename: example.il\n")

	require.NoError(t, k.CallString("write_ilang out.il"))
	assert.Contains(t, out.String(), "\n2. Executing ILANG backend.\nOutput filename: out.il\n")

	data, err := afero.ReadFile(fs, "out.il")
	require.NoError(t, err)
	assert.Equal(t, exampleDump, string(data))

	// The dump reads back into an identical design.
	k2, fs2, _ := newTestKernel(t)
	require.NoError(t, afero.WriteFile(fs2, "out.il", data, 0644))
	require.NoError(t, k2.CallString("read_ilang out.il"))
	require.NoError(t, k2.CallString("write_ilang again.il"))
	again, err := afero.ReadFile(fs2, "again.il")
	require.NoError(t, err)
	assert.Equal(t, exampleDump, string(again))
}

func TestIlang_WriteSelected(t *testing.T) {
	k, fs, _ := newTestKernel(t)
	loadExampleDesign(t, k, fs)

	require.NoError(t, k.CallString("cd buf; write_ilang -selected out.il"))

	data, err := afero.ReadFile(fs, "out.il")
	require.NoError(t, err)
	assert.Contains(t, string(data), `module \buf`)
	assert.NotContains(t, string(data), `module \inv`)
}

func TestIlang_WriteStdout(t *testing.T) {
	k, fs, out := newTestKernel(t)
	loadExampleDesign(t, k, fs)
	out.Reset()

	require.NoError(t, k.CallString("write_ilang"))

	assert.Contains(t, out.String(), "Output filename: <stdout>\n")
	assert.True(t, strings.HasSuffix(out.String(), exampleDump))
}

func TestIlang_MultipleFiles(t *testing.T) {
	k, fs, _ := newTestKernel(t)
	require.NoError(t, afero.WriteFile(fs, "a.il", []byte("module \\a\nend\n"), 0644))
	require.NoError(t, afero.WriteFile(fs, "b.il", []byte("module \\b\nend\n"), 0644))

	require.NoError(t, k.CallString("read_ilang a.il b.il"))

	assert.Equal(t, []string{`\a`, `\b`}, k.Design().ModuleNames())
	assert.EqualValues(t, 3, k.Registry().Lookup("read_ilang").Calls())
}

func TestIlang_Redefinition(t *testing.T) {
	k, fs, out := newTestKernel(t)
	loadExampleDesign(t, k, fs)

	assert.EqualError(t, k.CallString("read_ilang example.il"), "example.il: Re-definition of module `\\inv'!")

	out.Reset()
	require.NoError(t, k.CallString("read_ilang -overwrite example.il"))
	assert.Contains(t, out.String(), "Warning: Replacing existing module \\buf.\n")
	assert.Len(t, k.Design().ModuleNames(), 2)
}

func TestIlang_ParseErrors(t *testing.T) {
	cases := map[string]struct {
		text string
		err  string
	}{
		"unknown-statement": {
			text: "module \\m\n  process \\p\nend\n",
			err:  `bad.il:2: unknown statement "process"`,
		},
		"nested-module": {
			text: "module \\m\nmodule \\n\n",
			err:  "bad.il:2: nested module definition",
		},
		"undeclared-wire": {
			text: "module \\m\n  cell $not \\u0\n    connect A \\a\n",
			err:  "bad.il:3: wire \\a not declared in module \\m",
		},
		"duplicate-wire": {
			text: "module \\m\n  wire \\a\n  wire \\a\n",
			err:  "bad.il:3: \\a in module \\m: wire already exists",
		},
		"bad-attribute": {
			text: "module \\m\n  wire inout \\a\n",
			err:  `bad.il:2: unknown wire attribute "inout"`,
		},
		"stray-end": {
			text: "end\n",
			err:  "bad.il:1: unexpected end",
		},
		"unterminated": {
			text: "module \\m\n",
			err:  "bad.il:1: unexpected end of file in module \\m",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			k, fs, _ := newTestKernel(t)
			require.NoError(t, afero.WriteFile(fs, "bad.il", []byte(tc.text), 0644))

			assert.EqualError(t, k.CallString("read_ilang bad.il"), tc.err)
			assert.Empty(t, k.Design().ModuleNames())
		})
	}
}
