package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	cases := map[string]struct {
		command string
		output  string
		wires   []string
	}{
		"keeps-public": {
			command: "clean",
			output:  "Removed 1 unused wires.\n",
			wires:   []string{`\a`, `\spare`, `\y`},
		},
		"purge": {
			command: "clean -purge",
			output:  "Removed 2 unused wires.\n",
			wires:   []string{`\a`, `\y`},
		},
		"double-dash-purge": {
			command: "clean --purge",
			output:  "Removed 2 unused wires.\n",
			wires:   []string{`\a`, `\y`},
		},
		"other-module": {
			command: "clean -purge buf",
			output:  "",
			wires:   []string{`$n1`, `\a`, `\spare`, `\y`},
		},
		"after-command": {
			command: "log -n ok;;",
			output:  "okRemoved 1 unused wires.\n",
			wires:   []string{`\a`, `\spare`, `\y`},
		},
		"purge-after-command": {
			command: "log -n ok;;;",
			output:  "okRemoved 2 unused wires.\n",
			wires:   []string{`\a`, `\y`},
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			k, fs, out := newTestKernel(t)
			loadExampleDesign(t, k, fs)
			out.Reset()

			require.NoError(t, k.CallString(tc.command))

			assert.Equal(t, tc.output, out.String())
			assert.Equal(t, tc.wires, k.Design().Module(`\inv`).WireNames())
			assert.Len(t, k.Design().Module(`\buf`).WireNames(), 2)
		})
	}
}

func TestClean_UnknownOption(t *testing.T) {
	cases := map[string]struct {
		command string
		message string
		caret   string
	}{
		"single-dash": {
			command: "clean -bogus top",
			message: "unknown option: -bogus\n",
			caret:   "\n> clean -bogus top\n>       ^",
		},
		"double-dash": {
			command: "clean --bogus top",
			message: "unknown option: --bogus\n",
			caret:   "\n> clean --bogus top\n>       ^",
		},
		"after-known": {
			command: "clean -purge -all top",
			message: "unknown option: -all\n",
			caret:   "\n> clean -purge -all top\n>              ^",
		},
		"short": {
			command: "clean -x",
			message: "unknown option: -x\n",
			caret:   "\n> clean -x\n>       ^",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			k, _, _ := newTestKernel(t)

			err := k.CallString(tc.command)

			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tc.message)
				assert.Contains(t, err.Error(), tc.caret)
			}
		})
	}
}
