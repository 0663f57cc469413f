package commands

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelp(t *testing.T) {
	cases := goldenTestSuite{
		"list":    {Command: "help"},
		"command": {Command: "help echo"},
		"unknown": {Command: "help synth"},
		"usage":   {Command: "help a b"},
	}

	cases.Run(t)
}

func TestHelp_All(t *testing.T) {
	k, _, out := newTestKernel(t)

	require.NoError(t, k.CallString("help -all"))

	assert.Contains(t, out.String(), "\n\necho  --  turning echoing back of commands on and off\n"+
		strings.Repeat("=", len("echo  --  turning echoing back of commands on and off"))+"\n")
	for _, name := range k.Registry().Names() {
		assert.Contains(t, out.String(), "\n\n"+name+"  --  ")
	}
}

func TestHelp_TexManual(t *testing.T) {
	k, fs, out := newTestKernel(t)

	require.NoError(t, k.CallString("help -write-tex-command-reference-manual"))
	assert.Empty(t, out.String())

	data, err := afero.ReadFile(fs, texManualName)
	require.NoError(t, err)
	manual := string(data)

	assert.Contains(t, manual, `\section{read\_ilang -- read modules from ilang file}`)
	assert.Contains(t, manual, `\label{cmd:read_ilang}`)
	assert.Contains(t, manual, "    echo on\n")
}
