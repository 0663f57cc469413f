package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEcho(t *testing.T) {
	k, _, out := newTestKernel(t)

	require.NoError(t, k.CallString("echo"))
	assert.Equal(t, "echo off\n", out.String())
	assert.False(t, k.Echo())

	out.Reset()
	require.NoError(t, k.CallString("echo on"))
	assert.True(t, k.Echo())

	out.Reset()
	require.NoError(t, k.CallString("log hello"))
	assert.Equal(t, "\nyosys> log hello\nhello\n", out.String())

	require.NoError(t, k.CallString("echo off"))
	assert.False(t, k.Echo())
}

func TestEcho_Errors(t *testing.T) {
	cases := map[string]string{
		"echo maybe": "Command syntax error: Unexpected argument.\n> echo maybe\n>      ^",
		"echo on on": "Command syntax error: Unexpected argument.\n> echo on on\n>         ^",
	}

	for command, expected := range cases {
		t.Run(command, func(t *testing.T) {
			k, _, out := newTestKernel(t)

			assert.EqualError(t, k.CallString(command), expected)
			assert.Contains(t, out.String(), "\nSyntax error in command `"+command+"':\n")
			assert.Contains(t, out.String(), "    echo on\n")
		})
	}
}
