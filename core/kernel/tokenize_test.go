package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	cases := map[string]struct {
		line string
		want Line
	}{
		"empty": {
			line: "",
			want: Line{},
		},
		"blank": {
			line: " \t\r\n",
			want: Line{},
		},
		"comment": {
			line: "# comment",
			want: Line{},
		},
		"indented-comment": {
			line: "   # comment",
			want: Line{},
		},
		"simple": {
			line: "read_ilang  top.il\n",
			want: Line{Commands: [][]string{{"read_ilang", "top.il"}}},
		},
		"trailing-comment": {
			line: "ls # list modules",
			want: Line{Commands: [][]string{{"ls"}}},
		},
		"hash-inside-token": {
			line: "log a#b",
			want: Line{Commands: [][]string{{"log", "a#b"}}},
		},
		"single-semicolon": {
			line: "foo; bar",
			want: Line{Commands: [][]string{{"foo"}, {"bar"}}},
		},
		"detached-semicolon": {
			line: "foo ; bar",
			want: Line{Commands: [][]string{{"foo"}, {"bar"}}},
		},
		"double-semicolon": {
			line: "foo bar;; baz",
			want: Line{Commands: [][]string{{"foo", "bar"}, {"clean"}, {"baz"}}},
		},
		"triple-semicolon": {
			line: "foo;;;",
			want: Line{Commands: [][]string{{"foo"}, {"clean", "-purge"}}},
		},
		"lone-double-semicolon": {
			line: ";;",
			want: Line{Commands: [][]string{{"clean"}}},
		},
		"four-semicolons": {
			line: "foo;;;;",
			want: Line{Commands: [][]string{{"foo"}}},
		},
		"shell": {
			line: "!  ls -l\r\n",
			want: Line{Shell: true, ShellCommand: "ls -l"},
		},
		"indented-shell": {
			line: "  !echo a; echo b",
			want: Line{Shell: true, ShellCommand: "echo a; echo b"},
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			got := Tokenize(tc.line)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLine_Empty(t *testing.T) {
	assert.True(t, Tokenize("# nothing").Empty())
	assert.False(t, Tokenize("ls").Empty())
	assert.False(t, Tokenize("!true").Empty())
}
