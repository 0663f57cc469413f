package kernel

import (
	"strings"
)

const blanks = " \t\r\n"

// Line is one tokenized line of the command language.
type Line struct {
	// Shell is set for "!" lines, ShellCommand holds the text to run.
	Shell        bool
	ShellCommand string

	// Commands are the argument vectors to dispatch in order.
	Commands [][]string
}

// Empty reports whether the line has nothing to run.
func (l Line) Empty() bool {
	return !l.Shell && len(l.Commands) == 0
}

// Tokenize splits one line of the command language into argument vectors.
//
// A token ending in ";" ends the current command. Two semicolons also run
// "clean", three run "clean -purge". A lone "#" token ends the line.
func Tokenize(line string) Line {
	line = strings.TrimLeft(line, blanks)
	if line == "" || line[0] == '#' {
		return Line{}
	}

	if line[0] == '!' {
		cmd := strings.TrimLeft(line[1:], " \t")
		cmd = strings.TrimRight(cmd, "\r\n")
		return Line{Shell: true, ShellCommand: cmd}
	}

	var out Line
	var args []string
	flush := func() {
		if len(args) > 0 {
			out.Commands = append(out.Commands, args)
		}
		args = nil
	}

	for _, tok := range strings.FieldsFunc(line, isBlank) {
		if tok == "#" {
			break
		}

		if !strings.HasSuffix(tok, ";") {
			args = append(args, tok)
			continue
		}

		stripped := strings.TrimRight(tok, ";")
		semicolons := len(tok) - len(stripped)
		if stripped != "" {
			args = append(args, stripped)
		}
		flush()

		switch semicolons {
		case 2:
			out.Commands = append(out.Commands, []string{"clean"})
		case 3:
			out.Commands = append(out.Commands, []string{"clean", "-purge"})
		}
	}
	flush()

	return out
}

func isBlank(r rune) bool {
	return strings.ContainsRune(blanks, r)
}
