package commands

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ldoolitt/yosys/core/kernel"
	"github.com/spf13/afero"
)

const texManualName = "command-reference-manual.tex"

type helpPass struct {
	kernel.Descriptor
}

func NewHelpPass() kernel.Pass {
	return &helpPass{Descriptor: kernel.NewPass("help", "display help messages")}
}

func (p *helpPass) Help(k *kernel.Kernel) {
	logHelp(k,
		"",
		"    help  .............  list all commands",
		"    help <command>  ...  print help message for given command",
		"    help -all  ........  print complete command reference",
		"",
	)
}

func (p *helpPass) Execute(k *kernel.Kernel, args []string) error {
	reg := k.Registry()
	log := k.Log()

	switch {
	case len(args) == 1:
		log.Logf("\n")
		for _, cmd := range reg.Commands() {
			log.Logf("    %-20s %s\n", cmd.Name(), cmd.ShortHelp())
		}
		log.Logf("\n")
		log.Logf("Type 'help <command>' for more information on a command.\n")
		log.Logf("\n")

	case len(args) == 2 && args[1] == "-all":
		for _, cmd := range reg.Commands() {
			title := fmt.Sprintf("%s  --  %s", cmd.Name(), cmd.ShortHelp())
			log.Logf("\n\n%s\n%s\n", title, strings.Repeat("=", len(title)))
			cmd.Help(k)
		}

	// Undocumented, used to build the manual.
	case len(args) == 2 && args[1] == "-write-tex-command-reference-manual":
		return writeTexManual(k)

	case len(args) == 2:
		cmd := reg.Lookup(args[1])
		if cmd == nil {
			log.Logf("No such command: %s\n", args[1])
			return nil
		}
		cmd.Help(k)

	default:
		p.Help(k)
	}

	return nil
}

// captureHelp returns the help text of cmd instead of logging it.
func captureHelp(k *kernel.Kernel, cmd kernel.Command) string {
	var buf bytes.Buffer
	old := k.Log().SwapWriters([]io.Writer{&buf})
	defer k.Log().SwapWriters(old)

	cmd.Help(k)
	return buf.String()
}

var texEscaper = strings.NewReplacer("_", `\_`)

func writeTexManual(k *kernel.Kernel) error {
	var out bytes.Buffer
	fmt.Fprintf(&out, "%% Generated using the yosys 'help -write-tex-command-reference-manual' command.\n\n")

	for _, cmd := range k.Registry().Commands() {
		text := strings.Trim(captureHelp(k, cmd), "\n")
		fmt.Fprintf(&out, "\\section{%s -- %s}\n", texEscaper.Replace(cmd.Name()), texEscaper.Replace(cmd.ShortHelp()))
		fmt.Fprintf(&out, "\\label{cmd:%s}\n", cmd.Name())
		fmt.Fprintf(&out, "\\begin{lstlisting}[numbers=left,frame=single]\n")
		fmt.Fprintf(&out, "%s\n\\end{lstlisting}\n\n", text)
	}

	if err := afero.WriteFile(k.Fs(), texManualName, out.Bytes(), 0644); err != nil {
		return kernel.Errorf("Can't write %s: %v", texManualName, err)
	}
	return nil
}
