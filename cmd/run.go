package cmd

import (
	"path/filepath"
	"strings"

	"github.com/ldoolitt/yosys/core/kernel"
	"github.com/spf13/cobra"
)

var (
	runCommands   []string
	runScripts    []string
	runLogFiles   []string
	runOutput     string
	runFrontend   string
	runBackend    string
	runQuiet      bool
	runEchoForced bool
)

// formatsByExtension maps file extensions to frontend and backend formats.
var formatsByExtension = map[string]string{
	".il":    "ilang",
	".ilang": "ilang",
	".ys":    "script",
}

// guessFormat picks the format for a file from its extension.
func guessFormat(filename, kind string) (string, error) {
	format, ok := formatsByExtension[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		return "", kernel.Errorf("Can't guess %s for file `%s'.", kind, filename)
	}
	return format, nil
}

var runCmd = &cobra.Command{
	Use:   "run [flags] [FILE...]",
	Short: "Read files, run commands and write the design.",
	Long: `Reads each FILE with the frontend matching its extension (.il for
ilang, .ys for scripts), runs the scripts given with -s, then the commands
given with -p, and finally writes the design with -o.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		cmd.SilenceUsage = true
		defer kernel.RecoverFatal(&err)

		configuration, err := loadConfigOrDefault()
		if err != nil {
			return err
		}
		if runEchoForced {
			configuration.Echo = true
		}

		k, err := newLocalKernel(cmd, configuration, runQuiet, runLogFiles)
		if err != nil {
			return err
		}
		defer k.Close()

		for _, file := range args {
			format := runFrontend
			if format == "" {
				if format, err = guessFormat(file, "frontend"); err != nil {
					return err
				}
			}
			if err := k.CallFrontend(nil, file, []string{format}); err != nil {
				return err
			}
		}

		for _, script := range runScripts {
			if err := k.CallFrontend(nil, script, []string{"script"}); err != nil {
				return err
			}
		}

		for _, command := range runCommands {
			if err := k.CallString(command); err != nil {
				return err
			}
		}

		if runOutput != "" {
			format := runBackend
			if format == "" {
				if format, err = guessFormat(runOutput, "backend"); err != nil {
					return err
				}
			}
			if err := k.CallBackend(nil, runOutput, []string{format}); err != nil {
				return err
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	flags := runCmd.Flags()
	flags.StringArrayVarP(&runCommands, "commands", "p", nil, "execute the commands, may be repeated")
	flags.StringArrayVarP(&runScripts, "script", "s", nil, "execute the commands in the script file, may be repeated")
	flags.StringArrayVarP(&runLogFiles, "log", "l", nil, "write the log to the file, may be repeated")
	flags.StringVarP(&runOutput, "output", "o", "", "write the design to the file on exit")
	flags.StringVarP(&runFrontend, "frontend", "f", "", "use the frontend for the input files instead of guessing")
	flags.StringVarP(&runBackend, "backend", "b", "", "use the backend for the output file instead of guessing")
	flags.BoolVarP(&runQuiet, "quiet", "q", false, "only write the log to the files given with -l")
	flags.BoolVarP(&runEchoForced, "echo", "e", false, "echo each command before running it")
}
