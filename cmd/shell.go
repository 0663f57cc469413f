package cmd

import (
	"github.com/abiosoft/readline"
	"github.com/ldoolitt/yosys/core"
	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive shell.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		configuration, err := loadConfigOrDefault()
		if err != nil {
			return err
		}

		k, err := newLocalKernel(cmd, configuration, false, nil)
		if err != nil {
			return err
		}
		defer k.Close()

		shell, err := core.NewShell(k.Kernel, core.Terminal{
			Stdin:       cmd.InOrStdin(),
			Stdout:      cmd.OutOrStdout(),
			Stderr:      cmd.ErrOrStderr(),
			IsTerminal:  readline.DefaultIsTerminal(),
			HistoryFile: configuration.HistoryPath(),
		})
		if err != nil {
			return err
		}
		defer shell.Close()

		return shell.Run()
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
