package cmd

import (
	"fmt"

	"github.com/ldoolitt/yosys/commands"
	"github.com/spf13/cobra"
)

var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the builtin commands of the kernel.",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, c := range commands.NewRegistry().Commands() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-20s %-9s %s\n", c.Name(), c.Kind(), c.ShortHelp())
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
