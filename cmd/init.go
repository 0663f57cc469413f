package cmd

import (
	"log"

	"github.com/ldoolitt/yosys/core/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration and host key to the config directory.",
	Long: `Creates the config directory if needed, then writes a default
configuration file and an SSH host key. Existing files are left untouched,
so running init again is safe.`,
	Args: cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		logger := log.New(cmd.ErrOrStderr(), "", 0)
		cfg, err := config.Initialize(cfgPath, logger)
		if err != nil {
			return err
		}

		logger.Printf("Configuration ready in %s, SSH port %d.\n", cfgPath, cfg.SSHPort)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
