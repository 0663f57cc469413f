package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ldoolitt/yosys/core/logger"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

var historySession string

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Explore the command event log.",
}

var eventsReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize the logged commands, errors and sessions.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		report := logger.NewReport()
		if err := readEvents(report.Update); err != nil {
			return err
		}

		out, err := yaml.Marshal(report)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

var eventsHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the logged events in order, one per line.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		return readEvents(func(e *logger.Event) {
			if historySession != "" && e.SessionID != historySession {
				return
			}
			writeEvent(cmd.OutOrStdout(), e)
		})
	},
}

// readEvents feeds every entry of the configured event log to handler.
func readEvents(handler func(e *logger.Event)) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fd, err := cfg.ReadEventLog()
	if err != nil {
		return err
	}
	defer fd.Close()

	return logger.ReadJSONLinesLog(fd, handler)
}

// writeEvent prints one event as "TIME SESSION TYPE COMMAND[: ERROR]".
func writeEvent(w io.Writer, e *logger.Event) {
	ts := time.UnixMicro(e.TimestampMicros).UTC().Format(time.RFC3339)
	line := fmt.Sprintf("%s %s %-15s %s", ts, e.SessionID, e.Type, strings.Join(e.Command, " "))
	if e.Error != "" {
		line += ": " + e.Error
	}
	fmt.Fprintln(w, strings.TrimRight(line, " "))
}

func init() {
	eventsHistoryCmd.Flags().StringVar(&historySession, "session", "", "only show events of this session ID")

	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(eventsReportCmd)
	eventsCmd.AddCommand(eventsHistoryCmd)
}
