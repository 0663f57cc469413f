package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/ldoolitt/yosys/commands"
	"github.com/ldoolitt/yosys/core/config"
	"github.com/ldoolitt/yosys/core/kernel"
	"github.com/ldoolitt/yosys/core/logger"
	"github.com/ldoolitt/yosys/core/rtlil"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var cfgPath string

func loadConfig() (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		log.Println("Couldn't load config: did you run init?")
	}

	return configuration, err
}

// loadConfigOrDefault falls back to the built-in configuration when none was
// initialized. History is disabled in that case.
func loadConfigOrDefault() (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		configuration = config.Default()
		configuration.HistoryFile = ""
		return configuration, nil
	}
	return configuration, err
}

// localKernel is a kernel working on the local filesystem and console.
type localKernel struct {
	*kernel.Kernel

	closers []io.Closer
}

func (lk *localKernel) Close() error {
	var lastErr error
	for _, c := range lk.closers {
		if err := c.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

func newLocalKernel(cmd *cobra.Command, configuration *config.Configuration, quiet bool, logFiles []string) (*localKernel, error) {
	lk := &localKernel{}
	osFs := afero.NewOsFs()

	sink := logger.NewSink()
	sink.SetColor(configuration.UseColor(!color.NoColor))
	if !quiet {
		sink.AddWriter(cmd.OutOrStdout())
	}
	for _, name := range logFiles {
		fd, err := osFs.Create(name)
		if err != nil {
			lk.Close()
			return nil, err
		}
		lk.closers = append(lk.closers, fd)
		sink.AddWriter(fd)
	}

	events := logger.NewNopLogger()
	eventLog, err := configuration.OpenEventLog()
	if err != nil {
		lk.Close()
		return nil, err
	}
	if eventLog != nil {
		lk.closers = append(lk.closers, eventLog)
		events = logger.NewJsonLinesLogRecorder(eventLog)
	}

	lk.Kernel = kernel.New(commands.NewRegistry(), rtlil.NewDesign(), kernel.Options{
		Fs:     osFs,
		Log:    sink,
		Events: events.NewSession(),
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Shell:  configuration.Shell,
		Prompt: configuration.Prompt,
		Echo:   configuration.Echo,
	})
	return lk, nil
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "yosys",
	Short: "Yosys command kernel",
	Long: `Runs synthesis scripts and commands against an in-memory design.

Commands are read from scripts, the command line, an interactive shell or
remote SSH sessions.`,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config path")
}
