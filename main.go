package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"csvview/csvview/internal/config"
	"csvview/csvview/internal/logging"
	"csvview/csvview/internal/ui"
)

type options struct {
	configPath string
	logFile    string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "csvview [file]",
		Short: "Browse, filter and export CSV files in the terminal",
		Long: `csvview loads a CSV file into a scrollable grid. Pick a column and
type some text to keep only the rows whose value contains it, then export
what is on screen to a new CSV file.

Gzip, bzip2 and xz compressed files are opened transparently.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var initialFile string
			if len(args) == 1 {
				initialFile = args[0]
			}
			return run(opts, initialFile)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default ~/"+config.FileName+")")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	return cmd
}

func loadConfig(path string) *config.Config {
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			return &config.Config{}
		}
		path = defaultPath
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to load config: %v\n", err)
		return &config.Config{}
	}
	return cfg
}

func run(opts options, initialFile string) error {
	cfg := loadConfig(opts.configPath)

	// Flags win over the config file.
	if opts.logFile != "" {
		cfg.Logging.File = opts.logFile
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}

	logOut, err := logging.Open(cfg.Logging.File)
	if err != nil {
		return err
	}
	defer logOut.Close()
	logging.Setup(logOut, cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("starting", "file", initialFile)

	m := ui.New(ui.Options{
		Config:      cfg,
		InitialFile: initialFile,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	slog.Info("exiting")
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
