package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/kk-code-lab/fbrowse/internal/config"
	"github.com/kk-code-lab/fbrowse/internal/logger"
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

type globalOptions struct {
	configPath string
	logLevel   string
	logFile    string
}

// NewRootCommand creates the fbrowse command. Without a subcommand it opens
// the interactive browser.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}
	var printDir bool

	cmd := &cobra.Command{
		Use:   "fbrowse [dir]",
		Short: "Terminal file browser with multi-selection and live name search",
		Long: `fbrowse lists a directory, selects entries with click, Ctrl-click and
Shift-click semantics, jumps by first letter and searches names below a
directory or across every volume while you keep browsing.`,
		Version:      Version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := startDir(args)
			if err != nil {
				return err
			}
			last, err := runShell(opts, dir)
			if err != nil {
				return err
			}
			if printDir && last != "" {
				fmt.Fprintln(cmd.OutOrStdout(), last)
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.config/fbrowse/config.yaml)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	flags.StringVar(&opts.logFile, "log-file", "", "log file for the interactive browser")
	cmd.Flags().BoolVar(&printDir, "print-dir", false, "print the last directory on exit")

	cmd.AddCommand(newSearchCommand(opts))
	cmd.AddCommand(newListCommand(opts))
	cmd.AddCommand(newRootsCommand())

	return cmd
}

func startDir(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return os.Getwd()
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(opts *globalOptions) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err == nil {
			path = defaultPath
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = logger.NormalizeLevel(opts.logLevel)
	}
	if opts.logFile != "" {
		cfg.Log.File = opts.logFile
	}
	return cfg, nil
}

// cliLogger logs to w, normally stderr.
func cliLogger(cfg *config.Config, w io.Writer) *logger.Logger {
	return logger.New(w, cfg.Log.Level)
}
