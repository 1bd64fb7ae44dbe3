package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/linkstore/internal/config"
	"github.com/vango-dev/linkstore/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries what every command needs once the root command has run.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	out    io.Writer
	errOut io.Writer
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		errors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	var (
		configPath string
		logLevel   string
		noColor    bool
	)

	rootCmd := &cobra.Command{
		Use:   "storectl",
		Short: "Inspect and exercise linkstore state",
		Long: `storectl loads state files into a linkstore and shows how they decompose.

State files are JSON objects or TOML documents. Every top-level key becomes
a state member; nested tables are reachable through deep views.

Settings are read from the nearest linkstore.toml, if any.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			if noColor {
				cfg.Color = false
			}
			if cfg.Color {
				errors.EnableColors()
			} else {
				errors.DisableColors()
			}
			a.cfg = cfg
			a.logger = cfg.NewLogger(errOut)
			return nil
		},
	}

	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to linkstore.toml (default: nearest in parent directories)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		inspectCmd(a),
		demoCmd(a),
		watchCmd(a),
		configCmd(a),
		versionCmd(a),
	)

	return rootCmd
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.LoadFromWorkingDir()
}

// success prints a success message.
func (a *app) success(format string, args ...any) {
	if a.cfg != nil && a.cfg.Color {
		fmt.Fprintf(a.out, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
		return
	}
	fmt.Fprintf(a.out, "✓ %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func (a *app) info(format string, args ...any) {
	fmt.Fprintf(a.out, "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func (a *app) warn(format string, args ...any) {
	if a.cfg != nil && a.cfg.Color {
		fmt.Fprintf(a.errOut, "\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
		return
	}
	fmt.Fprintf(a.errOut, "⚠ %s\n", fmt.Sprintf(format, args...))
}
