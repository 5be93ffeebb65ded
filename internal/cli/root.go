// Package cli implements the declscope command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"declscope/internal/config"
	"declscope/internal/index"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "declscope",
	Short: "Index and query the exported API surface of a TypeScript source tree",
	Long: `declscope parses a TypeScript source tree into an index of exported
declarations (interfaces, type aliases, enums, functions, classes, variables,
namespaces and re-exports) and answers structured queries about it: exact and
fuzzy lookup, inheritance hierarchy, per-module statistics and dependency
aggregation.

The index is served to LLM coding assistants over the Model Context Protocol
(see "declscope mcp") or queried directly from the shell.`,
	Version:      Version,
	SilenceUsage: true,
}

// Execute runs the root command. It is called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.declscope.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads and validates the configuration for a command run.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the process logger. Stdout stays reserved for command
// output (and the MCP transport), so logs go to stderr.
func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().
		Logger()
}

// newEngine constructs the index engine from a validated configuration.
func newEngine(cfg *config.Config, log zerolog.Logger, opts ...index.Option) *index.Engine {
	base := []index.Option{
		index.WithIgnorePatterns(cfg.Source.Ignore),
		index.WithLogger(log),
	}
	return index.New(cfg.Source.Root, append(base, opts...)...)
}
