package main

import (
	"io"
	"os"

	"github.com/graeme-hill/calcstuff-go/lib"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

type options struct {
	configFile string
	logLevel   string
	maxDepth   int
}

// app is what every subcommand needs once flags and config are resolved.
type app struct {
	cfg       lib.Config
	logger    zerolog.Logger
	evaluator *lib.Evaluator
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "calc",
		Short: "Evaluate arithmetic expressions",
		Long: `Calc evaluates arithmetic expressions built from numbers, parentheses and
the operators + - * / // % **.

Results can be recorded in a Postgres history table when history.dsn is
configured.`,
		Version:       version + " (" + commit + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Configuration file (TOML)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().IntVar(&opts.maxDepth, "max-depth", 0, "maximum nesting depth of an expression")

	rootCmd.AddCommand(
		newEvalCmd(opts),
		newReplCmd(opts),
		newHistoryCmd(opts),
		newMigrateCmd(opts),
	)

	return rootCmd
}

func newApp(opts *options, stderr io.Writer) (*app, error) {
	cfg, err := lib.LoadConfig(opts.configFile)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.maxDepth > 0 {
		cfg.MaxDepth = opts.maxDepth
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr}).
		With().Timestamp().Str("service", "calc").Logger().
		Level(level)

	return &app{
		cfg:       cfg,
		logger:    logger,
		evaluator: lib.NewEvaluator(cfg, logger),
	}, nil
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
