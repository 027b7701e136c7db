package main

import (
	"context"
	"fmt"

	"github.com/graeme-hill/calcstuff-go/lib"
	"github.com/spf13/cobra"
)

// recorder is the part of *lib.History the commands use.
type recorder interface {
	Record(ctx context.Context, expr string, value float64, evalErr error) (lib.Entry, error)
}

func newEvalCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "eval EXPR...",
		Short: "Evaluate each argument and print one result per line",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			rec, closeHistory, err := a.openRecorder(ctx)
			if err != nil {
				return err
			}
			defer closeHistory()

			failed := 0
			for _, expr := range args {
				if !a.evalOne(ctx, cmd, rec, expr) {
					failed++
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d expressions failed", failed, len(args))
			}
			return nil
		},
	}
}

// evalOne prints the result of expr to stdout or its error to stderr, and
// reports whether evaluation succeeded.
func (a *app) evalOne(ctx context.Context, cmd *cobra.Command, rec recorder, expr string) bool {
	v, evalErr := a.evaluator.Evaluate(expr)

	if rec != nil {
		if _, err := rec.Record(ctx, expr, v, evalErr); err != nil {
			a.logger.Warn().Err(err).Msg("history not recorded")
		}
	}

	if evalErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %s\n", evalErr)
		return false
	}
	fmt.Fprintln(cmd.OutOrStdout(), a.cfg.FormatResult(v))
	return true
}

// openRecorder returns a nil recorder when history is not configured.
func (a *app) openRecorder(ctx context.Context) (recorder, func(), error) {
	if a.cfg.History.DSN == "" {
		return nil, func() {}, nil
	}

	h, err := lib.OpenHistory(ctx, a.cfg.History.DSN)
	if err != nil {
		return nil, nil, err
	}
	return h, func() {
		if err := h.Close(); err != nil {
			a.logger.Warn().Err(err).Msg("failed to close history")
		}
	}, nil
}
