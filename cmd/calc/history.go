package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/graeme-hill/calcstuff-go/lib"
	"github.com/spf13/cobra"
)

var errNoHistory = errors.New("history is not configured: set history.dsn or CALC_HISTORY_DSN")

func newHistoryCmd(opts *options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently evaluated expressions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if a.cfg.History.DSN == "" {
				return errNoHistory
			}
			if limit < 1 {
				return fmt.Errorf("limit must be positive, got %d", limit)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			h, err := lib.OpenHistory(ctx, a.cfg.History.DSN)
			if err != nil {
				return err
			}
			defer h.Close()

			entries, err := h.Recent(ctx, limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.EvaluatedAt.Local().Format(time.RFC3339), e.Expression, formatOutcome(a.cfg, e))
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "number of entries to show")
	return cmd
}

func formatOutcome(cfg lib.Config, e lib.Entry) string {
	if e.Result != nil {
		return cfg.FormatResult(*e.Result)
	}
	return fmt.Sprintf("%s: %s", e.ErrorKind, e.ErrorMessage)
}
