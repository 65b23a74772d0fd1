package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"etf_catalog/internal/feature/etfcatalog/domain"

	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show TICKER",
		Short: "Show one ETF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()

			it, err := a.client.Get(ctx, args[0])
			if errors.Is(err, domain.ErrETFNotFound) {
				return fmt.Errorf("%s: %w", strings.ToUpper(strings.TrimSpace(args[0])), err)
			}
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if err := writeDetail(out, it); err != nil {
				return err
			}
			if a.store != nil {
				if set, err := a.store.Load(ctx); err == nil && set.Has(it.Ticker) {
					fmt.Fprintln(out, "★ on watchlist")
				}
			}
			return nil
		},
	}
}

func newCompareCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compare TICKER...",
		Short: "Compare up to 12 ETFs side by side",
		Long: `Compare up to 12 ETFs side by side.

Tickers may be given as separate arguments or comma-separated. Unknown tickers are skipped.

Examples:
  etfctl compare QQQ SPY
  etfctl compare QQQ,SPY,VTI`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()

			res, err := a.client.Compare(ctx, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "tickers: %s\n", strings.Join(res.Tickers, ", "))
			if len(res.Items) == 0 {
				fmt.Fprintln(out, "no matching ETFs")
				return nil
			}
			return writeTable(out, res.Items)
		},
	}
}

func newFacetCmd(a *app, use, short string, fetch func(ctx context.Context) ([]string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()

			values, err := fetch(ctx)
			if err != nil {
				return err
			}
			for _, v := range values {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	}
}
