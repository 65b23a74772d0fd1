package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	watch := &cobra.Command{
		Use:   "watch",
		Short: "Manage the local watchlist",
		Long: `Manage the local watchlist.

The watchlist is stored on this machine only. "list --watch-only" filters the fetched page by it.`,
	}

	add := &cobra.Command{
		Use:   "add TICKER...",
		Short: "Add tickers to the watchlist",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()

			set, err := a.store.Load(ctx)
			if err != nil {
				return err
			}
			for _, t := range args {
				set.Add(t)
			}
			if err := a.store.Save(ctx, set); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d tickers on watchlist\n", len(set))
			return nil
		},
	}

	remove := &cobra.Command{
		Use:     "remove TICKER...",
		Aliases: []string{"rm"},
		Short:   "Remove tickers from the watchlist",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()

			set, err := a.store.Load(ctx)
			if err != nil {
				return err
			}
			for _, t := range args {
				set.Remove(t)
			}
			if err := a.store.Save(ctx, set); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d tickers on watchlist\n", len(set))
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Print the watchlist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()

			set, err := a.store.Load(ctx)
			if err != nil {
				return err
			}
			for _, t := range set.Tickers() {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}

	watch.AddCommand(add, remove, list)
	return watch
}
