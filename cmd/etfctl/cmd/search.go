package cmd

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"etf_catalog/internal/feature/etfcatalog/query"
	"etf_catalog/internal/feature/watchlist"

	"github.com/spf13/cobra"
)

// searchFlags は一覧とエクスポートで共通の検索条件フラグです。
type searchFlags struct {
	term       string
	issuers    []string
	categories []string
	sort       string
	dir        string
	page       int
	pageSize   int
}

func (f *searchFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.term, "q", "q", "", "free-text search over ticker, name and issuer")
	fl.StringSliceVar(&f.issuers, "issuer", nil, "issuer filter (repeatable or comma-separated)")
	fl.StringSliceVar(&f.categories, "category", nil, "category filter (repeatable or comma-separated)")
	fl.StringVar(&f.sort, "sort", "", "sort column: "+sortKeyNames())
	fl.StringVar(&f.dir, "dir", "", "sort direction: asc or desc")
	fl.IntVar(&f.page, "page", 1, "page number (1-based)")
	fl.IntVar(&f.pageSize, "page-size", query.DefaultClientPageSize, "rows per page")
}

// state はフラグを生のパラメータに詰め、サーバーと同じ規則で正規化します。
func (f *searchFlags) state() query.State {
	v := url.Values{}
	v.Set(query.ParamTerm, f.term)
	v.Set(query.ParamIssuer, strings.Join(f.issuers, ","))
	v.Set(query.ParamCategory, strings.Join(f.categories, ","))
	v.Set(query.ParamSort, f.sort)
	v.Set(query.ParamDir, f.dir)
	v.Set(query.ParamPage, strconv.Itoa(f.page))
	v.Set(query.ParamPageSize, strconv.Itoa(f.pageSize))
	return query.Parse(v, query.DefaultClientPageSize)
}

func sortKeyNames() string {
	keys := query.SortKeys()
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, k.String())
	}
	return strings.Join(names, ", ")
}

func newListCmd(a *app) *cobra.Command {
	var (
		f         searchFlags
		watchOnly bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of the catalog",
		Long: `List one page of the catalog.

Examples:
  etfctl list --q spy
  etfctl list --issuer Vanguard,BlackRock --sort expenseBps --dir desc --page 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := f.state()
			if a.verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "query: ?%s\n", s.Values().Encode())
			}

			ctx, cancel := a.requestContext(cmd)
			defer cancel()

			res, err := a.client.List(ctx, s)
			if err != nil {
				return err
			}

			items, total := res.Items, res.Total
			if watchOnly {
				set, err := a.store.Load(ctx)
				if err != nil {
					return err
				}
				items, total = watchlist.FilterPage(items, set)
			}

			out := cmd.OutOrStdout()
			if err := writeTable(out, items); err != nil {
				return err
			}
			fmt.Fprintf(out, "page %d of %d, %d rows total\n", res.Page, pageCount(total, res.PageSize), total)
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().BoolVar(&watchOnly, "watch-only", false, "show only watchlisted rows of the fetched page")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var (
		f      searchFlags
		output string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the selected rows as CSV",
		Long: `Export the rows selected by the search flags as CSV.

The export selects exactly the rows "list" shows for the same flags.

Examples:
  etfctl export --category Semiconductors -o chips.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				file, cerr := a.createFile(output)
				if cerr != nil {
					return cerr
				}
				// Closeの失敗は書き込み済みデータの欠落を意味するのでエラーとして返す
				defer func() {
					if cerr := file.Close(); cerr != nil && err == nil {
						err = fmt.Errorf("close %s: %w", output, cerr)
					}
				}()
				w = file
			}
			if err := a.client.Export(ctx, f.state(), w); err != nil {
				return err
			}
			if w == cmd.OutOrStdout() {
				fmt.Fprintln(w)
			}
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

// pageCount は総件数とページサイズから総ページ数を求めます。最低1ページです。
func pageCount(total int64, pageSize int) int64 {
	if pageSize <= 0 || total <= 0 {
		return 1
	}
	return (total + int64(pageSize) - 1) / int64(pageSize)
}
