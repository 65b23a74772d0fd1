// Package cmd はetfctlのサブコマンドを定義します。
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"etf_catalog/internal/app/di"
	"etf_catalog/internal/client/catalogapi"
	"etf_catalog/internal/feature/watchlist"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// app はサブコマンドが共有する依存関係です。未設定の項目は環境変数から組み立てます。
type app struct {
	client  *catalogapi.Client
	store   watchlist.Store
	timeout time.Duration
	verbose bool
	// create は出力ファイルを開きます。nilならos.Createを使います。
	create func(name string) (io.WriteCloser, error)
}

func (a *app) createFile(name string) (io.WriteCloser, error) {
	if a.create != nil {
		return a.create(name)
	}
	return os.Create(name)
}

// NewRootCmd は環境変数から設定を読み込むルートコマンドを返します。
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "etfctl",
		Short: "ETF catalog CLI",
		Long: `ETF catalog CLI

Search, filter, sort and export the ETF catalog served by the catalog API.
Every command sends exactly one request, using the same query parameters as the web listing.

Environment:
    ETF_API_URL           base URL of the API (default http://localhost:8080)
    ETF_WATCHLIST_PATH    watchlist file (default <user config dir>/etfctl/watchlist.json)
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 15*time.Second, "request timeout")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newListCmd(a),
		newExportCmd(a),
		newShowCmd(a),
		newCompareCmd(a),
		newFacetCmd(a, "issuers", "List issuers", func(ctx context.Context) ([]string, error) { return a.client.Issuers(ctx) }),
		newFacetCmd(a, "categories", "List categories", func(ctx context.Context) ([]string, error) { return a.client.Categories(ctx) }),
		newWatchCmd(a),
	)
	return root
}

// init は.envを読み込み、未注入の依存関係を生成します。
func (a *app) init(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && a.verbose {
		fmt.Fprintln(cmd.ErrOrStderr(), "Warning: .env file not found, using environment variables")
	}
	if a.client == nil {
		a.client = di.NewCatalogClient()
	}
	if a.store == nil {
		path, err := watchlist.DefaultPath()
		if err != nil {
			return err
		}
		a.store = watchlist.NewFileStore(path)
	}
	return nil
}

// requestContext はコマンドのコンテキストにタイムアウトを付けます。
func (a *app) requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if a.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.timeout)
}
