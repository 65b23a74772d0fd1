package cmd

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"etf_catalog/internal/feature/etfcatalog/transport/http/dto"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// placeholder は欠損値の表示です。
const placeholder = "—"

func writeTable(w io.Writer, items []dto.ETFItem) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TICKER\tNAME\tISSUER\tCATEGORY\tEXPENSE (BPS)\tAUM ($)\tINCEPTION")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			it.Ticker, it.Name, str(it.Issuer), str(it.Category), bps(it.ExpenseBps), usd(it.AumUSD), day(it.InceptionDate))
	}
	return tw.Flush()
}

func writeDetail(w io.Writer, it dto.ETFItem) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Ticker\t%s\n", it.Ticker)
	fmt.Fprintf(tw, "Name\t%s\n", it.Name)
	fmt.Fprintf(tw, "Issuer\t%s\n", str(it.Issuer))
	fmt.Fprintf(tw, "Category\t%s\n", str(it.Category))
	fmt.Fprintf(tw, "Expense (bps)\t%s\n", bps(it.ExpenseBps))
	fmt.Fprintf(tw, "AUM ($)\t%s\n", usd(it.AumUSD))
	fmt.Fprintf(tw, "Inception\t%s\n", day(it.InceptionDate))
	return tw.Flush()
}

func str(s *string) string {
	if s == nil {
		return placeholder
	}
	return *s
}

func bps(n *int) string {
	if n == nil {
		return placeholder
	}
	return strconv.Itoa(*n)
}

// usd は金額を英語ロケールの桁区切りで整形します。
func usd(n *int64) string {
	if n == nil {
		return placeholder
	}
	return message.NewPrinter(language.English).Sprintf("%d", *n)
}

// day はISO形式の日時から日付部分を取り出します。
func day(s *string) string {
	if s == nil || *s == "" {
		return placeholder
	}
	if len(*s) >= 10 {
		return (*s)[:10]
	}
	return *s
}
