package usecase

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"etf_catalog/internal/feature/etfcatalog/domain/entity"
	"etf_catalog/internal/feature/etfcatalog/query"
)

// ExportHeader is the fixed header row of the CSV export.
var ExportHeader = []string{"Ticker", "Name", "Issuer", "Category", "Expense (bps)", "AUM ($)", "Inception"}

// ExportUsecase renders the rows selected by a query as CSV.
type ExportUsecase struct {
	reader CatalogReader
}

// NewExportUsecase creates an ExportUsecase over the given reader.
func NewExportUsecase(reader CatalogReader) *ExportUsecase {
	return &ExportUsecase{reader: reader}
}

// Export compiles params with the export page size and writes the selected rows to w.
// Records are separated by a single "\n" with no trailing newline.
func (u *ExportUsecase) Export(ctx context.Context, params url.Values, w io.Writer) error {
	_, plan := query.Compile(params, query.DefaultExportPageSize)

	items, err := u.reader.Find(ctx, plan)
	if err != nil {
		return fmt.Errorf("export etfs: %w", err)
	}

	var b strings.Builder
	writeRecord(&b, ExportHeader)
	for _, e := range items {
		b.WriteByte('\n')
		writeRecord(&b, exportRecord(e))
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// exportRecord flattens one ETF into the export columns. Absent fields become "".
func exportRecord(e entity.ETF) []string {
	rec := []string{e.Ticker, e.Name, "", "", "", "", ""}
	if e.Issuer != nil {
		rec[2] = *e.Issuer
	}
	if e.Category != nil {
		rec[3] = *e.Category
	}
	if e.ExpenseBps != nil {
		rec[4] = strconv.Itoa(*e.ExpenseBps)
	}
	if e.AumUSD != nil {
		rec[5] = strconv.FormatInt(*e.AumUSD, 10)
	}
	if e.InceptionDate != nil {
		rec[6] = e.InceptionDate.UTC().Format("2006-01-02")
	}
	return rec
}

func writeRecord(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(escapeCSVField(f))
	}
}

// escapeCSVField quotes a field that contains a delimiter, a line break or a quote,
// doubling inner quotes. Any other field is emitted bare.
func escapeCSVField(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
