package usecase_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"net/url"
	"strings"
	"testing"

	"etf_catalog/internal/feature/etfcatalog/domain/entity"
	"etf_catalog/internal/feature/etfcatalog/query"
	"etf_catalog/internal/feature/etfcatalog/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExportUsecase_Export はCSVのヘッダーと行が正しく出力されることを検証します。
func TestExportUsecase_Export(t *testing.T) {
	t.Parallel()

	reader := &mockCatalogReader{
		FindFunc: func(ctx context.Context, plan query.Plan) ([]entity.ETF, error) {
			return sampleETFs(), nil
		},
	}
	uc := usecase.NewExportUsecase(reader)

	var buf bytes.Buffer
	err := uc.Export(context.Background(), url.Values{}, &buf)
	require.NoError(t, err)

	expected := "Ticker,Name,Issuer,Category,Expense (bps),AUM ($),Inception\n" +
		"QQQ,Invesco QQQ Trust,Invesco,Large Growth,20,250000000000,1999-03-10\n" +
		"SPY,SPDR S&P 500 ETF Trust,State Street,Large Blend,9,500000000000,1993-01-22"
	assert.Equal(t, expected, buf.String())
}

// TestExportUsecase_Export_DefaultPageSize はエクスポートのデフォルトページサイズが10であり、件数取得を行わないことを検証します。
func TestExportUsecase_Export_DefaultPageSize(t *testing.T) {
	t.Parallel()

	reader := &mockCatalogReader{}
	uc := usecase.NewExportUsecase(reader)

	require.NoError(t, uc.Export(context.Background(), url.Values{}, &bytes.Buffer{}))
	require.NoError(t, uc.Export(context.Background(), url.Values{"pageSize": {"500"}, "page": {"2"}}, &bytes.Buffer{}))

	require.Len(t, reader.findPlans, 2)
	assert.Equal(t, 10, reader.findPlans[0].Take)
	assert.Equal(t, 0, reader.findPlans[0].Skip)
	assert.Equal(t, 500, reader.findPlans[1].Take)
	assert.Equal(t, 500, reader.findPlans[1].Skip)
	assert.Empty(t, reader.countPreds, "export must not count")
}

// TestExportUsecase_Export_EmptyFields は欠損フィールドが空文字として出力されることを検証します。
func TestExportUsecase_Export_EmptyFields(t *testing.T) {
	t.Parallel()

	reader := &mockCatalogReader{
		FindFunc: func(ctx context.Context, plan query.Plan) ([]entity.ETF, error) {
			return []entity.ETF{{ID: "x", Ticker: "NEW", Name: "Brand New Fund"}}, nil
		},
	}
	uc := usecase.NewExportUsecase(reader)

	var buf bytes.Buffer
	require.NoError(t, uc.Export(context.Background(), url.Values{}, &buf))

	lines := strings.Split(buf.String(), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "NEW,Brand New Fund,,,,,", lines[1])
}

// TestExportUsecase_Export_NoRows は結果が0件の場合にヘッダーのみ出力されることを検証します。
func TestExportUsecase_Export_NoRows(t *testing.T) {
	t.Parallel()

	uc := usecase.NewExportUsecase(&mockCatalogReader{})

	var buf bytes.Buffer
	require.NoError(t, uc.Export(context.Background(), url.Values{"q": {"zzz"}}, &buf))
	assert.Equal(t, "Ticker,Name,Issuer,Category,Expense (bps),AUM ($),Inception", buf.String())
}

// TestExportUsecase_Export_Escaping はカンマ・引用符・改行を含む値がエスケープされ、標準CSVリーダーで元の値に戻ることを検証します。
func TestExportUsecase_Export_Escaping(t *testing.T) {
	t.Parallel()

	tricky := []entity.ETF{
		{Ticker: "AAA", Name: `Fund, "Special" Edition`, Issuer: strPtr("Line\nBreak Capital"), Category: strPtr(" leading space")},
		{Ticker: "BBB", Name: `He said "hi"`, Issuer: strPtr("Carriage\rReturn"), Category: strPtr("plain")},
	}
	reader := &mockCatalogReader{
		FindFunc: func(ctx context.Context, plan query.Plan) ([]entity.ETF, error) {
			return tricky, nil
		},
	}
	uc := usecase.NewExportUsecase(reader)

	var buf bytes.Buffer
	require.NoError(t, uc.Export(context.Background(), url.Values{}, &buf))

	assert.Contains(t, buf.String(), `"Fund, ""Special"" Edition"`)
	assert.Contains(t, buf.String(), ", leading space,", "values without special characters stay bare")
	assert.Contains(t, buf.String(), ",plain,")

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, usecase.ExportHeader, records[0])
	assert.Equal(t, `Fund, "Special" Edition`, records[1][1])
	assert.Equal(t, "Line\nBreak Capital", records[1][2])
	assert.Equal(t, `He said "hi"`, records[2][1])
	assert.Equal(t, "Carriage\rReturn", records[2][2])
	assert.Equal(t, "plain", records[2][3])
}

// TestExportUsecase_Export_ReaderError はリーダーのエラーが伝播され、何も書き込まれないことを検証します。
func TestExportUsecase_Export_ReaderError(t *testing.T) {
	t.Parallel()

	dbErr := errors.New("database connection failed")
	reader := &mockCatalogReader{
		FindFunc: func(ctx context.Context, plan query.Plan) ([]entity.ETF, error) {
			return nil, dbErr
		},
	}
	uc := usecase.NewExportUsecase(reader)

	var buf bytes.Buffer
	err := uc.Export(context.Background(), url.Values{}, &buf)

	assert.ErrorIs(t, err, dbErr)
	assert.Zero(t, buf.Len())
}
