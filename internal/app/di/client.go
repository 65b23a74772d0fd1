package di

import (
	"etf_catalog/internal/client/catalogapi"
	infrahttp "etf_catalog/internal/platform/http"
)

// NewCatalogClient creates a fully configured catalog API client with HTTP client.
func NewCatalogClient() *catalogapi.Client {
	cfg := catalogapi.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return catalogapi.NewClient(cfg, httpClient)
}
