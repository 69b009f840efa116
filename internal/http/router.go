package http

import (
	"net/http"

	"log-analyzer/internal/shared/loggers"
	"log-analyzer/internal/shared/metrics"
	"log-analyzer/internal/stores"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(reportStore stores.ReportStore, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	// Initialize handlers
	listReportsHandler := NewListReportsHandler(reportStore)
	reportPageHandler := NewReportPageHandler(reportStore)
	reportTableHandler := NewReportTableHandler(reportStore)
	assetHandler := NewAssetHandler(reportStore)

	// Routes. Assets share the /reports prefix so the relative script path of a page resolves;
	// the regexp segment is matched before the plain {date} segment.
	router.Get("/reports", errorHandlingAdapter(listReportsHandler))
	router.Get("/reports/{"+paramAsset+`:[A-Za-z0-9_-]+\.js}`, errorHandlingAdapter(assetHandler))
	router.Get("/reports/{"+paramDate+"}", errorHandlingAdapter(reportPageHandler))
	router.Get("/reports/{"+paramDate+"}/table", errorHandlingAdapter(reportTableHandler))
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
