package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type TransactionRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

type ReportRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

type AdminRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

func New(
	transactionController TransactionRouteRegistrar,
	reportController ReportRouteRegistrar,
	adminController AdminRouteRegistrar,
	authMiddleware func(http.Handler) http.Handler,
	metricsGatherer prometheus.Gatherer,
) *http.ServeMux {
	mux := http.NewServeMux()

	if transactionController != nil {
		transactionController.RegisterRoutes(mux, authMiddleware)
	}
	if reportController != nil {
		reportController.RegisterRoutes(mux, authMiddleware)
	}
	if adminController != nil {
		adminController.RegisterRoutes(mux, authMiddleware)
	}

	if metricsGatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(metricsGatherer, promhttp.HandlerOpts{}))
	}

	return mux
}
