package observ

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TransactionsCommitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "register_transactions_committed_total",
			Help: "Total number of committed checkouts",
		},
	)

	CheckoutRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "register_checkout_rejections_total",
			Help: "Tender attempts rejected before commit",
		},
		[]string{"reason"},
	)

	LedgerWriteFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "register_ledger_write_failures_total",
			Help: "Ledger append failures by target file",
		},
		[]string{"target"},
	)
)

// StartServer exposes /metrics on addr in the background and returns a
// stop func. The register itself stays usable if the listener dies.
func StartServer(addr string, log *slog.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics listener stopped", "addr", addr, "err", err)
		}
	}()
	return func() { _ = srv.Close() }
}
