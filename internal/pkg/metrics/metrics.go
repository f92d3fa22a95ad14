package metrics

import (
	"wallet_view/internal/domain/entity"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder implements port.MetricsRecorder with Prometheus collectors.
type Recorder struct {
	pipelineRuns     prometheus.Counter
	rowsEmitted      prometheus.Counter
	balancesExcluded *prometheus.CounterVec
	unpricedRows     prometheus.Counter
	priceRefreshes   *prometheus.CounterVec
	pricedCurrencies prometheus.Gauge
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		pipelineRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wallet_view",
			Name:      "pipeline_runs_total",
			Help:      "Number of wallet row pipeline runs.",
		}),
		rowsEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wallet_view",
			Name:      "rows_emitted_total",
			Help:      "Number of wallet rows produced.",
		}),
		balancesExcluded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wallet_view",
			Name:      "balances_excluded_total",
			Help:      "Number of balances dropped by the filter, by reason.",
		}, []string{"reason"}),
		unpricedRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wallet_view",
			Name:      "unpriced_rows_total",
			Help:      "Number of rows emitted without a usable price.",
		}),
		priceRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wallet_view",
			Name:      "price_refreshes_total",
			Help:      "Price feed refresh attempts, by result.",
		}, []string{"result"}),
		pricedCurrencies: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "wallet_view",
			Name:      "priced_currencies",
			Help:      "Currencies in the last successfully refreshed price table.",
		}),
	}
	reg.MustRegister(
		r.pipelineRuns,
		r.rowsEmitted,
		r.balancesExcluded,
		r.unpricedRows,
		r.priceRefreshes,
		r.pricedCurrencies,
	)
	return r
}

// ObserveWalletRows records the outcome of one pipeline run.
func (r *Recorder) ObserveWalletRows(result entity.WalletRows) {
	r.pipelineRuns.Inc()
	r.rowsEmitted.Add(float64(len(result.Rows)))
	for reason, count := range result.Excluded {
		r.balancesExcluded.WithLabelValues(string(reason)).Add(float64(count))
	}
	for _, row := range result.Rows {
		if !row.PriceAvailable {
			r.unpricedRows.Inc()
		}
	}
}

// ObservePriceRefresh records a price feed refresh attempt.
func (r *Recorder) ObservePriceRefresh(success bool, currencies int) {
	if !success {
		r.priceRefreshes.WithLabelValues("failure").Inc()
		return
	}
	r.priceRefreshes.WithLabelValues("success").Inc()
	r.pricedCurrencies.Set(float64(currencies))
}
