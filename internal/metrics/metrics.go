// internal/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"crypto-price-tracker/internal/tracker"
)

// Recorder публикует состояние трекера в Prometheus.
// Реализует tracker.CycleObserver.
type Recorder struct {
	btcPrice      prometheus.Gauge
	ethPrice      prometheus.Gauge
	athPercentage prometheus.Gauge
	changePercent prometheus.Gauge
	ethBtcRatio   prometheus.Gauge

	fetchTotal    *prometheus.CounterVec
	ticksSkipped  prometheus.Counter
	cycleDuration prometheus.Summary
	lastCycleTS   prometheus.Gauge
}

// NewRecorder создает рекордер и регистрирует метрики.
// При reg == nil используется глобальный регистратор.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	r := &Recorder{
		btcPrice: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tracker",
			Name:      "bitcoin_price_usd",
			Help:      "Current Bitcoin price in USD",
		}),
		ethPrice: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tracker",
			Name:      "ethereum_price_usd",
			Help:      "Current Ethereum price in USD",
		}),
		athPercentage: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tracker",
			Name:      "ath_percentage",
			Help:      "Bitcoin price as a percentage of the reference all-time high",
		}),
		changePercent: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tracker",
			Name:      "change_percentage",
			Help:      "Signed Bitcoin price change since the previous cycle",
		}),
		ethBtcRatio: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tracker",
			Name:      "eth_btc_ratio",
			Help:      "Ethereum price divided by Bitcoin price",
		}),
		fetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tracker",
			Name:      "fetch_total",
			Help:      "Number of fetch attempts by source and status",
		}, []string{"source", "status"}),
		ticksSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tracker",
			Name:      "ticks_skipped_total",
			Help:      "Number of timer ticks skipped because a cycle was in flight",
		}),
		cycleDuration: prometheus.NewSummary(prometheus.SummaryOpts{
			Namespace: "tracker",
			Name:      "cycle_duration_seconds",
			Help:      "Time spent on one fetch-and-recompute cycle",
		}),
		lastCycleTS: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tracker",
			Name:      "last_cycle_timestamp_seconds",
			Help:      "Unix timestamp of the last completed cycle",
		}),
	}

	reg.MustRegister(
		r.btcPrice, r.ethPrice, r.athPercentage, r.changePercent, r.ethBtcRatio,
		r.fetchTotal, r.ticksSkipped, r.cycleDuration, r.lastCycleTS,
	)

	return r
}

// FetchCompleted учитывает попытку запроса к источнику
func (r *Recorder) FetchCompleted(source string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.fetchTotal.WithLabelValues(source, status).Inc()
}

// CycleCompleted публикует состояние после завершения цикла
func (r *Recorder) CycleCompleted(state tracker.TrackerState, elapsed time.Duration) {
	if state.BitcoinPriceUSD > 0 {
		r.btcPrice.Set(state.BitcoinPriceUSD)
	}
	if state.EthereumPriceUSD > 0 {
		r.ethPrice.Set(state.EthereumPriceUSD)
	}
	r.athPercentage.Set(state.AthPercentage)
	r.changePercent.Set(state.ChangePercentage)
	r.ethBtcRatio.Set(state.EthBtcRatio)

	r.cycleDuration.Observe(elapsed.Seconds())
	r.lastCycleTS.Set(float64(time.Now().Unix()))
}

// TickSkipped учитывает пропущенный тик
func (r *Recorder) TickSkipped() {
	r.ticksSkipped.Inc()
}
