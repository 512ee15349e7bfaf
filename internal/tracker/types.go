// internal/tracker/types.go
package tracker

import (
	"context"
	"time"
)

// Направление изменения цены
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionFlat Direction = "flat"
)

// PriceSnapshot снимок цен за цикл
type PriceSnapshot struct {
	BitcoinPriceUSD         float64 `json:"bitcoin_price_usd"`
	PreviousBitcoinPriceUSD float64 `json:"previous_bitcoin_price_usd"` // 0 = нет предыдущей цены
	EthereumPriceUSD        float64 `json:"ethereum_price_usd"`
}

// DerivedMetrics производные метрики, пересчитываются целиком каждый цикл
type DerivedMetrics struct {
	AthPercentage    float64   `json:"ath_percentage"` // может превышать 100
	ChangeDirection  Direction `json:"change_direction"`
	ChangePercentage float64   `json:"change_percentage"` // со знаком
	EthBtcRatio      float64   `json:"eth_btc_ratio"`
}

// TrackerState полное наблюдаемое состояние трекера
type TrackerState struct {
	PriceSnapshot
	DerivedMetrics
	LastUpdate time.Time `json:"last_update"`
}

// BitcoinPriceSource источник цены биткоина
type BitcoinPriceSource interface {
	GetBitcoinPrice(ctx context.Context) (float64, error)
}

// EthereumPriceSource источник цены Ethereum
type EthereumPriceSource interface {
	GetEthereumPrice(ctx context.Context) (float64, error)
}

// DerivedHook точка расширения для дополнительных производных метрик.
// Вызывается в конце цикла под блокировкой состояния.
type DerivedHook func(state *TrackerState)

// CycleObserver наблюдатель за циклами опроса (используется для метрик)
type CycleObserver interface {
	FetchCompleted(source string, err error)
	CycleCompleted(state TrackerState, elapsed time.Duration)
	TickSkipped()
}

// ErrorReport отчет об ошибке получения данных
type ErrorReport struct {
	ID        string    `json:"id"`
	CycleID   string    `json:"cycle_id"`
	Stage     string    `json:"stage"` // "btc_fetch" или "eth_fetch"
	Err       error     `json:"-"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorReporter приемник отчетов об ошибках цикла
type ErrorReporter interface {
	OnFetchError(report ErrorReport)
}

// ErrorReporterFunc функциональный тип приемника ошибок
type ErrorReporterFunc func(report ErrorReport)

func (f ErrorReporterFunc) OnFetchError(report ErrorReport) {
	f(report)
}
