// internal/tracker/tracker.go
package tracker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"crypto-price-tracker/pkg/logger"
)

// Значения по умолчанию
const (
	DefaultInterval     = 180 * time.Second
	DefaultAthReference = 100000.0
)

// Этапы цикла для отчетов об ошибках
const (
	StageBitcoinFetch  = "btc_fetch"
	StageEthereumFetch = "eth_fetch"
)

// Tracker периодически опрашивает источники цен и пересчитывает метрики.
// Состояния: Idle (до Start) -> Running (после Start). Повторный Start
// игнорируется. Циклы сериализованы: тик во время выполняющегося цикла
// пропускается, а не ставится в очередь.
type Tracker struct {
	btcSource BitcoinPriceSource
	ethSource EthereumPriceSource

	interval     time.Duration
	athReference float64
	hook         DerivedHook
	observer     CycleObserver

	subscriptions *SubscriptionManager

	mu       sync.RWMutex
	state    TrackerState
	running  bool
	inFlight bool

	cycleCount   int64
	skippedCount int64
	errorCount   int64
	lastCycle    time.Time

	reportersMu sync.RWMutex
	reporters   []ErrorReporter

	stopChan     chan struct{}
	updateTicker *time.Ticker
}

// Option функция настройки трекера
type Option func(*Tracker)

func WithInterval(interval time.Duration) Option {
	return func(t *Tracker) {
		if interval > 0 {
			t.interval = interval
		}
	}
}

func WithAthReference(ath float64) Option {
	return func(t *Tracker) {
		if ath > 0 {
			t.athReference = ath
		}
	}
}

func WithDerivedHook(hook DerivedHook) Option {
	return func(t *Tracker) {
		t.hook = hook
	}
}

func WithObserver(observer CycleObserver) Option {
	return func(t *Tracker) {
		if observer != nil {
			t.observer = observer
		}
	}
}

// NewTracker создает новый трекер
func NewTracker(btcSource BitcoinPriceSource, ethSource EthereumPriceSource, options ...Option) *Tracker {
	t := &Tracker{
		btcSource:     btcSource,
		ethSource:     ethSource,
		interval:      DefaultInterval,
		athReference:  DefaultAthReference,
		observer:      noopObserver{},
		subscriptions: NewSubscriptionManager(),
		state: TrackerState{
			DerivedMetrics: DerivedMetrics{
				ChangeDirection: DirectionFlat,
			},
		},
	}

	for _, option := range options {
		option(t)
	}

	return t
}

// Start запускает периодический опрос: один цикл сразу, далее по интервалу.
// Повторный вызов во время работы игнорируется.
func (t *Tracker) Start() error {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		logger.Warn("⚠️ Трекер уже запущен, повторный Start игнорируется")
		return nil
	}
	t.running = true
	t.stopChan = make(chan struct{})
	t.updateTicker = time.NewTicker(t.interval)
	t.mu.Unlock()

	logger.Info("🚀 Трекер запущен (интервал: %s, референс ATH: $%.0f)",
		t.interval, t.athReference)

	// Первоначальный цикл
	t.RunCycle(context.Background())

	go t.cycleLoop()

	return nil
}

// cycleLoop цикл опроса по тикеру
func (t *Tracker) cycleLoop() {
	for {
		select {
		case <-t.updateTicker.C:
			t.RunCycle(context.Background())
		case <-t.stopChan:
			return
		}
	}
}

// Stop останавливает опрос
func (t *Tracker) Stop() error {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return nil
	}
	t.running = false
	close(t.stopChan)
	if t.updateTicker != nil {
		t.updateTicker.Stop()
	}
	t.mu.Unlock()

	logger.Info("🛑 Трекер остановлен")
	return nil
}

// IsRunning возвращает статус работы
func (t *Tracker) IsRunning() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.running
}

// RunCycle выполняет один цикл опроса. Возвращает false если цикл
// пропущен из-за выполняющегося предыдущего.
func (t *Tracker) RunCycle(ctx context.Context) bool {
	t.mu.Lock()
	if t.inFlight {
		t.skippedCount++
		t.mu.Unlock()
		t.observer.TickSkipped()
		logger.Warn("⏭ Тик пропущен: предыдущий цикл еще выполняется")
		return false
	}
	t.inFlight = true
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.inFlight = false
		t.mu.Unlock()
	}()

	t.runCycle(ctx)
	return true
}

// runCycle один цикл: BTC -> ETH -> производные метрики -> уведомления.
// Шаги последовательные: отношение eth/btc считается по самой свежей
// доступной цене биткоина.
func (t *Tracker) runCycle(ctx context.Context) {
	cycleID := uuid.NewString()
	start := time.Now()

	// Шаг 1: цена биткоина и метрики изменения
	btcPrice, err := t.btcSource.GetBitcoinPrice(ctx)
	t.observer.FetchCompleted("bitcoin", err)
	if err != nil {
		t.reportError(cycleID, StageBitcoinFetch, err)
	} else {
		t.applyBitcoinPrice(btcPrice)
	}

	// Шаг 2: цена Ethereum и отношение eth/btc.
	// Ошибка шага 1 не прерывает цикл: отношение считается по прежней цене.
	ethPrice, err := t.ethSource.GetEthereumPrice(ctx)
	t.observer.FetchCompleted("ethereum", err)
	if err != nil {
		t.reportError(cycleID, StageEthereumFetch, err)
	} else {
		t.applyEthereumPrice(ethPrice)
	}

	// Шаг 3: точка расширения и фиксация цикла
	t.mu.Lock()
	if t.hook != nil {
		t.hook(&t.state)
	}
	t.state.LastUpdate = time.Now()
	t.cycleCount++
	t.lastCycle = t.state.LastUpdate
	stateCopy := t.state
	t.mu.Unlock()

	t.subscriptions.NotifyAll(stateCopy)
	t.observer.CycleCompleted(stateCopy, time.Since(start))

	logger.PriceUpdate(string(stateCopy.ChangeDirection), stateCopy.BitcoinPriceUSD,
		stateCopy.ChangePercentage, stateCopy.AthPercentage, stateCopy.EthBtcRatio)
}

// applyBitcoinPrice обновляет цену биткоина и производные от нее метрики
func (t *Tracker) applyBitcoinPrice(price float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	previous := t.state.BitcoinPriceUSD
	if previous > 0 {
		direction, percentage := ComputeChange(price, previous)
		t.state.PreviousBitcoinPriceUSD = previous
		t.state.ChangeDirection = direction
		t.state.ChangePercentage = percentage
	} else {
		// Нет валидной предыдущей цены: метрики изменения нейтральные
		t.state.ChangeDirection = DirectionFlat
		t.state.ChangePercentage = 0
	}

	t.state.BitcoinPriceUSD = price
	t.state.AthPercentage = ComputeAthPercentage(price, t.athReference)
}

// applyEthereumPrice обновляет цену Ethereum и отношение eth/btc
func (t *Tracker) applyEthereumPrice(price float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.EthereumPriceUSD = price

	// Без цены биткоина отношение недоступно, прежнее значение сохраняется
	ratio, ok := ComputeRatio(price, t.state.BitcoinPriceUSD)
	if !ok {
		logger.Warn("⚠️ Отношение eth/btc недоступно: нет цены биткоина")
		return
	}
	t.state.EthBtcRatio = ratio
}

// reportError логирует ошибку и рассылает отчет приемникам
func (t *Tracker) reportError(cycleID, stage string, err error) {
	t.mu.Lock()
	t.errorCount++
	t.mu.Unlock()

	report := ErrorReport{
		ID:        uuid.NewString(),
		CycleID:   cycleID,
		Stage:     stage,
		Err:       err,
		Timestamp: time.Now(),
	}

	logger.Error("❌ Ошибка %s (цикл %s): %v", stage, cycleID, err)

	t.reportersMu.RLock()
	reporters := make([]ErrorReporter, len(t.reporters))
	copy(reporters, t.reporters)
	t.reportersMu.RUnlock()

	for _, reporter := range reporters {
		reporter.OnFetchError(report)
	}
}

// State возвращает копию текущего состояния
func (t *Tracker) State() TrackerState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// Subscribe подписывает на обновления состояния
func (t *Tracker) Subscribe(subscriber Subscriber) {
	t.subscriptions.Subscribe(subscriber)
}

// Unsubscribe отписывает от обновлений состояния
func (t *Tracker) Unsubscribe(subscriber Subscriber) {
	t.subscriptions.Unsubscribe(subscriber)
}

// AddErrorReporter добавляет приемник отчетов об ошибках
func (t *Tracker) AddErrorReporter(reporter ErrorReporter) {
	t.reportersMu.Lock()
	defer t.reportersMu.Unlock()
	t.reporters = append(t.reporters, reporter)
}

// GetStats возвращает статистику
func (t *Tracker) GetStats() map[string]interface{} {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return map[string]interface{}{
		"running":       t.running,
		"in_flight":     t.inFlight,
		"cycles":        t.cycleCount,
		"skipped_ticks": t.skippedCount,
		"fetch_errors":  t.errorCount,
		"last_cycle":    t.lastCycle,
		"interval":      t.interval.String(),
		"ath_reference": t.athReference,
		"subscribers":   t.subscriptions.GetSubscriberCount(),
	}
}

// String описание трекера для отладки
func (t *Tracker) String() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return fmt.Sprintf("Tracker{running: %v, cycles: %d, interval: %s}",
		t.running, t.cycleCount, t.interval)
}

// noopObserver наблюдатель по умолчанию
type noopObserver struct{}

func (noopObserver) FetchCompleted(source string, err error) {}

func (noopObserver) CycleCompleted(state TrackerState, elapsed time.Duration) {}

func (noopObserver) TickSkipped() {}
