// internal/tracker/tracker_test.go
package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Функциональные источники цен для тестов

type btcSourceFunc func(ctx context.Context) (float64, error)

func (f btcSourceFunc) GetBitcoinPrice(ctx context.Context) (float64, error) { return f(ctx) }

type ethSourceFunc func(ctx context.Context) (float64, error)

func (f ethSourceFunc) GetEthereumPrice(ctx context.Context) (float64, error) { return f(ctx) }

func staticBTC(price float64) btcSourceFunc {
	return func(ctx context.Context) (float64, error) { return price, nil }
}

func staticETH(price float64) ethSourceFunc {
	return func(ctx context.Context) (float64, error) { return price, nil }
}

func failingBTC(err error) btcSourceFunc {
	return func(ctx context.Context) (float64, error) { return 0, err }
}

func failingETH(err error) ethSourceFunc {
	return func(ctx context.Context) (float64, error) { return 0, err }
}

func TestRunCycle_FirstCycle(t *testing.T) {
	tr := NewTracker(staticBTC(60000), staticETH(3000))

	ok := tr.RunCycle(context.Background())
	require.True(t, ok)

	state := tr.State()
	assert.Equal(t, 60000.0, state.BitcoinPriceUSD)
	assert.Equal(t, 0.0, state.PreviousBitcoinPriceUSD)
	assert.Equal(t, 3000.0, state.EthereumPriceUSD)
	assert.Equal(t, DirectionFlat, state.ChangeDirection)
	assert.Equal(t, 0.0, state.ChangePercentage)
	assert.InDelta(t, 60.0, state.AthPercentage, 1e-9)
	assert.InDelta(t, 0.05, state.EthBtcRatio, 1e-9)
	assert.False(t, state.LastUpdate.IsZero())
}

func TestRunCycle_PriceDown(t *testing.T) {
	prices := []float64{60000, 50000}
	calls := 0
	btc := btcSourceFunc(func(ctx context.Context) (float64, error) {
		price := prices[calls]
		calls++
		return price, nil
	})

	tr := NewTracker(btc, staticETH(3000))
	tr.RunCycle(context.Background())
	tr.RunCycle(context.Background())

	state := tr.State()
	assert.Equal(t, 50000.0, state.BitcoinPriceUSD)
	assert.Equal(t, 60000.0, state.PreviousBitcoinPriceUSD)
	assert.Equal(t, DirectionDown, state.ChangeDirection)
	assert.InDelta(t, -16.6666666, state.ChangePercentage, 1e-6)
	assert.InDelta(t, 50.0, state.AthPercentage, 1e-9)
}

func TestRunCycle_CustomAthReference(t *testing.T) {
	tr := NewTracker(staticBTC(60000), staticETH(3000), WithAthReference(120000))

	tr.RunCycle(context.Background())

	assert.InDelta(t, 50.0, tr.State().AthPercentage, 1e-9)
}

func TestRunCycle_BitcoinFetchError(t *testing.T) {
	fetchErr := errors.New("connection refused")
	ethCalled := false
	eth := ethSourceFunc(func(ctx context.Context) (float64, error) {
		ethCalled = true
		return 3000, nil
	})

	tr := NewTracker(failingBTC(fetchErr), eth)
	tr.RunCycle(context.Background())

	// Ошибка BTC не прерывает цикл: ETH все равно запрашивается
	assert.True(t, ethCalled)

	state := tr.State()
	assert.Equal(t, 0.0, state.BitcoinPriceUSD)
	assert.Equal(t, 3000.0, state.EthereumPriceUSD)
	// Без цены биткоина отношение недоступно
	assert.Equal(t, 0.0, state.EthBtcRatio)
}

func TestRunCycle_EthereumFetchError(t *testing.T) {
	tr := NewTracker(staticBTC(60000), failingETH(errors.New("status 500")))
	tr.RunCycle(context.Background())

	state := tr.State()
	assert.Equal(t, 60000.0, state.BitcoinPriceUSD)
	assert.InDelta(t, 60.0, state.AthPercentage, 1e-9)
	// Цена ETH и отношение остаются прежними
	assert.Equal(t, 0.0, state.EthereumPriceUSD)
	assert.Equal(t, 0.0, state.EthBtcRatio)
}

func TestRunCycle_ErrorReporter(t *testing.T) {
	fetchErr := errors.New("timeout")
	var reports []ErrorReport

	tr := NewTracker(failingBTC(fetchErr), staticETH(3000))
	tr.AddErrorReporter(ErrorReporterFunc(func(report ErrorReport) {
		reports = append(reports, report)
	}))

	tr.RunCycle(context.Background())

	require.Len(t, reports, 1)
	assert.Equal(t, StageBitcoinFetch, reports[0].Stage)
	assert.NotEmpty(t, reports[0].ID)
	assert.NotEmpty(t, reports[0].CycleID)
	assert.ErrorIs(t, reports[0].Err, fetchErr)
	assert.False(t, reports[0].Timestamp.IsZero())
}

func TestRunCycle_SkippedWhileInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	btc := btcSourceFunc(func(ctx context.Context) (float64, error) {
		close(started)
		<-release
		return 60000, nil
	})

	skips := 0
	tr := NewTracker(btc, staticETH(3000), WithObserver(countingObserver{skips: &skips}))

	done := make(chan struct{})
	go func() {
		tr.RunCycle(context.Background())
		close(done)
	}()

	<-started
	ok := tr.RunCycle(context.Background())
	assert.False(t, ok)

	close(release)
	<-done

	assert.Equal(t, 1, skips)

	stats := tr.GetStats()
	assert.Equal(t, int64(1), stats["skipped_ticks"])
	assert.Equal(t, int64(1), stats["cycles"])
}

// countingObserver считает пропущенные тики
type countingObserver struct {
	skips *int
}

func (o countingObserver) FetchCompleted(source string, err error) {}

func (o countingObserver) CycleCompleted(state TrackerState, elapsed time.Duration) {}

func (o countingObserver) TickSkipped() { *o.skips++ }

func TestStart_DoubleStartIgnored(t *testing.T) {
	tr := NewTracker(staticBTC(60000), staticETH(3000), WithInterval(time.Hour))

	require.NoError(t, tr.Start())
	defer tr.Stop()

	assert.True(t, tr.IsRunning())

	// Повторный Start не падает и не перезапускает цикл
	require.NoError(t, tr.Start())
	assert.True(t, tr.IsRunning())
}

func TestStartStop(t *testing.T) {
	tr := NewTracker(staticBTC(60000), staticETH(3000), WithInterval(time.Hour))

	require.NoError(t, tr.Start())
	assert.True(t, tr.IsRunning())

	// Первый цикл выполняется сразу при запуске
	assert.Equal(t, 60000.0, tr.State().BitcoinPriceUSD)

	require.NoError(t, tr.Stop())
	assert.False(t, tr.IsRunning())

	// Повторный Stop безопасен
	require.NoError(t, tr.Stop())
}

func TestSubscribe_ReceivesStateUpdates(t *testing.T) {
	var received []TrackerState

	tr := NewTracker(staticBTC(60000), staticETH(3000))
	tr.Subscribe(SubscriberFunc(func(state TrackerState) {
		received = append(received, state)
	}))

	tr.RunCycle(context.Background())
	tr.RunCycle(context.Background())

	require.Len(t, received, 2)
	assert.Equal(t, 60000.0, received[0].BitcoinPriceUSD)
	assert.Equal(t, 60000.0, received[1].PreviousBitcoinPriceUSD)
}

// recordingSubscriber сравнимый подписчик для проверки отписки
type recordingSubscriber struct {
	calls int
}

func (s *recordingSubscriber) OnStateUpdate(state TrackerState) { s.calls++ }

func TestUnsubscribe(t *testing.T) {
	sub := &recordingSubscriber{}

	tr := NewTracker(staticBTC(60000), staticETH(3000))
	tr.Subscribe(sub)
	tr.RunCycle(context.Background())

	tr.Unsubscribe(sub)
	tr.RunCycle(context.Background())

	assert.Equal(t, 1, sub.calls)
}

func TestGetStats(t *testing.T) {
	tr := NewTracker(staticBTC(60000), staticETH(3000),
		WithInterval(42*time.Second), WithAthReference(90000))
	tr.Subscribe(SubscriberFunc(func(state TrackerState) {}))

	tr.RunCycle(context.Background())

	stats := tr.GetStats()
	assert.Equal(t, false, stats["running"])
	assert.Equal(t, int64(1), stats["cycles"])
	assert.Equal(t, int64(0), stats["fetch_errors"])
	assert.Equal(t, "42s", stats["interval"])
	assert.Equal(t, 90000.0, stats["ath_reference"])
	assert.Equal(t, 1, stats["subscribers"])
}

func TestWithDerivedHook(t *testing.T) {
	hookCalled := false
	tr := NewTracker(staticBTC(60000), staticETH(3000),
		WithDerivedHook(func(state *TrackerState) {
			hookCalled = true
			assert.Equal(t, 60000.0, state.BitcoinPriceUSD)
		}))

	tr.RunCycle(context.Background())

	assert.True(t, hookCalled)
}
