// internal/notifier/console_renderer.go
package notifier

import (
	"fmt"
	"io"
	"os"
	"time"

	"crypto-price-tracker/internal/display"
	"crypto-price-tracker/internal/tracker"
	"crypto-price-tracker/pkg/logger"
)

// ConsoleRenderer выводит статус дисплея в консоль после каждого цикла.
// Реализует tracker.Subscriber.
type ConsoleRenderer struct {
	enabled bool
	compact bool
	out     io.Writer
	stats   map[string]interface{}
}

// NewConsoleRenderer создает консольный рендерер
func NewConsoleRenderer(compact bool, out io.Writer) *ConsoleRenderer {
	if out == nil {
		out = os.Stdout
	}

	return &ConsoleRenderer{
		enabled: true,
		compact: compact,
		out:     out,
		stats: map[string]interface{}{
			"rendered":           0,
			"last_rendered_time": time.Time{},
			"type":               "console",
		},
	}
}

// OnStateUpdate выводит обновленное состояние
func (r *ConsoleRenderer) OnStateUpdate(state tracker.TrackerState) {
	if !r.enabled {
		return
	}

	if r.compact {
		logger.Info("%s | $%s | eth/btc: %.4f",
			display.ProgressBar(state.AthPercentage),
			display.FormatMoney(state.BitcoinPriceUSD),
			state.EthBtcRatio)
	} else {
		fmt.Fprintln(r.out, "══════════════════════════════════════════════════")
		fmt.Fprintln(r.out, display.FormatStatus(state))
		fmt.Fprintln(r.out, "══════════════════════════════════════════════════")
	}

	// Обновляем статистику
	r.stats["rendered"] = r.stats["rendered"].(int) + 1
	r.stats["last_rendered_time"] = time.Now()
}

// Name возвращает имя
func (r *ConsoleRenderer) Name() string {
	return "console"
}

// IsEnabled возвращает статус
func (r *ConsoleRenderer) IsEnabled() bool {
	return r.enabled
}

// SetEnabled включает/выключает
func (r *ConsoleRenderer) SetEnabled(enabled bool) {
	r.enabled = enabled
}

// GetStats возвращает статистику
func (r *ConsoleRenderer) GetStats() map[string]interface{} {
	return r.stats
}
