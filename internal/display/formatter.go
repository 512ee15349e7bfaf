// internal/display/formatter.go
package display

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"crypto-price-tracker/internal/tracker"
)

const barCells = 10

// ProgressBar строит текстовый прогресс-бар процента от ATH.
// Без ограничения сверху: при проценте выше 100 бар полностью заполнен,
// а число показывает фактическое значение.
func ProgressBar(percentage float64) string {
	filled := int(percentage / 10)
	if filled > barCells {
		filled = barCells
	}
	if filled < 0 {
		filled = 0
	}

	cells := make([]rune, barCells)
	for i := 0; i < barCells; i++ {
		if i < filled {
			cells[i] = '⬛'
		} else {
			cells[i] = '⬜'
		}
	}

	// Красный маркер на круглых десятках в пределах шкалы
	if percentage > 0 && percentage <= 100 && math.Mod(percentage, 10) == 0 {
		marker := int(percentage/10) - 1
		if marker >= 0 {
			cells[marker] = '🟥'
		}
	}

	return fmt.Sprintf("%s %.0f%%", string(cells), percentage)
}

// DirectionArrow возвращает стрелку направления изменения цены
func DirectionArrow(direction tracker.Direction) string {
	switch direction {
	case tracker.DirectionUp:
		return "↑"
	case tracker.DirectionDown:
		return "↓"
	default:
		return "↔"
	}
}

// FormatStatus собирает статусное сообщение дисплея:
// строка изменения, прогресс-бар до ATH, цена и отношение eth/btc.
func FormatStatus(state tracker.TrackerState) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Bitcoin %s %+.2f%%\n\n", DirectionArrow(state.ChangeDirection), state.ChangePercentage)
	fmt.Fprintf(&b, "%s\n\n", ProgressBar(state.AthPercentage))
	fmt.Fprintf(&b, "$%s        eth/btc: %.4f", FormatMoney(state.BitcoinPriceUSD), state.EthBtcRatio)

	return b.String()
}

// FormatMoney форматирует сумму с разделителями тысяч: 60000 -> "60,000.00"
func FormatMoney(value float64) string {
	s := strconv.FormatFloat(value, 'f', 2, 64)

	intPart, fracPart, _ := strings.Cut(s, ".")
	negative := strings.HasPrefix(intPart, "-")
	if negative {
		intPart = intPart[1:]
	}

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	result := b.String() + "." + fracPart
	if negative {
		result = "-" + result
	}
	return result
}
