// internal/tracker/calculator.go
package tracker

// Чистые функции расчета метрик. Без скрытого состояния:
// одинаковые входы всегда дают одинаковые выходы.

// ComputeChange рассчитывает направление и процент изменения цены.
// Если предыдущая цена отсутствует или не положительна, возвращает (flat, 0).
func ComputeChange(current, previous float64) (Direction, float64) {
	if previous <= 0 {
		return DirectionFlat, 0
	}

	percentage := (current - previous) / previous * 100

	if current-previous >= 0 {
		return DirectionUp, percentage
	}
	return DirectionDown, percentage
}

// ComputeAthPercentage рассчитывает процент цены от референсного ATH.
// Без ограничения сверху: значения выше 100 валидны (цена превысила референс).
func ComputeAthPercentage(current, ath float64) float64 {
	if ath <= 0 {
		return 0
	}
	return current / ath * 100
}

// ComputeRatio рассчитывает отношение eth/btc.
// При btcPrice <= 0 отношение недоступно, второй результат false.
func ComputeRatio(ethPrice, btcPrice float64) (float64, bool) {
	if btcPrice <= 0 {
		return 0, false
	}
	return ethPrice / btcPrice, true
}
