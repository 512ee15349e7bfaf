// cmd/tracker/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"crypto-price-tracker/internal/api/coingecko"
	"crypto-price-tracker/internal/api/mempool"
	"crypto-price-tracker/internal/config"
	"crypto-price-tracker/internal/metrics"
	"crypto-price-tracker/internal/notifier"
	"crypto-price-tracker/internal/server"
	"crypto-price-tracker/internal/tracker"
	"crypto-price-tracker/pkg/logger"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Не удалось загрузить конфигурацию: %v", err)
	}

	// Инициализируем логгер
	if err := logger.InitGlobal(cfg.Logging.File, cfg.Logging.Level, cfg.Logging.DebugMode); err != nil {
		log.Fatalf("Не удалось инициализировать логгер: %v", err)
	}

	// Выводим информацию о конфигурации
	printHeader("ТРЕКЕР ЦЕНЫ БИТКОИНА")
	fmt.Printf("🔧 Конфигурация:\n")
	fmt.Printf("   Источник BTC: %s\n", cfg.MempoolBaseURL)
	fmt.Printf("   Источник ETH: %s (валюта: %s)\n", cfg.CoinGeckoBaseURL, cfg.VsCurrency)
	fmt.Printf("   Интервал обновления: %d секунд\n", cfg.UpdateInterval)
	fmt.Printf("   Референс ATH: $%.0f\n", cfg.AthReference)
	fmt.Printf("   Таймаут запросов: %s\n", cfg.RequestTimeout)
	fmt.Printf("   Режим отображения: %s\n", cfg.Display.Mode)
	fmt.Println()

	startTime := time.Now()

	// Создаем клиентов источников цен
	btcClient := mempool.NewClient(cfg.MempoolBaseURL, cfg.UserAgent, cfg.RequestTimeout)
	ethClient := coingecko.NewClient(cfg.CoinGeckoBaseURL, cfg.VsCurrency, cfg.UserAgent, cfg.RequestTimeout)

	// Регистрируем метрики Prometheus
	recorder := metrics.NewRecorder(nil)

	// Создаем трекер
	priceTracker := tracker.NewTracker(btcClient, ethClient,
		tracker.WithInterval(cfg.GetUpdateInterval()),
		tracker.WithAthReference(cfg.AthReference),
		tracker.WithObserver(recorder),
	)

	// Подписываем консольный рендерер
	renderer := notifier.NewConsoleRenderer(cfg.IsCompactDisplay(), os.Stdout)
	priceTracker.Subscribe(renderer)

	// Запускаем HTTP сервер (если включен)
	var httpServer *server.Server
	if cfg.Logging.HTTPEnabled {
		httpServer = server.NewServer(priceTracker, cfg.Logging.HTTPPort, cfg.Version)
		httpServer.Start()
		fmt.Printf("🌐 API доступен по адресу: http://localhost:%d\n", cfg.Logging.HTTPPort)
		fmt.Println()
	}

	// Запускаем трекер
	if err := priceTracker.Start(); err != nil {
		log.Fatalf("Не удалось запустить трекер: %v", err)
	}

	fmt.Println("🎮 Управление:")
	fmt.Println("   Ctrl+C - Остановить трекер")
	fmt.Println()
	printSeparator()

	// Обработка сигналов для graceful shutdown
	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, syscall.SIGINT, syscall.SIGTERM)

	// Ожидание сигнала остановки
	<-stopChan

	fmt.Println()
	printHeader("Завершение работы")

	// Остановка трекера и сервера
	priceTracker.Stop()
	if httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Stop(ctx); err != nil {
			logger.Error("❌ Ошибка остановки HTTP сервера: %v", err)
		}
	}

	// Финальная статистика
	stats := priceTracker.GetStats()
	fmt.Printf("⏱️  Время работы: %s\n", formatDuration(time.Since(startTime)))
	fmt.Printf("📊 Всего циклов: %v\n", stats["cycles"])
	fmt.Printf("⏭ Пропущено тиков: %v\n", stats["skipped_ticks"])
	fmt.Printf("❌ Ошибок запросов: %v\n", stats["fetch_errors"])

	fmt.Println("✅ Трекер остановлен корректно")
}

func printHeader(text string) {
	width := 80
	padding := (width - len(text)) / 2

	if padding < 0 {
		padding = 0
	}

	fmt.Println(strings.Repeat("═", width))
	fmt.Printf("%s%s%s\n",
		strings.Repeat(" ", padding),
		text,
		strings.Repeat(" ", width-len(text)-padding))
	fmt.Println(strings.Repeat("═", width))
}

func printSeparator() {
	fmt.Println(strings.Repeat("─", 80))
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dч %dм %dс", hours, minutes, seconds)
	} else if minutes > 0 {
		return fmt.Sprintf("%dм %dс", minutes, seconds)
	}
	return fmt.Sprintf("%dс", seconds)
}
