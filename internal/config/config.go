// internal/config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ============================================
// КОНФИГУРАЦИЯ ПРИЛОЖЕНИЯ
// ============================================

// Config - основная структура конфигурации
type Config struct {
	// ======================
	// ОСНОВНЫЕ НАСТРОЙКИ
	// ======================
	Environment string `mapstructure:"ENVIRONMENT"`
	Version     string `mapstructure:"VERSION"`

	// ======================
	// ИСТОЧНИКИ ЦЕН
	// ======================
	MempoolBaseURL   string `mapstructure:"MEMPOOL_BASE_URL"`
	CoinGeckoBaseURL string `mapstructure:"COINGECKO_BASE_URL"`
	VsCurrency       string `mapstructure:"VS_CURRENCY"`
	UserAgent        string `mapstructure:"USER_AGENT"`

	// ======================
	// ОПРОС И МЕТРИКИ
	// ======================
	UpdateInterval int           `mapstructure:"UPDATE_INTERVAL"` // Интервал опроса в секундах
	AthReference   float64       `mapstructure:"ATH_REFERENCE_PRICE"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`

	// ======================
	// НАСТРОЙКИ ОТОБРАЖЕНИЯ
	// ======================
	Display struct {
		Mode      string `mapstructure:"DISPLAY_MODE"` // "compact" или "full"
		UseColors bool   `mapstructure:"USE_COLORS"`
	} `mapstructure:",squash"`

	// ======================
	// ЛОГИРОВАНИЕ И МОНИТОРИНГ
	// ======================
	Logging struct {
		Level       string `mapstructure:"LOG_LEVEL"`
		File        string `mapstructure:"LOG_FILE"`
		ToConsole   bool   `mapstructure:"LOG_TO_CONSOLE,omitempty"`
		ToFile      bool   `mapstructure:"LOG_TO_FILE,omitempty"`
		DebugMode   bool   `mapstructure:"DEBUG_MODE,omitempty"`
		HTTPEnabled bool   `mapstructure:"HTTP_ENABLED"`
		HTTPPort    int    `mapstructure:"HTTP_PORT"`
	} `mapstructure:",squash"`
}

// ============================================
// ЗАГРУЗКА КОНФИГУРАЦИИ
// ============================================

// LoadConfig загружает конфигурацию из .env файла
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(path); err != nil {
		fmt.Printf("⚠️  Config file not found, using environment variables\n")
	}

	cfg := &Config{}

	// ======================
	// ОСНОВНЫЕ НАСТРОЙКИ
	// ======================
	cfg.Environment = getEnv("ENVIRONMENT", "production")
	cfg.Version = getEnv("VERSION", "1.0.0")

	// ======================
	// ИСТОЧНИКИ ЦЕН
	// ======================
	cfg.MempoolBaseURL = getEnv("MEMPOOL_BASE_URL", "https://mempool.space")
	cfg.CoinGeckoBaseURL = getEnv("COINGECKO_BASE_URL", "https://api.coingecko.com/api/v3")
	cfg.VsCurrency = getEnv("VS_CURRENCY", "usd")
	cfg.UserAgent = getEnv("USER_AGENT", "crypto-price-tracker/"+cfg.Version)

	// ======================
	// ОПРОС И МЕТРИКИ
	// ======================
	cfg.UpdateInterval = getEnvInt("UPDATE_INTERVAL", 180)
	cfg.AthReference = getEnvFloat("ATH_REFERENCE_PRICE", 100000)
	cfg.RequestTimeout = getEnvDuration("REQUEST_TIMEOUT", 10*time.Second)

	// ======================
	// НАСТРОЙКИ ОТОБРАЖЕНИЯ
	// ======================
	cfg.Display.Mode = getEnv("DISPLAY_MODE", "full")
	cfg.Display.UseColors = getEnvBool("USE_COLORS", true)

	// ======================
	// ЛОГИРОВАНИЕ И МОНИТОРИНГ
	// ======================
	cfg.Logging.Level = getEnv("LOG_LEVEL", "info")
	cfg.Logging.File = getEnv("LOG_FILE", "logs/price_tracker.log")
	cfg.Logging.ToConsole = getEnvBool("LOG_TO_CONSOLE", true)
	cfg.Logging.ToFile = getEnvBool("LOG_TO_FILE", true)
	cfg.Logging.DebugMode = getEnvBool("DEBUG_MODE", false)
	cfg.Logging.HTTPEnabled = getEnvBool("HTTP_ENABLED", false)
	cfg.Logging.HTTPPort = getEnvInt("HTTP_PORT", 8080)

	// ======================
	// ВАЛИДАЦИЯ КОНФИГУРАЦИИ
	// ======================
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// ============================================
// ВАЛИДАЦИЯ
// ============================================

// validate проверяет обязательные параметры конфигурации
func (c *Config) validate() error {
	var validationErrors []string

	if c.MempoolBaseURL == "" {
		validationErrors = append(validationErrors, "MEMPOOL_BASE_URL is required")
	}
	if c.CoinGeckoBaseURL == "" {
		validationErrors = append(validationErrors, "COINGECKO_BASE_URL is required")
	}
	if c.VsCurrency == "" {
		validationErrors = append(validationErrors, "VS_CURRENCY is required")
	}
	if c.UpdateInterval <= 0 {
		validationErrors = append(validationErrors, "UPDATE_INTERVAL must be positive")
	}
	if c.AthReference <= 0 {
		validationErrors = append(validationErrors, "ATH_REFERENCE_PRICE must be positive")
	}
	if c.RequestTimeout <= 0 {
		validationErrors = append(validationErrors, "REQUEST_TIMEOUT must be positive")
	}

	mode := strings.ToLower(c.Display.Mode)
	if mode != "compact" && mode != "full" {
		validationErrors = append(validationErrors, "DISPLAY_MODE должен быть 'compact' или 'full'")
	}

	if c.Logging.HTTPEnabled {
		if c.Logging.HTTPPort <= 0 || c.Logging.HTTPPort > 65535 {
			validationErrors = append(validationErrors, "HTTP_PORT должен быть в диапазоне 1-65535")
		}
	}

	if len(validationErrors) > 0 {
		errMsg := strings.Join(validationErrors, "; ")
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	return c.validate()
}

// ============================================
// ВСПОМОГАТЕЛЬНЫЕ МЕТОДЫ
// ============================================

// GetUpdateInterval возвращает интервал опроса как Duration
func (c *Config) GetUpdateInterval() time.Duration {
	return time.Duration(c.UpdateInterval) * time.Second
}

// IsCompactDisplay возвращает true для компактного режима отображения
func (c *Config) IsCompactDisplay() bool {
	return strings.ToLower(c.Display.Mode) == "compact"
}

// IsDev возвращает true если текущее окружение — разработка
func (c *Config) IsDev() bool {
	return c.Environment == "dev"
}

// PrintSummary выводит основные параметры конфигурации
func (c *Config) PrintSummary() {
	log.Printf("📋 Конфигурация приложения:")
	log.Printf("   • Окружение: %s", c.Environment)
	log.Printf("   • Уровень логирования: %s", c.Logging.Level)
	log.Printf("   • mempool.space: %s", c.MempoolBaseURL)
	log.Printf("   • CoinGecko: %s (валюта: %s)", c.CoinGeckoBaseURL, c.VsCurrency)
	log.Printf("   • Интервал опроса: %d сек", c.UpdateInterval)
	log.Printf("   • Референс ATH: $%.0f", c.AthReference)
	log.Printf("   • Таймаут запросов: %s", c.RequestTimeout)
	log.Printf("   • Режим отображения: %s", c.Display.Mode)
	log.Printf("   • HTTP сервер: %v (порт: %d)", c.Logging.HTTPEnabled, c.Logging.HTTPPort)
}

// ============================================
// ВСПОМОГАТЕЛЬНЫЕ ФУНКЦИИ
// ============================================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
