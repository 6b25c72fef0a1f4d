package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config конфигурация конвейера генерации
type Config struct {
	// Страна и объемы
	Country         string `json:"country"`
	NumProducts     int    `json:"num_products"`
	NumStores       int    `json:"num_stores"`
	NumTransactions int    `json:"num_transactions"`
	// Размер пула уникальных идентификаторов транзакций
	TransactionIDPool int `json:"transaction_id_pool"`

	// Файлы
	OutputDir   string `json:"output_dir"`
	CatalogPath string `json:"catalog_path"`

	// Генерация
	Workers int   `json:"workers"`
	Seed    int64 `json:"seed"` // 0 — недетерминированная генерация

	// Внешние справочники
	FallbackCountry string        `json:"fallback_country"`
	CountriesURL    string        `json:"countries_url"`
	InflationURL    string        `json:"inflation_url"`
	ExchangeRateURL string        `json:"exchange_rate_url"`
	SubdivisionsURL string        `json:"subdivisions_url"`
	LookupTimeout   time.Duration `json:"lookup_timeout"`

	// Логирование
	LogLevel string `json:"log_level"`
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() *Config {
	return &Config{
		Country:           "United States",
		NumProducts:       100,
		NumStores:         100,
		NumTransactions:   100,
		TransactionIDPool: 20,
		OutputDir:         "retail_data",
		CatalogPath:       "product_categories.yaml",
		FallbackCountry:   "United States",
		LookupTimeout:     10 * time.Second,
		LogLevel:          "INFO",
	}
}

// Load загружает конфигурацию из JSON файла поверх значений по умолчанию,
// затем применяет переменные окружения
func Load(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	config.applyEnv()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

// LoadFromEnv загружает конфигурацию только из значений по умолчанию
// и переменных окружения
func LoadFromEnv() (*Config, error) {
	return Load("")
}

// applyEnv применяет переменные окружения поверх текущих значений
func (c *Config) applyEnv() {
	c.Country = getEnv("RETAIL_COUNTRY", c.Country)
	c.NumProducts = getEnvInt("RETAIL_NUM_PRODUCTS", c.NumProducts)
	c.NumStores = getEnvInt("RETAIL_NUM_STORES", c.NumStores)
	c.NumTransactions = getEnvInt("RETAIL_NUM_TRANSACTIONS", c.NumTransactions)
	c.TransactionIDPool = getEnvInt("RETAIL_TRANSACTION_ID_POOL", c.TransactionIDPool)
	c.OutputDir = getEnv("RETAIL_OUTPUT_DIR", c.OutputDir)
	c.CatalogPath = getEnv("RETAIL_CATALOG_PATH", c.CatalogPath)
	c.Workers = getEnvInt("RETAIL_WORKERS", c.Workers)
	c.Seed = getEnvInt64("RETAIL_SEED", c.Seed)
	c.FallbackCountry = getEnv("RETAIL_FALLBACK_COUNTRY", c.FallbackCountry)
	c.CountriesURL = getEnv("RETAIL_COUNTRIES_URL", c.CountriesURL)
	c.InflationURL = getEnv("RETAIL_INFLATION_URL", c.InflationURL)
	c.ExchangeRateURL = getEnv("RETAIL_EXCHANGE_RATE_URL", c.ExchangeRateURL)
	c.SubdivisionsURL = getEnv("RETAIL_SUBDIVISIONS_URL", c.SubdivisionsURL)
	c.LookupTimeout = getEnvDuration("RETAIL_LOOKUP_TIMEOUT", c.LookupTimeout)
	c.LogLevel = getEnv("RETAIL_LOG_LEVEL", c.LogLevel)
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	if c.Country == "" {
		return fmt.Errorf("country must not be empty")
	}
	if c.NumProducts < 0 || c.NumStores < 0 || c.NumTransactions < 0 {
		return fmt.Errorf("record counts must not be negative")
	}
	if c.TransactionIDPool < 1 {
		return fmt.Errorf("transaction id pool must be at least 1")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output dir must not be empty")
	}
	if c.CatalogPath == "" {
		return fmt.Errorf("catalog path must not be empty")
	}
	return nil
}

// getEnv возвращает переменную окружения или значение по умолчанию
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvInt возвращает целочисленную переменную окружения
func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

// getEnvInt64 возвращает 64-битную целочисленную переменную окружения
func getEnvInt64(key string, fallback int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

// getEnvDuration возвращает переменную окружения как длительность
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
