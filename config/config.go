package config

import (
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	DataDir       string
	DataURL       string
	OutputDir     string
	TableConfig   string
	RatesURL      string
	RatesCache    string
	RatesTTLHours int
	BaseCurrency  string
}

var (
	config *Config
	once   sync.Once
)

// GetConfig возвращает singleton экземпляр конфигурации
func GetConfig() *Config {
	once.Do(func() {
		err := godotenv.Load()
		if err != nil {
			log.Println("no .env file, using environment and defaults")
		}

		config = &Config{
			DataDir:       getenv("DATA_DIR", "data"),
			DataURL:       os.Getenv("DATA_URL"),
			OutputDir:     getenv("OUTPUT_DIR", "output"),
			TableConfig:   os.Getenv("TABLE_CONFIG"),
			RatesURL:      os.Getenv("RATES_URL"),
			RatesCache:    getenv("RATES_CACHE", "rates_cache.json"),
			RatesTTLHours: getenvInt("RATES_TTL_HOURS", 24),
			BaseCurrency:  getenv("BASE_CURRENCY", "JPY"),
		}
	})
	return config
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
