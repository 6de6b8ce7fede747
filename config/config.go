package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	API      API
	// CacheDir overrides where fetched PTAX rates are kept. Empty means
	// ~/.stonks.
	CacheDir string `env:"STONKS_CACHE_DIR"`
}

type API struct {
	Debug   bool          `env:"API_DEBUG"`
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"30s"`
	BCBUrl  string        `env:"BCB_API_URL" envDefault:"https://olinda.bcb.gov.br"`
}

func MustLoad() *Config {
	// .env is optional; real environments set the variables directly
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("can't parse config: %s", err)
	}
	return cfg
}
