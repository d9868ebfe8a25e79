package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort            string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL         string `env:"DATABASE_URL,required"`
	RateLimitTokens     int    `env:"RATE_LIMIT_TOKENS" envDefault:"30"`
	RateLimitIntervalMS int    `env:"RATE_LIMIT_INTERVAL_MS" envDefault:"60000"`
	StreamDelayMS       int    `env:"STREAM_DELAY_MS" envDefault:"40"`
	RedisAddr           string `env:"REDIS_ADDR"`
	RedisPassword       string `env:"REDIS_PASSWORD"`
	RedisDB             int    `env:"REDIS_DB" envDefault:"0"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
