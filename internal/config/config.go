package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort          string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL       string `env:"DATABASE_URL"`
	RedisAddr         string `env:"REDIS_ADDR"`
	RedisPassword     string `env:"REDIS_PASSWORD"`
	RedisDB           int    `env:"REDIS_DB" envDefault:"0"`
	ClassifierBaseURL string `env:"CLASSIFIER_BASE_URL"`
	ClassifierAPIKey  string `env:"CLASSIFIER_API_KEY"`
	SessionTTLHours   int    `env:"SESSION_TTL_HOURS" envDefault:"24"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
