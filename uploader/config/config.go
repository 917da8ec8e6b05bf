package config

import (
	"time"

	"github.com/Astemirdum/home-library/pkg/logger"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Endpoint   string        `envconfig:"API_ENDPOINT"`
	Token      string        `envconfig:"JWT_TOKEN" json:"-"`
	File       string        `envconfig:"BOOKS_FILE" default:"books.json"`
	RPS        int           `envconfig:"UPLOAD_RPS" default:"5"`
	Timeout    time.Duration `envconfig:"UPLOAD_TIMEOUT" default:"10s"`
	StrictISBN bool          `envconfig:"UPLOAD_STRICT_ISBN"`
	Log        logger.Log
}

// NewConfig reads the uploader settings from environment. Command line
// flags are applied on top by the caller.
func NewConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
