package server

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment variable the server reads.
const EnvPrefix = "DAGDRAW"

// Config holds the service settings, read from DAGDRAW_* variables.
type Config struct {
	Addr          string        `envconfig:"ADDR" default:":8080"`
	RedisURL      string        `envconfig:"REDIS_URL"`
	CacheTTL      time.Duration `envconfig:"CACHE_TTL" default:"24h"`
	MaxBody       int64         `envconfig:"MAX_BODY" default:"1048576"`
	RenderTimeout time.Duration `envconfig:"RENDER_TIMEOUT" default:"30s"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
