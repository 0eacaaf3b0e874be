package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// config holds all server settings, populated from flags and QM_* env vars
type config struct {
	bind    string
	port    int
	baseURL string

	storageType string
	redisURL    string
	redisTTL    time.Duration
	postgresURL string

	oracleType   string
	geminiAPIKey string
	geminiModel  string

	logLevel string
}

func (c *config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	return nil
}

// bindFlags registers flags on fs and overlays QM_* environment variables
// onto any flag not set on the command line
func (c *config) bindFlags(fs *pflag.FlagSet) {
	v := viper.New()
	v.SetEnvPrefix("QM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	fs.StringVarP(&c.bind, "bind", "b", "", "address to bind to (env: QM_BIND)")
	fs.IntVarP(&c.port, "port", "p", 8080, "port to listen on (env: QM_PORT)")
	fs.StringVar(&c.baseURL, "base-url", "http://localhost:8080", "externally visible URL for join codes (env: QM_BASE_URL)")
	fs.StringVar(&c.storageType, "storage", "memory", "storage backend: memory, redis or postgres (env: QM_STORAGE)")
	fs.StringVar(&c.redisURL, "redis-url", "", "redis connection URL (env: QM_REDIS_URL)")
	fs.DurationVar(&c.redisTTL, "redis-ttl", 24*time.Hour, "redis lobby expiry (env: QM_REDIS_TTL)")
	fs.StringVar(&c.postgresURL, "postgres-url", "", "postgres connection URL (env: QM_POSTGRES_URL)")
	fs.StringVar(&c.oracleType, "oracle", "fixed", "answer backend: gemini or fixed (env: QM_ORACLE)")
	fs.StringVar(&c.geminiAPIKey, "gemini-api-key", "", "Gemini API key (env: QM_GEMINI_API_KEY)")
	fs.StringVar(&c.geminiModel, "gemini-model", "", "Gemini model override (env: QM_GEMINI_MODEL)")
	fs.StringVar(&c.logLevel, "log-level", "info", "log level: debug, info, warn, error (env: QM_LOG_LEVEL)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})
}
