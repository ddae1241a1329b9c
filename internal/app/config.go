package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete application configuration, loadable from
// environment variables (INTAKE_ prefix), flags, or YAML config files.
type Config struct {
	Addr        string `default:"0.0.0.0:8080" usage:"API server listen address"`
	Credentials string `usage:"JSON service account credential (INTAKE_CREDENTIALS or FIREBASE_ADMIN_CONFIG)" flag:"credentials"`
	Collection  string `default:"orders" usage:"Firestore collection receiving order documents"`
	RateLimit   RateLimitConfig
	CORS        CORSConfig
	Graceful    GracefulConfig
}

// RateLimitConfig controls the per-client fixed window rate limiter.
type RateLimitConfig struct {
	Max    int           `default:"100" usage:"Max requests per window"`
	Window time.Duration `default:"1m"  usage:"Rate limit window duration"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins []string `default:"*" usage:"Allowed CORS origins"`
	MaxAge  int      `default:"86400" usage:"Preflight cache duration in seconds" flag:"cors-max-age"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config
// files, and platform defaults. A missing store credential is a hard error:
// the process must not serve requests it cannot persist.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "INTAKE",
		Files:     []string{"config.yaml", "/etc/order-intake/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if cfg.Credentials == "" {
		return nil, errors.New("store credential is required: set INTAKE_CREDENTIALS or FIREBASE_ADMIN_CONFIG")
	}

	return &cfg, nil
}

// applyPlatformDefaults maps platform-provided environment variables to the
// application's INTAKE_-prefixed configuration: the credential under the
// Firebase console's conventional FIREBASE_ADMIN_CONFIG name, and the
// PORT variable injected by container platforms.
func (c *Config) applyPlatformDefaults() {
	if c.Credentials == "" {
		if v := os.Getenv("FIREBASE_ADMIN_CONFIG"); v != "" {
			c.Credentials = v
		}
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}
