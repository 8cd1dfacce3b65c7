package app

import "os"

// Config describes the runtime settings of the storefront service.
type Config struct {
	// HTTPAddr is the public API listener.
	HTTPAddr string
	// OpsAddr serves /metrics and the health endpoints.
	OpsAddr string
	// PostgresDSN selects durable storage. Empty runs on in-memory stores.
	PostgresDSN string
	// RedisAddr selects durable cart snapshots. Empty keeps them in memory.
	RedisAddr string
	// KafkaBrokers is a comma-separated broker list. Empty disables the
	// outbox worker; orders still persist.
	KafkaBrokers string

	AdminUsername    string
	AdminPassword    string
	AdminTokenSecret string
}

// DefaultConfig returns development defaults.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:         ":8080",
		OpsAddr:          ":9090",
		AdminUsername:    "admin",
		AdminPassword:    "admin",
		AdminTokenSecret: "storefront-dev-secret",
	}
}

// ConfigFromEnv starts from the defaults and applies environment overrides.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	overrideString(&cfg.HTTPAddr, "STOREFRONT_HTTP_ADDR")
	overrideString(&cfg.OpsAddr, "STOREFRONT_OPS_ADDR")
	overrideString(&cfg.PostgresDSN, "STOREFRONT_POSTGRES_DSN")
	overrideString(&cfg.RedisAddr, "STOREFRONT_REDIS_ADDR")
	overrideString(&cfg.KafkaBrokers, "KAFKA_BROKERS")
	overrideString(&cfg.AdminUsername, "STOREFRONT_ADMIN_USER")
	overrideString(&cfg.AdminPassword, "STOREFRONT_ADMIN_PASSWORD")
	overrideString(&cfg.AdminTokenSecret, "STOREFRONT_ADMIN_SECRET")
	return cfg
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
