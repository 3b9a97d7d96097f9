package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port       string `env:"PORT,        default=5000"`
	Env        string `env:"ENV,         default=development"`
	JWTSecret  string `env:"JWT_SECRET,  required"`
	LogLevel   string `env:"LOG_LEVEL,   default=info"`
	UploadsDir string `env:"UPLOADS_DIR, default=uploads"`

	// CORSOrigins only applies outside production; production allows any origin.
	CORSOrigins []string `env:"CORS_ORIGINS, default=http://localhost:8080,http://localhost:8081,http://localhost:3001"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	BcryptCost       int           `env:"BCRYPT_COST,        default=10"`
	CustomerTokenTTL time.Duration `env:"CUSTOMER_TOKEN_TTL, default=2h"`
	AdminTokenTTL    time.Duration `env:"ADMIN_TOKEN_TTL,    default=1h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=storefront"`
}

type RedisConfig struct {
	Addr           string        `env:"REDIS_ADDR,      default=localhost:6379"`
	Password       string        `env:"REDIS_PASSWORD"`
	DB             int           `env:"REDIS_DB,        default=0"`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL, default=24h"`
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Load reads configuration from environment variables using go-envconfig.
// A missing JWT_SECRET is reported as an error; callers treat it as fatal.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
