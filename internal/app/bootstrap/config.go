package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration lets YAML carry values like "5m" or "24h".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := time.ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", node.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped standard duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the full service configuration. Values load from a YAML file
// first, then environment variables override. The JWT secret only comes from
// the environment.
type Config struct {
	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`
	GRPC struct {
		Addr string `yaml:"addr"`
	} `yaml:"grpc"`
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`
	Redis struct {
		URL string `yaml:"url"`
	} `yaml:"redis"`
	Auth struct {
		TokenIssuer      string   `yaml:"token_issuer"`
		TokenAudience    string   `yaml:"token_audience"`
		DefaultRole      string   `yaml:"default_role"`
		TokenTTL         Duration `yaml:"token_ttl"`
		FailedThreshold  int      `yaml:"failed_threshold"`
		LockoutCooldown  Duration `yaml:"lockout_cooldown"`
		ResetTokenTTL    Duration `yaml:"reset_token_ttl"`
		PasswordLifetime Duration `yaml:"password_lifetime"`
		BcryptCost       int      `yaml:"bcrypt_cost"`
	} `yaml:"auth"`

	JWTSecret string `yaml:"-"`
}

// Load reads the YAML file at path (skipped if it does not exist) and applies
// environment overrides. JWT_SECRET is required.
func Load(path string) (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = ":8080"
	cfg.GRPC.Addr = ":9090"
	cfg.Auth.TokenIssuer = "auth-service"
	cfg.Auth.TokenAudience = "platform"
	cfg.Auth.DefaultRole = "GUEST"
	cfg.Auth.TokenTTL = Duration(24 * time.Hour)
	cfg.Auth.FailedThreshold = 5
	cfg.Auth.LockoutCooldown = Duration(5 * time.Minute)
	cfg.Auth.ResetTokenTTL = Duration(30 * time.Minute)
	cfg.Auth.PasswordLifetime = Duration(90 * 24 * time.Hour)
	cfg.Auth.BcryptCost = 12

	if path != "" {
		raw, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	overrideString(&cfg.HTTP.Addr, "HTTP_ADDR")
	overrideString(&cfg.GRPC.Addr, "GRPC_ADDR")
	overrideString(&cfg.Database.URL, "DB_URL")
	overrideString(&cfg.Redis.URL, "REDIS_URL")
	overrideString(&cfg.Auth.TokenIssuer, "TOKEN_ISSUER")
	overrideString(&cfg.Auth.TokenAudience, "TOKEN_AUDIENCE")
	overrideString(&cfg.Auth.DefaultRole, "DEFAULT_ROLE")
	overrideDuration(&cfg.Auth.TokenTTL, "TOKEN_TTL")
	overrideInt(&cfg.Auth.FailedThreshold, "FAILED_THRESHOLD")
	overrideDuration(&cfg.Auth.LockoutCooldown, "LOCKOUT_COOLDOWN")
	overrideDuration(&cfg.Auth.ResetTokenTTL, "RESET_TOKEN_TTL")
	overrideDuration(&cfg.Auth.PasswordLifetime, "PASSWORD_LIFETIME")
	overrideInt(&cfg.Auth.BcryptCost, "BCRYPT_COST")

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	if cfg.Database.URL == "" {
		return Config{}, fmt.Errorf("database url is required (database.url or DB_URL)")
	}
	if cfg.Redis.URL == "" {
		return Config{}, fmt.Errorf("redis url is required (redis.url or REDIS_URL)")
	}
	return cfg, nil
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func overrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst = parsed
		}
	}
}

func overrideDuration(dst *Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			*dst = Duration(parsed)
		}
	}
}
