package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AuthMode string

const (
	AuthModeDev    AuthMode = "dev"    // headers X-Debug-*
	AuthModeJWT    AuthMode = "jwt"    // HS256 local
	AuthModeRemote AuthMode = "remote" // servicio de identidad externo
)

type Config struct {
	App  string
	Port string

	LogLevel  string
	LogFormat string

	DB    DBConfig
	Redis RedisConfig
	Auth  AuthConfig

	ShutdownTimeout time.Duration
}

type DBConfig struct {
	DSN     string // vacío => storage in-memory
	Migrate bool
}

type RedisConfig struct {
	Addr     string // vacío => sin cache
	Password string
	DB       int
	CacheTTL time.Duration
}

type AuthConfig struct {
	Mode AuthMode

	JWTSecret string
	JWTIssuer string

	IdentityBaseURL string
	IdentityAPIKey  string
	IdentityTimeout time.Duration
}

// Load lee un .env opcional (si existe) y luego las variables de entorno.
// Las variables ya presentes en el entorno tienen prioridad sobre el .env.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	cfg := Config{
		App:       getEnv("APP_NAME", "cat-rescue"),
		Port:      getEnv("PORT", "8080"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
		DB: DBConfig{
			DSN:     strings.TrimSpace(os.Getenv("DB_DSN")),
			Migrate: getBool("DB_MIGRATE", true),
		},
		Redis: RedisConfig{
			Addr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Auth: AuthConfig{
			Mode:            AuthMode(strings.ToLower(getEnv("AUTH_MODE", string(AuthModeDev)))),
			JWTSecret:       os.Getenv("JWT_SECRET"),
			JWTIssuer:       os.Getenv("JWT_ISSUER"),
			IdentityBaseURL: os.Getenv("IDENTITY_BASE_URL"),
			IdentityAPIKey:  os.Getenv("IDENTITY_API_KEY"),
		},
	}

	var err error
	if cfg.Redis.DB, err = getInt("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if cfg.Redis.CacheTTL, err = getDuration("CACHE_TTL", 5*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.Auth.IdentityTimeout, err = getDuration("IDENTITY_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Auth.Mode {
	case AuthModeDev:
	case AuthModeJWT:
		if strings.TrimSpace(c.Auth.JWTSecret) == "" {
			return errors.New("config: JWT_SECRET required when AUTH_MODE=jwt")
		}
	case AuthModeRemote:
		if strings.TrimSpace(c.Auth.IdentityBaseURL) == "" {
			return errors.New("config: IDENTITY_BASE_URL required when AUTH_MODE=remote")
		}
	default:
		return fmt.Errorf("config: unknown AUTH_MODE %q", c.Auth.Mode)
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("config: invalid PORT %q", c.Port)
	}
	return nil
}

func (c Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s: %w", key, err)
	}
	return d, nil
}
