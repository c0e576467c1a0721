package config

import (
	"errors"
	"fmt"
	"log"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultTokenTTL is used when JWT_EXPIRES_IN is unset, empty or zero.
const DefaultTokenTTL = time.Hour

type Config struct {
	Port               string        `env:"PORT" envDefault:"8080"`
	DatabaseURL        string        `env:"DATABASE_URL,required"`
	RedisURL           string        `env:"REDIS_URL"`                              // Empty disables the contact cache
	JWTSecret          string        `env:"JWT_SECRET,required"`                    // Secret key for JWT token signing
	JWTExpiresIn       time.Duration `env:"JWT_EXPIRES_IN"`                         // Bare integers are seconds
	BcryptCost         int           `env:"BCRYPT_COST" envDefault:"10"`            // bcrypt work factor
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	CacheTTL           time.Duration `env:"CACHE_TTL" envDefault:"5m"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat          string        `env:"LOG_FORMAT" envDefault:"json"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	cfg := &Config{}
	opts := env.Options{
		FuncMap: map[reflect.Type]env.ParserFunc{
			reflect.TypeOf(time.Duration(0)): parseDuration,
		},
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.JWTExpiresIn < 0 {
		return nil, errors.New("JWT_EXPIRES_IN must not be negative")
	}
	if cfg.JWTExpiresIn == 0 {
		cfg.JWTExpiresIn = DefaultTokenTTL
	}

	if cfg.CacheTTL <= 0 {
		return nil, errors.New("CACHE_TTL must be positive")
	}

	cfg.CORSAllowedOrigins = cleanOrigins(cfg.CORSAllowedOrigins)

	return cfg, nil
}

// parseDuration accepts a Go duration string ("90m", "2h") or a bare integer
// number of seconds. An empty value parses as zero.
func parseDuration(value string) (interface{}, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Duration(0), nil
	}

	if seconds, err := strconv.ParseInt(value, 10, 64); err == nil {
		if seconds > maxDurationSeconds || seconds < -maxDurationSeconds {
			return nil, fmt.Errorf("invalid duration %q: out of range", value)
		}
		return time.Duration(seconds) * time.Second, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return nil, fmt.Errorf("invalid duration %q: %w", value, err)
	}
	return d, nil
}

// maxDurationSeconds is the largest whole-second count a time.Duration holds.
const maxDurationSeconds = math.MaxInt64 / int64(time.Second)

func cleanOrigins(origins []string) []string {
	cleaned := make([]string, 0, len(origins))
	for _, o := range origins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o != "" {
			cleaned = append(cleaned, o)
		}
	}
	return cleaned
}
