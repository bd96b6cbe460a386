// Package config loads server configuration from rideshare.yaml and
// RIDESHARE_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"rideshare/internal/utils"
)

// Supported database drivers.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Config validation errors.
var (
	ErrDriverUnknown    = errors.New("unknown db driver")
	ErrDSNEmpty         = errors.New("db dsn must not be empty")
	ErrSecretEmpty      = errors.New("jwt secret must be set in release mode")
	ErrRadiusInvalid    = errors.New("dispatch radius_km must be positive")
	ErrMaxOffersInvalid = errors.New("dispatch max_offers must be positive")
)

type DB struct {
	Driver string
	DSN    string
}

type JWT struct {
	Secret string
	TTL    time.Duration
}

// Dispatch tunes the nearby-driver search run on trip.requested.
type Dispatch struct {
	RadiusKm    float64
	MaxOffers   int
	LocationTTL time.Duration
}

type Config struct {
	Addr        string
	GinMode     string
	CORSOrigins []string
	DB          DB
	JWT         JWT
	Dispatch    Dispatch
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("gin_mode", "")
	v.SetDefault("cors_origins", []string{"http://localhost:3000", "http://localhost:5173"})
	v.SetDefault("db.driver", DriverSQLite)
	v.SetDefault("db.dsn", "file:rideshare.db?_pragma=foreign_keys(1)")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.ttl", "24h")
	v.SetDefault("dispatch.radius_km", 5.0)
	v.SetDefault("dispatch.max_offers", 5)
	v.SetDefault("dispatch.location_ttl", "2m")
}

// Load reads rideshare.yaml from the given dir (and the working directory)
// plus environment overrides. A missing config file is not an error.
func Load(dir string) (Config, error) {
	v := viper.New()
	v.SetConfigName("rideshare")
	v.SetConfigType("yaml")
	if dir != "" {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")
	v.SetEnvPrefix("RIDESHARE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	// An env override arrives as one comma separated string, not a slice;
	// re-splitting the joined value normalizes both shapes.
	origins := utils.SplitList(strings.Join(v.GetStringSlice("cors_origins"), ","))

	cfg := Config{
		Addr:        v.GetString("addr"),
		GinMode:     v.GetString("gin_mode"),
		CORSOrigins: origins,
		DB: DB{
			Driver: v.GetString("db.driver"),
			DSN:    v.GetString("db.dsn"),
		},
		JWT: JWT{
			Secret: v.GetString("jwt.secret"),
			TTL:    v.GetDuration("jwt.ttl"),
		},
		Dispatch: Dispatch{
			RadiusKm:    v.GetFloat64("dispatch.radius_km"),
			MaxOffers:   v.GetInt("dispatch.max_offers"),
			LocationTTL: v.GetDuration("dispatch.location_ttl"),
		},
	}
	return cfg, cfg.Validate()
}

// Validate checks that the Config is well-formed.
func (c Config) Validate() error {
	if c.DB.Driver != DriverMySQL && c.DB.Driver != DriverSQLite {
		return fmt.Errorf("%w: %q", ErrDriverUnknown, c.DB.Driver)
	}
	if strings.TrimSpace(c.DB.DSN) == "" {
		return ErrDSNEmpty
	}
	if c.GinMode == "release" && strings.TrimSpace(c.JWT.Secret) == "" {
		return ErrSecretEmpty
	}
	if c.Dispatch.RadiusKm <= 0 {
		return ErrRadiusInvalid
	}
	if c.Dispatch.MaxOffers <= 0 {
		return ErrMaxOffersInvalid
	}
	return nil
}

// JWTSecret returns the configured secret, falling back to a fixed dev
// secret outside release mode so a bare checkout can run.
func (c Config) JWTSecret() []byte {
	if s := strings.TrimSpace(c.JWT.Secret); s != "" {
		return []byte(s)
	}
	return []byte("dev-secret-change-me")
}
