package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Addr)
	require.Equal(t, DriverSQLite, cfg.DB.Driver)
	require.NotEmpty(t, cfg.DB.DSN)
	require.Equal(t, 5.0, cfg.Dispatch.RadiusKm)
	require.Equal(t, 5, cfg.Dispatch.MaxOffers)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("addr: \":9090\"\ndb:\n  driver: mysql\n  dsn: \"root:@tcp(127.0.0.1:3306)/rideshare?parseTime=true\"\ndispatch:\n  radius_km: 7.5\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rideshare.yaml"), yaml, 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.Addr)
	require.Equal(t, DriverMySQL, cfg.DB.Driver)
	require.Equal(t, 7.5, cfg.Dispatch.RadiusKm)
	// Unset keys keep defaults.
	require.Equal(t, 5, cfg.Dispatch.MaxOffers)
}

func TestLoadSplitsCORSOriginsFromEnv(t *testing.T) {
	t.Setenv("RIDESHARE_CORS_ORIGINS", "http://a.example, http://b.example;http://c.example")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	require.Equal(t,
		[]string{"http://a.example", "http://b.example", "http://c.example"},
		cfg.CORSOrigins)
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	cfg.DB.Driver = "postgres"
	require.ErrorIs(t, cfg.Validate(), ErrDriverUnknown)
}

func TestValidateRejectsEmptyDSN(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	cfg.DB.DSN = "  "
	require.ErrorIs(t, cfg.Validate(), ErrDSNEmpty)
}

func TestValidateRequiresSecretInRelease(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	cfg.GinMode = "release"
	require.ErrorIs(t, cfg.Validate(), ErrSecretEmpty)

	cfg.JWT.Secret = "s3cret"
	require.NoError(t, cfg.Validate())
}

func TestValidateDispatchBounds(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	cfg.Dispatch.RadiusKm = 0
	require.ErrorIs(t, cfg.Validate(), ErrRadiusInvalid)

	cfg.Dispatch.RadiusKm = 3
	cfg.Dispatch.MaxOffers = 0
	require.ErrorIs(t, cfg.Validate(), ErrMaxOffersInvalid)
}

func TestJWTSecretFallback(t *testing.T) {
	cfg := Config{}
	require.NotEmpty(t, cfg.JWTSecret())
	cfg.JWT.Secret = "abc"
	require.Equal(t, []byte("abc"), cfg.JWTSecret())
}
