package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("SERVER_ADDRESS", "")
	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("AUCTION_AUTOCLOSE_INTERVAL", "")
	t.Setenv("RUN_MIGRATIONS", "")

	cfg, err := fromEnv()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:8080", cfg.ServerAddress)
	require.Equal(t, StoreMemory, cfg.StoreDriver)
	require.True(t, cfg.RunMigrations)
	require.Equal(t, 10*time.Second, cfg.RequestTimeout)
	require.Equal(t, 30*time.Second, cfg.AutoCloseInterval)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("POSTGRES_CONN", "postgres://localhost/waste?sslmode=disable")
	t.Setenv("SERVER_ADDRESS", ":9090")
	t.Setenv("RUN_MIGRATIONS", "false")
	t.Setenv("DB_MAX_OPEN_CONNS", "5")
	t.Setenv("AUCTION_AUTOCLOSE_INTERVAL", "0")

	cfg, err := fromEnv()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.ServerAddress)
	require.False(t, cfg.RunMigrations)
	require.Equal(t, 5, cfg.DBMaxOpenConns)
	require.Zero(t, cfg.AutoCloseInterval)
}

func TestFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "postgres_without_conn", env: map[string]string{"STORE_DRIVER": "postgres", "POSTGRES_CONN": ""}},
		{name: "unknown_driver", env: map[string]string{"STORE_DRIVER": "mongo"}},
		{name: "bad_duration", env: map[string]string{"STORE_DRIVER": "memory", "REQUEST_TIMEOUT": "soon"}},
		{name: "bad_bool", env: map[string]string{"STORE_DRIVER": "memory", "RUN_MIGRATIONS": "maybe"}},
		{name: "negative_interval", env: map[string]string{"STORE_DRIVER": "memory", "AUCTION_AUTOCLOSE_INTERVAL": "-1s"}},
		{name: "zero_pool", env: map[string]string{"STORE_DRIVER": "memory", "DB_MAX_OPEN_CONNS": "0"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := fromEnv()
			require.Error(t, err)
		})
	}
}
