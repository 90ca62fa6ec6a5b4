package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/paintshop-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, config.StorageDriverPostgres, cfg.DB.Driver)
	assert.Equal(t, "15", cfg.Costing.HourlyRate.String())
	assert.Equal(t, 10, cfg.Costing.AverageWindow)
	assert.Equal(t, 50, cfg.Stock.MovementsLimit)
	assert.Equal(t, 100, cfg.Stock.AllMovementsLimit)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("COST_HOURLY_RATE", "20.5")
	t.Setenv("COST_AVERAGE_WINDOW", "5")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StorageDriverMemory, cfg.DB.Driver)
	assert.Equal(t, "20.5", cfg.Costing.HourlyRate.String())
	assert.Equal(t, 5, cfg.Costing.AverageWindow)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_DriverDesconocido(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORAGE_DRIVER", "mongo")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "paintshop", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/paintshop?sslmode=disable", c.DSN())
}
