// internal/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, "ledgerdb", cfg.DB.DBName)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("LEDGER_SERVER_PORT", "9090")
	t.Setenv("LEDGER_DB_HOST", "db.internal")
	t.Setenv("LEDGER_DB_PORT", "5433")
	t.Setenv("LEDGER_DB_NAME", "ledger_test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 5433, cfg.DB.Port)
	assert.Equal(t, "ledger_test", cfg.DB.DBName)
}

func TestLoadConfigInvalidPort(t *testing.T) {
	t.Setenv("LEDGER_DB_PORT", "-1")

	_, err := LoadConfig()
	assert.Error(t, err)
}
