package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.Engine.NSim)
	assert.Equal(t, 0.05, cfg.Engine.FDRLevel)
	assert.Equal(t, 0.05, cfg.Engine.Alpha)
	assert.Equal(t, int64(0), cfg.Engine.Seed)
	assert.Equal(t, 4, cfg.Engine.Workers)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Empty(t, cfg.Database.URL)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("CIRC_NSIM", "2500")
	t.Setenv("CIRC_FDR_Q", "0.1")
	t.Setenv("CIRC_ALPHA", "0.01")
	t.Setenv("CIRC_SEED", "1234")
	t.Setenv("CIRC_WORKERS", "8")
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("DATABASE_URL", "postgres://localhost/circ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2500, cfg.Engine.NSim)
	assert.Equal(t, 0.1, cfg.Engine.FDRLevel)
	assert.Equal(t, 0.01, cfg.Engine.Alpha)
	assert.Equal(t, int64(1234), cfg.Engine.Seed)
	assert.Equal(t, 8, cfg.Engine.Workers)
	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, "postgres://localhost/circ", cfg.Database.URL)

	params := cfg.Engine.Params()
	assert.Equal(t, 2500, params.NSim)
	assert.Equal(t, int64(1234), params.Seed)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric nsim", "CIRC_NSIM", "lots"},
		{"zero nsim", "CIRC_NSIM", "0"},
		{"fdr q above one", "CIRC_FDR_Q", "1.5"},
		{"fdr q at zero", "CIRC_FDR_Q", "0"},
		{"alpha at one", "CIRC_ALPHA", "1"},
		{"zero workers", "CIRC_WORKERS", "0"},
		{"non-numeric seed", "CIRC_SEED", "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
