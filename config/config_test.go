package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayRates(t *testing.T) {
	t.Run("valid list", func(t *testing.T) {
		rates, err := parsePayRates("dealer:250, Host:180,security:150")
		require.NoError(t, err)
		assert.Equal(t, int64(250), rates["dealer"])
		assert.Equal(t, int64(180), rates["host"])
		assert.Equal(t, int64(150), rates["security"])
	})

	t.Run("missing rate", func(t *testing.T) {
		_, err := parsePayRates("dealer")
		assert.Error(t, err)
	})

	t.Run("non-numeric rate", func(t *testing.T) {
		_, err := parsePayRates("dealer:lots")
		assert.Error(t, err)
	})

	t.Run("empty list", func(t *testing.T) {
		_, err := parsePayRates(" , ")
		assert.Error(t, err)
	})
}

func TestLoad_PoolSizing(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")

	t.Run("defaults to zero, database package decides", func(t *testing.T) {
		cfg, err := load()
		require.NoError(t, err)
		assert.Zero(t, cfg.DatabaseMaxConns)
		assert.Zero(t, cfg.DatabaseMinConns)
	})

	t.Run("explicit sizing", func(t *testing.T) {
		t.Setenv("DATABASE_MAX_CONNS", "16")
		t.Setenv("DATABASE_MIN_CONNS", "4")
		cfg, err := load()
		require.NoError(t, err)
		assert.Equal(t, int32(16), cfg.DatabaseMaxConns)
		assert.Equal(t, int32(4), cfg.DatabaseMinConns)
	})

	t.Run("non-numeric sizing", func(t *testing.T) {
		t.Setenv("DATABASE_MAX_CONNS", "many")
		_, err := load()
		assert.Error(t, err)
	})
}

func TestIsDeveloper(t *testing.T) {
	cfg := &Config{DeveloperIDs: []int64{111, 222}}
	assert.True(t, cfg.IsDeveloper(111))
	assert.False(t, cfg.IsDeveloper(333))
}
