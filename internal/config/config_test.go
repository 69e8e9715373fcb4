package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"ENVIRONMENT", "PORT", "DATABASE_DRIVER", "DATABASE_URL", "DB_MAX_CONNS", "DEBUG", "LOG_DIR"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "./data/threadline.db", cfg.DatabaseURL)
	assert.Equal(t, 8, cfg.DBMaxConns)
	assert.True(t, cfg.Debug)
	assert.Empty(t, cfg.LogDir)
}

func TestLoadProd(t *testing.T) {
	t.Setenv("ENVIRONMENT", "prod")
	t.Setenv("DEBUG", "")
	t.Setenv("DATABASE_DRIVER", "Postgres")
	t.Setenv("DB_MAX_CONNS", "not-a-number")

	cfg := Load()

	assert.False(t, cfg.Debug)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, 8, cfg.DBMaxConns)
}

func TestGetTablePrefix(t *testing.T) {
	if prev, ok := os.LookupEnv("TABLE_PREFIX"); ok {
		os.Unsetenv("TABLE_PREFIX")
		t.Cleanup(func() { os.Setenv("TABLE_PREFIX", prev) })
	}

	tests := []struct {
		name     string
		env      string
		override *string
		want     string
	}{
		{name: "prod", env: "prod", want: "prod_"},
		{name: "test", env: "test", want: "test_"},
		{name: "dev", env: "dev", want: "dev_"},
		{name: "unknown falls back to dev", env: "staging", want: "dev_"},
		{name: "override", env: "prod", override: strPtr("custom_"), want: "custom_"},
		{name: "empty override disables prefix", env: "prod", override: strPtr(""), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.override != nil {
				t.Setenv("TABLE_PREFIX", *tt.override)
			}
			assert.Equal(t, tt.want, getTablePrefix(tt.env))
		})
	}
}

func strPtr(s string) *string { return &s }
