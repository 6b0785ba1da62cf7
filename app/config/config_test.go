package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("POSTBOARD_ENV", "production")
	t.Setenv("POSTBOARD_SERVER__PORT", "9090")
	t.Setenv("POSTBOARD_SERVER__BASE_PATH", "/posts")
	t.Setenv("POSTBOARD_SERVER__REQUEST_TIMEOUT", "250ms")
	t.Setenv("POSTBOARD_STORAGE__PATH", "/tmp/postboard")
	t.Setenv("POSTBOARD_LOG__LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, ":9090", cfg.Server.Addr())
	assert.Equal(t, "/posts", cfg.Server.BasePath)
	assert.Equal(t, 250*time.Millisecond, cfg.Server.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "/tmp/postboard", cfg.Storage.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "unknown driver",
			env:  map[string]string{"POSTBOARD_STORAGE__DRIVER": "mysql"},
		},
		{
			name: "postgres without dsn",
			env:  map[string]string{"POSTBOARD_STORAGE__DRIVER": "postgres"},
		},
		{
			name: "relative base path",
			env:  map[string]string{"POSTBOARD_SERVER__BASE_PATH": "api"},
		},
		{
			name: "unknown log level",
			env:  map[string]string{"POSTBOARD_LOG__LEVEL": "loud"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadPostgres(t *testing.T) {
	t.Setenv("POSTBOARD_STORAGE__DRIVER", "postgres")
	t.Setenv("POSTBOARD_STORAGE__DSN", "host=localhost user=postgres dbname=postboard")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "server.base_path", envKey("POSTBOARD_SERVER__BASE_PATH"))
	assert.Equal(t, "env", envKey("POSTBOARD_ENV"))
}
