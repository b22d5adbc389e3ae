package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(WithJWTSecret("test-secret"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "memory", cfg.DatabaseURL)
	assert.Equal(t, "memory://", cfg.StorageURL)
	assert.Equal(t, "public", cfg.URLMode)
	assert.NotEmpty(t, cfg.CDNBaseURL)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("TOKEN_TTL", "30m")

	cfg, err := Load(WithEnv())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "env-secret", cfg.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		options     []Option
		expectError bool
	}{
		{
			name:        "valid defaults",
			options:     []Option{WithJWTSecret("s")},
			expectError: false,
		},
		{
			name:        "bad database url",
			options:     []Option{WithJWTSecret("s"), WithDatabase("mysql://nope")},
			expectError: true,
		},
		{
			name:        "postgres database url",
			options:     []Option{WithJWTSecret("s"), WithDatabase("postgresql://localhost/clipcast")},
			expectError: false,
		},
		{
			name:        "public mode without base url",
			options:     []Option{WithJWTSecret("s"), WithPublicURLs("")},
			expectError: true,
		},
		{
			name:        "signed mode needs no base url",
			options:     []Option{WithJWTSecret("s"), WithSignedURLs(15 * time.Minute)},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.options...)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBuildServicesMemory(t *testing.T) {
	cfg, err := Load(WithJWTSecret("test-secret"))
	require.NoError(t, err)

	services, err := cfg.BuildServices(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, services.Assets)
	assert.NotNil(t, services.Auth)
}

func TestBuildServicesFileStorage(t *testing.T) {
	cfg, err := Load(
		WithJWTSecret("test-secret"),
		WithStorage("file://"+t.TempDir()),
	)
	require.NoError(t, err)

	services, err := cfg.BuildServices(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, services.Assets)
}

func TestBuildBlobStoreRejectsUnknownScheme(t *testing.T) {
	cfg, err := Load(WithJWTSecret("test-secret"), WithStorage("ftp://nope"))
	require.NoError(t, err)

	_, err = cfg.buildBlobStore()
	assert.Error(t, err)
}

func TestBuildS3StoreRequiresBucket(t *testing.T) {
	cfg := defaults()
	cfg.StorageURL = "s3://"

	_, err := cfg.buildS3Store()
	assert.Error(t, err)
}
