// Package config wires repositories, blob stores, URL resolution and auth
// into runnable services from a small declarative configuration.
package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clipcast/clipcast/internal/auth"
	"github.com/clipcast/clipcast/pkg/clipcast"
	repomemory "github.com/clipcast/clipcast/pkg/clipcast/repo/memory"
	repopg "github.com/clipcast/clipcast/pkg/clipcast/repo/postgres"
	fsstorage "github.com/clipcast/clipcast/pkg/clipcast/storage/fs"
	memorystorage "github.com/clipcast/clipcast/pkg/clipcast/storage/memory"
	s3storage "github.com/clipcast/clipcast/pkg/clipcast/storage/s3"
	"github.com/clipcast/clipcast/pkg/clipcast/urlstrategy"
)

// Option applies configuration to a ServerConfig instance
type Option func(*ServerConfig) error

// ServerConfig represents server configuration for the clipcast service
type ServerConfig struct {
	Port        string `env:"PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"development"`

	// DatabaseURL selects the metadata store: "memory" (default) or a
	// postgresql:// connection string
	DatabaseURL string `env:"DATABASE_URL" env-default:"memory"`

	// StorageURL selects the blob store: "memory://", "file:///path", or
	// "s3://bucket?region=...&endpoint=...&path_style=true"
	StorageURL string `env:"STORAGE_URL" env-default:"memory://"`

	// URLMode selects how blob keys become user-facing URLs: "public"
	// (CDN-style, requires CDNBaseURL) or "signed" (expiring URLs minted
	// by the blob store)
	URLMode      string        `env:"URL_MODE" env-default:"public"`
	CDNBaseURL   string        `env:"CDN_BASE_URL"`
	SignedURLTTL time.Duration `env:"SIGNED_URL_TTL" env-default:"1h"`

	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" env-default:"1h"`

	S3AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
}

// Load constructs a ServerConfig by applying the supplied options on top
// of library defaults
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:         "8080",
		Environment:  "development",
		DatabaseURL:  "memory",
		StorageURL:   "memory://",
		URLMode:      string(urlstrategy.ModePublic),
		CDNBaseURL:   "http://localhost:8080/blobs",
		SignedURLTTL: urlstrategy.DefaultSignedTTL,
		TokenTTL:     auth.DefaultTokenTTL,
	}
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if c.DatabaseURL != "memory" &&
		!strings.HasPrefix(c.DatabaseURL, "postgres://") &&
		!strings.HasPrefix(c.DatabaseURL, "postgresql://") {
		return fmt.Errorf("unsupported DATABASE_URL: %s (use 'memory' or 'postgresql://...')", c.DatabaseURL)
	}

	switch urlstrategy.Mode(c.URLMode) {
	case urlstrategy.ModePublic:
		if c.CDNBaseURL == "" {
			return errors.New("CDN_BASE_URL is required in public URL mode")
		}
	case urlstrategy.ModeSigned:
	default:
		return fmt.Errorf("url_mode must be 'public' or 'signed', got %q", c.URLMode)
	}

	if c.JWTSecret == "" {
		return errors.New("JWT secret is required")
	}

	return nil
}

// Services bundles the wired application services
type Services struct {
	Assets clipcast.Service
	Auth   *auth.Service
}

// BuildServices creates the asset coordinator and auth service from the
// configuration
func (c *ServerConfig) BuildServices(ctx context.Context) (*Services, error) {
	store, err := c.buildBlobStore()
	if err != nil {
		return nil, fmt.Errorf("failed to build blob store: %w", err)
	}

	resolver, err := urlstrategy.New(urlstrategy.Mode(c.URLMode), c.CDNBaseURL, store, c.SignedURLTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to build URL resolver: %w", err)
	}

	repo, users, err := c.buildStores(ctx)
	if err != nil {
		return nil, err
	}

	assets, err := clipcast.New(
		clipcast.WithRepository(repo),
		clipcast.WithBlobStore(store),
		clipcast.WithURLResolver(resolver),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build asset service: %w", err)
	}

	authService, err := auth.NewService(users, c.JWTSecret, c.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to build auth service: %w", err)
	}

	return &Services{Assets: assets, Auth: authService}, nil
}

// buildStores creates the metadata repository and user store, sharing one
// connection pool when postgres is configured
func (c *ServerConfig) buildStores(ctx context.Context) (clipcast.Repository, auth.UserStore, error) {
	if c.DatabaseURL == "memory" {
		return repomemory.New(), auth.NewMemoryStore(), nil
	}

	pool, err := pgxpool.New(ctx, c.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return repopg.NewWithPool(pool), auth.NewPostgresStore(pool), nil
}

// buildBlobStore creates a BlobStore from the storage URL
func (c *ServerConfig) buildBlobStore() (clipcast.BlobStore, error) {
	switch {
	case c.StorageURL == "" || c.StorageURL == "memory" || c.StorageURL == "memory://":
		return memorystorage.New(), nil

	case strings.HasPrefix(c.StorageURL, "file://"):
		return fsstorage.New(fsstorage.Config{
			BaseDir: strings.TrimPrefix(c.StorageURL, "file://"),
		})

	case strings.HasPrefix(c.StorageURL, "s3://"):
		return c.buildS3Store()

	default:
		return nil, fmt.Errorf("unsupported STORAGE_URL: %s (use 'memory://', 'file://...', or 's3://...')", c.StorageURL)
	}
}

func (c *ServerConfig) buildS3Store() (clipcast.BlobStore, error) {
	u, err := url.Parse(c.StorageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid s3 storage URL: %w", err)
	}
	if u.Host == "" {
		return nil, errors.New("s3 storage URL requires a bucket name")
	}

	q := u.Query()
	return s3storage.New(s3storage.Config{
		Bucket:                 u.Host,
		Region:                 q.Get("region"),
		Endpoint:               q.Get("endpoint"),
		UsePathStyle:           q.Get("path_style") == "true",
		CreateBucketIfNotExist: q.Get("create_bucket") == "true",
		AccessKeyID:            c.S3AccessKeyID,
		SecretAccessKey:        c.S3SecretAccessKey,
	})
}
