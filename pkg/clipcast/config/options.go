package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// WithEnv applies environment variable overrides via cleanenv. See the
// ServerConfig struct tags for the variable names.
func WithEnv() Option {
	return func(c *ServerConfig) error {
		return cleanenv.ReadEnv(c)
	}
}

// WithPort sets the HTTP listen port
func WithPort(port string) Option {
	return func(c *ServerConfig) error {
		c.Port = port
		return nil
	}
}

// WithDatabase sets the metadata store URL ("memory" or postgresql://)
func WithDatabase(databaseURL string) Option {
	return func(c *ServerConfig) error {
		c.DatabaseURL = databaseURL
		return nil
	}
}

// WithStorage sets the blob store URL (memory://, file://, s3://)
func WithStorage(storageURL string) Option {
	return func(c *ServerConfig) error {
		c.StorageURL = storageURL
		return nil
	}
}

// WithPublicURLs serves blob access through a fixed public base URL
func WithPublicURLs(cdnBaseURL string) Option {
	return func(c *ServerConfig) error {
		c.URLMode = "public"
		c.CDNBaseURL = cdnBaseURL
		return nil
	}
}

// WithSignedURLs serves blob access through expiring signed URLs
func WithSignedURLs(ttl time.Duration) Option {
	return func(c *ServerConfig) error {
		c.URLMode = "signed"
		c.SignedURLTTL = ttl
		return nil
	}
}

// WithJWTSecret sets the token signing secret
func WithJWTSecret(secret string) Option {
	return func(c *ServerConfig) error {
		c.JWTSecret = secret
		return nil
	}
}
