// Package urlstrategy derives user-facing access URLs for blob keys.
// Which strategy is in effect is a configuration choice, not a per-call
// choice.
package urlstrategy

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Resolver turns a blob key into a URL a client can fetch
type Resolver interface {
	ResolveURL(ctx context.Context, key string) (string, error)
}

// Mode selects the URL resolution strategy
type Mode string

const (
	// ModePublic concatenates a fixed CDN-style base URL and the key
	ModePublic Mode = "public"

	// ModeSigned mints a fresh expiring URL from the blob store per call
	ModeSigned Mode = "signed"
)

// DefaultSignedTTL is the expiry window for signed URLs when none is
// configured.
const DefaultSignedTTL = time.Hour

// BlobSigner is the slice of the blob store needed for signed URLs
type BlobSigner interface {
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// New builds a Resolver for the given mode. ModePublic requires a base
// URL; ModeSigned requires a signer.
func New(mode Mode, baseURL string, signer BlobSigner, ttl time.Duration) (Resolver, error) {
	switch mode {
	case ModePublic:
		if baseURL == "" {
			return nil, errors.New("public URL mode requires a base URL")
		}
		return NewPublicResolver(baseURL), nil
	case ModeSigned:
		if signer == nil {
			return nil, errors.New("signed URL mode requires a blob store that can sign URLs")
		}
		return NewSignedResolver(signer, ttl), nil
	default:
		return nil, fmt.Errorf("unknown URL mode: %q", mode)
	}
}
