package urlstrategy

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// PublicResolver generates URLs that point directly at a CDN or other
// public origin. No expiry, no credentials.
type PublicResolver struct {
	BaseURL string // e.g. "https://cdn.example.com"
}

// NewPublicResolver creates a public URL resolver
func NewPublicResolver(baseURL string) *PublicResolver {
	return &PublicResolver{BaseURL: strings.TrimSuffix(baseURL, "/")}
}

// ResolveURL returns the base URL joined with the blob key
func (r *PublicResolver) ResolveURL(ctx context.Context, key string) (string, error) {
	if r.BaseURL == "" {
		return "", errors.New("public base URL not configured")
	}
	return fmt.Sprintf("%s/%s", r.BaseURL, key), nil
}
