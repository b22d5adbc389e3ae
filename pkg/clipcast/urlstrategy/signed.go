package urlstrategy

import (
	"context"
	"time"
)

// SignedResolver delegates to the blob store's signing scheme. Every call
// mints a fresh URL; signed URLs are never cached across requests.
type SignedResolver struct {
	signer BlobSigner
	ttl    time.Duration
}

// NewSignedResolver creates a signed URL resolver with a fixed expiry
// window. A non-positive ttl falls back to DefaultSignedTTL.
func NewSignedResolver(signer BlobSigner, ttl time.Duration) *SignedResolver {
	if ttl <= 0 {
		ttl = DefaultSignedTTL
	}
	return &SignedResolver{signer: signer, ttl: ttl}
}

// ResolveURL requests a time-boxed URL for the key from the blob store
func (r *SignedResolver) ResolveURL(ctx context.Context, key string) (string, error) {
	return r.signer.SignedURL(ctx, key, r.ttl)
}
