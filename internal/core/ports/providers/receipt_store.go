package providers

import (
	"context"
	"time"
)

// ReceiptStore generates pre-signed URLs for receipt files in object storage.
// The expense core only triggers these as opaque side effects; it never
// touches file bytes itself.
type ReceiptStore interface {
	// PresignPut returns a URL the client can PUT the receipt file to.
	PresignPut(ctx context.Context, key string, ttl time.Duration) (string, error)

	// PresignGet returns a URL the client can GET the receipt file from.
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)

	// Delete removes the stored object. Best effort; callers log failures
	// rather than aborting the triggering mutation.
	Delete(ctx context.Context, key string) error
}
