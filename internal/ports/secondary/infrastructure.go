package secondary

import (
	"context"
	"io"
	"time"
)

// TokenManager signs and verifies session tokens. Every issued token carries a
// unique id (jti) so it can be revoked through the SessionStore.
type TokenManager interface {
	Generate(userID string) (token string, tokenID string, expiresAt time.Time, err error)
	Validate(token string) (userID string, tokenID string, err error)
}

// SessionStore is the registry of live session tokens. A token whose id is not
// registered is treated as invalid, which makes logout an actual revocation.
type SessionStore interface {
	Add(ctx context.Context, tokenID, userID string, ttl time.Duration) error
	Exists(ctx context.Context, tokenID string) (bool, error)
	Remove(ctx context.Context, tokenID string) error
}

// BlobStorage accepts raw bytes and returns a durable URL.
type BlobStorage interface {
	Put(ctx context.Context, key string, contentType string, body io.Reader) (url string, err error)
	Delete(ctx context.Context, url string) error
}

type MailClient interface {
	SendWelcome(to, firstName string) error
}
