package cart

import (
	"context"

	"gamestore/internal/domain"
)

// Repository persists one cart snapshot per session: the durable slot the
// session's cart state lives in between requests.
type Repository interface {
	Get(ctx context.Context, sessionID string) (*domain.CartSnapshot, error)
	Save(ctx context.Context, sessionID string, snap domain.CartSnapshot) error
	Delete(ctx context.Context, sessionID string) error
}
