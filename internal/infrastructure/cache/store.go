package cache

import (
	"context"

	"github.com/jh-117/meeting-agenda-builder-sub000/internal/domain/entities"
)

// SessionStore holds edit sessions. Both implementations are
// ephemeral: entries expire after the configured TTL and nothing is
// ever written to durable storage.
type SessionStore interface {
	Get(ctx context.Context, id string) (*entities.EditSession, error)
	Put(ctx context.Context, session *entities.EditSession) error
	Delete(ctx context.Context, id string) error
}
