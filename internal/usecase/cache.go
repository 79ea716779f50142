package usecase

import (
	"context"
	"time"
)

// ProfileCache is the read-through cache used by the user usecase. A nil
// implementation (or an unavailable backend) must degrade to a miss.
type ProfileCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
