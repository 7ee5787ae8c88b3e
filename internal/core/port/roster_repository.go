package port

import (
	"context"
	"errors"

	"github.com/carlos18bp/gym-project-sub003/internal/core/domain"
)

// ErrRosterCacheMiss indicates the roster is not present in the cache.
var ErrRosterCacheMiss = errors.New("roster cache miss")

// RosterRepository supplies the full client roster consumed by the role
// cascade. The engine never paginates or filters it at the source.
type RosterRepository interface {
	List(ctx context.Context) ([]domain.Client, error)
}

// RosterCache holds a cached copy of the roster so cascade resolution does not
// hit the primary store on every permission toggle.
type RosterCache interface {
	Get(ctx context.Context) ([]domain.Client, error)
	Set(ctx context.Context, roster []domain.Client) error
	Invalidate(ctx context.Context) error
}
