package port

import (
	"context"

	"github.com/carlos18bp/gym-project-sub003/internal/core/domain"
)

// PermissionRepository manages per-document permission storage. Load returns
// the raw payload a PermissionSet is constructed from; Create consumes the
// compact serialization and Update the expanded one.
type PermissionRepository interface {
	Load(ctx context.Context, documentID string) (domain.PermissionPayload, error)
	Create(ctx context.Context, documentID string, wire domain.CompactWire) error
	Update(ctx context.Context, documentID string, wire domain.ExpandedWire) error
}
