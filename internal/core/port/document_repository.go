package port

import (
	"context"

	"github.com/carlos18bp/gym-project-sub003/internal/core/domain"
)

// DocumentFilter narrows document listings.
type DocumentFilter struct {
	State      domain.DocumentState
	CreatedBy  string
	AssignedTo string
	Limit      int
	Offset     int
}

// DocumentRepository handles document persistence. Signer lists and variables
// are loaded together with the document.
type DocumentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	List(ctx context.Context, filter DocumentFilter) ([]domain.Document, error)
	UpdateState(ctx context.Context, id string, state domain.DocumentState) error
}
