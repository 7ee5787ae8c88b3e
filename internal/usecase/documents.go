package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/carlos18bp/gym-project-sub003/internal/core/domain"
	"github.com/carlos18bp/gym-project-sub003/internal/core/port"
)

var (
	// ErrPermissionDenied indicates the actor lacks the required role.
	ErrPermissionDenied = errors.New("insufficient permissions")
	// ErrInvalidTransition indicates the document's state does not allow the
	// requested transition.
	ErrInvalidTransition = errors.New("document state does not allow this transition")
	// ErrUnnamedVariables indicates a minute declares placeholders without a
	// display name and cannot be published.
	ErrUnnamedVariables = errors.New("minute has unnamed variables")
)

// DocumentService exposes document reads, the lawyer-only authoring
// transitions, and the per-card action resolution.
type DocumentService struct {
	documents port.DocumentRepository
	events    port.EventPublisher
	logger    *zap.Logger
}

// NewDocumentService constructs a DocumentService.
func NewDocumentService(documents port.DocumentRepository, events port.EventPublisher, logger *zap.Logger) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentService{documents: documents, events: events, logger: logger}
}

// Get returns one document with its signer list and variables.
func (s *DocumentService) Get(ctx context.Context, id string) (*domain.Document, error) {
	return s.documents.GetByID(ctx, id)
}

// List returns documents matching the filter.
func (s *DocumentService) List(ctx context.Context, filter port.DocumentFilter) ([]domain.Document, error) {
	return s.documents.List(ctx, filter)
}

// Publish moves a draft minute to Published. Authoring states are lawyer-only
// and publishing is refused while any variable lacks a display name.
func (s *DocumentService) Publish(ctx context.Context, id string, actor domain.User) (*domain.Document, error) {
	if !actor.IsLawyer() {
		return nil, ErrPermissionDenied
	}

	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	if !domain.CanTransition(doc.State, domain.StatePublished) {
		return nil, ErrInvalidTransition
	}
	if !doc.CanPublish() {
		return nil, ErrUnnamedVariables
	}

	if err := s.documents.UpdateState(ctx, id, domain.StatePublished); err != nil {
		return nil, fmt.Errorf("publish document: %w", err)
	}
	doc.State = domain.StatePublished

	if s.events != nil {
		event := domain.DocumentPublishedEvent{
			EventID:     uuid.NewString(),
			DocumentID:  id,
			PublishedBy: actor.ID,
			PublishedAt: time.Now().UTC(),
		}
		if err := s.events.PublishDocumentPublished(ctx, event); err != nil {
			s.logger.Warn("publish document published event failed", zap.Error(err))
		}
	}

	return doc, nil
}

// RevertToDraft moves a published minute back to Draft.
func (s *DocumentService) RevertToDraft(ctx context.Context, id string, actor domain.User) (*domain.Document, error) {
	if !actor.IsLawyer() {
		return nil, ErrPermissionDenied
	}

	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	if !domain.CanTransition(doc.State, domain.StateDraft) {
		return nil, ErrInvalidTransition
	}

	if err := s.documents.UpdateState(ctx, id, domain.StateDraft); err != nil {
		return nil, fmt.Errorf("revert document: %w", err)
	}
	doc.State = domain.StateDraft

	return doc, nil
}

// MarkExpired is invoked by the deadline collaborator when a signing window
// passes. Expired is terminal for the signing attempt.
func (s *DocumentService) MarkExpired(ctx context.Context, id string) (*domain.Document, error) {
	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	if !domain.CanTransition(doc.State, domain.StateExpired) {
		return nil, ErrInvalidTransition
	}

	if err := s.documents.UpdateState(ctx, id, domain.StateExpired); err != nil {
		return nil, fmt.Errorf("expire document: %w", err)
	}
	doc.State = domain.StateExpired

	if s.events != nil {
		event := domain.DocumentExpiredEvent{
			EventID:    uuid.NewString(),
			DocumentID: id,
			ExpiredAt:  time.Now().UTC(),
		}
		if err := s.events.PublishDocumentExpired(ctx, event); err != nil {
			s.logger.Warn("publish document expired event failed", zap.Error(err))
		}
	}

	return doc, nil
}

// Actions resolves the ordered action list for one document card.
func (s *DocumentService) Actions(ctx context.Context, id string, card domain.CardType, listCtx domain.ListContext, actor domain.User) ([]domain.Action, error) {
	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	return domain.ActionsFor(card, *doc, listCtx, actor), nil
}
