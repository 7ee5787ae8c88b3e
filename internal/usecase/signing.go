package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	uuid "github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/carlos18bp/gym-project-sub003/internal/core/domain"
	"github.com/carlos18bp/gym-project-sub003/internal/core/port"
)

var (
	// ErrSigningNotAllowed indicates the acting user is not an unsigned,
	// listed signer of a document pending signatures.
	ErrSigningNotAllowed = errors.New("user cannot sign this document")
	// ErrRejectionCommentRequired indicates a rejection was attempted without
	// a comment.
	ErrRejectionCommentRequired = errors.New("rejection comment is required")
)

// SigningService coordinates the fire-and-confirm signing flow. The signed
// state is never flipped locally: the gateway call is made, the document is
// refetched, and derived flags are recomputed from the authoritative signer
// list.
type SigningService struct {
	documents          port.DocumentRepository
	gateway            port.SigningGateway
	events             port.EventPublisher
	logger             *zap.Logger
	fullySignedCounter prometheus.Counter
}

// NewSigningService constructs a SigningService.
func NewSigningService(documents port.DocumentRepository, gateway port.SigningGateway, events port.EventPublisher, logger *zap.Logger) *SigningService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SigningService{documents: documents, gateway: gateway, events: events, logger: logger}
}

// WithMetrics attaches a counter incremented each time a document reaches the
// fully signed state.
func (s *SigningService) WithMetrics(fullySigned prometheus.Counter) *SigningService {
	s.fullySignedCounter = fullySigned
	return s
}

// Sign records the acting user's signature through the external gateway and
// returns the refreshed document. The eligibility check runs against a fresh
// copy before dispatch; the gateway re-validates on its side as well.
func (s *SigningService) Sign(ctx context.Context, documentID string, actor domain.User) (*domain.Document, error) {
	doc, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	if !doc.CanUserSign(actor) {
		return nil, ErrSigningNotAllowed
	}

	if err := s.gateway.Sign(ctx, documentID, actor.Email); err != nil {
		return nil, fmt.Errorf("sign document: %w", err)
	}

	fresh, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("reload document: %w", err)
	}

	now := time.Now().UTC()
	s.publish(ctx, func() error {
		return s.events.PublishDocumentSigned(ctx, domain.DocumentSignedEvent{
			EventID:        uuid.NewString(),
			DocumentID:     documentID,
			SignerID:       actor.ID,
			SignerEmail:    actor.Email,
			SignedAt:       now,
			PendingSigners: domain.PendingSigners(fresh.Signatures),
		})
	})

	if domain.IsFullySigned(fresh.Signatures) && fresh.State != domain.StateFullySigned {
		if err := s.documents.UpdateState(ctx, documentID, domain.StateFullySigned); err != nil {
			return nil, fmt.Errorf("mark fully signed: %w", err)
		}
		fresh.State = domain.StateFullySigned
		if s.fullySignedCounter != nil {
			s.fullySignedCounter.Inc()
		}

		s.publish(ctx, func() error {
			return s.events.PublishDocumentFullySigned(ctx, domain.DocumentFullySignedEvent{
				EventID:     uuid.NewString(),
				DocumentID:  documentID,
				SignerCount: len(fresh.Signatures),
				CompletedAt: now,
			})
		})
	}

	return fresh, nil
}

// Reject records a signer's rejection. Rejection ends the signing attempt;
// the document moves to the terminal Rejected state.
func (s *SigningService) Reject(ctx context.Context, documentID string, actor domain.User, comment string) (*domain.Document, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, ErrRejectionCommentRequired
	}

	doc, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	if !doc.CanUserSign(actor) {
		return nil, ErrSigningNotAllowed
	}

	if err := s.gateway.Reject(ctx, documentID, actor.Email, comment); err != nil {
		return nil, fmt.Errorf("reject document: %w", err)
	}

	fresh, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("reload document: %w", err)
	}

	if fresh.State != domain.StateRejected {
		if err := s.documents.UpdateState(ctx, documentID, domain.StateRejected); err != nil {
			return nil, fmt.Errorf("mark rejected: %w", err)
		}
		fresh.State = domain.StateRejected
	}

	s.publish(ctx, func() error {
		return s.events.PublishDocumentRejected(ctx, domain.DocumentRejectedEvent{
			EventID:    uuid.NewString(),
			DocumentID: documentID,
			SignerID:   actor.ID,
			Comment:    comment,
			RejectedAt: time.Now().UTC(),
		})
	})

	return fresh, nil
}

func (s *SigningService) publish(_ context.Context, fn func() error) {
	if s.events == nil {
		return
	}
	if err := fn(); err != nil {
		s.logger.Warn("publish document event failed", zap.Error(err))
	}
}
