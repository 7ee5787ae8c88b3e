package kafka

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/carlos18bp/gym-project-sub003/internal/core/domain"
	"github.com/carlos18bp/gym-project-sub003/internal/core/port"
)

// StubPublisher logs events instead of sending them to Kafka. Useful for development environments.
type StubPublisher struct {
	logger *zap.Logger
}

// NewStubPublisher constructs a development-friendly event publisher.
func NewStubPublisher(logger *zap.Logger) *StubPublisher {
	return &StubPublisher{logger: logger}
}

func (p *StubPublisher) logEvent(eventType, documentID string, at time.Time, payload any) {
	if at.IsZero() {
		at = time.Now().UTC()
	}

	p.logger.Info("Stub event published",
		zap.String("event_type", eventType),
		zap.String("document_id", documentID),
		zap.Time("timestamp", at.UTC()),
		zap.Any("payload", payload),
	)
}

// PublishDocumentSigned logs portal.document.signed events.
func (p *StubPublisher) PublishDocumentSigned(_ context.Context, event domain.DocumentSignedEvent) error {
	payload := map[string]any{
		"document_id":     event.DocumentID,
		"signer_id":       event.SignerID,
		"signer_email":    event.SignerEmail,
		"signed_at":       event.SignedAt,
		"pending_signers": event.PendingSigners,
		"metadata":        event.Metadata,
	}
	p.logEvent("portal.document.signed", event.DocumentID, event.SignedAt, payload)
	return nil
}

// PublishDocumentFullySigned logs portal.document.fully_signed events.
func (p *StubPublisher) PublishDocumentFullySigned(_ context.Context, event domain.DocumentFullySignedEvent) error {
	payload := map[string]any{
		"document_id":  event.DocumentID,
		"signer_count": event.SignerCount,
		"completed_at": event.CompletedAt,
		"metadata":     event.Metadata,
	}
	p.logEvent("portal.document.fully_signed", event.DocumentID, event.CompletedAt, payload)
	return nil
}

// PublishDocumentRejected logs portal.document.rejected events.
func (p *StubPublisher) PublishDocumentRejected(_ context.Context, event domain.DocumentRejectedEvent) error {
	payload := map[string]any{
		"document_id": event.DocumentID,
		"signer_id":   event.SignerID,
		"comment":     event.Comment,
		"rejected_at": event.RejectedAt,
		"metadata":    event.Metadata,
	}
	p.logEvent("portal.document.rejected", event.DocumentID, event.RejectedAt, payload)
	return nil
}

// PublishDocumentExpired logs portal.document.expired events.
func (p *StubPublisher) PublishDocumentExpired(_ context.Context, event domain.DocumentExpiredEvent) error {
	payload := map[string]any{
		"document_id": event.DocumentID,
		"expired_at":  event.ExpiredAt,
		"metadata":    event.Metadata,
	}
	p.logEvent("portal.document.expired", event.DocumentID, event.ExpiredAt, payload)
	return nil
}

// PublishDocumentPublished logs portal.document.published events.
func (p *StubPublisher) PublishDocumentPublished(_ context.Context, event domain.DocumentPublishedEvent) error {
	payload := map[string]any{
		"document_id":  event.DocumentID,
		"published_by": event.PublishedBy,
		"published_at": event.PublishedAt,
		"metadata":     event.Metadata,
	}
	p.logEvent("portal.document.published", event.DocumentID, event.PublishedAt, payload)
	return nil
}

// PublishPermissionsUpdated logs portal.document.permissions_updated events.
func (p *StubPublisher) PublishPermissionsUpdated(_ context.Context, event domain.PermissionsUpdatedEvent) error {
	payload := map[string]any{
		"document_id":      event.DocumentID,
		"updated_by":       event.UpdatedBy,
		"is_public":        event.IsPublic,
		"visibility_count": event.VisibilityCount,
		"usability_count":  event.UsabilityCount,
		"updated_at":       event.UpdatedAt,
		"metadata":         event.Metadata,
	}
	p.logEvent("portal.document.permissions_updated", event.DocumentID, event.UpdatedAt, payload)
	return nil
}

var _ port.EventPublisher = (*StubPublisher)(nil)
