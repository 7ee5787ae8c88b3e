package port

import (
	"context"

	"github.com/carlos18bp/gym-project-sub003/internal/core/domain"
)

// EventPublisher delivers document lifecycle events to interested services.
type EventPublisher interface {
	PublishDocumentSigned(ctx context.Context, event domain.DocumentSignedEvent) error
	PublishDocumentFullySigned(ctx context.Context, event domain.DocumentFullySignedEvent) error
	PublishDocumentRejected(ctx context.Context, event domain.DocumentRejectedEvent) error
	PublishDocumentExpired(ctx context.Context, event domain.DocumentExpiredEvent) error
	PublishDocumentPublished(ctx context.Context, event domain.DocumentPublishedEvent) error
	PublishPermissionsUpdated(ctx context.Context, event domain.PermissionsUpdatedEvent) error
}
