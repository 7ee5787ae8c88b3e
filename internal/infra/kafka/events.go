package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/carlos18bp/gym-project-sub003/internal/core/domain"
	"github.com/carlos18bp/gym-project-sub003/internal/core/port"
	"github.com/carlos18bp/gym-project-sub003/internal/infra/config"
)

const schemaVersion = "1.0"

// EventPublisher implements port.EventPublisher using Kafka.
type EventPublisher struct {
	producer *Producer
	logger   *zap.Logger
	appCfg   config.AppSettings
}

// NewEventPublisher constructs a Kafka-backed event publisher.
func NewEventPublisher(producer *Producer, appCfg config.AppSettings, logger *zap.Logger) *EventPublisher {
	return &EventPublisher{producer: producer, appCfg: appCfg, logger: logger}
}

type envelopeMetadata map[string]string

type eventEnvelope struct {
	EventID    string           `json:"event_id"`
	EventType  string           `json:"event_type"`
	DocumentID string           `json:"document_id,omitempty"`
	Timestamp  time.Time        `json:"timestamp"`
	Version    string           `json:"version"`
	Payload    any              `json:"payload"`
	Metadata   envelopeMetadata `json:"metadata,omitempty"`
}

func (p *EventPublisher) publish(ctx context.Context, eventID, eventType, documentID string, ts time.Time, payload any) error {
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	id := eventID
	if id == "" {
		id = uuid.NewString()
	}

	metadata := envelopeMetadata{
		"service":     p.appCfg.Name,
		"environment": p.appCfg.Env,
	}

	envelope := eventEnvelope{
		EventID:    id,
		EventType:  eventType,
		DocumentID: documentID,
		Timestamp:  ts.UTC(),
		Version:    schemaVersion,
		Payload:    payload,
		Metadata:   metadata,
	}

	bytes, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal event envelope: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.producer.TopicName(eventType),
		Key:   sarama.StringEncoder(documentID),
		Value: sarama.ByteEncoder(bytes),
	}

	select {
	case p.producer.Producer().Input() <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PublishDocumentSigned publishes portal.document.signed events.
func (p *EventPublisher) PublishDocumentSigned(ctx context.Context, event domain.DocumentSignedEvent) error {
	payload := struct {
		DocumentID     string         `json:"document_id"`
		SignerID       string         `json:"signer_id"`
		SignerEmail    string         `json:"signer_email"`
		SignedAt       time.Time      `json:"signed_at"`
		PendingSigners int            `json:"pending_signers"`
		Metadata       map[string]any `json:"metadata,omitempty"`
	}{
		DocumentID:     event.DocumentID,
		SignerID:       event.SignerID,
		SignerEmail:    event.SignerEmail,
		SignedAt:       event.SignedAt.UTC(),
		PendingSigners: event.PendingSigners,
		Metadata:       event.Metadata,
	}

	return p.publish(ctx, event.EventID, "portal.document.signed", event.DocumentID, event.SignedAt, payload)
}

// PublishDocumentFullySigned publishes portal.document.fully_signed events.
func (p *EventPublisher) PublishDocumentFullySigned(ctx context.Context, event domain.DocumentFullySignedEvent) error {
	payload := struct {
		DocumentID  string         `json:"document_id"`
		SignerCount int            `json:"signer_count"`
		CompletedAt time.Time      `json:"completed_at"`
		Metadata    map[string]any `json:"metadata,omitempty"`
	}{
		DocumentID:  event.DocumentID,
		SignerCount: event.SignerCount,
		CompletedAt: event.CompletedAt.UTC(),
		Metadata:    event.Metadata,
	}

	return p.publish(ctx, event.EventID, "portal.document.fully_signed", event.DocumentID, event.CompletedAt, payload)
}

// PublishDocumentRejected publishes portal.document.rejected events.
func (p *EventPublisher) PublishDocumentRejected(ctx context.Context, event domain.DocumentRejectedEvent) error {
	payload := struct {
		DocumentID string         `json:"document_id"`
		SignerID   string         `json:"signer_id"`
		Comment    string         `json:"comment"`
		RejectedAt time.Time      `json:"rejected_at"`
		Metadata   map[string]any `json:"metadata,omitempty"`
	}{
		DocumentID: event.DocumentID,
		SignerID:   event.SignerID,
		Comment:    event.Comment,
		RejectedAt: event.RejectedAt.UTC(),
		Metadata:   event.Metadata,
	}

	return p.publish(ctx, event.EventID, "portal.document.rejected", event.DocumentID, event.RejectedAt, payload)
}

// PublishDocumentExpired publishes portal.document.expired events.
func (p *EventPublisher) PublishDocumentExpired(ctx context.Context, event domain.DocumentExpiredEvent) error {
	payload := struct {
		DocumentID string         `json:"document_id"`
		ExpiredAt  time.Time      `json:"expired_at"`
		Metadata   map[string]any `json:"metadata,omitempty"`
	}{
		DocumentID: event.DocumentID,
		ExpiredAt:  event.ExpiredAt.UTC(),
		Metadata:   event.Metadata,
	}

	return p.publish(ctx, event.EventID, "portal.document.expired", event.DocumentID, event.ExpiredAt, payload)
}

// PublishDocumentPublished publishes portal.document.published events.
func (p *EventPublisher) PublishDocumentPublished(ctx context.Context, event domain.DocumentPublishedEvent) error {
	payload := struct {
		DocumentID  string         `json:"document_id"`
		PublishedBy string         `json:"published_by"`
		PublishedAt time.Time      `json:"published_at"`
		Metadata    map[string]any `json:"metadata,omitempty"`
	}{
		DocumentID:  event.DocumentID,
		PublishedBy: event.PublishedBy,
		PublishedAt: event.PublishedAt.UTC(),
		Metadata:    event.Metadata,
	}

	return p.publish(ctx, event.EventID, "portal.document.published", event.DocumentID, event.PublishedAt, payload)
}

// PublishPermissionsUpdated publishes portal.document.permissions_updated events.
func (p *EventPublisher) PublishPermissionsUpdated(ctx context.Context, event domain.PermissionsUpdatedEvent) error {
	payload := struct {
		DocumentID      string         `json:"document_id"`
		UpdatedBy       string         `json:"updated_by"`
		IsPublic        bool           `json:"is_public"`
		VisibilityCount int            `json:"visibility_count"`
		UsabilityCount  int            `json:"usability_count"`
		UpdatedAt       time.Time      `json:"updated_at"`
		Metadata        map[string]any `json:"metadata,omitempty"`
	}{
		DocumentID:      event.DocumentID,
		UpdatedBy:       event.UpdatedBy,
		IsPublic:        event.IsPublic,
		VisibilityCount: event.VisibilityCount,
		UsabilityCount:  event.UsabilityCount,
		UpdatedAt:       event.UpdatedAt.UTC(),
		Metadata:        event.Metadata,
	}

	return p.publish(ctx, event.EventID, "portal.document.permissions_updated", event.DocumentID, event.UpdatedAt, payload)
}

var _ port.EventPublisher = (*EventPublisher)(nil)
