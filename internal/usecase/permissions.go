package usecase

import (
	"context"
	"fmt"
	"time"

	uuid "github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/carlos18bp/gym-project-sub003/internal/core/domain"
	"github.com/carlos18bp/gym-project-sub003/internal/core/port"
)

// PermissionService loads, mutates, and saves per-document permission sets.
// Mutations are local-first: toggles apply to the in-memory set in call order
// and only a save attempt reaches the store, so a failed save leaves the set
// intact for retry.
type PermissionService struct {
	permissions  port.PermissionRepository
	roster       *RosterService
	events       port.EventPublisher
	logger       *zap.Logger
	savesCounter prometheus.Counter
}

// NewPermissionService constructs a PermissionService.
func NewPermissionService(permissions port.PermissionRepository, roster *RosterService, events port.EventPublisher, logger *zap.Logger) *PermissionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PermissionService{permissions: permissions, roster: roster, events: events, logger: logger}
}

// WithMetrics attaches a counter incremented on each persisted save.
func (s *PermissionService) WithMetrics(saves prometheus.Counter) *PermissionService {
	s.savesCounter = saves
	return s
}

// Load builds the PermissionSet for a document from the stored payload and the
// current roster.
func (s *PermissionService) Load(ctx context.Context, documentID string) (*domain.PermissionSet, error) {
	payload, err := s.permissions.Load(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("load permissions: %w", err)
	}

	roster, err := s.roster.List(ctx)
	if err != nil {
		return nil, err
	}

	return domain.NewPermissionSet(payload, roster), nil
}

// ToggleUserVisibility toggles an individual visibility grant for the roster
// entry identified by key.
func (s *PermissionService) ToggleUserVisibility(ctx context.Context, set *domain.PermissionSet, key string) error {
	client, err := s.roster.FindByKey(ctx, key)
	if err != nil {
		return err
	}
	set.ToggleUserVisibility(client)
	return nil
}

// ToggleUserUsability toggles an individual usability grant. The precondition
// failure (no visibility) is surfaced to the caller as a warning; the set is
// unchanged in that case.
func (s *PermissionService) ToggleUserUsability(ctx context.Context, set *domain.PermissionSet, key string) error {
	client, err := s.roster.FindByKey(ctx, key)
	if err != nil {
		return err
	}
	return set.ToggleUserUsability(client)
}

// ToggleRoleVisibility toggles a role grant, cascading materialization or
// revocation over the role's current members.
func (s *PermissionService) ToggleRoleVisibility(ctx context.Context, set *domain.PermissionSet, code domain.Role) error {
	roster, err := s.roster.List(ctx)
	if err != nil {
		return err
	}
	set.ToggleRoleVisibility(code, roster)
	return nil
}

// ToggleRoleUsability toggles a role's usability grant.
func (s *PermissionService) ToggleRoleUsability(ctx context.Context, set *domain.PermissionSet, code domain.Role) error {
	roster, err := s.roster.List(ctx)
	if err != nil {
		return err
	}
	return set.ToggleRoleUsability(code, roster)
}

// TogglePublic flips the document's public flag on the working set.
func (s *PermissionService) TogglePublic(_ context.Context, set *domain.PermissionSet) {
	set.TogglePublic()
}

// SaveNew persists a freshly created document's permissions using the compact
// serialization.
func (s *PermissionService) SaveNew(ctx context.Context, documentID string, set *domain.PermissionSet, actor domain.User) error {
	if err := s.permissions.Create(ctx, documentID, set.WireCompact()); err != nil {
		return fmt.Errorf("create permissions: %w", err)
	}
	if s.savesCounter != nil {
		s.savesCounter.Inc()
	}

	s.publishUpdated(ctx, documentID, set, actor)
	return nil
}

// SaveExisting persists an updated permission set using the expanded
// serialization, with role grants resolved against the current roster.
func (s *PermissionService) SaveExisting(ctx context.Context, documentID string, set *domain.PermissionSet, actor domain.User) error {
	roster, err := s.roster.List(ctx)
	if err != nil {
		return err
	}

	if err := s.permissions.Update(ctx, documentID, set.WireExpanded(roster)); err != nil {
		return fmt.Errorf("update permissions: %w", err)
	}
	if s.savesCounter != nil {
		s.savesCounter.Inc()
	}

	s.publishUpdated(ctx, documentID, set, actor)
	return nil
}

func (s *PermissionService) publishUpdated(ctx context.Context, documentID string, set *domain.PermissionSet, actor domain.User) {
	if s.events == nil {
		return
	}

	event := domain.PermissionsUpdatedEvent{
		EventID:         uuid.NewString(),
		DocumentID:      documentID,
		UpdatedBy:       actor.ID,
		IsPublic:        set.Public,
		VisibilityCount: len(set.Visibility),
		UsabilityCount:  len(set.Usability),
		UpdatedAt:       time.Now().UTC(),
	}

	if err := s.events.PublishPermissionsUpdated(ctx, event); err != nil {
		s.logger.Warn("publish permissions updated event failed",
			zap.String("document_id", documentID),
			zap.Error(err),
		)
	}
}
