package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/carlos18bp/gym-project-sub003/internal/core/domain"
	"github.com/carlos18bp/gym-project-sub003/internal/core/port"
)

// ErrClientNotFound is returned when a grant references a roster entry that no
// longer resolves.
var ErrClientNotFound = errors.New("client not found in roster")

// RosterService supplies the client roster the role cascade resolves against,
// reading through a cache so permission toggles do not hit the primary store.
type RosterService struct {
	store  port.RosterRepository
	cache  port.RosterCache
	logger *zap.Logger
}

// NewRosterService constructs a RosterService.
func NewRosterService(store port.RosterRepository, cache port.RosterCache, logger *zap.Logger) *RosterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{store: store, cache: cache, logger: logger}
}

// List returns the full roster, preferring the cached copy.
func (s *RosterService) List(ctx context.Context) ([]domain.Client, error) {
	if s.cache != nil {
		roster, err := s.cache.Get(ctx)
		if err == nil {
			return roster, nil
		}
		if !errors.Is(err, port.ErrRosterCacheMiss) {
			s.logger.Warn("roster cache read failed", zap.Error(err))
		}
	}

	roster, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, roster); err != nil {
			s.logger.Warn("roster cache write failed", zap.Error(err))
		}
	}

	return roster, nil
}

// Search filters a local copy of the roster by email or full name. The match
// is case-insensitive and an empty query returns everything.
func (s *RosterService) Search(ctx context.Context, query string) ([]domain.Client, error) {
	roster, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return roster, nil
	}

	matches := make([]domain.Client, 0, len(roster))
	for _, client := range roster {
		if strings.Contains(strings.ToLower(client.Email), query) ||
			strings.Contains(strings.ToLower(client.FullName), query) {
			matches = append(matches, client)
		}
	}
	return matches, nil
}

// FindByKey locates the roster entry grants are keyed by.
func (s *RosterService) FindByKey(ctx context.Context, key string) (domain.Client, error) {
	roster, err := s.List(ctx)
	if err != nil {
		return domain.Client{}, err
	}

	for _, client := range roster {
		if client.GrantKey() == key {
			return client, nil
		}
	}
	return domain.Client{}, ErrClientNotFound
}

// Invalidate drops the cached roster copy.
func (s *RosterService) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		return fmt.Errorf("invalidate roster cache: %w", err)
	}
	return nil
}
