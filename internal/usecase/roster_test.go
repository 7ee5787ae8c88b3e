package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/carlos18bp/gym-project-sub003/internal/core/domain"
	"github.com/carlos18bp/gym-project-sub003/internal/core/port"
)

type rosterCacheMock struct {
	roster      []domain.Client
	primed      bool
	sets        int
	invalidated int
	getErr      error
}

func (m *rosterCacheMock) Get(_ context.Context) ([]domain.Client, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if !m.primed {
		return nil, port.ErrRosterCacheMiss
	}
	return m.roster, nil
}

func (m *rosterCacheMock) Set(_ context.Context, roster []domain.Client) error {
	m.roster = roster
	m.primed = true
	m.sets++
	return nil
}

func (m *rosterCacheMock) Invalidate(_ context.Context) error {
	m.roster = nil
	m.primed = false
	m.invalidated++
	return nil
}

func TestRosterService_List_PopulatesCacheOnMiss(t *testing.T) {
	store := &rosterStoreMock{roster: permTestRoster()}
	cache := &rosterCacheMock{}
	service := NewRosterService(store, cache, nil)

	roster, err := service.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(roster) != 3 {
		t.Fatalf("expected 3 roster entries, got %d", len(roster))
	}
	if cache.sets != 1 {
		t.Errorf("expected cache to be populated once, got %d", cache.sets)
	}

	// Second read hits the cache.
	if _, err := service.List(context.Background()); err != nil {
		t.Fatalf("cached List failed: %v", err)
	}
	if store.calls != 1 {
		t.Errorf("expected single store read, got %d", store.calls)
	}
}

func TestRosterService_List_CacheFailureFallsBackToStore(t *testing.T) {
	store := &rosterStoreMock{roster: permTestRoster()}
	cache := &rosterCacheMock{getErr: errors.New("redis down")}
	service := NewRosterService(store, cache, nil)

	roster, err := service.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(roster) != 3 {
		t.Errorf("expected roster from store, got %d entries", len(roster))
	}
}

func TestRosterService_Search_FiltersByEmailAndName(t *testing.T) {
	service := NewRosterService(&rosterStoreMock{roster: permTestRoster()}, nil, nil)

	byEmail, err := service.Search(context.Background(), "u1@")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(byEmail) != 1 || byEmail[0].UserID != "u1" {
		t.Errorf("expected [u1], got %v", byEmail)
	}

	byName, err := service.Search(context.Background(), "user t")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(byName) != 2 {
		t.Errorf("expected 2 matches for 'user t', got %d", len(byName))
	}

	all, err := service.Search(context.Background(), "  ")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("blank query must return everything, got %d", len(all))
	}
}

func TestRosterService_FindByKey(t *testing.T) {
	service := NewRosterService(&rosterStoreMock{roster: permTestRoster()}, nil, nil)

	client, err := service.FindByKey(context.Background(), "u2")
	if err != nil {
		t.Fatalf("FindByKey failed: %v", err)
	}
	if client.Email != "u2@x.com" {
		t.Errorf("expected u2@x.com, got %s", client.Email)
	}

	_, err = service.FindByKey(context.Background(), "absent")
	if !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestRosterService_Invalidate(t *testing.T) {
	cache := &rosterCacheMock{}
	service := NewRosterService(&rosterStoreMock{roster: permTestRoster()}, cache, nil)

	if _, err := service.List(context.Background()); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if err := service.Invalidate(context.Background()); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}
	if cache.invalidated != 1 {
		t.Errorf("expected 1 invalidation, got %d", cache.invalidated)
	}
}
