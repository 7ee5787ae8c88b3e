package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/carlos18bp/gym-project-sub003/internal/core/domain"
)

func TestDocumentService_Publish_LawyerOnly(t *testing.T) {
	repo := &docRepoMock{docs: map[string]domain.Document{
		"doc-1": {ID: "doc-1", State: domain.StateDraft},
	}}
	service := NewDocumentService(repo, &publisherMock{}, nil)

	_, err := service.Publish(context.Background(), "doc-1", domain.User{Role: domain.RoleClient})
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestDocumentService_Publish_RequiresDraftState(t *testing.T) {
	repo := &docRepoMock{docs: map[string]domain.Document{
		"doc-1": {ID: "doc-1", State: domain.StateCompleted},
	}}
	service := NewDocumentService(repo, &publisherMock{}, nil)

	_, err := service.Publish(context.Background(), "doc-1", domain.User{Role: domain.RoleLawyer})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestDocumentService_Publish_RefusesUnnamedVariables(t *testing.T) {
	repo := &docRepoMock{docs: map[string]domain.Document{
		"doc-1": {
			ID:        "doc-1",
			State:     domain.StateDraft,
			Variables: []domain.DocumentVariable{{ID: "v1", Name: ""}},
		},
	}}
	service := NewDocumentService(repo, &publisherMock{}, nil)

	_, err := service.Publish(context.Background(), "doc-1", domain.User{Role: domain.RoleLawyer})
	if !errors.Is(err, ErrUnnamedVariables) {
		t.Fatalf("expected ErrUnnamedVariables, got %v", err)
	}
}

func TestDocumentService_Publish_Success(t *testing.T) {
	repo := &docRepoMock{docs: map[string]domain.Document{
		"doc-1": {ID: "doc-1", State: domain.StateDraft},
	}}
	events := &publisherMock{}
	service := NewDocumentService(repo, events, nil)

	doc, err := service.Publish(context.Background(), "doc-1", domain.User{ID: "lawyer-1", Role: domain.RoleLawyer})
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	if doc.State != domain.StatePublished {
		t.Errorf("expected Published, got %s", doc.State)
	}
	if len(events.published) != 1 || events.published[0].PublishedBy != "lawyer-1" {
		t.Errorf("expected published event from lawyer-1, got %+v", events.published)
	}
}

func TestDocumentService_RevertToDraft(t *testing.T) {
	repo := &docRepoMock{docs: map[string]domain.Document{
		"doc-1": {ID: "doc-1", State: domain.StatePublished},
	}}
	service := NewDocumentService(repo, &publisherMock{}, nil)

	doc, err := service.RevertToDraft(context.Background(), "doc-1", domain.User{Role: domain.RoleLawyer})
	if err != nil {
		t.Fatalf("RevertToDraft failed: %v", err)
	}
	if doc.State != domain.StateDraft {
		t.Errorf("expected Draft, got %s", doc.State)
	}
}

func TestDocumentService_MarkExpired_OnlyWhilePending(t *testing.T) {
	repo := &docRepoMock{docs: map[string]domain.Document{
		"pending": {ID: "pending", State: domain.StatePendingSignatures},
		"signed":  {ID: "signed", State: domain.StateFullySigned},
	}}
	events := &publisherMock{}
	service := NewDocumentService(repo, events, nil)

	doc, err := service.MarkExpired(context.Background(), "pending")
	if err != nil {
		t.Fatalf("MarkExpired failed: %v", err)
	}
	if doc.State != domain.StateExpired {
		t.Errorf("expected Expired, got %s", doc.State)
	}
	if len(events.expired) != 1 {
		t.Errorf("expected expired event, got %d", len(events.expired))
	}

	_, err = service.MarkExpired(context.Background(), "signed")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for fully signed document, got %v", err)
	}
}

func TestDocumentService_Actions_DelegatesToGate(t *testing.T) {
	repo := &docRepoMock{docs: map[string]domain.Document{
		"doc-1": {ID: "doc-1", State: domain.StateCompleted},
	}}
	service := NewDocumentService(repo, &publisherMock{}, nil)

	actions, err := service.Actions(context.Background(), "doc-1", domain.CardClient, domain.ContextMyDocuments, domain.User{Role: domain.RoleBasic})
	if err != nil {
		t.Fatalf("Actions failed: %v", err)
	}
	if len(actions) == 0 {
		t.Fatal("expected non-empty action list for client card")
	}

	for _, action := range actions {
		if action.Action == domain.ActionDownloadWord && !action.Disabled {
			t.Error("downloadWord must be disabled for basic tier")
		}
	}
}
