package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/carlos18bp/gym-project-sub003/internal/core/domain"
	"github.com/carlos18bp/gym-project-sub003/internal/core/port"
	"github.com/carlos18bp/gym-project-sub003/internal/repository"
)

func TestDocumentRepository_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewDocumentRepository(mock)

	docRows := pgxmock.NewRows([]string{
		"id", "title", "state", "requires_signature", "created_by", "assigned_to", "relationships_count",
	}).AddRow(
		"doc-1", "Engagement Letter", domain.StatePendingSignatures, true, "u4", "u1", 2,
	)
	mock.ExpectQuery(`SELECT .*FROM portal\.documents`).WithArgs("doc-1").WillReturnRows(docRows)

	sigRows := pgxmock.NewRows([]string{"signer_email", "signed", "COALESCE(rejection_comment, '')"}).
		AddRow("alice@example.com", true, "").
		AddRow("bob@example.com", false, "")
	mock.ExpectQuery(`SELECT .*FROM portal\.signatures`).WithArgs("doc-1").WillReturnRows(sigRows)

	varRows := pgxmock.NewRows([]string{"id", "name", "COALESCE(value, '')"}).
		AddRow("var-1", "client_name", "ACME")
	mock.ExpectQuery(`SELECT .*FROM portal\.document_variables`).WithArgs("doc-1").WillReturnRows(varRows)

	doc, err := repo.GetByID(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if doc.ID != "doc-1" || doc.State != domain.StatePendingSignatures {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if len(doc.Signatures) != 2 || doc.Signatures[0].SignerEmail != "alice@example.com" {
		t.Fatalf("unexpected signatures: %+v", doc.Signatures)
	}
	if len(doc.Variables) != 1 || doc.Variables[0].Name != "client_name" {
		t.Fatalf("unexpected variables: %+v", doc.Variables)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDocumentRepository_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewDocumentRepository(mock)

	mock.ExpectQuery(`SELECT .*FROM portal\.documents`).WithArgs("missing").WillReturnError(pgx.ErrNoRows)

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDocumentRepository_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewDocumentRepository(mock)

	rows := pgxmock.NewRows([]string{
		"id", "title", "state", "requires_signature", "created_by", "assigned_to", "relationships_count",
	}).AddRow(
		"doc-1", "Lease", domain.StatePublished, false, "u4", "", 0,
	).AddRow(
		"doc-2", "NDA", domain.StatePublished, true, "u4", "u2", 1,
	)

	mock.ExpectQuery(`SELECT .*FROM portal\.documents`).
		WithArgs(domain.StatePublished, "u4").
		WillReturnRows(rows)

	docs, err := repo.List(context.Background(), port.DocumentFilter{
		State:     domain.StatePublished,
		CreatedBy: "u4",
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(docs) != 2 || docs[0].ID != "doc-1" || docs[1].ID != "doc-2" {
		t.Fatalf("unexpected documents: %+v", docs)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDocumentRepository_UpdateState(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewDocumentRepository(mock)

	mock.ExpectExec(`UPDATE portal\.documents`).
		WithArgs(domain.StateFullySigned, "doc-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	if err := repo.UpdateState(context.Background(), "doc-1", domain.StateFullySigned); err != nil {
		t.Fatalf("UpdateState returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDocumentRepository_UpdateState_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewDocumentRepository(mock)

	mock.ExpectExec(`UPDATE portal\.documents`).
		WithArgs(domain.StateExpired, "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	if err := repo.UpdateState(context.Background(), "missing", domain.StateExpired); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
