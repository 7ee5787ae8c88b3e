package postgres

import (
	"context"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/carlos18bp/gym-project-sub003/internal/core/domain"
)

func TestPermissionRepository_Load(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewPermissionRepository(mock)

	accessRows := pgxmock.NewRows([]string{"is_public"}).AddRow(false)
	mock.ExpectQuery(`SELECT is_public FROM portal\.document_access`).WithArgs("doc-1").WillReturnRows(accessRows)

	roleRows := pgxmock.NewRows([]string{"role", "capability"}).
		AddRow(domain.RoleClient, capabilityVisibility).
		AddRow(domain.RoleClient, capabilityUsability)
	mock.ExpectQuery(`SELECT role, capability FROM portal\.document_role_grants`).WithArgs("doc-1").WillReturnRows(roleRows)

	visRows := pgxmock.NewRows([]string{"user_id", "email", "full_name"}).
		AddRow("u9", "dana@example.com", "Dana Reyes")
	mock.ExpectQuery(`SELECT .*FROM portal\.document_user_grants`).
		WithArgs("doc-1", capabilityVisibility).
		WillReturnRows(visRows)

	useRows := pgxmock.NewRows([]string{"user_id", "email", "full_name"})
	mock.ExpectQuery(`SELECT .*FROM portal\.document_user_grants`).
		WithArgs("doc-1", capabilityUsability).
		WillReturnRows(useRows)

	payload, err := repo.Load(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if payload.IsPublic {
		t.Fatalf("expected private payload")
	}
	if len(payload.ActiveRoles.VisibilityRoles) != 1 || payload.ActiveRoles.VisibilityRoles[0] != domain.RoleClient {
		t.Fatalf("unexpected visibility roles: %+v", payload.ActiveRoles.VisibilityRoles)
	}
	if len(payload.ActiveRoles.UsabilityRoles) != 1 || payload.ActiveRoles.UsabilityRoles[0] != domain.RoleClient {
		t.Fatalf("unexpected usability roles: %+v", payload.ActiveRoles.UsabilityRoles)
	}
	if len(payload.Visibility) != 1 || payload.Visibility[0].Email != "dana@example.com" {
		t.Fatalf("unexpected visibility records: %+v", payload.Visibility)
	}
	if len(payload.Usability) != 0 {
		t.Fatalf("expected no usability records, got %+v", payload.Usability)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPermissionRepository_Load_NoAccessRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewPermissionRepository(mock)

	mock.ExpectQuery(`SELECT is_public FROM portal\.document_access`).
		WithArgs("doc-2").
		WillReturnRows(pgxmock.NewRows([]string{"is_public"}))
	mock.ExpectQuery(`SELECT role, capability FROM portal\.document_role_grants`).
		WithArgs("doc-2").
		WillReturnRows(pgxmock.NewRows([]string{"role", "capability"}))
	mock.ExpectQuery(`SELECT .*FROM portal\.document_user_grants`).
		WithArgs("doc-2", capabilityVisibility).
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "email", "full_name"}))
	mock.ExpectQuery(`SELECT .*FROM portal\.document_user_grants`).
		WithArgs("doc-2", capabilityUsability).
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "email", "full_name"}))

	payload, err := repo.Load(context.Background(), "doc-2")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if payload.IsPublic || len(payload.Visibility) != 0 || len(payload.Usability) != 0 {
		t.Fatalf("expected empty private payload, got %+v", payload)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPermissionRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewPermissionRepository(mock)

	wire := domain.CompactWire{
		Visibility: domain.CompactCapability{
			Roles:   []domain.Role{domain.RoleClient},
			UserIDs: []string{"u4"},
		},
		Usability: domain.CompactCapability{
			Roles:   []domain.Role{},
			UserIDs: []string{"u4"},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO portal\.document_access`).
		WithArgs("doc-1", false).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`DELETE FROM portal\.document_role_grants`).
		WithArgs("doc-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`DELETE FROM portal\.document_user_grants`).
		WithArgs("doc-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`INSERT INTO portal\.document_role_grants`).
		WithArgs("doc-1", domain.RoleClient, capabilityVisibility).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO portal\.document_user_grants`).
		WithArgs("doc-1", "u4", capabilityVisibility).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO portal\.document_user_grants`).
		WithArgs("doc-1", "u4", capabilityUsability).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	if err := repo.Create(context.Background(), "doc-1", wire); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPermissionRepository_Create_Public(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewPermissionRepository(mock)

	wire := domain.CompactWire{IsPublic: true}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO portal\.document_access`).
		WithArgs("doc-1", true).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`DELETE FROM portal\.document_role_grants`).
		WithArgs("doc-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec(`DELETE FROM portal\.document_user_grants`).
		WithArgs("doc-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mock.ExpectCommit()

	if err := repo.Create(context.Background(), "doc-1", wire); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPermissionRepository_Update(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewPermissionRepository(mock)

	wire := domain.ExpandedWire{
		Visibility: []string{"u1", "u2"},
		Usability:  []string{"u1"},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO portal\.document_access`).
		WithArgs("doc-1", false).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`DELETE FROM portal\.document_role_grants`).
		WithArgs("doc-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM portal\.document_user_grants`).
		WithArgs("doc-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec(`INSERT INTO portal\.document_user_grants`).
		WithArgs("doc-1", "u1", capabilityVisibility, "doc-1", "u2", capabilityVisibility).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectExec(`INSERT INTO portal\.document_user_grants`).
		WithArgs("doc-1", "u1", capabilityUsability).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	if err := repo.Update(context.Background(), "doc-1", wire); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
