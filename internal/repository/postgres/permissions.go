package postgres

import (
	"context"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/carlos18bp/gym-project-sub003/internal/core/domain"
)

const (
	capabilityVisibility = "visibility"
	capabilityUsability  = "usability"
)

// pgPool is the executor surface permission writes need: plain statements plus
// transactions. Satisfied by *pgxpool.Pool and by pgxmock pools.
type pgPool interface {
	pgExecutor
	pgTxStarter
}

// PermissionRepository persists per-document access state: the public flag,
// active role grants, and individual user grants. User grants store only the
// user id; email and full name are rehydrated from the roster at load time.
type PermissionRepository struct {
	db      pgPool
	builder squirrel.StatementBuilderType
}

func NewPermissionRepository(db pgPool) *PermissionRepository {
	return &PermissionRepository{
		db:      db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Load returns the raw permission payload for a document. A document with no
// access row yet is reported as private with no grants.
func (r *PermissionRepository) Load(ctx context.Context, documentID string) (domain.PermissionPayload, error) {
	var payload domain.PermissionPayload

	stmt, args, err := r.builder.
		Select("is_public").
		From("portal.document_access").
		Where(squirrel.Eq{"document_id": documentID}).
		Limit(1).
		ToSql()
	if err != nil {
		return payload, fmt.Errorf("build select access sql: %w", err)
	}
	if err := r.db.QueryRow(ctx, stmt, args...).Scan(&payload.IsPublic); err != nil && err != pgx.ErrNoRows {
		return payload, fmt.Errorf("scan access flag: %w", err)
	}

	payload.ActiveRoles.VisibilityRoles, payload.ActiveRoles.UsabilityRoles, err = r.roleGrants(ctx, documentID)
	if err != nil {
		return payload, err
	}

	payload.Visibility, err = r.userGrants(ctx, documentID, capabilityVisibility)
	if err != nil {
		return payload, err
	}
	payload.Usability, err = r.userGrants(ctx, documentID, capabilityUsability)
	if err != nil {
		return payload, err
	}

	return payload, nil
}

func (r *PermissionRepository) roleGrants(ctx context.Context, documentID string) ([]domain.Role, []domain.Role, error) {
	stmt, args, err := r.builder.
		Select("role", "capability").
		From("portal.document_role_grants").
		Where(squirrel.Eq{"document_id": documentID}).
		ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("build select role grants sql: %w", err)
	}

	rows, err := r.db.Query(ctx, stmt, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("query role grants: %w", err)
	}
	defer rows.Close()

	var visibility, usability []domain.Role
	for rows.Next() {
		var role domain.Role
		var cap string
		if err := rows.Scan(&role, &cap); err != nil {
			return nil, nil, fmt.Errorf("scan role grant: %w", err)
		}
		if cap == capabilityUsability {
			usability = append(usability, role)
		} else {
			visibility = append(visibility, role)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate role grants: %w", err)
	}

	return visibility, usability, nil
}

func (r *PermissionRepository) userGrants(ctx context.Context, documentID, cap string) ([]domain.PermissionRecord, error) {
	stmt, args, err := r.builder.
		Select("g.user_id", "COALESCE(c.email, '')", "COALESCE(c.full_name, '')").
		From("portal.document_user_grants g").
		LeftJoin("portal.clients c ON COALESCE(NULLIF(c.user_id, ''), c.id) = g.user_id").
		Where(squirrel.Eq{"g.document_id": documentID}).
		Where(squirrel.Eq{"g.capability": cap}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user grants sql: %w", err)
	}

	rows, err := r.db.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query user grants: %w", err)
	}
	defer rows.Close()

	var records []domain.PermissionRecord
	for rows.Next() {
		var record domain.PermissionRecord
		if err := rows.Scan(&record.UserID, &record.Email, &record.FullName); err != nil {
			return nil, fmt.Errorf("scan user grant: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user grants: %w", err)
	}

	return records, nil
}

// Create stores the compact serialization for a fresh document in one
// transaction: the access flag, the symbolic role grants, and the explicit
// user grant ids.
func (r *PermissionRepository) Create(ctx context.Context, documentID string, wire domain.CompactWire) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create permissions tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := r.upsertAccess(ctx, tx, documentID, wire.IsPublic); err != nil {
		return err
	}
	if err := r.clearGrants(ctx, tx, documentID); err != nil {
		return err
	}

	if !wire.IsPublic {
		if err := r.insertRoleGrants(ctx, tx, documentID, capabilityVisibility, wire.Visibility.Roles); err != nil {
			return err
		}
		if err := r.insertRoleGrants(ctx, tx, documentID, capabilityUsability, wire.Usability.Roles); err != nil {
			return err
		}
		if err := r.insertUserGrants(ctx, tx, documentID, capabilityVisibility, wire.Visibility.UserIDs); err != nil {
			return err
		}
		if err := r.insertUserGrants(ctx, tx, documentID, capabilityUsability, wire.Usability.UserIDs); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create permissions tx: %w", err)
	}

	return nil
}

// Update replaces a document's stored grants with the expanded serialization.
// Role grants are flattened to user ids by the expansion, so the role grant
// rows are cleared.
func (r *PermissionRepository) Update(ctx context.Context, documentID string, wire domain.ExpandedWire) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update permissions tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := r.upsertAccess(ctx, tx, documentID, wire.IsPublic); err != nil {
		return err
	}
	if err := r.clearGrants(ctx, tx, documentID); err != nil {
		return err
	}

	if !wire.IsPublic {
		if err := r.insertUserGrants(ctx, tx, documentID, capabilityVisibility, wire.Visibility); err != nil {
			return err
		}
		if err := r.insertUserGrants(ctx, tx, documentID, capabilityUsability, wire.Usability); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit update permissions tx: %w", err)
	}

	return nil
}

func (r *PermissionRepository) upsertAccess(ctx context.Context, tx pgx.Tx, documentID string, isPublic bool) error {
	stmt, args, err := r.builder.
		Insert("portal.document_access").
		Columns("document_id", "is_public").
		Values(documentID, isPublic).
		Suffix("ON CONFLICT (document_id) DO UPDATE SET is_public = EXCLUDED.is_public, updated_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert access sql: %w", err)
	}
	if _, err := tx.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("upsert access flag: %w", err)
	}
	return nil
}

func (r *PermissionRepository) clearGrants(ctx context.Context, tx pgx.Tx, documentID string) error {
	for _, table := range []string{"portal.document_role_grants", "portal.document_user_grants"} {
		stmt, args, err := r.builder.
			Delete(table).
			Where(squirrel.Eq{"document_id": documentID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build delete grants sql: %w", err)
		}
		if _, err := tx.Exec(ctx, stmt, args...); err != nil {
			return fmt.Errorf("delete grants: %w", err)
		}
	}
	return nil
}

func (r *PermissionRepository) insertRoleGrants(ctx context.Context, tx pgx.Tx, documentID, cap string, roles []domain.Role) error {
	if len(roles) == 0 {
		return nil
	}

	query := r.builder.
		Insert("portal.document_role_grants").
		Columns("document_id", "role", "capability")
	for _, role := range roles {
		query = query.Values(documentID, role, cap)
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build insert role grants sql: %w", err)
	}
	if _, err := tx.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert role grants: %w", err)
	}

	return nil
}

func (r *PermissionRepository) insertUserGrants(ctx context.Context, tx pgx.Tx, documentID, cap string, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}

	query := r.builder.
		Insert("portal.document_user_grants").
		Columns("document_id", "user_id", "capability")
	for _, id := range userIDs {
		query = query.Values(documentID, id, cap)
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build insert user grants sql: %w", err)
	}
	if _, err := tx.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert user grants: %w", err)
	}

	return nil
}
