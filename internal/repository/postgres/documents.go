package postgres

import (
	"context"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/carlos18bp/gym-project-sub003/internal/core/domain"
	"github.com/carlos18bp/gym-project-sub003/internal/core/port"
	"github.com/carlos18bp/gym-project-sub003/internal/repository"
)

// DocumentRepository implements port.DocumentRepository backed by PostgreSQL.
type DocumentRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewDocumentRepository constructs a repository backed by any executor that satisfies pgExecutor.
func NewDocumentRepository(exec pgExecutor) *DocumentRepository {
	return &DocumentRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetByID loads one document together with its signer list and variables.
func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	stmt, args, err := r.builder.
		Select("id", "title", "state", "requires_signature", "created_by", "assigned_to", "relationships_count").
		From("portal.documents").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select document sql: %w", err)
	}

	var doc domain.Document
	row := r.exec.QueryRow(ctx, stmt, args...)
	if err := row.Scan(&doc.ID, &doc.Title, &doc.State, &doc.RequiresSignature, &doc.CreatedBy, &doc.AssignedTo, &doc.RelationshipsCount); err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan document: %w", err)
	}

	doc.Signatures, err = r.signatures(ctx, id)
	if err != nil {
		return nil, err
	}
	doc.Variables, err = r.variables(ctx, id)
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

func (r *DocumentRepository) signatures(ctx context.Context, documentID string) ([]domain.Signature, error) {
	stmt, args, err := r.builder.
		Select("signer_email", "signed", "COALESCE(rejection_comment, '')").
		From("portal.signatures").
		Where(squirrel.Eq{"document_id": documentID}).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select signatures sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query signatures: %w", err)
	}
	defer rows.Close()

	var signatures []domain.Signature
	for rows.Next() {
		var sig domain.Signature
		if err := rows.Scan(&sig.SignerEmail, &sig.Signed, &sig.RejectionComment); err != nil {
			return nil, fmt.Errorf("scan signature: %w", err)
		}
		signatures = append(signatures, sig)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate signatures: %w", err)
	}

	return signatures, nil
}

func (r *DocumentRepository) variables(ctx context.Context, documentID string) ([]domain.DocumentVariable, error) {
	stmt, args, err := r.builder.
		Select("id", "name", "COALESCE(value, '')").
		From("portal.document_variables").
		Where(squirrel.Eq{"document_id": documentID}).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select variables sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query variables: %w", err)
	}
	defer rows.Close()

	var variables []domain.DocumentVariable
	for rows.Next() {
		var variable domain.DocumentVariable
		if err := rows.Scan(&variable.ID, &variable.Name, &variable.Value); err != nil {
			return nil, fmt.Errorf("scan variable: %w", err)
		}
		variables = append(variables, variable)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate variables: %w", err)
	}

	return variables, nil
}

// List returns documents matching the filter, newest first. Signer lists are
// not hydrated for listings.
func (r *DocumentRepository) List(ctx context.Context, filter port.DocumentFilter) ([]domain.Document, error) {
	query := r.builder.
		Select("id", "title", "state", "requires_signature", "created_by", "assigned_to", "relationships_count").
		From("portal.documents").
		OrderBy("created_at DESC")

	if filter.State != "" {
		query = query.Where(squirrel.Eq{"state": filter.State})
	}
	if filter.CreatedBy != "" {
		query = query.Where(squirrel.Eq{"created_by": filter.CreatedBy})
	}
	if filter.AssignedTo != "" {
		query = query.Where(squirrel.Eq{"assigned_to": filter.AssignedTo})
	}
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list documents sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var documents []domain.Document
	for rows.Next() {
		var doc domain.Document
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.State, &doc.RequiresSignature, &doc.CreatedBy, &doc.AssignedTo, &doc.RelationshipsCount); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		documents = append(documents, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	return documents, nil
}

// UpdateState persists a lifecycle state change.
func (r *DocumentRepository) UpdateState(ctx context.Context, id string, state domain.DocumentState) error {
	stmt, args, err := r.builder.
		Update("portal.documents").
		Set("state", state).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update document state sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update document state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}
