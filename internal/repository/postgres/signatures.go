package postgres

import (
	"context"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"

	"github.com/carlos18bp/gym-project-sub003/internal/core/port"
	"github.com/carlos18bp/gym-project-sub003/internal/repository"
)

// SignatureGateway implements port.SigningGateway against the signatures
// table. Rows are keyed by (document_id, signer_email); a decision that
// matches no row is reported as not found rather than silently ignored.
type SignatureGateway struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

var _ port.SigningGateway = (*SignatureGateway)(nil)

// NewSignatureGateway constructs a gateway backed by any executor that satisfies pgExecutor.
func NewSignatureGateway(exec pgExecutor) *SignatureGateway {
	return &SignatureGateway{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Sign marks one signer's row as signed.
func (g *SignatureGateway) Sign(ctx context.Context, documentID, signerEmail string) error {
	stmt, args, err := g.builder.
		Update("portal.signatures").
		Set("signed", true).
		Set("rejection_comment", nil).
		Where(squirrel.Eq{"document_id": documentID}).
		Where(squirrel.Eq{"signer_email": signerEmail}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build sign sql: %w", err)
	}

	tag, err := g.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("record signature: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Reject stores the signer's rejection comment and clears any earlier
// signature.
func (g *SignatureGateway) Reject(ctx context.Context, documentID, signerEmail, comment string) error {
	stmt, args, err := g.builder.
		Update("portal.signatures").
		Set("signed", false).
		Set("rejection_comment", comment).
		Where(squirrel.Eq{"document_id": documentID}).
		Where(squirrel.Eq{"signer_email": signerEmail}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build reject sql: %w", err)
	}

	tag, err := g.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("record rejection: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}
