package postgres

import (
	"context"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"

	"github.com/carlos18bp/gym-project-sub003/internal/core/domain"
)

// RosterRepository reads the client roster the role cascade resolves against.
type RosterRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

func NewRosterRepository(exec pgExecutor) *RosterRepository {
	return &RosterRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// List returns every roster entry ordered by full name.
func (r *RosterRepository) List(ctx context.Context) ([]domain.Client, error) {
	stmt, args, err := r.builder.
		Select("id", "COALESCE(user_id, '')", "email", "full_name", "role").
		From("portal.clients").
		OrderBy("full_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select clients sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query clients: %w", err)
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var client domain.Client
		if err := rows.Scan(&client.ID, &client.UserID, &client.Email, &client.FullName, &client.Role); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, client)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}

	return clients, nil
}
