package postgres

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories groups concrete PostgreSQL repository implementations.
type Repositories struct {
	Documents   *DocumentRepository
	Permissions *PermissionRepository
	Roster      *RosterRepository
	Signatures  *SignatureGateway
}

// NewRepositories wires all repositories backed by the provided pool.
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Documents:   NewDocumentRepository(pool),
		Permissions: NewPermissionRepository(pool),
		Roster:      NewRosterRepository(pool),
		Signatures:  NewSignatureGateway(pool),
	}
}
