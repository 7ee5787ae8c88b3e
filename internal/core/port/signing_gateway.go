package port

import "context"

// SigningGateway is the e-signature collaborator. Calls are side-effecting
// and keyed by (document, signer email); the caller refetches the document
// afterwards and recomputes signature state from the authoritative signer
// list.
type SigningGateway interface {
	Sign(ctx context.Context, documentID, signerEmail string) error
	Reject(ctx context.Context, documentID, signerEmail, comment string) error
}
