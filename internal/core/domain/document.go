package domain

import "strings"

// DocumentState enumerates the lifecycle states of a document.
type DocumentState string

const (
	StateDraft             DocumentState = "Draft"
	StatePublished         DocumentState = "Published"
	StateProgress          DocumentState = "Progress"
	StateCompleted         DocumentState = "Completed"
	StatePendingSignatures DocumentState = "PendingSignatures"
	StateFullySigned       DocumentState = "FullySigned"
	StateRejected          DocumentState = "Rejected"
	StateExpired           DocumentState = "Expired"
)

// Signature is one required signer on a document. The signer list is created
// by the backend and is immutable here; the engine only derives state from it.
type Signature struct {
	SignerEmail      string
	Signed           bool
	RejectionComment string
}

// DocumentVariable is a fillable placeholder declared by a minute template.
type DocumentVariable struct {
	ID    string
	Name  string
	Value string
}

// Document is the lifecycle-relevant subset of a portal document.
type Document struct {
	ID                 string
	Title              string
	State              DocumentState
	RequiresSignature  bool
	Signatures         []Signature
	CreatedBy          string
	AssignedTo         string
	RelationshipsCount int
	Variables          []DocumentVariable
}

// IsFullySigned reports whether every signer has signed. An empty or nil
// signer list is never fully signed.
func IsFullySigned(signatures []Signature) bool {
	if len(signatures) == 0 {
		return false
	}
	for _, sig := range signatures {
		if !sig.Signed {
			return false
		}
	}
	return true
}

// SignerHasSigned reports whether the signer with the given email has signed.
// A nil signer list or an absent email yields false.
func SignerHasSigned(signatures []Signature, email string) bool {
	for _, sig := range signatures {
		if strings.EqualFold(sig.SignerEmail, email) {
			return sig.Signed
		}
	}
	return false
}

// PendingSigners counts signers who have not signed yet.
func PendingSigners(signatures []Signature) int {
	pending := 0
	for _, sig := range signatures {
		if !sig.Signed {
			pending++
		}
	}
	return pending
}

// HasRejectionComment reports whether any signer record carries a rejection
// comment.
func HasRejectionComment(signatures []Signature) bool {
	for _, sig := range signatures {
		if sig.RejectionComment != "" {
			return true
		}
	}
	return false
}

// CanUserSign reports whether the user may sign the document right now: the
// document requires signatures, is pending them, and the user is a listed
// signer who has not signed. The signing endpoint re-validates this server
// side; the cached copy is never the sole guard.
func (d Document) CanUserSign(u User) bool {
	if !d.RequiresSignature || d.State != StatePendingSignatures {
		return false
	}
	for _, sig := range d.Signatures {
		if strings.EqualFold(sig.SignerEmail, u.Email) {
			return !sig.Signed
		}
	}
	return false
}

// CanPublish reports whether the minute may be published. Publishing is
// disallowed while any declared variable lacks a display name.
func (d Document) CanPublish() bool {
	for _, variable := range d.Variables {
		if variable.Name == "" {
			return false
		}
	}
	return true
}

// transitions maps each state to the states reachable from it. Rejected and
// Expired are terminal for the signing attempt; FullySigned is terminal for
// signing but not for the document's existence.
var transitions = map[DocumentState][]DocumentState{
	StateDraft:             {StatePublished},
	StatePublished:         {StateDraft, StateProgress},
	StateProgress:          {StateCompleted},
	StateCompleted:         {StateProgress, StatePendingSignatures},
	StatePendingSignatures: {StateFullySigned, StateRejected, StateExpired},
}

// CanTransition reports whether to is reachable from from in a single step.
func CanTransition(from, to DocumentState) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminalForSigning reports whether the state ends the signing attempt.
func IsTerminalForSigning(state DocumentState) bool {
	switch state {
	case StateFullySigned, StateRejected, StateExpired:
		return true
	}
	return false
}
