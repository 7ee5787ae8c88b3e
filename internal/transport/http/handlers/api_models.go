package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/carlos18bp/gym-project-sub003/internal/core/domain"
)

// ErrorResponse represents a generic error payload with trace ID for debugging.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// NewErrorResponse creates an error response with trace ID from context
func NewErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	traceID, _ := c.Get("trace_id")
	traceIDStr, _ := traceID.(string)

	return ErrorResponse{
		Error:   errorMsg,
		TraceID: traceIDStr,
	}
}

// MessageResponse represents a simple message payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// ClientPayload is a roster entry exposed to permission pickers.
type ClientPayload struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id,omitempty"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// ClientListResponse wraps the roster entries matching a search.
type ClientListResponse struct {
	Clients []ClientPayload `json:"clients"`
	Total   int             `json:"total"`
}

// GrantPayload is one individual permission grant.
type GrantPayload struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// PermissionSetPayload is the working permission set exchanged with the
// editing UI. It round-trips unchanged through toggle requests.
type PermissionSetPayload struct {
	IsPublic        bool           `json:"is_public"`
	VisibilityRoles []string       `json:"visibility_roles"`
	UsabilityRoles  []string       `json:"usability_roles"`
	Visibility      []GrantPayload `json:"visibility"`
	Usability       []GrantPayload `json:"usability"`
}

// PermissionToggleRequest applies one mutation to the supplied working set.
// Action selects the toggle; UserID and Role carry its argument.
type PermissionToggleRequest struct {
	Action string               `json:"action" binding:"required"`
	UserID string               `json:"user_id"`
	Role   string               `json:"role"`
	Set    PermissionSetPayload `json:"set"`
}

// PermissionToggleResponse returns the updated set and an optional warning
// when a precondition blocked the toggle.
type PermissionToggleResponse struct {
	Set     PermissionSetPayload `json:"set"`
	Warning string               `json:"warning,omitempty"`
}

// PermissionSaveRequest persists a working set.
type PermissionSaveRequest struct {
	Set PermissionSetPayload `json:"set"`
}

// SignaturePayload is one signer's record on a document.
type SignaturePayload struct {
	SignerEmail      string `json:"signer_email"`
	Signed           bool   `json:"signed"`
	RejectionComment string `json:"rejection_comment,omitempty"`
}

// VariablePayload is one fillable placeholder of a minute.
type VariablePayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// DocumentPayload describes a document with its derived signing flags.
type DocumentPayload struct {
	ID                 string             `json:"id"`
	Title              string             `json:"title"`
	State              string             `json:"state"`
	RequiresSignature  bool               `json:"requires_signature"`
	Signatures         []SignaturePayload `json:"signatures,omitempty"`
	CreatedBy          string             `json:"created_by"`
	AssignedTo         string             `json:"assigned_to,omitempty"`
	RelationshipsCount int                `json:"relationships_count"`
	Variables          []VariablePayload  `json:"variables,omitempty"`
	IsFullySigned      bool               `json:"is_fully_signed"`
	PendingSigners     int                `json:"pending_signers"`
	CanUserSign        bool               `json:"can_user_sign"`
}

// DocumentListResponse wraps documents matching a listing filter.
type DocumentListResponse struct {
	Documents []DocumentPayload `json:"documents"`
	Total     int               `json:"total"`
}

// ActionPayload is one entry of a card's ordered action list.
type ActionPayload struct {
	Action   string          `json:"action"`
	Label    string          `json:"label"`
	Disabled bool            `json:"disabled"`
	Children []ActionPayload `json:"children,omitempty"`
}

// ActionListResponse wraps a card's resolved actions.
type ActionListResponse struct {
	Actions []ActionPayload `json:"actions"`
}

// RejectRequest carries the mandatory rejection comment.
type RejectRequest struct {
	Comment string `json:"comment" binding:"required"`
}

// HealthResponse describes the service health payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
	Timestamp time.Time `json:"timestamp"`
}

// ReadyResponse describes readiness probe results with dependency checks.
type ReadyResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

func newClientPayload(client domain.Client) ClientPayload {
	return ClientPayload{
		ID:       client.ID,
		UserID:   client.UserID,
		Email:    client.Email,
		FullName: client.FullName,
		Role:     string(client.Role),
	}
}

func newGrantPayloads(grants []domain.PermissionGrant) []GrantPayload {
	payloads := make([]GrantPayload, 0, len(grants))
	for _, grant := range grants {
		payloads = append(payloads, GrantPayload{
			ID:       grant.ID,
			UserID:   grant.UserID,
			Email:    grant.Email,
			FullName: grant.FullName,
		})
	}
	return payloads
}

func newPermissionSetPayload(set *domain.PermissionSet) PermissionSetPayload {
	return PermissionSetPayload{
		IsPublic:        set.Public,
		VisibilityRoles: roleStrings(set.VisibilityRoles),
		UsabilityRoles:  roleStrings(set.UsabilityRoles),
		Visibility:      newGrantPayloads(set.Visibility),
		Usability:       newGrantPayloads(set.Usability),
	}
}

func roleStrings(codes []domain.Role) []string {
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		out = append(out, string(code))
	}
	return out
}

// toPermissionSet rebuilds a working set from its wire form. Grants were
// filtered and materialized when the set was loaded, so the conversion is
// structural.
func toPermissionSet(payload PermissionSetPayload) *domain.PermissionSet {
	set := &domain.PermissionSet{
		Public:          payload.IsPublic,
		VisibilityRoles: make([]domain.Role, 0, len(payload.VisibilityRoles)),
		UsabilityRoles:  make([]domain.Role, 0, len(payload.UsabilityRoles)),
		Visibility:      make([]domain.PermissionGrant, 0, len(payload.Visibility)),
		Usability:       make([]domain.PermissionGrant, 0, len(payload.Usability)),
	}

	for _, code := range payload.VisibilityRoles {
		set.VisibilityRoles = append(set.VisibilityRoles, domain.Role(code))
	}
	for _, code := range payload.UsabilityRoles {
		set.UsabilityRoles = append(set.UsabilityRoles, domain.Role(code))
	}
	for _, grant := range payload.Visibility {
		set.Visibility = append(set.Visibility, domain.PermissionGrant{
			ID:       grant.ID,
			UserID:   grant.UserID,
			Email:    grant.Email,
			FullName: grant.FullName,
		})
	}
	for _, grant := range payload.Usability {
		set.Usability = append(set.Usability, domain.PermissionGrant{
			ID:       grant.ID,
			UserID:   grant.UserID,
			Email:    grant.Email,
			FullName: grant.FullName,
		})
	}

	return set
}

func newDocumentPayload(doc domain.Document, actor domain.User) DocumentPayload {
	payload := DocumentPayload{
		ID:                 doc.ID,
		Title:              doc.Title,
		State:              string(doc.State),
		RequiresSignature:  doc.RequiresSignature,
		CreatedBy:          doc.CreatedBy,
		AssignedTo:         doc.AssignedTo,
		RelationshipsCount: doc.RelationshipsCount,
		IsFullySigned:      domain.IsFullySigned(doc.Signatures),
		PendingSigners:     domain.PendingSigners(doc.Signatures),
		CanUserSign:        doc.CanUserSign(actor),
	}

	for _, sig := range doc.Signatures {
		payload.Signatures = append(payload.Signatures, SignaturePayload{
			SignerEmail:      sig.SignerEmail,
			Signed:           sig.Signed,
			RejectionComment: sig.RejectionComment,
		})
	}
	for _, variable := range doc.Variables {
		payload.Variables = append(payload.Variables, VariablePayload{
			ID:    variable.ID,
			Name:  variable.Name,
			Value: variable.Value,
		})
	}

	return payload
}

func newActionPayloads(actions []domain.Action) []ActionPayload {
	payloads := make([]ActionPayload, 0, len(actions))
	for _, action := range actions {
		payloads = append(payloads, ActionPayload{
			Action:   string(action.Action),
			Label:    action.Label,
			Disabled: action.Disabled,
			Children: newActionPayloads(action.Children),
		})
	}
	return payloads
}
