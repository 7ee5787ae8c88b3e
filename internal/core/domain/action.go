package domain

// ActionType identifies one menu action offered on a document card.
type ActionType string

const (
	ActionPreview             ActionType = "preview"
	ActionEdit                ActionType = "edit"
	ActionCopy                ActionType = "copy"
	ActionDelete              ActionType = "delete"
	ActionPublish             ActionType = "publish"
	ActionDraft               ActionType = "draft"
	ActionFormalize           ActionType = "formalize"
	ActionUseLetterhead       ActionType = "useLetterhead"
	ActionRelationships       ActionType = "relationships"
	ActionDownloadPDF         ActionType = "downloadPdf"
	ActionDownloadWord        ActionType = "downloadWord"
	ActionSendEmail           ActionType = "sendEmail"
	ActionViewSignatures      ActionType = "viewSignatures"
	ActionSign                ActionType = "sign"
	ActionReject              ActionType = "reject"
	ActionViewRejectionReason ActionType = "viewRejectionReason"
	ActionEditAndResend       ActionType = "editAndResend"
)

// Action is one entry of the ordered action list consumed by card menus.
type Action struct {
	Action   ActionType
	Label    string
	Disabled bool
	Children []Action
}

// CardType selects the base action set for a document card.
type CardType string

const (
	CardLawyer     CardType = "lawyer"
	CardClient     CardType = "client"
	CardSignatures CardType = "signatures"
)

// ListContext is the surface the card is rendered on. Contexts impose stricter
// gating than the generic list.
type ListContext string

const (
	ContextList           ListContext = "list"
	ContextLegalDocuments ListContext = "legal-documents"
	ContextMyDocuments    ListContext = "my-documents"
)

var actionLabels = map[ActionType]string{
	ActionPreview:             "Preview",
	ActionEdit:                "Edit",
	ActionCopy:                "Copy",
	ActionDelete:              "Delete",
	ActionPublish:             "Publish",
	ActionDraft:               "Revert to draft",
	ActionFormalize:           "Formalize",
	ActionUseLetterhead:       "Use letterhead",
	ActionRelationships:       "Relationships",
	ActionDownloadPDF:         "Download PDF",
	ActionDownloadWord:        "Download Word",
	ActionSendEmail:           "Send by email",
	ActionViewSignatures:      "View signatures",
	ActionSign:                "Sign",
	ActionReject:              "Reject",
	ActionViewRejectionReason: "View rejection reason",
	ActionEditAndResend:       "Edit and resend",
}

func newAction(kind ActionType) Action {
	return Action{Action: kind, Label: actionLabels[kind]}
}

type gateInput struct {
	Card    CardType
	Doc     Document
	Context ListContext
	Actor   User
}

// gateRule is one step of the resolution pipeline: later rules refine or
// append to the accumulator produced by earlier ones.
type gateRule func(gateInput, []Action) []Action

var gateRules = []gateRule{
	baseActionsRule,
	contextGatingRule,
	stateAugmentationRule,
	signatureActionsRule,
	roleTierRule,
	rejectedStateRule,
}

// ActionsFor produces the ordered list of permitted actions for one card.
// Unknown card types yield an empty list; the UI treats "no options" as a
// valid, renderable state.
func ActionsFor(card CardType, doc Document, listCtx ListContext, actor User) []Action {
	switch card {
	case CardLawyer, CardClient, CardSignatures:
	default:
		return []Action{}
	}

	in := gateInput{Card: card, Doc: doc, Context: listCtx, Actor: actor}
	actions := []Action{}
	for _, rule := range gateRules {
		actions = rule(in, actions)
	}
	return actions
}

func baseActionsRule(in gateInput, actions []Action) []Action {
	var kinds []ActionType
	switch in.Card {
	case CardLawyer:
		kinds = []ActionType{
			ActionEdit, ActionCopy, ActionDelete,
			ActionDownloadPDF, ActionDownloadWord,
			ActionUseLetterhead, ActionSendEmail,
		}
	case CardClient:
		kinds = []ActionType{
			ActionPreview, ActionEdit,
			ActionDownloadPDF, ActionDownloadWord,
			ActionFormalize, ActionSendEmail,
		}
	case CardSignatures:
		kinds = []ActionType{ActionPreview, ActionDownloadPDF}
	}

	for _, kind := range kinds {
		actions = appendAction(actions, newAction(kind))
	}
	return actions
}

// contextGatingRule applies the stricter per-surface rules: "my-documents"
// locks editing once the document is in a signing or archival state no matter
// what the generic list would allow, and "legal-documents" locks deletion for
// anything past the authoring states.
func contextGatingRule(in gateInput, actions []Action) []Action {
	switch in.Context {
	case ContextMyDocuments:
		if IsTerminalForSigning(in.Doc.State) || in.Doc.State == StatePendingSignatures {
			actions = disableActions(actions, ActionEdit)
		}
	case ContextLegalDocuments:
		if in.Doc.State != StateDraft && in.Doc.State != StatePublished {
			actions = disableActions(actions, ActionDelete)
		}
	}
	return actions
}

func stateAugmentationRule(in gateInput, actions []Action) []Action {
	switch in.Doc.State {
	case StateDraft:
		publish := newAction(ActionPublish)
		publish.Disabled = !in.Doc.CanPublish()
		actions = appendAction(actions, publish)
	case StatePublished:
		actions = appendAction(actions, newAction(ActionDraft))
	default:
		relationships := newAction(ActionRelationships)
		relationships.Disabled = in.Doc.RelationshipsCount == 0
		actions = appendAction(actions, relationships)
	}
	return actions
}

func signatureActionsRule(in gateInput, actions []Action) []Action {
	if !in.Doc.RequiresSignature {
		return actions
	}
	if in.Doc.State != StatePendingSignatures && in.Doc.State != StateFullySigned {
		return actions
	}

	actions = appendAction(actions, newAction(ActionViewSignatures))

	if in.Doc.CanUserSign(in.Actor) {
		actions = appendAction(actions, newAction(ActionSign))
		actions = appendAction(actions, newAction(ActionReject))
	}
	return actions
}

// roleTierRule keeps restricted controls visible for the basic tier so card
// layouts stay consistent, but renders them inert.
func roleTierRule(in gateInput, actions []Action) []Action {
	if in.Actor.Role != RoleBasic {
		return actions
	}
	return disableActions(actions,
		ActionEdit, ActionFormalize, ActionUseLetterhead,
		ActionRelationships, ActionDownloadWord, ActionSendEmail,
	)
}

func rejectedStateRule(in gateInput, actions []Action) []Action {
	if in.Doc.State != StateRejected {
		return actions
	}

	if HasRejectionComment(in.Doc.Signatures) {
		actions = appendAction(actions, newAction(ActionViewRejectionReason))
	}
	if in.Actor.ID == in.Doc.CreatedBy || in.Actor.IsLawyer() {
		actions = appendAction(actions, newAction(ActionEditAndResend))
	}
	return actions
}

func appendAction(actions []Action, action Action) []Action {
	for i, existing := range actions {
		if existing.Action == action.Action {
			actions[i] = action
			return actions
		}
	}
	return append(actions, action)
}

func disableActions(actions []Action, kinds ...ActionType) []Action {
	for _, kind := range kinds {
		for i := range actions {
			if actions[i].Action == kind {
				actions[i].Disabled = true
			}
		}
	}
	return actions
}
