package domain

import "testing"

func findAction(actions []Action, kind ActionType) (Action, bool) {
	for _, action := range actions {
		if action.Action == kind {
			return action, true
		}
	}
	return Action{}, false
}

func TestActionsFor_UnknownCardTypeYieldsEmptyList(t *testing.T) {
	actions := ActionsFor(CardType("mystery"), Document{State: StateDraft}, ContextList, User{})
	if actions == nil {
		t.Fatal("expected non-nil empty list")
	}
	if len(actions) != 0 {
		t.Fatalf("expected empty list, got %v", actions)
	}
}

func TestActionsFor_DraftAddsPublishGatedByVariables(t *testing.T) {
	doc := Document{State: StateDraft, Variables: []DocumentVariable{{ID: "v1", Name: "Party"}}}
	actions := ActionsFor(CardLawyer, doc, ContextList, User{Role: RoleLawyer})

	publish, ok := findAction(actions, ActionPublish)
	if !ok {
		t.Fatal("draft card missing publish action")
	}
	if publish.Disabled {
		t.Error("publish should be enabled when all variables are named")
	}

	doc.Variables[0].Name = ""
	actions = ActionsFor(CardLawyer, doc, ContextList, User{Role: RoleLawyer})
	publish, _ = findAction(actions, ActionPublish)
	if !publish.Disabled {
		t.Error("publish must be disabled while a variable is unnamed")
	}
}

func TestActionsFor_PublishedAddsRevertToDraft(t *testing.T) {
	actions := ActionsFor(CardLawyer, Document{State: StatePublished}, ContextList, User{Role: RoleLawyer})
	if _, ok := findAction(actions, ActionDraft); !ok {
		t.Error("published card missing revert-to-draft action")
	}
	if _, ok := findAction(actions, ActionPublish); ok {
		t.Error("published card should not offer publish")
	}
}

func TestActionsFor_NonAuthoringStatesAddRelationships(t *testing.T) {
	doc := Document{State: StateCompleted, RelationshipsCount: 0}
	actions := ActionsFor(CardClient, doc, ContextList, User{Role: RoleClient})

	relationships, ok := findAction(actions, ActionRelationships)
	if !ok {
		t.Fatal("completed card missing relationships action")
	}
	if !relationships.Disabled {
		t.Error("relationships must be disabled when no relationships exist")
	}

	doc.RelationshipsCount = 2
	actions = ActionsFor(CardClient, doc, ContextList, User{Role: RoleClient})
	relationships, _ = findAction(actions, ActionRelationships)
	if relationships.Disabled {
		t.Error("relationships should be enabled when relationships exist")
	}
}

func TestActionsFor_SignOfferedOnlyToUnsignedListedSigner(t *testing.T) {
	doc := Document{
		State:             StatePendingSignatures,
		RequiresSignature: true,
		Signatures:        []Signature{{SignerEmail: "a@x.com", Signed: false}},
	}

	actions := ActionsFor(CardSignatures, doc, ContextList, User{Email: "a@x.com", Role: RoleClient})
	sign, ok := findAction(actions, ActionSign)
	if !ok || sign.Disabled {
		t.Fatal("listed unsigned signer must see an enabled sign action")
	}
	if _, ok := findAction(actions, ActionReject); !ok {
		t.Error("signer should also be offered reject")
	}
	if _, ok := findAction(actions, ActionViewSignatures); !ok {
		t.Error("signature documents pending signatures must offer viewSignatures")
	}

	// After the server confirms the signature, recomputation no longer offers sign.
	doc.Signatures[0].Signed = true
	doc.State = StateFullySigned
	actions = ActionsFor(CardSignatures, doc, ContextList, User{Email: "a@x.com", Role: RoleClient})
	if _, ok := findAction(actions, ActionSign); ok {
		t.Error("sign must not be offered after the signer record shows signed")
	}
	if _, ok := findAction(actions, ActionViewSignatures); !ok {
		t.Error("fully signed documents still offer viewSignatures")
	}
}

func TestActionsFor_BasicRoleGetsInertControls(t *testing.T) {
	doc := Document{State: StateCompleted}
	actions := ActionsFor(CardClient, doc, ContextMyDocuments, User{Role: RoleBasic})

	downloadWord, ok := findAction(actions, ActionDownloadWord)
	if !ok {
		t.Fatal("downloadWord must remain visible for the basic tier")
	}
	if !downloadWord.Disabled {
		t.Error("downloadWord must be disabled for the basic tier")
	}

	for _, kind := range []ActionType{ActionEdit, ActionFormalize, ActionSendEmail} {
		action, ok := findAction(actions, kind)
		if !ok {
			t.Errorf("%s missing for basic tier", kind)
			continue
		}
		if !action.Disabled {
			t.Errorf("%s must be disabled for basic tier", kind)
		}
	}
}

func TestActionsFor_CorporateClientKeepsControlsEnabled(t *testing.T) {
	doc := Document{State: StateCompleted, RelationshipsCount: 1}
	actions := ActionsFor(CardClient, doc, ContextList, User{Role: RoleCorporateClient})

	for _, kind := range []ActionType{ActionEdit, ActionDownloadWord, ActionSendEmail} {
		action, ok := findAction(actions, kind)
		if !ok {
			t.Fatalf("%s missing for corporate client", kind)
		}
		if action.Disabled {
			t.Errorf("%s must stay enabled for corporate client", kind)
		}
	}
}

func TestActionsFor_MyDocumentsLocksEditingDuringSigning(t *testing.T) {
	doc := Document{State: StatePendingSignatures, RequiresSignature: true}

	listActions := ActionsFor(CardClient, doc, ContextList, User{Role: RoleClient})
	edit, _ := findAction(listActions, ActionEdit)
	if edit.Disabled {
		t.Error("generic list does not lock editing")
	}

	myActions := ActionsFor(CardClient, doc, ContextMyDocuments, User{Role: RoleClient})
	edit, _ = findAction(myActions, ActionEdit)
	if !edit.Disabled {
		t.Error("my-documents must lock editing during signing states")
	}
}

func TestActionsFor_RejectedState(t *testing.T) {
	doc := Document{
		State:     StateRejected,
		CreatedBy: "author-1",
		Signatures: []Signature{
			{SignerEmail: "a@x.com", RejectionComment: "wrong amounts"},
		},
	}

	creator := ActionsFor(CardClient, doc, ContextList, User{ID: "author-1", Role: RoleClient})
	if _, ok := findAction(creator, ActionViewRejectionReason); !ok {
		t.Error("rejection with comment must offer viewRejectionReason")
	}
	if _, ok := findAction(creator, ActionEditAndResend); !ok {
		t.Error("creator must be offered editAndResend")
	}

	lawyer := ActionsFor(CardClient, doc, ContextList, User{ID: "other", Role: RoleLawyer})
	if _, ok := findAction(lawyer, ActionEditAndResend); !ok {
		t.Error("lawyer must be offered editAndResend")
	}

	stranger := ActionsFor(CardClient, doc, ContextList, User{ID: "other", Role: RoleClient})
	if _, ok := findAction(stranger, ActionEditAndResend); ok {
		t.Error("non-creator non-lawyer must not see editAndResend")
	}

	doc.Signatures[0].RejectionComment = ""
	noComment := ActionsFor(CardClient, doc, ContextList, User{ID: "author-1", Role: RoleClient})
	if _, ok := findAction(noComment, ActionViewRejectionReason); ok {
		t.Error("viewRejectionReason requires a rejection comment")
	}
}
