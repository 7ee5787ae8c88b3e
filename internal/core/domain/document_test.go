package domain

import "testing"

func TestIsFullySigned(t *testing.T) {
	tests := []struct {
		name       string
		signatures []Signature
		want       bool
	}{
		{"nil list", nil, false},
		{"empty list", []Signature{}, false},
		{"single signed", []Signature{{Signed: true}}, true},
		{"mixed", []Signature{{Signed: true}, {Signed: false}}, false},
		{"all signed", []Signature{{Signed: true}, {Signed: true}}, true},
	}

	for _, tt := range tests {
		if got := IsFullySigned(tt.signatures); got != tt.want {
			t.Errorf("%s: IsFullySigned = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSignerHasSigned(t *testing.T) {
	signatures := []Signature{
		{SignerEmail: "a@x.com", Signed: true},
		{SignerEmail: "b@x.com", Signed: false},
	}

	if !SignerHasSigned(signatures, "a@x.com") {
		t.Error("expected a@x.com to have signed")
	}
	if SignerHasSigned(signatures, "b@x.com") {
		t.Error("b@x.com has not signed")
	}
	if SignerHasSigned(signatures, "absent@x.com") {
		t.Error("absent signer cannot have signed")
	}
	if SignerHasSigned(nil, "a@x.com") {
		t.Error("nil signer list must yield false, not panic")
	}
	if !SignerHasSigned(signatures, "A@X.COM") {
		t.Error("signer lookup should ignore email case")
	}
}

func TestCanUserSign(t *testing.T) {
	doc := Document{
		State:             StatePendingSignatures,
		RequiresSignature: true,
		Signatures: []Signature{
			{SignerEmail: "a@x.com", Signed: false},
			{SignerEmail: "b@x.com", Signed: true},
		},
	}

	if !doc.CanUserSign(User{Email: "a@x.com"}) {
		t.Error("listed unsigned signer must be able to sign")
	}
	if doc.CanUserSign(User{Email: "b@x.com"}) {
		t.Error("signer who already signed cannot sign again")
	}
	if doc.CanUserSign(User{Email: "c@x.com"}) {
		t.Error("unlisted user cannot sign")
	}

	noSig := doc
	noSig.RequiresSignature = false
	if noSig.CanUserSign(User{Email: "a@x.com"}) {
		t.Error("documents without signature requirement cannot be signed")
	}

	wrongState := doc
	wrongState.State = StateCompleted
	if wrongState.CanUserSign(User{Email: "a@x.com"}) {
		t.Error("signing is only offered while pending signatures")
	}
}

func TestCanPublish(t *testing.T) {
	ok := Document{Variables: []DocumentVariable{{ID: "v1", Name: "Counterparty"}}}
	if !ok.CanPublish() {
		t.Error("expected publishable document")
	}

	unnamed := Document{Variables: []DocumentVariable{{ID: "v1", Name: ""}}}
	if unnamed.CanPublish() {
		t.Error("minute with unnamed placeholder must not be publishable")
	}

	none := Document{}
	if !none.CanPublish() {
		t.Error("document without variables is publishable")
	}
}

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to DocumentState }{
		{StateDraft, StatePublished},
		{StatePublished, StateDraft},
		{StatePublished, StateProgress},
		{StateProgress, StateCompleted},
		{StateCompleted, StatePendingSignatures},
		{StatePendingSignatures, StateFullySigned},
		{StatePendingSignatures, StateRejected},
		{StatePendingSignatures, StateExpired},
	}
	for _, tr := range allowed {
		if !CanTransition(tr.from, tr.to) {
			t.Errorf("expected %s -> %s to be allowed", tr.from, tr.to)
		}
	}

	denied := []struct{ from, to DocumentState }{
		{StateDraft, StatePendingSignatures},
		{StateRejected, StatePendingSignatures},
		{StateExpired, StateDraft},
		{StateFullySigned, StatePendingSignatures},
	}
	for _, tr := range denied {
		if CanTransition(tr.from, tr.to) {
			t.Errorf("expected %s -> %s to be denied", tr.from, tr.to)
		}
	}
}

func TestPendingSigners(t *testing.T) {
	signatures := []Signature{{Signed: true}, {Signed: false}, {Signed: false}}
	if got := PendingSigners(signatures); got != 2 {
		t.Errorf("expected 2 pending signers, got %d", got)
	}
	if got := PendingSigners(nil); got != 0 {
		t.Errorf("expected 0 pending signers for nil list, got %d", got)
	}
}
