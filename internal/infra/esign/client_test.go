package esign

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/carlos18bp/gym-project-sub003/internal/infra/config"
	"github.com/carlos18bp/gym-project-sub003/internal/repository"
)

func TestClientSign(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody decisionRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(config.ESignSettings{
		BaseURL: server.URL,
		APIKey:  "secret",
		Timeout: time.Second,
	}, nil)

	if err := client.Sign(context.Background(), "doc-1", "alice@example.com"); err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}

	if gotPath != "/documents/doc-1/sign" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("unexpected auth header %q", gotAuth)
	}
	if gotBody.SignerEmail != "alice@example.com" {
		t.Errorf("unexpected body %+v", gotBody)
	}
}

func TestClientRejectSendsComment(t *testing.T) {
	var gotBody decisionRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(config.ESignSettings{BaseURL: server.URL}, nil)

	if err := client.Reject(context.Background(), "doc-1", "bob@example.com", "wrong clause"); err != nil {
		t.Fatalf("Reject returned error: %v", err)
	}

	if gotBody.SignerEmail != "bob@example.com" || gotBody.Comment != "wrong clause" {
		t.Errorf("unexpected body %+v", gotBody)
	}
}

func TestClientMapsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(config.ESignSettings{BaseURL: server.URL}, nil)

	err := client.Sign(context.Background(), "missing", "alice@example.com")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClientSurfacesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(config.ESignSettings{BaseURL: server.URL}, nil)

	if err := client.Sign(context.Background(), "doc-1", "alice@example.com"); err == nil {
		t.Fatal("expected error for 502 response")
	}
}
