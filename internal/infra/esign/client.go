package esign

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/carlos18bp/gym-project-sub003/internal/core/port"
	"github.com/carlos18bp/gym-project-sub003/internal/infra/config"
	"github.com/carlos18bp/gym-project-sub003/internal/repository"
)

// Client calls the external e-signature collaborator. The collaborator owns
// the authoritative signer rows; callers refetch the document after a
// decision.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

var _ port.SigningGateway = (*Client)(nil)

// NewClient constructs a gateway client from configuration.
func NewClient(cfg config.ESignSettings, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type decisionRequest struct {
	SignerEmail string `json:"signer_email"`
	Comment     string `json:"comment,omitempty"`
}

// Sign records a signature decision for one signer.
func (c *Client) Sign(ctx context.Context, documentID, signerEmail string) error {
	return c.post(ctx, documentID, "sign", decisionRequest{SignerEmail: signerEmail})
}

// Reject records a rejection with the signer's comment.
func (c *Client) Reject(ctx context.Context, documentID, signerEmail, comment string) error {
	return c.post(ctx, documentID, "reject", decisionRequest{SignerEmail: signerEmail, Comment: comment})
}

func (c *Client) post(ctx context.Context, documentID, action string, payload decisionRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", action, err)
	}

	endpoint := fmt.Sprintf("%s/documents/%s/%s", c.baseURL, url.PathEscape(documentID), action)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call signature service: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return repository.ErrNotFound
	case resp.StatusCode >= 400:
		c.logger.Warn("signature service returned error",
			zap.String("document_id", documentID),
			zap.String("action", action),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("signature service responded with status %d", resp.StatusCode)
	}

	return nil
}
