package telemetry

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/carlos18bp/gym-project-sub003/internal/infra/config"
)

// Provider holds the domain-level counters. HTTP request metrics are owned by
// the metrics middleware.
type Provider struct {
	documentsFullySigned prometheus.Counter
	permissionSaves      prometheus.Counter
}

// Attach registers domain counters and returns a provider handle.
func Attach(_ context.Context, cfg *config.AppConfig) (*Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	fullySigned := promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "portal",
		Name:      "documents_fully_signed_total",
		Help:      "Total number of documents that reached the fully signed state",
	})

	saves := promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "portal",
		Name:      "permission_saves_total",
		Help:      "Total number of persisted permission set saves",
	})

	return &Provider{
		documentsFullySigned: fullySigned,
		permissionSaves:      saves,
	}, nil
}

// DocumentsFullySigned exposes the fully-signed document counter.
func (p *Provider) DocumentsFullySigned() prometheus.Counter {
	if p == nil {
		return prometheus.NewCounter(prometheus.CounterOpts{})
	}
	return p.documentsFullySigned
}

// PermissionSaves exposes the permission save counter.
func (p *Provider) PermissionSaves() prometheus.Counter {
	if p == nil {
		return prometheus.NewCounter(prometheus.CounterOpts{})
	}
	return p.permissionSaves
}
