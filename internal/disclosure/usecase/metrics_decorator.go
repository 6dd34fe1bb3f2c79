package usecase

import (
	"context"
	"time"

	disclosureDomain "github.com/allisson/cardvault/internal/disclosure/domain"
	"github.com/allisson/cardvault/internal/metrics"
)

// orchestratorWithMetrics decorates Orchestrator with metrics instrumentation
// for the operations that drive the lifecycle. Read-only accessors pass
// through uninstrumented.
type orchestratorWithMetrics struct {
	next    Orchestrator
	metrics metrics.BusinessMetrics
}

// NewOrchestratorWithMetrics wraps an Orchestrator with metrics recording.
func NewOrchestratorWithMetrics(orchestrator Orchestrator, m metrics.BusinessMetrics) Orchestrator {
	return &orchestratorWithMetrics{
		next:    orchestrator,
		metrics: m,
	}
}

// Open records metrics for disclosure opens. A disclosure that ran but ended
// closed on a validation failure counts as an error.
func (o *orchestratorWithMetrics) Open(ctx context.Context, cardID string) (Status, error) {
	start := time.Now()
	status, err := o.next.Open(ctx, cardID)

	result := "success"
	if err != nil || status.LastError != nil {
		result = "error"
	}

	o.metrics.RecordOperation(ctx, "disclosure", "disclosure_open", result)
	o.metrics.RecordDuration(ctx, "disclosure", "disclosure_open", time.Since(start), result)

	return status, err
}

// Dismiss records metrics for user-initiated closes.
func (o *orchestratorWithMetrics) Dismiss(ctx context.Context) error {
	start := time.Now()
	err := o.next.Dismiss(ctx)

	result := "success"
	if err != nil {
		result = "error"
	}

	o.metrics.RecordOperation(ctx, "disclosure", "disclosure_dismiss", result)
	o.metrics.RecordDuration(ctx, "disclosure", "disclosure_dismiss", time.Since(start), result)

	return err
}

func (o *orchestratorWithMetrics) Status(ctx context.Context) (Status, error) {
	return o.next.Status(ctx)
}

func (o *orchestratorWithMetrics) CurrentView(ctx context.Context) (*disclosureDomain.CardView, error) {
	return o.next.CurrentView(ctx)
}

func (o *orchestratorWithMetrics) CopyPAN(ctx context.Context) (string, error) {
	return o.next.CopyPAN(ctx)
}

func (o *orchestratorWithMetrics) Close() {
	o.next.Close()
}
