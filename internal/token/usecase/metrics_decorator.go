package usecase

import (
	"context"
	"time"

	"github.com/allisson/cardvault/internal/metrics"
	tokenDomain "github.com/allisson/cardvault/internal/token/domain"
)

// authorityWithMetrics decorates Authority with metrics instrumentation.
// Token operations are synchronous, context-free computations, so metrics are
// recorded against a background context.
type authorityWithMetrics struct {
	next    Authority
	metrics metrics.BusinessMetrics
}

// NewAuthorityWithMetrics wraps an Authority with metrics recording.
func NewAuthorityWithMetrics(authority Authority, m metrics.BusinessMetrics) Authority {
	return &authorityWithMetrics{
		next:    authority,
		metrics: m,
	}
}

// Issue records metrics for token issuance.
func (a *authorityWithMetrics) Issue(
	cardID string,
	ttl time.Duration,
) (string, tokenDomain.Payload, error) {
	start := time.Now()
	token, payload, err := a.next.Issue(cardID, ttl)

	status := "success"
	if err != nil {
		status = "error"
	}

	ctx := context.Background()
	a.metrics.RecordOperation(ctx, "token", "token_issue", status)
	a.metrics.RecordDuration(ctx, "token", "token_issue", time.Since(start), status)

	return token, payload, err
}

// Validate records metrics for token validation.
func (a *authorityWithMetrics) Validate(
	token string,
	expectedCardID string,
) (tokenDomain.Payload, error) {
	start := time.Now()
	payload, err := a.next.Validate(token, expectedCardID)

	status := "success"
	if err != nil {
		status = "error"
	}

	ctx := context.Background()
	a.metrics.RecordOperation(ctx, "token", "token_validate", status)
	a.metrics.RecordDuration(ctx, "token", "token_validate", time.Since(start), status)

	return payload, err
}

// RemainingSeconds passes through without instrumentation; it is called on
// every countdown tick computation and has no failure mode worth counting.
func (a *authorityWithMetrics) RemainingSeconds(token string, now time.Time) float64 {
	return a.next.RemainingSeconds(token, now)
}
