// internal/orchestrator/orchestrator.go
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	apperrors "eweb-intent-gateway/internal/common/errors"
	"eweb-intent-gateway/internal/common/logger"
	"eweb-intent-gateway/internal/common/metrics"
	"eweb-intent-gateway/internal/common/observability"
	"eweb-intent-gateway/internal/eweb"
	"eweb-intent-gateway/internal/models"
)

// IntentResolver classifies a query and extracts its parameters.
type IntentResolver interface {
	Resolve(query, supplierOverride string) (*models.ResolvedIntent, error)
}

// UpstreamClient executes the upstream operation matching a resolved kind.
type UpstreamClient interface {
	FetchSalesHistory(ctx context.Context, params eweb.SalesHistoryParams) (json.RawMessage, error)
	FetchSupplierStock(ctx context.Context, params eweb.SupplierStockParams) (json.RawMessage, error)
}

// Orchestrator composes resolution and the upstream call into one
// envelope. It adds no recovery of its own: resolver and upstream errors
// pass through unchanged for the boundary layer to translate, and no
// partial envelope is ever produced.
type Orchestrator struct {
	resolver IntentResolver
	client   UpstreamClient
	obs      *observability.Observability
	logger   logger.Logger
}

func New(resolver IntentResolver, client UpstreamClient, obs *observability.Observability, log logger.Logger) *Orchestrator {
	return &Orchestrator{
		resolver: resolver,
		client:   client,
		obs:      obs,
		logger: log.With(map[string]interface{}{
			"component": "orchestrator",
		}),
	}
}

// Handle resolves query, dispatches the matching upstream operation, and
// wraps the result. supplierOverride is handed to the resolver untouched.
func (o *Orchestrator) Handle(ctx context.Context, query, supplierOverride string) (*models.ResponseEnvelope, error) {
	start := time.Now()

	resolved, err := o.resolver.Resolve(query, supplierOverride)
	if err != nil {
		code := string(apperrors.ErrCodeInternal)
		if stdErr, ok := apperrors.AsStandardError(err); ok {
			code = string(stdErr.Code)
		}
		metrics.IntentResolutionFailures.WithLabelValues(code).Inc()
		o.obs.RecordQueryProcessed(ctx, "unresolved", "error")
		return nil, err
	}

	data, err := o.dispatch(ctx, resolved)

	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.IntentRequestsTotal.WithLabelValues(string(resolved.Kind), status).Inc()
	o.obs.RecordQueryProcessed(ctx, string(resolved.Kind), status)
	o.obs.RecordQueryDuration(ctx, time.Since(start), string(resolved.Kind), status)

	if err != nil {
		o.logger.Warn("upstream call failed", map[string]interface{}{
			"intent": string(resolved.Kind),
			"error":  err.Error(),
		})
		return nil, err
	}

	o.logger.Info("query handled", map[string]interface{}{
		"intent":     string(resolved.Kind),
		"durationMs": time.Since(start).Milliseconds(),
	})

	return &models.ResponseEnvelope{
		Intent:     resolved.Kind,
		Parameters: resolved.Parameters,
		Data:       data,
	}, nil
}

// dispatch is the single branch point between intent kinds. Supporting a
// new kind means a resolver rule, a case here, and a client operation.
func (o *Orchestrator) dispatch(ctx context.Context, resolved *models.ResolvedIntent) (json.RawMessage, error) {
	switch resolved.Kind {
	case models.IntentSalesHistory:
		return o.client.FetchSalesHistory(ctx, eweb.SalesHistoryParams{
			StartDate: resolved.Parameters.StartDate,
			EndDate:   resolved.Parameters.EndDate,
			Brand:     resolved.Parameters.Brand,
		})
	case models.IntentSupplierStock:
		return o.client.FetchSupplierStock(ctx, eweb.SupplierStockParams{
			SupplierID: resolved.Parameters.SupplierID,
			Brand:      resolved.Parameters.Brand,
		})
	default:
		return nil, fmt.Errorf("no upstream operation for intent %q", resolved.Kind)
	}
}
