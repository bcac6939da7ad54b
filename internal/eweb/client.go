// internal/eweb/client.go
package eweb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "eweb-intent-gateway/internal/common/errors"
	commonhttp "eweb-intent-gateway/internal/common/http"
	"eweb-intent-gateway/internal/common/logger"
	"eweb-intent-gateway/internal/common/metrics"
)

const (
	salesHistoryPath  = "/sales/history"
	supplierStockPath = "/inventory/supplier-stock"
)

// Client wraps the two upstream operations behind authenticated GETs.
// Transient failures (timeouts, connection errors, 5xx) are retried with
// jittered exponential backoff up to the configured attempt budget; 4xx
// responses are surfaced immediately since retrying cannot change them.
type Client struct {
	creds      Credentials
	config     *Config
	httpClient *commonhttp.Client
	logger     logger.Logger
}

func NewClient(creds Credentials, config *Config, httpClient *commonhttp.Client, log logger.Logger) *Client {
	creds.BaseURL = strings.TrimSuffix(creds.BaseURL, "/")
	return &Client{
		creds:      creds,
		config:     config,
		httpClient: httpClient,
		logger: log.With(map[string]interface{}{
			"component": "eweb-client",
		}),
	}
}

// FetchSalesHistory retrieves sales records for a date range. Empty filter
// fields are left out of the query string entirely.
func (c *Client) FetchSalesHistory(ctx context.Context, params SalesHistoryParams) (json.RawMessage, error) {
	values := url.Values{}
	values.Add("startDate", params.StartDate)
	values.Add("endDate", params.EndDate)
	if params.Brand != "" {
		values.Add("brand", params.Brand)
	}
	if params.SKU != "" {
		values.Add("sku", params.SKU)
	}
	if params.UPC != "" {
		values.Add("upc", params.UPC)
	}
	if params.LocationID != "" {
		values.Add("locationId", params.LocationID)
	}

	return c.get(ctx, "sales_history", salesHistoryPath, values)
}

// FetchSupplierStock retrieves current stock levels for one supplier.
func (c *Client) FetchSupplierStock(ctx context.Context, params SupplierStockParams) (json.RawMessage, error) {
	page := params.Page
	if page <= 0 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = c.config.PageSize
	}

	values := url.Values{}
	values.Add("supplierId", params.SupplierID)
	if params.Brand != "" {
		values.Add("brand", params.Brand)
	}
	values.Add("page", strconv.Itoa(page))
	values.Add("pageSize", strconv.Itoa(pageSize))

	return c.get(ctx, "supplier_stock", supplierStockPath, values)
}

func (c *Client) get(ctx context.Context, operation, path string, values url.Values) (json.RawMessage, error) {
	endpoint, err := url.Parse(c.creds.BaseURL + path)
	if err != nil {
		return nil, fmt.Errorf("build upstream url: %w", err)
	}
	endpoint.RawQuery = values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.creds.APIKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.creds.AccountID != "" {
		req.Header.Set("X-Account-ID", c.creds.AccountID)
	}

	start := time.Now()
	payload, err := c.doWithRetry(ctx, operation, req)
	metrics.UpstreamRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	return payload, err
}

func (c *Client) doWithRetry(ctx context.Context, operation string, req *http.Request) (json.RawMessage, error) {
	var lastErr error

	for attempt := 1; attempt <= c.config.MaxAttempts; attempt++ {
		if attempt > 1 {
			metrics.UpstreamRetriesTotal.WithLabelValues(operation).Inc()
			select {
			case <-time.After(c.backoff(attempt)):
			case <-ctx.Done():
				return nil, apperrors.NewUpstreamUnreachableError(ctx.Err(), ctx.Err() == context.DeadlineExceeded)
			}
		}

		resp, err := c.httpClient.DoWithContext(ctx, req)
		if err != nil {
			// The caller gave up; stop immediately instead of burning
			// the remaining attempts.
			if ctx.Err() != nil {
				return nil, apperrors.NewUpstreamUnreachableError(err, ctx.Err() == context.DeadlineExceeded)
			}
			metrics.UpstreamRequestsTotal.WithLabelValues(operation, "transport_error").Inc()
			lastErr = apperrors.NewUpstreamUnreachableError(err, isTimeout(err))
			c.logger.Warn("upstream request failed", map[string]interface{}{
				"operation": operation,
				"attempt":   attempt,
				"error":     err.Error(),
			})
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		metrics.UpstreamRequestsTotal.WithLabelValues(operation, strconv.Itoa(resp.StatusCode)).Inc()

		if readErr != nil {
			lastErr = apperrors.NewUpstreamUnreachableError(readErr, isTimeout(readErr))
			c.logger.Warn("upstream response read failed", map[string]interface{}{
				"operation": operation,
				"attempt":   attempt,
				"error":     readErr.Error(),
			})
			continue
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			lastErr = apperrors.NewUpstreamRequestError(resp.StatusCode, string(body))
			c.logger.Warn("upstream returned server error", map[string]interface{}{
				"operation": operation,
				"attempt":   attempt,
				"status":    resp.StatusCode,
			})
			continue
		}

		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			return nil, apperrors.NewUpstreamRequestError(resp.StatusCode, string(body))
		}

		var payload json.RawMessage
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, apperrors.NewUpstreamFormatError(err)
		}
		return payload, nil
	}

	return nil, lastErr
}

// backoff returns the pre-attempt delay: BackoffBase doubled per retry,
// plus up to 50% random jitter so synchronized callers spread out.
func (c *Client) backoff(attempt int) time.Duration {
	d := c.config.BackoffBase * time.Duration(1<<(attempt-2))
	if half := int64(d) / 2; half > 0 {
		d += time.Duration(rand.Int63n(half))
	}
	return d
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "deadline exceeded") ||
		strings.Contains(msg, "Client.Timeout")
}
