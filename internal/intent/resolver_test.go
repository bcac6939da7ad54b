// internal/intent/resolver_test.go
package intent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"eweb-intent-gateway/internal/common/errors"
	"eweb-intent-gateway/internal/common/logger"
	"eweb-intent-gateway/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

// All date assertions below are computed against this frozen reference.
var frozenNow = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

func createTestConfig() *Config {
	return &Config{
		DefaultSupplierID: "",
		DefaultWindowDays: 180,
	}
}

func createTestResolver(t *testing.T, config *Config) *Resolver {
	r := NewResolver(config, logger.NewTestLogger(t))
	r.now = func() time.Time { return frozenNow }
	return r
}

// ==========================
// Sales History Resolution
// ==========================

func TestResolver_Resolve_SalesHistory(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		expectedStart  string
		expectedEnd    string
		expectedBrand  string
		validateResult func(t *testing.T, resolved *models.ResolvedIntent)
	}{
		{
			name:          "default window without duration phrase",
			query:         "show me sales",
			expectedStart: "2025-09-16",
			expectedEnd:   "2026-03-15",
		},
		{
			name:          "six-month phrase with brand",
			query:         "Citizen Watches six-month sales",
			expectedStart: "2025-09-16",
			expectedEnd:   "2026-03-15",
			expectedBrand: "Citizen",
		},
		{
			name:          "30-day phrase",
			query:         "sales for the last 30 days",
			expectedStart: "2026-02-13",
			expectedEnd:   "2026-03-15",
		},
		{
			name:          "spelled-out quantity with space",
			query:         "two month sales history",
			expectedStart: "2026-01-14",
			expectedEnd:   "2026-03-15",
		},
		{
			name:          "bare relative phrase",
			query:         "what sold last week",
			expectedStart: "2026-03-08",
			expectedEnd:   "2026-03-15",
		},
		{
			name:          "unrecognized duration falls back to default",
			query:         "sales for a fortnight",
			expectedStart: "2025-09-16",
			expectedEnd:   "2026-03-15",
		},
		{
			name:          "history trigger alone",
			query:         "purchase history please",
			expectedStart: "2025-09-16",
			expectedEnd:   "2026-03-15",
			validateResult: func(t *testing.T, resolved *models.ResolvedIntent) {
				assert.Empty(t, resolved.Parameters.SupplierID)
				assert.Empty(t, resolved.Parameters.Brand)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := createTestResolver(t, createTestConfig())

			resolved, err := resolver.Resolve(tt.query, "")

			assert.NoError(t, err)
			assert.NotNil(t, resolved)
			assert.Equal(t, models.IntentSalesHistory, resolved.Kind)
			assert.Equal(t, tt.expectedStart, resolved.Parameters.StartDate)
			assert.Equal(t, tt.expectedEnd, resolved.Parameters.EndDate)
			assert.Equal(t, tt.expectedBrand, resolved.Parameters.Brand)

			if tt.validateResult != nil {
				tt.validateResult(t, resolved)
			}
		})
	}
}

func TestResolver_Resolve_WindowAlwaysEndsToday(t *testing.T) {
	queries := []string{
		"sales",
		"three week sales",
		"sales since last month",
		"12-month sales history",
	}

	for _, query := range queries {
		resolver := createTestResolver(t, createTestConfig())

		resolved, err := resolver.Resolve(query, "")

		assert.NoError(t, err)
		assert.Equal(t, frozenNow.Format(dateLayout), resolved.Parameters.EndDate)

		start, err := time.Parse(dateLayout, resolved.Parameters.StartDate)
		assert.NoError(t, err)
		end, err := time.Parse(dateLayout, resolved.Parameters.EndDate)
		assert.NoError(t, err)
		assert.False(t, start.After(end), "startDate must not exceed endDate for %q", query)
	}
}

// ==========================
// Supplier Stock Resolution
// ==========================

func TestResolver_Resolve_SupplierStock(t *testing.T) {
	tests := []struct {
		name             string
		query            string
		override         string
		defaultSupplier  string
		expectedSupplier string
		expectedBrand    string
	}{
		{
			name:             "default supplier id with brand",
			query:            "Citizen inventory status",
			defaultSupplier:  "12345",
			expectedSupplier: "12345",
			expectedBrand:    "Citizen",
		},
		{
			name:             "supplier id extracted from text",
			query:            "stock for supplier 98765",
			expectedSupplier: "98765",
		},
		{
			name:             "labeled alphanumeric supplier id",
			query:            "inventory for supplier id SUP-2041",
			expectedSupplier: "SUP-2041",
		},
		{
			name:             "extracted id beats configured default",
			query:            "availability for supplier 555001",
			defaultSupplier:  "12345",
			expectedSupplier: "555001",
		},
		{
			name:             "override beats extraction and default",
			query:            "stock for supplier 98765",
			override:         "42",
			defaultSupplier:  "12345",
			expectedSupplier: "42",
		},
		{
			name:             "bare numeric token",
			query:            "check 70021 stock levels",
			expectedSupplier: "70021",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := createTestConfig()
			config.DefaultSupplierID = tt.defaultSupplier
			resolver := createTestResolver(t, config)

			resolved, err := resolver.Resolve(tt.query, tt.override)

			assert.NoError(t, err)
			assert.NotNil(t, resolved)
			assert.Equal(t, models.IntentSupplierStock, resolved.Kind)
			assert.Equal(t, tt.expectedSupplier, resolved.Parameters.SupplierID)
			assert.Equal(t, tt.expectedBrand, resolved.Parameters.Brand)
			assert.Empty(t, resolved.Parameters.StartDate)
			assert.Empty(t, resolved.Parameters.EndDate)
		})
	}
}

func TestResolver_Resolve_MissingSupplierID(t *testing.T) {
	resolver := createTestResolver(t, createTestConfig())

	resolved, err := resolver.Resolve("Citizen inventory status", "")

	assert.Error(t, err)
	assert.Nil(t, resolved)
	assert.True(t, errors.IsCode(err, errors.ErrCodeMissingParameter))
	assert.True(t, errors.IsClientInput(err))

	stdErr, ok := errors.AsStandardError(err)
	assert.True(t, ok)
	assert.Equal(t, "supplierId", stdErr.Metadata["parameter"])
}

// ==========================
// Priority and Rejection
// ==========================

func TestResolver_Resolve_PriorityOrder(t *testing.T) {
	// Queries carrying both vocabularies resolve by rule declaration
	// order, never by term position in the text.
	tests := []struct {
		name  string
		query string
	}{
		{"stock term after sales term", "sales figures for stock items"},
		{"stock term before sales term", "inventory that sold well"},
		{"all trigger terms at once", "sales history and stock availability"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := createTestConfig()
			config.DefaultSupplierID = "12345"
			resolver := createTestResolver(t, config)

			resolved, err := resolver.Resolve(tt.query, "")

			assert.NoError(t, err)
			assert.Equal(t, models.IntentSupplierStock, resolved.Kind)
		})
	}
}

func TestResolver_Resolve_UnresolvedIntent(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"unrelated question", "what's the weather"},
		{"empty query", ""},
		{"whitespace only", "   "},
		{"near-miss vocabulary", "how are my soldiers doing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := createTestResolver(t, createTestConfig())

			resolved, err := resolver.Resolve(tt.query, "")

			assert.Error(t, err)
			assert.Nil(t, resolved)
			assert.True(t, errors.IsCode(err, errors.ErrCodeUnresolvedIntent))
			assert.True(t, errors.IsClientInput(err))
		})
	}
}

func TestResolver_Resolve_CaseInsensitiveTriggers(t *testing.T) {
	resolver := createTestResolver(t, createTestConfig())

	resolved, err := resolver.Resolve("SHOW ME SALES", "")

	assert.NoError(t, err)
	assert.Equal(t, models.IntentSalesHistory, resolved.Kind)
}

// ==========================
// Determinism
// ==========================

func TestResolver_Resolve_Deterministic(t *testing.T) {
	queries := []string{
		"Citizen Watches six-month sales",
		"Seiko stock for supplier 98765",
		"what sold last month",
	}

	for _, query := range queries {
		resolver := createTestResolver(t, createTestConfig())

		first, err1 := resolver.Resolve(query, "")
		second, err2 := resolver.Resolve(query, "")

		assert.NoError(t, err1)
		assert.NoError(t, err2)
		assert.Equal(t, first, second, "repeated resolution must match for %q", query)
	}
}

// ==========================
// Benchmark Tests
// ==========================

func BenchmarkResolver_Resolve(b *testing.B) {
	config := createTestConfig()
	config.DefaultSupplierID = "12345"
	resolver := NewResolver(config, logger.NewNoOpLogger())
	resolver.now = func() time.Time { return frozenNow }

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		resolver.Resolve("Citizen Watches six-month sales", "")
	}
}
