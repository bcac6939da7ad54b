// internal/models/intent.go
package models

import "encoding/json"

// IntentKind enumerates the supported upstream operations. The set is
// closed; adding a kind means adding a resolver rule, an orchestrator
// dispatch case, and an upstream client operation.
type IntentKind string

const (
	IntentSalesHistory  IntentKind = "sales_history"
	IntentSupplierStock IntentKind = "supplier_stock"
)

// ParameterSet carries the typed parameters extracted for one resolved
// intent. Population depends on the kind: sales_history fills the date
// range, supplier_stock fills the supplier id. Brand is optional for both;
// when empty the upstream filter is omitted entirely.
type ParameterSet struct {
	SupplierID string `json:"supplierId,omitempty"`
	Brand      string `json:"brand,omitempty"`
	StartDate  string `json:"startDate,omitempty"` // YYYY-MM-DD
	EndDate    string `json:"endDate,omitempty"`   // YYYY-MM-DD
}

// ResolvedIntent pairs a classified intent kind with its parameters.
// Produced fresh per request and never persisted.
type ResolvedIntent struct {
	Kind       IntentKind   `json:"kind"`
	Parameters ParameterSet `json:"parameters"`
}

// IntentRequest is the POST /intent body. SupplierID is an optional
// per-request override that beats both text extraction and the configured
// default.
type IntentRequest struct {
	Query      string `json:"query"`
	SupplierID string `json:"supplierId,omitempty"`
}

// ResponseEnvelope is the externally observable result: the resolved
// intent, its parameters, and the raw upstream payload.
type ResponseEnvelope struct {
	Intent     IntentKind      `json:"intent"`
	Parameters ParameterSet    `json:"parameters"`
	Data       json.RawMessage `json:"data"`
}
