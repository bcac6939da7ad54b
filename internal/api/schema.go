// internal/api/schema.go
package api

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"eweb-intent-gateway/internal/common/errors"
)

// intentRequestSchema rejects malformed bodies before the resolver ever
// sees them: query is mandatory and non-empty, supplierId optional.
const intentRequestSchema = `{
	"type": "object",
	"required": ["query"],
	"properties": {
		"query": {
			"type": "string",
			"minLength": 1
		},
		"supplierId": {
			"type": "string"
		}
	}
}`

type RequestValidator struct {
	schema *gojsonschema.Schema
}

func NewRequestValidator() (*RequestValidator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(intentRequestSchema))
	if err != nil {
		return nil, fmt.Errorf("compile intent request schema: %w", err)
	}
	return &RequestValidator{schema: schema}, nil
}

// ValidateIntentRequest checks raw body bytes against the request schema.
// Returns a client-input error carrying every violation found.
func (v *RequestValidator) ValidateIntentRequest(body []byte) error {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return errors.NewInvalidRequestError("request body is not valid JSON")
	}

	if !result.Valid() {
		details := ""
		for i, desc := range result.Errors() {
			if i > 0 {
				details += "; "
			}
			details += desc.String()
		}
		return errors.NewInvalidRequestError(details)
	}

	return nil
}
