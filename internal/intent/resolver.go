package intent

import (
	"regexp"
	"strings"
	"time"

	"eweb-intent-gateway/internal/common/errors"
	"eweb-intent-gateway/internal/common/logger"
	"eweb-intent-gateway/internal/models"
)

const dateLayout = "2006-01-02"

// rule binds an intent kind to the trigger vocabulary that selects it and
// the extractor that fills its parameters.
type rule struct {
	kind    models.IntentKind
	trigger *regexp.Regexp
	extract func(r *Resolver, query, supplierOverride string) (models.ParameterSet, error)
}

// Rules are evaluated in declaration order and the first match wins, so a
// query mixing both vocabularies ("sales figures for stock items") is
// deterministic: supplier_stock outranks sales_history.
var rules = []rule{
	{
		kind:    models.IntentSupplierStock,
		trigger: regexp.MustCompile(`\b(?:stock|inventory|availability)\b`),
		extract: (*Resolver).stockParams,
	},
	{
		kind:    models.IntentSalesHistory,
		trigger: regexp.MustCompile(`\b(?:sales|history|sold)\b`),
		extract: (*Resolver).salesParams,
	},
}

// Resolver maps free-text queries onto the supported intent kinds. It does
// no I/O: given the same query, override, and clock reading it always
// produces the same result.
type Resolver struct {
	config *Config
	logger logger.Logger
	now    func() time.Time
}

func NewResolver(config *Config, log logger.Logger) *Resolver {
	return &Resolver{
		config: config,
		logger: log.With(map[string]interface{}{
			"component": "intent-resolver",
		}),
		now: time.Now,
	}
}

// Resolve classifies query against the rule table and extracts the matched
// kind's parameters. supplierOverride, when non-empty, beats both text
// extraction and the configured default supplier id.
func (r *Resolver) Resolve(query string, supplierOverride string) (*models.ResolvedIntent, error) {
	normalized := strings.ToLower(strings.TrimSpace(query))

	for _, rl := range rules {
		if !rl.trigger.MatchString(normalized) {
			continue
		}

		params, err := rl.extract(r, query, supplierOverride)
		if err != nil {
			return nil, err
		}
		if brand, ok := extractBrand(query); ok {
			params.Brand = brand
		}

		r.logger.Info("intent resolved", map[string]interface{}{
			"intent":     string(rl.kind),
			"brand":      params.Brand,
			"supplierId": params.SupplierID,
			"startDate":  params.StartDate,
			"endDate":    params.EndDate,
		})

		return &models.ResolvedIntent{
			Kind:       rl.kind,
			Parameters: params,
		}, nil
	}

	r.logger.Warn("no trigger vocabulary matched", map[string]interface{}{
		"query": query,
	})
	return nil, errors.NewUnresolvedIntentError(query)
}

// salesParams builds the trailing date window. An explicit duration phrase
// in the query sets the window length; otherwise, and for phrases that do
// not parse, the configured default applies. The window always ends on the
// day resolution runs.
func (r *Resolver) salesParams(query, _ string) (models.ParameterSet, error) {
	days := r.config.DefaultWindowDays
	if parsed, ok := extractWindowDays(query); ok {
		days = parsed
	}

	end := r.now()
	start := end.AddDate(0, 0, -days)

	return models.ParameterSet{
		StartDate: start.Format(dateLayout),
		EndDate:   end.Format(dateLayout),
	}, nil
}

// stockParams resolves the supplier id: request override, then text
// extraction, then the configured default. With none of the three the
// lookup cannot be made and resolution fails.
func (r *Resolver) stockParams(query, supplierOverride string) (models.ParameterSet, error) {
	supplierID := supplierOverride
	if supplierID == "" {
		if extracted, ok := extractSupplierID(query); ok {
			supplierID = extracted
		} else {
			supplierID = r.config.DefaultSupplierID
		}
	}
	if supplierID == "" {
		return models.ParameterSet{}, errors.NewMissingParameterError("supplierId",
			"no supplier id in the query and no default supplier id is configured")
	}

	return models.ParameterSet{
		SupplierID: supplierID,
	}, nil
}
