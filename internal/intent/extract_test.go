// internal/intent/extract_test.go
package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Brand Extraction
// ==========================

func TestExtractBrand(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
		found    bool
	}{
		{"brand at start", "Citizen inventory status", "Citizen", true},
		{"brand after verb", "Show Citizen stock", "Citizen", true},
		{"first of two brands wins", "compare Citizen and Seiko sales", "Citizen", true},
		{"sentence-case trigger skipped", "Sales history for Citizen", "Citizen", true},
		{"sentence-case number word skipped", "Six-month sales for Seiko", "Seiko", true},
		{"brand with ampersand", "stock levels for Tag&Heuer", "Tag&Heuer", true},
		{"brand with apostrophe", "Levi's sales last month", "Levi's", true},
		{"no capitalized tokens", "show me sales for last month", "", false},
		{"single letter not a brand", "A sales report", "", false},
		{"empty query", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			brand, found := extractBrand(tt.query)

			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.expected, brand)
		})
	}
}

// ==========================
// Duration Extraction
// ==========================

func TestExtractWindowDays(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected int
		found    bool
	}{
		{"hyphenated digits", "30-day sales", 30, true},
		{"digits with space", "90 day report", 90, true},
		{"plural unit", "sales for 2 weeks", 14, true},
		{"spelled-out quantity", "six-month sales", 180, true},
		{"spelled-out with space", "three month history", 90, true},
		{"year unit", "one year of sales", 365, true},
		{"mixed case", "Six-Month sales", 180, true},
		{"last week phrase", "what sold last week", 7, true},
		{"last month phrase", "sales last month", 30, true},
		{"last year phrase", "sales for last year", 365, true},
		{"explicit quantity beats relative phrase", "last 30 days of sales", 30, true},
		{"zero quantity rejected", "0-day sales", 0, false},
		{"absurd window rejected", "99999 day sales", 0, false},
		{"no duration phrase", "show me sales", 0, false},
		{"unit without quantity", "monthly sales", 0, false},
		{"empty query", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, found := extractWindowDays(tt.query)

			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.expected, days)
		})
	}
}

// ==========================
// Supplier ID Extraction
// ==========================

func TestExtractSupplierID(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
		found    bool
	}{
		{"labeled numeric id", "stock for supplier 12345", "12345", true},
		{"labeled with id keyword", "supplier id 98765 inventory", "98765", true},
		{"labeled with hash", "supplier #555001 stock", "555001", true},
		{"labeled alphanumeric", "supplier id SUP-2041", "SUP-2041", true},
		{"bare numeric token", "check 70021 stock levels", "70021", true},
		{"bare alphanumeric token", "inventory for ACME123", "ACME123", true},
		{"duration not mistaken for id", "stock for the last 180 days", "", false},
		{"short number ignored", "top 10 stock items", "", false},
		{"no id present", "Citizen inventory status", "", false},
		{"empty query", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, found := extractSupplierID(tt.query)

			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.expected, id)
		})
	}
}
