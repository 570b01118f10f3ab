package main

import (
	"math"
	"strconv"
	"strings"
)

// parsePrice normalizes typed-in prices: whitespace (incl. thousands
// separators) removed, comma decimal separator converted to a period.
// Returns NaN for non-numeric input.
func parsePrice(raw string) float64 {
	normalized := strings.ReplaceAll(raw, ",", ".")
	normalized = strings.Join(strings.Fields(normalized), "")
	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return math.NaN()
	}
	return value
}

const (
	errPriceRequired = "price is required"
	errPricePositive = "price must be greater than 0"
	errFieldRequired = "field is required"
)

// validateProductField returns an empty string when the value is valid.
func validateProductField(field, value string) string {
	trimmed := strings.TrimSpace(value)

	if field == fieldPrice {
		if trimmed == "" {
			return errPriceRequired
		}
		numeric := parsePrice(value)
		if math.IsNaN(numeric) || math.IsInf(numeric, 0) || numeric <= 0 {
			return errPricePositive
		}
		return ""
	}

	if trimmed == "" {
		return errFieldRequired
	}
	return ""
}

func validateDraft(draft productDraft) map[string]string {
	errors := make(map[string]string)
	for _, field := range editableFields {
		if msg := validateProductField(field, draft.field(field)); msg != "" {
			errors[field] = msg
		}
	}
	return errors
}
