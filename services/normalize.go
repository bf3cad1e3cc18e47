// services/normalize.go
//
// Best-effort normalization of untyped request payloads. The rule throughout:
// malformed optional input degrades to a safe default, it never fails the
// request. Every coercion is listed here rather than scattered through the
// workflow.
package services

import (
	"encoding/json"
	"strconv"
	"strings"

	"aiinvoice-backend/models"
)

// Payload is the untyped request bag: decoded JSON body or flattened
// multipart form values.
type Payload map[string]interface{}

// Has reports whether the field was explicitly supplied, regardless of value.
func (p Payload) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Str returns the field as a string, or "" when absent or not string-like.
func (p Payload) Str(key string) string {
	return asString(p[key])
}

// Num returns the field coerced to a number; absent falls back, present but
// non-numeric coerces to 0.
func (p Payload) Num(key string, fallback float64) float64 {
	if v, ok := p[key]; ok && v != nil {
		return asNumber(v)
	}
	return fallback
}

// ParseItems accepts an array, a JSON-encoded string, or garbage. A string
// that fails to decode yields an empty list, never an error. Falsy entries
// (null, false, 0, "") are dropped; truthy non-object entries survive as
// zero-contribution items.
func ParseItems(v interface{}) models.ItemList {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		if strings.TrimSpace(t) == "" {
			return nil
		}
		var raw []interface{}
		if err := json.Unmarshal([]byte(t), &raw); err != nil {
			return nil
		}
		return itemsFromSlice(raw)
	case []interface{}:
		return itemsFromSlice(t)
	case models.ItemList:
		return t
	case []models.LineItem:
		return models.ItemList(t)
	default:
		return nil
	}
}

func itemsFromSlice(raw []interface{}) models.ItemList {
	items := make(models.ItemList, 0, len(raw))
	for _, entry := range raw {
		if isFalsy(entry) {
			continue
		}
		obj, ok := entry.(map[string]interface{})
		if !ok {
			items = append(items, models.LineItem{})
			continue
		}
		items = append(items, models.LineItem{
			ID:          asString(obj["id"]),
			Description: asString(obj["description"]),
			Qty:         asNumber(obj["qty"]),
			UnitPrice:   asNumber(obj["unitPrice"]),
		})
	}
	return items
}

// ResolveTaxPercent reads the first explicitly supplied alias. A present but
// non-numeric value coerces to 0; an absent one falls back.
func ResolveTaxPercent(p Payload, fallback float64) float64 {
	for _, key := range []string{"taxPercent", "tax", "defaultTaxPercent"} {
		if v, ok := p[key]; ok && v != nil {
			return asNumber(v)
		}
	}
	return fallback
}

// NormalizeClient maps a bare non-blank string to {name}, passes objects
// through field by field, and falls back for everything else.
func NormalizeClient(v interface{}, fallback models.ClientInfo) models.ClientInfo {
	switch t := v.(type) {
	case string:
		if strings.TrimSpace(t) != "" {
			return models.ClientInfo{Name: t}
		}
	case map[string]interface{}:
		return models.ClientInfo{
			Name:    asString(t["name"]),
			Email:   asString(t["email"]),
			Address: asString(t["address"]),
			Phone:   asString(t["phone"]),
		}
	case models.ClientInfo:
		return t
	}
	return fallback
}

// NormalizeStatus lowercases a non-blank status and falls back otherwise.
// The field is deliberately not a closed enum.
func NormalizeStatus(v interface{}, fallback string) string {
	if s := strings.TrimSpace(asString(v)); s != "" {
		return strings.ToLower(s)
	}
	return fallback
}

func isFalsy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case string:
		return t == ""
	case float64:
		return t == 0
	case int:
		return t == 0
	}
	return false
}

func asString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return ""
	}
}

func asNumber(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return f
		}
	}
	return 0
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
