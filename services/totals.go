// services/totals.go
package services

import (
	"math"

	"aiinvoice-backend/models"
)

// Totals are the derived monetary fields of an invoice. They are recomputed on
// every write and never trusted from client input.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// ComputeTotals sums the line items and applies the tax rate. Pure: same
// inputs, same output, no side effects. Amounts are rounded half-up to
// currency minor units; the total is the sum of the rounded parts so
// subtotal + tax == total always holds.
func ComputeTotals(items []models.LineItem, taxPercent float64) Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Qty * item.UnitPrice
	}
	subtotal = round2(subtotal)
	tax := round2(subtotal * taxPercent / 100)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    round2(subtotal + tax),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
