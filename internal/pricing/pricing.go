// Package pricing computes the price contribution of special fields from
// the values a customer entered. Every function is pure and total.
package pricing

import (
	"fmt"
	"unicode/utf8"

	"github.com/kahvecikaan/buildingMicroservices/product-configurator/internal/domain"
)

// FieldPrice returns the price contribution of field for the given value.
//
//   - Dropdown: the absolute price of the option whose id equals value,
//     0 when none matches. The field's own price and model are ignored.
//   - Number: Base charges the field price, PerUnit charges price * value.
//   - Text: Base charges the field price, PerChar charges price * length.
//
// Any other combination, and a nil field, prices at 0.
func FieldPrice(field *domain.Field, value any) float64 {
	if field == nil {
		return 0
	}

	switch field.Type {
	case domain.FieldTypeDropdown:
		if value == nil {
			return 0
		}
		opt, ok := field.Option(ToText(value))
		if !ok {
			return 0
		}
		return opt.Price.Float()

	case domain.FieldTypeNumber:
		v := ToNumber(value)
		switch field.PricingModel {
		case domain.PricingBase:
			return field.Price.Float()
		case domain.PricingPerUnit:
			return field.Price.Float() * v
		}

	case domain.FieldTypeText:
		n := utf8.RuneCountInString(ToText(value))
		switch field.PricingModel {
		case domain.PricingBase:
			return field.Price.Float()
		case domain.PricingPerChar:
			return field.Price.Float() * float64(n)
		}
	}

	return 0
}

// TotalPrice returns the product's base price plus the price of every field
// for the customer's current input.
func TotalPrice(product domain.Product, fields []domain.Field, inputs domain.Inputs) float64 {
	total := product.BasePrice
	for i := range fields {
		total += FieldPrice(&fields[i], inputs[fields[i].ID])
	}
	return total
}

// Line is the price contribution of one field.
type Line struct {
	FieldID string  `json:"fieldId"`
	Label   string  `json:"label"`
	Value   any     `json:"value"`
	Price   float64 `json:"price"`
}

// Quote is the price breakdown shown in the live preview.
type Quote struct {
	BasePrice float64 `json:"basePrice"`
	Lines     []Line  `json:"lines"`
	Total     float64 `json:"total"`
}

// NewQuote prices every field in catalog order. Its Total always equals
// TotalPrice for the same arguments.
func NewQuote(product domain.Product, fields []domain.Field, inputs domain.Inputs) Quote {
	q := Quote{BasePrice: product.BasePrice, Lines: make([]Line, 0, len(fields)), Total: product.BasePrice}
	for i := range fields {
		f := &fields[i]
		v := inputs[f.ID]
		p := FieldPrice(f, v)
		q.Lines = append(q.Lines, Line{FieldID: f.ID, Label: f.Label, Value: v, Price: p})
		q.Total += p
	}
	return q
}

// FormatAmount renders an amount with two decimals, as the preview shows it.
func FormatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
