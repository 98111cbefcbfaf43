package events

import (
	"github.com/kahvecikaan/buildingMicroservices/product-configurator/internal/domain"
	"github.com/kahvecikaan/buildingMicroservices/product-configurator/internal/pricing"
)

type ProductUpdated struct {
	Product domain.Product `json:"product"`
}

type FieldAdded struct {
	FieldID string `json:"field_id"`
}

type FieldUpdated struct {
	FieldID string `json:"field_id"`
}

type FieldRemoved struct {
	FieldID string `json:"field_id"`
}

type FieldMoved struct {
	Index     int `json:"index"`
	Direction int `json:"direction"`
}

type OptionChanged struct {
	FieldID  string `json:"field_id"`
	OptionID string `json:"option_id,omitempty"`
}

type InputChanged struct {
	FieldID string `json:"field_id"`
	Value   any    `json:"value"`
}

// PriceRecalculated carries the fresh preview after any change.
type PriceRecalculated struct {
	Quote pricing.Quote `json:"quote"`
}

type ValidationFailed struct {
	Errors map[string]string `json:"errors"`
}

type ProductSaved struct {
	Key string `json:"key"`
}

type EditorReset struct{}
