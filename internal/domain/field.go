package domain

import "encoding/json"

// FieldType identifies which pricing and validation rules apply to a field.
type FieldType string

const (
	FieldTypeText     FieldType = "Text"
	FieldTypeNumber   FieldType = "Number"
	FieldTypeDropdown FieldType = "Dropdown"
)

// PricingModel is the formula used to derive a field's price from its value.
// The empty model means none was chosen.
type PricingModel string

const (
	PricingBase    PricingModel = "Base"
	PricingPerUnit PricingModel = "PerUnit"
	PricingPerChar PricingModel = "PerChar"
)

func (m PricingModel) MarshalJSON() ([]byte, error) {
	if m == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(m))
}

// Field is a special field attached to a product
//
// swagger:model
type Field struct {
	// Opaque identifier assigned at creation
	ID string `json:"id" yaml:"id"`

	// Label shown to the customer, unique within the product
	//
	// example: Engraving Text
	Label string `json:"label" yaml:"label"`

	// One of Text, Number, Dropdown
	Type FieldType `json:"type" yaml:"type"`

	Required bool `json:"required" yaml:"required"`

	// One of Base, PerUnit (Number), PerChar (Text), or null
	PricingModel PricingModel `json:"pricingModel" yaml:"pricingModel"`

	// Base, unit or per-character rate
	Price Amount `json:"price" yaml:"price"`

	// Optional bounds: character length for Text, value for Number
	Min Amount `json:"min" yaml:"min"`
	Max Amount `json:"max" yaml:"max"`

	// Selectable choices, in display order. Dropdown only.
	Options []Option `json:"options" yaml:"options"`
}

// Option is one selectable choice of a Dropdown field.
// Its price is absolute, not added to the field's own price.
type Option struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Price Amount `json:"price" yaml:"price"`
}

// Clone returns a deep copy of the field.
func (f Field) Clone() Field {
	if f.Options != nil {
		opts := make([]Option, len(f.Options))
		copy(opts, f.Options)
		f.Options = opts
	}
	return f
}

// Option returns the option with the given id.
func (f Field) Option(id string) (Option, bool) {
	for _, o := range f.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// FieldPatch holds the field attributes to change. Nil members are left untouched.
type FieldPatch struct {
	Label        *string       `json:"label,omitempty"`
	Type         *FieldType    `json:"type,omitempty" validate:"omitempty,oneof=Text Number Dropdown"`
	Required     *bool         `json:"required,omitempty"`
	PricingModel *PricingModel `json:"pricingModel,omitempty" validate:"omitempty,oneof=Base PerUnit PerChar"`
	Price        *Amount       `json:"price,omitempty"`
	Min          *Amount       `json:"min,omitempty"`
	Max          *Amount       `json:"max,omitempty"`
}

// OptionPatch holds the option attributes to change.
type OptionPatch struct {
	Name  *string `json:"name,omitempty"`
	Price *Amount `json:"price,omitempty"`
}

// Apply returns a copy of o with the patch merged in.
func (op OptionPatch) Apply(o Option) Option {
	if op.Name != nil {
		o.Name = *op.Name
	}
	if op.Price != nil {
		o.Price = *op.Price
	}
	return o
}

// Inputs maps a field id to the customer's current value for that field.
type Inputs map[string]any

// Clone returns a shallow copy of the inputs.
func (in Inputs) Clone() Inputs {
	out := make(Inputs, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
