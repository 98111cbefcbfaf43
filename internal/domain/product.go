package domain

// MaxFields is the maximum number of special fields a product can carry.
const MaxFields = 4

// Product represents the product being configured
//
// swagger:model
type Product struct {
	// The name of the product
	//
	// required: true
	// example: Custom Mug
	Name string `json:"name" yaml:"name" validate:"notblank"`

	// The description of the product
	//
	// required: false
	// example: A mug with engraving
	Description string `json:"description" yaml:"description"`

	// The base price of the product, before special fields
	//
	// required: true
	// example: 10
	BasePrice float64 `json:"basePrice" yaml:"basePrice"`

	// Whether the special fields section is enabled
	//
	// required: false
	EnableSpecialFields bool `json:"enableSpecialFields" yaml:"enableSpecialFields"`
}

// ProductPatch holds the product attributes to change. Nil members are left untouched.
type ProductPatch struct {
	Name                *string `json:"name,omitempty"`
	Description         *string `json:"description,omitempty"`
	BasePrice           *Amount `json:"basePrice,omitempty"`
	EnableSpecialFields *bool   `json:"enableSpecialFields,omitempty"`
}

// Apply returns a copy of p with the patch merged in.
// A malformed base price defaults to 0.
func (pp ProductPatch) Apply(p Product) Product {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.BasePrice != nil {
		p.BasePrice = pp.BasePrice.Float()
	}
	if pp.EnableSpecialFields != nil {
		p.EnableSpecialFields = *pp.EnableSpecialFields
	}
	return p
}

// Snapshot is the payload handed to the key-value store on save.
type Snapshot struct {
	Product Product `json:"product" yaml:"product"`
	Fields  []Field `json:"fields" yaml:"fields"`
}
