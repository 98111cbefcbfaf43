package catalog

import (
	"github.com/kahvecikaan/buildingMicroservices/product-configurator/internal/domain"
)

const (
	fieldPrefix  = "f"
	optionPrefix = "opt"
)

// Catalog is the ordered list of a product's special fields together with
// the customer inputs keyed by field id. A Catalog is a value: every
// operation returns a new Catalog and leaves the receiver untouched.
type Catalog struct {
	ids    IDGenerator
	fields []domain.Field
	inputs domain.Inputs
}

// New returns an empty catalog.
func New(ids IDGenerator) Catalog {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	return Catalog{ids: ids, inputs: domain.Inputs{}}
}

// Default returns a catalog holding a single default field.
func Default(ids IDGenerator) Catalog {
	return New(ids).AddField()
}

// FromFields builds a catalog from existing fields, keeping at most MaxFields.
func FromFields(ids IDGenerator, fields []domain.Field) Catalog {
	c := New(ids)
	if len(fields) > domain.MaxFields {
		fields = fields[:domain.MaxFields]
	}
	for _, f := range fields {
		c.fields = append(c.fields, f.Clone())
	}
	return c.seedInputs()
}

func (c Catalog) idGen() IDGenerator {
	if c.ids == nil {
		return UUIDGenerator{}
	}
	return c.ids
}

func (c Catalog) newField() domain.Field {
	return domain.Field{
		ID:           c.idGen().NewID(fieldPrefix),
		Type:         domain.FieldTypeText,
		PricingModel: domain.PricingBase,
		Price:        domain.NewAmount(0),
		Options:      []domain.Option{},
	}
}

func (c Catalog) newOption() domain.Option {
	return domain.Option{ID: c.idGen().NewID(optionPrefix), Price: domain.NewAmount(0)}
}

// clone copies the field slice and the input map so the result can be
// modified without touching c.
func (c Catalog) clone() Catalog {
	fields := make([]domain.Field, len(c.fields))
	for i, f := range c.fields {
		fields[i] = f.Clone()
	}
	return Catalog{ids: c.ids, fields: fields, inputs: c.inputs.Clone()}
}

// seedInputs gives every field without an input its default value:
// the first option for a Dropdown, 0 for a Number, "" otherwise.
func (c Catalog) seedInputs() Catalog {
	if c.inputs == nil {
		c.inputs = domain.Inputs{}
	}
	for _, f := range c.fields {
		if _, ok := c.inputs[f.ID]; ok {
			continue
		}
		c.inputs[f.ID] = DefaultInput(f)
	}
	return c
}

// DefaultInput is the value a customer starts with for f.
func DefaultInput(f domain.Field) any {
	switch {
	case f.Type == domain.FieldTypeDropdown && len(f.Options) > 0:
		return f.Options[0].ID
	case f.Type == domain.FieldTypeNumber:
		return float64(0)
	}
	return ""
}

func (c Catalog) indexOf(id string) int {
	for i, f := range c.fields {
		if f.ID == id {
			return i
		}
	}
	return -1
}

// Len returns the number of fields.
func (c Catalog) Len() int {
	return len(c.fields)
}

// Full reports whether no more fields can be added.
func (c Catalog) Full() bool {
	return len(c.fields) >= domain.MaxFields
}

// Fields returns a copy of the fields in display order.
func (c Catalog) Fields() []domain.Field {
	return c.clone().fields
}

// Field returns a copy of the field with the given id.
func (c Catalog) Field(id string) (domain.Field, bool) {
	i := c.indexOf(id)
	if i < 0 {
		return domain.Field{}, false
	}
	return c.fields[i].Clone(), true
}

// Inputs returns a copy of the customer inputs.
func (c Catalog) Inputs() domain.Inputs {
	return c.inputs.Clone()
}

// AddField appends a default field. It is a no-op once the catalog is full.
func (c Catalog) AddField() Catalog {
	if c.Full() {
		return c
	}
	n := c.clone()
	n.fields = append(n.fields, n.newField())
	return n.seedInputs()
}

// RemoveField deletes the field and its customer input. Unknown ids are ignored.
func (c Catalog) RemoveField(id string) Catalog {
	i := c.indexOf(id)
	if i < 0 {
		return c
	}
	n := c.clone()
	n.fields = append(n.fields[:i], n.fields[i+1:]...)
	delete(n.inputs, id)
	return n
}

// UpdateField merges patch into the field. Switching to Dropdown seeds two
// empty options when there are none; switching away clears the options.
func (c Catalog) UpdateField(id string, patch domain.FieldPatch) Catalog {
	i := c.indexOf(id)
	if i < 0 {
		return c
	}
	n := c.clone()
	f := &n.fields[i]

	if patch.Label != nil {
		f.Label = *patch.Label
	}
	if patch.Required != nil {
		f.Required = *patch.Required
	}
	if patch.PricingModel != nil {
		f.PricingModel = *patch.PricingModel
	}
	if patch.Price != nil {
		f.Price = *patch.Price
	}
	if patch.Min != nil {
		f.Min = *patch.Min
	}
	if patch.Max != nil {
		f.Max = *patch.Max
	}
	if patch.Type != nil {
		f.Type = *patch.Type
		if f.Type == domain.FieldTypeDropdown {
			if len(f.Options) == 0 {
				f.Options = []domain.Option{n.newOption(), n.newOption()}
			}
		} else {
			f.Options = []domain.Option{}
		}
	}

	return n.seedInputs()
}

// MoveField swaps the field at index with its neighbour at index+direction.
// Out of range positions leave the catalog unchanged.
func (c Catalog) MoveField(index, direction int) Catalog {
	to := index + direction
	if index < 0 || index >= len(c.fields) || to < 0 || to >= len(c.fields) {
		return c
	}
	n := c.clone()
	n.fields[index], n.fields[to] = n.fields[to], n.fields[index]
	return n
}

// AddOption appends an empty option to the field.
func (c Catalog) AddOption(fieldID string) Catalog {
	i := c.indexOf(fieldID)
	if i < 0 {
		return c
	}
	n := c.clone()
	n.fields[i].Options = append(n.fields[i].Options, n.newOption())
	return n.seedInputs()
}

// RemoveOption deletes an option from the field. Removing the last options
// is allowed; validation reports Dropdowns left with too few.
func (c Catalog) RemoveOption(fieldID, optionID string) Catalog {
	i := c.indexOf(fieldID)
	if i < 0 {
		return c
	}
	if _, ok := c.fields[i].Option(optionID); !ok {
		return c
	}
	n := c.clone()
	opts := n.fields[i].Options[:0]
	for _, o := range n.fields[i].Options {
		if o.ID != optionID {
			opts = append(opts, o)
		}
	}
	n.fields[i].Options = opts
	return n
}

// UpdateOption merges patch into the option of the given field.
func (c Catalog) UpdateOption(fieldID, optionID string, patch domain.OptionPatch) Catalog {
	i := c.indexOf(fieldID)
	if i < 0 {
		return c
	}
	n := c.clone()
	for j, o := range n.fields[i].Options {
		if o.ID == optionID {
			n.fields[i].Options[j] = patch.Apply(o)
			return n
		}
	}
	return c
}

// SetInput records the customer's value for a field. Values for unknown
// fields are dropped; the inputs never own field identity.
func (c Catalog) SetInput(fieldID string, value any) Catalog {
	if c.indexOf(fieldID) < 0 {
		return c
	}
	n := c.clone()
	n.inputs[fieldID] = value
	return n
}
