package catalog

import (
	"testing"

	"github.com/kahvecikaan/buildingMicroservices/product-configurator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(c Catalog) []string {
	var out []string
	for _, f := range c.Fields() {
		out = append(out, f.ID)
	}
	return out
}

func strPtr(s string) *string { return &s }

func typePtr(t domain.FieldType) *domain.FieldType { return &t }

func TestAddField(t *testing.T) {
	c := New(&SequenceGenerator{})

	c = c.AddField()
	require.Equal(t, 1, c.Len())

	f := c.Fields()[0]
	assert.Equal(t, "f-1", f.ID)
	assert.Equal(t, domain.FieldTypeText, f.Type)
	assert.Equal(t, domain.PricingBase, f.PricingModel)
	assert.Equal(t, domain.NewAmount(0), f.Price)
	assert.Empty(t, f.Options)
	assert.Equal(t, "", c.Inputs()["f-1"])
}

func TestAddFieldIsNoOpWhenFull(t *testing.T) {
	c := New(&SequenceGenerator{})
	for i := 0; i < domain.MaxFields; i++ {
		c = c.AddField()
	}
	require.True(t, c.Full())

	after := c.AddField()
	assert.Equal(t, domain.MaxFields, after.Len())
	assert.Equal(t, ids(c), ids(after))
	assert.Len(t, after.Inputs(), domain.MaxFields)
}

func TestOperationsDoNotMutateReceiver(t *testing.T) {
	c := Default(&SequenceGenerator{})
	before := c.Fields()

	_ = c.AddField()
	_ = c.UpdateField("f-1", domain.FieldPatch{Label: strPtr("Engraving")})
	_ = c.SetInput("f-1", "Hello")
	_ = c.RemoveField("f-1")

	assert.Equal(t, before, c.Fields())
	assert.Equal(t, domain.Inputs{"f-1": ""}, c.Inputs())
}

func TestRemoveField(t *testing.T) {
	c := New(&SequenceGenerator{}).AddField().AddField()

	t.Run("Removes field and input", func(t *testing.T) {
		n := c.RemoveField("f-1")
		assert.Equal(t, []string{"f-2"}, ids(n))
		assert.NotContains(t, n.Inputs(), "f-1")
	})

	t.Run("Unknown id is idempotent", func(t *testing.T) {
		n := c.RemoveField("missing")
		assert.Equal(t, ids(c), ids(n))
		assert.Equal(t, c.Inputs(), n.Inputs())

		twice := c.RemoveField("f-1").RemoveField("f-1")
		assert.Equal(t, []string{"f-2"}, ids(twice))
	})
}

func TestMoveField(t *testing.T) {
	c := New(&SequenceGenerator{}).AddField().AddField().AddField()

	testCases := []struct {
		name      string
		index     int
		direction int
		want      []string
	}{
		{"First up is no-op", 0, -1, []string{"f-1", "f-2", "f-3"}},
		{"Last down is no-op", 2, 1, []string{"f-1", "f-2", "f-3"}},
		{"Index out of range", 7, -1, []string{"f-1", "f-2", "f-3"}},
		{"Swap down", 0, 1, []string{"f-2", "f-1", "f-3"}},
		{"Swap up", 2, -1, []string{"f-1", "f-3", "f-2"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(c.MoveField(tc.index, tc.direction)))
		})
	}
}

func TestUpdateFieldTypeChanges(t *testing.T) {
	c := Default(&SequenceGenerator{})

	c = c.UpdateField("f-1", domain.FieldPatch{Type: typePtr(domain.FieldTypeDropdown)})
	f, ok := c.Field("f-1")
	require.True(t, ok)
	require.Len(t, f.Options, 2)
	assert.Equal(t, "opt-2", f.Options[0].ID)
	assert.Equal(t, "opt-3", f.Options[1].ID)
	for _, o := range f.Options {
		assert.Empty(t, o.Name)
		assert.Equal(t, domain.NewAmount(0), o.Price)
	}

	// Existing options are kept when re-selecting Dropdown.
	c = c.AddOption("f-1")
	c = c.UpdateField("f-1", domain.FieldPatch{Type: typePtr(domain.FieldTypeDropdown)})
	f, _ = c.Field("f-1")
	assert.Len(t, f.Options, 3)

	c = c.UpdateField("f-1", domain.FieldPatch{Type: typePtr(domain.FieldTypeNumber)})
	f, _ = c.Field("f-1")
	assert.Equal(t, domain.FieldTypeNumber, f.Type)
	assert.Empty(t, f.Options)
}

func TestUpdateFieldMergesAttributes(t *testing.T) {
	c := Default(&SequenceGenerator{})
	model := domain.PricingPerChar
	price := domain.NewAmount(2)
	required := true

	c = c.UpdateField("f-1", domain.FieldPatch{
		Label:        strPtr("Engraving"),
		PricingModel: &model,
		Price:        &price,
		Required:     &required,
	})
	f, _ := c.Field("f-1")
	assert.Equal(t, "Engraving", f.Label)
	assert.Equal(t, domain.PricingPerChar, f.PricingModel)
	assert.Equal(t, domain.NewAmount(2), f.Price)
	assert.True(t, f.Required)
	assert.Equal(t, domain.FieldTypeText, f.Type)

	unchanged := c.UpdateField("missing", domain.FieldPatch{Label: strPtr("x")})
	assert.Equal(t, c.Fields(), unchanged.Fields())
}

func TestOptions(t *testing.T) {
	c := Default(&SequenceGenerator{}).UpdateField("f-1", domain.FieldPatch{Type: typePtr(domain.FieldTypeDropdown)})

	price := domain.NewAmount(5)
	c = c.UpdateOption("f-1", "opt-2", domain.OptionPatch{Name: strPtr("Medium"), Price: &price})
	f, _ := c.Field("f-1")
	assert.Equal(t, "Medium", f.Options[0].Name)
	assert.Equal(t, domain.NewAmount(5), f.Options[0].Price)

	c = c.RemoveOption("f-1", "opt-2").RemoveOption("f-1", "opt-3")
	f, _ = c.Field("f-1")
	assert.Empty(t, f.Options)

	same := c.RemoveOption("f-1", "opt-2")
	assert.Equal(t, c.Fields(), same.Fields())
}

func TestInputsSeeding(t *testing.T) {
	fields := []domain.Field{
		{ID: "a", Type: domain.FieldTypeText},
		{ID: "b", Type: domain.FieldTypeNumber},
		{ID: "c", Type: domain.FieldTypeDropdown, Options: []domain.Option{{ID: "s"}, {ID: "m"}}},
		{ID: "d", Type: domain.FieldTypeDropdown},
		{ID: "e", Type: domain.FieldTypeText},
	}

	c := FromFields(&SequenceGenerator{}, fields)
	assert.Equal(t, domain.MaxFields, c.Len())
	assert.Equal(t, domain.Inputs{"a": "", "b": float64(0), "c": "s", "d": ""}, c.Inputs())

	c = c.SetInput("b", "12").SetInput("ghost", "x")
	assert.Equal(t, "12", c.Inputs()["b"])
	assert.NotContains(t, c.Inputs(), "ghost")

	// Existing values survive later mutations.
	c = c.RemoveField("a").AddField()
	assert.Equal(t, "12", c.Inputs()["b"])
	assert.Equal(t, "", c.Inputs()["f-1"])
}
