package service

import (
	"context"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/buildingMicroservices/product-configurator/internal/catalog"
	"github.com/kahvecikaan/buildingMicroservices/product-configurator/internal/domain"
	"github.com/kahvecikaan/buildingMicroservices/product-configurator/internal/events"
	"github.com/kahvecikaan/buildingMicroservices/product-configurator/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEditor(t *testing.T, repo repository.SnapshotRepository) (EditorService, *events.EventBus[any]) {
	t.Helper()
	bus := events.NewEventBus[any]()
	return NewEditorService(repo, bus, hclog.NewNullLogger(), &catalog.SequenceGenerator{}, ""), bus
}

func strPtr(s string) *string { return &s }

func drain(sub events.Subscriber[any]) []any {
	var out []any
	for {
		select {
		case e := <-sub:
			out = append(out, e)
		default:
			return out
		}
	}
}

func TestEditorStartsWithDefaultField(t *testing.T) {
	editor, _ := newTestEditor(t, repository.NewMemoryRepository())

	v := editor.View(context.Background())
	require.Len(t, v.Fields, 1)
	assert.Equal(t, "f-1", v.Fields[0].ID)
	assert.Equal(t, domain.Inputs{"f-1": ""}, v.Inputs)
	assert.Equal(t, "0.00", v.Total)
}

func TestEditorFieldLimit(t *testing.T) {
	ctx := context.Background()
	editor, _ := newTestEditor(t, repository.NewMemoryRepository())

	for i := 1; i < domain.MaxFields; i++ {
		_, err := editor.AddField(ctx)
		require.NoError(t, err)
	}

	v, err := editor.AddField(ctx)
	assert.ErrorIs(t, err, domain.ErrFieldLimit)
	assert.Len(t, v.Fields, domain.MaxFields)
}

func TestEditorPublishesPreview(t *testing.T) {
	ctx := context.Background()
	editor, bus := newTestEditor(t, repository.NewMemoryRepository())
	sub := bus.Subscribe()
	defer bus.Unsubscribe(sub)

	model := domain.PricingPerChar
	price := domain.NewAmount(2)
	base := domain.NewAmount(10)

	editor.UpdateProduct(ctx, domain.ProductPatch{Name: strPtr("Mug"), BasePrice: &base})
	_, err := editor.UpdateField(ctx, "f-1", domain.FieldPatch{Label: strPtr("Engraving"), PricingModel: &model, Price: &price})
	require.NoError(t, err)
	v, err := editor.SetInput(ctx, "f-1", "Hi")
	require.NoError(t, err)

	assert.Equal(t, "14.00", v.Total)
	assert.Equal(t, 4.0, v.Quote.Lines[0].Price)

	published := drain(sub)
	require.NotEmpty(t, published)
	last, ok := published[len(published)-1].(events.PriceRecalculated)
	require.True(t, ok)
	assert.Equal(t, 14.0, last.Quote.Total)
	assert.Contains(t, published, any(events.InputChanged{FieldID: "f-1", Value: "Hi"}))
}

func TestEditorUnknownIDs(t *testing.T) {
	ctx := context.Background()
	editor, _ := newTestEditor(t, repository.NewMemoryRepository())

	_, err := editor.UpdateField(ctx, "missing", domain.FieldPatch{})
	assert.ErrorIs(t, err, domain.ErrFieldNotFound)

	_, err = editor.UpdateOption(ctx, "f-1", "missing", domain.OptionPatch{})
	assert.ErrorIs(t, err, domain.ErrOptionNotFound)

	_, err = editor.SetInput(ctx, "missing", 1)
	assert.ErrorIs(t, err, domain.ErrFieldNotFound)

	before := editor.View(ctx)
	after := editor.RemoveField(ctx, "missing")
	assert.Equal(t, before.Fields, after.Fields)
	assert.Equal(t, before.Inputs, after.Inputs)
}

func TestEditorSaveBlockedByValidation(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	editor, _ := newTestEditor(t, repo)

	err := editor.Save(ctx)
	var issues domain.ValidationErrors
	require.ErrorAs(t, err, &issues)
	assert.Equal(t, "Product name is required", issues.ByKey()["productName"])
	assert.Equal(t, "Label required", issues.ByKey()["field-f-1-label"])

	_, err = repo.Load(ctx, DefaultSnapshotKey)
	assert.ErrorIs(t, err, repository.ErrSnapshotNotFound)

	// The issues stay visible until the next validation.
	assert.Len(t, editor.View(ctx).Issues, 2)
}

func TestEditorSave(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	editor, bus := newTestEditor(t, repo)
	sub := bus.Subscribe()
	defer bus.Unsubscribe(sub)

	editor.UpdateProduct(ctx, domain.ProductPatch{Name: strPtr("Mug")})
	_, err := editor.UpdateField(ctx, "f-1", domain.FieldPatch{Label: strPtr("Engraving")})
	require.NoError(t, err)

	require.NoError(t, editor.Save(ctx))

	saved, err := repo.Load(ctx, DefaultSnapshotKey)
	require.NoError(t, err)
	assert.Equal(t, "Mug", saved.Product.Name)
	require.Len(t, saved.Fields, 1)
	assert.Equal(t, "Engraving", saved.Fields[0].Label)
	assert.Contains(t, drain(sub), any(events.ProductSaved{Key: DefaultSnapshotKey}))
}

func TestEditorSaveFailureKeepsSession(t *testing.T) {
	ctx := context.Background()
	repo, err := repository.NewLocalRepository(t.TempDir(), 16)
	require.NoError(t, err)
	editor, _ := newTestEditor(t, repo)

	editor.UpdateProduct(ctx, domain.ProductPatch{Name: strPtr("Mug")})
	_, err = editor.UpdateField(ctx, "f-1", domain.FieldPatch{Label: strPtr("Engraving")})
	require.NoError(t, err)
	before := editor.View(ctx)

	err = editor.Save(ctx)
	assert.ErrorIs(t, err, domain.ErrSaveFailed)
	assert.ErrorIs(t, err, repository.ErrQuotaExceeded)

	assert.Equal(t, before, editor.View(ctx))
}

func TestEditorLoadExample(t *testing.T) {
	ctx := context.Background()
	editor, _ := newTestEditor(t, repository.NewMemoryRepository())

	v, err := editor.LoadExample(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Custom Mug", v.Product.Name)
	require.Len(t, v.Fields, 2)
	assert.Equal(t, "s", v.Inputs["f-eg-2"])
	assert.Equal(t, "25.00", v.Total)

	v, err = editor.SetInput(ctx, "f-eg-2", "l")
	require.NoError(t, err)
	assert.Equal(t, "35.00", v.Total)

	assert.Empty(t, editor.Validate(ctx))
	assert.NoError(t, editor.Save(ctx))
}

func TestEditorCancel(t *testing.T) {
	ctx := context.Background()
	editor, _ := newTestEditor(t, repository.NewMemoryRepository())

	_, err := editor.LoadExample(ctx)
	require.NoError(t, err)
	editor.UpdateProduct(ctx, domain.ProductPatch{Name: strPtr("")})
	require.NotEmpty(t, editor.Validate(ctx))

	v := editor.Cancel(ctx)
	assert.Equal(t, domain.Product{}, v.Product)
	require.Len(t, v.Fields, 1)
	assert.Equal(t, domain.FieldTypeText, v.Fields[0].Type)
	assert.Equal(t, domain.Inputs{v.Fields[0].ID: ""}, v.Inputs)
	assert.Empty(t, v.Issues)
	assert.Empty(t, v.Errors)
}
