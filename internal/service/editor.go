package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/buildingMicroservices/product-configurator/internal/catalog"
	"github.com/kahvecikaan/buildingMicroservices/product-configurator/internal/domain"
	"github.com/kahvecikaan/buildingMicroservices/product-configurator/internal/events"
	"github.com/kahvecikaan/buildingMicroservices/product-configurator/internal/pricing"
	"github.com/kahvecikaan/buildingMicroservices/product-configurator/internal/repository"
)

// DefaultSnapshotKey is the key a saved product is stored under.
const DefaultSnapshotKey = "productDemo"

// EditorService hosts the single editing session: the product, its field
// catalog with the customer inputs of the preview, and the issues found by
// the last validation.
type EditorService interface {
	View(ctx context.Context) View
	UpdateProduct(ctx context.Context, patch domain.ProductPatch) View
	AddField(ctx context.Context) (View, error)
	RemoveField(ctx context.Context, id string) View
	UpdateField(ctx context.Context, id string, patch domain.FieldPatch) (View, error)
	MoveField(ctx context.Context, index, direction int) View
	AddOption(ctx context.Context, fieldID string) (View, error)
	RemoveOption(ctx context.Context, fieldID, optionID string) View
	UpdateOption(ctx context.Context, fieldID, optionID string, patch domain.OptionPatch) (View, error)
	SetInput(ctx context.Context, fieldID string, value any) (View, error)
	Validate(ctx context.Context) domain.ValidationErrors
	Quote(ctx context.Context) pricing.Quote
	Save(ctx context.Context) error
	Cancel(ctx context.Context) View
	LoadExample(ctx context.Context) (View, error)
}

// View is a read-only snapshot of the session for rendering.
type View struct {
	Product domain.Product          `json:"product"`
	Fields  []domain.Field          `json:"fields"`
	Inputs  domain.Inputs           `json:"inputs"`
	Errors  map[string]string       `json:"errors"`
	Issues  domain.ValidationErrors `json:"issues"`
	Quote   pricing.Quote           `json:"quote"`
	Total   string                  `json:"total"`
}

type editorService struct {
	repo     repository.SnapshotRepository
	eventBus *events.EventBus[any]
	logger   hclog.Logger
	ids      catalog.IDGenerator
	key      string

	mutex   sync.Mutex
	product domain.Product
	catalog catalog.Catalog
	issues  domain.ValidationErrors
}

func NewEditorService(
	repo repository.SnapshotRepository,
	eventBus *events.EventBus[any],
	logger hclog.Logger,
	ids catalog.IDGenerator,
	key string) EditorService {
	if ids == nil {
		ids = catalog.UUIDGenerator{}
	}
	if key == "" {
		key = DefaultSnapshotKey
	}
	return &editorService{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
		ids:      ids,
		key:      key,
		catalog:  catalog.Default(ids),
	}
}

// view must be called with the mutex held.
func (s *editorService) view() View {
	fields := s.catalog.Fields()
	inputs := s.catalog.Inputs()
	quote := pricing.NewQuote(s.product, fields, inputs)
	return View{
		Product: s.product,
		Fields:  fields,
		Inputs:  inputs,
		Errors:  s.issues.ByKey(),
		Issues:  s.issues,
		Quote:   quote,
		Total:   pricing.FormatAmount(quote.Total),
	}
}

// commit publishes the change and the recalculated preview.
// It must be called with the mutex held.
func (s *editorService) commit(event any) View {
	v := s.view()
	if event != nil {
		s.eventBus.Publish(event)
	}
	s.eventBus.Publish(events.PriceRecalculated{Quote: v.Quote})
	return v
}

func (s *editorService) View(ctx context.Context) View {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.view()
}

func (s *editorService) UpdateProduct(ctx context.Context, patch domain.ProductPatch) View {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.product = patch.Apply(s.product)
	s.logger.Debug("Updated product", "name", s.product.Name, "base_price", s.product.BasePrice)

	return s.commit(events.ProductUpdated{Product: s.product})
}

func (s *editorService) AddField(ctx context.Context) (View, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.catalog.Full() {
		s.logger.Debug("Field catalog is full", "max", domain.MaxFields)
		return s.view(), domain.ErrFieldLimit
	}

	s.catalog = s.catalog.AddField()
	fields := s.catalog.Fields()
	id := fields[len(fields)-1].ID
	s.logger.Debug("Added field", "id", id, "count", len(fields))

	return s.commit(events.FieldAdded{FieldID: id}), nil
}

func (s *editorService) RemoveField(ctx context.Context, id string) View {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.catalog.Field(id); !ok {
		return s.view()
	}

	s.catalog = s.catalog.RemoveField(id)
	s.logger.Debug("Removed field", "id", id)

	return s.commit(events.FieldRemoved{FieldID: id})
}

func (s *editorService) UpdateField(ctx context.Context, id string, patch domain.FieldPatch) (View, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.catalog.Field(id); !ok {
		return s.view(), domain.ErrFieldNotFound
	}

	s.catalog = s.catalog.UpdateField(id, patch)
	s.logger.Debug("Updated field", "id", id)

	return s.commit(events.FieldUpdated{FieldID: id}), nil
}

func (s *editorService) MoveField(ctx context.Context, index, direction int) View {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.catalog = s.catalog.MoveField(index, direction)
	s.logger.Debug("Moved field", "index", index, "direction", direction)

	return s.commit(events.FieldMoved{Index: index, Direction: direction})
}

func (s *editorService) AddOption(ctx context.Context, fieldID string) (View, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.catalog.Field(fieldID); !ok {
		return s.view(), domain.ErrFieldNotFound
	}

	s.catalog = s.catalog.AddOption(fieldID)
	s.logger.Debug("Added option", "field_id", fieldID)

	return s.commit(events.OptionChanged{FieldID: fieldID}), nil
}

func (s *editorService) RemoveOption(ctx context.Context, fieldID, optionID string) View {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.catalog = s.catalog.RemoveOption(fieldID, optionID)
	s.logger.Debug("Removed option", "field_id", fieldID, "option_id", optionID)

	return s.commit(events.OptionChanged{FieldID: fieldID, OptionID: optionID})
}

func (s *editorService) UpdateOption(ctx context.Context, fieldID, optionID string, patch domain.OptionPatch) (View, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	f, ok := s.catalog.Field(fieldID)
	if !ok {
		return s.view(), domain.ErrFieldNotFound
	}
	if _, ok := f.Option(optionID); !ok {
		return s.view(), domain.ErrOptionNotFound
	}

	s.catalog = s.catalog.UpdateOption(fieldID, optionID, patch)
	s.logger.Debug("Updated option", "field_id", fieldID, "option_id", optionID)

	return s.commit(events.OptionChanged{FieldID: fieldID, OptionID: optionID}), nil
}

// SetInput records a customer value. The value itself is never rejected.
func (s *editorService) SetInput(ctx context.Context, fieldID string, value any) (View, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.catalog.Field(fieldID); !ok {
		return s.view(), domain.ErrFieldNotFound
	}

	s.catalog = s.catalog.SetInput(fieldID, value)

	return s.commit(events.InputChanged{FieldID: fieldID, Value: value}), nil
}

func (s *editorService) Validate(ctx context.Context) domain.ValidationErrors {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.validate()
}

// validate must be called with the mutex held.
func (s *editorService) validate() domain.ValidationErrors {
	s.issues = domain.ValidateAdmin(s.product, s.catalog.Fields())
	if len(s.issues) > 0 {
		s.logger.Debug("Validation failed", "issues", len(s.issues))
		s.eventBus.Publish(events.ValidationFailed{Errors: s.issues.ByKey()})
	}
	return s.issues
}

func (s *editorService) Quote(ctx context.Context) pricing.Quote {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return pricing.NewQuote(s.product, s.catalog.Fields(), s.catalog.Inputs())
}

// Save validates the session and, when it passes, writes the product and
// its fields to the repository. A failed write leaves the session as is.
func (s *editorService) Save(ctx context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if issues := s.validate(); len(issues) > 0 {
		return issues
	}

	snapshot := domain.Snapshot{Product: s.product, Fields: s.catalog.Fields()}
	if err := s.repo.Save(ctx, s.key, snapshot); err != nil {
		s.logger.Error("Unable to save product", "key", s.key, "error", err)
		return fmt.Errorf("%w: %w", domain.ErrSaveFailed, err)
	}

	s.logger.Info("Saved product", "key", s.key, "name", s.product.Name, "fields", len(snapshot.Fields))
	s.eventBus.Publish(events.ProductSaved{Key: s.key})
	return nil
}

// Cancel discards the session and starts over with one default field.
func (s *editorService) Cancel(ctx context.Context) View {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.product = domain.Product{}
	s.catalog = catalog.Default(s.ids)
	s.issues = nil
	s.logger.Debug("Editor reset")

	return s.commit(events.EditorReset{})
}

// LoadExample replaces the session with the bundled example product.
func (s *editorService) LoadExample(ctx context.Context) (View, error) {
	snapshot, err := ExampleSnapshot()
	if err != nil {
		s.logger.Error("Unable to load example product", "error", err)
		return View{}, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.product = snapshot.Product
	s.catalog = catalog.FromFields(s.ids, snapshot.Fields)
	s.issues = nil
	s.logger.Debug("Loaded example product", "name", s.product.Name)

	return s.commit(events.ProductUpdated{Product: s.product}), nil
}
