package http

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/buildingMicroservices/product-configurator/internal/domain"
	"github.com/kahvecikaan/buildingMicroservices/product-configurator/internal/service"
)

type EditorHandler struct {
	editor service.EditorService
	logger hclog.Logger
}

func NewEditorHandler(es service.EditorService, log hclog.Logger) *EditorHandler {
	return &EditorHandler{
		editor: es,
		logger: log,
	}
}

// writeError maps service errors onto HTTP statuses.
func (h *EditorHandler) writeError(w http.ResponseWriter, err error) {
	var issues domain.ValidationErrors
	switch {
	case errors.As(err, &issues):
		writeJSON(w, http.StatusUnprocessableEntity, IssuesResponse{Valid: false, Errors: issues.ByKey(), Issues: issues})
	case errors.Is(err, domain.ErrFieldLimit):
		writeJSON(w, http.StatusConflict, ErrorResponse{Message: "A product can have at most 4 special fields"})
	case errors.Is(err, domain.ErrFieldNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Message: "Field not found"})
	case errors.Is(err, domain.ErrOptionNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Message: "Option not found"})
	case errors.Is(err, domain.ErrSaveFailed):
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Message: "Unable to save the product"})
	default:
		h.logger.Error("Unexpected editor error", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "Internal error"})
	}
}

// GetEditor handles GET /editor
//
// swagger:route GET /editor editor getEditor
//
// Returns the editing session with its live preview.
//
// Responses:
//
//	200: editorResponse
func (h *EditorHandler) GetEditor(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.editor.View(r.Context()))
}

// UpdateProduct handles PUT /editor/product
//
// swagger:route PUT /editor/product editor updateProduct
//
// Updates the product attributes.
//
// Responses:
//
//	200: editorResponse
//	400: errorResponse
func (h *EditorHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	patch, ok := bodyFrom[domain.ProductPatch](r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Invalid product data"})
		return
	}

	writeJSON(w, http.StatusOK, h.editor.UpdateProduct(r.Context(), *patch))
}

// AddField handles POST /editor/fields
//
// swagger:route POST /editor/fields fields addField
//
// Appends a default field.
//
// Responses:
//
//	201: editorResponse
//	409: errorResponse
func (h *EditorHandler) AddField(w http.ResponseWriter, r *http.Request) {
	view, err := h.editor.AddField(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, view)
}

// UpdateField handles PATCH /editor/fields/{id}
//
// swagger:route PATCH /editor/fields/{id} fields updateField
//
// Merges attribute changes into a field.
//
// Responses:
//
//	200: editorResponse
//	404: errorResponse
//	422: validationErrorResponse
func (h *EditorHandler) UpdateField(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	patch, ok := bodyFrom[domain.FieldPatch](r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Invalid field data"})
		return
	}

	view, err := h.editor.UpdateField(r.Context(), id, *patch)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// RemoveField handles DELETE /editor/fields/{id}
//
// swagger:route DELETE /editor/fields/{id} fields removeField
//
// Removes a field. Removing an unknown field succeeds.
//
// Responses:
//
//	204: noContentResponse
func (h *EditorHandler) RemoveField(w http.ResponseWriter, r *http.Request) {
	h.editor.RemoveField(r.Context(), mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}

// MoveField handles POST /editor/fields/move
//
// swagger:route POST /editor/fields/move fields moveField
//
// Swaps a field with its neighbour.
//
// Responses:
//
//	200: editorResponse
//	422: validationErrorResponse
func (h *EditorHandler) MoveField(w http.ResponseWriter, r *http.Request) {
	req, ok := bodyFrom[MoveRequest](r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Invalid move request"})
		return
	}

	writeJSON(w, http.StatusOK, h.editor.MoveField(r.Context(), *req.Index, req.Direction))
}

// AddOption handles POST /editor/fields/{id}/options
//
// swagger:route POST /editor/fields/{id}/options options addOption
//
// Appends an empty option to a field.
//
// Responses:
//
//	201: editorResponse
//	404: errorResponse
func (h *EditorHandler) AddOption(w http.ResponseWriter, r *http.Request) {
	view, err := h.editor.AddOption(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, view)
}

// UpdateOption handles PATCH /editor/fields/{id}/options/{optionID}
//
// swagger:route PATCH /editor/fields/{id}/options/{optionID} options updateOption
//
// Merges attribute changes into an option.
//
// Responses:
//
//	200: editorResponse
//	404: errorResponse
func (h *EditorHandler) UpdateOption(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	patch, ok := bodyFrom[domain.OptionPatch](r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Invalid option data"})
		return
	}

	view, err := h.editor.UpdateOption(r.Context(), vars["id"], vars["optionID"], *patch)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// RemoveOption handles DELETE /editor/fields/{id}/options/{optionID}
//
// swagger:route DELETE /editor/fields/{id}/options/{optionID} options removeOption
//
// Removes an option.
//
// Responses:
//
//	204: noContentResponse
func (h *EditorHandler) RemoveOption(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	h.editor.RemoveOption(r.Context(), vars["id"], vars["optionID"])
	w.WriteHeader(http.StatusNoContent)
}

// SetInput handles PUT /editor/inputs/{id}
//
// swagger:route PUT /editor/inputs/{id} preview setInput
//
// Sets the customer's value for a field and reprices the preview.
//
// Responses:
//
//	200: editorResponse
//	404: errorResponse
func (h *EditorHandler) SetInput(w http.ResponseWriter, r *http.Request) {
	req, ok := bodyFrom[InputRequest](r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Invalid input"})
		return
	}

	view, err := h.editor.SetInput(r.Context(), mux.Vars(r)["id"], req.Value)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Validate handles GET /editor/validation
//
// swagger:route GET /editor/validation editor validateAdmin
//
// Checks the product and its fields for consistency.
//
// Responses:
//
//	200: issuesResponse
func (h *EditorHandler) Validate(w http.ResponseWriter, r *http.Request) {
	issues := h.editor.Validate(r.Context())
	writeJSON(w, http.StatusOK, IssuesResponse{
		Valid:  len(issues) == 0,
		Errors: issues.ByKey(),
		Issues: issues,
	})
}

// Quote handles GET /editor/quote
//
// swagger:route GET /editor/quote preview getQuote
//
// Returns the price breakdown for the current customer inputs.
//
// Responses:
//
//	200: quoteResponse
func (h *EditorHandler) Quote(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.editor.Quote(r.Context()))
}

// Save handles POST /editor/save
//
// swagger:route POST /editor/save editor saveProduct
//
// Validates and stores the product with its fields.
//
// Responses:
//
//	204: noContentResponse
//	422: issuesResponse
//	503: errorResponse
func (h *EditorHandler) Save(w http.ResponseWriter, r *http.Request) {
	if err := h.editor.Save(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Cancel handles POST /editor/cancel
//
// swagger:route POST /editor/cancel editor cancelEditor
//
// Discards the session and starts again with one default field.
//
// Responses:
//
//	200: editorResponse
func (h *EditorHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.editor.Cancel(r.Context()))
}

// LoadExample handles POST /editor/example
//
// swagger:route POST /editor/example editor loadExample
//
// Replaces the session with the example product.
//
// Responses:
//
//	200: editorResponse
//	500: errorResponse
func (h *EditorHandler) LoadExample(w http.ResponseWriter, r *http.Request) {
	view, err := h.editor.LoadExample(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}
