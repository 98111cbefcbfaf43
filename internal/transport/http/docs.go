// Package classification of Product Configurator API
//
// # Documentation for Product Configurator API
//
// Schemes: http
// BasePath: /
// Version: 1.0.0
//
// Consumes:
// - application/json
//
// Produces:
// - application/json
//
// swagger:meta
package http

import (
	_ "embed"

	"github.com/kahvecikaan/buildingMicroservices/product-configurator/internal/domain"
	"github.com/kahvecikaan/buildingMicroservices/product-configurator/internal/pricing"
	"github.com/kahvecikaan/buildingMicroservices/product-configurator/internal/service"
)

//go:embed swagger.yaml
var swaggerSpec []byte

// NOTE: Types defined here are purely for documentation purposes
// These types are not used by any of the handlers

// Generic error message returned as a string
// swagger:response errorResponse
type errorResponseWrapper struct {
	// Description of the error
	// in: body
	Body ErrorResponse
}

// Validation errors of a request body
// swagger:response validationErrorResponse
type validationErrorResponseWrapper struct {
	// Collection of the errors
	// in: body
	Body ValidationError
}

// Issues that block saving the product
// swagger:response issuesResponse
type issuesResponseWrapper struct {
	// in: body
	Body IssuesResponse
}

// The editing session
// swagger:response editorResponse
type editorResponseWrapper struct {
	// in: body
	Body service.View
}

// The price breakdown of the preview
// swagger:response quoteResponse
type quoteResponseWrapper struct {
	// in: body
	Body pricing.Quote
}

// No content response for endpoints that return 204
// swagger:response noContentResponse
type noContentResponseWrapper struct{}

// swagger:parameters updateField removeField addOption updateOption removeOption setInput
type fieldIDParamsWrapper struct {
	// The ID of the field
	// in: path
	// required: true
	ID string `json:"id"`
}

// swagger:parameters updateField
type fieldPatchParamsWrapper struct {
	// in: body
	// required: true
	Body domain.FieldPatch
}

// ErrorResponse defines the structure for API error responses
//
// swagger:model
type ErrorResponse struct {
	// The error message
	//
	// required: true
	Message string `json:"message"`
}

// ValidationError defines the structure for API validation error responses
//
// swagger:model
type ValidationError struct {
	// The validation errors
	//
	// required: true
	Messages []string `json:"messages"`
}

// IssuesResponse lists the catalog issues found while validating
//
// swagger:model
type IssuesResponse struct {
	// Whether the product can be saved
	Valid bool `json:"valid"`

	// Messages keyed by form input
	Errors map[string]string `json:"errors"`

	// Structured issues
	Issues domain.ValidationErrors `json:"issues"`
}

// MoveRequest swaps the field at Index with its neighbour
//
// swagger:model
type MoveRequest struct {
	// required: true
	Index *int `json:"index" validate:"required,min=0"`

	// -1 moves up, 1 moves down
	Direction int `json:"direction" validate:"oneof=-1 1"`
}

// InputRequest sets a customer value
//
// swagger:model
type InputRequest struct {
	Value any `json:"value"`
}
