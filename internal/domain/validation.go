package domain

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Scope names the kind of entity a validation issue refers to.
type Scope string

const (
	ScopeProduct Scope = "product"
	ScopeField   Scope = "field"
	ScopeOption  Scope = "option"
	ScopeRequest Scope = "request"
)

// Rule identifies the validation rule an issue violated.
type Rule string

const (
	RuleRequired   Rule = "required"
	RuleUnique     Rule = "unique"
	RuleMinOptions Rule = "min_options"
	RuleNumeric    Rule = "numeric"
)

// MinDropdownOptions is the fewest options a Dropdown field may have.
const MinDropdownOptions = 2

// ValidationError is a single violated rule
type ValidationError struct {
	Scope   Scope  `json:"scope"`
	ID      string `json:"id,omitempty"`
	Attr    string `json:"attr"`
	Rule    Rule   `json:"rule"`
	Message string `json:"message"`
}

// Error implements the error interface
func (v ValidationError) Error() string {
	if v.ID == "" {
		return fmt.Sprintf("%s '%s': %s", v.Scope, v.Attr, v.Message)
	}
	return fmt.Sprintf("%s %s '%s': %s", v.Scope, v.ID, v.Attr, v.Message)
}

// Key returns the key the form uses to place the message next to its input.
func (v ValidationError) Key() string {
	switch v.Scope {
	case ScopeProduct:
		return "productName"
	case ScopeField:
		return fmt.Sprintf("field-%s-%s", v.ID, v.Attr)
	case ScopeOption:
		if v.Attr == "price" {
			return fmt.Sprintf("opt-%s-price", v.ID)
		}
		return fmt.Sprintf("opt-%s", v.ID)
	}
	return v.Attr
}

// ValidationErrors is a slice of ValidationError
type ValidationErrors []ValidationError

// Error implements the error interface
func (ve ValidationErrors) Error() string {
	msgs := make([]string, 0, len(ve))
	for _, v := range ve {
		msgs = append(msgs, v.Error())
	}
	return strings.Join(msgs, "; ")
}

// Messages converts the errors to a slice of strings
func (ve ValidationErrors) Messages() []string {
	msgs := []string{}
	for _, v := range ve {
		msgs = append(msgs, v.Error())
	}
	return msgs
}

// ByKey maps each form key to its message. A later issue on the same key wins.
func (ve ValidationErrors) ByKey() map[string]string {
	out := make(map[string]string, len(ve))
	for _, v := range ve {
		out[v.Key()] = v.Message
	}
	return out
}

// Err returns ve as an error, or nil when there are no issues.
func (ve ValidationErrors) Err() error {
	if len(ve) == 0 {
		return nil
	}
	return ve
}

type Validation struct {
	validator *validator.Validate
}

func NewValidation() *Validation {
	v := validator.New()
	v.RegisterValidation("notblank", validateNotBlank)
	return &Validation{validator: v}
}

var defaultValidation = NewValidation()

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Validate checks the struct tags of a request body.
func (v *Validation) Validate(i interface{}) ValidationErrors {
	var errors ValidationErrors

	err := v.validator.Struct(i)
	if err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return ValidationErrors{{Scope: ScopeRequest, Rule: RuleRequired, Message: err.Error()}}
		}
		for _, fe := range validationErrors {
			errors = append(errors, ValidationError{
				Scope:   ScopeRequest,
				Attr:    fe.Field(),
				Rule:    Rule(fe.Tag()),
				Message: fmt.Sprintf("failed on the '%s' tag", fe.Tag()),
			})
		}
	}

	return errors
}

// ValidateAdmin checks a product and its fields for internal consistency
// using the default Validation.
func ValidateAdmin(p Product, fields []Field) ValidationErrors {
	return defaultValidation.ValidateAdmin(p, fields)
}

// ValidateAdmin collects every rule violation of the product and its fields.
// It does not stop at the first issue. Bounds (min <= max) and price signs
// are not checked.
func (v *Validation) ValidateAdmin(p Product, fields []Field) ValidationErrors {
	var errs ValidationErrors

	if err := v.validator.Struct(p); err != nil {
		errs = append(errs, ValidationError{
			Scope:   ScopeProduct,
			Attr:    "name",
			Rule:    RuleRequired,
			Message: "Product name is required",
		})
	}

	labels := make(map[string]int, len(fields))
	for _, f := range fields {
		labels[strings.TrimSpace(f.Label)]++
	}

	for _, f := range fields {
		if label := strings.TrimSpace(f.Label); labels[label] > 1 {
			errs = append(errs, fieldError(f.ID, "label", RuleUnique, "Label must be unique within product"))
		} else if label == "" {
			errs = append(errs, fieldError(f.ID, "label", RuleRequired, "Label required"))
		}

		switch f.Type {
		case FieldTypeDropdown:
			errs = append(errs, validateOptions(f)...)
		case FieldTypeText, FieldTypeNumber:
			if !f.Price.Finite() {
				errs = append(errs, fieldError(f.ID, "price", RuleNumeric, "Price required"))
			}
		}
	}

	return errs
}

func validateOptions(f Field) ValidationErrors {
	var errs ValidationErrors

	if len(f.Options) < MinDropdownOptions {
		errs = append(errs, fieldError(f.ID, "options", RuleMinOptions, "Dropdown requires minimum 2 options"))
	}

	names := make(map[string]int, len(f.Options))
	for _, o := range f.Options {
		names[strings.TrimSpace(o.Name)]++
	}

	for _, o := range f.Options {
		if name := strings.TrimSpace(o.Name); names[name] > 1 {
			errs = append(errs, optionError(o.ID, "name", RuleUnique, "Option names must be unique in same field"))
		} else if name == "" {
			errs = append(errs, optionError(o.ID, "name", RuleRequired, "Option name required"))
		}
		if !o.Price.Finite() {
			errs = append(errs, optionError(o.ID, "price", RuleNumeric, "Option price required"))
		}
	}

	return errs
}

func fieldError(id, attr string, rule Rule, msg string) ValidationError {
	return ValidationError{Scope: ScopeField, ID: id, Attr: attr, Rule: rule, Message: msg}
}

func optionError(id, attr string, rule Rule, msg string) ValidationError {
	return ValidationError{Scope: ScopeOption, ID: id, Attr: attr, Rule: rule, Message: msg}
}
