package domain

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// Amount is an admin-entered number that may be missing or malformed.
// It decodes leniently: null, empty or unparseable input yields an invalid
// Amount rather than a decode error, leaving it to ValidateAdmin to report.
type Amount struct {
	Value float64
	Valid bool
}

// NewAmount returns a valid Amount holding v.
func NewAmount(v float64) Amount {
	return Amount{Value: v, Valid: true}
}

// ParseAmount converts a raw decoded value into an Amount.
func ParseAmount(raw any) Amount {
	switch v := raw.(type) {
	case nil:
		return Amount{}
	case Amount:
		return v
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return Amount{}
		}
		f, err := cast.ToFloat64E(s)
		if err != nil {
			return Amount{}
		}
		return NewAmount(f)
	}

	f, err := cast.ToFloat64E(raw)
	if err != nil {
		return Amount{}
	}
	return NewAmount(f)
}

// Finite reports whether the amount is present and a finite number.
func (a Amount) Finite() bool {
	return a.Valid && !math.IsNaN(a.Value) && !math.IsInf(a.Value, 0)
}

// Float returns the value, or 0 when the amount is missing or not finite.
func (a Amount) Float() float64 {
	if !a.Finite() {
		return 0
	}
	return a.Value
}

// Ptr returns nil for a missing amount.
func (a Amount) Ptr() *float64 {
	if !a.Finite() {
		return nil
	}
	v := a.Value
	return &v
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Finite() {
		return []byte("null"), nil
	}
	return json.Marshal(a.Value)
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*a = ParseAmount(raw)
	return nil
}

func (a Amount) MarshalYAML() (interface{}, error) {
	return a.Ptr(), nil
}

func (a *Amount) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*a = ParseAmount(raw)
	return nil
}
