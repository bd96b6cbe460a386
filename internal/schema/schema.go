// Package schema declares storable objects as data: each field carries a
// label, a type, and optional primary/required/refers markers plus a
// validation hook. The declarations drive both record validation before a
// write and CREATE TABLE generation per SQL dialect.
package schema

import (
	"fmt"
	"strings"
	"time"

	"rideshare/internal/domain"
)

type FieldType string

const (
	TypeInt      FieldType = "int"
	TypeText     FieldType = "text"
	TypeReal     FieldType = "real"
	TypeBool     FieldType = "bool"
	TypeDateTime FieldType = "datetime"
)

// Field describes one column of an object.
type Field struct {
	Label         string
	Type          FieldType
	Primary       bool
	AutoIncrement bool
	Required      bool
	// Refers names the referenced column as "table.column".
	Refers string
	// Validate runs against a present, type-checked value.
	Validate func(v any) error
}

// Record is a row keyed by field label.
type Record map[string]any

// Object is a named set of fields with an optional record-level check.
type Object struct {
	Name   string
	Fields []Field
	// Check validates cross-field invariants after per-field validation.
	Check func(rec Record) error
}

// Field returns the field with the given label.
func (o Object) Field(label string) (Field, bool) {
	for _, f := range o.Fields {
		if f.Label == label {
			return f, true
		}
	}
	return Field{}, false
}

// PrimaryField returns the primary key field, if declared.
func (o Object) PrimaryField() (Field, bool) {
	for _, f := range o.Fields {
		if f.Primary {
			return f, true
		}
	}
	return Field{}, false
}

// ValidateRecord checks a record against the object's declarations:
// unknown labels reject, required fields must be present and non-nil,
// values must match the declared type, then field validators and the
// record-level Check run. Auto-increment primaries may be absent.
func (o Object) ValidateRecord(rec Record) error {
	for label := range rec {
		if _, ok := o.Field(label); !ok {
			return domain.ValidationError{Field: label, Msg: fmt.Sprintf("unknown field for %s", o.Name)}
		}
	}

	for _, f := range o.Fields {
		v, present := rec[f.Label]
		if !present || v == nil {
			if f.Required && !f.AutoIncrement {
				return domain.ValidationError{Field: f.Label, Msg: "required"}
			}
			continue
		}
		if err := checkType(f.Type, v); err != nil {
			return domain.ValidationError{Field: f.Label, Msg: err.Error()}
		}
		if f.Validate != nil {
			if err := f.Validate(v); err != nil {
				return domain.ValidationError{Field: f.Label, Msg: err.Error(), Err: err}
			}
		}
	}

	if o.Check != nil {
		if err := o.Check(rec); err != nil {
			if domain.IsValidation(err) {
				return err
			}
			return domain.ValidationError{Msg: err.Error(), Err: err}
		}
	}
	return nil
}

func checkType(ft FieldType, v any) error {
	switch ft {
	case TypeInt:
		switch v.(type) {
		case int, int32, int64:
			return nil
		}
	case TypeText:
		if _, ok := v.(string); ok {
			return nil
		}
	case TypeReal:
		switch v.(type) {
		case float32, float64, int, int64:
			return nil
		}
	case TypeBool:
		if _, ok := v.(bool); ok {
			return nil
		}
	case TypeDateTime:
		switch v.(type) {
		case time.Time, string:
			return nil
		}
	default:
		return fmt.Errorf("unknown field type %q", ft)
	}
	return fmt.Errorf("expected %s, got %T", ft, v)
}

// refersParts splits "table.column"; an empty Refers yields ok=false.
func refersParts(refers string) (table, column string, ok bool) {
	table, column, found := strings.Cut(refers, ".")
	if !found || table == "" || column == "" {
		return "", "", false
	}
	return table, column, true
}
