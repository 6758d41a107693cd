// Package form holds the state of one create/edit form: the record being
// edited, per-field validation errors and the submitting flag.
//
// A Form never talks to the network. Screens call ValidateForm before their
// own mutation and must not submit when it returns false.
package form

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownField = errors.New("form: unknown field")

// Validator checks the current value of one field. record is the whole form
// record, for rules such as password confirmation. It returns "" when valid.
type Validator[T any] func(value string, record T) string

// Field binds a named input to a string field of T.
type Field[T any] struct {
	Name string
	Ref  func(r *T) *string
	// Validate is optional. Fields without one never hold an error.
	Validate Validator[T]
}

// FieldError is one message produced by the cross-field tier.
type FieldError struct {
	Field   string
	Message string
}

// RecordValidator inspects the whole record after per-field checks.
type RecordValidator[T any] func(record T) []FieldError

type Schema[T any] struct {
	Fields []Field[T]
	Record []RecordValidator[T]
}

// Errors maps field names to messages. Absent keys are valid fields.
type Errors map[string]string

// Fields returns the names holding an error, sorted.
func (e Errors) Fields() []string {
	out := make([]string, 0, len(e))
	for k := range e {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Form is not safe for concurrent use; each screen instance owns one.
type Form[T any] struct {
	schema     Schema[T]
	index      map[string]int
	data       T
	errors     Errors
	submitting bool
}

// New creates a form holding initial and validated by schema.
// It panics when two fields share a name.
func New[T any](initial T, schema Schema[T]) *Form[T] {
	index := make(map[string]int, len(schema.Fields))
	for i, f := range schema.Fields {
		if _, dup := index[f.Name]; dup {
			panic(fmt.Sprintf("form: duplicate field %q", f.Name))
		}
		index[f.Name] = i
	}
	return &Form[T]{
		schema: schema,
		index:  index,
		data:   initial,
		errors: Errors{},
	}
}

// Data returns a copy of the current record.
func (f *Form[T]) Data() T { return f.data }

// SetData replaces the record, e.g. with a record fetched for editing, and
// clears all errors.
func (f *Form[T]) SetData(data T) {
	f.data = data
	f.errors = Errors{}
}

// Value returns the current value of a field.
func (f *Form[T]) Value(name string) (string, error) {
	i, ok := f.index[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return *f.schema.Fields[i].Ref(&f.data), nil
}

// UpdateField sets one field. If the field currently holds an error it is
// re-validated on its own; other fields and cross-field rules are left alone.
func (f *Form[T]) UpdateField(name, value string) error {
	i, ok := f.index[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	*f.schema.Fields[i].Ref(&f.data) = value

	if f.errors[name] != "" {
		f.ValidateField(name)
	}
	return nil
}

// ValidateField runs the validator of one field and records the result.
func (f *Form[T]) ValidateField(name string) bool {
	i, ok := f.index[name]
	if !ok {
		return false
	}
	msg := f.check(f.schema.Fields[i])
	if msg == "" {
		delete(f.errors, name)
		return true
	}
	f.errors[name] = msg
	return false
}

// ValidateForm runs every field validator, then the record validators for
// fields that passed their own check. The error map is replaced as a whole.
func (f *Form[T]) ValidateForm() bool {
	next := Errors{}
	for _, field := range f.schema.Fields {
		if msg := f.check(field); msg != "" {
			next[field.Name] = msg
		}
	}

	for _, rv := range f.schema.Record {
		for _, fe := range rv(f.data) {
			if fe.Message == "" {
				continue
			}
			if _, taken := next[fe.Field]; taken {
				continue
			}
			next[fe.Field] = fe.Message
		}
	}

	f.errors = next
	return len(next) == 0
}

func (f *Form[T]) check(field Field[T]) string {
	if field.Validate == nil {
		return ""
	}
	return field.Validate(*field.Ref(&f.data), f.data)
}

// Errors returns a copy of the current error map.
func (f *Form[T]) Errors() Errors {
	out := make(Errors, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Error returns the message of one field, or "".
func (f *Form[T]) Error(name string) string { return f.errors[name] }

func (f *Form[T]) Valid() bool { return len(f.errors) == 0 }

func (f *Form[T]) SetSubmitting(v bool) { f.submitting = v }

func (f *Form[T]) Submitting() bool { return f.submitting }
