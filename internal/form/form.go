// Package form tracks value, error and touched state for a declared set of
// fields. Each field is declared with its own value type and typed rules, so
// a rule can only ever see the value type it was written for.
//
// Validation is lazy: nothing is validated until a field changes or the whole
// form is validated, so HasErrors is false for a fresh form even when required
// fields are empty.
package form

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownField = errors.New("form: unknown field")
	ErrTypeMismatch = errors.New("form: value type does not match field")
)

// Rule is one check on a field value. Message is reported when Check fails.
type Rule[T any] struct {
	Check   func(T) bool
	Message string
}

// FieldState is the observable state of one field. An empty Error means the
// field passed its rules or has not been validated yet.
type FieldState[T any] struct {
	Value   T      `json:"value"`
	Error   string `json:"error,omitempty"`
	Touched bool   `json:"touched"`
}

// InputKind tells HandleChange how to read the incoming event.
type InputKind int

const (
	Text InputKind = iota
	Checkbox
)

// Declaration is a named field with an initial value and rules; see Field.
type Declaration interface {
	Name() string
	build() field
}

type field interface {
	set(v any) error
	validate() string
	touch()
	reset()
	state() FieldState[any]
}

type declaration[T any] struct {
	name    string
	initial T
	rules   []Rule[T]
}

// Field declares a field of type T.
func Field[T any](name string, initial T, rules ...Rule[T]) Declaration {
	return declaration[T]{name: name, initial: initial, rules: rules}
}

func (d declaration[T]) Name() string { return d.name }

func (d declaration[T]) build() field {
	f := &typedField[T]{decl: d}
	f.reset()
	return f
}

type typedField[T any] struct {
	decl declaration[T]
	st   FieldState[T]
}

func (f *typedField[T]) set(v any) error {
	tv, ok := v.(T)
	if !ok {
		return fmt.Errorf("%w: %s wants %T, got %T", ErrTypeMismatch, f.decl.name, f.decl.initial, v)
	}
	f.st.Value = tv
	f.st.Touched = true
	f.validate()
	return nil
}

// validate stores and returns the message of the first failing rule.
func (f *typedField[T]) validate() string {
	f.st.Error = ""
	for _, r := range f.decl.rules {
		if !r.Check(f.st.Value) {
			f.st.Error = r.Message
			break
		}
	}
	return f.st.Error
}

func (f *typedField[T]) touch() { f.st.Touched = true }

func (f *typedField[T]) reset() {
	f.st = FieldState[T]{Value: f.decl.initial}
}

func (f *typedField[T]) state() FieldState[any] {
	return FieldState[any]{Value: f.st.Value, Error: f.st.Error, Touched: f.st.Touched}
}

// Form holds the state of every declared field. It is not safe for
// concurrent use.
type Form struct {
	names  []string
	fields map[string]field
}

// New builds a form from declarations. A repeated name replaces the earlier
// declaration but keeps its position.
func New(decls ...Declaration) *Form {
	f := &Form{fields: make(map[string]field, len(decls))}
	for _, d := range decls {
		if _, seen := f.fields[d.Name()]; !seen {
			f.names = append(f.names, d.Name())
		}
		f.fields[d.Name()] = d.build()
	}
	return f
}

// Names returns field names in declaration order.
func (f *Form) Names() []string {
	return append([]string(nil), f.names...)
}

// HandleChange applies a user input event: checkboxes contribute their
// checked state, every other input its raw value. The field is re-validated
// and marked touched; other fields are left alone.
func (f *Form) HandleChange(name, raw string, kind InputKind, checked bool) error {
	if kind == Checkbox {
		return f.SetFieldValue(name, checked)
	}
	return f.SetFieldValue(name, raw)
}

// SetFieldValue sets a value programmatically with the same effect as
// HandleChange.
func (f *Form) SetFieldValue(name string, value any) error {
	fld, ok := f.fields[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	return fld.set(value)
}

// ValidateForm validates and touches every field. It reports whether all of
// them passed.
func (f *Form) ValidateForm() bool {
	valid := true
	for _, name := range f.names {
		fld := f.fields[name]
		fld.touch()
		if fld.validate() != "" {
			valid = false
		}
	}
	return valid
}

// ResetForm restores every field to its declared initial value.
func (f *Form) ResetForm() {
	for _, fld := range f.fields {
		fld.reset()
	}
}

// State reports the current state of a field, or false for an unknown name.
func (f *Form) State(name string) (FieldState[any], bool) {
	fld, ok := f.fields[name]
	if !ok {
		return FieldState[any]{}, false
	}
	return fld.state(), true
}

// Values maps every field name to its current value.
func (f *Form) Values() map[string]any {
	out := make(map[string]any, len(f.fields))
	for name, fld := range f.fields {
		out[name] = fld.state().Value
	}
	return out
}

// Errors maps field names to their current error, omitting fields without one.
func (f *Form) Errors() map[string]string {
	out := map[string]string{}
	for name, fld := range f.fields {
		if msg := fld.state().Error; msg != "" {
			out[name] = msg
		}
	}
	return out
}

// HasErrors reports whether any field currently holds an error. Fields are
// only validated on change or by ValidateForm, so a fresh form has none.
func (f *Form) HasErrors() bool {
	for _, fld := range f.fields {
		if fld.state().Error != "" {
			return true
		}
	}
	return false
}

// Value returns the typed value of a field declared with type T.
func Value[T any](f *Form, name string) (T, bool) {
	var zero T
	fld, ok := f.fields[name].(*typedField[T])
	if !ok {
		return zero, false
	}
	return fld.st.Value, true
}

// Set is SetFieldValue with the value type checked at compile time against T.
func Set[T any](f *Form, name string, v T) error {
	return f.SetFieldValue(name, v)
}
