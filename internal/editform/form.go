package editform

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrSessionClosed is returned when a session is used after it was saved or
// cancelled. A session concludes with exactly one of the two.
var ErrSessionClosed = errors.New("editform: session already closed")

// FieldError is a failed validation for a single field. Field errors are
// data, not failures: they are surfaced inline and block Save, nothing else.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects the first failing message of every invalid field.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	messages := make([]string, len(v))
	for i, fieldError := range v {
		messages[i] = fieldError.Field + ": " + fieldError.Message
	}
	return "validation failed: " + strings.Join(messages, "; ")
}

// Validator checks one rule against the working copy of the record and
// returns an empty string when the rule passes. Cross-field rules read the
// sibling's current value from the same working copy.
type Validator[T any] func(record *T) string

// Field binds one named input to a property of the record. Validators
// compose as a logical AND; the first failing message is the one surfaced.
type Field[T any] struct {
	Name       string
	ReadOnly   bool
	Get        func(record *T) any
	Set        func(record *T, value any) error
	Validators []Validator[T]
}

// Form describes the edit workflow of one entity kind: Build produces the
// field set for a record (so read-only policy can depend on whether the
// record already exists), Persist writes a fully valid record to storage and
// AfterSave runs before the caller observes success.
type Form[T any] struct {
	Title     string
	Build     func(record *T) []Field[T]
	Persist   func(ctx context.Context, record *T) error
	AfterSave func(ctx context.Context) error
}

// Open binds record as the working copy of a new session. The caller's
// record is not touched until Save succeeds.
func (f *Form[T]) Open(record T) *Session[T] {
	session := &Session[T]{form: f, record: record}
	session.fields = f.Build(&session.record)
	return session
}

// Session is one open/edit/save-or-cancel cycle over a working copy.
type Session[T any] struct {
	form   *Form[T]
	record T
	fields []Field[T]
	closed bool
}

// Record returns the current state of the working copy.
func (s *Session[T]) Record() T {
	return s.record
}

func (s *Session[T]) field(name string) (*Field[T], error) {
	for i := range s.fields {
		if s.fields[i].Name == name {
			return &s.fields[i], nil
		}
	}
	return nil, fmt.Errorf("editform: unknown field %q", name)
}

// Get reads the bound property of a field from the working copy.
func (s *Session[T]) Get(name string) (any, error) {
	field, err := s.field(name)
	if err != nil {
		return nil, err
	}
	return field.Get(&s.record), nil
}

// Set writes a value through the field's setter. Read-only fields reject the
// write, they are not merely validated.
func (s *Session[T]) Set(name string, value any) error {
	if s.closed {
		return ErrSessionClosed
	}
	field, err := s.field(name)
	if err != nil {
		return err
	}
	if field.ReadOnly {
		return fmt.Errorf("editform: field %q is read-only", name)
	}
	return field.Set(&s.record, value)
}

// Validate re-runs every validator against the working copy and returns the
// first failing message per field, in field order. A nil result means the
// whole form is valid.
func (s *Session[T]) Validate() ValidationErrors {
	var failures ValidationErrors
	for _, field := range s.fields {
		for _, validate := range field.Validators {
			if message := validate(&s.record); message != "" {
				failures = append(failures, FieldError{Field: field.Name, Message: message})
				break
			}
		}
	}
	return failures
}

// Valid reports the aggregate validity gating the save action.
func (s *Session[T]) Valid() bool {
	return len(s.Validate()) == 0
}

// Save re-validates, persists the working copy and runs the form's AfterSave
// hook. An invalid form returns ValidationErrors and persists nothing; there
// is no partial-save path. Persistence failures propagate to the caller.
func (s *Session[T]) Save(ctx context.Context) (T, error) {
	if s.closed {
		return s.record, ErrSessionClosed
	}
	if failures := s.Validate(); len(failures) > 0 {
		return s.record, failures
	}
	if err := s.form.Persist(ctx, &s.record); err != nil {
		return s.record, err
	}
	s.closed = true
	if s.form.AfterSave != nil {
		if err := s.form.AfterSave(ctx); err != nil {
			return s.record, err
		}
	}
	return s.record, nil
}

// Cancel discards the working copy. Closing an already closed session is a
// no-op.
func (s *Session[T]) Cancel() {
	s.closed = true
}
