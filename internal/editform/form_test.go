package editform

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	ID    int
	Title string
	Body  string
}

func noteForm(persisted *[]note, afterSave *int) *Form[note] {
	return &Form[note]{
		Title: "Edit Note",
		Build: func(record *note) []Field[note] {
			editMode := record.ID != 0
			return []Field[note]{
				{
					Name:     "title",
					ReadOnly: editMode,
					Get:      func(r *note) any { return r.Title },
					Set: func(r *note, value any) error {
						title, ok := value.(string)
						if !ok {
							return errors.New("title must be a string")
						}
						r.Title = title
						return nil
					},
					Validators: []Validator[note]{
						StringLength[note]("please enter a title", 1, 255, func(r *note) string { return r.Title }),
					},
				},
				{
					Name: "body",
					Get:  func(r *note) any { return r.Body },
					Set: func(r *note, value any) error {
						r.Body = value.(string)
						return nil
					},
					Validators: []Validator[note]{
						StringLength[note]("body too short", 3, 500, func(r *note) string { return r.Body }),
						StringLength[note]("body too long", 0, 10, func(r *note) string { return r.Body }),
					},
				},
			}
		},
		Persist: func(ctx context.Context, record *note) error {
			if record.ID == 0 {
				record.ID = len(*persisted) + 1
			}
			*persisted = append(*persisted, *record)
			return nil
		},
		AfterSave: func(ctx context.Context) error {
			*afterSave++
			return nil
		},
	}
}

func TestSaveIsBlockedUntilEveryValidatorPasses(t *testing.T) {
	var persisted []note
	var afterSave int
	session := noteForm(&persisted, &afterSave).Open(note{})

	require.False(t, session.Valid())
	_, err := session.Save(context.Background())
	var failures ValidationErrors
	require.ErrorAs(t, err, &failures)
	assert.Empty(t, persisted, "invalid form must not persist")
	assert.Zero(t, afterSave)

	require.NoError(t, session.Set("title", "Groceries"))
	require.NoError(t, session.Set("body", "milk"))
	require.True(t, session.Valid())

	saved, err := session.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, saved.ID)
	assert.Len(t, persisted, 1)
	assert.Equal(t, 1, afterSave, "after-save hook runs before the caller observes success")
}

func TestFirstFailingValidatorMessageWins(t *testing.T) {
	var persisted []note
	var afterSave int
	session := noteForm(&persisted, &afterSave).Open(note{})
	require.NoError(t, session.Set("title", "x"))
	require.NoError(t, session.Set("body", "this body is far too long for the second validator"))

	failures := session.Validate()
	require.Len(t, failures, 1)
	assert.Equal(t, "body", failures[0].Field)
	assert.Equal(t, "body too long", failures[0].Message)
}

func TestReadOnlyFieldsRejectWrites(t *testing.T) {
	var persisted []note
	var afterSave int
	session := noteForm(&persisted, &afterSave).Open(note{ID: 7, Title: "fixed", Body: "body"})

	err := session.Set("title", "changed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read-only")

	value, err := session.Get("title")
	require.NoError(t, err)
	assert.Equal(t, "fixed", value)
}

func TestCancelDiscardsTheWorkingCopy(t *testing.T) {
	var persisted []note
	var afterSave int
	original := note{}
	session := noteForm(&persisted, &afterSave).Open(original)
	require.NoError(t, session.Set("title", "draft"))

	session.Cancel()
	assert.Empty(t, persisted)
	assert.Zero(t, original.ID, "caller's record stays untouched")

	_, err := session.Save(context.Background())
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.ErrorIs(t, session.Set("title", "again"), ErrSessionClosed)
}

func TestUnknownFieldIsAnError(t *testing.T) {
	var persisted []note
	var afterSave int
	session := noteForm(&persisted, &afterSave).Open(note{})
	err := session.Set("missing", "value")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown field "missing"`)
}

func TestPersistenceFailuresPropagate(t *testing.T) {
	boom := errors.New("connection lost")
	form := &Form[note]{
		Build: func(record *note) []Field[note] {
			return []Field[note]{{
				Name: "title",
				Get:  func(r *note) any { return r.Title },
				Set:  func(r *note, value any) error { r.Title = value.(string); return nil },
			}}
		},
		Persist: func(ctx context.Context, record *note) error { return boom },
	}
	session := form.Open(note{Title: "ok"})
	_, err := session.Save(context.Background())
	assert.ErrorIs(t, err, boom)

	// the session stays open, the caller may retry or cancel
	_, err = session.Save(context.Background())
	assert.ErrorIs(t, err, boom)
}
