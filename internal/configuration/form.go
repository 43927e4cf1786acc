package configuration

import (
	"context"

	"github.com/alfons-cm/community-management-backend/internal/editform"
)

// EditForm builds the configuration edit workflow. The key field locks once
// the record exists; only the value remains editable. Every confirmed save
// swaps in a fresh snapshot so running code observes the change.
func EditForm(repo *Repository, store *Store) *editform.Form[Configuration] {
	return &editform.Form[Configuration]{
		Title: "Configuration",
		Build: func(record *Configuration) []editform.Field[Configuration] {
			editMode := record.Key != ""
			return []editform.Field[Configuration]{
				{
					Name:     "key",
					ReadOnly: editMode,
					Get:      func(c *Configuration) any { return c.Key },
					Set: func(c *Configuration, value any) error {
						c.Key, _ = value.(string)
						return nil
					},
					Validators: []editform.Validator[Configuration]{
						editform.StringLength[Configuration](
							"Please enter the key of the configuration entry (max. 255 chars)",
							1, 255, func(c *Configuration) string { return c.Key }),
					},
				},
				{
					Name: "value",
					Get:  func(c *Configuration) any { return c.Value },
					Set: func(c *Configuration, value any) error {
						c.Value, _ = value.(string)
						return nil
					},
					Validators: []editform.Validator[Configuration]{
						editform.StringLength[Configuration](
							"Please enter the value of the configuration entry (max. 255 chars)",
							1, 255, func(c *Configuration) string { return c.Value }),
					},
				},
			}
		},
		Persist: func(ctx context.Context, record *Configuration) error {
			return repo.Store(record)
		},
		AfterSave: func(ctx context.Context) error {
			return store.Reload(ctx)
		},
	}
}
