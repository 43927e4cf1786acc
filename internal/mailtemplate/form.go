package mailtemplate

import (
	"context"

	"github.com/alfons-cm/community-management-backend/internal/editform"
)

// EditForm builds the mail template edit workflow. The id is picked from the
// fixed set when creating and locked once the template exists.
func EditForm(repo *Repository) *editform.Form[MailTemplate] {
	return &editform.Form[MailTemplate]{
		Title: "Mail Template",
		Build: func(record *MailTemplate) []editform.Field[MailTemplate] {
			editMode := record.ID != ""
			return []editform.Field[MailTemplate]{
				{
					Name:     "id",
					ReadOnly: editMode,
					Get:      func(m *MailTemplate) any { return m.ID },
					Set: func(m *MailTemplate, value any) error {
						switch v := value.(type) {
						case ID:
							m.ID = v
						case string:
							m.ID = ID(v)
						}
						return nil
					},
					Validators: []editform.Validator[MailTemplate]{
						editform.Rule[MailTemplate](
							"Please select the mail the template is used for",
							func(m *MailTemplate) bool { return m.ID.Valid() }),
					},
				},
				{
					Name: "subject",
					Get:  func(m *MailTemplate) any { return m.Subject },
					Set: func(m *MailTemplate, value any) error {
						m.Subject, _ = value.(string)
						return nil
					},
					Validators: []editform.Validator[MailTemplate]{
						editform.StringLength[MailTemplate](
							"Please enter the subject of the mail (max. 255 chars)",
							1, 255, func(m *MailTemplate) string { return m.Subject }),
					},
				},
				{
					Name: "body",
					Get:  func(m *MailTemplate) any { return m.Body },
					Set: func(m *MailTemplate, value any) error {
						m.Body, _ = value.(string)
						return nil
					},
					Validators: []editform.Validator[MailTemplate]{
						editform.Rule[MailTemplate](
							"Please enter the text of the mail",
							func(m *MailTemplate) bool { return m.Body != "" }),
					},
				},
			}
		},
		Persist: func(ctx context.Context, record *MailTemplate) error {
			return repo.Store(record)
		},
	}
}
