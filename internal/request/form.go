package request

import (
	"context"
	"fmt"
	"time"

	"github.com/alfons-cm/community-management-backend/internal/editform"
)

func idValue(value any) (uint, error) {
	switch v := value.(type) {
	case uint:
		return v, nil
	case int:
		if v < 0 {
			return 0, fmt.Errorf("expected a non-negative id, got %d", v)
		}
		return uint(v), nil
	default:
		return 0, fmt.Errorf("expected an id, got %T", value)
	}
}

// EditForm builds the request edit workflow. A record with a conference
// assigned is an existing request: its identity (employee and conference)
// is immutable, the fields turn read-only rather than just validated.
func EditForm(repo *Repository) *editform.Form[Request] {
	return &editform.Form[Request]{
		Title: "Request",
		Build: func(record *Request) []editform.Field[Request] {
			editMode := record.ConferenceID != 0
			return []editform.Field[Request]{
				{
					Name:     "employee",
					ReadOnly: editMode,
					Get:      func(r *Request) any { return r.EmployeeID },
					Set: func(r *Request, value any) error {
						id, err := idValue(value)
						if err != nil {
							return err
						}
						r.EmployeeID = id
						return nil
					},
					Validators: []editform.Validator[Request]{
						editform.Rule(
							"Please select the employee who wants to attend the conference",
							func(r *Request) bool { return r.EmployeeID != 0 }),
					},
				},
				{
					Name:     "conference",
					ReadOnly: editMode,
					Get:      func(r *Request) any { return r.ConferenceID },
					Set: func(r *Request, value any) error {
						id, err := idValue(value)
						if err != nil {
							return err
						}
						r.ConferenceID = id
						return nil
					},
					Validators: []editform.Validator[Request]{
						editform.Rule(
							"Please select the conference the employee wants to attend",
							func(r *Request) bool { return r.ConferenceID != 0 }),
					},
				},
				{
					Name: "role",
					Get:  func(r *Request) any { return r.Role },
					Set: func(r *Request, value any) error {
						role, ok := value.(Role)
						if !ok {
							return fmt.Errorf("expected a role, got %T", value)
						}
						r.Role = role
						return nil
					},
					Validators: []editform.Validator[Request]{
						editform.Rule(
							"Please select the role at the conference",
							func(r *Request) bool { return r.Role.Valid() }),
					},
				},
				{
					Name: "reason",
					Get:  func(r *Request) any { return r.Reason },
					Set: func(r *Request, value any) error {
						reason, ok := value.(string)
						if !ok {
							return fmt.Errorf("expected a string reason, got %T", value)
						}
						r.Reason = reason
						return nil
					},
					Validators: []editform.Validator[Request]{
						editform.StringLength[Request](
							"Please state the reason for the conference visit", 30, 500,
							func(r *Request) string { return r.Reason }),
					},
				},
			}
		},
		Persist: func(ctx context.Context, record *Request) error {
			if record.RequestDate == nil {
				now := time.Now()
				record.RequestDate = &now
			}
			if record.Status == "" {
				record.Status = StatusSubmitted
			}
			return repo.Store(record)
		},
	}
}
