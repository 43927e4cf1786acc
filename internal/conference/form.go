package conference

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alfons-cm/community-management-backend/internal/editform"
)

func dateValue(value any) (*time.Time, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return &v, nil
	case *time.Time:
		return v, nil
	default:
		return nil, fmt.Errorf("expected a date, got %T", value)
	}
}

func costValue(value any) (*int, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case int:
		return &v, nil
	case *int:
		return v, nil
	default:
		return nil, fmt.Errorf("expected an integer amount, got %T", value)
	}
}

func costField(name, message string, get func(*Conference) *int, assign func(*Conference, *int)) editform.Field[Conference] {
	return editform.Field[Conference]{
		Name: name,
		Get:  func(c *Conference) any { return get(c) },
		Set: func(c *Conference, value any) error {
			amount, err := costValue(value)
			if err != nil {
				return err
			}
			assign(c, amount)
			return nil
		},
		Validators: []editform.Validator[Conference]{
			editform.Rule(message, func(c *Conference) bool {
				return get(c) != nil && *get(c) >= 0 && *get(c) <= math.MaxInt32
			}),
		},
	}
}

// EditForm builds the conference edit workflow: name 1-255 chars, begin date
// not after the end date (equal dates make a one-day conference), website
// with mandatory https prefix and three non-negative cost amounts.
func EditForm(repo *Repository) *editform.Form[Conference] {
	return &editform.Form[Conference]{
		Title: "Conference",
		Build: func(record *Conference) []editform.Field[Conference] {
			return []editform.Field[Conference]{
				{
					Name: "name",
					Get:  func(c *Conference) any { return c.Name },
					Set: func(c *Conference, value any) error {
						name, ok := value.(string)
						if !ok {
							return fmt.Errorf("expected a string name, got %T", value)
						}
						c.Name = name
						return nil
					},
					Validators: []editform.Validator[Conference]{
						editform.StringLength[Conference](
							"Please enter the name of the conference (max. 255 chars)", 1, 255,
							func(c *Conference) string { return c.Name }),
					},
				},
				{
					Name: "begin_date",
					Get:  func(c *Conference) any { return c.BeginDate },
					Set: func(c *Conference, value any) error {
						date, err := dateValue(value)
						if err != nil {
							return err
						}
						c.BeginDate = date
						return nil
					},
					Validators: []editform.Validator[Conference]{
						editform.Rule(
							"The begin date must be before the end date or they must be the same (1-day-conference)",
							func(c *Conference) bool {
								return c.BeginDate != nil && (c.EndDate == nil || !c.BeginDate.After(*c.EndDate))
							}),
					},
				},
				{
					Name: "end_date",
					Get:  func(c *Conference) any { return c.EndDate },
					Set: func(c *Conference, value any) error {
						date, err := dateValue(value)
						if err != nil {
							return err
						}
						c.EndDate = date
						return nil
					},
					Validators: []editform.Validator[Conference]{
						editform.Rule(
							"The end date must be after the begin date or they must be the same (1-day-conference)",
							func(c *Conference) bool {
								return c.EndDate != nil && (c.BeginDate == nil || !c.EndDate.Before(*c.BeginDate))
							}),
					},
				},
				{
					Name: "website",
					Get:  func(c *Conference) any { return c.Website },
					Set: func(c *Conference, value any) error {
						website, ok := value.(string)
						if !ok {
							return fmt.Errorf("expected a string website, got %T", value)
						}
						c.Website = website
						return nil
					},
					Validators: []editform.Validator[Conference]{
						editform.Rule(
							`The website address must start with "https://"`,
							func(c *Conference) bool { return strings.HasPrefix(c.Website, "https://") }),
						editform.StringLength[Conference](
							"The website address is too long (max. 255 chars)", 0, 255,
							func(c *Conference) string { return c.Website }),
					},
				},
				costField("ticket",
					"Please enter the ticket price for the conference (minimum 0)",
					func(c *Conference) *int { return c.Ticket },
					func(c *Conference, v *int) { c.Ticket = v }),
				costField("travel",
					"Please enter the travel expenses for the conference (minimum 0)",
					func(c *Conference) *int { return c.Travel },
					func(c *Conference, v *int) { c.Travel = v }),
				costField("accommodation",
					"Please enter the accommodation costs for the conference (minimum 0)",
					func(c *Conference) *int { return c.Accommodation },
					func(c *Conference, v *int) { c.Accommodation = v }),
			}
		},
		Persist: func(ctx context.Context, record *Conference) error {
			return repo.Store(record)
		},
	}
}
