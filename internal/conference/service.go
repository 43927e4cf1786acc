package conference

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alfons-cm/community-management-backend/internal/editform"
	"github.com/alfons-cm/community-management-backend/internal/export"
	"github.com/alfons-cm/community-management-backend/internal/paging"
)

// Service wraps the conference repository and its edit-form workflow.
type Service struct {
	Repo *Repository
	Form *editform.Form[Conference]
}

func NewService(r *Repository) *Service {
	return &Service{Repo: r, Form: EditForm(r)}
}

func (s *Service) List(page paging.Page, filter string) ([]Conference, error) {
	return s.Repo.Find(page, filter)
}

// ListFuture returns the conferences still open for new requests: begin date
// strictly after now, soonest first. This feeds the conference selector of
// the request form, so it is unpaged and unfiltered.
func (s *Service) ListFuture() ([]Conference, error) {
	return s.Repo.FindFuture(time.Now())
}

func (s *Service) Get(id uint) (*Conference, error) {
	return s.Repo.Get(id)
}

// Save runs the edit-form workflow for a new (id zero) or existing
// conference. A stale id falls back to a fresh blank record instead of
// failing. Validation failures come back as editform.ValidationErrors.
func (s *Service) Save(ctx context.Context, id uint, req *SaveConferenceRequest) (Conference, error) {
	record := s.Repo.NewBlank()
	if id != 0 {
		existing, err := s.Repo.Get(id)
		if err != nil {
			return Conference{}, err
		}
		if existing != nil {
			record = existing
		}
	}

	beginDate, err := parseDate(req.BeginDate)
	if err != nil {
		return Conference{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return Conference{}, err
	}

	session := s.Form.Open(*record)
	values := map[string]any{
		"name":          req.Name,
		"begin_date":    beginDate,
		"end_date":      endDate,
		"website":       req.Website,
		"ticket":        req.Ticket,
		"travel":        req.Travel,
		"accommodation": req.Accommodation,
	}
	for name, value := range values {
		if err := session.Set(name, value); err != nil {
			session.Cancel()
			return Conference{}, err
		}
	}
	return session.Save(ctx)
}

func (s *Service) Delete(id uint) error {
	return s.Repo.Delete(id)
}

// ExportTable renders the complete filtered conference list with the
// contract column set of the CSV download.
func (s *Service) ExportTable(filter string) (export.Table, error) {
	conferences, err := s.Repo.FindAll(filter)
	if err != nil {
		return export.Table{}, err
	}
	table := export.Table{
		Header: []string{"ID", "Name", "Website", "Begin Date", "End Date"},
	}
	for _, c := range conferences {
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("%d", c.ID),
			c.Name,
			c.Website,
			formatDate(c.BeginDate),
			formatDate(c.EndDate),
		})
	}
	return table, nil
}

var ErrInvalidDate = errors.New("invalid date format. Use YYYY-MM-DD")

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return &date, nil
}

func formatDate(date *time.Time) string {
	if date == nil {
		return ""
	}
	return date.Format("2006-01-02")
}
