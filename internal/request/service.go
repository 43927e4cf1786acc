package request

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/alfons-cm/community-management-backend/internal/conference"
	"github.com/alfons-cm/community-management-backend/internal/editform"
	"github.com/alfons-cm/community-management-backend/internal/employee"
	"github.com/alfons-cm/community-management-backend/internal/export"
	"github.com/alfons-cm/community-management-backend/internal/mailtemplate"
	"github.com/alfons-cm/community-management-backend/internal/paging"
)

var (
	ErrAlreadyExists     = errors.New("a request for this employee and conference already exists")
	ErrNotFound          = errors.New("request not found")
	ErrNotSubmitted      = errors.New("only submitted requests can be deleted")
	ErrNotOwner          = errors.New("only the owner or an admin can delete a request")
	ErrInvalidStatus     = errors.New("status must be approved or declined")
	ErrUnknownEmployee   = errors.New("employee does not exist")
	ErrUnknownConference = errors.New("conference does not exist")
	ErrConferenceStarted = errors.New("requests can only be made for upcoming conferences")
)

// Notifier sends a templated mail to an employee. Mail failures never fail
// the operation, they are logged instead.
type Notifier interface {
	Notify(ctx context.Context, id mailtemplate.ID, params map[string]string, to string) error
}

type Service struct {
	Repo        *Repository
	Employees   *employee.Repository
	Conferences *conference.Repository
	Form        *editform.Form[Request]
	Notifier    Notifier
}

func NewService(repo *Repository, employees *employee.Repository,
	conferences *conference.Repository, notifier Notifier) *Service {
	return &Service{
		Repo:        repo,
		Employees:   employees,
		Conferences: conferences,
		Form:        EditForm(repo),
		Notifier:    notifier,
	}
}

func (s *Service) List(page paging.Page, filter string) ([]ListEntity, error) {
	return s.Repo.Find(page, filter)
}

// Create opens the edit-form workflow on a blank request pre-assigned to the
// current employee. At most one request may exist per (employee, conference)
// pair.
func (s *Service) Create(ctx context.Context, current *employee.Employee, req *SaveRequestRequest) (Request, error) {
	employeeID := req.EmployeeID
	if employeeID == 0 {
		employeeID = current.ID
	}
	if employeeID != current.ID {
		emp, err := s.Employees.Get(employeeID)
		if err != nil {
			return Request{}, err
		}
		if emp == nil {
			return Request{}, ErrUnknownEmployee
		}
	}

	// New requests are limited to conferences that have not begun yet, the
	// same set the conference selector offers.
	conf, err := s.Conferences.Get(req.ConferenceID)
	if err != nil {
		return Request{}, err
	}
	if conf == nil {
		return Request{}, ErrUnknownConference
	}
	if conf.BeginDate == nil || !conf.BeginDate.After(time.Now()) {
		return Request{}, ErrConferenceStarted
	}

	existing, err := s.Repo.Get(employeeID, req.ConferenceID)
	if err != nil {
		return Request{}, err
	}
	if existing != nil {
		return Request{}, ErrAlreadyExists
	}

	session := s.Form.Open(*s.Repo.NewBlank(current.ID))
	values := map[string]any{
		"employee":   employeeID,
		"conference": req.ConferenceID,
		"role":       req.Role,
		"reason":     req.Reason,
	}
	for name, value := range values {
		if err := session.Set(name, value); err != nil {
			session.Cancel()
			return Request{}, err
		}
	}
	saved, err := session.Save(ctx)
	if err != nil {
		return Request{}, err
	}
	s.notify(ctx, &saved, mailtemplate.IDRequestSubmitted, "")
	return saved, nil
}

// Update opens the edit-form workflow on an existing request. The employee
// and conference fields are read-only in edit mode, only role and reason can
// change. A stale key falls back to a blank record for the addressed pair.
func (s *Service) Update(ctx context.Context, employeeID, conferenceID uint, req *SaveRequestRequest) (Request, error) {
	record, err := s.Repo.Get(employeeID, conferenceID)
	if err != nil {
		return Request{}, err
	}
	fallback := record == nil
	if fallback {
		record = s.Repo.NewBlank(employeeID)
	}

	session := s.Form.Open(*record)
	if fallback {
		if err := session.Set("employee", employeeID); err != nil {
			session.Cancel()
			return Request{}, err
		}
		if err := session.Set("conference", conferenceID); err != nil {
			session.Cancel()
			return Request{}, err
		}
	}
	if err := session.Set("role", req.Role); err != nil {
		session.Cancel()
		return Request{}, err
	}
	if err := session.Set("reason", req.Reason); err != nil {
		session.Cancel()
		return Request{}, err
	}
	return session.Save(ctx)
}

// Delete removes a request. Only submitted requests can be deleted, and
// only by their owner or an admin. A pair that is already gone is a no-op:
// another session may have deleted it first.
func (s *Service) Delete(ctx context.Context, current *employee.Employee, employeeID, conferenceID uint) error {
	record, err := s.Repo.Get(employeeID, conferenceID)
	if err != nil {
		return err
	}
	if record == nil {
		return nil
	}
	if record.Status != StatusSubmitted {
		return ErrNotSubmitted
	}
	if !current.Admin && current.ID != record.EmployeeID {
		return ErrNotOwner
	}
	return s.Repo.Delete(employeeID, conferenceID)
}

// SetStatus moves a request to approved or declined, stamps the status date
// and comment, and mails the employee.
func (s *Service) SetStatus(ctx context.Context, employeeID, conferenceID uint, req *SetStatusRequest) (Request, error) {
	if req.Status != StatusApproved && req.Status != StatusDeclined {
		return Request{}, ErrInvalidStatus
	}
	record, err := s.Repo.Get(employeeID, conferenceID)
	if err != nil {
		return Request{}, err
	}
	if record == nil {
		return Request{}, ErrNotFound
	}

	now := time.Now()
	record.Status = req.Status
	record.StatusDate = &now
	record.StatusComment = req.Comment
	if err := s.Repo.Store(record); err != nil {
		return Request{}, err
	}

	templateID := mailtemplate.IDRequestApproved
	if req.Status == StatusDeclined {
		templateID = mailtemplate.IDRequestDeclined
	}
	s.notify(ctx, record, templateID, req.Comment)
	return *record, nil
}

func (s *Service) notify(ctx context.Context, record *Request, id mailtemplate.ID, comment string) {
	if s.Notifier == nil {
		return
	}
	emp, err := s.Employees.Get(record.EmployeeID)
	if err != nil || emp == nil {
		log.Printf("request: no employee %d for notification: %v", record.EmployeeID, err)
		return
	}
	conf, err := s.Conferences.Get(record.ConferenceID)
	if err != nil || conf == nil {
		log.Printf("request: no conference %d for notification: %v", record.ConferenceID, err)
		return
	}
	params := map[string]string{
		"employee":   emp.FullName(),
		"conference": conf.Name,
		"role":       string(record.Role),
		"comment":    comment,
	}
	if err := s.Notifier.Notify(ctx, id, params, emp.Email); err != nil {
		log.Printf("request: failed to send %s mail to %s: %v", id, emp.Email, err)
	}
}

// ExportTable renders the complete filtered request list with the contract
// column set of the CSV download.
func (s *Service) ExportTable(filter string) (export.Table, error) {
	rows, err := s.Repo.FindAll(filter)
	if err != nil {
		return export.Table{}, err
	}
	table := export.Table{
		Header: []string{
			"Employee ID", "Employee First Name", "Employee Last Name",
			"Conference ID", "Conference Name", "Conference Website",
			"Request Date", "Request Role", "Request Reason",
			"Status", "Status Date", "Status Comment",
		},
	}
	for _, row := range rows {
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("%d", row.EmployeeID),
			row.EmployeeFirstName,
			row.EmployeeLastName,
			fmt.Sprintf("%d", row.ConferenceID),
			row.ConferenceName,
			row.ConferenceWebsite,
			formatDateTime(row.RequestDate),
			string(row.Role),
			row.Reason,
			string(row.Status),
			formatDateTime(row.StatusDate),
			row.StatusComment,
		})
	}
	return table, nil
}

func formatDateTime(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.Format("2006-01-02 15:04")
}
