package request

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/alfons-cm/community-management-backend/internal/paging"
)

// Requests are ordered by request date descending with undated requests
// first; the composite key breaks ties so pagination partitions the result
// set.
const listOrder = "requests.request_date DESC NULLS FIRST, requests.employee_id, requests.conference_id"

const listColumns = "requests.employee_id AS employee_id," +
	" employees.first_name AS employee_first_name," +
	" employees.last_name AS employee_last_name," +
	" requests.conference_id AS conference_id," +
	" conferences.name AS conference_name," +
	" conferences.website AS conference_website," +
	" requests.request_date AS request_date," +
	" requests.role AS role," +
	" requests.reason AS reason," +
	" requests.status AS status," +
	" requests.status_date AS status_date," +
	" requests.status_comment AS status_comment"

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// NewBlank returns an unpersisted request pre-assigned to the given
// employee.
func (r *Repository) NewBlank(employeeID uint) *Request {
	return &Request{EmployeeID: employeeID}
}

// Find returns one page of joined request rows. The filter matches the
// employee's displayed name (first + " " + last, the exact concatenation the
// grid renders) or the conference name, case-insensitively.
func (r *Repository) Find(page paging.Page, filter string) ([]ListEntity, error) {
	var rows []ListEntity
	err := r.filtered(filter).
		Order(listOrder).
		Limit(page.Limit).
		Offset(page.Offset).
		Scan(&rows).Error
	return rows, err
}

// FindAll returns the complete filtered result in list order, used for
// exports.
func (r *Repository) FindAll(filter string) ([]ListEntity, error) {
	var rows []ListEntity
	err := r.filtered(filter).Order(listOrder).Scan(&rows).Error
	return rows, err
}

func (r *Repository) filtered(filter string) *gorm.DB {
	query := r.DB.Table("requests").
		Select(listColumns).
		Joins("LEFT JOIN employees ON requests.employee_id = employees.id").
		Joins("LEFT JOIN conferences ON requests.conference_id = conferences.id")
	if pattern := paging.LikePattern(filter); pattern != "" {
		query = query.Where(
			"LOWER(employees.first_name || ' ' || employees.last_name) LIKE ? OR LOWER(conferences.name) LIKE ?",
			pattern, pattern)
	}
	return query
}

// Get returns the request for the composite key, or nil when it does not
// exist.
func (r *Repository) Get(employeeID, conferenceID uint) (*Request, error) {
	var req Request
	err := r.DB.
		Where("employee_id = ? AND conference_id = ?", employeeID, conferenceID).
		First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Store persists the request. The composite key is always fully set, so
// this is an upsert: last write wins on concurrent edits.
func (r *Repository) Store(req *Request) error {
	return r.DB.Clauses(clause.OnConflict{UpdateAll: true}).Create(req).Error
}

// Delete removes the request for the composite key; a missing pair is a
// no-op.
func (r *Repository) Delete(employeeID, conferenceID uint) error {
	return r.DB.
		Where("employee_id = ? AND conference_id = ?", employeeID, conferenceID).
		Delete(&Request{}).Error
}
