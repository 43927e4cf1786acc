package employee

import (
	"errors"

	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// All returns every employee ordered by first name, last name. The order
// matches the selection lists and keeps pagination stable via the id
// tie-break.
func (r *Repository) All() ([]Employee, error) {
	var employees []Employee
	err := r.DB.Order("first_name, last_name, id").Find(&employees).Error
	return employees, err
}

// Get returns the employee by id, or nil when it does not exist.
func (r *Repository) Get(id uint) (*Employee, error) {
	var e Employee
	err := r.DB.First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// GetByEmail returns the employee with the given login email, or nil.
func (r *Repository) GetByEmail(email string) (*Employee, error) {
	var e Employee
	err := r.DB.Where("email = ?", email).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Store persists the employee, assigning an id on first save.
func (r *Repository) Store(e *Employee) error {
	return r.DB.Save(e).Error
}

// Delete removes the employee by id; a missing id is a no-op.
func (r *Repository) Delete(id uint) error {
	return r.DB.Delete(&Employee{}, id).Error
}
