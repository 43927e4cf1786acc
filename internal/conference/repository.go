package conference

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/alfons-cm/community-management-backend/internal/paging"
)

// Conferences are ordered by begin date descending with undated conferences
// first, then by name; the id breaks remaining ties so pagination partitions
// the result set.
const listOrder = "begin_date DESC NULLS FIRST, name, id"

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// NewBlank returns an unpersisted conference with empty name and website.
func (r *Repository) NewBlank() *Conference {
	return &Conference{Name: "", Website: ""}
}

// Find returns one page of conferences matching the optional filter, which is
// a trimmed, case-insensitive substring match on the name.
func (r *Repository) Find(page paging.Page, filter string) ([]Conference, error) {
	var conferences []Conference
	err := r.filtered(filter).
		Order(listOrder).
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&conferences).Error
	return conferences, err
}

// FindAll returns the complete filtered result in list order, used for
// exports.
func (r *Repository) FindAll(filter string) ([]Conference, error) {
	var conferences []Conference
	err := r.filtered(filter).Order(listOrder).Find(&conferences).Error
	return conferences, err
}

func (r *Repository) filtered(filter string) *gorm.DB {
	query := r.DB.Model(&Conference{})
	if pattern := paging.LikePattern(filter); pattern != "" {
		query = query.Where("LOWER(name) LIKE ?", pattern)
	}
	return query
}

// FindFuture returns conferences whose begin date lies after today, ordered
// by begin date then name. These are the ones open for new requests.
func (r *Repository) FindFuture(today time.Time) ([]Conference, error) {
	var conferences []Conference
	err := r.DB.
		Where("begin_date > ?", today).
		Order("begin_date, name").
		Find(&conferences).Error
	return conferences, err
}

// Get returns the conference by id, or nil when it does not exist.
func (r *Repository) Get(id uint) (*Conference, error) {
	var c Conference
	err := r.DB.First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Store persists the conference, assigning an id on first save.
func (r *Repository) Store(c *Conference) error {
	return r.DB.Save(c).Error
}

// Delete removes the conference by id. Deleting an id that is already gone
// is a no-op, the UI may race with another session.
func (r *Repository) Delete(id uint) error {
	return r.DB.Delete(&Conference{}, id).Error
}
