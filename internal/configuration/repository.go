package configuration

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/alfons-cm/community-management-backend/internal/paging"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// NewBlank returns an unpersisted, empty configuration row.
func (r *Repository) NewBlank() *Configuration {
	return &Configuration{}
}

// Find returns one page of rows ordered by key; the filter matches key or
// value case-insensitively.
func (r *Repository) Find(page paging.Page, filter string) ([]Configuration, error) {
	query := r.DB.Model(&Configuration{})
	if pattern := paging.LikePattern(filter); pattern != "" {
		query = query.Where("LOWER(key) LIKE ? OR LOWER(value) LIKE ?", pattern, pattern)
	}
	var rows []Configuration
	err := query.Order("key").Limit(page.Limit).Offset(page.Offset).Find(&rows).Error
	return rows, err
}

// Get returns the row for key, or nil when it does not exist.
func (r *Repository) Get(key string) (*Configuration, error) {
	var row Configuration
	err := r.DB.Where("key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Store persists the row, inserting or updating by key.
func (r *Repository) Store(row *Configuration) error {
	return r.DB.Clauses(clause.OnConflict{UpdateAll: true}).Create(row).Error
}

// Delete removes the row by key; a missing key is a no-op.
func (r *Repository) Delete(key string) error {
	return r.DB.Where("key = ?", key).Delete(&Configuration{}).Error
}

// LoadAll reads every row into a key-value map, the raw material for a
// snapshot.
func (r *Repository) LoadAll() (map[string]string, error) {
	var rows []Configuration
	if err := r.DB.Find(&rows).Error; err != nil {
		return nil, err
	}
	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Key] = row.Value
	}
	return values, nil
}
