package mailtemplate

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

// NewBlank returns an unpersisted, empty template.
func (r *Repository) NewBlank() *MailTemplate {
	return &MailTemplate{}
}

// Find returns one page of templates ordered by id; the filter matches id or
// subject case-insensitively.
func (r *Repository) Find(page paging.Page, filter string) ([]MailTemplate, error) {
	query := r.DB.Model(&MailTemplate{})
	if pattern := paging.LikePattern(filter); pattern != "" {
		query = query.Where("LOWER(id) LIKE ? OR LOWER(subject) LIKE ?", pattern, pattern)
	}
	var rows []MailTemplate
	err := query.Order("id").Limit(page.Limit).Offset(page.Offset).Find(&rows).Error
	return rows, err
}

// Get returns the template for id, or nil when no row exists.
func (r *Repository) Get(id ID) (*MailTemplate, error) {
	var row MailTemplate
	err := r.DB.Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Store persists the template, inserting or updating by id.
func (r *Repository) Store(row *MailTemplate) error {
	return r.DB.Clauses(clause.OnConflict{UpdateAll: true}).Create(row).Error
}

// Delete removes the template by id; a missing id is a no-op.
func (r *Repository) Delete(id ID) error {
	return r.DB.Where("id = ?", id).Delete(&MailTemplate{}).Error
}

// MissingIDs lists the known mail IDs that have no template row yet, in the
// order of AllIDs. An empty result means every mail the application sends is
// backed by a template.
func (r *Repository) MissingIDs() ([]ID, error) {
	var stored []ID
	if err := r.DB.Model(&MailTemplate{}).Pluck("id", &stored).Error; err != nil {
		return nil, err
	}
	present := make(map[ID]bool, len(stored))
	for _, id := range stored {
		present[id] = true
	}
	missing := []ID{}
	for _, id := range AllIDs() {
		if !present[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}
