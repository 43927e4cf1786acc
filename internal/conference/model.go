package conference

import (
	"time"
)

// Conference is a community event employees can be registered for. ID stays
// zero until the record is persisted. Begin and end date are optional, but
// when both are set the begin date never lies after the end date (enforced by
// the edit form, a one-day conference has equal dates). Costs are amounts in
// CHF and nil until entered.
type Conference struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Name          string     `gorm:"type:varchar(255);not null" json:"name"`
	Website       string     `gorm:"type:varchar(255);not null" json:"website"`
	BeginDate     *time.Time `gorm:"type:date;index" json:"begin_date,omitempty"`
	EndDate       *time.Time `gorm:"type:date" json:"end_date,omitempty"`
	Ticket        *int       `gorm:"not null" json:"ticket"`
	Travel        *int       `gorm:"not null" json:"travel"`
	Accommodation *int       `gorm:"not null" json:"accommodation"`
}

// SaveConferenceRequest is the payload for creating or updating a conference.
// Dates use the "2006-01-02" format. Missing costs fail validation, they do
// not default to zero.
type SaveConferenceRequest struct {
	Name          string `json:"name"`
	Website       string `json:"website"`
	BeginDate     string `json:"begin_date"`
	EndDate       string `json:"end_date"`
	Ticket        *int   `json:"ticket"`
	Travel        *int   `json:"travel"`
	Accommodation *int   `json:"accommodation"`
}
