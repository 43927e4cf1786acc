package request

import (
	"time"
)

// Role of the employee at the conference.
type Role string

const (
	RoleAttendee  Role = "attendee"
	RoleSpeaker   Role = "speaker"
	RoleOrganizer Role = "organizer"
)

func Roles() []Role {
	return []Role{RoleAttendee, RoleSpeaker, RoleOrganizer}
}

func (r Role) Valid() bool {
	for _, role := range Roles() {
		if r == role {
			return true
		}
	}
	return false
}

// Status of a request in the approval workflow.
type Status string

const (
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusDeclined  Status = "declined"
)

func (s Status) Valid() bool {
	return s == StatusSubmitted || s == StatusApproved || s == StatusDeclined
}

// Request is an employee's wish to attend a conference. The (employee,
// conference) pair is the identity: at most one request per pair, and the
// pair is immutable once the request exists.
type Request struct {
	EmployeeID    uint       `gorm:"primaryKey;autoIncrement:false" json:"employee_id"`
	ConferenceID  uint       `gorm:"primaryKey;autoIncrement:false" json:"conference_id"`
	Role          Role       `gorm:"type:varchar(50);not null" json:"role"`
	Reason        string     `gorm:"type:varchar(500);not null" json:"reason"`
	Status        Status     `gorm:"type:varchar(50);not null;default:submitted" json:"status"`
	StatusDate    *time.Time `json:"status_date,omitempty"`
	StatusComment string     `gorm:"type:varchar(500)" json:"status_comment"`
	RequestDate   *time.Time `gorm:"index" json:"request_date,omitempty"`
}

// ListEntity is one row of the requests list: the request joined with the
// employee and conference it belongs to.
type ListEntity struct {
	EmployeeID        uint       `gorm:"column:employee_id" json:"employee_id"`
	EmployeeFirstName string     `gorm:"column:employee_first_name" json:"employee_first_name"`
	EmployeeLastName  string     `gorm:"column:employee_last_name" json:"employee_last_name"`
	ConferenceID      uint       `gorm:"column:conference_id" json:"conference_id"`
	ConferenceName    string     `gorm:"column:conference_name" json:"conference_name"`
	ConferenceWebsite string     `gorm:"column:conference_website" json:"conference_website"`
	RequestDate       *time.Time `gorm:"column:request_date" json:"request_date,omitempty"`
	Role              Role       `gorm:"column:role" json:"role"`
	Reason            string     `gorm:"column:reason" json:"reason"`
	Status            Status     `gorm:"column:status" json:"status"`
	StatusDate        *time.Time `gorm:"column:status_date" json:"status_date,omitempty"`
	StatusComment     string     `gorm:"column:status_comment" json:"status_comment"`
}

// SaveRequestRequest is the payload for creating or updating a request.
type SaveRequestRequest struct {
	EmployeeID   uint   `json:"employee_id"`
	ConferenceID uint   `json:"conference_id"`
	Role         Role   `json:"role"`
	Reason       string `json:"reason"`
}

// SetStatusRequest moves a request through the approval workflow.
type SetStatusRequest struct {
	Status  Status `json:"status"`
	Comment string `json:"comment"`
}
