package mailtemplate

// ID names one of the mails the application sends. The set is fixed: rows
// can only exist for known IDs, and operability means every known ID has a
// row.
type ID string

const (
	IDSecurityResetPassword ID = "SECURITY_RESET_PASSWORD"
	IDRequestSubmitted      ID = "REQUEST_SUBMITTED"
	IDRequestApproved       ID = "REQUEST_APPROVED"
	IDRequestDeclined       ID = "REQUEST_DECLINED"
)

// AllIDs returns every mail the application knows how to send, in a stable
// order.
func AllIDs() []ID {
	return []ID{
		IDSecurityResetPassword,
		IDRequestSubmitted,
		IDRequestApproved,
		IDRequestDeclined,
	}
}

func (id ID) Valid() bool {
	for _, known := range AllIDs() {
		if id == known {
			return true
		}
	}
	return false
}

// MailTemplate holds the subject and body for one mail ID. Placeholders of
// the form ${name} are expanded with per-mail parameters at send time.
type MailTemplate struct {
	ID      ID     `gorm:"primaryKey;type:varchar(255)" json:"id"`
	Subject string `gorm:"type:varchar(255);not null" json:"subject"`
	Body    string `gorm:"type:text;not null" json:"body"`
}

// SaveMailTemplateRequest is the payload for creating or updating a template.
type SaveMailTemplateRequest struct {
	ID      ID     `json:"id"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
