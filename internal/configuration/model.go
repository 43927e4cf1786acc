package configuration

// Configuration is one key-value row. The key is the identity and immutable
// once the row exists; edits can only change the value.
type Configuration struct {
	Key   string `gorm:"primaryKey;type:varchar(255)" json:"key"`
	Value string `gorm:"type:varchar(255);not null" json:"value"`
}

// SaveConfigurationRequest is the payload for creating or updating a row.
type SaveConfigurationRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
