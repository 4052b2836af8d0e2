// internal/models/audit_log.go
package models

// AuditLog records every mutating API request for traceability. Rows are
// written asynchronously and never read on the hot path.
type AuditLog struct {
	BaseModel
	RequestID     string `json:"request_id" gorm:"size:36;index"`
	CallerAddress string `json:"caller_address" gorm:"size:42;index"`
	Action        string `json:"action" gorm:"size:100;not null;index"`
	ResourceType  string `json:"resource_type" gorm:"size:50;not null;index"`
	ResourceID    string `json:"resource_id" gorm:"size:128;index"`
	NewValues     JSONB  `json:"new_values" gorm:"type:jsonb"`
	IPAddress     string `json:"ip_address" gorm:"size:45"`
	UserAgent     string `json:"user_agent" gorm:"type:text"`
}
