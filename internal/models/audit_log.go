package models

// AuditLog records write operations (creates, deletes, bulk imports) for
// traceability. Entries are append-only and never read by the report
// engine.
type AuditLog struct {
	Base
	UserID       uint   `gorm:"not null;index" json:"user_id"`
	Action       string `gorm:"not null" json:"action"`
	ResourceType string `gorm:"not null" json:"resource_type"`
	ResourceID   uint   `json:"resource_id"`
	IPAddress    string `json:"ip_address"`
	Details      string `json:"details,omitempty"`
}
