package models

// Category maps a category code to display metadata. The directory is
// shared across users and is a read-only join source for reports:
// transactions reference it by code, not by primary key.
type Category struct {
	Base
	Code  string          `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name  string          `gorm:"not null" json:"name"`
	Type  TransactionType `gorm:"size:10;not null" json:"type"`
	Color string          `json:"color"`
	Icon  string          `json:"icon"`
}
