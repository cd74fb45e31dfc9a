package models

import "time"

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// Transaction is a single ledger entry owned by exactly one user.
//
// Date is the economic date of the transaction and drives all report
// windowing. CreatedAt/UpdatedAt on Base are record lifecycle timestamps
// and are never used by aggregation.
type Transaction struct {
	Base
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	Type          TransactionType `gorm:"size:10;not null" json:"type"`
	Amount        float64         `gorm:"not null" json:"amount"`
	Description   string          `gorm:"size:255" json:"description"`
	CategoryCode  *string         `gorm:"size:50" json:"category_code,omitempty"`
	Date          time.Time       `gorm:"not null;index" json:"date"`
	ImportBatchID *string         `gorm:"size:36" json:"import_batch_id,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
