package services

import (
	"context"
	"io"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// CategoryServicer defines the contract for the category directory.
type CategoryServicer interface {
	CreateCategory(code, name string, categoryType models.TransactionType, color, icon string) (*models.Category, error)
	GetCategories(page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByCode(code string) (*models.Category, error)
	UpdateCategory(code string, name, color, icon *string) (*models.Category, error)
	DeleteCategory(code string) error
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate     *time.Time
	ToDate       *time.Time
	Type         *models.TransactionType
	CategoryCode *string
}

// TransactionServicer defines the contract for ledger CRUD.
type TransactionServicer interface {
	CreateTransaction(userID uint, transactionType models.TransactionType, amount float64, description string, categoryCode *string, date time.Time) (*models.Transaction, error)
	GetUserTransactions(userID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID uint) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID uint, amount *float64, description *string, categoryCode *string, date *time.Time) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID uint) error
}

// CategoryReport is one (category, type) aggregate row in the category
// report, income rows first, each type sorted by descending amount.
type CategoryReport struct {
	Category *string                `json:"category"`
	Type     models.TransactionType `json:"type"`
	Amount   float64                `json:"amount"`
}

// MonthlyChartPoint is one month's income/expense totals. The chart
// always contains exactly 12 points, zero-filled where no activity
// exists.
type MonthlyChartPoint struct {
	Name    string  `json:"name"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// DashboardSummaryItem carries one headline figure together with its
// change versus the previous calendar month.
type DashboardSummaryItem struct {
	Label         string  `json:"label"`
	Value         float64 `json:"value"`
	PercentChange float64 `json:"percent_change"`
	PreviousValue float64 `json:"previous_value"`
}

// MostExpenseCategory is one ranked entry in the top-expense view,
// enriched with category metadata and its share of the window's total
// expenses.
type MostExpenseCategory struct {
	CategoryCode string  `json:"category_code"`
	CategoryName string  `json:"category_name"`
	Amount       float64 `json:"amount"`
	Color        string  `json:"color"`
	Percentage   float64 `json:"percentage_of_total"`
}

// CategoryAmount is one entry in the per-type category breakdown.
type CategoryAmount struct {
	CategoryCode string  `json:"category_code"`
	CategoryName string  `json:"category_name"`
	Amount       float64 `json:"amount"`
	Color        string  `json:"color"`
}

// CashflowTransaction is the lightweight record placed in cashflow
// buckets; the date is serialized as a calendar date for downstream
// consumers.
type CashflowTransaction struct {
	CategoryCode *string `json:"category_code"`
	Description  string  `json:"description"`
	Amount       float64 `json:"amount"`
	Date         string  `json:"date"`
}

// MonthCashflow groups a month's transactions into income and expense
// lists. Buckets exist only for months with at least one transaction.
type MonthCashflow struct {
	Month   string                `json:"month"`
	Income  []CashflowTransaction `json:"income"`
	Expense []CashflowTransaction `json:"expense"`
}

// ReportServicer defines the contract for the report aggregation engine.
// All operations are read-only over the ledger, scoped to a user and a
// date window inclusive at both ends.
type ReportServicer interface {
	GetCategoryReport(userID uint, start, end *time.Time) ([]CategoryReport, error)
	GetMonthlyChart(userID uint, year int) ([]MonthlyChartPoint, error)
	GetDashboardSummary(userID uint, start, end *time.Time) ([]DashboardSummaryItem, error)
	GetMostExpenseCategories(userID uint, start, end *time.Time) ([]MostExpenseCategory, error)
	GetCategoryAmounts(userID uint, transactionType models.TransactionType, start, end *time.Time) ([]CategoryAmount, error)
	GetCashflowData(userID uint, start, end *time.Time) ([]MonthCashflow, error)
}

// ImportSummary reports the outcome of a bulk upload. CreatedRows equals
// ValidRows unless a write failed partway through the commit.
type ImportSummary struct {
	BatchID     string `json:"batch_id"`
	TotalRows   int    `json:"total_rows"`
	ValidRows   int    `json:"valid_rows"`
	CreatedRows int    `json:"created_rows"`
}

// ImportServicer defines the contract for the bulk ingestion validator.
type ImportServicer interface {
	ImportTransactions(userID uint, file io.Reader) (*ImportSummary, error)
}

// TextGenerator produces a completion for a prompt. Implemented by the
// Gemini client; kept narrow so tests can substitute a fake.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// AnalysisServicer defines the contract for AI cashflow analysis.
type AnalysisServicer interface {
	AnalyzeCashflow(ctx context.Context, userID uint, start, end *time.Time) (*models.AIAnalysis, error)
	GetLatestAnalysis(userID uint) (*models.AIAnalysis, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, details map[string]interface{})
}
