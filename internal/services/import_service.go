package services

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/uuid"
)

// requiredColumns is the field set every import sheet must carry.
var requiredColumns = []string{"amount", "type", "description", "date", "category_code"}

// ImportConfig carries the structural limits for bulk uploads. Passed in
// explicitly rather than read from ambient globals.
type ImportConfig struct {
	SheetName string
	MaxRows   int
}

// DefaultImportConfig returns the standard import limits.
func DefaultImportConfig() ImportConfig {
	return ImportConfig{SheetName: "Transactions", MaxRows: 1000}
}

// importService validates and commits spreadsheet uploads into the
// ledger. Validation is two-phase: structural failures abort before any
// row is read; row-level failures are collected across the whole batch
// and reported together, and nothing is written unless every row passes.
type importService struct {
	db  *gorm.DB
	cfg ImportConfig
}

// NewImportService creates a new ImportServicer.
func NewImportService(db *gorm.DB, cfg ImportConfig) ImportServicer {
	if cfg.SheetName == "" {
		cfg = DefaultImportConfig()
	}
	return &importService{db: db, cfg: cfg}
}

// importRow is one validated data row ready for insertion.
type importRow struct {
	amount       float64
	txType       models.TransactionType
	description  string
	categoryCode string
	date         time.Time
}

// ImportTransactions parses the named sheet, validates every row, and
// commits the batch only when no row has any error. Rows are written one
// at a time in original order; the writes are not wrapped in a single
// database transaction, so a crash mid-commit can leave a partial batch
// behind.
func (s *importService) ImportTransactions(userID uint, file io.Reader) (*ImportSummary, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrImportStructural, "unable to parse spreadsheet file")
	}
	defer f.Close()

	rows, err := f.GetRows(s.cfg.SheetName)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrImportStructural,
			fmt.Sprintf("sheet %q not found in workbook", s.cfg.SheetName))
	}
	if len(rows) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrImportStructural, "sheet has no header row")
	}

	columns, missing := mapColumns(rows[0])
	if len(missing) > 0 {
		return nil, apperrors.WithMessage(apperrors.ErrImportStructural,
			"missing required column(s): "+strings.Join(missing, ", "))
	}

	data := rows[1:]
	if len(data) > s.cfg.MaxRows {
		return nil, apperrors.WithMessage(apperrors.ErrImportStructural,
			fmt.Sprintf("sheet has %d data rows, the limit is %d", len(data), s.cfg.MaxRows))
	}

	var (
		valid     []importRow
		problems  []string
		totalRows int
	)
	for i, raw := range data {
		cells := rowCells(raw, columns)
		if allBlank(cells) {
			// Blank padding row, not an error.
			continue
		}
		totalRows++

		// Data row i (0-based) sits on sheet row i+2: one header row plus
		// the 1-based sheet numbering.
		sheetRow := i + 2
		row, errs := validateRow(cells)
		if len(errs) > 0 {
			for _, msg := range errs {
				problems = append(problems, fmt.Sprintf("Row %d: %s", sheetRow, msg))
			}
			continue
		}
		valid = append(valid, row)
	}

	if len(problems) > 0 {
		return nil, apperrors.WithMessage(apperrors.ErrImportValidation, strings.Join(problems, "\n"))
	}

	batchID := uuid.New()
	created := 0
	for _, row := range valid {
		code := row.categoryCode
		id := batchID
		tx := &models.Transaction{
			UserID:        userID,
			Type:          row.txType,
			Amount:        row.amount,
			Description:   row.description,
			CategoryCode:  &code,
			Date:          row.date,
			ImportBatchID: &id,
		}
		if err := s.db.Create(tx).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		created++
	}

	return &ImportSummary{
		BatchID:     batchID,
		TotalRows:   totalRows,
		ValidRows:   len(valid),
		CreatedRows: created,
	}, nil
}

// mapColumns resolves header names to column indexes, case-insensitively,
// and reports any required column that is absent.
func mapColumns(header []string) (map[string]int, []string) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	return columns, missing
}

// rowCells extracts the required fields from a raw row, tolerating short
// rows (trailing empty cells are omitted by the xlsx reader).
func rowCells(raw []string, columns map[string]int) map[string]string {
	cells := make(map[string]string, len(requiredColumns))
	for _, name := range requiredColumns {
		i := columns[name]
		if i < len(raw) {
			cells[name] = raw[i]
		} else {
			cells[name] = ""
		}
	}
	return cells
}

func allBlank(cells map[string]string) bool {
	for _, v := range cells {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// validateRow checks every field independently and returns all failures
// for the row, never stopping at the first one.
func validateRow(cells map[string]string) (importRow, []string) {
	var row importRow
	var errs []string

	amountStr := strings.TrimSpace(cells["amount"])
	if amountStr == "" {
		errs = append(errs, "amount is required")
	} else if amount, err := strconv.ParseFloat(amountStr, 64); err != nil {
		errs = append(errs, fmt.Sprintf("amount %q is not a number", amountStr))
	} else if amount <= 0 {
		errs = append(errs, fmt.Sprintf("amount %q must be greater than zero", amountStr))
	} else {
		row.amount = amount
	}

	typeStr := strings.ToUpper(strings.TrimSpace(cells["type"]))
	switch typeStr {
	case "":
		errs = append(errs, "type is required")
	case string(models.TransactionTypeIncome), string(models.TransactionTypeExpense):
		row.txType = models.TransactionType(typeStr)
	default:
		errs = append(errs, fmt.Sprintf("type %q must be INCOME or EXPENSE", cells["type"]))
	}

	description := strings.TrimSpace(cells["description"])
	if description == "" {
		errs = append(errs, "description is required")
	} else {
		row.description = description
	}

	dateStr := strings.TrimSpace(cells["date"])
	if dateStr == "" {
		errs = append(errs, "date is required")
	} else if date, err := parseCellDate(dateStr); err != nil {
		errs = append(errs, fmt.Sprintf("date %q is not a valid date", dateStr))
	} else {
		row.date = date
	}

	categoryCode := strings.TrimSpace(cells["category_code"])
	if categoryCode == "" {
		errs = append(errs, "category_code is required")
	} else {
		row.categoryCode = categoryCode
	}

	return row, errs
}

// dateLayouts are the string forms accepted for the date cell, tried in
// order after the canonical calendar date.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01-02-06",
	"1/2/2006",
	"1/2/06 15:04",
}

// excelEpoch is day zero of the xlsx serial date system.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// parseCellDate accepts calendar dates, common datetime strings, and raw
// xlsx serial numbers (cells left in the default number format).
func parseCellDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	if serial, err := strconv.ParseFloat(value, 64); err == nil && serial > 0 {
		days := int(serial)
		return excelEpoch.AddDate(0, 0, days), nil
	}
	return time.Time{}, fmt.Errorf("unsupported date format: %s", value)
}
