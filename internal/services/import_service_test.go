package services

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"fintrack/internal/models"
	"fintrack/internal/testutil"
	"fintrack/internal/uuid"
)

var importHeader = []string{"amount", "type", "description", "date", "category_code"}

// buildWorkbook writes the header plus the given data rows into a sheet
// and returns the serialized xlsx bytes.
func buildWorkbook(t *testing.T, sheet string, rows [][]string) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		t.Fatalf("failed to rename sheet: %v", err)
	}
	all := append([][]string{importHeader}, rows...)
	for i, row := range all {
		cell := fmt.Sprintf("A%d", i+1)
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			t.Fatalf("failed to write row %d: %v", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("failed to serialize workbook: %v", err)
	}
	return buf
}

func validRow(n int) []string {
	return []string{"10.50", "EXPENSE", fmt.Sprintf("Item %d", n), "2024-06-01", "FOOD"}
}

func TestImportTransactions(t *testing.T) {
	t.Run("valid_batch_is_committed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewImportService(db, DefaultImportConfig())
		user := testutil.CreateTestUser(t, db)

		rows := make([][]string, 10)
		for i := range rows {
			rows[i] = validRow(i)
		}
		buf := buildWorkbook(t, "Transactions", rows)

		summary, err := svc.ImportTransactions(user.ID, buf)
		testutil.AssertNoError(t, err)

		if summary.TotalRows != 10 || summary.ValidRows != 10 || summary.CreatedRows != 10 {
			t.Errorf("unexpected summary: %+v", summary)
		}
		if !uuid.IsValid(summary.BatchID) {
			t.Errorf("expected a valid batch id, got %q", summary.BatchID)
		}

		var count int64
		db.Model(&models.Transaction{}).
			Where("user_id = ? AND import_batch_id = ?", user.ID, summary.BatchID).
			Count(&count)
		if count != 10 {
			t.Errorf("expected 10 persisted rows tagged with the batch id, got %d", count)
		}
	})

	t.Run("single_bad_row_rejects_whole_batch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewImportService(db, DefaultImportConfig())
		user := testutil.CreateTestUser(t, db)

		rows := make([][]string, 10)
		for i := range rows {
			rows[i] = validRow(i)
		}
		rows[7][0] = "-5" // data row 7, sheet row 9

		buf := buildWorkbook(t, "Transactions", rows)
		_, err := svc.ImportTransactions(user.ID, buf)
		testutil.AssertAppError(t, err, "IMPORT_VALIDATION_FAILED")

		if !strings.Contains(err.Error(), "Row 9") {
			t.Errorf("expected the report to reference sheet row 9, got %q", err.Error())
		}

		var count int64
		db.Model(&models.Transaction{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 0 {
			t.Errorf("expected zero rows written on validation failure, got %d", count)
		}
	})

	t.Run("all_field_errors_collected_per_row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewImportService(db, DefaultImportConfig())
		user := testutil.CreateTestUser(t, db)

		rows := [][]string{
			{"abc", "TRANSFER", "", "not-a-date", ""},
		}
		buf := buildWorkbook(t, "Transactions", rows)
		_, err := svc.ImportTransactions(user.ID, buf)
		testutil.AssertAppError(t, err, "IMPORT_VALIDATION_FAILED")

		lines := strings.Split(err.Error(), "\n")
		if len(lines) != 5 {
			t.Errorf("expected 5 problem lines for 5 bad fields, got %d: %q", len(lines), err.Error())
		}
		for _, line := range lines {
			if !strings.HasPrefix(line, "Row 2: ") {
				t.Errorf("every line should name sheet row 2, got %q", line)
			}
		}
	})

	t.Run("type_is_case_insensitive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewImportService(db, DefaultImportConfig())
		user := testutil.CreateTestUser(t, db)

		rows := [][]string{
			{"20", "income", "Salary", "2024-06-01", "SAL"},
			{"5", "Expense", "Lunch", "2024-06-02", "FOOD"},
		}
		buf := buildWorkbook(t, "Transactions", rows)
		summary, err := svc.ImportTransactions(user.ID, buf)
		testutil.AssertNoError(t, err)

		if summary.CreatedRows != 2 {
			t.Fatalf("expected 2 created rows, got %d", summary.CreatedRows)
		}
		var tx models.Transaction
		db.Where("user_id = ? AND description = ?", user.ID, "Salary").First(&tx)
		if tx.Type != models.TransactionTypeIncome {
			t.Errorf("expected normalized INCOME type, got %s", tx.Type)
		}
	})

	t.Run("blank_rows_are_skipped_not_counted", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewImportService(db, DefaultImportConfig())
		user := testutil.CreateTestUser(t, db)

		rows := [][]string{
			validRow(0),
			{"", "", "", "", ""},
			validRow(2),
		}
		buf := buildWorkbook(t, "Transactions", rows)
		summary, err := svc.ImportTransactions(user.ID, buf)
		testutil.AssertNoError(t, err)

		if summary.TotalRows != 2 || summary.CreatedRows != 2 {
			t.Errorf("expected blank padding row to be ignored, got %+v", summary)
		}
	})

	t.Run("row_numbers_survive_blank_rows", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewImportService(db, DefaultImportConfig())
		user := testutil.CreateTestUser(t, db)

		rows := [][]string{
			validRow(0),
			{"", "", "", "", ""},
			{"0", "EXPENSE", "Zero", "2024-06-01", "FOOD"}, // data row 2, sheet row 4
		}
		buf := buildWorkbook(t, "Transactions", rows)
		_, err := svc.ImportTransactions(user.ID, buf)
		testutil.AssertAppError(t, err, "IMPORT_VALIDATION_FAILED")

		if !strings.Contains(err.Error(), "Row 4") {
			t.Errorf("expected sheet row 4 in the report, got %q", err.Error())
		}
	})

	t.Run("missing_columns_are_structural", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewImportService(db, DefaultImportConfig())
		user := testutil.CreateTestUser(t, db)

		f := excelize.NewFile()
		defer f.Close()
		if err := f.SetSheetName("Sheet1", "Transactions"); err != nil {
			t.Fatalf("failed to rename sheet: %v", err)
		}
		header := []interface{}{"amount", "type", "description"}
		if err := f.SetSheetRow("Transactions", "A1", &header); err != nil {
			t.Fatalf("failed to write header: %v", err)
		}
		buf, err := f.WriteToBuffer()
		if err != nil {
			t.Fatalf("failed to serialize workbook: %v", err)
		}

		_, err = svc.ImportTransactions(user.ID, buf)
		testutil.AssertAppError(t, err, "IMPORT_STRUCTURAL_ERROR")
		if !strings.Contains(err.Error(), "date") || !strings.Contains(err.Error(), "category_code") {
			t.Errorf("expected both missing columns to be named, got %q", err.Error())
		}
	})

	t.Run("wrong_sheet_name_is_structural", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewImportService(db, DefaultImportConfig())
		user := testutil.CreateTestUser(t, db)

		buf := buildWorkbook(t, "Expenses", [][]string{validRow(0)})
		_, err := svc.ImportTransactions(user.ID, buf)
		testutil.AssertAppError(t, err, "IMPORT_STRUCTURAL_ERROR")
	})

	t.Run("not_a_spreadsheet_is_structural", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewImportService(db, DefaultImportConfig())
		user := testutil.CreateTestUser(t, db)

		_, err := svc.ImportTransactions(user.ID, strings.NewReader("this is not an xlsx file"))
		testutil.AssertAppError(t, err, "IMPORT_STRUCTURAL_ERROR")
	})

	t.Run("row_cap_is_structural", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewImportService(db, ImportConfig{SheetName: "Transactions", MaxRows: 5})
		user := testutil.CreateTestUser(t, db)

		rows := make([][]string, 6)
		for i := range rows {
			rows[i] = validRow(i)
		}
		buf := buildWorkbook(t, "Transactions", rows)
		_, err := svc.ImportTransactions(user.ID, buf)
		testutil.AssertAppError(t, err, "IMPORT_STRUCTURAL_ERROR")
	})

	t.Run("header_casing_is_ignored", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewImportService(db, DefaultImportConfig())
		user := testutil.CreateTestUser(t, db)

		f := excelize.NewFile()
		defer f.Close()
		if err := f.SetSheetName("Sheet1", "Transactions"); err != nil {
			t.Fatalf("failed to rename sheet: %v", err)
		}
		header := []interface{}{"Amount", "TYPE", " Description ", "Date", "Category_Code"}
		if err := f.SetSheetRow("Transactions", "A1", &header); err != nil {
			t.Fatalf("failed to write header: %v", err)
		}
		row := []interface{}{"12", "EXPENSE", "Coffee", "2024-06-01", "FOOD"}
		if err := f.SetSheetRow("Transactions", "A2", &row); err != nil {
			t.Fatalf("failed to write data row: %v", err)
		}
		buf, err := f.WriteToBuffer()
		if err != nil {
			t.Fatalf("failed to serialize workbook: %v", err)
		}

		summary, importErr := svc.ImportTransactions(user.ID, buf)
		testutil.AssertNoError(t, importErr)
		if summary.CreatedRows != 1 {
			t.Errorf("expected 1 created row, got %d", summary.CreatedRows)
		}
	})
}

func TestParseCellDate(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  string
	}{
		{"calendar_date", "2024-06-01", "2024-06-01"},
		{"datetime", "2024-06-01 13:45:00", "2024-06-01"},
		{"slash_format", "6/1/2024", "2024-06-01"},
		{"excel_serial", "45444", "2024-06-01"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseCellDate(tc.value)
			testutil.AssertNoError(t, err)
			if got.Format("2006-01-02") != tc.want {
				t.Errorf("parseCellDate(%q) = %s, want %s", tc.value, got.Format("2006-01-02"), tc.want)
			}
		})
	}

	t.Run("rejects_garbage", func(t *testing.T) {
		if _, err := parseCellDate("yesterday"); err == nil {
			t.Error("expected an error for an unparseable date")
		}
	})
}
