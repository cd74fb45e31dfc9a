package integration

import (
	"net/http"
	"testing"
)

// seedJuneLedger creates a small two-month ledger used by the report flows:
// June holds 5000 salary, 1500 rent, and 500 uncategorized expenses; May
// holds 1000 salary and 500 rent.
func seedJuneLedger(t *testing.T, app *testApp, token string) {
	t.Helper()
	app.createCategory(t, token, "SALARY", "Salary", "INCOME")
	app.createCategory(t, token, "RENT", "Rent", "EXPENSE")

	app.createTransaction(t, token, "INCOME", 5000, "SALARY", "2024-06-01")
	app.createTransaction(t, token, "EXPENSE", 1500, "RENT", "2024-06-05")
	app.createTransaction(t, token, "EXPENSE", 500, "", "2024-06-20")

	app.createTransaction(t, token, "INCOME", 1000, "SALARY", "2024-05-01")
	app.createTransaction(t, token, "EXPENSE", 500, "RENT", "2024-05-10")
}

func TestReportFlow_CategoryReport(t *testing.T) {
	app := setupApp(t, nil)
	token, _ := app.registerUser(t, "report@test.com", "password123")
	seedJuneLedger(t, app, token)

	rec := app.request("GET", "/api/v1/reports/categories?start_date=2024-06-01&end_date=2024-06-30", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	report := parseJSON(t, rec)["report"].([]interface{})
	if len(report) != 3 {
		t.Fatalf("expected 3 report rows, got %d", len(report))
	}

	// Income first, then expenses by descending amount
	first := report[0].(map[string]interface{})
	if first["type"] != "INCOME" || first["amount"].(float64) != 5000 {
		t.Errorf("expected leading income row of 5000, got %v", first)
	}
	second := report[1].(map[string]interface{})
	if second["type"] != "EXPENSE" || second["amount"].(float64) != 1500 {
		t.Errorf("expected 1500 expense row second, got %v", second)
	}
}

func TestReportFlow_DashboardSummary(t *testing.T) {
	app := setupApp(t, nil)
	token, _ := app.registerUser(t, "dashboard@test.com", "password123")
	seedJuneLedger(t, app, token)

	rec := app.request("GET", "/api/v1/reports/dashboard?start_date=2024-06-01&end_date=2024-06-30", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	summary := parseJSON(t, rec)["summary"].([]interface{})
	if len(summary) != 3 {
		t.Fatalf("expected 3 summary items, got %d", len(summary))
	}

	// June balance 3000 vs May balance 500
	balance := summary[0].(map[string]interface{})
	if balance["label"] != "Total Balance" {
		t.Fatalf("expected Total Balance first, got %v", balance["label"])
	}
	if balance["value"].(float64) != 3000 {
		t.Errorf("expected balance 3000, got %v", balance["value"])
	}
	if balance["percent_change"].(float64) != 500 {
		t.Errorf("expected percent change 500, got %v", balance["percent_change"])
	}
	if balance["previous_value"].(float64) != 500 {
		t.Errorf("expected previous balance 500, got %v", balance["previous_value"])
	}

	// June expenses 2000 vs May 500
	expenses := summary[1].(map[string]interface{})
	if expenses["value"].(float64) != 2000 || expenses["percent_change"].(float64) != 300 {
		t.Errorf("expected expenses 2000 at +300%%, got %v", expenses)
	}
}

func TestReportFlow_MostExpenseCategories(t *testing.T) {
	app := setupApp(t, nil)
	token, _ := app.registerUser(t, "mostexp@test.com", "password123")
	seedJuneLedger(t, app, token)

	rec := app.request("GET", "/api/v1/reports/most-expense?start_date=2024-06-01&end_date=2024-06-30", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	categories := parseJSON(t, rec)["categories"].([]interface{})

	// Only RENT is categorized; the uncategorized 500 dilutes its share.
	if len(categories) != 1 {
		t.Fatalf("expected 1 ranked category, got %d", len(categories))
	}
	rent := categories[0].(map[string]interface{})
	if rent["category_code"] != "RENT" {
		t.Errorf("expected RENT, got %v", rent["category_code"])
	}
	if rent["amount"].(float64) != 1500 {
		t.Errorf("expected amount 1500, got %v", rent["amount"])
	}
	if rent["percentage_of_total"].(float64) != 75 {
		t.Errorf("expected 75%% of total expenses, got %v", rent["percentage_of_total"])
	}
}

func TestReportFlow_MonthlyChartAndCashflow(t *testing.T) {
	app := setupApp(t, nil)
	token, _ := app.registerUser(t, "chart@test.com", "password123")
	seedJuneLedger(t, app, token)

	// Monthly chart always spans 12 months
	rec := app.request("GET", "/api/v1/reports/monthly?year=2024", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	chart := parseJSON(t, rec)["chart"].([]interface{})
	if len(chart) != 12 {
		t.Fatalf("expected 12 chart points, got %d", len(chart))
	}
	june := chart[5].(map[string]interface{})
	if june["income"].(float64) != 5000 || june["expense"].(float64) != 2000 {
		t.Errorf("expected June income 5000 / expense 2000, got %v", june)
	}
	march := chart[2].(map[string]interface{})
	if march["income"].(float64) != 0 || march["expense"].(float64) != 0 {
		t.Errorf("expected empty March, got %v", march)
	}

	// Cashflow only creates buckets for active months
	rec = app.request("GET", "/api/v1/reports/cashflow?start_date=2024-01-01&end_date=2024-12-31", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	cashflow := parseJSON(t, rec)["cashflow"].([]interface{})
	if len(cashflow) != 2 {
		t.Fatalf("expected 2 cashflow buckets, got %d", len(cashflow))
	}
	may := cashflow[0].(map[string]interface{})
	if may["month"] != "2024-05" {
		t.Errorf("expected 2024-05 first, got %v", may["month"])
	}
	juneFlow := cashflow[1].(map[string]interface{})
	if len(juneFlow["expense"].([]interface{})) != 2 {
		t.Errorf("expected 2 June expense entries, got %v", juneFlow["expense"])
	}
}

func TestReportFlow_InvalidDateRejected(t *testing.T) {
	app := setupApp(t, nil)
	token, _ := app.registerUser(t, "baddate@test.com", "password123")

	rec := app.request("GET", "/api/v1/reports/dashboard?start_date=not-a-date", "", token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "INVALID_INPUT" {
		t.Errorf("expected INVALID_INPUT, got %v", code)
	}
}
