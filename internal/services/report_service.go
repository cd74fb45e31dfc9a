package services

import (
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/period"
)

// reportService computes derived financial views over the ledger. It
// never writes; every query is scoped to a user id and a date window
// inclusive at both ends.
type reportService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewReportService creates a new ReportServicer. The clock is injected so
// default windows ("current month", "current year") are testable; pass
// nil to use the wall clock.
func NewReportService(db *gorm.DB, clock func() time.Time) ReportServicer {
	if clock == nil {
		clock = time.Now
	}
	return &reportService{db: db, now: clock}
}

// windowed applies the user scope and optional date bounds shared by all
// report queries.
func (s *reportService) windowed(userID uint, start, end *time.Time) *gorm.DB {
	q := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if start != nil {
		q = q.Where("date >= ?", *start)
	}
	if end != nil {
		q = q.Where("date <= ?", *end)
	}
	return q
}

// categoryTotal is the scan target for grouped category sums.
type categoryTotal struct {
	CategoryCode *string
	Type         models.TransactionType
	Total        float64
}

// GetCategoryReport groups the window's transactions by (category, type)
// and sums amounts per group. Income groups come first, each type sorted
// by descending amount. Categories without activity are omitted.
func (s *reportService) GetCategoryReport(userID uint, start, end *time.Time) ([]CategoryReport, error) {
	var rows []categoryTotal
	err := s.windowed(userID, start, end).
		Select("category_code, type, SUM(amount) AS total").
		Group("category_code, type").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	income := make([]CategoryReport, 0)
	expense := make([]CategoryReport, 0)
	for _, row := range rows {
		report := CategoryReport{Category: row.CategoryCode, Type: row.Type, Amount: row.Total}
		if row.Type == models.TransactionTypeIncome {
			income = append(income, report)
		} else {
			expense = append(expense, report)
		}
	}

	sort.SliceStable(income, func(i, j int) bool { return income[i].Amount > income[j].Amount })
	sort.SliceStable(expense, func(i, j int) bool { return expense[i].Amount > expense[j].Amount })

	return append(income, expense...), nil
}

// GetMonthlyChart sums income and expense per calendar month of the given
// year. The year is independent of any window; zero selects the current
// year. The result always has exactly 12 entries in month order.
func (s *reportService) GetMonthlyChart(userID uint, year int) ([]MonthlyChartPoint, error) {
	if year == 0 {
		year = s.now().Year()
	}
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := yearStart.AddDate(1, 0, 0)

	var transactions []models.Transaction
	err := s.db.
		Where("user_id = ? AND date >= ? AND date < ?", userID, yearStart, yearEnd).
		Find(&transactions).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	points := make([]MonthlyChartPoint, 12)
	for i := range points {
		points[i].Name = period.MonthNames[i]
	}
	for _, tx := range transactions {
		i := int(tx.Date.Month()) - 1
		switch tx.Type {
		case models.TransactionTypeIncome:
			points[i].Income += tx.Amount
		case models.TransactionTypeExpense:
			points[i].Expense += tx.Amount
		}
	}
	return points, nil
}

// periodTotals holds the summed income and expense for one window.
type periodTotals struct {
	Income  float64
	Expense float64
}

func (s *reportService) totals(userID uint, w period.Window) (periodTotals, error) {
	type typeTotal struct {
		Type  models.TransactionType
		Total float64
	}
	var rows []typeTotal
	err := s.windowed(userID, &w.Start, &w.End).
		Select("type, SUM(amount) AS total").
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return periodTotals{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var t periodTotals
	for _, row := range rows {
		switch row.Type {
		case models.TransactionTypeIncome:
			t.Income = row.Total
		case models.TransactionTypeExpense:
			t.Expense = row.Total
		}
	}
	return t, nil
}

// GetDashboardSummary returns the three headline items, each compared
// against the previous calendar month before the window's start. The two
// period totals are independent reads and are fetched concurrently.
func (s *reportService) GetDashboardSummary(userID uint, start, end *time.Time) ([]DashboardSummaryItem, error) {
	current := period.Resolve(s.now(), start, end)
	previous := period.PreviousMonth(current.Start)

	var cur, prev periodTotals
	g := new(errgroup.Group)
	g.Go(func() error {
		var err error
		cur, err = s.totals(userID, current)
		return err
	})
	g.Go(func() error {
		var err error
		prev, err = s.totals(userID, previous)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	balance := cur.Income - cur.Expense
	prevBalance := prev.Income - prev.Expense

	return []DashboardSummaryItem{
		{
			Label:         "Total Balance",
			Value:         balance,
			PercentChange: percentChange(balance, prevBalance),
			PreviousValue: prevBalance,
		},
		{
			Label:         "Total Period Expenses",
			Value:         cur.Expense,
			PercentChange: percentChange(cur.Expense, prev.Expense),
			PreviousValue: prev.Expense,
		},
		{
			Label:         "Total Period Income",
			Value:         cur.Income,
			PercentChange: percentChange(cur.Income, prev.Income),
			PreviousValue: prev.Income,
		},
	}, nil
}

// percentChange computes the relative change of current versus previous,
// rounded to two decimals. A zero previous value yields 0 when current is
// also zero and 100 otherwise, signalling "fully new" rather than a
// division by zero. The denominator uses the absolute previous value so
// a negative baseline keeps the sign of the movement.
func percentChange(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return round2((current - previous) / math.Abs(previous) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// joinedCategoryTotal is the scan target for category-joined sums.
type joinedCategoryTotal struct {
	CategoryCode string
	Name         string
	Color        string
	Total        float64
}

// joinedTotals sums the window's transactions of one type per category,
// inner-joined to the directory. Transactions whose code is unset or
// unknown are dropped by the join; this mirrors the original views and
// is a known gap for uncategorized entries.
func (s *reportService) joinedTotals(userID uint, transactionType models.TransactionType, w period.Window) ([]joinedCategoryTotal, error) {
	var rows []joinedCategoryTotal
	err := s.db.Model(&models.Transaction{}).
		Select("transactions.category_code AS category_code, categories.name AS name, categories.color AS color, SUM(transactions.amount) AS total").
		Joins("JOIN categories ON categories.code = transactions.category_code AND categories.deleted_at IS NULL").
		Where("transactions.user_id = ? AND transactions.type = ?", userID, transactionType).
		Where("transactions.date >= ? AND transactions.date <= ?", w.Start, w.End).
		Group("transactions.category_code, categories.name, categories.color").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rows, nil
}

// GetMostExpenseCategories ranks the window's expense categories by
// amount and attaches each one's share of the window's total expenses.
// The denominator includes uncategorized expenses, so shares sum below
// 100 when any expense lacks a directory entry.
func (s *reportService) GetMostExpenseCategories(userID uint, start, end *time.Time) ([]MostExpenseCategory, error) {
	w := period.Resolve(s.now(), start, end)

	rows, err := s.joinedTotals(userID, models.TransactionTypeExpense, w)
	if err != nil {
		return nil, err
	}

	t, err := s.totals(userID, w)
	if err != nil {
		return nil, err
	}

	result := make([]MostExpenseCategory, 0, len(rows))
	for _, row := range rows {
		pct := 0.0
		if t.Expense != 0 {
			pct = round2(row.Total / t.Expense * 100)
		}
		result = append(result, MostExpenseCategory{
			CategoryCode: row.CategoryCode,
			CategoryName: row.Name,
			Amount:       row.Total,
			Color:        row.Color,
			Percentage:   pct,
		})
	}
	return result, nil
}

// GetCategoryAmounts returns the per-category breakdown for one
// transaction type, sorted by descending amount, without percentages.
func (s *reportService) GetCategoryAmounts(userID uint, transactionType models.TransactionType, start, end *time.Time) ([]CategoryAmount, error) {
	w := period.Resolve(s.now(), start, end)

	rows, err := s.joinedTotals(userID, transactionType, w)
	if err != nil {
		return nil, err
	}

	result := make([]CategoryAmount, 0, len(rows))
	for _, row := range rows {
		result = append(result, CategoryAmount{
			CategoryCode: row.CategoryCode,
			CategoryName: row.Name,
			Amount:       row.Total,
			Color:        row.Color,
		})
	}
	return result, nil
}

// GetCashflowData buckets the window's transactions by "YYYY-MM" month
// key, defaulting to the full current year. Buckets are created lazily:
// months without transactions produce no entry, unlike the monthly
// chart's zero-fill. Within each bucket the income and expense lists
// keep the global ascending date order.
func (s *reportService) GetCashflowData(userID uint, start, end *time.Time) ([]MonthCashflow, error) {
	var w period.Window
	if start != nil && end != nil {
		w = period.Window{Start: *start, End: *end}
	} else {
		w = period.YearWindow(s.now())
	}

	var transactions []models.Transaction
	err := s.db.
		Where("user_id = ? AND date >= ? AND date <= ?", userID, w.Start, w.End).
		Order("date ASC").
		Find(&transactions).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	buckets := make(map[string]*MonthCashflow)
	for _, tx := range transactions {
		key := tx.Date.Format("2006-01")
		bucket, ok := buckets[key]
		if !ok {
			bucket = &MonthCashflow{
				Month:   key,
				Income:  []CashflowTransaction{},
				Expense: []CashflowTransaction{},
			}
			buckets[key] = bucket
		}

		record := CashflowTransaction{
			CategoryCode: tx.CategoryCode,
			Description:  tx.Description,
			Amount:       tx.Amount,
			Date:         tx.Date.Format("2006-01-02"),
		}
		switch tx.Type {
		case models.TransactionTypeIncome:
			bucket.Income = append(bucket.Income, record)
		case models.TransactionTypeExpense:
			bucket.Expense = append(bucket.Expense, record)
		}
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	result := make([]MonthCashflow, 0, len(keys))
	for _, key := range keys {
		result = append(result, *buckets[key])
	}
	return result, nil
}
