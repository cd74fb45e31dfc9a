package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"
)

// ReportHandler exposes the aggregation engine over HTTP. Every endpoint
// is read-only and accepts the shared start_date/end_date window
// parameters unless noted otherwise.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetCategoryReport returns per-category totals
// @Summary     Category report
// @Description Sum the window's transactions per (category, type) group, income groups first
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       start_date query string false "Window start (inclusive)"
// @Param       end_date query string false "Window end (inclusive)"
// @Success     200 {array} services.CategoryReport "Category report"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/categories [get]
func (h *ReportHandler) GetCategoryReport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	start, end, err := parseWindow(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.reportService.GetCategoryReport(userID, start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// GetMonthlyChart returns per-month totals for one year
// @Summary     Monthly chart
// @Description Income and expense totals for each of the twelve months of a year
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Calendar year, defaults to the current year"
// @Success     200 {array} services.MonthlyChartPoint "Monthly chart"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/monthly [get]
func (h *ReportHandler) GetMonthlyChart(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year := 0
	if v := c.Query("year"); v != "" {
		parsed, parseErr := strconv.Atoi(v)
		if parseErr != nil || parsed < 0 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid year"))
			return
		}
		year = parsed
	}

	chart, err := h.reportService.GetMonthlyChart(userID, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"chart": chart})
}

// GetDashboardSummary returns the headline figures
// @Summary     Dashboard summary
// @Description Balance, expenses, and income for the window, each with its change versus the previous calendar month
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       start_date query string false "Window start (inclusive)"
// @Param       end_date query string false "Window end (inclusive)"
// @Success     200 {array} services.DashboardSummaryItem "Summary items"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/dashboard [get]
func (h *ReportHandler) GetDashboardSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	start, end, err := parseWindow(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.reportService.GetDashboardSummary(userID, start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetMostExpenseCategories returns the ranked expense categories
// @Summary     Top expense categories
// @Description Expense categories ranked by amount with each one's share of the window's total expenses
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       start_date query string false "Window start (inclusive)"
// @Param       end_date query string false "Window end (inclusive)"
// @Success     200 {array} services.MostExpenseCategory "Ranked categories"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/most-expense [get]
func (h *ReportHandler) GetMostExpenseCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	start, end, err := parseWindow(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.reportService.GetMostExpenseCategories(userID, start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetIncomeCategories returns the per-category income breakdown
// @Summary     Income by category
// @Description Income totals per category for the window, sorted by descending amount
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       start_date query string false "Window start (inclusive)"
// @Param       end_date query string false "Window end (inclusive)"
// @Success     200 {array} services.CategoryAmount "Income categories"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/income-categories [get]
func (h *ReportHandler) GetIncomeCategories(c *gin.Context) {
	h.categoryAmounts(c, models.TransactionTypeIncome)
}

// GetExpenseCategories returns the per-category expense breakdown
// @Summary     Expenses by category
// @Description Expense totals per category for the window, sorted by descending amount
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       start_date query string false "Window start (inclusive)"
// @Param       end_date query string false "Window end (inclusive)"
// @Success     200 {array} services.CategoryAmount "Expense categories"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/expense-categories [get]
func (h *ReportHandler) GetExpenseCategories(c *gin.Context) {
	h.categoryAmounts(c, models.TransactionTypeExpense)
}

func (h *ReportHandler) categoryAmounts(c *gin.Context, transactionType models.TransactionType) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	start, end, err := parseWindow(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	amounts, err := h.reportService.GetCategoryAmounts(userID, transactionType, start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": amounts})
}

// GetCashflowData returns the monthly cashflow buckets
// @Summary     Cashflow data
// @Description Transactions grouped into per-month income and expense buckets, defaulting to the current year
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       start_date query string false "Window start (inclusive)"
// @Param       end_date query string false "Window end (inclusive)"
// @Success     200 {array} services.MonthCashflow "Monthly cashflow"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/cashflow [get]
func (h *ReportHandler) GetCashflowData(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	start, end, err := parseWindow(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	cashflow, err := h.reportService.GetCashflowData(userID, start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cashflow": cashflow})
}
