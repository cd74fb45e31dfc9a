package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/services"
)

// AnalysisHandler handles AI financial analysis requests.
type AnalysisHandler struct {
	analysisService services.AnalysisServicer
	auditService    services.AuditServicer
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService services.AnalysisServicer, auditService services.AuditServicer) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService, auditService: auditService}
}

// AnalyzeFinancial runs an AI analysis over the user's cashflow
// @Summary     Analyze cashflow
// @Description Send the window's cashflow data to the AI model and store the resulting analysis
// @Tags        ai
// @Produce     json
// @Security    BearerAuth
// @Param       start_date query string false "Window start (inclusive)"
// @Param       end_date query string false "Window end (inclusive)"
// @Success     201 {object} models.AIAnalysis "Stored analysis"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Failure     503 {object} ErrorResponse "Analysis unavailable"
// @Router      /ai/analyze-financial [post]
func (h *AnalysisHandler) AnalyzeFinancial(c *gin.Context) {
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

	analysis, err := h.analysisService.AnalyzeCashflow(c.Request.Context(), userID, start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "ANALYZE_CASHFLOW", "analysis", analysis.ID, c.ClientIP(), nil)

	c.JSON(http.StatusCreated, gin.H{"analysis": analysis})
}

// GetLatestAnalysis returns the most recent stored analysis
// @Summary     Latest analysis
// @Description Get the authenticated user's most recent AI analysis
// @Tags        ai
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.AIAnalysis "Latest analysis"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No analysis stored"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /ai/latest-analysis [get]
func (h *AnalysisHandler) GetLatestAnalysis(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	analysis, err := h.analysisService.GetLatestAnalysis(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"analysis": analysis})
}
