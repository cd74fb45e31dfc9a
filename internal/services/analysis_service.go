package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

const analysisPromptTemplate = `You are a personal finance advisor. Analyze the following cashflow data
and respond with a JSON object containing exactly these keys:
  "summary": a short overview of the period,
  "observations": an array of notable patterns in income and spending,
  "recommendations": an array of concrete suggestions.

Cashflow data:
%s`

// analysisService runs the user's cashflow through a text generator and
// stores the result. The generator may be nil when no API key is
// configured; analysis requests then fail with a service-unavailable
// error instead of panicking at startup.
type analysisService struct {
	db        *gorm.DB
	reports   ReportServicer
	generator TextGenerator
}

// NewAnalysisService creates a new AnalysisServicer.
func NewAnalysisService(db *gorm.DB, reports ReportServicer, generator TextGenerator) AnalysisServicer {
	return &analysisService{db: db, reports: reports, generator: generator}
}

// AnalyzeCashflow builds the user's cashflow for the window, sends it to
// the generator, and persists both the input and the cleaned result.
func (s *analysisService) AnalyzeCashflow(ctx context.Context, userID uint, start, end *time.Time) (*models.AIAnalysis, error) {
	if s.generator == nil {
		return nil, apperrors.ErrAnalysisUnavailable
	}

	cashflow, err := s.reports.GetCashflowData(userID, start, end)
	if err != nil {
		return nil, err
	}

	inputData, err := json.MarshalIndent(cashflow, "", "  ")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	prompt := fmt.Sprintf(analysisPromptTemplate, string(inputData))
	raw, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrAnalysisUnavailable, err)
	}

	result := stripCodeFences(raw)

	analysis := &models.AIAnalysis{
		UserID:       userID,
		AnalysisType: models.AnalysisTypeGeneral,
		InputData:    string(inputData),
		Result:       result,
	}

	if err := s.db.Create(analysis).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return analysis, nil
}

// GetLatestAnalysis returns the user's most recent stored analysis.
func (s *analysisService) GetLatestAnalysis(userID uint) (*models.AIAnalysis, error) {
	var analysis models.AIAnalysis
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&analysis).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAnalysisNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &analysis, nil
}

// stripCodeFences removes a surrounding markdown code fence, with or
// without a language tag, which the model often adds around JSON output.
func stripCodeFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	if newline := strings.Index(trimmed, "\n"); newline >= 0 {
		// Drop the language tag line ("json", "JSON", or empty).
		first := strings.TrimSpace(trimmed[:newline])
		if first == "" || strings.EqualFold(first, "json") {
			trimmed = trimmed[newline+1:]
		}
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
