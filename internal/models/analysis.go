package models

// AnalysisType classifies stored AI analysis results.
type AnalysisType string

const (
	AnalysisTypeGeneral AnalysisType = "GENERAL"
)

// AIAnalysis stores the result of an AI-generated cashflow analysis so
// the latest report can be re-read without calling the model again.
type AIAnalysis struct {
	Base
	UserID       uint         `gorm:"not null;index" json:"user_id"`
	AnalysisType AnalysisType `gorm:"size:20;not null" json:"analysis_type"`
	InputData    string       `gorm:"type:text" json:"input_data"`
	Result       string       `gorm:"type:text" json:"result"`
}
