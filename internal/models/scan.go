package models

import (
	"fmt"
	"time"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

type DiagnosisIssue struct {
	Type        string   `json:"type"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

type DiagnosisRecommendation struct {
	Action            string   `json:"action"`
	Urgency           Severity `json:"urgency"`
	ProductSuggestion *string  `json:"product_suggestion"`
}

// Diagnosis is the structured result returned by the remote vision endpoint.
// ConditionScore is nil when the photo could not be assessed.
type Diagnosis struct {
	ConditionScore  *int                      `json:"condition_score"`
	ConditionLabel  string                    `json:"condition_label"`
	Summary         string                    `json:"summary"`
	Observations    []string                  `json:"observations"`
	Issues          []DiagnosisIssue          `json:"issues"`
	Recommendations []DiagnosisRecommendation `json:"recommendations"`
}

func (d Diagnosis) Validate() error {
	if d.ConditionScore != nil && (*d.ConditionScore < 1 || *d.ConditionScore > 10) {
		return fmt.Errorf("condition score %d out of range 1-10", *d.ConditionScore)
	}
	return nil
}

// Scan is a stored diagnosis for one submitted photo
type Scan struct {
	ID        string    `json:"id"`
	ImagePath string    `json:"image_path"`
	Diagnosis Diagnosis `json:"diagnosis"`
	CreatedAt time.Time `json:"created_at"`
}
