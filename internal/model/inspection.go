package model

import "time"

// SectionScore is the percentage score of one named section
type SectionScore struct {
	SectionName string  `json:"sectionName" bson:"sectionName"`
	Score       float64 `json:"score" bson:"score"`
}

// Inspection is a scored store visit
type Inspection struct {
	ID            string         `json:"id" bson:"_id,omitempty"`
	StoreID       string         `json:"storeId" bson:"storeId"`
	InspectorID   string         `json:"inspectorId" bson:"inspectorId"`
	TemplateID    string         `json:"templateId" bson:"templateId"`
	Answers       []Answer       `json:"answers" bson:"answers"`
	SectionScores []SectionScore `json:"sectionScores" bson:"sectionScores"`
	FinalScore    float64        `json:"finalScore" bson:"finalScore"`
	SummaryText   string         `json:"summaryText,omitempty" bson:"summaryText,omitempty"`
	CreatedAt     time.Time      `json:"createdAt" bson:"createdAt"`
}

// LeaderboardEntry ranks a store by its latest final score for a template
type LeaderboardEntry struct {
	StoreID string  `json:"storeId"`
	Score   float64 `json:"score"`
	Rank    int     `json:"rank"`
}

// CreateInspectionRequest is the body of an inspection submission
type CreateInspectionRequest struct {
	StoreID     string   `json:"storeId" validate:"required"`
	TemplateID  string   `json:"templateId" validate:"required"`
	Answers     []Answer `json:"answers" validate:"required,dive"`
	SummaryText string   `json:"summaryText,omitempty"`
}

// PreviewRequest scores answers without persisting anything
type PreviewRequest struct {
	TemplateID string   `json:"templateId" validate:"required"`
	Answers    []Answer `json:"answers" validate:"required,dive"`
}

// RecomputedScore compares a stored final score with the score the current
// template version would give the same answers
type RecomputedScore struct {
	InspectionID string  `json:"inspectionId"`
	StoreID      string  `json:"storeId"`
	StoredScore  float64 `json:"storedScore"`
	CurrentScore float64 `json:"currentScore"`
}
