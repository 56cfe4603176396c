package model

import "time"

type ReviewStatus string

const (
	ReviewStatusProcessing ReviewStatus = "processing"
	ReviewStatusCompleted  ReviewStatus = "completed"
	ReviewStatusFailed     ReviewStatus = "failed"
)

// Terminal reports whether the status can no longer change.
func (s ReviewStatus) Terminal() bool {
	return s == ReviewStatusCompleted || s == ReviewStatusFailed
}

// Review is the frontend's read-only view of a backend review job.
// The backend owns and mutates all of this state; the frontend only
// creates jobs (implicitly, by submitting content) and reads them.
type Review struct {
	ID          string        `json:"reviewId"`
	Status      ReviewStatus  `json:"status"`
	Filename    string        `json:"filename,omitempty"`
	Progress    int           `json:"progress,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	CompletedAt *time.Time    `json:"completedAt,omitempty"`
	Result      *ReviewResult `json:"result,omitempty"`
	Error       string        `json:"error,omitempty"`
}

// ReviewResult is the completed analysis payload. The frontend treats
// it as opaque content aside from display and export formatting.
type ReviewResult struct {
	OverallStatus string         `json:"overallStatus"`
	Sections      ReviewSections `json:"sections"`
	Metrics       ReviewMetrics  `json:"metrics"`
	AIMetadata    AIMetadata     `json:"aiMetadata"`
	ReviewText    string         `json:"reviewText,omitempty"`
}

type ReviewSections struct {
	OverallAssessment   string `json:"overallAssessment,omitempty"`
	ContentQuality      string `json:"contentQuality,omitempty"`
	PlainEnglishReview  string `json:"plainEnglishReview,omitempty"`
	StyleGuideReview    string `json:"styleGuideCompliance,omitempty"`
	AccessibilityReview string `json:"accessibilityReview,omitempty"`
	PassiveVoiceReview  string `json:"passiveVoiceReview,omitempty"`
	SummaryOfFindings   string `json:"summaryOfFindings,omitempty"`
	ExampleImprovements string `json:"exampleImprovements,omitempty"`
}

type ReviewMetrics struct {
	TotalIssues           int `json:"totalIssues"`
	WordCount             int `json:"wordCount"`
	WordsToAvoidCount     int `json:"wordsToAvoidCount"`
	PassiveSentencesCount int `json:"passiveSentencesCount"`
}

type AIMetadata struct {
	Model        string `json:"model,omitempty"`
	InputTokens  int    `json:"inputTokens,omitempty"`
	OutputTokens int    `json:"outputTokens,omitempty"`
}

// ReviewListItem is one row of the backend's review history listing.
type ReviewListItem struct {
	ID         string    `json:"reviewId"`
	Filename   string    `json:"filename,omitempty"`
	Status     string    `json:"status"`
	Method     string    `json:"method,omitempty"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type Pagination struct {
	Limit int `json:"limit"`
	Skip  int `json:"skip"`
	Total int `json:"total"`
}
