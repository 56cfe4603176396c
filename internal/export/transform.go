// Package export turns a completed review into downloadable documents.
// Every format renders the same section structure and text as the HTML
// results page; the formats differ only in presentation.
package export

import (
	"fmt"
	"time"

	"github.com/DEFRA/content-reviewer-frontend/internal/model"
)

type Section struct {
	Title string
	Body  string
}

type Summary struct {
	OverallScore     int
	OverallStatus    string
	IssuesFound      int
	WordCount        int
	WordsToAvoid     int
	PassiveSentences int
}

// Document is the export-ready projection of a completed review.
type Document struct {
	ReviewID       string
	DocumentName   string
	ReviewDate     time.Time
	Status         string
	Model          string
	ProcessingTime string
	Summary        Summary
	Sections       []Section
	FullReviewText string
}

var scoreByStatus = map[string]int{
	"pass":                      95,
	"pass_with_recommendations": 80,
	"needs_improvement":         60,
	"fail":                      40,
}

// FromReview maps a completed review onto the export structure, filling
// placeholders for anything the backend left out.
func FromReview(review *model.Review) *Document {
	result := review.Result
	if result == nil {
		result = &model.ReviewResult{}
	}

	name := review.Filename
	if name == "" {
		name = "Unknown Document"
	}

	date := review.CreatedAt
	if review.CompletedAt != nil {
		date = *review.CompletedAt
	}

	status := result.OverallStatus
	if status == "" {
		status = "unknown"
	}

	aiModel := result.AIMetadata.Model
	if aiModel == "" {
		aiModel = "unknown"
	}

	return &Document{
		ReviewID:       review.ID,
		DocumentName:   name,
		ReviewDate:     date,
		Status:         status,
		Model:          aiModel,
		ProcessingTime: processingTime(review.CreatedAt, review.CompletedAt),
		Summary: Summary{
			OverallScore:     scoreByStatus[status],
			OverallStatus:    status,
			IssuesFound:      result.Metrics.TotalIssues,
			WordCount:        result.Metrics.WordCount,
			WordsToAvoid:     result.Metrics.WordsToAvoidCount,
			PassiveSentences: result.Metrics.PassiveSentencesCount,
		},
		Sections:       sections(result.Sections),
		FullReviewText: result.ReviewText,
	}
}

func sections(s model.ReviewSections) []Section {
	section := func(title, body, fallback string) Section {
		if body == "" {
			body = fallback
		}
		return Section{Title: title, Body: body}
	}

	return []Section{
		section("Overall Assessment", s.OverallAssessment, "No assessment available"),
		section("Content Quality", s.ContentQuality, "No data"),
		section("Plain English Review", s.PlainEnglishReview, "No data"),
		section("Style Guide Compliance", s.StyleGuideReview, "No data"),
		section("Accessibility Review", s.AccessibilityReview, "No data"),
		section("Passive Voice Analysis", s.PassiveVoiceReview, "No data"),
		section("Summary of Findings", s.SummaryOfFindings, "No data"),
		section("Example Improvements", s.ExampleImprovements, "No data"),
	}
}

func processingTime(start time.Time, end *time.Time) string {
	if start.IsZero() || end == nil {
		return "N/A"
	}

	seconds := int(end.Sub(start).Round(time.Second).Seconds())
	if seconds < 0 {
		return "N/A"
	}
	if seconds < 60 {
		return fmt.Sprintf("%d seconds", seconds)
	}
	return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
}
