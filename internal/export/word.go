package export

import (
	"bytes"
	"fmt"

	"github.com/fumiama/go-docx"
)

// Word renders the document as a .docx download with the same section
// structure as the PDF and HTML views.
func Word(doc *Document) ([]byte, error) {
	w := docx.New().WithDefaultTheme()

	title := w.AddParagraph().Justification("center")
	title.AddText("Content Review Results").Size("36").Bold()

	w.AddParagraph().AddText("Document Information").Size("28").Bold()
	info := [][2]string{
		{"Document", doc.DocumentName},
		{"Review Date", doc.ReviewDate.Format("02 January 2006 15:04")},
		{"Status", doc.Status},
		{"Model", doc.Model},
		{"Processing Time", doc.ProcessingTime},
	}
	for _, row := range info {
		p := w.AddParagraph()
		p.AddText(row[0] + ": ").Bold()
		p.AddText(row[1])
	}

	w.AddParagraph().AddText("Summary").Size("28").Bold()
	summary := [][2]string{
		{"Overall Score", fmt.Sprintf("%d/100", doc.Summary.OverallScore)},
		{"Overall Status", doc.Summary.OverallStatus},
		{"Issues Found", fmt.Sprintf("%d", doc.Summary.IssuesFound)},
		{"Word Count", fmt.Sprintf("%d", doc.Summary.WordCount)},
		{"Words to Avoid", fmt.Sprintf("%d", doc.Summary.WordsToAvoid)},
		{"Passive Sentences", fmt.Sprintf("%d", doc.Summary.PassiveSentences)},
	}
	for _, row := range summary {
		p := w.AddParagraph()
		p.AddText(row[0] + ": ").Bold()
		p.AddText(row[1])
	}

	w.AddParagraph().AddText("Detailed Review").Size("28").Bold()
	for _, section := range doc.Sections {
		w.AddParagraph().AddText(section.Title).Size("24").Bold()
		w.AddParagraph().AddText(section.Body)
	}

	if doc.FullReviewText != "" {
		w.AddParagraph().AddText("Full Review").Size("28").Bold()
		w.AddParagraph().AddText(doc.FullReviewText)
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to render Word document: %w", err)
	}
	return buf.Bytes(), nil
}
