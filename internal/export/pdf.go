package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// PDF renders the document as a PDF download.
func PDF(doc *Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "Content Review Results", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Document Information", "B", 1, "L", false, 0, "")
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 11)
	info := [][2]string{
		{"Document", doc.DocumentName},
		{"Review Date", doc.ReviewDate.Format("02 January 2006 15:04")},
		{"Status", doc.Status},
		{"Model", doc.Model},
		{"Processing Time", doc.ProcessingTime},
	}
	for _, row := range info {
		pdf.CellFormat(0, 6, fmt.Sprintf("%s: %s", row[0], row[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Summary", "B", 1, "L", false, 0, "")
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 11)
	summary := [][2]string{
		{"Overall Score", fmt.Sprintf("%d/100", doc.Summary.OverallScore)},
		{"Overall Status", doc.Summary.OverallStatus},
		{"Issues Found", fmt.Sprintf("%d", doc.Summary.IssuesFound)},
		{"Word Count", fmt.Sprintf("%d", doc.Summary.WordCount)},
		{"Words to Avoid", fmt.Sprintf("%d", doc.Summary.WordsToAvoid)},
		{"Passive Sentences", fmt.Sprintf("%d", doc.Summary.PassiveSentences)},
	}
	for _, row := range summary {
		pdf.CellFormat(0, 6, fmt.Sprintf("%s: %s", row[0], row[1]), "", 1, "L", false, 0, "")
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Detailed Review", "B", 1, "L", false, 0, "")
	pdf.Ln(2)

	for _, section := range doc.Sections {
		// Keep the heading with at least a few lines of its body.
		if pdf.GetY() > 250 {
			pdf.AddPage()
		}
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 7, section.Title, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, section.Body, "", "L", false)
		pdf.Ln(3)
	}

	if doc.FullReviewText != "" {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 8, "Full Review", "B", 1, "L", false, 0, "")
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, doc.FullReviewText, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
