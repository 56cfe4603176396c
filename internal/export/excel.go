package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Excel renders the document as a two-sheet workbook: summary metrics
// and the detailed review sections.
func Excel(doc *Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Summary"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}

	rows := [][2]interface{}{
		{"Document", doc.DocumentName},
		{"Review Date", doc.ReviewDate.Format("02 January 2006 15:04")},
		{"Status", doc.Status},
		{"Model", doc.Model},
		{"Processing Time", doc.ProcessingTime},
		{"Overall Score", doc.Summary.OverallScore},
		{"Overall Status", doc.Summary.OverallStatus},
		{"Issues Found", doc.Summary.IssuesFound},
		{"Word Count", doc.Summary.WordCount},
		{"Words to Avoid", doc.Summary.WordsToAvoid},
		{"Passive Sentences", doc.Summary.PassiveSentences},
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetCellValue(summarySheet, cell, row[0]); err != nil {
			return nil, err
		}
		cell = fmt.Sprintf("B%d", i+1)
		if err := f.SetCellValue(summarySheet, cell, row[1]); err != nil {
			return nil, err
		}
	}

	const sectionsSheet = "Review"
	if _, err := f.NewSheet(sectionsSheet); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sectionsSheet, "A1", "Section"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sectionsSheet, "B1", "Findings"); err != nil {
		return nil, err
	}
	for i, section := range doc.Sections {
		if err := f.SetCellValue(sectionsSheet, fmt.Sprintf("A%d", i+2), section.Title); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sectionsSheet, fmt.Sprintf("B%d", i+2), section.Body); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}
