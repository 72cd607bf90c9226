package services

import (
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const (
	reportMargin    = 40.0
	bodyFontSize    = 12.0
	titleFontSize   = 16.0
	suggestionStep  = 18.0
	summaryLineStep = 15.0
)

// ReportRenderer lays out a review into a paginated PDF document.
type ReportRenderer interface {
	Render(resumeFilename string, score *int, suggestions []string, summary, outPath string) error
}

type reportRenderer struct{}

func NewReportRenderer() ReportRenderer {
	return &reportRenderer{}
}

// Render implements ReportRenderer. Wrapping measures rendered string width
// against the content width and breaks at word boundaries, so no word is
// ever split. Page breaks re-apply the body font.
func (r *reportRenderer) Render(resumeFilename string, score *int, suggestions []string, summary, outPath string) error {
	doc := gofpdf.New("P", "pt", "Letter", "")
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	pageWidth, pageHeight := doc.GetPageSize()
	maxWidth := pageWidth - 2*reportMargin
	bottom := pageHeight - reportMargin

	y := reportMargin
	doc.SetFont("Helvetica", "B", titleFontSize)
	doc.Text(reportMargin, y, fmt.Sprintf("AI Resume Review for: %s", resumeFilename))
	y += 30

	doc.SetFont("Helvetica", "", bodyFontSize)
	scoreLine := "Score: N/A"
	if score != nil {
		scoreLine = fmt.Sprintf("Score: %d", *score)
	}
	doc.Text(reportMargin, y, scoreLine)
	y += 25

	doc.Text(reportMargin, y, "Suggestions:")
	y += 20
	for idx, suggestion := range suggestions {
		for _, line := range wrapText(doc, fmt.Sprintf("%d. %s", idx+1, suggestion), maxWidth-20) {
			doc.Text(reportMargin+20, y, line)
			y += suggestionStep
			if y > bottom {
				doc.AddPage()
				doc.SetFont("Helvetica", "", bodyFontSize)
				y = reportMargin
			}
		}
	}
	y += 10
	if y > bottom {
		doc.AddPage()
		doc.SetFont("Helvetica", "", bodyFontSize)
		y = reportMargin
	}

	doc.Text(reportMargin, y, "Summary:")
	y += 20
	for _, line := range wrapText(doc, summary, maxWidth-20) {
		doc.Text(reportMargin+20, y, line)
		y += summaryLineStep
		if y > bottom {
			doc.AddPage()
			doc.SetFont("Helvetica", "", bodyFontSize)
			y = reportMargin
		}
	}

	if err := doc.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}

// wrapText splits text into lines no wider than maxWidth in the document's
// current font, breaking at word boundaries only.
func wrapText(doc *gofpdf.Fpdf, text string, maxWidth float64) []string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		line := ""
		for _, word := range strings.Fields(paragraph) {
			candidate := strings.TrimSpace(line + " " + word)
			if doc.GetStringWidth(candidate) <= maxWidth {
				line = candidate
				continue
			}

			if line != "" {
				lines = append(lines, line)
			}
			line = word
		}
		if line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}
