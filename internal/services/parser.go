package services

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
	"github.com/ledongthuc/pdf"
)

const docxMimeType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// DocumentParser extracts plain text from uploaded resume files. The
// filename is used only for extension sniffing; unknown extensions yield an
// empty string and no error, callers reject empty output.
type DocumentParser interface {
	ExtractText(filename string, data []byte) (string, error)
}

type documentParser struct{}

func NewDocumentParser() DocumentParser {
	return &documentParser{}
}

// ExtractText implements DocumentParser.
func (p *documentParser) ExtractText(filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return p.extractPDF(data)
	case ".docx":
		return p.extractDOCX(data)
	default:
		return "", nil
	}
}

func (p *documentParser) extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Log error but continue with other pages
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	return textBuilder.String(), nil
}

func (p *documentParser) extractDOCX(data []byte) (string, error) {
	res, err := docconv.Convert(bytes.NewReader(data), docxMimeType, true)
	if err != nil {
		return "", fmt.Errorf("failed to parse DOCX: %w", err)
	}

	return res.Body, nil
}
