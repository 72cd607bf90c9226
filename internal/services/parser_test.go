package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextUnknownExtension(t *testing.T) {
	parser := NewDocumentParser()

	text, err := parser.ExtractText("resume.txt", []byte("plain text resume"))
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestExtractTextCorruptPDF(t *testing.T) {
	parser := NewDocumentParser()

	_, err := parser.ExtractText("resume.pdf", []byte("not a pdf at all"))
	assert.Error(t, err)
}

func TestExtractTextCorruptDOCX(t *testing.T) {
	parser := NewDocumentParser()

	_, err := parser.ExtractText("resume.docx", []byte("not a docx at all"))
	assert.Error(t, err)
}
