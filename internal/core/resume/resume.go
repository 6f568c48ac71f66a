// Package resume pulls plain text out of uploaded resume files.
package resume

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// MaxFileBytes caps uploaded resume size.
const MaxFileBytes = 5 << 20

var (
	ErrUnsupportedType = errors.New("unsupported file type. Upload PDF or DOCX")
	ErrFileTooLarge    = fmt.Errorf("resume file exceeds %d bytes", MaxFileBytes)
	ErrEmptyText       = errors.New("could not read any text from the resume file")

	xmlTagRe = regexp.MustCompile(`<[^>]+>`)
)

// TextFromFile extracts readable text from a PDF or DOCX resume.
func TextFromFile(fileName string, data []byte) (string, error) {
	if len(data) > MaxFileBytes {
		return "", ErrFileTooLarge
	}
	var (
		text string
		err  error
	)
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		text, err = pdfText(data)
	case ".docx":
		text, err = docxText(data)
	default:
		return "", ErrUnsupportedType
	}
	if err != nil {
		return "", err
	}
	text = collapse(text)
	if text == "" {
		return "", ErrEmptyText
	}
	return text, nil
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	return buf.String(), nil
}

func docxText(data []byte) (string, error) {
	reader, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}
	defer reader.Close()
	// GetContent returns the document XML; strip the markup
	content := reader.Editable().GetContent()
	return xmlTagRe.ReplaceAllString(content, " "), nil
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
