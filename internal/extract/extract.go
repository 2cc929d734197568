package extract

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"backstage-brain-backend/internal/models"

	"github.com/ledongthuc/pdf"
)

// Text extracts the plain-text body of an uploaded document. Only PDF and
// plain-text media types are supported.
func Text(contentType string, data []byte) (string, error) {
	switch contentType {
	case models.FileTypeText:
		return fromPlainText(data)
	case models.FileTypePDF:
		return fromPDF(data)
	default:
		return "", fmt.Errorf("unsupported media type %q", contentType)
	}
}

func fromPlainText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("file is not valid UTF-8 text")
	}
	return string(data), nil
}

// fromPDF extracts text page by page. Pages that fail to parse are skipped;
// the extraction only fails when no page yields any text.
func fromPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", fmt.Errorf("no text extracted from PDF")
	}
	return out, nil
}
