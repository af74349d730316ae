// Package extract pulls plain UTF-8 text out of uploaded resume documents.
// PDF and DOCX are supported alongside raw text; everything downstream of this
// package only ever sees a string.
package extract

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// MaxFileSize caps uploaded documents at 5 MB, matching the upload widget limit.
const MaxFileSize = 5 << 20

// MIME types accepted by Text
const (
	MIMEPlainText = "text/plain"
	MIMEPDF       = "application/pdf"
	MIMEDocx      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Text extracts plain text from a document of the given MIME type.
func Text(mime string, data []byte) (string, error) {
	if int64(len(data)) > MaxFileSize {
		return "", &TooLargeError{Size: int64(len(data)), Max: MaxFileSize}
	}

	switch normalizeMIME(mime) {
	case MIMEPlainText:
		return string(data), nil
	case MIMEPDF:
		return pdfText(data)
	case MIMEDocx:
		return docxText(data)
	default:
		return "", &UnsupportedTypeError{MIME: mime}
	}
}

// MIMEForFilename guesses the document MIME type from a file extension.
// Returns an empty string for unknown extensions.
func MIMEForFilename(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".text", ".md":
		return MIMEPlainText
	case ".pdf":
		return MIMEPDF
	case ".docx":
		return MIMEDocx
	default:
		return ""
	}
}

// normalizeMIME strips parameters such as "; charset=utf-8"
func normalizeMIME(mime string) string {
	if idx := strings.Index(mime, ";"); idx >= 0 {
		mime = mime[:idx]
	}
	return strings.ToLower(strings.TrimSpace(mime))
}

func pdfText(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", &ParseError{Message: "failed to read PDF", Cause: err}
	}

	var sb strings.Builder
	for i := 1; i <= pdfReader.NumPage(); i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		// Pages that fail text extraction are skipped rather than failing
		// the whole document; scanned pages have no text layer.
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
	}

	if strings.TrimSpace(sb.String()) == "" {
		return "", &ParseError{Message: "PDF contains no extractable text"}
	}
	return sb.String(), nil
}

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ParseError{Message: "failed to parse DOCX", Cause: err}
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}
