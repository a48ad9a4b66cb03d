package ingestion

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Format is a supported resume file format.
type Format string

// Supported formats.
const (
	FormatText Format = "txt"
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// MIME types accepted by FormatFromMIME.
const (
	MIMEText = "text/plain"
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Document is the plain text of a resume file.
type Document struct {
	Text   string
	Format Format
	// PageCount is zero when the format carries no reliable page information.
	PageCount int
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".text", ".md":
		return FormatText, nil
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// FormatFromMIME picks the format from a content type. Parameters such as
// charset are ignored.
func FormatFromMIME(mime string) (Format, error) {
	base, _, _ := strings.Cut(mime, ";")
	switch strings.TrimSpace(strings.ToLower(base)) {
	case MIMEText:
		return FormatText, nil
	case MIMEPDF:
		return FormatPDF, nil
	case MIMEDOCX:
		return FormatDOCX, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, mime)
	}
}

// ReadResume reads a resume file and extracts its text.
func ReadResume(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ExtractResume(format, data)
}

// ExtractResume extracts text and page count from file bytes.
func ExtractResume(format Format, data []byte) (*Document, error) {
	var (
		doc *Document
		err error
	)
	switch format {
	case FormatText:
		doc = &Document{Text: string(data)}
	case FormatPDF:
		doc, err = extractPDF(data)
	case FormatDOCX:
		doc, err = extractDOCX(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	doc.Format = format
	doc.Text = CleanText(doc.Text)
	if doc.Text == "" {
		return nil, ErrEmptyDocument
	}
	return doc, nil
}

func extractPDF(data []byte) (*Document, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to read pdf: %w", err)
	}

	var sb strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
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
	return &Document{Text: sb.String(), PageCount: numPages}, nil
}

func extractDOCX(data []byte) (*Document, error) {
	file, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = file.Close() }()

	body := file.Editable().GetContent()
	return &Document{Text: docxText(body), PageCount: docxPageCount(body)}, nil
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>|<w:br/>|<w:br [^>]*/>|<w:cr/>`)
	docxTab          = regexp.MustCompile(`<w:tab/>`)
	xmlTag           = regexp.MustCompile(`<[^>]+>`)
	docxPageBreak    = regexp.MustCompile(`<w:br [^>]*w:type="page"[^>]*/>|<w:lastRenderedPageBreak/>`)
)

// docxText reduces document.xml to text, one paragraph per line.
func docxText(body string) string {
	body = docxParagraphEnd.ReplaceAllString(body, "\n")
	body = docxTab.ReplaceAllString(body, "\t")
	body = xmlTag.ReplaceAllString(body, "")
	return html.UnescapeString(body)
}

// docxPageCount counts explicit and last-rendered page breaks. A document
// without either reports zero so the page-length check is skipped.
func docxPageCount(body string) int {
	breaks := len(docxPageBreak.FindAllStringIndex(body, -1))
	if breaks == 0 {
		return 0
	}
	return breaks + 1
}
