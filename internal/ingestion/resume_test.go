package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"resume.txt", FormatText, false},
		{"RESUME.PDF", FormatPDF, false},
		{"/tmp/cv.docx", FormatDOCX, false},
		{"notes.md", FormatText, false},
		{"resume.doc", "", true},
		{"resume", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatFromMIME(t *testing.T) {
	got, err := FormatFromMIME("text/plain; charset=utf-8")
	require.NoError(t, err)
	assert.Equal(t, FormatText, got)

	got, err = FormatFromMIME(MIMEDOCX)
	require.NoError(t, err)
	assert.Equal(t, FormatDOCX, got)

	_, err = FormatFromMIME("image/png")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestReadResume_Text(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Jane Doe\r\n\r\n\r\n\r\nExperience\r\n- Built   APIs"), 0644))

	doc, err := ReadResume(path)
	require.NoError(t, err)
	assert.Equal(t, FormatText, doc.Format)
	assert.Equal(t, 0, doc.PageCount)
	assert.Equal(t, "Jane Doe\n\nExperience\n- Built   APIs", doc.Text)
}

func TestReadResume_Missing(t *testing.T) {
	_, err := ReadResume(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestExtractResume_Empty(t *testing.T) {
	_, err := ExtractResume(FormatText, []byte("  \n "))
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestExtractResume_CorruptPDF(t *testing.T) {
	_, err := ExtractResume(FormatPDF, []byte("not a pdf file at all"))
	assert.ErrorIs(t, err, ErrContentExtractionFailed)
}

func TestExtractResume_CorruptDOCX(t *testing.T) {
	_, err := ExtractResume(FormatDOCX, []byte("not a zip"))
	assert.ErrorIs(t, err, ErrContentExtractionFailed)
}

func TestExtractResume_UnknownFormat(t *testing.T) {
	_, err := ExtractResume(Format("rtf"), []byte("text"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDocxText(t *testing.T) {
	body := `<w:body><w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Go</w:t><w:tab/><w:t>R&amp;D</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Line one</w:t><w:br/><w:t>Line two</w:t></w:r></w:p></w:body>`

	assert.Equal(t, "Jane Doe\nGo\tR&D\nLine one\nLine two\n", docxText(body))
}

func TestDocxPageCount(t *testing.T) {
	assert.Equal(t, 0, docxPageCount(`<w:p><w:r><w:t>one page</w:t></w:r></w:p>`))
	assert.Equal(t, 2, docxPageCount(`<w:p/><w:r><w:br w:type="page"/></w:r><w:p/>`))
	assert.Equal(t, 3, docxPageCount(`<w:lastRenderedPageBreak/><w:r><w:br w:type="page"/></w:r>`))
}
