// Package extract turns uploaded email files into plain text.
package extract

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"golang.org/x/text/encoding/charmap"

	infralogger "github.com/jonesrussell/north-cloud/email-classifier/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/domain"
)

// Supported upload extensions.
const (
	ExtText = ".txt"
	ExtPDF  = ".pdf"
)

// SupportedFormats lists the accepted extensions in display order.
var SupportedFormats = []string{ExtText, ExtPDF}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var disableConfigDir sync.Once

// Extractor converts uploads to text. It is safe for concurrent use.
type Extractor struct {
	logger infralogger.Logger
}

// New creates an extractor.
func New(logger infralogger.Logger) *Extractor {
	// Keep pdfcpu from writing a configuration directory on first use.
	disableConfigDir.Do(api.DisableConfigDir)
	return &Extractor{logger: logger}
}

// Extract returns the text of an upload. The extension decides the format; anything
// other than .txt or .pdf is domain.ErrUnsupportedFormat. Unreadable content yields ""
// and no error.
func (e *Extractor) Extract(filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ExtText:
		return DecodeText(data), nil
	case ExtPDF:
		return e.PDFText(data), nil
	default:
		return "", fmt.Errorf("extract %q: %w", filename, domain.ErrUnsupportedFormat)
	}
}

// DecodeText decodes UTF-8, falling back to Windows-1252 when the bytes are not valid UTF-8.
func DecodeText(data []byte) string {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data)
	}

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), "")
	}
	return string(decoded)
}

// PDFText extracts the plain text of every page, one page per line. Pages that fail to
// parse contribute an empty line.
func (e *Extractor) PDFText(data []byte) string {
	if pages, err := api.PageCount(bytes.NewReader(data), nil); err != nil {
		e.logger.Debug("PDF validation failed", infralogger.Error(err))
	} else {
		e.logger.Debug("PDF received", infralogger.Int("pages", pages), infralogger.Int("bytes", len(data)))
	}

	reader, err := openPDF(data)
	if err != nil {
		e.logger.Warn("PDF could not be opened", infralogger.Error(err))
		return ""
	}

	total := e.numPages(reader)
	texts := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		texts = append(texts, e.pageText(reader, i))
	}

	return strings.TrimSpace(strings.Join(texts, "\n"))
}

func openPDF(data []byte) (reader *pdf.Reader, err error) {
	defer func() {
		if r := recover(); r != nil {
			reader, err = nil, fmt.Errorf("open pdf: %v", r)
		}
	}()
	return pdf.NewReader(bytes.NewReader(data), int64(len(data)))
}

func (e *Extractor) numPages(reader *pdf.Reader) (n int) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("PDF page tree unreadable", infralogger.Any("panic", r))
			n = 0
		}
	}()
	return reader.NumPage()
}

// pageText recovers from malformed pages: the PDF library panics on some broken streams.
func (e *Extractor) pageText(reader *pdf.Reader, num int) (text string) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("PDF page extraction panicked",
				infralogger.Int("page", num),
				infralogger.Any("panic", r),
			)
			text = ""
		}
	}()

	page := reader.Page(num)
	if page.V.IsNull() {
		return ""
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		e.logger.Warn("PDF page extraction failed", infralogger.Int("page", num), infralogger.Error(err))
		return ""
	}
	return text
}
