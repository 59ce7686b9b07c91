package extract_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	infralogger "github.com/jonesrussell/north-cloud/email-classifier/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/domain"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/extract"
)

// buildPDF writes a minimal single-font PDF with one text line per page.
func buildPDF(t *testing.T, pages ...string) []byte {
	t.Helper()

	var objects []string
	kids := ""
	n := len(pages)
	// 1 catalog, 2 pages, 3 font, then page and content pairs.
	for i := range n {
		kids += fmt.Sprintf("%d 0 R ", 4+2*i)
	}
	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids, n),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	)
	for i, text := range pages {
		stream := fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", text)
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
				"/Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func newExtractor() *extract.Extractor {
	return extract.New(infralogger.NewNop())
}

func TestExtract_Text(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{name: "utf-8", data: []byte("Solicitação de atualização"), want: "Solicitação de atualização"},
		{name: "utf-8 with BOM", data: append([]byte{0xEF, 0xBB, 0xBF}, "Olá"...), want: "Olá"},
		{name: "windows-1252", data: []byte{'S', 'i', 't', 'u', 'a', 0xE7, 0xE3, 'o'}, want: "Situação"},
		{name: "empty", data: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := newExtractor().Extract("email.TXT", tt.data)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Extract() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtract_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"email.docx", "email", "email.pdf.exe"} {
		_, err := newExtractor().Extract(name, []byte("conteúdo"))
		if !errors.Is(err, domain.ErrUnsupportedFormat) {
			t.Errorf("Extract(%q) err = %v, want ErrUnsupportedFormat", name, err)
		}
	}
}

func TestExtract_PDF(t *testing.T) {
	t.Parallel()

	data := buildPDF(t, "Segue em anexo o relatorio", "Qual o status do pedido")

	got, err := newExtractor().Extract("email.pdf", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Contains([]byte(got), []byte("Segue em anexo o relatorio")) {
		t.Errorf("first page missing from %q", got)
	}
	if !bytes.Contains([]byte(got), []byte("Qual o status do pedido")) {
		t.Errorf("second page missing from %q", got)
	}
}

func TestExtract_CorruptPDFDegradesToEmpty(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{nil, []byte("not a pdf"), []byte("%PDF-1.4\ngarbage")} {
		got, err := newExtractor().Extract("email.pdf", data)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if got != "" {
			t.Errorf("Extract(corrupt) = %q, want empty", got)
		}
	}
}
