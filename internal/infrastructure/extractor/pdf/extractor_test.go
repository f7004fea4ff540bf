package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/kirillkom/email-triage-assistant/internal/core/domain"
)

// buildPDF writes a minimal uncompressed document with one Helvetica text run
// per page.
func buildPDF(pages []string) []byte {
	var objects []string
	objects = append(objects, "<< /Type /Catalog /Pages 2 0 R >>")

	kids := make([]string, 0, len(pages))
	for i := range pages {
		kids = append(kids, fmt.Sprintf("%d 0 R", 4+2*i))
	}
	objects = append(objects, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))
	objects = append(objects, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	for i, text := range pages {
		content := fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", text)
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefOffset)
	return buf.Bytes()
}

func TestExtractConcatenatesPagesInOrder(t *testing.T) {
	doc := buildPDF([]string{"Fatura de marco", "Vencimento sexta"})

	text, err := NewExtractor().Extract(context.Background(), "fatura.pdf", bytes.NewReader(doc))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	first := strings.Index(text, "Fatura de marco")
	second := strings.Index(text, "Vencimento sexta")
	if first < 0 || second < 0 {
		t.Fatalf("expected both pages in output, got %q", text)
	}
	if first > second {
		t.Fatalf("expected page order to be preserved, got %q", text)
	}
}

func TestExtractRejectsNonPDF(t *testing.T) {
	_, err := NewExtractor().Extract(context.Background(), "fake.pdf", strings.NewReader("definitely not a pdf"))
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
