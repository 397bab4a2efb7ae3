package extract_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dkasturi/docuchat/internal/domain/commonModels"
	"github.com/dkasturi/docuchat/internal/extract"
)

func TestFormatFor_Routing(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		expected extract.Format
	}{
		{"Plain_Text", "notes.txt", extract.FormatPlain},
		{"Pdf", "report.pdf", extract.FormatPaginated},
		{"Uppercase_Extension", "REPORT.PDF", extract.FormatPaginated},
		{"Docx", "letter.docx", extract.FormatDocx},
		{"Rtf", "legacy.rtf", extract.FormatRtf},
		{"Odt", "draft.odt", extract.FormatOdt},
		{"Unknown_Extension", "image.png", extract.FormatErr},
		{"No_Extension", "README", extract.FormatErr},
		{"Only_Inner_Dot", "archive.tar.gz", extract.FormatErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extract.FormatFor(tt.filename); got != tt.expected {
				t.Errorf("FormatFor(%q) got %v, want %v", tt.filename, got, tt.expected)
			}
		})
	}
}

func TestExtract_Plain(t *testing.T) {
	t.Run("Strips_Surrounding_Whitespace", func(t *testing.T) {
		got, err := extract.Extract([]byte("  hello world \n\n"), extract.FormatPlain)
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		if got != "hello world" {
			t.Errorf("Got %q, want %q", got, "hello world")
		}
	})

	t.Run("Keeps_Interior_Whitespace", func(t *testing.T) {
		got, err := extract.Extract([]byte("line one\n\nline two"), extract.FormatPlain)
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		if got != "line one\n\nline two" {
			t.Errorf("Interior whitespace was altered: %q", got)
		}
	})

	t.Run("Invalid_UTF8_Is_Rejected", func(t *testing.T) {
		_, err := extract.Extract([]byte{0xff, 0xfe, 0x01}, extract.FormatPlain)
		if !errors.Is(err, commonModels.ErrDecode) {
			t.Errorf("Got %v, want ErrDecode", err)
		}
	})

	t.Run("Empty_Payload_Is_Fine", func(t *testing.T) {
		got, err := extract.Extract(nil, extract.FormatPlain)
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		if got != "" {
			t.Errorf("Got %q, want empty string", got)
		}
	})
}

func TestExtract_UnsupportedFormat(t *testing.T) {
	_, err := extract.Extract([]byte("anything"), extract.FormatErr)
	if !errors.Is(err, commonModels.ErrInvalidArgument) {
		t.Errorf("Got %v, want ErrInvalidArgument", err)
	}
}

func TestExtract_MalformedPdf(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
	}{
		{"Garbage_Bytes", []byte("this is definitely not a pdf")},
		{"Empty_Payload", nil},
		{"Truncated_Header", []byte("%PDF-1.7\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extract.Extract(tt.payload, extract.FormatPaginated)
			if !errors.Is(err, commonModels.ErrMalformedDocument) {
				t.Errorf("Got %v, want ErrMalformedDocument", err)
			}
		})
	}
}

// pdfWithPages assembles a minimal valid PDF carrying one text line per
// page, with a correct cross-reference table.
func pdfWithPages(pageTexts []string) []byte {
	n := len(pageTexts)
	kids := make([]string, n)
	for i := range pageTexts {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}

	// 1 catalog, 2 page tree, 3 font, then page/content pairs
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}
	for i, text := range pageTexts {
		content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, body := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xrefPos := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefPos)
	return buf.Bytes()
}

func TestExtract_PdfPagesConcatenateInOrder(t *testing.T) {
	data := pdfWithPages([]string{"first page text", "second page text", "third page text"})

	got, err := extract.Extract(data, extract.FormatPaginated)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	// page order, no separator between pages
	want := "first page textsecond page textthird page text"
	if got != want {
		t.Errorf("Got %q, want %q", got, want)
	}
}

func TestExtract_SinglePagePdf(t *testing.T) {
	data := pdfWithPages([]string{"only page"})

	got, err := extract.Extract(data, extract.FormatPaginated)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if got != "only page" {
		t.Errorf("Got %q, want %q", got, "only page")
	}
}

func TestExtract_LargePlainDocument(t *testing.T) {
	big := strings.Repeat("paragraph of document text. ", 50_000)
	got, err := extract.Extract([]byte(big), extract.FormatPlain)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if got != strings.TrimSpace(big) {
		t.Error("Large document content was altered")
	}
}
