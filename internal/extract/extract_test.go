package extract

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"
)

func buildDOCX(t *testing.T, paragraphs []string) []byte {
	t.Helper()
	var body strings.Builder
	body.WriteString(`<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := f.Write([]byte(body.String())); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestTextFromDOCX(t *testing.T) {
	raw := buildDOCX(t, []string{
		"First paragraph about methodology.",
		"Second paragraph about results.",
	})
	got, err := Text(raw, "submission.docx")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(got, "First paragraph about methodology.") {
		t.Fatalf("missing first paragraph: %q", got)
	}
	if !strings.Contains(got, "\n\n") {
		t.Fatalf("expected paragraph break between docx paragraphs: %q", got)
	}
}

func TestTextFromPlainText(t *testing.T) {
	raw := []byte("line one\n\n\n\nline two")
	got, err := Text(raw, "notes.txt")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got != "line one\n\nline two" {
		t.Fatalf("expected collapsed paragraph break, got %q", got)
	}
}

func TestTextUnsupportedExtension(t *testing.T) {
	if _, err := Text([]byte("anything"), "image.png"); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}
}

func TestTextCorruptPDF(t *testing.T) {
	if _, err := Text([]byte("not a pdf at all"), "broken.pdf"); err == nil {
		t.Fatalf("expected error for corrupt pdf bytes")
	}
}

func TestTextCorruptDOCX(t *testing.T) {
	if _, err := Text([]byte("not a zip"), "broken.docx"); err == nil {
		t.Fatalf("expected error for corrupt docx bytes")
	}
}
