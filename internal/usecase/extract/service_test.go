package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"unicode/utf8"
)

// fakeStore serves canned objects from a map.
type fakeStore struct {
	objects map[string][]byte
}

func (f *fakeStore) GetObject(_ context.Context, objectName string) (io.ReadCloser, error) {
	data, ok := f.objects[objectName]
	if !ok {
		return nil, fmt.Errorf("object %q not found", objectName)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func newTestService(objects map[string][]byte) *Service {
	return NewService(&fakeStore{objects: objects}, nil)
}

func TestExtract_PlainText(t *testing.T) {
	svc := newTestService(map[string][]byte{
		"attachments/notes.txt": []byte("line one\nline two"),
	})

	result := svc.Extract(context.Background(), "attachments/notes.txt", "notes.txt", "text/plain")
	if !result.Success {
		t.Fatalf("expected success, got error %q", result.Error)
	}
	if result.ExtractedText != "line one\nline two" {
		t.Fatalf("expected passthrough, got %q", result.ExtractedText)
	}
	if result.FileName != "notes.txt" || result.FileType != "text/plain" {
		t.Fatalf("metadata not echoed: %+v", result)
	}
}

func TestExtract_UnknownTypeValidUTF8(t *testing.T) {
	svc := newTestService(map[string][]byte{
		"attachments/data.bin": []byte("readable content"),
	})

	result := svc.Extract(context.Background(), "attachments/data.bin", "data.bin", "application/octet-stream")
	if !result.Success {
		t.Fatalf("expected valid UTF-8 to pass through, got %q", result.Error)
	}
	if result.ExtractedText != "readable content" {
		t.Fatalf("unexpected text %q", result.ExtractedText)
	}
}

func TestExtract_Truncation(t *testing.T) {
	long := strings.Repeat("段", MaxExtractedChars+500)
	svc := newTestService(map[string][]byte{
		"attachments/long.txt": []byte(long),
	})

	result := svc.Extract(context.Background(), "attachments/long.txt", "long.txt", "text/plain")
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Error)
	}
	if n := utf8.RuneCountInString(result.ExtractedText); n != MaxExtractedChars {
		t.Fatalf("expected %d runes, got %d", MaxExtractedChars, n)
	}
	if !utf8.ValidString(result.ExtractedText) {
		t.Fatal("truncation must not split a rune")
	}
}

func TestExtract_ShortTextNotTruncated(t *testing.T) {
	svc := newTestService(map[string][]byte{
		"attachments/short.txt": []byte("short"),
	})

	result := svc.Extract(context.Background(), "attachments/short.txt", "short.txt", "text/plain")
	if result.ExtractedText != "short" {
		t.Fatalf("unexpected text %q", result.ExtractedText)
	}
}

func TestExtract_MissingObjectYieldsPlaceholder(t *testing.T) {
	svc := newTestService(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // avoid waiting out the retry window

	result := svc.Extract(ctx, "attachments/gone.pdf", "budget.pdf", "application/pdf")
	if result.Success {
		t.Fatal("expected failure")
	}
	if result.ExtractedText != "[Error extracting text from budget.pdf]" {
		t.Fatalf("unexpected placeholder %q", result.ExtractedText)
	}
	if result.Error == "" {
		t.Fatal("expected error detail in the envelope")
	}
}

func TestExtract_ImageYieldsPlaceholder(t *testing.T) {
	svc := newTestService(map[string][]byte{
		"attachments/pic.png": {0x89, 0x50, 0x4e, 0x47},
	})

	result := svc.Extract(context.Background(), "attachments/pic.png", "pic.png", "image/png")
	if result.Success {
		t.Fatal("expected failure for image attachment")
	}
	if result.ExtractedText != "[Error extracting text from pic.png]" {
		t.Fatalf("unexpected placeholder %q", result.ExtractedText)
	}
}

func TestExtract_CorruptPDFYieldsPlaceholder(t *testing.T) {
	svc := newTestService(map[string][]byte{
		"attachments/bad.pdf": []byte("%PDF-1.7 but then garbage"),
	})

	result := svc.Extract(context.Background(), "attachments/bad.pdf", "bad.pdf", "application/pdf")
	if result.Success {
		t.Fatal("expected failure for corrupt PDF")
	}
	if !strings.Contains(result.ExtractedText, "bad.pdf") {
		t.Fatalf("placeholder must name the file: %q", result.ExtractedText)
	}
}

func TestDetectKind(t *testing.T) {
	cases := []struct {
		fileName string
		fileType string
		expected attachmentKind
	}{
		{"a.txt", "text/plain", kindText},
		{"a.md", "", kindText},
		{"a.pdf", "application/pdf", kindPDF},
		{"report", "application/pdf", kindPDF},
		{"a.docx", "", kindDocx},
		{"a.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", kindDocx},
		{"a.png", "image/png", kindImage},
		{"a.jpeg", "", kindImage},
		{"mystery", "application/octet-stream", kindUnknown},
	}
	for _, tc := range cases {
		if got := detectKind(tc.fileName, tc.fileType); got != tc.expected {
			t.Fatalf("%s/%s: expected %d, got %d", tc.fileName, tc.fileType, tc.expected, got)
		}
	}
}
