package encoding

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.csv")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestNormalizeCharset(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ascii", "UTF-8"},
		{"ASCII", "UTF-8"},
		{"us-ascii", "UTF-8"},
		{"ISO-8859-1", "ISO-8859-1"},
		{"UTF-8", "UTF-8"},
	}

	for _, tt := range tests {
		if got := normalizeCharset(tt.in); got != tt.want {
			t.Errorf("normalizeCharset(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDetectMissingFile(t *testing.T) {
	_, _, err := Detect(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Fatal("Detect() should fail for a missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Detect() error = %v, want wrapped os.ErrNotExist", err)
	}
}

func TestDetectEmptyFileFallsBack(t *testing.T) {
	path := writeTemp(t, nil)

	charset, confidence, err := Detect(path)
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}
	if charset != CharsetUTF8SIG {
		t.Errorf("Detect() charset = %q, want %q", charset, CharsetUTF8SIG)
	}
	if confidence != 0 {
		t.Errorf("Detect() confidence = %d, want 0 for the fallback", confidence)
	}
}

func TestDetectedCharsetDecodesContent(t *testing.T) {
	content := "Caption,Location\nhéllo,Zürich\nwörld,Köln\n"
	path := writeTemp(t, []byte(content))

	charset, _, err := Detect(path)
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening fixture: %v", err)
	}
	defer f.Close()

	r, err := NewReader(f, charset)
	if err != nil {
		t.Fatalf("NewReader(%q) error: %v", charset, err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("reading decoded content: %v", err)
	}
	if string(got) != content {
		t.Errorf("decoded content = %q, want %q", got, content)
	}
}

func TestNewReaderStripsBOM(t *testing.T) {
	for _, charset := range []string{CharsetUTF8SIG, "UTF-8"} {
		in := strings.NewReader("\uFEFFCaption,Location\n")

		r, err := NewReader(in, charset)
		if err != nil {
			t.Fatalf("NewReader(%q) error: %v", charset, err)
		}
		got, err := io.ReadAll(r)
		if err != nil {
			t.Fatalf("reading: %v", err)
		}
		if string(got) != "Caption,Location\n" {
			t.Errorf("NewReader(%q) output = %q, want BOM stripped", charset, got)
		}
	}
}

func TestNewReaderLatin1(t *testing.T) {
	in := strings.NewReader("caf\xe9")

	r, err := NewReader(in, "ISO-8859-1")
	if err != nil {
		t.Fatalf("NewReader() error: %v", err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("reading: %v", err)
	}
	if string(got) != "café" {
		t.Errorf("decoded = %q, want %q", got, "café")
	}
}

func TestNewReaderInvalidUTF8IsDecodeError(t *testing.T) {
	in := strings.NewReader("ok,\xff\xfe,bad")

	r, err := NewReader(in, "UTF-8")
	if err != nil {
		t.Fatalf("NewReader() error: %v", err)
	}

	_, err = io.ReadAll(r)
	if err == nil {
		t.Fatal("reading invalid UTF-8 should fail")
	}
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("error = %v, want *DecodeError", err)
	}
	if decodeErr.Charset != "UTF-8" {
		t.Errorf("DecodeError.Charset = %q, want UTF-8", decodeErr.Charset)
	}
	if !strings.Contains(decodeErr.Error(), "actual encoding") {
		t.Errorf("DecodeError message %q should suggest checking the encoding", decodeErr.Error())
	}
}

func TestNewReaderUnknownCharset(t *testing.T) {
	_, err := NewReader(strings.NewReader("x"), "no-such-charset")
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("NewReader() error = %v, want *DecodeError", err)
	}
}
