package resume

import (
	"bytes"
	"errors"
	"testing"
)

func TestTextFromFileUnsupportedType(t *testing.T) {
	for _, name := range []string{"resume.txt", "resume.doc", "resume", "resume.png"} {
		_, err := TextFromFile(name, []byte("content"))
		if !errors.Is(err, ErrUnsupportedType) {
			t.Errorf("TextFromFile(%q) err = %v, want ErrUnsupportedType", name, err)
		}
	}
}

func TestTextFromFileTooLarge(t *testing.T) {
	_, err := TextFromFile("resume.pdf", bytes.Repeat([]byte{0}, MaxFileBytes+1))
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("err = %v, want ErrFileTooLarge", err)
	}
}

func TestTextFromFileCorruptPDF(t *testing.T) {
	if _, err := TextFromFile("resume.pdf", []byte("not a pdf at all")); err == nil {
		t.Fatal("expected error for corrupt pdf")
	}
}

func TestTextFromFileCorruptDocx(t *testing.T) {
	if _, err := TextFromFile("resume.docx", []byte("not a zip archive")); err == nil {
		t.Fatal("expected error for corrupt docx")
	}
}

func TestCollapse(t *testing.T) {
	if got := collapse("  a\n\nb\t c "); got != "a b c" {
		t.Fatalf("collapse = %q", got)
	}
}
