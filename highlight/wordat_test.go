package highlight

import (
	"testing"

	"github.com/zylacode/editorcore/buffer"
)

func TestWordAtMiddleOfIdentifier(t *testing.T) {
	b := buffer.NewWithText("let foobar = 1")
	word, region := WordAt(b, 6)
	if word != "foobar" {
		t.Errorf("WordAt = %q, want %q", word, "foobar")
	}
	if region.Begin() != 4 || region.End() != 10 {
		t.Errorf("region = %+v, want [4,10)", region)
	}
}

func TestWordAtOnWhitespaceReturnsEmpty(t *testing.T) {
	b := buffer.NewWithText("foo   bar")
	word, _ := WordAt(b, 5)
	if word != "" {
		t.Errorf("WordAt on whitespace = %q, want empty", word)
	}
}

func TestWordAtOutOfRangeReturnsEmpty(t *testing.T) {
	b := buffer.NewWithText("short")
	word, _ := WordAt(b, 1000)
	if word != "" {
		t.Errorf("WordAt out of range = %q, want empty", word)
	}
}
