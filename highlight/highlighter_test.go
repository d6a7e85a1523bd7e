package highlight

import "testing"

func TestTokenizeGoKeywordAndString(t *testing.T) {
	h := NewHighlighter()
	tokens := h.Tokenize("go", `func main() { s := "hi" }`)

	var gotKeyword, gotString bool
	for _, tok := range tokens {
		switch tok.Style {
		case StyleKeyword:
			gotKeyword = true
		case StyleString:
			gotString = true
		}
	}
	if !gotKeyword {
		t.Error("expected a keyword token for \"func\"")
	}
	if !gotString {
		t.Error("expected a string token for \"hi\"")
	}
}

func TestTokenizeUnknownLanguageFallsBackToPlaintext(t *testing.T) {
	h := NewHighlighter()
	tokens := h.Tokenize("some-unregistered-language", "func main() {}")
	if len(tokens) != 0 {
		t.Errorf("fallback grammar should produce no tokens, got %d", len(tokens))
	}
}

func TestTokensDoNotOverlap(t *testing.T) {
	h := NewHighlighter()
	tokens := h.Tokenize("go", `const x = "func() {}"`)
	for i := 1; i < len(tokens); i++ {
		if tokens[i].Start < tokens[i-1].End {
			t.Errorf("token %+v overlaps previous token %+v", tokens[i], tokens[i-1])
		}
	}
}

func TestLanguageForExtensionFallback(t *testing.T) {
	if got := LanguageForExtension("go"); got != "go" {
		t.Errorf("LanguageForExtension(\"go\") = %q, want \"go\"", got)
	}
	if got := LanguageForExtension(".PY"); got != "python" {
		t.Errorf("LanguageForExtension(\".PY\") = %q, want \"python\"", got)
	}
	if got := LanguageForExtension("xyz"); got != FallbackLanguage {
		t.Errorf("LanguageForExtension(\"xyz\") = %q, want %q", got, FallbackLanguage)
	}
}
