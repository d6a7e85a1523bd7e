package highlight

import (
	"strings"
	"sync"

	"github.com/limetext/rubex"
	"github.com/zylacode/editorcore/buffer"
)

// Style tags.
const (
	StyleKeyword    = "keyword"
	StyleFunction   = "function"
	StyleType       = "type"
	StyleString     = "string"
	StyleNumber     = "number"
	StyleComment    = "comment"
	StyleOperator   = "operator"
	StyleIdentifier = "identifier"
)

// FallbackLanguage is used when an extension has no registered language
// or when an explicit language id is unknown.
const FallbackLanguage = "plaintext"

// rule is one compiled pattern for a language: text matching re is tagged
// style, in priority order.
type rule struct {
	re    *rubex.Regexp
	style string
}

// grammar is a restartable-per-line token rule set: it carries no state
// between Tokenize calls.
type grammar struct {
	rules []rule
}

var grammarMu sync.Mutex
var grammars map[string]*grammar

func init() {
	grammars = make(map[string]*grammar)
	grammars["go"] = mustGrammar(
		rule{compile(`\b(func|package|import|return|if|else|for|range|switch|case|default|break|continue|go|defer|chan|select|struct|interface|map|type|const|var|nil|true|false|iota)\b`), StyleKeyword},
		rule{compile(`\b(string|int|int8|int16|int32|int64|uint|uint8|uint16|uint32|uint64|float32|float64|bool|byte|rune|error|any)\b`), StyleType},
		rule{compile(`//.*$`), StyleComment},
		rule{compile(`"(\\.|[^"\\])*"`), StyleString},
		rule{compile("`[^`]*`"), StyleString},
		rule{compile(`\b\d+(\.\d+)?\b`), StyleNumber},
		rule{compile(`\b[A-Za-z_][A-Za-z0-9_]*(?=\()`), StyleFunction},
		rule{compile(`[=+\-*/%<>!&|^~:]+`), StyleOperator},
		rule{compile(`\b[A-Za-z_][A-Za-z0-9_]*\b`), StyleIdentifier},
	)
	grammars["python"] = mustGrammar(
		rule{compile(`\b(def|class|import|from|return|if|elif|else|for|in|while|break|continue|pass|lambda|with|as|try|except|finally|raise|yield|async|await|None|True|False|and|or|not|is)\b`), StyleKeyword},
		rule{compile(`#.*$`), StyleComment},
		rule{compile(`"(\\.|[^"\\])*"|'(\\.|[^'\\])*'`), StyleString},
		rule{compile(`\b\d+(\.\d+)?\b`), StyleNumber},
		rule{compile(`\b[A-Za-z_][A-Za-z0-9_]*(?=\()`), StyleFunction},
		rule{compile(`[=+\-*/%<>!&|^~:]+`), StyleOperator},
		rule{compile(`\b[A-Za-z_][A-Za-z0-9_]*\b`), StyleIdentifier},
	)
	jsRules := mustGrammar(
		rule{compile(`\b(function|const|let|var|return|if|else|for|of|in|while|break|continue|class|extends|new|try|catch|finally|throw|async|await|import|from|export|default|typeof|instanceof|null|undefined|true|false)\b`), StyleKeyword},
		rule{compile(`//.*$`), StyleComment},
		rule{compile("`(\\\\.|[^`\\\\])*`"), StyleString},
		rule{compile(`"(\\.|[^"\\])*"|'(\\.|[^'\\])*'`), StyleString},
		rule{compile(`\b\d+(\.\d+)?\b`), StyleNumber},
		rule{compile(`\b[A-Za-z_][A-Za-z0-9_]*(?=\()`), StyleFunction},
		rule{compile(`[=+\-*/%<>!&|^~:]+`), StyleOperator},
		rule{compile(`\b[A-Za-z_][A-Za-z0-9_]*\b`), StyleIdentifier},
	)
	grammars["javascript"] = jsRules
	grammars["typescript"] = jsRules
	grammars["rust"] = mustGrammar(
		rule{compile(`\b(fn|let|mut|pub|struct|enum|impl|trait|match|if|else|for|in|while|loop|break|continue|return|use|mod|crate|self|Self|async|await|move|ref|dyn|as|where)\b`), StyleKeyword},
		rule{compile(`\b(i8|i16|i32|i64|isize|u8|u16|u32|u64|usize|f32|f64|bool|char|str|String|Vec|Option|Result)\b`), StyleType},
		rule{compile(`//.*$`), StyleComment},
		rule{compile(`"(\\.|[^"\\])*"`), StyleString},
		rule{compile(`\b\d+(\.\d+)?\b`), StyleNumber},
		rule{compile(`\b[A-Za-z_][A-Za-z0-9_]*(?=\()`), StyleFunction},
		rule{compile(`[=+\-*/%<>!&|^~:]+`), StyleOperator},
		rule{compile(`\b[A-Za-z_][A-Za-z0-9_]*\b`), StyleIdentifier},
	)
	grammars[FallbackLanguage] = &grammar{}
}

func compile(pattern string) *rubex.Regexp {
	re, err := rubex.Compile(pattern)
	if err != nil {
		panic("highlight: invalid builtin pattern: " + pattern)
	}
	return re
}

func mustGrammar(rules ...rule) *grammar {
	return &grammar{rules: rules}
}

// extToLanguage maps a lower-cased file extension (without the dot) to a
// language id. Unregistered extensions fall back to "plaintext".
var extToLanguage = map[string]string{
	"go":   "go",
	"py":   "python",
	"js":   "javascript",
	"jsx":  "javascript",
	"mjs":  "javascript",
	"ts":   "typescript",
	"tsx":  "typescript",
	"rs":   "rust",
	"txt":  FallbackLanguage,
	"md":   FallbackLanguage,
}

// LanguageForExtension returns the language id for a lower-cased file
// extension, or FallbackLanguage if unregistered.
func LanguageForExtension(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if lang, ok := extToLanguage[ext]; ok {
		return lang
	}
	return FallbackLanguage
}

// Highlighter is a pure (language, line_text) -> []Token tokenizer. It
// holds no per-line state: calling Tokenize on line N never depends on
// having previously tokenized line N-1, per the restartable
// requirement (multi-line constructs like block comments are approximated
// per-line rather than tracked across calls).
type Highlighter struct{}

// NewHighlighter returns a Highlighter. It carries no configuration of
// its own; language selection happens per call.
func NewHighlighter() *Highlighter {
	return &Highlighter{}
}

// Tokenize returns the ordered, non-overlapping token spans for line under
// language, falling back to an unregistered language's empty grammar
// (the whole line renders unstyled).
func (h *Highlighter) Tokenize(language, line string) []buffer.Token {
	grammarMu.Lock()
	g, ok := grammars[language]
	grammarMu.Unlock()
	if !ok {
		g = grammars[FallbackLanguage]
	}

	covered := make([]bool, len([]rune(line)))
	var tokens []buffer.Token
	runes := []rune(line)

	for _, r := range g.rules {
		locs := r.re.FindAllStringIndex(line, -1)
		for _, loc := range locs {
			start := byteToRuneIndex(line, loc[0])
			end := byteToRuneIndex(line, loc[1])
			if start < 0 || end < 0 || start >= end || end > len(runes) {
				continue
			}
			if anyCovered(covered, start, end) {
				continue
			}
			markCovered(covered, start, end)
			tokens = append(tokens, buffer.Token{Start: start, End: end, Style: r.style})
		}
	}

	sortTokens(tokens)
	return tokens
}

func byteToRuneIndex(s string, byteIdx int) int {
	count := 0
	for i := range s {
		if i >= byteIdx {
			return count
		}
		count++
	}
	return count
}

func anyCovered(covered []bool, start, end int) bool {
	for i := start; i < end; i++ {
		if covered[i] {
			return true
		}
	}
	return false
}

func markCovered(covered []bool, start, end int) {
	for i := start; i < end; i++ {
		covered[i] = true
	}
}

func sortTokens(tokens []buffer.Token) {
	for i := 1; i < len(tokens); i++ {
		for j := i; j > 0 && tokens[j].Start < tokens[j-1].Start; j-- {
			tokens[j], tokens[j-1] = tokens[j-1], tokens[j]
		}
	}
}
