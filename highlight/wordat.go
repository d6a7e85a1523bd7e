package highlight

import (
	"github.com/zylacode/editorcore/buffer"
	"github.com/zylacode/editorcore/coretext"
)

// WordAt extracts the identifier under point, the way the LSP client needs
// for requests that accept either a position or an explicit word. Grounded
// on the original virtual editor's word-extraction helper: the word is the
// run of word characters on both sides of point. Returns ("", empty
// region) if neither the character at point nor the one before it is a
// word character.
func WordAt(b *buffer.Buffer, point int) (string, coretext.Region) {
	size := b.LenChars()
	if point < 0 || point > size {
		return "", coretext.Region{A: point, B: point}
	}
	src := func(p int) string {
		s, err := b.Slice(p, p+1)
		if err != nil {
			return ""
		}
		return s
	}
	word := compile(`\w`)
	onWord := word.MatchString(src(point)) || word.MatchString(src(point-1))
	if !onWord {
		return "", coretext.Region{A: point, B: point}
	}

	start, end := point, point
	for start > 0 && word.MatchString(src(start-1)) {
		start--
	}
	for end < size && word.MatchString(src(end)) {
		end++
	}
	text, err := b.Slice(start, end)
	if err != nil {
		return "", coretext.Region{A: point, B: point}
	}
	return text, coretext.Region{A: start, B: end}
}
