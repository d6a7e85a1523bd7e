package highlight

import (
	"github.com/zylacode/editorcore/coretext"
)

// Classification flags, ported from view.go's CLASS_* constants.
const (
	ClassWordStart = 1 << iota
	ClassWordEnd
	ClassPunctuationStart
	ClassPunctuationEnd
	ClassSubWordStart
	ClassSubWordEnd
	ClassLineStart
	ClassLineEnd
	ClassEmptyLine
	ClassMiddleWord
)

// DefaultWordSeparators mirrors view.go's DEFAULT_SEPARATORS.
const DefaultWordSeparators = `[!"#$%&'()*+,\-./:;<=>?@\[\\\]^` + "`" + `{|}~]`

// charAt reads runes is the small adapter Classify needs: a source of
// single characters by absolute offset, decoupled from any buffer type.
type charAt func(point int) string

// Classify classifies point within a buffer of the given size, using src
// to read the single character before/after point. Ported from
// view.go's Classify, generalized off text.Region/View onto a plain
// (size, src) pair so it can run over buffer.Buffer or a raw string.
func Classify(point, size int, src charAt, wordSeparators string) int {
	if wordSeparators == "" {
		wordSeparators = DefaultWordSeparators
	}
	var a, b string
	if point > 0 {
		a = src(point - 1)
	}
	if point < size {
		b = src(point)
	}

	var res int
	if size == 0 || point < 0 || point > size {
		return 0
	}

	sep := compile(wordSeparators)
	if a == b && sep.MatchString(a) {
		return 0
	}

	upper := compile(`[A-Z]`)
	if upper.MatchString(b) && !upper.MatchString(a) {
		res |= ClassSubWordStart
		res |= ClassSubWordEnd
	}
	if a == "_" && b != "_" {
		res |= ClassSubWordStart
	}
	if b == "_" && a != "_" {
		res |= ClassSubWordEnd
	}

	word := compile(`\w`)
	space := compile(`\s`)
	if (sep.MatchString(b) || b == "") && !sep.MatchString(a) {
		res |= ClassPunctuationStart
	}
	if (sep.MatchString(a) || a == "") && !sep.MatchString(b) {
		res |= ClassPunctuationEnd
	}
	if word.MatchString(b) && (sep.MatchString(a) || space.MatchString(a) || a == "") {
		res |= ClassWordStart
	}
	if word.MatchString(a) && (sep.MatchString(b) || space.MatchString(b) || b == "") {
		res |= ClassWordEnd
	}

	if a == "\n" || a == "" {
		res |= ClassLineStart
	}
	if b == "\n" || b == "" {
		res |= ClassLineEnd
	}
	if (a == "\n" && b == "\n") || (a == "" && b == "") {
		res |= ClassEmptyLine
	}
	if word.MatchString(a) && word.MatchString(b) {
		res |= ClassMiddleWord
	}
	return res
}

// FindByClass finds the next point after (or before, if !forward) point
// matching classes. Ported from view.go's FindByClass.
func FindByClass(point, size int, forward bool, classes int, src charAt, wordSeparators string) int {
	step := -1
	if forward {
		step = 1
	}
	for p := point + step; ; p += step {
		if p <= 0 {
			return 0
		}
		if p >= size {
			return size
		}
		if Classify(p, size, src, wordSeparators)&classes != 0 {
			return p
		}
	}
}

// ExpandByClass expands r outward until both edges land on a point
// matching classes. Ported from view.go's ExpandByClass.
func ExpandByClass(r coretext.Region, size int, classes int, src charAt, wordSeparators string) coretext.Region {
	a := r.A
	if a > 0 {
		a--
	} else if a < 0 {
		a = 0
	}
	b := r.B
	if b < size {
		b++
	} else if b > size {
		b = size
	}
	for ; a > 0 && Classify(a, size, src, wordSeparators)&classes == 0; a-- {
	}
	for ; b < size && Classify(b, size, src, wordSeparators)&classes == 0; b++ {
	}
	return coretext.Region{A: a, B: b}
}
