package buffer

import "github.com/zylacode/editorcore/coretext"

// Token is one highlighted span within a line:
// a half-open [Start, End) character range tagged with a style.
type Token struct {
	Start, End int
	Style      string
}

// cacheEntry is a cached token stream plus the buffer version it was
// produced against, so a late-arriving async write can be checked for
// staleness per §4.6.
type cacheEntry struct {
	tokens  []Token
	version uint64
}

// HighlightCache maps line index to its rendered token stream. It is owned
// by one Buffer and is not persisted across tab lifetime.
type HighlightCache struct {
	lines map[int]cacheEntry
}

func newHighlightCache() *HighlightCache {
	return &HighlightCache{lines: make(map[int]cacheEntry)}
}

// Get returns the cached tokens for line, if any.
func (c *HighlightCache) Get(line int) ([]Token, bool) {
	e, ok := c.lines[line]
	if !ok {
		return nil, false
	}
	return e.tokens, true
}

// Put stores tokens for line tagged with version, but only if the slot is
// currently empty or version equals currentVersion. Returns false (and
// does not write) when version differs from currentVersion and the slot
// is already occupied.
//
// This is the version check that guards against staleness: an async highlight
// worker writes its result only if the buffer's current version equals
// the job's version, or the cache slot is still empty.
func (c *HighlightCache) Put(line int, tokens []Token, version uint64, currentVersion uint64) bool {
	_, slotEmpty := c.lines[line]
	slotEmpty = !slotEmpty
	if version != currentVersion && !slotEmpty {
		return false
	}
	c.lines[line] = cacheEntry{tokens: tokens, version: version}
	return true
}

// Has reports whether line has a cached entry.
func (c *HighlightCache) Has(line int) bool {
	_, ok := c.lines[line]
	return ok
}

// InvalidateRange removes cache entries for every line in [r.Start, r.End).
func (c *HighlightCache) InvalidateRange(r coretext.LineRange) {
	for l := r.Start; l < r.End; l++ {
		delete(c.lines, l)
	}
}

// Trim retains only entries within [visibleStart-margin, visibleEnd+margin],
// per trim_cache.
func (c *HighlightCache) Trim(visibleStart, visibleEnd, margin int) {
	lo := visibleStart - margin
	hi := visibleEnd + margin
	for line := range c.lines {
		if line < lo || line > hi {
			delete(c.lines, line)
		}
	}
}

// Len returns the number of cached lines, mostly useful for tests.
func (c *HighlightCache) Len() int {
	return len(c.lines)
}
