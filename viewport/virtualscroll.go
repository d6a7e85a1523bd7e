package viewport

import (
	"math"

	"github.com/zylacode/editorcore/coretext"
)

// velocityThreshold is the |velocity| (lines/tick) at or below which no
// prefetch range is computed.
const velocityThreshold = 5.0

// prefetchFactor scales velocity into a prefetch window size in lines.
const prefetchFactor = 0.5

// VirtualScroll tracks scroll position and derives the visible and
// prefetch line ranges from it. Grounded on
// original_source/src/core/virtual_editor.rs's VirtualScroll struct,
// since the terminal-era backend this is adapted from has no analogous
// virtualized-scrolling component.
type VirtualScroll struct {
	scrollTop      float64
	lastScrollTop  float64
	viewportHeight float64
	lineHeight     float64
	totalLines     int
	overscan       int

	velocity      float64
	visibleRange  coretext.LineRange
	prefetchRange coretext.LineRange
}

// NewVirtualScroll returns a VirtualScroll for a viewport of the given
// pixel height, line height, overscan (extra lines rendered beyond the
// visible range on each side), and initial total line count.
func NewVirtualScroll(viewportHeight, lineHeight float64, overscan, totalLines int) *VirtualScroll {
	vs := &VirtualScroll{
		viewportHeight: viewportHeight,
		lineHeight:     lineHeight,
		overscan:       overscan,
		totalLines:     totalLines,
	}
	vs.recompute()
	return vs
}

// maxScroll is max(0, total_lines*line_height - viewport_height +
// 2*line_height); the trailing 2*line_height margin keeps the very last
// line scrollable fully into view rather than pinned to the bottom edge.
func (vs *VirtualScroll) maxScroll() float64 {
	m := float64(vs.totalLines)*vs.lineHeight - vs.viewportHeight + 2*vs.lineHeight
	if m < 0 {
		return 0
	}
	return m
}

// SetScrollTop clamps y to [0, maxScroll], estimates velocity from the
// change since the last call, and recomputes both ranges.
func (vs *VirtualScroll) SetScrollTop(y float64) {
	vs.lastScrollTop = vs.scrollTop
	clamped := y
	if clamped < 0 {
		clamped = 0
	}
	if max := vs.maxScroll(); clamped > max {
		clamped = max
	}
	vs.scrollTop = clamped
	if vs.lineHeight > 0 {
		vs.velocity = (vs.scrollTop - vs.lastScrollTop) / vs.lineHeight
	} else {
		vs.velocity = 0
	}
	vs.recompute()
}

// SetTotalLines updates the document length and recomputes both ranges.
// A prior revision of this logic (mirrored from the Rust source almost
// verbatim) updated total_lines without recomputing prefetch_range,
// leaving it stale until the next scroll event; this version always
// recomputes both together.
func (vs *VirtualScroll) SetTotalLines(n int) {
	vs.totalLines = n
	if clamped := vs.maxScroll(); vs.scrollTop > clamped {
		vs.scrollTop = clamped
	}
	vs.recompute()
}

// SetViewportHeight updates the visible pixel height and recomputes both
// ranges.
func (vs *VirtualScroll) SetViewportHeight(h float64) {
	vs.viewportHeight = h
	vs.recompute()
}

func (vs *VirtualScroll) recompute() {
	vs.visibleRange = vs.computeVisibleRange()
	vs.prefetchRange = vs.computePrefetchRange()
}

func (vs *VirtualScroll) computeVisibleRange() coretext.LineRange {
	if vs.totalLines == 0 || vs.lineHeight <= 0 {
		return coretext.LineRange{}
	}
	firstVisible := int(math.Floor(vs.scrollTop / vs.lineHeight))
	if firstVisible > vs.totalLines-1 {
		firstVisible = vs.totalLines - 1
	}
	if firstVisible < 0 {
		firstVisible = 0
	}
	lastVisible := firstVisible + int(math.Ceil(vs.viewportHeight/vs.lineHeight))
	if lastVisible > vs.totalLines {
		lastVisible = vs.totalLines
	}
	r := coretext.LineRange{Start: firstVisible - vs.overscan, End: lastVisible + vs.overscan}
	return r.Clamp(vs.totalLines)
}

func (vs *VirtualScroll) computePrefetchRange() coretext.LineRange {
	if vs.totalLines == 0 {
		return coretext.LineRange{}
	}
	v := math.Abs(vs.velocity)
	if v <= velocityThreshold {
		return coretext.LineRange{}
	}
	window := int(math.Ceil(v * prefetchFactor))
	if vs.velocity > 0 {
		r := coretext.LineRange{Start: vs.visibleRange.End, End: vs.visibleRange.End + window}
		return r.Clamp(vs.totalLines)
	}
	r := coretext.LineRange{Start: vs.visibleRange.Start - window, End: vs.visibleRange.Start}
	return r.Clamp(vs.totalLines)
}

// VisibleRange returns the current visible line range.
func (vs *VirtualScroll) VisibleRange() coretext.LineRange { return vs.visibleRange }

// PrefetchRange returns the current prefetch line range.
func (vs *VirtualScroll) PrefetchRange() coretext.LineRange { return vs.prefetchRange }

// ScrollTop returns the current clamped scroll offset.
func (vs *VirtualScroll) ScrollTop() float64 { return vs.scrollTop }

// Velocity returns the estimated scroll velocity in lines/tick.
func (vs *VirtualScroll) Velocity() float64 { return vs.velocity }

// LineAtY returns the line index under pixel offset y within the
// viewport, clamped to the last valid index.
func (vs *VirtualScroll) LineAtY(y float64) int {
	if vs.lineHeight <= 0 {
		return 0
	}
	line := int(math.Floor((vs.scrollTop + y) / vs.lineHeight))
	if line < 0 {
		return 0
	}
	if last := vs.totalLines - 1; last >= 0 && line > last {
		return last
	}
	if vs.totalLines == 0 {
		return 0
	}
	return line
}
