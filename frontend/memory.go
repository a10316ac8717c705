package frontend

import (
	"strings"
	"sync"

	"github.com/outlinelabs/richedit/doc"
	"github.com/outlinelabs/richedit/rangeindex"
	"github.com/outlinelabs/richedit/selection"
)

// attributeRun is a half-open code-unit span carrying a single
// attribute set. Runs are kept sorted by Start and never overlap.
type attributeRun struct {
	Start, End int64
	Attrs      map[string]any
}

// MemoryStorage is an in-process attributed UTF-16 buffer: a flat
// string plus an attribute run-list, standing in for a host's native
// text storage. It implements Frontend in full, so it doubles as the
// StorageWriter the reconciler writes through and the NativeMover
// selection defers word/line/vertical movement to.
type MemoryStorage struct {
	mu   sync.Mutex
	text string
	runs []attributeRun

	lastSelection   doc.BaseSelection
	nativeRange     rangeindex.Range
	updatingNative  bool
	markedRange     *rangeindex.Range
	markedAttrs     map[string]any
	decoratorHost   any
	layoutWidth     float64
}

// NewMemoryStorage returns an empty buffer.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Text returns the buffer's current contents.
func (m *MemoryStorage) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

func (m *MemoryStorage) Replace(rng rangeindex.Range, text string, attrs map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := int64(doc.UTF16Len(m.text))
	if rng.Start < 0 || rng.End > total || rng.Start > rng.End {
		return ErrRangeOutOfBounds
	}
	before := doc.UTF16Slice(m.text, 0, int(rng.Start))
	after := doc.UTF16Slice(m.text, int(rng.End), int(total))
	m.text = before + text + after

	delta := int64(doc.UTF16Len(text)) - (rng.End - rng.Start)
	m.runs = spliceRuns(m.runs, rng, int64(doc.UTF16Len(text)), attrs, delta)
	return nil
}

func (m *MemoryStorage) Insert(location int64, text string, attrs map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := int64(doc.UTF16Len(m.text))
	if location < 0 || location > total {
		return ErrRangeOutOfBounds
	}
	before := doc.UTF16Slice(m.text, 0, int(location))
	after := doc.UTF16Slice(m.text, int(location), int(total))
	m.text = before + text + after

	rng := rangeindex.Range{Start: location, End: location}
	m.runs = spliceRuns(m.runs, rng, int64(doc.UTF16Len(text)), attrs, int64(doc.UTF16Len(text)))
	return nil
}

func (m *MemoryStorage) Delete(rng rangeindex.Range) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := int64(doc.UTF16Len(m.text))
	if rng.Start < 0 || rng.End > total || rng.Start > rng.End {
		return ErrRangeOutOfBounds
	}
	before := doc.UTF16Slice(m.text, 0, int(rng.Start))
	after := doc.UTF16Slice(m.text, int(rng.End), int(total))
	m.text = before + after

	m.runs = spliceRuns(m.runs, rng, 0, nil, rng.Start-rng.End)
	return nil
}

func (m *MemoryStorage) SetAttributes(attrs map[string]any, rng rangeindex.Range) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := int64(doc.UTF16Len(m.text))
	if rng.Start < 0 || rng.End > total || rng.Start > rng.End {
		return ErrRangeOutOfBounds
	}
	m.runs = overwriteRunAttrs(m.runs, rng, attrs)
	return nil
}

// Snapshot and Restore satisfy reconcile.Transactional, letting
// ReconcileOptimized or dark-launch parity checking roll back a failed
// or discarded batch.
type memorySnapshot struct {
	text string
	runs []attributeRun
}

func (m *MemoryStorage) Snapshot() any {
	m.mu.Lock()
	defer m.mu.Unlock()
	runsCopy := make([]attributeRun, len(m.runs))
	copy(runsCopy, m.runs)
	return memorySnapshot{text: m.text, runs: runsCopy}
}

func (m *MemoryStorage) Restore(snapshot any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := snapshot.(memorySnapshot)
	m.text = s.text
	m.runs = s.runs
}

func (m *MemoryStorage) UpdateNativeSelection(sel doc.BaseSelection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastSelection = sel
	return nil
}

// SetNativeRange records the absolute code-unit span MoveNativeSelection
// treats as the current native selection. Resolving the core's
// Point-based selection into an absolute range is rangeindex's job, not
// this storage's. The editor package does not call this; the host (or a
// test) calls it before a word/line/vertical movement through
// selection.Modify.
func (m *MemoryStorage) SetNativeRange(rng rangeindex.Range) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nativeRange = rng
}

func (m *MemoryStorage) IsUpdatingNativeSelection() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updatingNative
}

func (m *MemoryStorage) SetUpdatingNativeSelection(updating bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updatingNative = updating
}

func (m *MemoryStorage) SetMarkedText(text string, attrs map[string]any, selected rangeindex.Range) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.markedRange = &selected
	m.markedAttrs = attrs
	return nil
}

func (m *MemoryStorage) UnmarkText() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.markedRange == nil {
		return ErrNoMarkedText
	}
	m.markedRange = nil
	m.markedAttrs = nil
	return nil
}

// MoveNativeSelection implements word and line granularity over the
// flat buffer with a plain whitespace/newline scan, and treats vertical
// movement as a line-boundary jump since this storage has no text
// layout to derive real line geometry from. It is a reference
// implementation, not a text-layout engine: a real host answers this
// from its own line fragments and word-break locale data.
func (m *MemoryStorage) MoveNativeSelection(kind selection.MoveKind, direction selection.Direction, granularity selection.Granularity) (rangeindex.Range, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	units := doc.UTF16CodeUnits(m.text)
	cur := m.nativeRange
	forward := direction == selection.DirectionRight || direction == selection.DirectionDown

	var loc int64
	if forward {
		loc = cur.End
	} else {
		loc = cur.Start
	}

	var newLoc int64
	switch granularity {
	case selection.GranularityWord:
		newLoc = scanWordBoundary(units, loc, forward)
	default:
		newLoc = scanLineBoundary(units, loc, forward)
	}

	if kind == selection.MoveExtend {
		if forward {
			return rangeindex.Range{Start: cur.Start, End: newLoc}, nil
		}
		return rangeindex.Range{Start: newLoc, End: cur.End}, nil
	}
	return rangeindex.Range{Start: newLoc, End: newLoc}, nil
}

func scanWordBoundary(units []uint16, loc int64, forward bool) int64 {
	isSpace := func(u uint16) bool { return u == ' ' || u == '\t' || u == '\n' }
	n := int64(len(units))
	if forward {
		i := loc
		for i < n && isSpace(units[i]) {
			i++
		}
		for i < n && !isSpace(units[i]) {
			i++
		}
		return i
	}
	i := loc
	for i > 0 && isSpace(units[i-1]) {
		i--
	}
	for i > 0 && !isSpace(units[i-1]) {
		i--
	}
	return i
}

func scanLineBoundary(units []uint16, loc int64, forward bool) int64 {
	n := int64(len(units))
	if forward {
		i := loc
		for i < n && units[i] != '\n' {
			i++
		}
		return i
	}
	i := loc
	for i > 0 && units[i-1] != '\n' {
		i--
	}
	return i
}

func spliceRuns(runs []attributeRun, rng rangeindex.Range, newLen int64, attrs map[string]any, delta int64) []attributeRun {
	var out []attributeRun
	for _, r := range runs {
		switch {
		case r.End <= rng.Start:
			out = append(out, r)
		case r.Start >= rng.End:
			out = append(out, attributeRun{Start: r.Start + delta, End: r.End + delta, Attrs: r.Attrs})
		default:
			if r.Start < rng.Start {
				out = append(out, attributeRun{Start: r.Start, End: rng.Start, Attrs: r.Attrs})
			}
			if r.End > rng.End {
				out = append(out, attributeRun{Start: rng.End + delta, End: r.End + delta, Attrs: r.Attrs})
			}
		}
	}
	if newLen > 0 && attrs != nil {
		out = append(out, attributeRun{Start: rng.Start, End: rng.Start + newLen, Attrs: attrs})
	}
	return sortRuns(out)
}

func overwriteRunAttrs(runs []attributeRun, rng rangeindex.Range, attrs map[string]any) []attributeRun {
	var out []attributeRun
	for _, r := range runs {
		switch {
		case r.End <= rng.Start || r.Start >= rng.End:
			out = append(out, r)
		default:
			if r.Start < rng.Start {
				out = append(out, attributeRun{Start: r.Start, End: rng.Start, Attrs: r.Attrs})
			}
			if r.End > rng.End {
				out = append(out, attributeRun{Start: rng.End, End: r.End, Attrs: r.Attrs})
			}
		}
	}
	out = append(out, attributeRun{Start: rng.Start, End: rng.End, Attrs: attrs})
	return sortRuns(out)
}

func sortRuns(runs []attributeRun) []attributeRun {
	for i := 1; i < len(runs); i++ {
		for j := i; j > 0 && runs[j].Start < runs[j-1].Start; j-- {
			runs[j], runs[j-1] = runs[j-1], runs[j]
		}
	}
	return runs
}

// DecoratorHost returns the host-provided container decorator nodes
// render into; the core never interprets it.
func (m *MemoryStorage) DecoratorHost() any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.decoratorHost
}

// SetDecoratorHost records the host's decorator container.
func (m *MemoryStorage) SetDecoratorHost(host any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decoratorHost = host
}

// TextLayoutWidth returns the width word-wrap should measure against.
func (m *MemoryStorage) TextLayoutWidth() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.layoutWidth
}

// SetTextLayoutWidth sets the width MoveNativeSelection's vertical
// movement would measure line-wrapping against in a real layout-aware
// host; this in-memory reference never wraps, so it only records the
// value for callers that want to assert on it.
func (m *MemoryStorage) SetTextLayoutWidth(w float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.layoutWidth = w
}

// AttributesAt returns the attribute set covering location, or nil if
// none is set there.
func (m *MemoryStorage) AttributesAt(location int64) map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.runs {
		if location >= r.Start && location < r.End {
			return r.Attrs
		}
	}
	return nil
}

// Dump renders the buffer for debugging. When the native selection is
// collapsed, a '|' marks the caret; a non-collapsed selection is not
// marked.
func (m *MemoryStorage) Dump() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.nativeRange.Start == m.nativeRange.End {
		units := doc.UTF16CodeUnits(m.text)
		var b strings.Builder
		b.WriteString(doc.FromUTF16CodeUnits(units[:m.nativeRange.Start]))
		b.WriteByte('|')
		b.WriteString(doc.FromUTF16CodeUnits(units[m.nativeRange.Start:]))
		return b.String()
	}
	return m.text
}
