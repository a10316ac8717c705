package rangeindex

// Range is a half-open span [Start, End) of absolute UTF-16 code-unit
// locations in text storage.
type Range struct {
	Start int64
	End   int64
}

// Len returns the number of code units the range spans.
func (r Range) Len() int64 { return r.End - r.Start }

// Empty reports whether the range spans zero code units.
func (r Range) Empty() bool { return r.Start >= r.End }
