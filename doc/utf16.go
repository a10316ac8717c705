package doc

import "unicode/utf16"

// UTF16Len returns the number of UTF-16 code units s would occupy once
// encoded, matching the indexing unit used throughout this package for
// Point offsets and range-cache lengths (native attributed strings are
// UTF-16 on the platforms this core targets).
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// UTF16Slice returns the substring of s spanning UTF-16 code units
// [start, end). Both bounds must fall on code-unit boundaries; splitting
// a surrogate pair is the caller's responsibility to avoid (see
// SplitText, which only accepts caller-supplied offsets).
func UTF16Slice(s string, start, end int) string {
	units := utf16.Encode([]rune(s))
	if start < 0 {
		start = 0
	}
	if end > len(units) {
		end = len(units)
	}
	if start >= end {
		return ""
	}
	return string(utf16.Decode(units[start:end]))
}

// UTF16CodeUnits encodes s into its UTF-16 code units.
func UTF16CodeUnits(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// FromUTF16CodeUnits decodes UTF-16 code units back into a string.
func FromUTF16CodeUnits(units []uint16) string {
	return string(utf16.Decode(units))
}
