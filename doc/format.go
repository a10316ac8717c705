package doc

// TextFormat is a bitset of inline character formatting flags carried by
// a Text node.
type TextFormat uint16

const (
	FormatBold TextFormat = 1 << iota
	FormatItalic
	FormatUnderline
	FormatStrikethrough
	FormatCode
	FormatSubscript
	FormatSuperscript
)

// Has reports whether all bits in want are set in f.
func (f TextFormat) Has(want TextFormat) bool { return f&want == want }

// TextMode selects how a Text node participates in normalization and
// caret navigation.
type TextMode uint8

const (
	// ModeNormal text may merge with mergeable siblings and splits
	// freely at any offset.
	ModeNormal TextMode = iota
	// ModeToken text is atomic: it is never merged with a sibling and
	// the caret skips over it as a single unit.
	ModeToken
	// ModeSegmented text is divided into externally-meaningful segments
	// (e.g. a hashtag); it behaves like token text for merge purposes
	// but may still expose internal segment boundaries to the host.
	ModeSegmented
)

// DetailFlag is a bitset of secondary text-node attributes that do not
// affect layout but do affect editing behavior (e.g. whether trailing
// whitespace introduced by autocomplete should be trimmed on blur).
type DetailFlag uint8

const (
	DetailTrimmable DetailFlag = 1 << iota
	DetailDirectionless
	DetailUnmergeable
)

// ElementFormat is the block-level alignment of an Element node.
type ElementFormat uint8

const (
	ElementFormatStart ElementFormat = iota
	ElementFormatLeft
	ElementFormatCenter
	ElementFormatRight
	ElementFormatJustify
	ElementFormatEnd
)

// Direction is the writing direction of an Element subtree.
type Direction uint8

const (
	DirectionLTR Direction = iota
	DirectionRTL
)

// ElementTag names the concrete subvariant of an Element node (paragraph,
// heading, quote, code block, list, list-item, or a user-defined type).
// It is a free-form string rather than a closed enum because plugins
// register their own element tags; the built-ins are special-cased only
// by IsBlock, and doc/edit has no per-tag preUpdate/postUpdate hooks.
type ElementTag string

const (
	TagParagraph ElementTag = "paragraph"
	TagHeading   ElementTag = "heading"
	TagQuote     ElementTag = "quote"
	TagCodeBlock ElementTag = "code-block"
	TagList      ElementTag = "list"
	TagListItem  ElementTag = "list-item"
	TagRoot      ElementTag = "root"
	TagGeneric   ElementTag = "element"
)

// IsBlock reports whether tag denotes a block-level element, i.e. one
// whose default postamble contributes a trailing newline when followed
// by another block sibling (§6 "Text-storage byte semantics").
func (t ElementTag) IsBlock() bool {
	switch t {
	case TagParagraph, TagHeading, TagQuote, TagCodeBlock, TagList, TagListItem, TagRoot:
		return true
	default:
		return false
	}
}
