package doc

// PointKind distinguishes a Point anchored inside a Text node's payload
// from one anchored between an Element's children.
type PointKind uint8

const (
	// PointText offsets index UTF-16 code units into a Text node's
	// payload.
	PointText PointKind = iota
	// PointElement offsets index a child position, in [0, childCount].
	PointElement
)

// Point is a (nodeKey, offset, kind) coordinate in the tree, the unit
// selection anchors and foci are built from.
type Point struct {
	Key    NodeKey
	Offset uint32
	Kind   PointKind
}

// TextPoint constructs a Point of kind PointText.
func TextPoint(key NodeKey, offset uint32) Point {
	return Point{Key: key, Offset: offset, Kind: PointText}
}

// ElementPoint constructs a Point of kind PointElement.
func ElementPoint(key NodeKey, childIndex uint32) Point {
	return Point{Key: key, Offset: childIndex, Kind: PointElement}
}

// Equal reports whether p and other are the same coordinate (key,
// offset, and kind). It is a pure coordinate comparison used by
// selection collapse logic; it is not itself location-aware (that
// lives in rangeindex).
func (p Point) Equal(other Point) bool {
	return p.Key == other.Key && p.Offset == other.Offset && p.Kind == other.Kind
}
