package diagnostics

import (
	"fmt"

	"github.com/outlinelabs/richedit/doc"
	"github.com/outlinelabs/richedit/rangeindex"
)

// Violation describes one failed invariant. Key is the zero NodeKey
// for a document-wide check that is not scoped to a single node.
type Violation struct {
	Check  string
	Key    doc.NodeKey
	Detail string
}

func (v Violation) Error() string {
	if v.Key != doc.RootKey {
		return fmt.Sprintf("%s: key=%d: %s", v.Check, v.Key, v.Detail)
	}
	return fmt.Sprintf("%s: %s", v.Check, v.Detail)
}

// CheckState re-verifies the structural invariants doc, rangeindex and
// reconcile are each independently responsible for maintaining. It
// trusts none of their internal bookkeeping: every check recomputes
// its expectation from state and idx's public surface and compares it
// against what idx actually reports.
//
// storageLength is the host's current text-storage length in UTF-16
// code units (e.g. the UTF-16 length of MemoryStorage.Text()); pass -1 to skip
// the storage cross-check when no Frontend is wired up yet.
//
// CheckState never mutates state or idx. It returns nil when every
// invariant holds.
func CheckState(state *doc.EditorState, idx *rangeindex.Index, storageLength int64) []Violation {
	var violations []Violation
	violations = append(violations, checkParentChildConsistency(state)...)
	violations = append(violations, checkTotalLength(state, idx, storageLength)...)
	violations = append(violations, checkNodeStarts(state, idx)...)
	violations = append(violations, checkFenwickSelfConsistency(idx)...)
	violations = append(violations, checkPointRoundTrip(state, idx)...)
	return violations
}

// checkParentChildConsistency walks every node reachable from Root and
// confirms each child's Header.Parent() names its actual container,
// and that Root itself claims no parent.
func checkParentChildConsistency(state *doc.EditorState) []Violation {
	var violations []Violation
	_, hasParent := state.Root().Parent()
	if hasParent {
		violations = append(violations, Violation{Check: "parent-child", Key: doc.RootKey, Detail: "root must not have a parent"})
	}

	err := doc.Walk(state, func(n doc.Node) error {
		for _, c := range doc.ChildrenOf(n) {
			child, ok := state.Get(c)
			if !ok {
				violations = append(violations, Violation{Check: "parent-child", Key: c, Detail: "child key not present in node map"})
				continue
			}
			parent, ok := child.Parent()
			if !ok {
				violations = append(violations, Violation{Check: "parent-child", Key: c, Detail: "child has no parent back-reference"})
				continue
			}
			if parent != n.Key() {
				violations = append(violations, Violation{Check: "parent-child", Key: c, Detail: fmt.Sprintf("back-reference points at %d, actual parent is %d", parent, n.Key())})
			}
		}
		return nil
	})
	if err != nil {
		violations = append(violations, Violation{Check: "parent-child", Detail: err.Error()})
	}
	return violations
}

// checkTotalLength compares idx's Fenwick total, and optionally the
// host's storage length, against a from-scratch traversal of state via
// rangeindex.ContributionOf.
func checkTotalLength(state *doc.EditorState, idx *rangeindex.Index, storageLength int64) []Violation {
	var violations []Violation
	expected, err := rangeindex.ContributionOf(state, doc.RootKey, false)
	if err != nil {
		return []Violation{{Check: "total-length", Detail: err.Error()}}
	}
	if int64(expected) != idx.TotalLength() {
		violations = append(violations, Violation{
			Check:  "total-length",
			Detail: fmt.Sprintf("traversal length %d, index total %d", expected, idx.TotalLength()),
		})
	}
	if storageLength >= 0 && storageLength != int64(expected) {
		violations = append(violations, Violation{
			Check:  "total-length",
			Detail: fmt.Sprintf("traversal length %d, storage length %d", expected, storageLength),
		})
	}
	return violations
}

// checkNodeStarts recomputes every node's absolute start location by
// an independent pre-order walk mirroring Index.Rebuild's own
// traversal order, and compares each against idx.StartOf.
func checkNodeStarts(state *doc.EditorState, idx *rangeindex.Index) []Violation {
	var violations []Violation
	var running int64

	var walkChildren func(children []doc.NodeKey) error
	var walk func(key doc.NodeKey, followedByBlockSibling bool) error

	walk = func(key doc.NodeKey, followedByBlockSibling bool) error {
		n, ok := state.Get(key)
		if !ok {
			return doc.ErrKeyNotFound
		}

		got, err := idx.StartOf(key)
		if err != nil {
			violations = append(violations, Violation{Check: "node-start", Key: key, Detail: err.Error()})
		} else if got != running {
			violations = append(violations, Violation{
				Check:  "node-start",
				Key:    key,
				Detail: fmt.Sprintf("traversal start %d, index StartOf %d", running, got),
			})
		}

		switch v := n.(type) {
		case *doc.RootNode:
			return walkChildren(v.Children)
		case *doc.ElementNode:
			if err := walkChildren(v.Children); err != nil {
				return err
			}
			if v.Tag.IsBlock() && followedByBlockSibling {
				running++
			}
			return nil
		case *doc.TextNode:
			running += int64(v.TextLength())
			return nil
		case *doc.LineBreakNode, *doc.DecoratorNode:
			running++
			return nil
		case *doc.UnknownNode:
			return walkChildren(v.Children)
		default:
			return doc.ErrKeyNotFound
		}
	}

	walkChildren = func(children []doc.NodeKey) error {
		for i, c := range children {
			followedByBlock := false
			if i+1 < len(children) {
				if next, ok := state.Get(children[i+1]); ok {
					if el, ok := next.(*doc.ElementNode); ok && el.Tag.IsBlock() {
						followedByBlock = true
					}
				}
			}
			if err := walk(c, followedByBlock); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(doc.RootKey, false); err != nil {
		violations = append(violations, Violation{Check: "node-start", Detail: err.Error()})
	}
	return violations
}

// checkFenwickSelfConsistency verifies PrefixSum and
// FindFirstIndexWithPrefix agree with each other at the document's
// total: PrefixSum(lastSlot) must equal the total, and
// FindFirstIndexWithPrefix(total) must land at or past that slot.
func checkFenwickSelfConsistency(idx *rangeindex.Index) []Violation {
	var violations []Violation
	fw := idx.Fenwick()
	total := fw.Total()

	lastSlot := fw.Len() - 1
	if lastSlot >= 0 && fw.PrefixSum(lastSlot) != total {
		violations = append(violations, Violation{
			Check:  "fenwick-total",
			Detail: fmt.Sprintf("PrefixSum(%d)=%d, Total()=%d", lastSlot, fw.PrefixSum(lastSlot), total),
		})
	}

	if total > 0 {
		found := fw.FindFirstIndexWithPrefix(total)
		if found > lastSlot {
			violations = append(violations, Violation{
				Check:  "fenwick-find-first",
				Detail: fmt.Sprintf("FindFirstIndexWithPrefix(%d)=%d exceeds last slot %d", total, found, lastSlot),
			})
		}
		if fw.PrefixSum(found) < total {
			violations = append(violations, Violation{
				Check:  "fenwick-find-first",
				Detail: fmt.Sprintf("slot %d has PrefixSum %d, short of total %d", found, fw.PrefixSum(found), total),
			})
		}
	}
	return violations
}

// checkPointRoundTrip resolves every Text node's start and end offsets
// to an absolute location and back, confirming
// StringLocationForPoint/PointAtStringLocation round-trip to the same
// absolute location. Whether the resolved point names the same node and
// offset is not checked.
func checkPointRoundTrip(state *doc.EditorState, idx *rangeindex.Index) []Violation {
	var violations []Violation
	err := doc.Walk(state, func(n doc.Node) error {
		t, ok := n.(*doc.TextNode)
		if !ok {
			return nil
		}
		for _, offset := range []int{0, t.TextLength()} {
			p := doc.Point{Kind: doc.PointText, Key: t.Key(), Offset: uint32(offset)}
			loc, err := rangeindex.StringLocationForPoint(state, idx, p)
			if err != nil {
				violations = append(violations, Violation{Check: "point-roundtrip", Key: t.Key(), Detail: err.Error()})
				continue
			}
			back, err := rangeindex.PointAtStringLocation(state, idx, loc, rangeindex.AffinityForward)
			if err != nil {
				violations = append(violations, Violation{Check: "point-roundtrip", Key: t.Key(), Detail: err.Error()})
				continue
			}
			backLoc, err := rangeindex.StringLocationForPoint(state, idx, back)
			if err != nil {
				violations = append(violations, Violation{Check: "point-roundtrip", Key: t.Key(), Detail: err.Error()})
				continue
			}
			if backLoc != loc {
				violations = append(violations, Violation{
					Check:  "point-roundtrip",
					Key:    t.Key(),
					Detail: fmt.Sprintf("location %d round-tripped to %d", loc, backLoc),
				})
			}
		}
		return nil
	})
	if err != nil {
		violations = append(violations, Violation{Check: "point-roundtrip", Detail: err.Error()})
	}
	return violations
}
