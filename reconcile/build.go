package reconcile

import (
	"github.com/outlinelabs/richedit/doc"
	"github.com/outlinelabs/richedit/doc/tx"
	"github.com/outlinelabs/richedit/rangeindex"
)

// BuildDeltaBatch implements Stage 1 (keyed diff, folded into a single
// pass over the transaction's dirty set rather than a separate
// per-parent diff pass — dirty entries already name exactly the
// inserted/removed/mutated keys) and Stage 2 (delta emission,
// Order()). idx must still reflect the pre-batch (committed) layout:
// callers run this before Stage 4 patches it.
func BuildDeltaBatch(committed, pending *doc.EditorState, dirty map[doc.NodeKey]tx.DirtyCause, idx *rangeindex.Index) (*DeltaBatch, error) {
	batch := &DeltaBatch{}

	for key, cause := range dirty {
		switch cause {
		case tx.DirtyRemoved:
			d, err := deletionDelta(committed, idx, key)
			if err != nil {
				return nil, err
			}
			if n, ok := committed.Get(key); ok {
				if parentKey, has := n.Parent(); has && dirty[parentKey] == tx.DirtyRemoved {
					// Covered by the removed ancestor's own deletion
					// range; the empty range still lets Stage 4 vacate
					// this key's index slots.
					d.Range.End = d.Range.Start
				}
			}
			batch.Deltas = append(batch.Deltas, d)

		case tx.DirtyCreated:
			if n, ok := pending.Get(key); ok {
				if parentKey, has := n.Parent(); has {
					if parentCause, parentDirty := dirty[parentKey]; parentDirty && parentCause == tx.DirtyCreated {
						// Covered by the ancestor's own insertion delta,
						// which renders this key's content recursively.
						continue
					}
				}
			}
			d, err := insertionDelta(pending, idx, key)
			if err != nil {
				return nil, err
			}
			batch.Deltas = append(batch.Deltas, d)

		case tx.DirtyMutated:
			ds, err := mutationDelta(committed, pending, idx, key)
			if err != nil {
				return nil, err
			}
			batch.Deltas = append(batch.Deltas, ds...)
		}
	}

	batch.Order()
	return batch, nil
}

func deletionDelta(committed *doc.EditorState, idx *rangeindex.Index, key doc.NodeKey) (ReconcilerDelta, error) {
	start, err := idx.StartOf(key)
	if err != nil {
		return ReconcilerDelta{}, err
	}
	item, ok := idx.Get(key)
	if !ok {
		return ReconcilerDelta{}, rangeindex.ErrNodeNotIndexed
	}
	end := start + int64(item.TotalContribution())

	isDecorator := false
	if n, ok := committed.Get(key); ok {
		_, isDecorator = n.(*doc.DecoratorNode)
	}

	return ReconcilerDelta{
		Kind:        DeltaNodeDeletion,
		Key:         key,
		Range:       rangeindex.Range{Start: start, End: end},
		IsDecorator: isDecorator,
	}, nil
}

func insertionDelta(pending *doc.EditorState, idx *rangeindex.Index, key doc.NodeKey) (ReconcilerDelta, error) {
	n, ok := pending.Get(key)
	if !ok {
		return ReconcilerDelta{}, doc.ErrKeyNotFound
	}
	parentKey, has := n.Parent()
	if !has {
		return ReconcilerDelta{}, doc.ErrParentMissing
	}
	parentNode, ok := pending.Get(parentKey)
	if !ok {
		return ReconcilerDelta{}, doc.ErrKeyNotFound
	}
	siblings := doc.ChildrenOf(parentNode)
	at := indexOfKey(siblings, key)
	if at < 0 {
		return ReconcilerDelta{}, doc.ErrKeyNotFound
	}

	location, err := idx.StartOf(parentKey)
	if err != nil {
		location = 0
	}
	if parentItem, ok := idx.Get(parentKey); ok {
		location += int64(parentItem.PreambleLength)
	}
	for i := 0; i < at; i++ {
		sib := siblings[i]
		if item, ok := idx.Get(sib); ok {
			location += int64(item.TotalContribution())
			continue
		}
		followedByBlock := i+1 < len(siblings) && isBlockElement(pending, siblings[i+1])
		c, err := rangeindex.ContributionOf(pending, sib, followedByBlock)
		if err != nil {
			return ReconcilerDelta{}, err
		}
		location += int64(c)
	}

	followedByBlock := at+1 < len(siblings) && isBlockElement(pending, siblings[at+1])
	pre, content, post, isDecorator, err := RenderSubtree(pending, key, followedByBlock)
	if err != nil {
		return ReconcilerDelta{}, err
	}

	return ReconcilerDelta{
		Kind:                   DeltaNodeInsertion,
		Key:                    key,
		Location:               location,
		Preamble:               pre,
		Content:                content,
		Postamble:              post,
		IsDecorator:            isDecorator,
		FollowedByBlockSibling: followedByBlock,
	}, nil
}

// mutationDelta computes the delta(s) a DirtyMutated key needs. A node
// reparented since the committed state (selection/delete.go's merge
// cascade does this when it folds a node into a surviving sibling's
// subtree) is handled before any type-specific diffing: its content at
// the old location is gone and must be deleted there, then reinserted
// at wherever it now lives, the same as if it had been removed and
// recreated. Everything else keeps its single-delta shape.
func mutationDelta(committed, pending *doc.EditorState, idx *rangeindex.Index, key doc.NodeKey) ([]ReconcilerDelta, error) {
	newNode, ok := pending.Get(key)
	if !ok {
		return nil, doc.ErrKeyNotFound
	}
	oldNode, hadCommitted := committed.Get(key)

	if _, isRoot := newNode.(*doc.RootNode); isRoot {
		// Root has no preamble, postamble or text of its own; the dirty
		// entries of its inserted/removed/mutated children carry every
		// storage change beneath it.
		return nil, nil
	}

	if hadCommitted {
		oldParent, oldHas := oldNode.Parent()
		newParent, newHas := newNode.Parent()
		if oldHas != newHas || oldParent != newParent {
			del, err := deletionDelta(committed, idx, key)
			if err != nil {
				return nil, err
			}
			ins, err := insertionDelta(pending, idx, key)
			if err != nil {
				return nil, err
			}
			return []ReconcilerDelta{del, ins}, nil
		}
	}

	start, startErr := idx.StartOf(key)
	item, hasItem := idx.Get(key)
	var nodeRange rangeindex.Range
	if startErr == nil && hasItem {
		nodeRange = rangeindex.Range{Start: start, End: start + int64(item.TotalContribution())}
	}

	if newText, isText := newNode.(*doc.TextNode); isText {
		if oldText, wasText := oldNode.(*doc.TextNode); hadCommitted && wasText {
			if oldText.Text != newText.Text {
				textRange := nodeRange
				return []ReconcilerDelta{{Kind: DeltaTextUpdate, Key: key, Range: textRange, NewText: newText.Text}}, nil
			}
			if oldText.Format != newText.Format || oldText.Style != newText.Style {
				return []ReconcilerDelta{{Kind: DeltaAttributeChange, Key: key, Range: nodeRange}}, nil
			}
		}
		return []ReconcilerDelta{{Kind: DeltaAnchorUpdate, Key: key}}, nil
	}

	if newEl, isElement := newNode.(*doc.ElementNode); isElement {
		if oldEl, wasElement := oldNode.(*doc.ElementNode); hadCommitted && wasElement {
			d := DiffChildren(oldEl.Children, newEl.Children)
			if len(d.Inserted) == 0 && len(d.Deleted) == 0 && d.Reordered {
				// Same child set, new order: the children themselves are
				// unmoved in text storage (their own dirty entries, if
				// any, cover that); only anchors resolved against this
				// parent's child order need revisiting.
				return []ReconcilerDelta{{Kind: DeltaAnchorUpdate, Key: key}}, nil
			}
		}
		return []ReconcilerDelta{{Kind: DeltaAttributeChange, Key: key, Range: nodeRange}}, nil
	}

	return []ReconcilerDelta{{Kind: DeltaAnchorUpdate, Key: key}}, nil
}

func indexOfKey(keys []doc.NodeKey, key doc.NodeKey) int {
	for i, k := range keys {
		if k == key {
			return i
		}
	}
	return -1
}
