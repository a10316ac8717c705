// Package rangeindex maintains the absolute-offset view of a document
// tree: a Fenwick (binary-indexed) tree of per-node text-storage
// contributions, and a RangeCacheItem per node recording the
// preamble/children/text/postamble lengths that contribution is made
// of.
//
// # Overview
//
// Every node that contributes bytes to text storage owns one or more
// Fenwick slots, assigned in ancestor-first pre-order: an Element owns
// two slots (its preamble, emitted before its children, and its
// postamble, emitted after), a leaf owns one (its text, or a fixed
// length for LineBreak/Decorator). The prefix sum up to a node's first
// slot is that node's absolute start location in text storage.
//
// # Dynamic growth
//
// The Fenwick tree starts at a small capacity and grows in place as
// nodes are indexed, following the policy new capacity =
// max(2×current, required+100); existing sums are preserved across a
// grow (Fenwick.ensureCapacity).
//
// # Rebuild vs incremental update
//
// Index.Rebuild performs a full pre-order walk and reassigns every
// slot from scratch, restoring the ancestor-first ordering invariant
// exactly; it is what the legacy reconciler calls after rewriting the
// whole document. Index.AllocateLeaf/AllocateElement hand out fresh slots at
// the end of the index space for nodes inserted between rebuilds, so
// the ancestor-first property holds immediately after a Rebuild but
// may drift for nodes inserted afterward — exactly the behavior the
// specification's indexing policy describes ("new nodes get fresh
// indices at the end").
package rangeindex
