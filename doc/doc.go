// Package doc defines the node tree and editor-state data model: typed
// node variants over a shared header, stable keys, and the immutable
// EditorState snapshot that pairs a node map with a selection.
//
// Mutation is not exposed here. Nodes are read through this package and
// written through doc/tx and doc/edit, which implement copy-on-write
// semantics against an EditorState. This package owns only the shape of
// the tree, not the transaction protocol around it.
package doc
