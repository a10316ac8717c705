package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/outlinelabs/richedit/doc"
	"github.com/outlinelabs/richedit/editor"
	"github.com/outlinelabs/richedit/frontend"
	"github.com/outlinelabs/richedit/reconcile"
	"github.com/outlinelabs/richedit/serialize"
)

// loadState reads a richedit JSON document from path. A missing file is
// treated as a fresh empty document, the same way hivectl's commands
// treat a hive path as the thing being acted on rather than requiring
// it to pre-exist for every operation.
func loadState(path string) (*doc.EditorState, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		printVerbose("no document at %s, starting empty\n", path)
		return doc.NewEmptyState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	state, err := serialize.FromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return state, nil
}

// saveState writes state as JSON to dest (--out, or inPath if dest is
// empty).
func saveState(inPath, dest string, state *doc.EditorState) error {
	if dest == "" {
		dest = inPath
	}
	data, err := serialize.ToJSON(state)
	if err != nil {
		return fmt.Errorf("serializing document: %w", err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	printVerbose("wrote %s\n", dest)
	return nil
}

// newEditorOver constructs an Editor over state, writing through a
// fresh in-memory Frontend, so CLI commands exercise the same
// Update/reconcile path a real host would.
func newEditorOver(state *doc.EditorState) (*editor.Editor, *frontend.MemoryStorage, error) {
	storage := frontend.NewMemoryStorage()
	e, err := editor.New(storage, editor.Config{Mode: reconcile.ModeOptimized, SanityChecks: true})
	if err != nil {
		return nil, nil, err
	}
	if err := e.SetEditorState(state); err != nil {
		return nil, nil, err
	}
	return e, storage, nil
}

// resolvePath walks path (dot-separated child indices, e.g. "0.2") from
// the document root and returns the key it reaches. An empty path
// resolves to the root itself.
func resolvePath(state *doc.EditorState, path string) (doc.NodeKey, error) {
	key := doc.RootKey
	if path == "" {
		return key, nil
	}
	for _, part := range strings.Split(path, ".") {
		idx, err := strconv.Atoi(part)
		if err != nil {
			return 0, fmt.Errorf("invalid path segment %q: %w", part, err)
		}
		n, ok := state.Get(key)
		if !ok {
			return 0, doc.ErrKeyNotFound
		}
		children := doc.ChildrenOf(n)
		if idx < 0 || idx >= len(children) {
			return 0, fmt.Errorf("path segment %d out of range (%d children)", idx, len(children))
		}
		key = children[idx]
	}
	return key, nil
}
