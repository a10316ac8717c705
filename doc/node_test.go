package doc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyAllocatorNeverReusesKeys(t *testing.T) {
	alloc := NewKeyAllocator()
	seen := make(map[NodeKey]bool)
	for i := 0; i < 1000; i++ {
		k := alloc.Next()
		require.False(t, seen[k], "key %d issued twice", k)
		require.NotEqual(t, RootKey, k)
		seen[k] = true
	}
}

func TestElementCloneIsDeepEnoughForCoW(t *testing.T) {
	el := NewElement(1, TagParagraph)
	el.Children = []NodeKey{2, 3}

	cloned := el.clone().(*ElementNode)
	cloned.Children[0] = 99

	require.Equal(t, NodeKey(2), el.Children[0], "mutating the clone's slice must not affect the original")
	require.Equal(t, el.Version()+1, cloned.Version())
}

func TestTextMergeableWith(t *testing.T) {
	a := NewText(1, "ab")
	b := NewText(2, "cd")
	require.True(t, a.MergeableWith(b))

	b.Format = FormatBold
	require.False(t, a.MergeableWith(b))

	b.Format = 0
	b.Mode = ModeToken
	require.False(t, a.MergeableWith(b))
}

func TestDecoratorAttachmentChar(t *testing.T) {
	require.Equal(t, 1, UTF16Len(string(rune(DecoratorAttachmentChar))))
}
