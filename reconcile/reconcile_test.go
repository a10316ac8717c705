package reconcile

import (
	"errors"
	"testing"

	"github.com/outlinelabs/richedit/doc"
	"github.com/outlinelabs/richedit/doc/tx"
	"github.com/outlinelabs/richedit/rangeindex"
	"github.com/stretchr/testify/require"
)

// buildTwoParagraphDoc mirrors rangeindex's fixture: root > p1("hi") ,
// p2("bye"), with p1 followed by a block sibling so it carries a
// one-unit postamble.
func buildTwoParagraphDoc() (*doc.EditorState, doc.NodeKey, doc.NodeKey) {
	s := doc.NewEmptyState()
	keys := doc.NewKeyAllocator()

	p1 := doc.NewElement(keys.Next(), doc.TagParagraph)
	t1 := doc.NewText(keys.Next(), "hi")
	doc.SetParent(t1, p1.Key())
	p1.Children = []doc.NodeKey{t1.Key()}
	doc.SetParent(p1, doc.RootKey)

	p2 := doc.NewElement(keys.Next(), doc.TagParagraph)
	t2 := doc.NewText(keys.Next(), "bye")
	doc.SetParent(t2, p2.Key())
	p2.Children = []doc.NodeKey{t2.Key()}
	doc.SetParent(p2, doc.RootKey)

	root := s.Root()
	root.Children = []doc.NodeKey{p1.Key(), p2.Key()}
	s.NodeMap[p1.Key()] = p1
	s.NodeMap[t1.Key()] = t1
	s.NodeMap[p2.Key()] = p2
	s.NodeMap[t2.Key()] = t2

	return s, p1.Key(), p2.Key()
}

func TestRenderSubtreeFlattensWithBlockPostamble(t *testing.T) {
	s, _, _ := buildTwoParagraphDoc()
	_, content, _, _, err := RenderSubtree(s, doc.RootKey, false)
	require.NoError(t, err)
	require.Equal(t, "hi\nbye", content)
}

func TestDiffChildrenDetectsInsertDeleteReorder(t *testing.T) {
	a, b, c := doc.NodeKey(1), doc.NodeKey(2), doc.NodeKey(3)

	d := DiffChildren([]doc.NodeKey{a, b}, []doc.NodeKey{a, b, c})
	require.Equal(t, []doc.NodeKey{c}, d.Inserted)
	require.Empty(t, d.Deleted)
	require.False(t, d.Reordered)

	d = DiffChildren([]doc.NodeKey{a, b, c}, []doc.NodeKey{b, c})
	require.Empty(t, d.Inserted)
	require.Equal(t, []doc.NodeKey{a}, d.Deleted)

	d = DiffChildren([]doc.NodeKey{a, b, c}, []doc.NodeKey{c, b, a})
	require.Empty(t, d.Inserted)
	require.Empty(t, d.Deleted)
	require.True(t, d.Reordered)
}

// fakeStorage is an in-memory StorageWriter + Transactional test
// double. Offsets are treated as byte offsets, which coincides with
// UTF-16 code-unit offsets for the ASCII fixtures these tests use.
type fakeStorage struct {
	content   string
	failOn    DeltaKind
	shouldErr bool
}

func (f *fakeStorage) Replace(rng rangeindex.Range, text string, attrs map[string]any) error {
	if f.shouldErr && f.failOn == DeltaTextUpdate {
		return errors.New("fakeStorage: forced Replace failure")
	}
	if rng.Start < 0 || rng.End > int64(len(f.content)) || rng.Start > rng.End {
		return errors.New("fakeStorage: Replace range out of bounds")
	}
	f.content = f.content[:rng.Start] + text + f.content[rng.End:]
	return nil
}

func (f *fakeStorage) Insert(location int64, text string, attrs map[string]any) error {
	if f.shouldErr && f.failOn == DeltaNodeInsertion {
		return errors.New("fakeStorage: forced Insert failure")
	}
	if location < 0 || location > int64(len(f.content)) {
		return errors.New("fakeStorage: Insert location out of bounds")
	}
	f.content = f.content[:location] + text + f.content[location:]
	return nil
}

func (f *fakeStorage) Delete(rng rangeindex.Range) error {
	if f.shouldErr && f.failOn == DeltaNodeDeletion {
		return errors.New("fakeStorage: forced Delete failure")
	}
	if rng.Start < 0 || rng.End > int64(len(f.content)) || rng.Start > rng.End {
		return errors.New("fakeStorage: Delete range out of bounds")
	}
	f.content = f.content[:rng.Start] + f.content[rng.End:]
	return nil
}

func (f *fakeStorage) SetAttributes(attrs map[string]any, rng rangeindex.Range) error {
	if f.shouldErr && f.failOn == DeltaAttributeChange {
		return errors.New("fakeStorage: forced SetAttributes failure")
	}
	return nil
}

func (f *fakeStorage) Snapshot() any { return f.content }

func (f *fakeStorage) Restore(snapshot any) { f.content = snapshot.(string) }

func newTxOnEmptyRoot() (*tx.Transaction, *doc.KeyAllocator, *doc.EditorState) {
	committed := doc.NewEmptyState()
	keys := doc.NewKeyAllocator()
	return tx.Begin(committed, keys), keys, committed
}

func TestBuildDeltaBatchSkipsChildOfNewlyCreatedParent(t *testing.T) {
	txn, _, committed := newTxOnEmptyRoot()

	pKey, err := txn.CreateKey()
	require.NoError(t, err)
	p := doc.NewElement(pKey, doc.TagParagraph)
	require.NoError(t, txn.PutNode(p))

	root, err := txn.GetNodeForWrite(doc.RootKey)
	require.NoError(t, err)
	root.(*doc.RootNode).Children = []doc.NodeKey{pKey}

	tKey, err := txn.CreateKey()
	require.NoError(t, err)
	tn := doc.NewText(tKey, "hello")
	doc.SetParent(tn, pKey)
	require.NoError(t, txn.PutNode(tn))
	p.Children = []doc.NodeKey{tKey}

	pending, dirty := txn.Finish()
	idx := rangeindex.NewIndex()

	batch, err := BuildDeltaBatch(committed, pending, dirty, idx)
	require.NoError(t, err)
	require.Len(t, batch.Deltas, 1, "the text child's content must be covered by the paragraph's own insertion delta")
	require.Equal(t, DeltaNodeInsertion, batch.Deltas[0].Kind)
	require.Equal(t, pKey, batch.Deltas[0].Key)
	require.Equal(t, "hello", batch.Deltas[0].Content)
}

func TestBuildDeltaBatchDeletion(t *testing.T) {
	s, p1, _ := buildTwoParagraphDoc()
	idx := rangeindex.NewIndex()
	require.NoError(t, idx.Rebuild(s))

	txn := tx.Begin(s, doc.NewKeyAllocator())
	root, err := txn.GetNodeForWrite(doc.RootKey)
	require.NoError(t, err)
	rn := root.(*doc.RootNode)
	rn.Children = []doc.NodeKey{rn.Children[1]}
	require.NoError(t, txn.RemoveNode(p1))

	pending, dirty := txn.Finish()
	batch, err := BuildDeltaBatch(s, pending, dirty, idx)
	require.NoError(t, err)
	require.Len(t, batch.Deltas, 1)
	require.Equal(t, DeltaNodeDeletion, batch.Deltas[0].Kind)
	require.Equal(t, rangeindex.Range{Start: 0, End: 3}, batch.Deltas[0].Range)
}

func TestBuildDeltaBatchTextUpdate(t *testing.T) {
	s, p1, _ := buildTwoParagraphDoc()
	idx := rangeindex.NewIndex()
	require.NoError(t, idx.Rebuild(s))

	p1n, err := s.Element(p1)
	require.NoError(t, err)
	textKey := p1n.Children[0]

	txn := tx.Begin(s, doc.NewKeyAllocator())
	textNode, err := txn.GetNodeForWrite(textKey)
	require.NoError(t, err)
	textNode.(*doc.TextNode).Text = "hiya"

	pending, dirty := txn.Finish()
	batch, err := BuildDeltaBatch(s, pending, dirty, idx)
	require.NoError(t, err)
	require.Len(t, batch.Deltas, 1)
	require.Equal(t, DeltaTextUpdate, batch.Deltas[0].Kind)
	require.Equal(t, "hiya", batch.Deltas[0].NewText)
	require.Equal(t, rangeindex.Range{Start: 0, End: 2}, batch.Deltas[0].Range)
}

func TestDeltaBatchOrderSortsDeletionsThenInsertionsThenUpdates(t *testing.T) {
	batch := &DeltaBatch{Deltas: []ReconcilerDelta{
		{Kind: DeltaTextUpdate, Range: rangeindex.Range{Start: 5}},
		{Kind: DeltaNodeInsertion, Location: 10},
		{Kind: DeltaNodeDeletion, Range: rangeindex.Range{Start: 2}},
		{Kind: DeltaNodeInsertion, Location: 1},
		{Kind: DeltaNodeDeletion, Range: rangeindex.Range{Start: 8}},
	}}
	batch.Order()

	require.Equal(t, DeltaNodeDeletion, batch.Deltas[0].Kind)
	require.Equal(t, int64(8), batch.Deltas[0].Range.Start)
	require.Equal(t, DeltaNodeDeletion, batch.Deltas[1].Kind)
	require.Equal(t, int64(2), batch.Deltas[1].Range.Start)
	require.Equal(t, DeltaNodeInsertion, batch.Deltas[2].Kind)
	require.Equal(t, int64(1), batch.Deltas[2].Location)
	require.Equal(t, DeltaNodeInsertion, batch.Deltas[3].Kind)
	require.Equal(t, int64(10), batch.Deltas[3].Location)
	require.Equal(t, DeltaTextUpdate, batch.Deltas[4].Kind)
}

func TestApplyBatchSuccess(t *testing.T) {
	storage := &fakeStorage{content: "hibye"}
	batch := &DeltaBatch{Deltas: []ReconcilerDelta{
		{Kind: DeltaTextUpdate, Range: rangeindex.Range{Start: 0, End: 2}, NewText: "hiya"},
	}}
	result := ApplyBatch(batch, storage, false)
	require.Equal(t, ApplySuccess, result.Outcome)
	require.Equal(t, "hiyabye", storage.content)
}

func TestApplyBatchFailureRollsBackViaTransactional(t *testing.T) {
	storage := &fakeStorage{content: "hibye", failOn: DeltaNodeDeletion, shouldErr: true}
	batch := &DeltaBatch{Deltas: []ReconcilerDelta{
		{Kind: DeltaTextUpdate, Range: rangeindex.Range{Start: 0, End: 2}, NewText: "hiya"},
		{Kind: DeltaNodeDeletion, Range: rangeindex.Range{Start: 0, End: 2}},
	}}
	result := ApplyBatch(batch, storage, false)
	require.Equal(t, ApplyFailure, result.Outcome)
	require.Equal(t, "hibye", storage.content, "a Transactional storage must be restored on Failure")
}

func TestApplyBatchPartialSuccessSkipsFailedDelta(t *testing.T) {
	storage := &fakeStorage{content: "hibye", failOn: DeltaNodeDeletion, shouldErr: true}
	batch := &DeltaBatch{Deltas: []ReconcilerDelta{
		{Kind: DeltaTextUpdate, Range: rangeindex.Range{Start: 0, End: 2}, NewText: "hiya"},
		{Kind: DeltaNodeDeletion, Range: rangeindex.Range{Start: 0, End: 2}},
	}}
	result := ApplyBatch(batch, storage, true)
	require.Equal(t, ApplyPartialSuccess, result.Outcome)
	require.Len(t, result.Applied, 1)
	require.Len(t, result.Failed, 1)
	require.Equal(t, "hiyabye", storage.content)
}

func TestReconcileOptimizedEndToEnd(t *testing.T) {
	txn, _, committed := newTxOnEmptyRoot()

	pKey, err := txn.CreateKey()
	require.NoError(t, err)
	p := doc.NewElement(pKey, doc.TagParagraph)
	require.NoError(t, txn.PutNode(p))

	tKey, err := txn.CreateKey()
	require.NoError(t, err)
	tn := doc.NewText(tKey, "hello")
	doc.SetParent(tn, pKey)
	require.NoError(t, txn.PutNode(tn))
	p.Children = []doc.NodeKey{tKey}

	root, err := txn.GetNodeForWrite(doc.RootKey)
	require.NoError(t, err)
	root.(*doc.RootNode).Children = []doc.NodeKey{pKey}

	pending, dirty := txn.Finish()
	idx := rangeindex.NewIndex()
	storage := &fakeStorage{}

	result, err := ReconcileOptimized(committed, pending, dirty, idx, storage, false)
	require.NoError(t, err)
	require.Equal(t, ApplySuccess, result.Outcome)
	require.Equal(t, "hello", storage.content)
	require.Equal(t, int64(5), idx.TotalLength())

	start, err := idx.StartOf(tKey)
	require.NoError(t, err)
	require.Equal(t, int64(0), start)
}

func TestReconcileLegacyRebuildsWholeDocument(t *testing.T) {
	s, p1, _ := buildTwoParagraphDoc()
	idx := rangeindex.NewIndex()
	require.NoError(t, idx.Rebuild(s))
	storage := &fakeStorage{content: "hi\nbye"}

	p1n, err := s.Element(p1)
	require.NoError(t, err)
	textKey := p1n.Children[0]

	txn := tx.Begin(s, doc.NewKeyAllocator())
	textNode, err := txn.GetNodeForWrite(textKey)
	require.NoError(t, err)
	textNode.(*doc.TextNode).Text = "hiya"
	pending, _ := txn.Finish()

	result, err := ReconcileLegacy(pending, idx, storage)
	require.NoError(t, err)
	require.Equal(t, ApplySuccess, result.Outcome)
	require.Equal(t, "hiya\nbye", storage.content)
	require.Equal(t, int64(8), idx.TotalLength())
}

func TestReconcileDarkLaunchReportsParity(t *testing.T) {
	s, p1, _ := buildTwoParagraphDoc()
	idx := rangeindex.NewIndex()
	require.NoError(t, idx.Rebuild(s))
	storage := &fakeStorage{content: "hi\nbye"}

	p1n, err := s.Element(p1)
	require.NoError(t, err)
	textKey := p1n.Children[0]

	txn := tx.Begin(s, doc.NewKeyAllocator())
	textNode, err := txn.GetNodeForWrite(textKey)
	require.NoError(t, err)
	textNode.(*doc.TextNode).Text = "hiya"
	pending, dirty := txn.Finish()

	result, report, err := Reconcile(ModeDarkLaunch, s, pending, dirty, idx, storage, false)
	require.NoError(t, err)
	require.Equal(t, ApplySuccess, result.Outcome)
	require.NotNil(t, report)
	require.True(t, report.LengthsAgree)
	require.Equal(t, "hiya\nbye", storage.content, "dark launch must commit the legacy result, not the discarded optimized attempt")
}
