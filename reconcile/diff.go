package reconcile

import "github.com/outlinelabs/richedit/doc"

// ChildDiff is the Stage 1 result for one parent's child list: which
// keys are new, which are gone, and whether the keys common to both
// lists changed relative order.
type ChildDiff struct {
	Inserted  []doc.NodeKey
	Deleted   []doc.NodeKey
	Reordered bool
}

// DiffChildren compares a parent's old and new child-key sequences via
// longest common subsequence: the LCS pins the stable, non-reordered
// survivors, and every key outside it is reported as an insertion or
// deletion. Reorders are flagged (not enumerated as per-key moves;
// Stage 2 treats a reorder as AnchorUpdate bookkeeping, not as
// synthetic delete+insert pairs, since the node itself is unchanged).
func DiffChildren(oldKeys, newKeys []doc.NodeKey) ChildDiff {
	oldSet := make(map[doc.NodeKey]bool, len(oldKeys))
	for _, k := range oldKeys {
		oldSet[k] = true
	}
	newSet := make(map[doc.NodeKey]bool, len(newKeys))
	for _, k := range newKeys {
		newSet[k] = true
	}

	var deleted, inserted []doc.NodeKey
	for _, k := range oldKeys {
		if !newSet[k] {
			deleted = append(deleted, k)
		}
	}
	for _, k := range newKeys {
		if !oldSet[k] {
			inserted = append(inserted, k)
		}
	}

	lcs := lcsKeys(oldKeys, newKeys)
	commonCount := 0
	for _, k := range oldKeys {
		if newSet[k] {
			commonCount++
		}
	}

	return ChildDiff{
		Inserted:  inserted,
		Deleted:   deleted,
		Reordered: len(lcs) < commonCount,
	}
}

func lcsKeys(a, b []doc.NodeKey) []doc.NodeKey {
	n, m := len(a), len(b)
	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			switch {
			case a[i-1] == b[j-1]:
				dp[i][j] = dp[i-1][j-1] + 1
			case dp[i-1][j] >= dp[i][j-1]:
				dp[i][j] = dp[i-1][j]
			default:
				dp[i][j] = dp[i][j-1]
			}
		}
	}

	var rev []doc.NodeKey
	for i, j := n, m; i > 0 && j > 0; {
		switch {
		case a[i-1] == b[j-1]:
			rev = append(rev, a[i-1])
			i--
			j--
		case dp[i-1][j] >= dp[i][j-1]:
			i--
		default:
			j--
		}
	}
	for l, r := 0, len(rev)-1; l < r; l, r = l+1, r-1 {
		rev[l], rev[r] = rev[r], rev[l]
	}
	return rev
}
