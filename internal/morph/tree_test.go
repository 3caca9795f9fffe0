package morph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromParentIndexBallAndStick(t *testing.T) {
	tree, err := FromParentIndex([]int{-1, 0, 1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, 5, tree.NumNodes())
	require.Equal(t, 0, tree.Root())
	require.Equal(t, []int{1}, tree.Children(0))
	require.Equal(t, -1, tree.Parent(0))
	require.Equal(t, 0, tree.Parent(1))
}

func TestFromParentIndexYJunction(t *testing.T) {
	tree, err := FromParentIndex([]int{-1, 0, 1, 1, 1})
	require.NoError(t, err)
	require.Equal(t, 3, tree.NumChildren(1))
	require.ElementsMatch(t, []int{2, 3, 4}, tree.Children(1))
}

func TestFromParentIndexRejectsNonTopologicalOrder(t *testing.T) {
	_, err := FromParentIndex([]int{-1, 2, 1})
	require.Error(t, err)
}

func TestFromParentIndexRejectsMultipleRoots(t *testing.T) {
	_, err := FromParentIndex([]int{-1, -1})
	require.Error(t, err)
}

func TestChangeRootReversesPath(t *testing.T) {
	tree, err := FromParentIndex([]int{-1, 0, 1, 2})
	require.NoError(t, err)

	r := tree.ChangeRoot(3)
	require.Equal(t, 3, r.Root())
	require.Equal(t, -1, r.Parent(3))
	require.Equal(t, 3, r.Parent(2))
	require.Equal(t, 2, r.Parent(1))
	require.Equal(t, 1, r.Parent(0))
}

func TestChangeRootOrdersOriginalChildrenBeforeReversedChain(t *testing.T) {
	// Chain 0-1-2-3-4; node 3 has an original child (4) besides the
	// path back to the old root. Re-rooting at 3 must list 3's original
	// child first, then the reversed former-parent-chain node (2) last.
	tree, err := FromParentIndex([]int{-1, 0, 1, 2, 3})
	require.NoError(t, err)

	r := tree.ChangeRoot(3)
	require.Equal(t, []int{4, 2}, r.Children(3))
	require.Equal(t, []int{1}, r.Children(2))
	require.Equal(t, []int{0}, r.Children(1))
	require.Empty(t, r.Children(0))
}

func TestBalancePicksCentroid(t *testing.T) {
	// A straight chain of 5 nodes: the centroid is the middle node (2),
	// which minimizes the maximum distance to either end (2 hops).
	tree, err := FromParentIndex([]int{-1, 0, 1, 2, 3})
	require.NoError(t, err)

	b := tree.Balance()
	require.Equal(t, 2, b.Root())
}
