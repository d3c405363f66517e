package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v uint) *uint { return &v }

func TestBuildReplyTree(t *testing.T) {
	t.Parallel()

	// Flat rows in insertion order: two roots, a chain under the first.
	rows := []*Reply{
		{ID: 1, CommentID: 9, Content: "root a"},
		{ID: 2, CommentID: 9, Content: "root b"},
		{ID: 3, CommentID: 9, ParentReplyID: ptr(1), Content: "a child"},
		{ID: 4, CommentID: 9, ParentReplyID: ptr(3), Content: "a grandchild"},
		{ID: 5, CommentID: 9, ParentReplyID: ptr(1), Content: "a second child"},
	}

	roots := BuildReplyTree(rows, MaxReplyDepth)
	require.Len(t, roots, 2)
	assert.Equal(t, "root a", roots[0].Content)
	assert.Equal(t, "root b", roots[1].Content)

	require.Len(t, roots[0].SubReplies, 2)
	assert.Equal(t, "a child", roots[0].SubReplies[0].Content, "children keep insertion order")
	assert.Equal(t, "a second child", roots[0].SubReplies[1].Content)
	require.Len(t, roots[0].SubReplies[0].SubReplies, 1)
	assert.Equal(t, "a grandchild", roots[0].SubReplies[0].SubReplies[0].Content)
	assert.Empty(t, roots[1].SubReplies)
}

func TestBuildReplyTree_DepthCutoff(t *testing.T) {
	t.Parallel()

	rows := []*Reply{
		{ID: 1, CommentID: 9},
		{ID: 2, CommentID: 9, ParentReplyID: ptr(1)},
		{ID: 3, CommentID: 9, ParentReplyID: ptr(2)},
		{ID: 4, CommentID: 9, ParentReplyID: ptr(3)},
	}

	roots := BuildReplyTree(rows, 3)
	require.Len(t, roots, 1)
	level2 := roots[0].SubReplies
	require.Len(t, level2, 1)
	level3 := level2[0].SubReplies
	require.Len(t, level3, 1)
	assert.Empty(t, level3[0].SubReplies, "nodes below the cutoff stay unattached")

	// maxDepth <= 0 expands everything.
	full := BuildReplyTree(rows, 0)
	assert.Len(t, full[0].SubReplies[0].SubReplies[0].SubReplies, 1)
}

func TestBuildReplyTree_Reassembly(t *testing.T) {
	t.Parallel()

	rows := []*Reply{
		{ID: 1, CommentID: 9},
		{ID: 2, CommentID: 9, ParentReplyID: ptr(1)},
	}

	first := BuildReplyTree(rows, MaxReplyDepth)
	second := BuildReplyTree(rows, MaxReplyDepth)
	require.Len(t, second, 1)
	require.Len(t, second[0].SubReplies, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
}

func TestFlattenReplies_PreOrder(t *testing.T) {
	t.Parallel()

	rows := []*Reply{
		{ID: 1, CommentID: 9},
		{ID: 2, CommentID: 9, ParentReplyID: ptr(1)},
		{ID: 3, CommentID: 9, ParentReplyID: ptr(2)},
		{ID: 4, CommentID: 9, ParentReplyID: ptr(1)},
		{ID: 5, CommentID: 9},
	}

	seq := FlattenReplies(BuildReplyTree(rows, 0))
	var ids []uint
	for r := range seq {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []uint{1, 2, 3, 4, 5}, ids, "each node precedes its children")

	// Restartable: ranging the same sequence again walks from the start.
	var again []uint
	for r := range seq {
		again = append(again, r.ID)
	}
	assert.Equal(t, ids, again)

	// Lazy: breaking out stops the walk mid-tree.
	var partial []uint
	for r := range seq {
		partial = append(partial, r.ID)
		if len(partial) == 2 {
			break
		}
	}
	assert.Equal(t, []uint{1, 2}, partial)
}
