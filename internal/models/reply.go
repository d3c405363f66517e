package models

import (
	"iter"
	"time"

	"gorm.io/gorm"
)

// MaxReplyDepth is the fixed nesting depth to which a comment's reply tree is
// eagerly expanded for transport. Deeper subtrees are fetched on demand via
// the reply subtree endpoint.
const MaxReplyDepth = 3

// Reply is a node in the recursive tree rooted at a Comment. Every node in a
// subtree carries the CommentID of the root comment; ParentReplyID is nil for
// direct children of the comment.
type Reply struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	CommentID     uint   `gorm:"not null;index" json:"comment_id"`
	ParentReplyID *uint  `gorm:"index" json:"parent_reply_id,omitempty"`
	Content       string `gorm:"type:text;not null" json:"content"`
	UserID        uint   `gorm:"not null" json:"user_id"`
	User          User   `gorm:"foreignKey:UserID" json:"user"`
	// SubReplies holds the node's children, derived by BuildReplyTree.
	SubReplies []*Reply       `gorm:"-" json:"sub_replies"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// BuildReplyTree assembles the tree view for one comment from its flat reply
// rows. Rows must already be ordered by creation time ascending; children keep
// that order. Nodes deeper than maxDepth levels are left unattached so callers
// can fetch them on demand. maxDepth <= 0 means no limit.
//
// The tree is derived by index lookup on ParentReplyID rather than recursive
// mutation, so the same rows can be re-assembled any number of times.
func BuildReplyTree(replies []*Reply, maxDepth int) []*Reply {
	byParent := make(map[uint][]*Reply, len(replies))
	var roots []*Reply
	for _, r := range replies {
		r.SubReplies = nil
		if r.ParentReplyID == nil {
			roots = append(roots, r)
			continue
		}
		byParent[*r.ParentReplyID] = append(byParent[*r.ParentReplyID], r)
	}

	var attach func(node *Reply, depth int)
	attach = func(node *Reply, depth int) {
		if maxDepth > 0 && depth >= maxDepth {
			return
		}
		node.SubReplies = byParent[node.ID]
		for _, child := range node.SubReplies {
			attach(child, depth+1)
		}
	}
	for _, root := range roots {
		attach(root, 1)
	}
	return roots
}

// FlattenReplies yields a pre-order traversal (each node before its children)
// of an expanded reply tree. The sequence is lazy and restartable: ranging
// over it again walks the tree from the start, and breaking out early stops
// the walk.
func FlattenReplies(roots []*Reply) iter.Seq[*Reply] {
	return func(yield func(*Reply) bool) {
		var walk func(node *Reply) bool
		walk = func(node *Reply) bool {
			if !yield(node) {
				return false
			}
			for _, child := range node.SubReplies {
				if !walk(child) {
					return false
				}
			}
			return true
		}
		for _, root := range roots {
			if !walk(root) {
				return
			}
		}
	}
}
