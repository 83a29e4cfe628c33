// Package thread rebuilds comment trees from flat rows. Comments only know their parent; the tree is
// folded at query time from an arena keyed by comment id and never stored.
package thread

import (
	"sort"

	"blogHub/internal/models"
)

// Attach hangs every reply under the parent it references and orders each reply list newest first.
// Replies whose parent is not in parents are left untouched.
func Attach(parents []*models.Comment, replies []*models.Comment) {
	arena := make(map[string]*models.Comment, len(parents))
	for _, p := range parents {
		arena[p.CommentID] = p
	}

	for _, r := range replies {
		if r.ParentID == nil {
			continue
		}
		if parent, ok := arena[*r.ParentID]; ok {
			parent.Replies = append(parent.Replies, r)
		}
	}

	for _, p := range parents {
		SortNewestFirst(p.Replies)
	}
}

// Build folds a flat set of comments into a forest. Roots are top-level comments; comments whose
// parent is missing from flat are unreachable and dropped. Every level is ordered newest first.
func Build(flat []*models.Comment) []*models.Comment {
	arena := make(map[string]*models.Comment, len(flat))
	for _, c := range flat {
		c.Replies = nil
		arena[c.CommentID] = c
	}

	roots := make([]*models.Comment, 0)
	for _, c := range flat {
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		if parent, ok := arena[*c.ParentID]; ok && parent != c {
			parent.Replies = append(parent.Replies, c)
		}
	}

	for _, c := range flat {
		SortNewestFirst(c.Replies)
	}
	SortNewestFirst(roots)

	return roots
}

// IDs lists comment ids in order.
func IDs(comments []*models.Comment) []string {
	ids := make([]string, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.CommentID)
	}
	return ids
}

func SortNewestFirst(comments []*models.Comment) {
	sort.SliceStable(comments, func(i, j int) bool {
		if comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CommentID > comments[j].CommentID
		}
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
}
