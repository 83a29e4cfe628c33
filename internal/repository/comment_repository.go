package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"blogHub/internal/models"
	"blogHub/internal/pagination"
)

type CommentRepositoryImpl struct {
	DB *sqlx.DB
}

type CommentFilter struct {
	Search   string
	PostID   string
	AuthorID string
	Status   string
	Sort     string
	Page     pagination.Params
}

const commentColumns = `
	c.comment_id, c.content, c.author_id, c.post_id, c.parent_id, c.likes, c.liked_by, c.status,
	c.is_edited, c.edited_at, c.created_at, c.updated_at,
	u.user_id AS "author.user_id", u.username AS "author.username", u.avatar AS "author.avatar", u.bio AS "author.bio"
`

const commentFrom = ` FROM comments c JOIN users u ON u.user_id = c.author_id`

var commentSortColumns = map[string]string{
	"createdAt": "c.created_at",
	"likes":     "c.likes",
}

func NewCommentRepository(db *sqlx.DB) *CommentRepositoryImpl {
	return &CommentRepositoryImpl{DB: db}
}

func (r *CommentRepositoryImpl) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (comment_id, content, author_id, post_id, parent_id, likes, liked_by, status,
			is_edited, created_at, updated_at)
		VALUES (:comment_id, :content, :author_id, :post_id, :parent_id, :likes, :liked_by, :status,
			:is_edited, :created_at, :updated_at)
	`

	if comment.CommentID == "" {
		comment.CommentID = uuid.New().String()
	}
	if comment.LikedBy == nil {
		comment.LikedBy = pq.StringArray{}
	}
	if comment.Status == "" {
		comment.Status = models.CommentStatusApproved
	}
	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	if _, err := r.DB.NamedExecContext(ctx, query, comment); err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// UpdateContent replaces the text and marks the comment as edited.
func (r *CommentRepositoryImpl) UpdateContent(ctx context.Context, commentID, content string, at time.Time) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE comments SET content = $1, is_edited = TRUE, edited_at = $2, updated_at = $2 WHERE comment_id = $3`,
		content, at, commentID)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	return expectRows(result)
}

func (r *CommentRepositoryImpl) GetByID(ctx context.Context, commentID string) (*models.Comment, error) {
	var comment models.Comment
	err := r.DB.GetContext(ctx, &comment, `SELECT `+commentColumns+commentFrom+` WHERE c.comment_id = $1`, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return &comment, nil
}

// ListTopLevel pages through the post's comments that have no parent, newest first.
func (r *CommentRepositoryImpl) ListTopLevel(ctx context.Context, postID, status string, p pagination.Params) ([]*models.Comment, int, error) {
	q := NewQuery().Eq("c.post_id", postID).Raw("c.parent_id IS NULL").Eq("c.status", status)

	var total int
	if err := r.DB.GetContext(ctx, &total, `SELECT COUNT(*) FROM comments c`+q.Where(), q.Args()...); err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	window, args := q.Page(p)
	comments := make([]*models.Comment, 0)
	query := `SELECT ` + commentColumns + commentFrom + q.Where() + ` ORDER BY c.created_at DESC, c.comment_id DESC` + window
	if err := r.DB.SelectContext(ctx, &comments, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, total, nil
}

// ListReplies returns the direct replies of every given parent, newest first.
func (r *CommentRepositoryImpl) ListReplies(ctx context.Context, parentIDs []string, status string) ([]*models.Comment, error) {
	replies := make([]*models.Comment, 0)
	if len(parentIDs) == 0 {
		return replies, nil
	}

	q := NewQuery().In("c.parent_id", parentIDs).Eq("c.status", status)
	query := `SELECT ` + commentColumns + commentFrom + q.Where() + ` ORDER BY c.created_at DESC, c.comment_id DESC`
	if err := r.DB.SelectContext(ctx, &replies, query, q.Args()...); err != nil {
		return nil, fmt.Errorf("failed to list replies: %w", err)
	}
	return replies, nil
}

// DeleteWithReplies removes the comment and its direct replies. Deeper replies are left behind.
// It returns how many rows were removed in total.
func (r *CommentRepositoryImpl) DeleteWithReplies(ctx context.Context, commentID string) (int64, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	children, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE parent_id = $1`, commentID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete replies: %w", err)
	}
	childCount, err := children.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check affected rows: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE comment_id = $1`, commentID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete comment: %w", err)
	}
	if err := expectRows(result); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit comment delete: %w", err)
	}
	return childCount + 1, nil
}

func (r *CommentRepositoryImpl) SaveLikes(ctx context.Context, commentID string, likedBy []string) error {
	if likedBy == nil {
		likedBy = []string{}
	}
	result, err := r.DB.ExecContext(ctx,
		`UPDATE comments SET liked_by = $1, likes = $2 WHERE comment_id = $3`,
		pq.StringArray(likedBy), len(likedBy), commentID)
	if err != nil {
		return fmt.Errorf("failed to save likes: %w", err)
	}
	return expectRows(result)
}

// List is the moderation view: every comment with the title of the post it belongs to.
func (r *CommentRepositoryImpl) List(ctx context.Context, f CommentFilter) ([]*models.Comment, int, error) {
	q := NewQuery().
		Search(f.Search, "c.content").
		Eq("c.post_id", f.PostID).
		Eq("c.author_id", f.AuthorID).
		Eq("c.status", f.Status)

	var total int
	if err := r.DB.GetContext(ctx, &total, `SELECT COUNT(*) FROM comments c`+q.Where(), q.Args()...); err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	window, args := q.Page(f.Page)
	query := `SELECT ` + commentColumns + `, p.title AS post_title` + commentFrom +
		` JOIN posts p ON p.post_id = c.post_id` + q.Where() +
		OrderBy(f.Sort, commentSortColumns, "-createdAt", "c.comment_id") + window

	comments := make([]*models.Comment, 0)
	if err := r.DB.SelectContext(ctx, &comments, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, total, nil
}
