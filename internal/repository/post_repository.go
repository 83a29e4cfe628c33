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

type PostRepositoryImpl struct {
	DB *sqlx.DB
}

type PostFilter struct {
	Search   string
	Tag      string
	AuthorID string
	Status   string
	Featured *bool
	// IDs restricts the list to these posts; nil means no restriction.
	IDs  []string
	Sort string
	Page pagination.Params
}

const postColumns = `
	p.post_id, p.title, p.slug, p.excerpt, p.content, p.format, p.image, p.author_id, p.tags, p.status,
	p.likes, p.liked_by, p.views, p.reading_time, p.featured, p.comments_enabled, p.created_at, p.updated_at,
	u.user_id AS "author.user_id", u.username AS "author.username", u.avatar AS "author.avatar", u.bio AS "author.bio",
	(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.post_id) AS comment_count
`

const postFrom = ` FROM posts p JOIN users u ON u.user_id = p.author_id`

var postSortColumns = map[string]string{
	"createdAt":   "p.created_at",
	"updatedAt":   "p.updated_at",
	"likes":       "p.likes",
	"views":       "p.views",
	"title":       "p.title",
	"readingTime": "p.reading_time",
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{DB: db}
}

// Create inserts the post. A slug collision at write time is reported as ErrSlugTaken.
func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts
		(post_id, title, slug, excerpt, content, format, image, author_id, tags, status, likes, liked_by, views,
			reading_time, featured, comments_enabled, created_at, updated_at)
		VALUES
		(:post_id, :title, :slug, :excerpt, :content, :format, :image, :author_id, :tags, :status, :likes, :liked_by, :views,
			:reading_time, :featured, :comments_enabled, :created_at, :updated_at)
	`

	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}
	if post.Tags == nil {
		post.Tags = pq.StringArray{}
	}
	if post.LikedBy == nil {
		post.LikedBy = pq.StringArray{}
	}

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	_, err := r.DB.NamedExecContext(ctx, query, post)
	if err != nil {
		if uniqueConstraint(err) == postsSlugKey {
			return ErrSlugTaken
		}
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts
		SET title = :title, slug = :slug, excerpt = :excerpt, content = :content, format = :format, image = :image,
			tags = :tags, status = :status, reading_time = :reading_time, featured = :featured,
			comments_enabled = :comments_enabled, updated_at = :updated_at
		WHERE post_id = :post_id
	`

	if post.Tags == nil {
		post.Tags = pq.StringArray{}
	}
	post.UpdatedAt = time.Now()

	result, err := r.DB.NamedExecContext(ctx, query, post)
	if err != nil {
		if uniqueConstraint(err) == postsSlugKey {
			return ErrSlugTaken
		}
		return fmt.Errorf("failed to update post: %w", err)
	}

	return expectRows(result)
}

func (r *PostRepositoryImpl) getOne(ctx context.Context, where string, arg interface{}) (*models.Post, error) {
	var post models.Post
	err := r.DB.GetContext(ctx, &post, `SELECT `+postColumns+postFrom+where, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return &post, nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	return r.getOne(ctx, ` WHERE p.post_id = $1`, postID)
}

func (r *PostRepositoryImpl) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return r.getOne(ctx, ` WHERE p.slug = $1`, slug)
}

// SlugExists reports whether another post already uses slug. excludeID may be empty.
func (r *PostRepositoryImpl) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var exists bool
	err := r.DB.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM posts WHERE slug = $1 AND post_id <> $2)`, slug, excludeID)
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return exists, nil
}

func (r *PostRepositoryImpl) IncrementViews(ctx context.Context, postID string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE posts SET views = views + 1 WHERE post_id = $1`, postID)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	return nil
}

// SaveLikes stores the liker set and sets the counter to its size in the same statement.
func (r *PostRepositoryImpl) SaveLikes(ctx context.Context, postID string, likedBy []string) error {
	if likedBy == nil {
		likedBy = []string{}
	}
	result, err := r.DB.ExecContext(ctx,
		`UPDATE posts SET liked_by = $1, likes = $2 WHERE post_id = $3`,
		pq.StringArray(likedBy), len(likedBy), postID)
	if err != nil {
		return fmt.Errorf("failed to save likes: %w", err)
	}
	return expectRows(result)
}

// Delete removes the post, its comments and every bookmark pointing at it.
func (r *PostRepositoryImpl) Delete(ctx context.Context, postID string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("failed to delete post comments: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET bookmarks = array_remove(bookmarks, $1) WHERE $1 = ANY(bookmarks)`, postID); err != nil {
		return fmt.Errorf("failed to remove bookmarks: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE post_id = $1`, postID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if err := expectRows(result); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit post delete: %w", err)
	}
	return nil
}

func (r *PostRepositoryImpl) List(ctx context.Context, f PostFilter) ([]*models.Post, int, error) {
	q := NewQuery().
		Search(f.Search, "p.title", "p.excerpt", "p.content").
		Has("p.tags", f.Tag).
		Eq("p.author_id", f.AuthorID).
		Eq("p.status", f.Status).
		In("p.post_id", f.IDs)
	if f.Featured != nil {
		q.Eq("p.featured", *f.Featured)
	}

	var total int
	if err := r.DB.GetContext(ctx, &total, `SELECT COUNT(*) FROM posts p`+q.Where(), q.Args()...); err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	window, args := q.Page(f.Page)
	query := `SELECT ` + postColumns + postFrom + q.Where() +
		OrderBy(f.Sort, postSortColumns, "-createdAt", "p.post_id") + window

	posts := make([]*models.Post, 0)
	if err := r.DB.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, total, nil
}
