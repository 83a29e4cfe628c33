package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"

	"blogHub/internal/auth"
	"blogHub/internal/config"
	"blogHub/internal/content"
	"blogHub/internal/models"
	"blogHub/internal/pagination"
	"blogHub/internal/repository"
	"blogHub/internal/thread"
)

type CommentService interface {
	ListForPost(ctx context.Context, actor *auth.Actor, postID string, page pagination.Params) ([]*models.Comment, pagination.Meta, error)
	Create(ctx context.Context, actor *auth.Actor, in CommentInput) (*models.Comment, error)
	Update(ctx context.Context, actor *auth.Actor, commentID string, in CommentUpdate) (*models.Comment, error)
	Delete(ctx context.Context, actor *auth.Actor, commentID string) (int64, error)
	ToggleLike(ctx context.Context, actor *auth.Actor, commentID string) (*LikeResult, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	cfg         *config.Config
	now         func() time.Time
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, cfg *config.Config) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		cfg:         cfg,
		now:         time.Now,
	}
}

// ListForPost pages through approved top-level comments, newest first, and hangs the approved replies
// under them. Replies are expanded one level per configured depth.
func (s *commentService) ListForPost(ctx context.Context, actor *auth.Actor, postID string, page pagination.Params) ([]*models.Comment, pagination.Meta, error) {
	if _, err := s.visiblePost(ctx, actor, postID); err != nil {
		return nil, pagination.Meta{}, err
	}

	top, total, err := s.commentRepo.ListTopLevel(ctx, postID, models.CommentStatusApproved, page)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	meta := pagination.NewMeta(page, total)
	depth := s.cfg.Blog.CommentReplyDepth
	if depth < 1 || len(top) == 0 {
		return top, meta, nil
	}

	if depth == 1 {
		replies, err := s.commentRepo.ListReplies(ctx, thread.IDs(top), models.CommentStatusApproved)
		if err != nil {
			return nil, pagination.Meta{}, err
		}
		thread.Attach(top, replies)
		return top, meta, nil
	}

	flat := append([]*models.Comment{}, top...)
	parents := top
	for level := 0; level < depth && len(parents) > 0; level++ {
		replies, err := s.commentRepo.ListReplies(ctx, thread.IDs(parents), models.CommentStatusApproved)
		if err != nil {
			return nil, pagination.Meta{}, err
		}
		flat = append(flat, replies...)
		parents = replies
	}

	return thread.Build(flat), meta, nil
}

// visiblePost loads a post the actor may see. Unpublished posts only exist for their author and admins.
func (s *commentService) visiblePost(ctx context.Context, actor *auth.Actor, postID string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, notFoundOr(err, "post")
	}
	if post.Status != models.PostStatusPublished && !actor.CanModify(post.AuthorID) {
		return nil, newError(ErrNotFound, "post not found")
	}
	return post, nil
}

func (s *commentService) Create(ctx context.Context, actor *auth.Actor, in CommentInput) (*models.Comment, error) {
	if actor == nil {
		return nil, newError(ErrUnauthorized, "authentication required")
	}

	text, err := cleanComment(in.Content)
	if err != nil {
		return nil, err
	}

	post, err := s.visiblePost(ctx, actor, in.PostID)
	if err != nil {
		return nil, err
	}
	if !post.CommentsEnabled {
		return nil, newError(ErrForbidden, "comments are disabled for this post")
	}

	var parentID *string
	if in.ParentID != nil && strings.TrimSpace(*in.ParentID) != "" {
		parent, err := s.commentRepo.GetByID(ctx, *in.ParentID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, newError(ErrNotFound, "parent comment not found")
			}
			return nil, err
		}
		if parent.PostID != post.PostID {
			return nil, newError(ErrValidation, "parent comment belongs to another post")
		}
		parentID = &parent.CommentID
	}

	comment := &models.Comment{
		Content:  text,
		AuthorID: actor.UserID,
		PostID:   post.PostID,
		ParentID: parentID,
		LikedBy:  pq.StringArray{},
		Status:   models.CommentStatusApproved,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.reload(ctx, comment.CommentID)
}

// Update is restricted to the comment's author and marks the comment as edited.
func (s *commentService) Update(ctx context.Context, actor *auth.Actor, commentID string, in CommentUpdate) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, notFoundOr(err, "comment")
	}
	if !actor.Owns(comment.AuthorID) {
		return nil, newError(ErrForbidden, "not authorized to update this comment")
	}

	text, err := cleanComment(in.Content)
	if err != nil {
		return nil, err
	}

	if err := s.commentRepo.UpdateContent(ctx, commentID, text, s.now()); err != nil {
		return nil, notFoundOr(err, "comment")
	}

	return s.reload(ctx, commentID)
}

// Delete removes the comment and its direct replies and returns how many comments were removed.
func (s *commentService) Delete(ctx context.Context, actor *auth.Actor, commentID string) (int64, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return 0, notFoundOr(err, "comment")
	}
	if !actor.CanModify(comment.AuthorID) {
		return 0, newError(ErrForbidden, "not authorized to delete this comment")
	}

	deleted, err := s.commentRepo.DeleteWithReplies(ctx, commentID)
	if err != nil {
		return 0, notFoundOr(err, "comment")
	}
	return deleted, nil
}

func (s *commentService) ToggleLike(ctx context.Context, actor *auth.Actor, commentID string) (*LikeResult, error) {
	if actor == nil {
		return nil, newError(ErrUnauthorized, "authentication required")
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, notFoundOr(err, "comment")
	}

	likedBy, liked := toggleMember(comment.LikedBy, actor.UserID)
	if err := s.commentRepo.SaveLikes(ctx, commentID, likedBy); err != nil {
		return nil, notFoundOr(err, "comment")
	}

	return &LikeResult{Likes: len(likedBy), IsLiked: liked}, nil
}

func (s *commentService) reload(ctx context.Context, commentID string) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, notFoundOr(err, "comment")
	}
	return comment, nil
}

// cleanComment strips markup from a comment and enforces the length bounds.
func cleanComment(raw string) (string, error) {
	text := content.StripTags(raw)
	if text == "" {
		return "", newError(ErrValidation, "comment content is required")
	}
	if len([]rune(text)) > 1000 {
		return "", newError(ErrValidation, "comment must be at most 1000 characters")
	}
	return text, nil
}
