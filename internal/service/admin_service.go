package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"blogHub/internal/auth"
	"blogHub/internal/cache"
	"blogHub/internal/config"
	"blogHub/internal/models"
	"blogHub/internal/pagination"
	"blogHub/internal/repository"
)

const siteStatsKey = "site-stats"

type AdminService interface {
	Stats(ctx context.Context) (*models.SiteStats, error)
	ListUsers(ctx context.Context, q UserQuery) ([]*models.AdminUser, pagination.Meta, error)
	UpdateRole(ctx context.Context, actor *auth.Actor, userID string, role string) (*models.User, error)
	DeleteUser(ctx context.Context, actor *auth.Actor, userID string) error
	ListPosts(ctx context.Context, q PostQuery) ([]*models.Post, pagination.Meta, error)
	DeletePost(ctx context.Context, postID string) error
	ListComments(ctx context.Context, q CommentQuery) ([]*models.Comment, pagination.Meta, error)
	DeleteComment(ctx context.Context, commentID string) (int64, error)
}

type adminService struct {
	repo  *repository.Repository
	stats *cache.TTL[*models.SiteStats]
	cfg   *config.Config
	now   func() time.Time
}

func NewAdminService(repo *repository.Repository, cfg *config.Config) AdminService {
	stats, err := cache.NewTTL[*models.SiteStats](cfg.Blog.StatsCacheSize, cfg.Blog.StatsCacheTTL)
	if err != nil {
		log.Fatalf("Failed to create stats cache: %v", err)
	}

	return &adminService{
		repo:  repo,
		stats: stats,
		cfg:   cfg,
		now:   time.Now,
	}
}

// Stats returns site totals; results are cached for the configured TTL.
func (s *adminService) Stats(ctx context.Context) (*models.SiteStats, error) {
	if stats, ok := s.stats.Get(siteStatsKey); ok {
		return stats, nil
	}

	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats, err := s.repo.Stats.SiteStats(ctx, monthStart)
	if err != nil {
		return nil, err
	}

	s.stats.Set(siteStatsKey, stats)
	return stats, nil
}

func (s *adminService) ListUsers(ctx context.Context, q UserQuery) ([]*models.AdminUser, pagination.Meta, error) {
	users, total, err := s.repo.Users.List(ctx, repository.UserFilter{
		Search:      q.Search,
		SearchEmail: true,
		Role:        q.Role,
		Sort:        q.Sort,
		Page:        q.Page,
	})
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return users, pagination.NewMeta(q.Page, total), nil
}

// UpdateRole changes a user's role. Demoting the only remaining admin is refused.
func (s *adminService) UpdateRole(ctx context.Context, actor *auth.Actor, userID string, role string) (*models.User, error) {
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, newError(ErrValidation, "role must be user or admin")
	}

	user, err := s.repo.Users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "user")
	}

	if user.Role == models.RoleAdmin && role != models.RoleAdmin {
		if err := s.ensureNotLastAdmin(ctx); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Users.UpdateRole(ctx, userID, role); err != nil {
		return nil, notFoundOr(err, "user")
	}
	user.Role = role

	log.Printf("Role of user %s set to %s by %s", user.Username, role, actor.ID())
	return user, nil
}

// DeleteUser removes the user and everything they authored. The last admin cannot be deleted.
func (s *adminService) DeleteUser(ctx context.Context, actor *auth.Actor, userID string) error {
	user, err := s.repo.Users.GetUserByID(ctx, userID)
	if err != nil {
		return notFoundOr(err, "user")
	}

	if user.Role == models.RoleAdmin {
		if err := s.ensureNotLastAdmin(ctx); err != nil {
			return err
		}
	}

	if err := s.repo.Users.DeleteUser(ctx, userID); err != nil {
		return notFoundOr(err, "user")
	}
	s.stats.Purge()

	log.Printf("User %s deleted by %s", user.Username, actor.ID())
	return nil
}

func (s *adminService) ensureNotLastAdmin(ctx context.Context) error {
	admins, err := s.repo.Users.CountAdmins(ctx)
	if err != nil {
		return fmt.Errorf("failed to count admins: %w", err)
	}
	if admins <= 1 {
		return newError(ErrLastAdmin, "cannot remove the last admin")
	}
	return nil
}

// ListPosts lists posts in every status unless a status is requested.
func (s *adminService) ListPosts(ctx context.Context, q PostQuery) ([]*models.Post, pagination.Meta, error) {
	posts, total, err := s.repo.Posts.List(ctx, repository.PostFilter{
		Search:   q.Search,
		Tag:      q.Tag,
		Status:   q.Status,
		Featured: q.Featured,
		Sort:     q.Sort,
		Page:     q.Page,
	})
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return posts, pagination.NewMeta(q.Page, total), nil
}

func (s *adminService) DeletePost(ctx context.Context, postID string) error {
	if err := s.repo.Posts.Delete(ctx, postID); err != nil {
		return notFoundOr(err, "post")
	}
	s.stats.Purge()
	return nil
}

func (s *adminService) ListComments(ctx context.Context, q CommentQuery) ([]*models.Comment, pagination.Meta, error) {
	comments, total, err := s.repo.Comments.List(ctx, repository.CommentFilter{
		Search: q.Search,
		PostID: q.PostID,
		Status: q.Status,
		Sort:   q.Sort,
		Page:   q.Page,
	})
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return comments, pagination.NewMeta(q.Page, total), nil
}

func (s *adminService) DeleteComment(ctx context.Context, commentID string) (int64, error) {
	deleted, err := s.repo.Comments.DeleteWithReplies(ctx, commentID)
	if err != nil {
		return 0, notFoundOr(err, "comment")
	}
	s.stats.Purge()
	return deleted, nil
}
