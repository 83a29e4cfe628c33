package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"blogHub/internal/models"
	"blogHub/internal/pagination"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	UpdateRole(ctx context.Context, userID, role string) error
	TouchLastLogin(ctx context.Context, userID string, at time.Time) error
	DeleteUser(ctx context.Context, userID string) error
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error
	GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error)
	Follow(ctx context.Context, followerID, targetID string) error
	Unfollow(ctx context.Context, followerID, targetID string) error
	AddBookmark(ctx context.Context, userID, postID string) error
	RemoveBookmark(ctx context.Context, userID, postID string) error
	ListSummaries(ctx context.Context, userIDs []string, p pagination.Params) ([]*models.UserSummary, int, error)
	List(ctx context.Context, f UserFilter) ([]*models.AdminUser, int, error)
	Stats(ctx context.Context, userID string) (models.UserStats, error)
	CountAdmins(ctx context.Context) (int, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	IncrementViews(ctx context.Context, postID string) error
	SaveLikes(ctx context.Context, postID string, likedBy []string) error
	Delete(ctx context.Context, postID string) error
	List(ctx context.Context, f PostFilter) ([]*models.Post, int, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	UpdateContent(ctx context.Context, commentID, content string, at time.Time) error
	GetByID(ctx context.Context, commentID string) (*models.Comment, error)
	ListTopLevel(ctx context.Context, postID, status string, p pagination.Params) ([]*models.Comment, int, error)
	ListReplies(ctx context.Context, parentIDs []string, status string) ([]*models.Comment, error)
	DeleteWithReplies(ctx context.Context, commentID string) (int64, error)
	SaveLikes(ctx context.Context, commentID string, likedBy []string) error
	List(ctx context.Context, f CommentFilter) ([]*models.Comment, int, error)
}

type ImageRepository interface {
	Create(ctx context.Context, image *models.Image) error
	GetByObjectName(ctx context.Context, objectName string) (*models.Image, error)
	Delete(ctx context.Context, imageID string) error
}

type StatsRepository interface {
	SiteStats(ctx context.Context, since time.Time) (*models.SiteStats, error)
	CountTables(ctx context.Context) (int, error)
}

// Repository groups every store backed by the same database handle.
type Repository struct {
	Users    UserRepository
	Posts    PostRepository
	Comments CommentRepository
	Images   ImageRepository
	Stats    StatsRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Users:    NewUserRepository(db),
		Posts:    NewPostRepository(db),
		Comments: NewCommentRepository(db),
		Images:   NewImageRepository(db),
		Stats:    NewStatsRepository(db),
	}
}
