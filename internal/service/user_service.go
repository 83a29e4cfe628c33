package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"blogHub/internal/auth"
	"blogHub/internal/config"
	"blogHub/internal/models"
	"blogHub/internal/pagination"
	"blogHub/internal/repository"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,30}$`)

type UserService interface {
	GetProfile(ctx context.Context, actor *auth.Actor, username string) (*ProfileView, error)
	UpdateProfile(ctx context.Context, actor *auth.Actor, in ProfileUpdate) (*models.User, error)
	ToggleFollow(ctx context.Context, actor *auth.Actor, targetID string) (*FollowResult, error)
	Followers(ctx context.Context, userID string, page pagination.Params) ([]*models.UserSummary, pagination.Meta, error)
	Following(ctx context.Context, userID string, page pagination.Params) ([]*models.UserSummary, pagination.Meta, error)
	Search(ctx context.Context, q UserQuery) ([]*models.UserSummary, pagination.Meta, error)
	Bookmarks(ctx context.Context, actor *auth.Actor, page pagination.Params) ([]*models.Post, pagination.Meta, error)
}

// ProfileView is the public profile: no email, no follow or bookmark sets.
type ProfileView struct {
	UserID      string           `json:"userId"`
	Username    string           `json:"username"`
	Avatar      string           `json:"avatar"`
	Bio         string           `json:"bio"`
	Location    string           `json:"location"`
	Website     string           `json:"website"`
	Twitter     string           `json:"twitter"`
	Github      string           `json:"github"`
	Role        string           `json:"role"`
	CreatedAt   time.Time        `json:"createdAt"`
	Stats       models.UserStats `json:"stats"`
	IsFollowing *bool            `json:"isFollowing,omitempty"`
}

type FollowResult struct {
	IsFollowing bool `json:"isFollowing"`
	Followers   int  `json:"followers"`
}

type userService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
	cfg      *config.Config
}

func NewUserService(userRepo repository.UserRepository, postRepo repository.PostRepository, cfg *config.Config) UserService {
	return &userService{
		userRepo: userRepo,
		postRepo: postRepo,
		cfg:      cfg,
	}
}

func (s *userService) GetProfile(ctx context.Context, actor *auth.Actor, username string) (*ProfileView, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, notFoundOr(err, "user")
	}
	if !user.IsActive && !actor.CanModify(user.UserID) {
		return nil, newError(ErrNotFound, "user not found")
	}

	stats, err := s.userRepo.Stats(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	stats.Followers = len(user.Followers)
	stats.Following = len(user.Following)

	view := &ProfileView{
		UserID:    user.UserID,
		Username:  user.Username,
		Avatar:    user.Avatar,
		Bio:       user.Bio,
		Location:  user.Location,
		Website:   user.Website,
		Twitter:   user.Twitter,
		Github:    user.Github,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		Stats:     stats,
	}
	if actor != nil && actor.UserID != user.UserID {
		following := contains(user.Followers, actor.UserID)
		view.IsFollowing = &following
	}
	return view, nil
}

func (s *userService) UpdateProfile(ctx context.Context, actor *auth.Actor, in ProfileUpdate) (*models.User, error) {
	if actor == nil {
		return nil, newError(ErrUnauthorized, "authentication required")
	}

	user, err := s.userRepo.GetUserByID(ctx, actor.UserID)
	if err != nil {
		return nil, notFoundOr(err, "user")
	}

	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if !usernamePattern.MatchString(username) {
			return nil, newError(ErrValidation, "username must be 3-30 letters, digits or underscores")
		}
		user.Username = username
	}
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&user.Avatar, in.Avatar)
	set(&user.Bio, in.Bio)
	set(&user.Location, in.Location)
	set(&user.Website, in.Website)
	set(&user.Twitter, in.Twitter)
	set(&user.Github, in.Github)

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, newError(ErrConflict, "username is already taken")
		}
		return nil, notFoundOr(err, "user")
	}
	return user, nil
}

// ToggleFollow follows the target when the actor does not follow them yet and unfollows otherwise.
// Both sides of the edge change together.
func (s *userService) ToggleFollow(ctx context.Context, actor *auth.Actor, targetID string) (*FollowResult, error) {
	if actor == nil {
		return nil, newError(ErrUnauthorized, "authentication required")
	}
	if actor.UserID == targetID {
		return nil, newError(ErrValidation, "you cannot follow yourself")
	}

	target, err := s.userRepo.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, notFoundOr(err, "user")
	}

	followers := len(target.Followers)
	if contains(target.Followers, actor.UserID) {
		if err := s.userRepo.Unfollow(ctx, actor.UserID, targetID); err != nil {
			return nil, err
		}
		return &FollowResult{IsFollowing: false, Followers: followers - 1}, nil
	}

	if err := s.userRepo.Follow(ctx, actor.UserID, targetID); err != nil {
		return nil, err
	}
	return &FollowResult{IsFollowing: true, Followers: followers + 1}, nil
}

func (s *userService) Followers(ctx context.Context, userID string, page pagination.Params) ([]*models.UserSummary, pagination.Meta, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, pagination.Meta{}, notFoundOr(err, "user")
	}
	return s.summaries(ctx, user.Followers, page)
}

func (s *userService) Following(ctx context.Context, userID string, page pagination.Params) ([]*models.UserSummary, pagination.Meta, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, pagination.Meta{}, notFoundOr(err, "user")
	}
	return s.summaries(ctx, user.Following, page)
}

func (s *userService) summaries(ctx context.Context, ids []string, page pagination.Params) ([]*models.UserSummary, pagination.Meta, error) {
	if ids == nil {
		ids = []string{}
	}
	users, total, err := s.userRepo.ListSummaries(ctx, ids, page)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return users, pagination.NewMeta(page, total), nil
}

// Search matches active users by username or bio.
func (s *userService) Search(ctx context.Context, q UserQuery) ([]*models.UserSummary, pagination.Meta, error) {
	users, total, err := s.userRepo.List(ctx, repository.UserFilter{
		Search:     q.Search,
		ActiveOnly: true,
		Sort:       "username",
		Page:       q.Page,
	})
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	out := make([]*models.UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, &models.UserSummary{UserID: u.UserID, Username: u.Username, Avatar: u.Avatar, Bio: u.Bio})
	}
	return out, pagination.NewMeta(q.Page, total), nil
}

// Bookmarks lists the actor's bookmarked posts that are still published.
func (s *userService) Bookmarks(ctx context.Context, actor *auth.Actor, page pagination.Params) ([]*models.Post, pagination.Meta, error) {
	if actor == nil {
		return nil, pagination.Meta{}, newError(ErrUnauthorized, "authentication required")
	}

	user, err := s.userRepo.GetUserByID(ctx, actor.UserID)
	if err != nil {
		return nil, pagination.Meta{}, notFoundOr(err, "user")
	}

	ids := []string(user.Bookmarks)
	if ids == nil {
		ids = []string{}
	}
	posts, total, err := s.postRepo.List(ctx, repository.PostFilter{
		IDs:    ids,
		Status: models.PostStatusPublished,
		Page:   page,
	})
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	for _, p := range posts {
		liked := contains(p.LikedBy, actor.UserID)
		bookmarked := true
		p.IsLiked = &liked
		p.IsBookmarked = &bookmarked
	}
	return posts, pagination.NewMeta(page, total), nil
}
