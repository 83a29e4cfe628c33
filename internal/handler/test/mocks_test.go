package test

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"blogHub/internal/auth"
	"blogHub/internal/models"
	"blogHub/internal/pagination"
	"blogHub/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req service.RegisterRequest) (*service.AuthResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req service.LoginRequest) (*service.AuthResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) RefreshTokens(ctx context.Context, refreshToken string) (*service.AuthResult, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) Me(ctx context.Context, actor *auth.Actor) (*models.User, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*auth.Actor, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Actor), args.Error(1)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) List(ctx context.Context, actor *auth.Actor, q service.PostQuery) ([]*models.Post, pagination.Meta, error) {
	args := m.Called(ctx, actor, q)
	return args.Get(0).([]*models.Post), args.Get(1).(pagination.Meta), args.Error(2)
}

func (m *MockPostService) ListByUser(ctx context.Context, actor *auth.Actor, username string, page pagination.Params) ([]*models.Post, pagination.Meta, error) {
	args := m.Called(ctx, actor, username, page)
	return args.Get(0).([]*models.Post), args.Get(1).(pagination.Meta), args.Error(2)
}

func (m *MockPostService) GetBySlug(ctx context.Context, actor *auth.Actor, slug string) (*models.Post, error) {
	args := m.Called(ctx, actor, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) Create(ctx context.Context, actor *auth.Actor, in service.PostInput) (*models.Post, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) Update(ctx context.Context, actor *auth.Actor, postID string, in service.PostUpdate) (*models.Post, error) {
	args := m.Called(ctx, actor, postID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) Delete(ctx context.Context, actor *auth.Actor, postID string) error {
	args := m.Called(ctx, actor, postID)
	return args.Error(0)
}

func (m *MockPostService) ToggleLike(ctx context.Context, actor *auth.Actor, postID string) (*service.LikeResult, error) {
	args := m.Called(ctx, actor, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LikeResult), args.Error(1)
}

func (m *MockPostService) ToggleBookmark(ctx context.Context, actor *auth.Actor, postID string) (*service.BookmarkResult, error) {
	args := m.Called(ctx, actor, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BookmarkResult), args.Error(1)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) ListForPost(ctx context.Context, actor *auth.Actor, postID string, page pagination.Params) ([]*models.Comment, pagination.Meta, error) {
	args := m.Called(ctx, actor, postID, page)
	return args.Get(0).([]*models.Comment), args.Get(1).(pagination.Meta), args.Error(2)
}

func (m *MockCommentService) Create(ctx context.Context, actor *auth.Actor, in service.CommentInput) (*models.Comment, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) Update(ctx context.Context, actor *auth.Actor, commentID string, in service.CommentUpdate) (*models.Comment, error) {
	args := m.Called(ctx, actor, commentID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) Delete(ctx context.Context, actor *auth.Actor, commentID string) (int64, error) {
	args := m.Called(ctx, actor, commentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentService) ToggleLike(ctx context.Context, actor *auth.Actor, commentID string) (*service.LikeResult, error) {
	args := m.Called(ctx, actor, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LikeResult), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetProfile(ctx context.Context, actor *auth.Actor, username string) (*service.ProfileView, error) {
	args := m.Called(ctx, actor, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProfileView), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, actor *auth.Actor, in service.ProfileUpdate) (*models.User, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) ToggleFollow(ctx context.Context, actor *auth.Actor, targetID string) (*service.FollowResult, error) {
	args := m.Called(ctx, actor, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FollowResult), args.Error(1)
}

func (m *MockUserService) Followers(ctx context.Context, userID string, page pagination.Params) ([]*models.UserSummary, pagination.Meta, error) {
	args := m.Called(ctx, userID, page)
	return args.Get(0).([]*models.UserSummary), args.Get(1).(pagination.Meta), args.Error(2)
}

func (m *MockUserService) Following(ctx context.Context, userID string, page pagination.Params) ([]*models.UserSummary, pagination.Meta, error) {
	args := m.Called(ctx, userID, page)
	return args.Get(0).([]*models.UserSummary), args.Get(1).(pagination.Meta), args.Error(2)
}

func (m *MockUserService) Search(ctx context.Context, q service.UserQuery) ([]*models.UserSummary, pagination.Meta, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]*models.UserSummary), args.Get(1).(pagination.Meta), args.Error(2)
}

func (m *MockUserService) Bookmarks(ctx context.Context, actor *auth.Actor, page pagination.Params) ([]*models.Post, pagination.Meta, error) {
	args := m.Called(ctx, actor, page)
	return args.Get(0).([]*models.Post), args.Get(1).(pagination.Meta), args.Error(2)
}

type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) Stats(ctx context.Context) (*models.SiteStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SiteStats), args.Error(1)
}

func (m *MockAdminService) ListUsers(ctx context.Context, q service.UserQuery) ([]*models.AdminUser, pagination.Meta, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]*models.AdminUser), args.Get(1).(pagination.Meta), args.Error(2)
}

func (m *MockAdminService) UpdateRole(ctx context.Context, actor *auth.Actor, userID string, role string) (*models.User, error) {
	args := m.Called(ctx, actor, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAdminService) DeleteUser(ctx context.Context, actor *auth.Actor, userID string) error {
	args := m.Called(ctx, actor, userID)
	return args.Error(0)
}

func (m *MockAdminService) ListPosts(ctx context.Context, q service.PostQuery) ([]*models.Post, pagination.Meta, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]*models.Post), args.Get(1).(pagination.Meta), args.Error(2)
}

func (m *MockAdminService) DeletePost(ctx context.Context, postID string) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

func (m *MockAdminService) ListComments(ctx context.Context, q service.CommentQuery) ([]*models.Comment, pagination.Meta, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]*models.Comment), args.Get(1).(pagination.Meta), args.Error(2)
}

func (m *MockAdminService) DeleteComment(ctx context.Context, commentID string) (int64, error) {
	args := m.Called(ctx, commentID)
	return args.Get(0).(int64), args.Error(1)
}

type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) Upload(ctx context.Context, actor *auth.Actor, fileName string, file io.Reader, size int64, contentType string) (*models.Image, error) {
	args := m.Called(ctx, actor, fileName, file, size, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Image), args.Error(1)
}

func (m *MockImageService) Delete(ctx context.Context, actor *auth.Actor, objectName string) error {
	args := m.Called(ctx, actor, objectName)
	return args.Error(0)
}

type MockHealth struct {
	mock.Mock
}

func (m *MockHealth) HealthCheck() error {
	return m.Called().Error(0)
}

func (m *MockHealth) CountTables(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// mockCtx matches the request context handed to a service.
var mockCtx = mock.Anything
