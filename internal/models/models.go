package models

import (
	"time"

	"github.com/lib/pq"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
	PostStatusArchived  = "archived"
)

const (
	CommentStatusApproved = "approved"
	CommentStatusPending  = "pending"
	CommentStatusSpam     = "spam"
)

const (
	DefaultPostImage  = "https://images.pexels.com/photos/261763/pexels-photo-261763.jpeg?auto=compress&cs=tinysrgb&w=800"
	DefaultUserAvatar = "https://images.pexels.com/photos/1391498/pexels-photo-1391498.jpeg?auto=compress&cs=tinysrgb&w=100"
)

type User struct {
	UserID                 string         `json:"userId" db:"user_id"`
	Username               string         `json:"username" db:"username"`
	Email                  string         `json:"email" db:"email"`
	PasswordHash           string         `json:"-" db:"password_hash"`
	Role                   string         `json:"role" db:"role"`
	Avatar                 string         `json:"avatar" db:"avatar"`
	Bio                    string         `json:"bio" db:"bio"`
	Location               string         `json:"location" db:"location"`
	Website                string         `json:"website" db:"website"`
	Twitter                string         `json:"twitter" db:"twitter"`
	Github                 string         `json:"github" db:"github"`
	Followers              pq.StringArray `json:"followers" db:"followers"`
	Following              pq.StringArray `json:"following" db:"following"`
	Bookmarks              pq.StringArray `json:"bookmarks" db:"bookmarks"`
	IsActive               bool           `json:"isActive" db:"is_active"`
	EmailVerified          bool           `json:"emailVerified" db:"email_verified"`
	LastLogin              *time.Time     `json:"lastLogin,omitempty" db:"last_login"`
	RefreshToken           string         `json:"-" db:"refresh_token"`
	RefreshTokenExpiryTime time.Time      `json:"-" db:"refresh_token_expiry_time"`
	CreatedAt              time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt              time.Time      `json:"updatedAt" db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// UserSummary is the author projection embedded into posts and comments.
type UserSummary struct {
	UserID   string `json:"userId" db:"user_id"`
	Username string `json:"username" db:"username"`
	Avatar   string `json:"avatar" db:"avatar"`
	Bio      string `json:"bio,omitempty" db:"bio"`
}

type UserStats struct {
	Posts     int `json:"posts" db:"posts"`
	Followers int `json:"followers" db:"-"`
	Following int `json:"following" db:"-"`
	Likes     int `json:"likes" db:"likes"`
	Views     int `json:"views" db:"views"`
	Comments  int `json:"comments" db:"comments"`
}

type UserProfile struct {
	*User
	Stats UserStats `json:"stats"`
}

// AdminUser is a user row as listed in the admin panel, with the number of posts they authored.
type AdminUser struct {
	User
	PostCount int `json:"posts" db:"post_count"`
}

type Post struct {
	PostID          string         `json:"postId" db:"post_id"`
	Title           string         `json:"title" db:"title"`
	Slug            string         `json:"slug" db:"slug"`
	Excerpt         string         `json:"excerpt" db:"excerpt"`
	Content         string         `json:"content" db:"content"`
	Format          string         `json:"format" db:"format"`
	Image           string         `json:"image" db:"image"`
	AuthorID        string         `json:"authorId" db:"author_id"`
	Author          UserSummary    `json:"author" db:"author"`
	Tags            pq.StringArray `json:"tags" db:"tags"`
	Status          string         `json:"status" db:"status"`
	Likes           int            `json:"likes" db:"likes"`
	LikedBy         pq.StringArray `json:"likedBy" db:"liked_by"`
	Views           int            `json:"views" db:"views"`
	ReadingTime     int            `json:"readingTime" db:"reading_time"`
	Featured        bool           `json:"featured" db:"featured"`
	CommentsEnabled bool           `json:"commentsEnabled" db:"comments_enabled"`
	CommentCount    int            `json:"commentCount" db:"comment_count"`
	CreatedAt       time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time      `json:"updatedAt" db:"updated_at"`

	IsLiked      *bool `json:"isLiked,omitempty" db:"-"`
	IsBookmarked *bool `json:"isBookmarked,omitempty" db:"-"`
}

type Comment struct {
	CommentID string         `json:"commentId" db:"comment_id"`
	Content   string         `json:"content" db:"content"`
	AuthorID  string         `json:"authorId" db:"author_id"`
	Author    UserSummary    `json:"author" db:"author"`
	PostID    string         `json:"postId" db:"post_id"`
	PostTitle string         `json:"postTitle,omitempty" db:"post_title"`
	ParentID  *string        `json:"parentId" db:"parent_id"`
	Likes     int            `json:"likes" db:"likes"`
	LikedBy   pq.StringArray `json:"likedBy" db:"liked_by"`
	Status    string         `json:"status" db:"status"`
	IsEdited  bool           `json:"isEdited" db:"is_edited"`
	EditedAt  *time.Time     `json:"editedAt,omitempty" db:"edited_at"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time      `json:"updatedAt" db:"updated_at"`

	Replies []*Comment `json:"replies,omitempty" db:"-"`
}

func (c *Comment) IsTopLevel() bool {
	return c.ParentID == nil
}

type Image struct {
	ImageID    string    `json:"imageId" db:"image_id"`
	UploaderID string    `json:"uploaderId" db:"uploader_id"`
	ObjectName string    `json:"publicId" db:"object_name"`
	ImageURL   string    `json:"url" db:"image_url"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

type SiteStats struct {
	TotalUsers           int `json:"totalUsers" db:"total_users"`
	TotalPosts           int `json:"totalPosts" db:"total_posts"`
	TotalComments        int `json:"totalComments" db:"total_comments"`
	TotalViews           int `json:"totalViews" db:"total_views"`
	NewUsersThisMonth    int `json:"newUsersThisMonth" db:"new_users_this_month"`
	NewPostsThisMonth    int `json:"newPostsThisMonth" db:"new_posts_this_month"`
	NewCommentsThisMonth int `json:"newCommentsThisMonth" db:"new_comments_this_month"`
}
