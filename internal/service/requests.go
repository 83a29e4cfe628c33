package service

import "blogHub/internal/pagination"

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type PostInput struct {
	Title           string   `json:"title" validate:"required,max=200"`
	Content         string   `json:"content" validate:"required"`
	Format          string   `json:"format" validate:"omitempty,oneof=html markdown"`
	Excerpt         string   `json:"excerpt" validate:"max=500"`
	Image           string   `json:"image" validate:"omitempty,url"`
	Tags            []string `json:"tags" validate:"max=20,dive,max=50"`
	Status          string   `json:"status" validate:"omitempty,oneof=draft published archived"`
	Featured        bool     `json:"featured"`
	CommentsEnabled *bool    `json:"commentsEnabled"`
}

// PostUpdate is a partial update; nil fields are left as they are.
type PostUpdate struct {
	Title           *string  `json:"title" validate:"omitempty,max=200"`
	Content         *string  `json:"content"`
	Format          string   `json:"format" validate:"omitempty,oneof=html markdown"`
	Excerpt         *string  `json:"excerpt" validate:"omitempty,max=500"`
	Image           *string  `json:"image" validate:"omitempty,url"`
	Tags            []string `json:"tags" validate:"omitempty,max=20,dive,max=50"`
	Status          *string  `json:"status" validate:"omitempty,oneof=draft published archived"`
	Featured        *bool    `json:"featured"`
	CommentsEnabled *bool    `json:"commentsEnabled"`
}

type PostQuery struct {
	Search   string
	Tag      string
	Author   string
	Status   string
	Featured *bool
	Sort     string
	Page     pagination.Params
}

type CommentInput struct {
	Content  string  `json:"content" validate:"required,max=1000"`
	PostID   string  `json:"postId" validate:"required"`
	ParentID *string `json:"parentId"`
}

type CommentUpdate struct {
	Content string `json:"content" validate:"required,max=1000"`
}

type CommentQuery struct {
	Search string
	PostID string
	Status string
	Sort   string
	Page   pagination.Params
}

type ProfileUpdate struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=30"`
	Avatar   *string `json:"avatar" validate:"omitempty,url"`
	Bio      *string `json:"bio" validate:"omitempty,max=500"`
	Location *string `json:"location" validate:"omitempty,max=100"`
	Website  *string `json:"website" validate:"omitempty,url"`
	Twitter  *string `json:"twitter" validate:"omitempty,max=100"`
	Github   *string `json:"github" validate:"omitempty,max=100"`
}

type UserQuery struct {
	Search string
	Role   string
	Sort   string
	Page   pagination.Params
}

type RoleUpdate struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}
