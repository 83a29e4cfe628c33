package service

import (
	"blogHub/internal/config"
	"blogHub/internal/repository"
	"blogHub/internal/storage"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Post    PostService
	Comment CommentService
	Admin   AdminService
	Image   ImageService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Auth:    NewAuthService(rep.Users, cfg),
		User:    NewUserService(rep.Users, rep.Posts, cfg),
		Post:    NewPostService(rep.Posts, rep.Users, cfg),
		Comment: NewCommentService(rep.Comments, rep.Posts, cfg),
		Admin:   NewAdminService(rep, cfg),
		Image:   NewImageService(rep.Images, storage, cfg),
	}
}
