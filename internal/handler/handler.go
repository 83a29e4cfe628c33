package handlers

import (
	"context"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"blogHub/internal/config"
	"blogHub/internal/service"
)

// HealthChecker is the part of the database the health endpoint needs.
type HealthChecker interface {
	HealthCheck() error
}

// TableCounter reports how many application tables exist.
type TableCounter interface {
	CountTables(ctx context.Context) (int, error)
}

type Handlers struct {
	AuthService    service.AuthService
	UserService    service.UserService
	PostService    service.PostService
	CommentService service.CommentService
	AdminService   service.AdminService
	ImageService   service.ImageService
	DB             HealthChecker
	Tables         TableCounter
	Cfg            *config.Config
	Validate       *validator.Validate
}

func NewHandlers(services *service.Service, db HealthChecker, tables TableCounter, cfg *config.Config) *Handlers {
	return &Handlers{
		AuthService:    services.Auth,
		UserService:    services.User,
		PostService:    services.Post,
		CommentService: services.Comment,
		AdminService:   services.Admin,
		ImageService:   services.Image,
		DB:             db,
		Tables:         tables,
		Cfg:            cfg,
		Validate:       newValidator(),
	}
}

// newValidator reports field errors under their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}
