package app

import (
	"net/http"

	"github.com/gorilla/mux"

	"blogHub/internal/config"
	handlers "blogHub/internal/handler"
	"blogHub/internal/middleware"
	"blogHub/internal/models"
)

// NewRouter mounts every endpoint under /api and wraps the router with logging and CORS.
func NewRouter(h *handlers.Handlers, cfg *config.Config) http.Handler {
	optional := middleware.OptionalAuthMiddleware(h.AuthService)
	protected := middleware.AuthMiddleware(h.AuthService)
	admin := middleware.RoleMiddleware(models.RoleAdmin)

	open := func(f http.HandlerFunc) http.Handler { return f }
	withUser := func(f http.HandlerFunc) http.Handler { return optional(f) }
	authed := func(f http.HandlerFunc) http.Handler { return protected(f) }
	adminOnly := func(f http.HandlerFunc) http.Handler { return protected(admin(f)) }

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, "Route not found", http.StatusNotFound)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	// Routes are registered on the root router with full paths. Routes under a subrouter inherit its
	// prefix matcher, and that matcher succeeding on a later route clears the method mismatch, so a
	// 405 would come back as a 404.
	router.Handle("/api/health", open(h.Health)).Methods(http.MethodGet)

	router.Handle("/api/auth/register", open(h.Register)).Methods(http.MethodPost)
	router.Handle("/api/auth/login", open(h.Login)).Methods(http.MethodPost)
	router.Handle("/api/auth/refresh-token", open(h.RefreshToken)).Methods(http.MethodPost)
	router.Handle("/api/auth/me", authed(h.Me)).Methods(http.MethodGet)

	router.Handle("/api/posts", withUser(h.GetPosts)).Methods(http.MethodGet)
	router.Handle("/api/posts", authed(h.CreatePost)).Methods(http.MethodPost)
	router.Handle("/api/posts/user/{username}", withUser(h.GetUserPosts)).Methods(http.MethodGet)
	router.Handle("/api/posts/{slug}", withUser(h.GetPost)).Methods(http.MethodGet)
	router.Handle("/api/posts/{id}", authed(h.UpdatePost)).Methods(http.MethodPut)
	router.Handle("/api/posts/{id}", authed(h.DeletePost)).Methods(http.MethodDelete)
	router.Handle("/api/posts/{id}/like", authed(h.LikePost)).Methods(http.MethodPost)
	router.Handle("/api/posts/{id}/bookmark", authed(h.BookmarkPost)).Methods(http.MethodPost)

	router.Handle("/api/comments/post/{postId}", withUser(h.GetPostComments)).Methods(http.MethodGet)
	router.Handle("/api/comments", authed(h.CreateComment)).Methods(http.MethodPost)
	router.Handle("/api/comments/{id}", authed(h.UpdateComment)).Methods(http.MethodPut)
	router.Handle("/api/comments/{id}", authed(h.DeleteComment)).Methods(http.MethodDelete)
	router.Handle("/api/comments/{id}/like", authed(h.LikeComment)).Methods(http.MethodPost)

	router.Handle("/api/users/search", open(h.SearchUsers)).Methods(http.MethodGet)
	router.Handle("/api/users/me/bookmarks", authed(h.GetBookmarks)).Methods(http.MethodGet)
	router.Handle("/api/users/me", authed(h.UpdateProfile)).Methods(http.MethodPut)
	router.Handle("/api/users/{id}/follow", authed(h.FollowUser)).Methods(http.MethodPost)
	router.Handle("/api/users/{id}/followers", open(h.GetFollowers)).Methods(http.MethodGet)
	router.Handle("/api/users/{id}/following", open(h.GetFollowing)).Methods(http.MethodGet)
	router.Handle("/api/users/{username}", withUser(h.GetProfile)).Methods(http.MethodGet)

	router.Handle("/api/admin/stats", adminOnly(h.AdminStats)).Methods(http.MethodGet)
	router.Handle("/api/admin/users", adminOnly(h.AdminListUsers)).Methods(http.MethodGet)
	router.Handle("/api/admin/users/{id}/role", adminOnly(h.AdminUpdateRole)).Methods(http.MethodPut)
	router.Handle("/api/admin/users/{id}", adminOnly(h.AdminDeleteUser)).Methods(http.MethodDelete)
	router.Handle("/api/admin/posts", adminOnly(h.AdminListPosts)).Methods(http.MethodGet)
	router.Handle("/api/admin/posts/{id}", adminOnly(h.AdminDeletePost)).Methods(http.MethodDelete)
	router.Handle("/api/admin/comments", adminOnly(h.AdminListComments)).Methods(http.MethodGet)
	router.Handle("/api/admin/comments/{id}", adminOnly(h.AdminDeleteComment)).Methods(http.MethodDelete)

	router.Handle("/api/upload/image", authed(h.UploadImage)).Methods(http.MethodPost)
	router.Handle("/api/upload/image/{publicId}", authed(h.DeleteImage)).Methods(http.MethodDelete)

	return middleware.Chain(router,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware(cfg.CORSAllowedOrigin),
	)
}
