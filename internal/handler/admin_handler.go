package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"blogHub/internal/auth"
	"blogHub/internal/service"
)

func (h *Handlers) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.AdminService.Stats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, stats, http.StatusOK)
}

func (h *Handlers) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := service.UserQuery{
		Search: query.Get("search"),
		Role:   query.Get("role"),
		Sort:   query.Get("sort"),
		Page:   h.page(r),
	}

	users, meta, err := h.AdminService.ListUsers(r.Context(), q)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writePaginated(w, users, meta)
}

func (h *Handlers) AdminUpdateRole(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	var req service.RoleUpdate
	if !h.decode(w, r, &req) {
		return
	}

	user, err := h.AdminService.UpdateRole(r.Context(), auth.ActorFrom(r.Context()), userID, req.Role)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeMessage(w, "User role updated successfully", user, http.StatusOK)
}

func (h *Handlers) AdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	if err := h.AdminService.DeleteUser(r.Context(), auth.ActorFrom(r.Context()), userID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeMessage(w, "User deleted successfully", nil, http.StatusOK)
}

// AdminListPosts lists posts in every status unless one is requested.
func (h *Handlers) AdminListPosts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := service.PostQuery{
		Search: query.Get("search"),
		Tag:    query.Get("tag"),
		Status: query.Get("status"),
		Sort:   query.Get("sort"),
		Page:   h.page(r),
	}
	if featured, err := strconv.ParseBool(query.Get("featured")); err == nil {
		q.Featured = &featured
	}

	posts, meta, err := h.AdminService.ListPosts(r.Context(), q)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writePaginated(w, posts, meta)
}

func (h *Handlers) AdminDeletePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	if err := h.AdminService.DeletePost(r.Context(), postID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeMessage(w, "Post deleted successfully", nil, http.StatusOK)
}

func (h *Handlers) AdminListComments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := service.CommentQuery{
		Search: query.Get("search"),
		PostID: query.Get("postId"),
		Status: query.Get("status"),
		Sort:   query.Get("sort"),
		Page:   h.page(r),
	}

	comments, meta, err := h.AdminService.ListComments(r.Context(), q)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writePaginated(w, comments, meta)
}

func (h *Handlers) AdminDeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID := mux.Vars(r)["id"]

	deleted, err := h.AdminService.DeleteComment(r.Context(), commentID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeMessage(w, "Comment deleted successfully", map[string]int64{"deleted": deleted}, http.StatusOK)
}
