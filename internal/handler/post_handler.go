package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"blogHub/internal/auth"
	"blogHub/internal/models"
	"blogHub/internal/service"
)

// GetPosts lists posts. Without a status filter only published posts are returned.
func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	q := service.PostQuery{
		Search: query.Get("search"),
		Tag:    query.Get("tag"),
		Author: query.Get("author"),
		Status: query.Get("status"),
		Sort:   query.Get("sort"),
		Page:   h.page(r),
	}
	if q.Status == "" {
		q.Status = models.PostStatusPublished
	}
	if featured, err := strconv.ParseBool(query.Get("featured")); err == nil {
		q.Featured = &featured
	}

	posts, meta, err := h.PostService.List(r.Context(), auth.ActorFrom(r.Context()), q)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writePaginated(w, posts, meta)
}

func (h *Handlers) GetUserPosts(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	posts, meta, err := h.PostService.ListByUser(r.Context(), auth.ActorFrom(r.Context()), username, h.page(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writePaginated(w, posts, meta)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	post, err := h.PostService.GetBySlug(r.Context(), auth.ActorFrom(r.Context()), slug)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, post, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req service.PostInput
	if !h.decode(w, r, &req) {
		return
	}

	post, err := h.PostService.Create(r.Context(), auth.ActorFrom(r.Context()), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeMessage(w, "Post created successfully", post, http.StatusCreated)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	var req service.PostUpdate
	if !h.decode(w, r, &req) {
		return
	}

	post, err := h.PostService.Update(r.Context(), auth.ActorFrom(r.Context()), postID, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeMessage(w, "Post updated successfully", post, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	if err := h.PostService.Delete(r.Context(), auth.ActorFrom(r.Context()), postID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeMessage(w, "Post deleted successfully", nil, http.StatusOK)
}

func (h *Handlers) LikePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	result, err := h.PostService.ToggleLike(r.Context(), auth.ActorFrom(r.Context()), postID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, result, http.StatusOK)
}

func (h *Handlers) BookmarkPost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	result, err := h.PostService.ToggleBookmark(r.Context(), auth.ActorFrom(r.Context()), postID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, result, http.StatusOK)
}
