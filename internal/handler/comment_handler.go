package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"blogHub/internal/auth"
	"blogHub/internal/service"
)

func (h *Handlers) GetPostComments(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]

	comments, meta, err := h.CommentService.ListForPost(r.Context(), auth.ActorFrom(r.Context()), postID, h.page(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writePaginated(w, comments, meta)
}

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	var req service.CommentInput
	if !h.decode(w, r, &req) {
		return
	}

	comment, err := h.CommentService.Create(r.Context(), auth.ActorFrom(r.Context()), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeMessage(w, "Comment created successfully", comment, http.StatusCreated)
}

func (h *Handlers) UpdateComment(w http.ResponseWriter, r *http.Request) {
	commentID := mux.Vars(r)["id"]

	var req service.CommentUpdate
	if !h.decode(w, r, &req) {
		return
	}

	comment, err := h.CommentService.Update(r.Context(), auth.ActorFrom(r.Context()), commentID, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeMessage(w, "Comment updated successfully", comment, http.StatusOK)
}

func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID := mux.Vars(r)["id"]

	deleted, err := h.CommentService.Delete(r.Context(), auth.ActorFrom(r.Context()), commentID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeMessage(w, "Comment deleted successfully", map[string]int64{"deleted": deleted}, http.StatusOK)
}

func (h *Handlers) LikeComment(w http.ResponseWriter, r *http.Request) {
	commentID := mux.Vars(r)["id"]

	result, err := h.CommentService.ToggleLike(r.Context(), auth.ActorFrom(r.Context()), commentID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, result, http.StatusOK)
}
