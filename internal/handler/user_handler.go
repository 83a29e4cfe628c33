package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"blogHub/internal/auth"
	"blogHub/internal/service"
)

func (h *Handlers) SearchUsers(w http.ResponseWriter, r *http.Request) {
	q := service.UserQuery{
		Search: r.URL.Query().Get("q"),
		Page:   h.page(r),
	}

	users, meta, err := h.UserService.Search(r.Context(), q)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writePaginated(w, users, meta)
}

func (h *Handlers) GetBookmarks(w http.ResponseWriter, r *http.Request) {
	posts, meta, err := h.UserService.Bookmarks(r.Context(), auth.ActorFrom(r.Context()), h.page(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writePaginated(w, posts, meta)
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req service.ProfileUpdate
	if !h.decode(w, r, &req) {
		return
	}

	user, err := h.UserService.UpdateProfile(r.Context(), auth.ActorFrom(r.Context()), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeMessage(w, "Profile updated successfully", user, http.StatusOK)
}

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	profile, err := h.UserService.GetProfile(r.Context(), auth.ActorFrom(r.Context()), username)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, profile, http.StatusOK)
}

func (h *Handlers) FollowUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	result, err := h.UserService.ToggleFollow(r.Context(), auth.ActorFrom(r.Context()), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, result, http.StatusOK)
}

func (h *Handlers) GetFollowers(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	users, meta, err := h.UserService.Followers(r.Context(), userID, h.page(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writePaginated(w, users, meta)
}

func (h *Handlers) GetFollowing(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	users, meta, err := h.UserService.Following(r.Context(), userID, h.page(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writePaginated(w, users, meta)
}
