package handler

import (
	"encoding/json"
	"net/http"
	"taskhub/internal/api/middleware"
	"taskhub/internal/app/service"
	"taskhub/internal/common"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	userService *service.UserService
	authGuard   func(http.Handler) http.Handler
}

func NewUserHandler(userService *service.UserService, authGuard func(http.Handler) http.Handler) *UserHandler {
	return &UserHandler{userService: userService, authGuard: authGuard}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Use(h.authGuard)

	r.Get("/", h.listUsers)
	r.Put("/profile", h.updateProfile)
	r.Get("/{userID}", h.getUser)
}

func (h *UserHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, users)
}

func (h *UserHandler) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *UserHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetCurrentUser(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if details, err := common.ValidateStruct(req); err != nil {
		common.RespondWithValidationError(w, details)
		return
	}

	updated, err := h.userService.UpdateProfile(r.Context(), user, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, updated)
}
