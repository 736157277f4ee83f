package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/hywel/accountd/internal/api/middleware"
	"github.com/hywel/accountd/internal/api/respond"
	"github.com/hywel/accountd/internal/domain"
	"github.com/hywel/accountd/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	validate    *validator.Validate
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

type LoginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"pass_word" validate:"required"`
	DeviceName string `json:"device_name"`
}

type LoginResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

type LogoutRequest struct {
	ID    int64  `json:"id" validate:"required"`
	Token string `json:"token"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respond.FromError(w, err)
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginInput{
		Email:      req.Email,
		Password:   req.Password,
		DeviceName: req.DeviceName,
		Client: map[string]string{
			"userAgent":  r.UserAgent(),
			"remoteAddr": r.RemoteAddr,
		},
	})
	if err != nil {
		// Both rejections are 401; the messages stay distinct.
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			respond.Error(w, http.StatusUnauthorized, "User not found")
		case errors.Is(err, domain.ErrInvalidPassword):
			respond.Error(w, http.StatusUnauthorized, "Invalid password")
		default:
			respond.FromError(w, err)
		}
		return
	}

	respond.JSON(w, http.StatusOK, LoginResponse{User: result.User, Token: result.Token}, "Login successful")
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req LogoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respond.FromError(w, err)
		return
	}

	if err := h.authService.Logout(r.Context(), req.ID, req.Token); err != nil {
		respond.FromError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, true, "Logout successful")
}

// Me resolves the authenticated user from the verified token subject.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.GetSubject(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.authService.GetUserByEmail(r.Context(), email)
	if err != nil {
		respond.FromError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, user, "ok")
}
