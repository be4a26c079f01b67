package user

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/auth"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/user/entity"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/httpx"
)

// TokenIssuer mints the bearer token returned on login.
type TokenIssuer interface {
	Issue(id auth.Identity) (string, error)
}

// Handler exposes HTTP endpoints for registration, login and profiles.
type Handler struct {
	svc    *UserService
	tokens TokenIssuer
	logger *zap.SugaredLogger
}

func NewHandler(svc *UserService, tokens TokenIssuer, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, tokens: tokens, logger: logger}
}

// RegisterRequest request body for the register endpoint.
type RegisterRequest struct {
	FirstName  string  `json:"firstName" validate:"required,max=100"`
	LastName   string  `json:"lastName" validate:"required,max=100"`
	Email      string  `json:"email" validate:"required,email,max=254"`
	Password   string  `json:"password" validate:"required"`
	Phone      *string `json:"phone" validate:"omitempty,max=50"`
	Address    *string `json:"address" validate:"omitempty,max=255"`
	City       *string `json:"city" validate:"omitempty,max=100"`
	ZipCode    *string `json:"zipCode" validate:"omitempty,max=20"`
	Newsletter bool    `json:"newsletter"`
}

// RegisterResponse response body containing new user id.
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		h.logger.Debugw("invalid register payload", "err", err)
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := h.svc.Register(r.Context(), RegisterInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Password:   req.Password,
		Phone:      req.Phone,
		Address:    req.Address,
		City:       req.City,
		ZipCode:    req.ZipCode,
		Newsletter: req.Newsletter,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateEmail):
			httpx.Error(w, http.StatusBadRequest, "Email already registered")
		case errors.Is(err, ErrWeakPassword), errors.Is(err, ErrPasswordTooLong), errors.Is(err, ErrValidation):
			httpx.Error(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Errorw("register failed", "err", err)
			httpx.Error(w, http.StatusInternalServerError, "Registration failed")
		}
		return
	}
	h.logger.Infow("user registered", "user_id", id)
	httpx.WriteJSON(w, http.StatusCreated, RegisterResponse{Message: "User registered successfully", UserID: id})
}

// LoginRequest login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the bearer token and the profile without password.
type LoginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *entity.User `json:"user"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		h.logger.Debugw("invalid login payload", "err", err)
		httpx.Error(w, http.StatusBadRequest, "Please provide email and password")
		return
	}
	u, err := h.svc.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			h.logger.Debugw("login failed", "err", err)
			httpx.Error(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		h.logger.Errorw("login failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Login failed")
		return
	}
	token, err := h.tokens.Issue(auth.Identity{ID: u.ID, Email: u.Email, FirstName: u.FirstName})
	if err != nil {
		h.logger.Errorw("issue token failed", "user_id", u.ID, "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Login failed")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, LoginResponse{Message: "Login successful", Token: token, User: u})
}

// selfID resolves the {id} wildcard and checks it against the caller.
func (h *Handler) selfID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := httpx.PathID(r, "id")
	if !ok {
		httpx.Error(w, http.StatusBadRequest, "Invalid user id")
		return 0, false
	}
	if !auth.IsSelf(r.Context(), id) {
		httpx.Error(w, http.StatusForbidden, "Access denied")
		return 0, false
	}
	return id, true
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.selfID(w, r)
	if !ok {
		return
	}
	u, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			httpx.Error(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Errorw("get user failed", "user_id", id, "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

// UpdateProfileRequest lists the editable profile fields; absent fields stay unchanged.
type UpdateProfileRequest struct {
	FirstName  *string `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName   *string `json:"lastName" validate:"omitempty,min=1,max=100"`
	Phone      *string `json:"phone" validate:"omitempty,max=50"`
	Address    *string `json:"address" validate:"omitempty,max=255"`
	City       *string `json:"city" validate:"omitempty,max=100"`
	ZipCode    *string `json:"zipCode" validate:"omitempty,max=20"`
	Newsletter *bool   `json:"newsletter"`
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.selfID(w, r)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	err := h.svc.UpdateProfile(r.Context(), id, entity.ProfileUpdate{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		Address:    req.Address,
		City:       req.City,
		ZipCode:    req.ZipCode,
		Newsletter: req.Newsletter,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNoChanges):
			httpx.Error(w, http.StatusBadRequest, "No profile fields provided")
		case errors.Is(err, ErrValidation):
			httpx.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrUserNotFound):
			httpx.Error(w, http.StatusNotFound, "User not found")
		default:
			h.logger.Errorw("update profile failed", "user_id", id, "err", err)
			httpx.Error(w, http.StatusInternalServerError, "Update failed")
		}
		return
	}
	httpx.WriteJSON(w, http.StatusOK, httpx.Message{Message: "Profile updated successfully"})
}

// List is the admin view of all users.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Errorw("list users failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, users)
}

// Delete is the admin removal of a user account.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r, "id")
	if !ok {
		httpx.Error(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	claims, _ := auth.ClaimsFromContext(r.Context())
	if err := h.svc.Delete(r.Context(), claims.ID, id); err != nil {
		switch {
		case errors.Is(err, ErrSelfDeletion):
			httpx.Error(w, http.StatusBadRequest, "Cannot delete your own account")
		case errors.Is(err, ErrUserNotFound):
			httpx.Error(w, http.StatusNotFound, "User not found")
		default:
			h.logger.Errorw("delete user failed", "user_id", id, "err", err)
			httpx.Error(w, http.StatusInternalServerError, "Error deleting user")
		}
		return
	}
	h.logger.Infow("user deleted", "user_id", id, "by", claims.ID)
	httpx.WriteJSON(w, http.StatusOK, httpx.Message{Message: "User deleted successfully"})
}
