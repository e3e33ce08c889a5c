package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"petconnect/internal/api/respond"
	"petconnect/internal/domain"
	apperror "petconnect/internal/errors"
	"petconnect/internal/pkg/logger"
	"petconnect/internal/pkg/middleware"
	"petconnect/internal/service/userservice"
)

// UserService define o contrato que o Handler espera da camada de serviço.
type UserService interface {
	Register(ctx context.Context, reg domain.UserRegistration) (userservice.AuthResult, error)
	Login(ctx context.Context, email, password string) (userservice.AuthResult, error)
	Me(ctx context.Context, userID string) (domain.User, error)
}

// Handler agrupa os endpoints de autenticação.
type Handler struct {
	service UserService
	logger  logger.Logger
}

// NewHandler cria o handler de autenticação.
func NewHandler(svc UserService, log logger.Logger) *Handler {
	return &Handler{service: svc, logger: log}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register trata POST /api/auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var reg domain.UserRegistration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		respond.Error(w, h.logger, apperror.NewValidationError("Corpo da requisição inválido."))
		return
	}

	result, err := h.service.Register(r.Context(), reg)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusCreated, result)
}

// Login trata POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.logger, apperror.NewValidationError("Corpo da requisição inválido."))
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusOK, result)
}

// Me trata GET /api/auth/me (autenticado).
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserClaimsFromContext(r.Context())
	if !ok {
		respond.Error(w, h.logger, apperror.NewUnauthorizedError("Token ausente ou inválido."))
		return
	}

	user, err := h.service.Me(r.Context(), claims.UserID)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	respond.Item(w, http.StatusOK, user)
}
