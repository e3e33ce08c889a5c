package blog

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"petconnect/internal/api/respond"
	"petconnect/internal/domain"
	apperror "petconnect/internal/errors"
	"petconnect/internal/pkg/logger"
)

// BlogService define o contrato que o Handler espera da camada de serviço.
type BlogService interface {
	Create(ctx context.Context, b domain.Blog) (domain.Blog, error)
	List(ctx context.Context) ([]domain.Blog, error)
	GetByID(ctx context.Context, id string) (domain.Blog, error)
	Update(ctx context.Context, id string, upd domain.BlogUpdate) (domain.Blog, error)
	Delete(ctx context.Context, id string) error
}

// Handler agrupa os endpoints das campanhas educativas.
type Handler struct {
	service BlogService
	logger  logger.Logger
}

// NewHandler cria o handler de campanhas.
func NewHandler(svc BlogService, log logger.Logger) *Handler {
	return &Handler{service: svc, logger: log}
}

// Create trata POST /api/blogs (admin).
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var b domain.Blog
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		respond.Error(w, h.logger, apperror.NewValidationError("Corpo da requisição inválido."))
		return
	}

	created, err := h.service.Create(r.Context(), b)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	respond.Item(w, http.StatusCreated, created)
}

// List trata GET /api/blogs (público).
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.service.List(r.Context())
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	respond.Items(w, http.StatusOK, blogs)
}

// GetByID trata GET /api/blogs/{id} (público).
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	respond.Item(w, http.StatusOK, b)
}

// Update trata PUT /api/blogs/{id} (admin).
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var upd domain.BlogUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respond.Error(w, h.logger, apperror.NewValidationError("Corpo da requisição inválido."))
		return
	}

	b, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	respond.Item(w, http.StatusOK, b)
}

// Delete trata DELETE /api/blogs/{id} (admin).
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"message": "Blog eliminado exitosamente"})
}
