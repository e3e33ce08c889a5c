package pet

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

// PetService define o contrato que o Handler espera da camada de serviço.
type PetService interface {
	Create(ctx context.Context, pet domain.Pet) (domain.Pet, error)
	List(ctx context.Context) ([]domain.Pet, error)
	GetByID(ctx context.Context, id string) (domain.Pet, error)
	Update(ctx context.Context, id string, upd domain.PetUpdate) (domain.Pet, error)
	Delete(ctx context.Context, id string) error
}

// Handler agrupa os endpoints do catálogo de mascotes.
type Handler struct {
	service PetService
	logger  logger.Logger
}

// NewHandler cria o handler do catálogo.
func NewHandler(svc PetService, log logger.Logger) *Handler {
	return &Handler{service: svc, logger: log}
}

// Create trata POST /api/pets (admin).
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var pet domain.Pet
	if err := json.NewDecoder(r.Body).Decode(&pet); err != nil {
		respond.Error(w, h.logger, apperror.NewValidationError("Corpo da requisição inválido."))
		return
	}

	created, err := h.service.Create(r.Context(), pet)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	respond.Item(w, http.StatusCreated, created)
}

// List trata GET /api/pets (público).
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	pets, err := h.service.List(r.Context())
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	respond.Items(w, http.StatusOK, pets)
}

// GetByID trata GET /api/pets/{id} (público).
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	pet, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	respond.Item(w, http.StatusOK, pet)
}

// Update trata PUT /api/pets/{id} (admin). Atualização parcial: campos
// ausentes do corpo mantêm o valor persistido.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var upd domain.PetUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respond.Error(w, h.logger, apperror.NewValidationError("Corpo da requisição inválido."))
		return
	}

	pet, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	respond.Item(w, http.StatusOK, pet)
}

// Delete trata DELETE /api/pets/{id} (admin).
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"message": "Mascota eliminada exitosamente"})
}
