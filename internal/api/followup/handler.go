package followup

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

// FollowUpService define o contrato que o Handler espera da camada de serviço.
type FollowUpService interface {
	StartFollowUpProcess(ctx context.Context, petID string) ([]domain.FollowUp, error)
	ListGroupedByPet(ctx context.Context) ([]domain.GroupedFollowUp, error)
	ListByPet(ctx context.Context, petID string) ([]domain.FollowUp, error)
	GetVisit(ctx context.Context, id string) (domain.FollowUp, error)
	UpdateVisit(ctx context.Context, id string, upd domain.FollowUpUpdate) (domain.FollowUp, error)
	DeleteVisit(ctx context.Context, id string) error
}

// Handler agrupa os endpoints de acompanhamento pós-adoção.
type Handler struct {
	service FollowUpService
	logger  logger.Logger
}

// NewHandler cria o handler de acompanhamento.
func NewHandler(svc FollowUpService, log logger.Logger) *Handler {
	return &Handler{service: svc, logger: log}
}

type startBody struct {
	PetID string `json:"petId"`
}

// Start trata POST /api/follow-ups/start (admin). Sem solicitação
// aprovada para a mascote não há o que agendar e a resposta é 404;
// visitas já existentes são devolvidas como estão, sem duplicar.
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	var body startBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.Error(w, h.logger, apperror.NewValidationError("Corpo da requisição inválido."))
		return
	}

	visits, err := h.service.StartFollowUpProcess(r.Context(), body.PetID)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	if len(visits) == 0 {
		respond.Error(w, h.logger, apperror.NewNotFoundError("Nenhuma solicitação aprovada encontrada para esta mascote."))
		return
	}

	respond.Items(w, http.StatusOK, visits)
}

// ListGrouped trata GET /api/follow-ups (admin): visitas agrupadas por
// mascote, cada grupo com as três visitas indexadas pelo tipo.
func (h *Handler) ListGrouped(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.ListGroupedByPet(r.Context())
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	respond.Items(w, http.StatusOK, groups)
}

// ListByPet trata GET /api/follow-ups/by-pet/{petId} (admin).
func (h *Handler) ListByPet(w http.ResponseWriter, r *http.Request) {
	visits, err := h.service.ListByPet(r.Context(), chi.URLParam(r, "petId"))
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	respond.Items(w, http.StatusOK, visits)
}

// GetByID trata GET /api/follow-ups/{id} (admin).
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	visit, err := h.service.GetVisit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	respond.Item(w, http.StatusOK, visit)
}

// Update trata PUT /api/follow-ups/{id} (admin): registro do resultado
// de uma visita (status, humor, saúde, peso, observações).
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var upd domain.FollowUpUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respond.Error(w, h.logger, apperror.NewValidationError("Corpo da requisição inválido."))
		return
	}

	visit, err := h.service.UpdateVisit(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	respond.Item(w, http.StatusOK, visit)
}

// Delete trata DELETE /api/follow-ups/{id} (admin).
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteVisit(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"message": "Seguimiento eliminado exitosamente"})
}
