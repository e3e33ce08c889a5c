package form

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

// FormService define o contrato que o Handler espera da camada de serviço.
type FormService interface {
	Submit(ctx context.Context, sub domain.AdopterFormSubmission) (domain.AdopterFormSubmission, error)
	List(ctx context.Context) ([]domain.AdopterFormSubmission, error)
	GetByID(ctx context.Context, id string) (domain.AdopterFormSubmission, error)
	UpdateStatus(ctx context.Context, id string, status domain.SubmissionStatus) (domain.AdopterFormSubmission, error)
	Delete(ctx context.Context, id string) error
}

// Handler agrupa os endpoints dos formulários de adotantes.
type Handler struct {
	service FormService
	logger  logger.Logger
}

// NewHandler cria o handler de formulários.
func NewHandler(svc FormService, log logger.Logger) *Handler {
	return &Handler{service: svc, logger: log}
}

type updateStatusBody struct {
	Status domain.SubmissionStatus `json:"status"`
}

// Submit trata POST /api/form-submissions (público).
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var sub domain.AdopterFormSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		respond.Error(w, h.logger, apperror.NewValidationError("Corpo da requisição inválido."))
		return
	}

	created, err := h.service.Submit(r.Context(), sub)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	respond.Item(w, http.StatusCreated, created)
}

// List trata GET /api/form-submissions (admin).
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	subs, err := h.service.List(r.Context())
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	respond.Items(w, http.StatusOK, subs)
}

// GetByID trata GET /api/form-submissions/{id} (admin).
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	sub, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	respond.Item(w, http.StatusOK, sub)
}

// UpdateStatus trata PUT /api/form-submissions/{id} (admin).
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body updateStatusBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.Error(w, h.logger, apperror.NewValidationError("Corpo da requisição inválido."))
		return
	}

	sub, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), body.Status)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	respond.Item(w, http.StatusOK, sub)
}

// Delete trata DELETE /api/form-submissions/{id} (admin).
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"message": "Formulario eliminado exitosamente"})
}
