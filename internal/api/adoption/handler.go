package adoption

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"petconnect/internal/api/respond"
	"petconnect/internal/domain"
	apperror "petconnect/internal/errors"
	"petconnect/internal/pkg/logger"
	"petconnect/internal/pkg/middleware"
	"petconnect/internal/service/adoptionservice"
)

// AdoptionService define o contrato que o Handler espera da camada de serviço.
type AdoptionService interface {
	CreateRequest(ctx context.Context, in adoptionservice.CreateInput) (domain.AdoptionRequest, error)
	ListForUser(ctx context.Context, userID string) ([]domain.AdoptionRequestView, error)
	ListAll(ctx context.Context) ([]domain.AdoptionRequestView, error)
	GetByID(ctx context.Context, id string) (domain.AdoptionRequestView, error)
	UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (domain.AdoptionRequest, error)
	Delete(ctx context.Context, id string) error
}

// Handler agrupa os endpoints das solicitações de adoção.
type Handler struct {
	service AdoptionService
	logger  logger.Logger
}

// NewHandler cria o handler de solicitações.
func NewHandler(svc AdoptionService, log logger.Logger) *Handler {
	return &Handler{service: svc, logger: log}
}

type createRequestBody struct {
	PetID            string `json:"petId"`
	ContactEmail     string `json:"contactEmail"`
	ContactPhone     string `json:"contactPhone"`
	Message          string `json:"message"`
	FormSubmissionID string `json:"formSubmissionId"`
}

type updateStatusBody struct {
	Status domain.RequestStatus `json:"status"`
}

// Create trata POST /api/adoption-requests (autenticado). O usuário da
// solicitação é sempre o dono do token, nunca um campo do corpo.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserClaimsFromContext(r.Context())
	if !ok {
		respond.Error(w, h.logger, apperror.NewUnauthorizedError("Token ausente ou inválido."))
		return
	}

	var body createRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.Error(w, h.logger, apperror.NewValidationError("Corpo da requisição inválido."))
		return
	}

	request, err := h.service.CreateRequest(r.Context(), adoptionservice.CreateInput{
		PetID:            body.PetID,
		UserID:           claims.UserID,
		UserEmail:        claims.Email,
		ContactEmail:     body.ContactEmail,
		ContactPhone:     body.ContactPhone,
		Message:          body.Message,
		FormSubmissionID: body.FormSubmissionID,
	})
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	respond.Item(w, http.StatusCreated, request)
}

// MyRequests trata GET /api/adoption-requests/my-requests (autenticado).
func (h *Handler) MyRequests(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserClaimsFromContext(r.Context())
	if !ok {
		respond.Error(w, h.logger, apperror.NewUnauthorizedError("Token ausente ou inválido."))
		return
	}

	requests, err := h.service.ListForUser(r.Context(), claims.UserID)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	respond.Items(w, http.StatusOK, requests)
}

// List trata GET /api/adoption-requests (admin).
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	requests, err := h.service.ListAll(r.Context())
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	respond.Items(w, http.StatusOK, requests)
}

// GetByID trata GET /api/adoption-requests/{id} (admin).
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	request, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	respond.Item(w, http.StatusOK, request)
}

// UpdateStatus trata PUT /api/adoption-requests/{id} (admin). Aprovação
// também marca a mascote da solicitação como adotada.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body updateStatusBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.Error(w, h.logger, apperror.NewValidationError("Corpo da requisição inválido."))
		return
	}

	request, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), body.Status)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	respond.Item(w, http.StatusOK, request)
}

// Delete trata DELETE /api/adoption-requests/{id} (admin).
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
