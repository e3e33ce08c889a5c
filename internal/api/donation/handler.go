package donation

import (
	"context"
	"encoding/json"
	"net/http"

	"petconnect/internal/api/respond"
	"petconnect/internal/domain"
	apperror "petconnect/internal/errors"
	"petconnect/internal/pkg/logger"
	"petconnect/internal/service/donationservice"
)

// DonationService define o contrato que o Handler espera da camada de serviço.
type DonationService interface {
	CreateCheckout(ctx context.Context, in donationservice.CheckoutInput) (donationservice.CheckoutResult, error)
	ConfirmPayment(ctx context.Context, sessionID string) (domain.Donation, error)
	ListDonations(ctx context.Context) ([]domain.Donation, error)
}

// Handler agrupa os endpoints de doações.
type Handler struct {
	service DonationService
	logger  logger.Logger
}

// NewHandler cria o handler de doações.
func NewHandler(svc DonationService, log logger.Logger) *Handler {
	return &Handler{service: svc, logger: log}
}

type confirmBody struct {
	SessionID string `json:"sessionId"`
}

// CreateCheckout trata POST /api/donations/checkout (público).
func (h *Handler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	var in donationservice.CheckoutInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, h.logger, apperror.NewValidationError("Corpo da requisição inválido."))
		return
	}

	result, err := h.service.CreateCheckout(r.Context(), in)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusCreated, result)
}

// ConfirmPayment trata POST /api/donations/confirm-payment (público).
// A confirmação consulta o provedor; o cliente nunca decide sozinho
// que a doação foi paga.
func (h *Handler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var body confirmBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.Error(w, h.logger, apperror.NewValidationError("Corpo da requisição inválido."))
		return
	}

	donation, err := h.service.ConfirmPayment(r.Context(), body.SessionID)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"donation": donation,
	})
}

// List trata GET /api/donations (admin).
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	donations, err := h.service.ListDonations(r.Context())
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	respond.Items(w, http.StatusOK, donations)
}
