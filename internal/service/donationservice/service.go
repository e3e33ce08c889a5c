package donationservice

import (
	"context"

	"petconnect/internal/domain"
	apperror "petconnect/internal/errors"
	"petconnect/internal/pkg/logger"
	"petconnect/internal/pkg/payment"
)

// Valores padrão de checkout quando o chamador não informa nada.
const (
	defaultAmount      = 5000 // 50.00, em centavos
	defaultCurrency    = "usd"
	defaultDescription = "PetConnect Donation"
)

// CheckoutInput é o payload de criação de sessão de doação. Metadata é
// repassada ao provedor como chegou (ex.: userId e userName do doador).
type CheckoutInput struct {
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata"`
}

// CheckoutResult devolve ao cliente a URL de redirecionamento do provedor.
type CheckoutResult struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// Service orquestra o fluxo de doação contra o provedor de pagamentos.
type Service struct {
	donations domain.DonationRepository
	provider  payment.Provider
	logger    logger.Logger
}

// NewService cria o serviço de doações.
func NewService(donations domain.DonationRepository, provider payment.Provider, log logger.Logger) *Service {
	return &Service{
		donations: donations,
		provider:  provider,
		logger:    log,
	}
}

// CreateCheckout cria a sessão no provedor e registra a doação como
// "pending". Falha do provedor não deixa registro local: a doação só
// existe depois que a sessão existe.
func (s *Service) CreateCheckout(ctx context.Context, in CheckoutInput) (CheckoutResult, error) {
	if in.Amount < 0 {
		return CheckoutResult{}, apperror.NewValidationError("O valor da doação não pode ser negativo.")
	}
	if in.Amount == 0 {
		in.Amount = defaultAmount
	}
	if in.Currency == "" {
		in.Currency = defaultCurrency
	}
	if in.Description == "" {
		in.Description = defaultDescription
	}

	session, err := s.provider.CreateSession(ctx, payment.CheckoutParams{
		Amount:      in.Amount,
		Currency:    in.Currency,
		Description: in.Description,
		Metadata:    in.Metadata,
	})
	if err != nil {
		return CheckoutResult{}, apperror.NewExternalServiceError("Falha ao criar a sessão de pagamento.", err)
	}

	if _, err := s.donations.Save(ctx, domain.Donation{
		StripeSessionID: session.ID,
		Amount:          in.Amount,
		Currency:        in.Currency,
		Description:     in.Description,
		Status:          domain.DonationPending,
	}); err != nil {
		return CheckoutResult{}, err
	}

	s.logger.Info("Sessão de doação criada.", map[string]interface{}{
		"session_id": session.ID,
		"amount":     in.Amount,
		"currency":   in.Currency,
	})

	return CheckoutResult{SessionID: session.ID, URL: session.URL}, nil
}

// ConfirmPayment verifica no provedor o status real da sessão e, quando
// paga, conclui a doação local. Sessão não paga não altera nada: o
// cliente pode re-tentar a confirmação depois.
func (s *Service) ConfirmPayment(ctx context.Context, sessionID string) (domain.Donation, error) {
	if sessionID == "" {
		return domain.Donation{}, apperror.NewValidationError("O sessionId é obrigatório.")
	}

	session, err := s.provider.GetSession(ctx, sessionID)
	if err != nil {
		return domain.Donation{}, apperror.NewExternalServiceError("Falha ao consultar a sessão de pagamento.", err)
	}

	if session.PaymentStatus != payment.PaymentStatusPaid {
		return domain.Donation{}, apperror.NewPaymentIncompleteError(session.PaymentStatus)
	}

	donation, err := s.donations.CompleteBySession(ctx, sessionID, session.DonorEmail)
	if err != nil {
		return domain.Donation{}, err
	}

	s.logger.Info("Doação concluída.", map[string]interface{}{
		"donation_id": donation.ID,
		"session_id":  sessionID,
	})

	return donation, nil
}

// ListDonations devolve todas as doações, mais recentes primeiro.
func (s *Service) ListDonations(ctx context.Context) ([]domain.Donation, error) {
	return s.donations.FindAll(ctx)
}
