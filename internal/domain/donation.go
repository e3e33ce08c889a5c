package domain

import (
	"context"
	"time"
)

// DonationStatus acompanha o ciclo de vida de uma sessão de pagamento.
type DonationStatus string

const (
	DonationPending   DonationStatus = "pending"
	DonationCompleted DonationStatus = "completed"
	DonationFailed    DonationStatus = "failed"
)

// Donation registra uma sessão de checkout criada no provedor de
// pagamentos. O id da sessão do provedor é a chave natural do registro.
type Donation struct {
	ID              string         `json:"id"`
	StripeSessionID string         `json:"stripeSessionId"`
	Amount          int64          `json:"amount"` // Em centavos
	Currency        string         `json:"currency"`
	Description     string         `json:"description"`
	DonorEmail      string         `json:"donorEmail,omitempty"`
	Status          DonationStatus `json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// DonationRepository define o contrato de persistência das doações.
type DonationRepository interface {
	Save(ctx context.Context, d Donation) (Donation, error)
	FindAll(ctx context.Context) ([]Donation, error)
	// CompleteBySession transiciona a doação pendente da sessão para
	// "completed". NotFoundError se não existe doação pendente para a
	// sessão (ausente ou já concluída).
	CompleteBySession(ctx context.Context, sessionID string, donorEmail string) (Donation, error)
}
