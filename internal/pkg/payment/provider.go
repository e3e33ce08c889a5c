package payment

import "context"

// CheckoutParams descreve a sessão de pagamento a ser criada no provedor.
type CheckoutParams struct {
	Amount      int64 // Em centavos
	Currency    string
	Description string
	Metadata    map[string]string
}

// Session é a visão mínima de uma sessão de checkout do provedor.
type Session struct {
	ID            string
	URL           string
	PaymentStatus string // Status cru do provedor (e.g., "paid", "unpaid")
	DonorEmail    string
}

// PaymentStatusPaid é o status do provedor que confirma o pagamento.
const PaymentStatusPaid = "paid"

// Provider é o contrato com o provedor externo de pagamentos. O serviço de
// doações depende apenas desta interface; a implementação concreta (Stripe)
// fica atrás dela, o que também permite mocks nos testes.
type Provider interface {
	CreateSession(ctx context.Context, params CheckoutParams) (Session, error)
	GetSession(ctx context.Context, sessionID string) (Session, error)
}
