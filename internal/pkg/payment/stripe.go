package payment

import (
	"context"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
)

// StripeProvider implementa Provider sobre o Stripe Checkout.
type StripeProvider struct {
	successURL string
	cancelURL  string
}

// NewStripeProvider configura a chave global do SDK e retorna o provedor.
func NewStripeProvider(secretKey, successURL, cancelURL string) *StripeProvider {
	stripe.Key = secretKey
	return &StripeProvider{
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

// CreateSession cria uma sessão de Checkout em modo pagamento único,
// com um único line item montado a partir dos parâmetros da doação.
func (p *StripeProvider) CreateSession(ctx context.Context, params CheckoutParams) (Session, error) {
	sessionParams := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(params.Currency),
					UnitAmount: stripe.Int64(params.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String("Donation"),
						Description: stripe.String(params.Description),
					},
				},
			},
		},
		SuccessURL: stripe.String(p.successURL),
		CancelURL:  stripe.String(p.cancelURL),
	}
	sessionParams.Context = ctx
	for k, v := range params.Metadata {
		sessionParams.AddMetadata(k, v)
	}

	s, err := session.New(sessionParams)
	if err != nil {
		return Session{}, err
	}

	return fromStripeSession(s), nil
}

// GetSession consulta a sessão no Stripe para verificar o status do pagamento.
func (p *StripeProvider) GetSession(ctx context.Context, sessionID string) (Session, error) {
	getParams := &stripe.CheckoutSessionParams{}
	getParams.Context = ctx

	s, err := session.Get(sessionID, getParams)
	if err != nil {
		return Session{}, err
	}

	return fromStripeSession(s), nil
}

func fromStripeSession(s *stripe.CheckoutSession) Session {
	out := Session{
		ID:            s.ID,
		URL:           s.URL,
		PaymentStatus: string(s.PaymentStatus),
	}
	if s.CustomerDetails != nil {
		out.DonorEmail = s.CustomerDetails.Email
	}
	return out
}
