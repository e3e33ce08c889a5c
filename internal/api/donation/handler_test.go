package donation_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"petconnect/internal/api/donation"
	"petconnect/internal/domain"
	"petconnect/internal/pkg/logger"
	"petconnect/internal/service/donationservice"
)

// MockDonationService é o mock da interface DonationService do handler.
type MockDonationService struct {
	mock.Mock
}

func (m *MockDonationService) CreateCheckout(ctx context.Context, in donationservice.CheckoutInput) (donationservice.CheckoutResult, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(donationservice.CheckoutResult), args.Error(1)
}

func (m *MockDonationService) ConfirmPayment(ctx context.Context, sessionID string) (domain.Donation, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(domain.Donation), args.Error(1)
}

func (m *MockDonationService) ListDonations(ctx context.Context) ([]domain.Donation, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Donation), args.Error(1)
}

// TestCreateCheckout_Success_ResponseShape fixa o contrato da resposta
// do checkout: o cliente redireciona pelo campo "url".
func TestCreateCheckout_Success_ResponseShape(t *testing.T) {
	mockSvc := new(MockDonationService)
	h := donation.NewHandler(mockSvc, logger.NewLogger("debug"))

	result := donationservice.CheckoutResult{
		SessionID: "cs_test_123",
		URL:       "https://checkout.stripe.com/pay/cs_test_123",
	}
	mockSvc.On("CreateCheckout", mock.Anything, mock.Anything).Return(result, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/donations/checkout", strings.NewReader(`{"amount":2500}`))
	rec := httptest.NewRecorder()

	h.CreateCheckout(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, result.URL, body["url"])
	assert.Equal(t, result.SessionID, body["sessionId"])
}

// TestCreateCheckout_Success_DecodesMetadata verifica que a metadata do
// corpo chega ao serviço.
func TestCreateCheckout_Success_DecodesMetadata(t *testing.T) {
	mockSvc := new(MockDonationService)
	h := donation.NewHandler(mockSvc, logger.NewLogger("debug"))

	mockSvc.On("CreateCheckout", mock.Anything, mock.MatchedBy(func(in donationservice.CheckoutInput) bool {
		return in.Metadata["userId"] == "user-1" && in.Metadata["userName"] == "Ana"
	})).Return(donationservice.CheckoutResult{SessionID: "cs_test_meta", URL: "https://checkout.stripe.com/pay/cs"}, nil)

	payload := `{"amount":1000,"metadata":{"userId":"user-1","userName":"Ana"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/donations/checkout", strings.NewReader(payload))
	rec := httptest.NewRecorder()

	h.CreateCheckout(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	mockSvc.AssertExpectations(t)
}

// TestConfirmPayment_Success_ResponseShape fixa o contrato da resposta
// de confirmação: {"success": true, "donation": {...}}.
func TestConfirmPayment_Success_ResponseShape(t *testing.T) {
	mockSvc := new(MockDonationService)
	h := donation.NewHandler(mockSvc, logger.NewLogger("debug"))

	completed := domain.Donation{
		ID:              uuid.New().String(),
		StripeSessionID: "cs_test_456",
		Status:          domain.DonationCompleted,
	}
	mockSvc.On("ConfirmPayment", mock.Anything, "cs_test_456").Return(completed, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/donations/confirm-payment", strings.NewReader(`{"sessionId":"cs_test_456"}`))
	rec := httptest.NewRecorder()

	h.ConfirmPayment(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])

	donationBody, ok := body["donation"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, completed.ID, donationBody["id"])
	assert.Equal(t, string(domain.DonationCompleted), donationBody["status"])
}
