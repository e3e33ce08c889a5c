package donationservice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"petconnect/internal/domain"
	apperror "petconnect/internal/errors"
	"petconnect/internal/pkg/logger"
	"petconnect/internal/pkg/payment"
	"petconnect/internal/service/donationservice"
)

// MockDonationRepository é o mock da interface DonationRepository.
type MockDonationRepository struct {
	mock.Mock
}

func (m *MockDonationRepository) Save(ctx context.Context, d domain.Donation) (domain.Donation, error) {
	args := m.Called(ctx, d)
	return args.Get(0).(domain.Donation), args.Error(1)
}

func (m *MockDonationRepository) FindAll(ctx context.Context) ([]domain.Donation, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Donation), args.Error(1)
}

func (m *MockDonationRepository) CompleteBySession(ctx context.Context, sessionID string, donorEmail string) (domain.Donation, error) {
	args := m.Called(ctx, sessionID, donorEmail)
	return args.Get(0).(domain.Donation), args.Error(1)
}

// MockPaymentProvider é o mock da interface payment.Provider.
type MockPaymentProvider struct {
	mock.Mock
}

func (m *MockPaymentProvider) CreateSession(ctx context.Context, params payment.CheckoutParams) (payment.Session, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(payment.Session), args.Error(1)
}

func (m *MockPaymentProvider) GetSession(ctx context.Context, sessionID string) (payment.Session, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(payment.Session), args.Error(1)
}

// TestCreateCheckout_Success_AppliesDefaults verifica os padrões de
// valor, moeda e descrição e o registro pendente da doação.
func TestCreateCheckout_Success_AppliesDefaults(t *testing.T) {
	mockDonations := new(MockDonationRepository)
	mockProvider := new(MockPaymentProvider)
	mockLogger := logger.NewLogger("debug")

	svc := donationservice.NewService(mockDonations, mockProvider, mockLogger)

	session := payment.Session{ID: "cs_test_123", URL: "https://checkout.stripe.com/pay/cs_test_123"}

	mockProvider.On("CreateSession", mock.Anything, mock.MatchedBy(func(params payment.CheckoutParams) bool {
		return params.Amount == 5000 && params.Currency == "usd" && params.Description == "PetConnect Donation"
	})).Return(session, nil)

	mockDonations.On("Save", mock.Anything, mock.MatchedBy(func(d domain.Donation) bool {
		return d.StripeSessionID == session.ID && d.Status == domain.DonationPending && d.Amount == 5000
	})).Return(domain.Donation{ID: uuid.New().String(), StripeSessionID: session.ID, Status: domain.DonationPending}, nil)

	ctx := context.Background()
	result, err := svc.CreateCheckout(ctx, donationservice.CheckoutInput{})

	assert.NoError(t, err)
	assert.Equal(t, session.ID, result.SessionID)
	assert.Equal(t, session.URL, result.URL)
	mockProvider.AssertExpectations(t)
	mockDonations.AssertExpectations(t)
}

// TestCreateCheckout_Success_ForwardsMetadata verifica que a metadata do
// doador chega intacta ao provedor de pagamentos.
func TestCreateCheckout_Success_ForwardsMetadata(t *testing.T) {
	mockDonations := new(MockDonationRepository)
	mockProvider := new(MockPaymentProvider)
	mockLogger := logger.NewLogger("debug")

	svc := donationservice.NewService(mockDonations, mockProvider, mockLogger)

	metadata := map[string]string{"userId": uuid.New().String(), "userName": "Ana"}
	session := payment.Session{ID: "cs_test_meta", URL: "https://checkout.stripe.com/pay/cs_test_meta"}

	mockProvider.On("CreateSession", mock.Anything, mock.MatchedBy(func(params payment.CheckoutParams) bool {
		return params.Metadata["userId"] == metadata["userId"] && params.Metadata["userName"] == "Ana"
	})).Return(session, nil)
	mockDonations.On("Save", mock.Anything, mock.Anything).
		Return(domain.Donation{ID: uuid.New().String(), StripeSessionID: session.ID}, nil)

	ctx := context.Background()
	_, err := svc.CreateCheckout(ctx, donationservice.CheckoutInput{Amount: 2500, Metadata: metadata})

	assert.NoError(t, err)
	mockProvider.AssertExpectations(t)
}

// TestCreateCheckout_Fail_ProviderError verifica que a falha do provedor
// não deixa registro local.
func TestCreateCheckout_Fail_ProviderError(t *testing.T) {
	mockDonations := new(MockDonationRepository)
	mockProvider := new(MockPaymentProvider)
	mockLogger := logger.NewLogger("debug")

	svc := donationservice.NewService(mockDonations, mockProvider, mockLogger)

	mockProvider.On("CreateSession", mock.Anything, mock.Anything).
		Return(payment.Session{}, errors.New("stripe: api unreachable"))

	ctx := context.Background()
	_, err := svc.CreateCheckout(ctx, donationservice.CheckoutInput{Amount: 1000})

	assert.Error(t, err)

	var extErr *apperror.ExternalServiceError
	assert.True(t, errors.As(err, &extErr))
	mockDonations.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// TestCreateCheckout_Fail_NegativeAmount rejeita valores negativos.
func TestCreateCheckout_Fail_NegativeAmount(t *testing.T) {
	mockDonations := new(MockDonationRepository)
	mockProvider := new(MockPaymentProvider)
	mockLogger := logger.NewLogger("debug")

	svc := donationservice.NewService(mockDonations, mockProvider, mockLogger)

	ctx := context.Background()
	_, err := svc.CreateCheckout(ctx, donationservice.CheckoutInput{Amount: -100})

	assert.Error(t, err)
	mockProvider.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
}

// TestConfirmPayment_Success_CompletesDonation verifica a conclusão da
// doação quando o provedor confirma o pagamento.
func TestConfirmPayment_Success_CompletesDonation(t *testing.T) {
	mockDonations := new(MockDonationRepository)
	mockProvider := new(MockPaymentProvider)
	mockLogger := logger.NewLogger("debug")

	svc := donationservice.NewService(mockDonations, mockProvider, mockLogger)

	sessionID := "cs_test_456"
	completed := domain.Donation{ID: uuid.New().String(), StripeSessionID: sessionID, Status: domain.DonationCompleted, DonorEmail: "ana@example.com"}

	mockProvider.On("GetSession", mock.Anything, sessionID).
		Return(payment.Session{ID: sessionID, PaymentStatus: payment.PaymentStatusPaid, DonorEmail: "ana@example.com"}, nil)
	mockDonations.On("CompleteBySession", mock.Anything, sessionID, "ana@example.com").Return(completed, nil)

	ctx := context.Background()
	donation, err := svc.ConfirmPayment(ctx, sessionID)

	assert.NoError(t, err)
	assert.Equal(t, domain.DonationCompleted, donation.Status)
	assert.Equal(t, "ana@example.com", donation.DonorEmail)
	mockDonations.AssertExpectations(t)
}

// TestConfirmPayment_Fail_SessionUnpaid verifica que uma sessão não paga
// devolve erro de pagamento incompleto sem alterar o registro.
func TestConfirmPayment_Fail_SessionUnpaid(t *testing.T) {
	mockDonations := new(MockDonationRepository)
	mockProvider := new(MockPaymentProvider)
	mockLogger := logger.NewLogger("debug")

	svc := donationservice.NewService(mockDonations, mockProvider, mockLogger)

	sessionID := "cs_test_789"
	mockProvider.On("GetSession", mock.Anything, sessionID).
		Return(payment.Session{ID: sessionID, PaymentStatus: "unpaid"}, nil)

	ctx := context.Background()
	_, err := svc.ConfirmPayment(ctx, sessionID)

	assert.Error(t, err)

	var payErr *apperror.PaymentIncompleteError
	assert.True(t, errors.As(err, &payErr))
	mockDonations.AssertNotCalled(t, "CompleteBySession", mock.Anything, mock.Anything, mock.Anything)
}

// TestConfirmPayment_Fail_ProviderError verifica a falha na consulta
// ao provedor.
func TestConfirmPayment_Fail_ProviderError(t *testing.T) {
	mockDonations := new(MockDonationRepository)
	mockProvider := new(MockPaymentProvider)
	mockLogger := logger.NewLogger("debug")

	svc := donationservice.NewService(mockDonations, mockProvider, mockLogger)

	sessionID := "cs_test_999"
	mockProvider.On("GetSession", mock.Anything, sessionID).
		Return(payment.Session{}, errors.New("stripe: session not found"))

	ctx := context.Background()
	_, err := svc.ConfirmPayment(ctx, sessionID)

	assert.Error(t, err)

	var extErr *apperror.ExternalServiceError
	assert.True(t, errors.As(err, &extErr))
}

// TestConfirmPayment_Fail_NoPendingDonation propaga o NotFound quando a
// sessão não tem doação pendente (já concluída ou inexistente).
func TestConfirmPayment_Fail_NoPendingDonation(t *testing.T) {
	mockDonations := new(MockDonationRepository)
	mockProvider := new(MockPaymentProvider)
	mockLogger := logger.NewLogger("debug")

	svc := donationservice.NewService(mockDonations, mockProvider, mockLogger)

	sessionID := "cs_test_000"
	notFound := apperror.NewNotFoundError("doação pendente não encontrada para a sessão")

	mockProvider.On("GetSession", mock.Anything, sessionID).
		Return(payment.Session{ID: sessionID, PaymentStatus: payment.PaymentStatusPaid}, nil)
	mockDonations.On("CompleteBySession", mock.Anything, sessionID, "").
		Return(domain.Donation{}, notFound)

	ctx := context.Background()
	_, err := svc.ConfirmPayment(ctx, sessionID)

	assert.Error(t, err)
	assert.Equal(t, notFound, err)
}
