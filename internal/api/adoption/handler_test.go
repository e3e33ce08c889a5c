package adoption_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"petconnect/internal/api/adoption"
	"petconnect/internal/domain"
	"petconnect/internal/pkg/logger"
	"petconnect/internal/service/adoptionservice"
)

// MockAdoptionService é o mock da interface AdoptionService do handler.
type MockAdoptionService struct {
	mock.Mock
}

func (m *MockAdoptionService) CreateRequest(ctx context.Context, in adoptionservice.CreateInput) (domain.AdoptionRequest, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(domain.AdoptionRequest), args.Error(1)
}

func (m *MockAdoptionService) ListForUser(ctx context.Context, userID string) ([]domain.AdoptionRequestView, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.AdoptionRequestView), args.Error(1)
}

func (m *MockAdoptionService) ListAll(ctx context.Context) ([]domain.AdoptionRequestView, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.AdoptionRequestView), args.Error(1)
}

func (m *MockAdoptionService) GetByID(ctx context.Context, id string) (domain.AdoptionRequestView, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.AdoptionRequestView), args.Error(1)
}

func (m *MockAdoptionService) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (domain.AdoptionRequest, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(domain.AdoptionRequest), args.Error(1)
}

func (m *MockAdoptionService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// TestDelete_Success_RespondsNoContent fixa a resposta 204 sem corpo da
// remoção de uma solicitação.
func TestDelete_Success_RespondsNoContent(t *testing.T) {
	mockSvc := new(MockAdoptionService)
	h := adoption.NewHandler(mockSvc, logger.NewLogger("debug"))

	requestID := uuid.New().String()
	mockSvc.On("Delete", mock.Anything, requestID).Return(nil)

	r := chi.NewRouter()
	r.Delete("/api/adoption-requests/{id}", h.Delete)

	req := httptest.NewRequest(http.MethodDelete, "/api/adoption-requests/"+requestID, nil)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	mockSvc.AssertExpectations(t)
}
