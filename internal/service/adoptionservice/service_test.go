package adoptionservice_test

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
	"petconnect/internal/service/adoptionservice"
	"petconnect/internal/service/lifecycle"
)

// MockAdoptionRequestRepository é o mock da interface AdoptionRequestRepository.
type MockAdoptionRequestRepository struct {
	mock.Mock
}

func (m *MockAdoptionRequestRepository) Save(ctx context.Context, req domain.AdoptionRequest) (domain.AdoptionRequest, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.AdoptionRequest), args.Error(1)
}

func (m *MockAdoptionRequestRepository) FindByID(ctx context.Context, id string) (domain.AdoptionRequestView, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.AdoptionRequestView), args.Error(1)
}

func (m *MockAdoptionRequestRepository) FindByUser(ctx context.Context, userID string) ([]domain.AdoptionRequestView, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.AdoptionRequestView), args.Error(1)
}

func (m *MockAdoptionRequestRepository) FindAll(ctx context.Context) ([]domain.AdoptionRequestView, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.AdoptionRequestView), args.Error(1)
}

func (m *MockAdoptionRequestRepository) FindApprovedByPet(ctx context.Context, petID string) (domain.AdoptionRequest, error) {
	args := m.Called(ctx, petID)
	return args.Get(0).(domain.AdoptionRequest), args.Error(1)
}

func (m *MockAdoptionRequestRepository) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (domain.AdoptionRequest, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(domain.AdoptionRequest), args.Error(1)
}

func (m *MockAdoptionRequestRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockFormSubmissionRepository é o mock da interface FormSubmissionRepository.
type MockFormSubmissionRepository struct {
	mock.Mock
}

func (m *MockFormSubmissionRepository) Save(ctx context.Context, sub domain.AdopterFormSubmission) (domain.AdopterFormSubmission, error) {
	args := m.Called(ctx, sub)
	return args.Get(0).(domain.AdopterFormSubmission), args.Error(1)
}

func (m *MockFormSubmissionRepository) FindByID(ctx context.Context, id string) (domain.AdopterFormSubmission, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.AdopterFormSubmission), args.Error(1)
}

func (m *MockFormSubmissionRepository) FindAll(ctx context.Context) ([]domain.AdopterFormSubmission, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.AdopterFormSubmission), args.Error(1)
}

func (m *MockFormSubmissionRepository) UpdateStatus(ctx context.Context, id string, status domain.SubmissionStatus) (domain.AdopterFormSubmission, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(domain.AdopterFormSubmission), args.Error(1)
}

func (m *MockFormSubmissionRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// TestCreateRequest_Success_SynthesizesForm verifica a criação de uma
// solicitação sem formulário: o serviço sintetiza um AdopterFormSubmission
// mínimo com os campos de contato e placeholders.
func TestCreateRequest_Success_SynthesizesForm(t *testing.T) {
	mockRequests := new(MockAdoptionRequestRepository)
	mockForms := new(MockFormSubmissionRepository)
	mockLogger := logger.NewLogger("debug")
	table := lifecycle.NewTable(mockLogger)

	svc := adoptionservice.NewService(mockRequests, mockForms, table, mockLogger)

	petID := uuid.New().String()
	userID := uuid.New().String()
	formID := uuid.New().String()

	mockForms.On("Save", mock.Anything, mock.MatchedBy(func(sub domain.AdopterFormSubmission) bool {
		return sub.Email == "ana@example.com" &&
			sub.Phone == "555-0101" &&
			sub.HousingType == domain.PlaceholderValue &&
			sub.ReasonForAdoption == "Quiero adoptar a Luna" &&
			sub.UserID != nil && *sub.UserID == userID &&
			sub.Status == domain.SubmissionPendiente
	})).Return(domain.AdopterFormSubmission{ID: formID}, nil)

	mockRequests.On("Save", mock.Anything, mock.MatchedBy(func(req domain.AdoptionRequest) bool {
		return req.PetID == petID &&
			req.UserID == userID &&
			req.FormSubmissionID == formID &&
			req.Status == domain.RequestPendiente
	})).Return(domain.AdoptionRequest{ID: uuid.New().String(), PetID: petID, UserID: userID, FormSubmissionID: formID, Status: domain.RequestPendiente}, nil)

	ctx := context.Background()
	request, err := svc.CreateRequest(ctx, adoptionservice.CreateInput{
		PetID:        petID,
		UserID:       userID,
		UserEmail:    "ana@example.com",
		ContactEmail: "ana@example.com",
		ContactPhone: "555-0101",
		Message:      "Quiero adoptar a Luna",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.RequestPendiente, request.Status)
	mockForms.AssertExpectations(t)
	mockRequests.AssertExpectations(t)
}

// TestCreateRequest_Success_WithExistingForm verifica que um formulário
// informado é referenciado diretamente, sem síntese.
func TestCreateRequest_Success_WithExistingForm(t *testing.T) {
	mockRequests := new(MockAdoptionRequestRepository)
	mockForms := new(MockFormSubmissionRepository)
	mockLogger := logger.NewLogger("debug")
	table := lifecycle.NewTable(mockLogger)

	svc := adoptionservice.NewService(mockRequests, mockForms, table, mockLogger)

	petID := uuid.New().String()
	userID := uuid.New().String()
	formID := uuid.New().String()

	mockRequests.On("Save", mock.Anything, mock.MatchedBy(func(req domain.AdoptionRequest) bool {
		return req.FormSubmissionID == formID
	})).Return(domain.AdoptionRequest{ID: uuid.New().String(), FormSubmissionID: formID}, nil)

	ctx := context.Background()
	_, err := svc.CreateRequest(ctx, adoptionservice.CreateInput{
		PetID:            petID,
		UserID:           userID,
		FormSubmissionID: formID,
	})

	assert.NoError(t, err)
	mockForms.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	mockRequests.AssertExpectations(t)
}

// TestCreateRequest_Fail_MissingFields valida petId e userId obrigatórios.
func TestCreateRequest_Fail_MissingFields(t *testing.T) {
	mockRequests := new(MockAdoptionRequestRepository)
	mockForms := new(MockFormSubmissionRepository)
	mockLogger := logger.NewLogger("debug")
	table := lifecycle.NewTable(mockLogger)

	svc := adoptionservice.NewService(mockRequests, mockForms, table, mockLogger)

	ctx := context.Background()
	_, err := svc.CreateRequest(ctx, adoptionservice.CreateInput{UserID: uuid.New().String()})

	assert.Error(t, err)

	var validationErr *apperror.ValidationError
	assert.True(t, errors.As(err, &validationErr))
	mockRequests.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// TestUpdateStatus_Success_ApprovalMarksPetAdopted verifica que a
// aprovação dispara o efeito registrado que marca a mascote como adotada.
func TestUpdateStatus_Success_ApprovalMarksPetAdopted(t *testing.T) {
	mockRequests := new(MockAdoptionRequestRepository)
	mockForms := new(MockFormSubmissionRepository)
	mockLogger := logger.NewLogger("debug")

	var adoptedPetID string
	table := lifecycle.NewTable(mockLogger)
	table.Register(lifecycle.EntityAdoptionRequest, string(domain.RequestAprobada), func(ctx context.Context, petID string) error {
		adoptedPetID = petID
		return nil
	})

	svc := adoptionservice.NewService(mockRequests, mockForms, table, mockLogger)

	requestID := uuid.New().String()
	petID := uuid.New().String()
	approved := domain.AdoptionRequest{ID: requestID, PetID: petID, Status: domain.RequestAprobada}

	mockRequests.On("UpdateStatus", mock.Anything, requestID, domain.RequestAprobada).Return(approved, nil)

	ctx := context.Background()
	request, err := svc.UpdateStatus(ctx, requestID, domain.RequestAprobada)

	assert.NoError(t, err)
	assert.Equal(t, domain.RequestAprobada, request.Status)
	assert.Equal(t, petID, adoptedPetID)
	mockRequests.AssertExpectations(t)
}

// TestUpdateStatus_Success_ReapprovalIsIdempotent verifica que aprovar
// duas vezes seguidas não falha: a segunda aprovação reaplica o efeito
// de marcar a mascote como adotada, que é inofensivo por ser idempotente.
func TestUpdateStatus_Success_ReapprovalIsIdempotent(t *testing.T) {
	mockRequests := new(MockAdoptionRequestRepository)
	mockForms := new(MockFormSubmissionRepository)
	mockLogger := logger.NewLogger("debug")

	effectCount := 0
	table := lifecycle.NewTable(mockLogger)
	table.Register(lifecycle.EntityAdoptionRequest, string(domain.RequestAprobada), func(ctx context.Context, petID string) error {
		effectCount++
		return nil
	})

	svc := adoptionservice.NewService(mockRequests, mockForms, table, mockLogger)

	requestID := uuid.New().String()
	petID := uuid.New().String()
	approved := domain.AdoptionRequest{ID: requestID, PetID: petID, Status: domain.RequestAprobada}

	mockRequests.On("UpdateStatus", mock.Anything, requestID, domain.RequestAprobada).Return(approved, nil).Twice()

	ctx := context.Background()

	first, err := svc.UpdateStatus(ctx, requestID, domain.RequestAprobada)
	assert.NoError(t, err)
	assert.Equal(t, domain.RequestAprobada, first.Status)

	second, err := svc.UpdateStatus(ctx, requestID, domain.RequestAprobada)
	assert.NoError(t, err)
	assert.Equal(t, domain.RequestAprobada, second.Status)

	assert.Equal(t, 2, effectCount)
	mockRequests.AssertExpectations(t)
}

// TestUpdateStatus_Success_RejectionHasNoSideEffect verifica que a
// rejeição não dispara nenhum efeito sobre a mascote.
func TestUpdateStatus_Success_RejectionHasNoSideEffect(t *testing.T) {
	mockRequests := new(MockAdoptionRequestRepository)
	mockForms := new(MockFormSubmissionRepository)
	mockLogger := logger.NewLogger("debug")

	effectFired := false
	table := lifecycle.NewTable(mockLogger)
	table.Register(lifecycle.EntityAdoptionRequest, string(domain.RequestAprobada), func(ctx context.Context, petID string) error {
		effectFired = true
		return nil
	})

	svc := adoptionservice.NewService(mockRequests, mockForms, table, mockLogger)

	requestID := uuid.New().String()
	rejected := domain.AdoptionRequest{ID: requestID, PetID: uuid.New().String(), Status: domain.RequestRechazada}

	mockRequests.On("UpdateStatus", mock.Anything, requestID, domain.RequestRechazada).Return(rejected, nil)

	ctx := context.Background()
	request, err := svc.UpdateStatus(ctx, requestID, domain.RequestRechazada)

	assert.NoError(t, err)
	assert.Equal(t, domain.RequestRechazada, request.Status)
	assert.False(t, effectFired)
}

// TestUpdateStatus_Fail_InvalidStatus rejeita status desconhecido antes
// de tocar o repositório.
func TestUpdateStatus_Fail_InvalidStatus(t *testing.T) {
	mockRequests := new(MockAdoptionRequestRepository)
	mockForms := new(MockFormSubmissionRepository)
	mockLogger := logger.NewLogger("debug")
	table := lifecycle.NewTable(mockLogger)

	svc := adoptionservice.NewService(mockRequests, mockForms, table, mockLogger)

	ctx := context.Background()
	_, err := svc.UpdateStatus(ctx, uuid.New().String(), domain.RequestStatus("cancelada"))

	assert.Error(t, err)
	mockRequests.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

// TestUpdateStatus_Fail_RequestNotFound propaga o NotFound do repositório.
func TestUpdateStatus_Fail_RequestNotFound(t *testing.T) {
	mockRequests := new(MockAdoptionRequestRepository)
	mockForms := new(MockFormSubmissionRepository)
	mockLogger := logger.NewLogger("debug")
	table := lifecycle.NewTable(mockLogger)

	svc := adoptionservice.NewService(mockRequests, mockForms, table, mockLogger)

	requestID := uuid.New().String()
	notFound := apperror.NewNotFoundError("solicitação não encontrada")

	mockRequests.On("UpdateStatus", mock.Anything, requestID, domain.RequestAprobada).
		Return(domain.AdoptionRequest{}, notFound)

	ctx := context.Background()
	_, err := svc.UpdateStatus(ctx, requestID, domain.RequestAprobada)

	assert.Error(t, err)
	assert.Equal(t, notFound, err)
}

// TestListForUser_Success devolve as solicitações do próprio usuário.
func TestListForUser_Success(t *testing.T) {
	mockRequests := new(MockAdoptionRequestRepository)
	mockForms := new(MockFormSubmissionRepository)
	mockLogger := logger.NewLogger("debug")
	table := lifecycle.NewTable(mockLogger)

	svc := adoptionservice.NewService(mockRequests, mockForms, table, mockLogger)

	userID := uuid.New().String()
	expected := []domain.AdoptionRequestView{
		{AdoptionRequest: domain.AdoptionRequest{ID: uuid.New().String(), UserID: userID}},
	}

	mockRequests.On("FindByUser", mock.Anything, userID).Return(expected, nil)

	ctx := context.Background()
	views, err := svc.ListForUser(ctx, userID)

	assert.NoError(t, err)
	assert.Equal(t, expected, views)
	mockRequests.AssertExpectations(t)
}
