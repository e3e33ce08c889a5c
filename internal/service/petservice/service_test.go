package petservice_test

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
	"petconnect/internal/service/lifecycle"
	"petconnect/internal/service/petservice"
)

// MockPetRepository é o mock da interface PetRepository.
type MockPetRepository struct {
	mock.Mock
}

func (m *MockPetRepository) Save(ctx context.Context, pet domain.Pet) (domain.Pet, error) {
	args := m.Called(ctx, pet)
	return args.Get(0).(domain.Pet), args.Error(1)
}

func (m *MockPetRepository) FindByID(ctx context.Context, id string) (domain.Pet, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Pet), args.Error(1)
}

func (m *MockPetRepository) FindAll(ctx context.Context) ([]domain.Pet, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Pet), args.Error(1)
}

func (m *MockPetRepository) Update(ctx context.Context, id string, upd domain.PetUpdate) (domain.Pet, error) {
	args := m.Called(ctx, id, upd)
	return args.Get(0).(domain.Pet), args.Error(1)
}

func (m *MockPetRepository) UpdateStatus(ctx context.Context, id string, status domain.PetStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockPetRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// TestCreate_Success_DefaultsToDisponible verifica que a mascote nova
// entra no catálogo como "disponible" quando o status não é informado.
func TestCreate_Success_DefaultsToDisponible(t *testing.T) {
	mockRepo := new(MockPetRepository)
	mockLogger := logger.NewLogger("debug")
	table := lifecycle.NewTable(mockLogger)

	svc := petservice.NewService(mockRepo, table, mockLogger)

	mockRepo.On("Save", mock.Anything, mock.MatchedBy(func(pet domain.Pet) bool {
		return pet.Status == domain.PetDisponible
	})).Return(domain.Pet{ID: uuid.New().String(), Name: "Luna", Kind: domain.KindGato, Status: domain.PetDisponible}, nil)

	ctx := context.Background()
	pet, err := svc.Create(ctx, domain.Pet{Name: "Luna", Kind: domain.KindGato})

	assert.NoError(t, err)
	assert.Equal(t, domain.PetDisponible, pet.Status)
	mockRepo.AssertExpectations(t)
}

// TestCreate_Fail_InvalidKind rejeita espécies fora de Perro/Gato.
func TestCreate_Fail_InvalidKind(t *testing.T) {
	mockRepo := new(MockPetRepository)
	mockLogger := logger.NewLogger("debug")
	table := lifecycle.NewTable(mockLogger)

	svc := petservice.NewService(mockRepo, table, mockLogger)

	ctx := context.Background()
	_, err := svc.Create(ctx, domain.Pet{Name: "Piolín", Kind: domain.PetKind("Pájaro")})

	assert.Error(t, err)

	var validationErr *apperror.ValidationError
	assert.True(t, errors.As(err, &validationErr))
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// TestUpdate_Success_SeguimientoTriggersFollowUps verifica que mudar o
// status para "en seguimiento" dispara o efeito registrado na tabela de
// transições.
func TestUpdate_Success_SeguimientoTriggersFollowUps(t *testing.T) {
	mockRepo := new(MockPetRepository)
	mockLogger := logger.NewLogger("debug")

	var triggeredPetID string
	table := lifecycle.NewTable(mockLogger)
	table.Register(lifecycle.EntityPet, string(domain.PetEnSeguimiento), func(ctx context.Context, petID string) error {
		triggeredPetID = petID
		return nil
	})

	svc := petservice.NewService(mockRepo, table, mockLogger)

	petID := uuid.New().String()
	seguimiento := domain.PetEnSeguimiento
	upd := domain.PetUpdate{Status: &seguimiento}
	updated := domain.Pet{ID: petID, Name: "Luna", Status: seguimiento}

	mockRepo.On("Update", mock.Anything, petID, upd).Return(updated, nil)

	ctx := context.Background()
	pet, err := svc.Update(ctx, petID, upd)

	assert.NoError(t, err)
	assert.Equal(t, seguimiento, pet.Status)
	assert.Equal(t, petID, triggeredPetID)
	mockRepo.AssertExpectations(t)
}

// TestUpdate_Success_OtherStatusNoTrigger verifica que as demais
// mudanças de status não disparam o agendamento.
func TestUpdate_Success_OtherStatusNoTrigger(t *testing.T) {
	mockRepo := new(MockPetRepository)
	mockLogger := logger.NewLogger("debug")

	effectFired := false
	table := lifecycle.NewTable(mockLogger)
	table.Register(lifecycle.EntityPet, string(domain.PetEnSeguimiento), func(ctx context.Context, petID string) error {
		effectFired = true
		return nil
	})

	svc := petservice.NewService(mockRepo, table, mockLogger)

	petID := uuid.New().String()
	enProceso := domain.PetEnProceso
	upd := domain.PetUpdate{Status: &enProceso}

	mockRepo.On("Update", mock.Anything, petID, upd).Return(domain.Pet{ID: petID, Status: enProceso}, nil)

	ctx := context.Background()
	_, err := svc.Update(ctx, petID, upd)

	assert.NoError(t, err)
	assert.False(t, effectFired)
}

// TestUpdate_Fail_InvalidStatus rejeita status desconhecido antes do
// repositório.
func TestUpdate_Fail_InvalidStatus(t *testing.T) {
	mockRepo := new(MockPetRepository)
	mockLogger := logger.NewLogger("debug")
	table := lifecycle.NewTable(mockLogger)

	svc := petservice.NewService(mockRepo, table, mockLogger)

	bad := domain.PetStatus("perdido")
	ctx := context.Background()
	_, err := svc.Update(ctx, uuid.New().String(), domain.PetUpdate{Status: &bad})

	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

// TestGetByID_Fail_NotFound propaga o NotFound do repositório.
func TestGetByID_Fail_NotFound(t *testing.T) {
	mockRepo := new(MockPetRepository)
	mockLogger := logger.NewLogger("debug")
	table := lifecycle.NewTable(mockLogger)

	svc := petservice.NewService(mockRepo, table, mockLogger)

	petID := uuid.New().String()
	notFound := apperror.NewNotFoundError("mascote não encontrada")

	mockRepo.On("FindByID", mock.Anything, petID).Return(domain.Pet{}, notFound)

	ctx := context.Background()
	_, err := svc.GetByID(ctx, petID)

	assert.Error(t, err)
	assert.Equal(t, notFound, err)
}
