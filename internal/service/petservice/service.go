package petservice

import (
	"context"

	"petconnect/internal/domain"
	apperror "petconnect/internal/errors"
	"petconnect/internal/pkg/logger"
	"petconnect/internal/service/lifecycle"
)

// Service implementa o catálogo de mascotes.
type Service struct {
	pets        domain.PetRepository
	transitions *lifecycle.Table
	logger      logger.Logger
}

// NewService cria o serviço do catálogo.
func NewService(pets domain.PetRepository, transitions *lifecycle.Table, log logger.Logger) *Service {
	return &Service{
		pets:        pets,
		transitions: transitions,
		logger:      log,
	}
}

// Create cadastra uma mascote nova. Sem status informado, a mascote
// entra no catálogo como "disponible".
func (s *Service) Create(ctx context.Context, pet domain.Pet) (domain.Pet, error) {
	if pet.Name == "" {
		return domain.Pet{}, apperror.NewValidationError("O nome da mascote é obrigatório.")
	}
	if pet.Kind != domain.KindPerro && pet.Kind != domain.KindGato {
		return domain.Pet{}, apperror.NewValidationError("A espécie da mascote deve ser 'Perro' ou 'Gato'.")
	}
	if pet.Status == "" {
		pet.Status = domain.PetDisponible
	}
	if !validStatus(pet.Status) {
		return domain.Pet{}, apperror.NewValidationError("Status de mascote inválido.")
	}

	created, err := s.pets.Save(ctx, pet)
	if err != nil {
		return domain.Pet{}, err
	}

	s.logger.Info("Mascote cadastrada no catálogo.", map[string]interface{}{
		"pet_id": created.ID,
		"name":   created.Name,
	})

	return created, nil
}

// List devolve o catálogo completo, mais recentes primeiro.
func (s *Service) List(ctx context.Context) ([]domain.Pet, error) {
	return s.pets.FindAll(ctx)
}

// GetByID busca uma mascote pelo id.
func (s *Service) GetByID(ctx context.Context, id string) (domain.Pet, error) {
	if id == "" {
		return domain.Pet{}, apperror.NewValidationError("O id da mascote é obrigatório.")
	}
	return s.pets.FindByID(ctx, id)
}

// Update aplica uma atualização parcial. Quando o status muda para
// "en seguimiento", a transição dispara o agendamento das visitas de
// acompanhamento pela tabela de transições.
func (s *Service) Update(ctx context.Context, id string, upd domain.PetUpdate) (domain.Pet, error) {
	if id == "" {
		return domain.Pet{}, apperror.NewValidationError("O id da mascote é obrigatório.")
	}
	if upd.Status != nil && !validStatus(*upd.Status) {
		return domain.Pet{}, apperror.NewValidationError("Status de mascote inválido.")
	}
	if upd.Kind != nil && *upd.Kind != domain.KindPerro && *upd.Kind != domain.KindGato {
		return domain.Pet{}, apperror.NewValidationError("A espécie da mascote deve ser 'Perro' ou 'Gato'.")
	}

	pet, err := s.pets.Update(ctx, id, upd)
	if err != nil {
		return domain.Pet{}, err
	}

	if upd.Status != nil {
		if err := s.transitions.Apply(ctx, lifecycle.EntityPet, string(*upd.Status), pet.ID); err != nil {
			s.logger.Error("Efeito colateral da transição de status da mascote falhou.", err)
			return domain.Pet{}, err
		}
	}

	return pet, nil
}

// Delete remove uma mascote do catálogo.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperror.NewValidationError("O id da mascote é obrigatório.")
	}
	return s.pets.Delete(ctx, id)
}

func validStatus(status domain.PetStatus) bool {
	switch status {
	case domain.PetDisponible, domain.PetEnProceso, domain.PetEnSeguimiento, domain.PetAdoptado:
		return true
	}
	return false
}
