package formservice

import (
	"context"

	"petconnect/internal/domain"
	apperror "petconnect/internal/errors"
	"petconnect/internal/pkg/logger"
)

// Service implementa a coleta e a triagem dos formulários de adotantes.
type Service struct {
	submissions domain.FormSubmissionRepository
	logger      logger.Logger
}

// NewService cria o serviço de formulários.
func NewService(submissions domain.FormSubmissionRepository, log logger.Logger) *Service {
	return &Service{submissions: submissions, logger: log}
}

// Submit registra um formulário novo com status "pendiente". O envio é
// público: o formulário pode existir sem usuário vinculado.
func (s *Service) Submit(ctx context.Context, sub domain.AdopterFormSubmission) (domain.AdopterFormSubmission, error) {
	if sub.FullName == "" || sub.Email == "" {
		return domain.AdopterFormSubmission{}, apperror.NewValidationError("Nome completo e email são obrigatórios.")
	}
	sub.Status = domain.SubmissionPendiente

	created, err := s.submissions.Save(ctx, sub)
	if err != nil {
		return domain.AdopterFormSubmission{}, err
	}

	s.logger.Info("Formulário de adotante recebido.", map[string]interface{}{
		"submission_id": created.ID,
		"email":         created.Email,
	})

	return created, nil
}

// List devolve todos os formulários, mais recentes primeiro.
func (s *Service) List(ctx context.Context) ([]domain.AdopterFormSubmission, error) {
	return s.submissions.FindAll(ctx)
}

// GetByID busca um formulário pelo id.
func (s *Service) GetByID(ctx context.Context, id string) (domain.AdopterFormSubmission, error) {
	if id == "" {
		return domain.AdopterFormSubmission{}, apperror.NewValidationError("O id do formulário é obrigatório.")
	}
	return s.submissions.FindByID(ctx, id)
}

// UpdateStatus avança o formulário na triagem administrativa.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.SubmissionStatus) (domain.AdopterFormSubmission, error) {
	if status != domain.SubmissionPendiente && status != domain.SubmissionRevisado && status != domain.SubmissionContactado {
		return domain.AdopterFormSubmission{}, apperror.NewValidationError("Status de formulário inválido.")
	}
	return s.submissions.UpdateStatus(ctx, id, status)
}

// Delete remove um formulário.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperror.NewValidationError("O id do formulário é obrigatório.")
	}
	return s.submissions.Delete(ctx, id)
}
