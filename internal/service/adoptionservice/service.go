package adoptionservice

import (
	"context"

	"petconnect/internal/domain"
	apperror "petconnect/internal/errors"
	"petconnect/internal/pkg/logger"
	"petconnect/internal/service/lifecycle"
)

// CreateInput é o payload de criação de uma solicitação de adoção.
// FormSubmissionID é opcional: ausente, o serviço sintetiza um
// formulário mínimo com os campos de contato.
type CreateInput struct {
	PetID            string
	UserID           string
	UserEmail        string
	ContactEmail     string
	ContactPhone     string
	Message          string
	FormSubmissionID string
}

// Service é dono do ciclo de vida da tentativa de adoção.
type Service struct {
	requests    domain.AdoptionRequestRepository
	submissions domain.FormSubmissionRepository
	transitions *lifecycle.Table
	logger      logger.Logger
}

// NewService cria o serviço de solicitações de adoção.
func NewService(requests domain.AdoptionRequestRepository, submissions domain.FormSubmissionRepository, transitions *lifecycle.Table, log logger.Logger) *Service {
	return &Service{
		requests:    requests,
		submissions: submissions,
		transitions: transitions,
		logger:      log,
	}
}

// CreateRequest registra uma nova solicitação com status "pendiente".
// Sem formulário informado, cria um AdopterFormSubmission mínimo usando
// os campos de contato e placeholders para os obrigatórios desconhecidos.
func (s *Service) CreateRequest(ctx context.Context, in CreateInput) (domain.AdoptionRequest, error) {
	if in.PetID == "" || in.UserID == "" {
		return domain.AdoptionRequest{}, apperror.NewValidationError("petId e userId são obrigatórios.")
	}

	formSubmissionID := in.FormSubmissionID
	if formSubmissionID == "" {
		fullName := in.UserEmail
		if fullName == "" {
			fullName = "Usuario Anónimo"
		}
		reason := in.Message
		if reason == "" {
			reason = domain.PlaceholderValue
		}

		userID := in.UserID
		synthesized, err := s.submissions.Save(ctx, domain.AdopterFormSubmission{
			FullName:          fullName,
			Email:             in.ContactEmail,
			Phone:             in.ContactPhone,
			HousingType:       domain.PlaceholderValue,
			AgeRange:          domain.PlaceholderValue,
			Department:        domain.PlaceholderValue,
			City:              domain.PlaceholderValue,
			PetPreference:     domain.PlaceholderValue,
			ReasonForAdoption: reason,
			UserID:            &userID,
			Status:            domain.SubmissionPendiente,
		})
		if err != nil {
			return domain.AdoptionRequest{}, err
		}
		formSubmissionID = synthesized.ID
	}

	request, err := s.requests.Save(ctx, domain.AdoptionRequest{
		PetID:            in.PetID,
		UserID:           in.UserID,
		FormSubmissionID: formSubmissionID,
		Status:           domain.RequestPendiente,
		ContactEmail:     in.ContactEmail,
		ContactPhone:     in.ContactPhone,
		Message:          in.Message,
	})
	if err != nil {
		return domain.AdoptionRequest{}, err
	}

	s.logger.Info("Solicitação de adoção criada.", map[string]interface{}{
		"request_id": request.ID,
		"pet_id":     request.PetID,
		"user_id":    request.UserID,
	})

	return request, nil
}

// ListForUser devolve as solicitações do usuário autenticado, mais
// recentes primeiro. Nenhuma solicitação é lista vazia, nunca erro.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]domain.AdoptionRequestView, error) {
	if userID == "" {
		return nil, apperror.NewUnauthorizedError("Usuário não autenticado.")
	}
	return s.requests.FindByUser(ctx, userID)
}

// ListAll devolve todas as solicitações com mascote e usuário resolvidos.
func (s *Service) ListAll(ctx context.Context) ([]domain.AdoptionRequestView, error) {
	return s.requests.FindAll(ctx)
}

// GetByID resolve uma solicitação com os campos de exibição.
func (s *Service) GetByID(ctx context.Context, id string) (domain.AdoptionRequestView, error) {
	return s.requests.FindByID(ctx, id)
}

// UpdateStatus aplica a transição de status da solicitação. Aprovação
// dispara, pela tabela de transições, a marcação da mascote como
// "adoptado" na mesma operação lógica; rejeição não tem efeito
// colateral. Reaprovar uma solicitação já aprovada reaplica o efeito,
// que é idempotente.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (domain.AdoptionRequest, error) {
	if status != domain.RequestPendiente && status != domain.RequestAprobada && status != domain.RequestRechazada {
		return domain.AdoptionRequest{}, apperror.NewValidationError("Status de solicitação inválido.")
	}

	request, err := s.requests.UpdateStatus(ctx, id, status)
	if err != nil {
		return domain.AdoptionRequest{}, err
	}

	if err := s.transitions.Apply(ctx, lifecycle.EntityAdoptionRequest, string(status), request.PetID); err != nil {
		// A solicitação já mudou de status; o efeito colateral falho é
		// reportado como erro para o chamador re-tentar.
		s.logger.Error("Efeito colateral da transição de status falhou.", err)
		return domain.AdoptionRequest{}, err
	}

	return request, nil
}

// Delete remove uma solicitação.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.requests.Delete(ctx, id)
}
