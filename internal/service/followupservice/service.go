package followupservice

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"petconnect/internal/domain"
	apperror "petconnect/internal/errors"
	"petconnect/internal/pkg/logger"
)

// Offsets fixos do plano de seguimento, em meses a partir da aprovação.
var visitPlan = []struct {
	visitType domain.VisitType
	months    int
}{
	{domain.VisitOneMonth, 1},
	{domain.VisitThreeMonth, 3},
	{domain.VisitSixMonth, 6},
}

// Service converte uma adoção aprovada na sequência fixa de três visitas
// de verificação e administra o ciclo de vida dessas visitas.
type Service struct {
	followUps domain.FollowUpRepository
	requests  domain.AdoptionRequestRepository
	logger    logger.Logger
	now       func() time.Time
}

// NewService cria o serviço de seguimento pós-adoção.
func NewService(followUps domain.FollowUpRepository, requests domain.AdoptionRequestRepository, log logger.Logger) *Service {
	return &Service{
		followUps: followUps,
		requests:  requests,
		logger:    log,
		now:       time.Now,
	}
}

// StartFollowUpProcess agenda as três visitas de uma mascote adotada.
//
// Sem solicitação aprovada não há nada a agendar: o retorno é uma lista
// vazia, não um erro. Se as visitas já existem elas são devolvidas sem
// alteração — a operação é idempotente e nunca duplica o agendamento.
// A verificação de existência roda imediatamente antes do insert e o
// lote entra em uma única transação; invocações concorrentes para a
// mesma mascote ainda podem se cruzar entre a leitura e o insert, risco
// aceito pelo modelo de concorrência da aplicação.
func (s *Service) StartFollowUpProcess(ctx context.Context, petID string) ([]domain.FollowUp, error) {
	if petID == "" {
		return nil, apperror.NewValidationError("petId é obrigatório.")
	}

	// 1. Localiza a adoção aprovada.
	request, err := s.requests.FindApprovedByPet(ctx, petID)
	if err != nil {
		var notFound *apperror.NotFoundError
		if errors.As(err, &notFound) {
			s.logger.Warn("Nenhuma solicitação aprovada para a mascote; nada a agendar.", map[string]interface{}{
				"pet_id": petID,
			})
			return []domain.FollowUp{}, nil
		}
		return nil, err
	}

	// 2. Idempotência: agendamento existente é devolvido sem alteração.
	existing, err := s.followUps.FindByRequest(ctx, request.ID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return existing, nil
	}

	// 3. Âncora: data da aprovação (updated_at), com fallback para agora.
	anchor := request.UpdatedAt
	if anchor.IsZero() {
		anchor = s.now().UTC()
	}

	// 4. Monta o lote. AddDate usa a normalização de calendário do Go
	// (31 Jan + 1 mês cai em março), a mesma regra para os três offsets.
	visits := make([]domain.FollowUp, 0, len(visitPlan))
	for _, plan := range visitPlan {
		visits = append(visits, domain.FollowUp{
			ID:                uuid.NewString(),
			AdoptionRequestID: request.ID,
			VisitType:         plan.visitType,
			VisitDate:         anchor.AddDate(0, plan.months, 0),
			Status:            domain.FollowUpProgramada,
		})
	}

	// 5. Persiste as três atomicamente.
	created, err := s.followUps.SaveBatch(ctx, visits)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Seguimento iniciado para a mascote.", map[string]interface{}{
		"pet_id":     petID,
		"request_id": request.ID,
		"visits":     len(created),
	})

	return created, nil
}

// ListGroupedByPet monta o painel administrativo: uma linha por mascote
// com o adotante e as visitas indexadas por tipo. Mascotes ou adotantes
// apagados aparecem com o placeholder "(deleted)" em vez de derrubar a
// listagem.
func (s *Service) ListGroupedByPet(ctx context.Context) ([]domain.GroupedFollowUp, error) {
	joined, err := s.followUps.FindAllJoined(ctx)
	if err != nil {
		return nil, err
	}

	groups := map[string]*domain.GroupedFollowUp{}
	order := []string{}

	for _, row := range joined {
		// Agrupa pela mascote; sem mascote, agrupa pela solicitação para
		// não misturar adoções distintas.
		key := "request:" + row.AdoptionRequestID
		if row.PetID != nil {
			key = "pet:" + *row.PetID
		}

		group, ok := groups[key]
		if !ok {
			group = &domain.GroupedFollowUp{
				Pet:     domain.PetSummary{Name: "(deleted)"},
				Adopter: domain.UserSummary{Name: "(deleted)"},
				Visits:  map[domain.VisitType]domain.FollowUp{},
			}
			if row.PetID != nil {
				group.Pet = domain.PetSummary{ID: *row.PetID, Name: deref(row.PetName), Image: deref(row.PetImage)}
			}
			if row.UserID != nil {
				group.Adopter = domain.UserSummary{ID: *row.UserID, Name: deref(row.UserName), Email: deref(row.UserEmail)}
			}
			groups[key] = group
			order = append(order, key)
		}

		group.Visits[row.VisitType] = row.FollowUp
	}

	result := make([]domain.GroupedFollowUp, 0, len(order))
	for _, key := range order {
		result = append(result, *groups[key])
	}

	return result, nil
}

// ListByPet devolve as visitas da adoção aprovada de uma mascote, ou
// lista vazia quando não existe adoção aprovada.
func (s *Service) ListByPet(ctx context.Context, petID string) ([]domain.FollowUp, error) {
	request, err := s.requests.FindApprovedByPet(ctx, petID)
	if err != nil {
		var notFound *apperror.NotFoundError
		if errors.As(err, &notFound) {
			return []domain.FollowUp{}, nil
		}
		return nil, err
	}

	return s.followUps.FindByRequest(ctx, request.ID)
}

// GetVisit busca uma visita individual.
func (s *Service) GetVisit(ctx context.Context, id string) (domain.FollowUp, error) {
	return s.followUps.FindByID(ctx, id)
}

// UpdateVisit aplica a atualização parcial dos campos de resultado e
// agenda. Campos omitidos mantêm o valor armazenado.
func (s *Service) UpdateVisit(ctx context.Context, id string, upd domain.FollowUpUpdate) (domain.FollowUp, error) {
	if upd.Status != nil && *upd.Status != domain.FollowUpProgramada && *upd.Status != domain.FollowUpCompletada {
		return domain.FollowUp{}, apperror.NewValidationError("Status de visita inválido.")
	}

	return s.followUps.Update(ctx, id, upd)
}

// DeleteVisit remove uma visita.
func (s *Service) DeleteVisit(ctx context.Context, id string) error {
	return s.followUps.Delete(ctx, id)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
