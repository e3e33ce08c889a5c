package domain

import (
	"context"
	"time"
)

// VisitType identifica cada uma das três visitas de seguimento pós-adoção.
type VisitType string

const (
	VisitOneMonth   VisitType = "1-month"
	VisitThreeMonth VisitType = "3-month"
	VisitSixMonth   VisitType = "6-month"
)

// FollowUpStatus é o estado de uma visita agendada.
type FollowUpStatus string

const (
	FollowUpProgramada FollowUpStatus = "Programada"
	FollowUpCompletada FollowUpStatus = "Completada"
)

// FollowUp é uma das exatamente três visitas criadas em lote para uma
// adoção aprovada. Nunca é criada individualmente.
type FollowUp struct {
	ID                string         `json:"id"`
	AdoptionRequestID string         `json:"adoptionRequest"`
	VisitType         VisitType      `json:"visitType"`
	VisitDate         time.Time      `json:"visitDate"`
	Status            FollowUpStatus `json:"status"`
	Mood              string         `json:"mood,omitempty"`
	Health            string         `json:"health,omitempty"`
	Weight            *float64       `json:"weight,omitempty"`
	Notes             string         `json:"notes,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// FollowUpUpdate é a atualização parcial de uma visita. Apenas os campos
// de resultado e agenda podem mudar; campos nil mantêm o valor persistido.
type FollowUpUpdate struct {
	Mood      *string         `json:"mood"`
	Health    *string         `json:"health"`
	Weight    *float64        `json:"weight"`
	Notes     *string         `json:"notes"`
	Status    *FollowUpStatus `json:"status"`
	VisitDate *time.Time      `json:"visitDate"`
}

// FollowUpJoined é a linha devolvida pelo join de visitas com a
// solicitação, a mascote e o adotante. Referências apagadas chegam
// como ponteiros nil (LEFT JOIN).
type FollowUpJoined struct {
	FollowUp
	PetID     *string
	PetName   *string
	PetImage  *string
	UserID    *string
	UserName  *string
	UserEmail *string
}

// GroupedFollowUp é uma linha do painel administrativo: uma mascote com
// seu adotante e as visitas indexadas por tipo.
type GroupedFollowUp struct {
	Pet     PetSummary             `json:"pet"`
	Adopter UserSummary            `json:"adopter"`
	Visits  map[VisitType]FollowUp `json:"visits"`
}

// FollowUpRepository define o contrato de persistência das visitas.
type FollowUpRepository interface {
	// SaveBatch insere todas as visitas em uma única transação: ou as
	// três entram, ou nenhuma.
	SaveBatch(ctx context.Context, visits []FollowUp) ([]FollowUp, error)
	FindByID(ctx context.Context, id string) (FollowUp, error)
	FindByRequest(ctx context.Context, requestID string) ([]FollowUp, error)
	FindAllJoined(ctx context.Context) ([]FollowUpJoined, error)
	Update(ctx context.Context, id string, upd FollowUpUpdate) (FollowUp, error)
	Delete(ctx context.Context, id string) error
}
