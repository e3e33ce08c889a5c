package domain

import (
	"context"
	"time"
)

// RequestStatus representa o estado de uma solicitação de adoção.
// A máquina de estados é: pendiente -> aprobada | rechazada.
// Os dois estados finais não possuem transição de volta.
type RequestStatus string

const (
	RequestPendiente RequestStatus = "pendiente"
	RequestAprobada  RequestStatus = "aprobada"
	RequestRechazada RequestStatus = "rechazada"
)

// AdoptionRequest é a entidade central do fluxo de adoção: vincula uma
// mascote, um usuário e um formulário de adotante. Os campos de contato
// são duplicados do formulário por conveniência de leitura.
type AdoptionRequest struct {
	ID               string        `json:"id"`
	PetID            string        `json:"pet"`
	UserID           string        `json:"user"`
	FormSubmissionID string        `json:"formSubmission"`
	Status           RequestStatus `json:"status"`
	ContactEmail     string        `json:"contactEmail"`
	ContactPhone     string        `json:"contactPhone"`
	Message          string        `json:"message,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// AdoptionRequestView é a visão composta devolvida nas listagens: a
// solicitação com os campos de exibição da mascote e do usuário já
// resolvidos. A chave estrangeira crua continua sendo o fato armazenado;
// a visão é derivada por join no momento da leitura.
type AdoptionRequestView struct {
	AdoptionRequest
	Pet  *PetSummary  `json:"petDetails,omitempty"`
	User *UserSummary `json:"userDetails,omitempty"`
}

// AdoptionRequestRepository define o contrato de persistência das solicitações.
type AdoptionRequestRepository interface {
	Save(ctx context.Context, req AdoptionRequest) (AdoptionRequest, error)
	FindByID(ctx context.Context, id string) (AdoptionRequestView, error)
	FindByUser(ctx context.Context, userID string) ([]AdoptionRequestView, error)
	FindAll(ctx context.Context) ([]AdoptionRequestView, error)
	// FindApprovedByPet retorna a solicitação aprovada de uma mascote.
	// NotFoundError quando não existe: para o agendador isso significa
	// "nada a fazer ainda", não uma falha.
	FindApprovedByPet(ctx context.Context, petID string) (AdoptionRequest, error)
	UpdateStatus(ctx context.Context, id string, status RequestStatus) (AdoptionRequest, error)
	Delete(ctx context.Context, id string) error
}
