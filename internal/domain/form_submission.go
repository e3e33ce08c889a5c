package domain

import (
	"context"
	"time"
)

// SubmissionStatus é o estado de revisão de um formulário de adotante.
type SubmissionStatus string

const (
	SubmissionPendiente  SubmissionStatus = "pendiente"
	SubmissionRevisado   SubmissionStatus = "revisado"
	SubmissionContactado SubmissionStatus = "contactado"
)

// PlaceholderValue preenche campos obrigatórios quando o formulário é
// sintetizado a partir de uma solicitação de adoção sem formulário próprio.
const PlaceholderValue = "No especificado"

// AdopterFormSubmission é a fotografia das respostas de moradia e estilo
// de vida de um adotante. Pode existir sem usuário vinculado.
type AdopterFormSubmission struct {
	ID                string           `json:"id"`
	FullName          string           `json:"fullName"`
	Email             string           `json:"email"`
	Phone             string           `json:"phone"`
	HousingType       string           `json:"housingType"`
	HasOtherPets      bool             `json:"hasOtherPets"`
	HasChildren       bool             `json:"hasChildren"`
	LivesWithAdults   bool             `json:"livesWithAdults"`
	AgeRange          string           `json:"ageRange"`
	Department        string           `json:"department"`
	City              string           `json:"city"`
	PetPreference     string           `json:"petPreference"`
	ReasonForAdoption string           `json:"reasonForAdoption"`
	UserID            *string          `json:"user"`
	Status            SubmissionStatus `json:"status"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// FormSubmissionRepository define o contrato de persistência dos formulários.
type FormSubmissionRepository interface {
	Save(ctx context.Context, sub AdopterFormSubmission) (AdopterFormSubmission, error)
	FindByID(ctx context.Context, id string) (AdopterFormSubmission, error)
	FindAll(ctx context.Context) ([]AdopterFormSubmission, error)
	UpdateStatus(ctx context.Context, id string, status SubmissionStatus) (AdopterFormSubmission, error)
	Delete(ctx context.Context, id string) error
}
