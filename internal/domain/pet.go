package domain

import (
	"context"
	"time"
)

// PetStatus representa o estado de uma mascote dentro do ciclo de adoção.
// O status é a única fonte de verdade para a visibilidade no catálogo
// e para os gatilhos do fluxo de adoção.
type PetStatus string

// Valores de status expostos na API (o produto é em espanhol).
const (
	PetDisponible    PetStatus = "disponible"
	PetEnProceso     PetStatus = "en proceso de adopción"
	PetEnSeguimiento PetStatus = "en seguimiento"
	PetAdoptado      PetStatus = "adoptado"
)

// PetKind define as espécies suportadas pelo catálogo.
type PetKind string

const (
	KindPerro PetKind = "Perro"
	KindGato  PetKind = "Gato"
)

// Pet representa uma mascote adotável no catálogo.
type Pet struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Age         string    `json:"age"`
	Kind        PetKind   `json:"kind"`
	ShortBio    string    `json:"shortBio"`
	Personality string    `json:"personality"`
	Rescuer     string    `json:"rescuer"`
	Size        string    `json:"size"`
	History     string    `json:"history"`
	Image       string    `json:"image"`
	Status      PetStatus `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PetSummary carrega apenas os campos de exibição da mascote
// resolvidos em joins de listagem.
type PetSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// PetUpdate é uma atualização parcial; campos nil mantêm o valor persistido.
type PetUpdate struct {
	Name        *string    `json:"name"`
	Age         *string    `json:"age"`
	Kind        *PetKind   `json:"kind"`
	ShortBio    *string    `json:"shortBio"`
	Personality *string    `json:"personality"`
	Rescuer     *string    `json:"rescuer"`
	Size        *string    `json:"size"`
	History     *string    `json:"history"`
	Image       *string    `json:"image"`
	Status      *PetStatus `json:"status"`
}

// PetRepository define o contrato de persistência para mascotes.
type PetRepository interface {
	Save(ctx context.Context, pet Pet) (Pet, error)
	FindByID(ctx context.Context, id string) (Pet, error)
	FindAll(ctx context.Context) ([]Pet, error)
	Update(ctx context.Context, id string, upd PetUpdate) (Pet, error)
	UpdateStatus(ctx context.Context, id string, status PetStatus) error
	Delete(ctx context.Context, id string) error
}
