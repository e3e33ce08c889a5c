package domain

import (
	"context"
	"time"
)

// Blog é uma campanha educativa publicada no site.
type Blog struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Image     string    `json:"image"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BlogUpdate é uma atualização parcial de campanha.
type BlogUpdate struct {
	Title   *string `json:"title"`
	Summary *string `json:"summary"`
	Image   *string `json:"image"`
	Content *string `json:"content"`
}

// BlogRepository define o contrato de persistência das campanhas.
type BlogRepository interface {
	Save(ctx context.Context, b Blog) (Blog, error)
	FindByID(ctx context.Context, id string) (Blog, error)
	FindAll(ctx context.Context) ([]Blog, error)
	Update(ctx context.Context, id string, upd BlogUpdate) (Blog, error)
	Delete(ctx context.Context, id string) error
}
