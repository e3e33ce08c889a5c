package blogservice

import (
	"context"

	"petconnect/internal/domain"
	apperror "petconnect/internal/errors"
	"petconnect/internal/pkg/logger"
)

// Service implementa o CRUD das campanhas educativas.
type Service struct {
	blogs  domain.BlogRepository
	logger logger.Logger
}

// NewService cria o serviço de campanhas.
func NewService(blogs domain.BlogRepository, log logger.Logger) *Service {
	return &Service{blogs: blogs, logger: log}
}

// Create publica uma campanha nova.
func (s *Service) Create(ctx context.Context, b domain.Blog) (domain.Blog, error) {
	if b.Title == "" || b.Content == "" {
		return domain.Blog{}, apperror.NewValidationError("Título e conteúdo são obrigatórios.")
	}
	return s.blogs.Save(ctx, b)
}

// List devolve todas as campanhas, mais recentes primeiro.
func (s *Service) List(ctx context.Context) ([]domain.Blog, error) {
	return s.blogs.FindAll(ctx)
}

// GetByID busca uma campanha pelo id.
func (s *Service) GetByID(ctx context.Context, id string) (domain.Blog, error) {
	if id == "" {
		return domain.Blog{}, apperror.NewValidationError("O id da campanha é obrigatório.")
	}
	return s.blogs.FindByID(ctx, id)
}

// Update aplica uma atualização parcial na campanha.
func (s *Service) Update(ctx context.Context, id string, upd domain.BlogUpdate) (domain.Blog, error) {
	if id == "" {
		return domain.Blog{}, apperror.NewValidationError("O id da campanha é obrigatório.")
	}
	return s.blogs.Update(ctx, id, upd)
}

// Delete remove uma campanha.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperror.NewValidationError("O id da campanha é obrigatório.")
	}
	return s.blogs.Delete(ctx, id)
}
