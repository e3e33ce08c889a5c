package statsservice

import (
	"context"

	"petconnect/internal/domain"
	"petconnect/internal/pkg/logger"
)

// Service expõe os agregados do painel administrativo.
type Service struct {
	stats  domain.StatsRepository
	logger logger.Logger
}

// NewService cria o serviço de estatísticas.
func NewService(stats domain.StatsRepository, log logger.Logger) *Service {
	return &Service{stats: stats, logger: log}
}

// Dashboard devolve os contadores do painel em uma única leitura.
func (s *Service) Dashboard(ctx context.Context) (domain.DashboardStats, error) {
	return s.stats.Dashboard(ctx)
}
