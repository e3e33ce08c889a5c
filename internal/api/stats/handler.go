package stats

import (
	"context"
	"net/http"

	"petconnect/internal/api/respond"
	"petconnect/internal/domain"
	"petconnect/internal/pkg/logger"
)

// StatsService define o contrato que o Handler espera da camada de serviço.
type StatsService interface {
	Dashboard(ctx context.Context) (domain.DashboardStats, error)
}

// Handler expõe os agregados do painel administrativo.
type Handler struct {
	service StatsService
	logger  logger.Logger
}

// NewHandler cria o handler do dashboard.
func NewHandler(svc StatsService, log logger.Logger) *Handler {
	return &Handler{service: svc, logger: log}
}

// Dashboard trata GET /api/stats/dashboard (admin).
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Dashboard(r.Context())
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	respond.Item(w, http.StatusOK, dashboard)
}
