package statsrepo

import (
	"context"
	"database/sql"
	"time"

	"petconnect/internal/domain"
	apperror "petconnect/internal/errors"
	"petconnect/internal/pkg/logger"
)

// StatsRepository implementa domain.StatsRepository sobre PostgreSQL.
type StatsRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewStatsRepository cria o repositório de agregações do dashboard.
func NewStatsRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *StatsRepository {
	return &StatsRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

// Dashboard resolve todos os contadores do painel em uma única linha de
// subconsultas escalares, mais um GROUP BY para a distribuição por espécie.
func (r *StatsRepository) Dashboard(ctx context.Context) (domain.DashboardStats, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	stats := domain.DashboardStats{PetsByKind: map[string]int{}}

	const countsSQL = `
		SELECT
			(SELECT COUNT(*) FROM pets),
			(SELECT COUNT(*) FROM pets WHERE status = $1),
			(SELECT COUNT(*) FROM pets WHERE status = $2),
			(SELECT COUNT(*) FROM pets WHERE status = $3),
			(SELECT COUNT(*) FROM adoption_requests WHERE status = $4),
			(SELECT COUNT(*) FROM adoption_requests WHERE status = $5),
			(SELECT COUNT(*) FROM adoption_requests WHERE status = $6)`

	err := r.DB.QueryRowContext(ctxTimeout, countsSQL,
		domain.PetAdoptado, domain.PetDisponible, domain.PetEnProceso,
		domain.RequestPendiente, domain.RequestAprobada, domain.RequestRechazada,
	).Scan(
		&stats.TotalPets, &stats.AdoptedPets, &stats.AvailablePets, &stats.InProcessPets,
		&stats.PendingRequests, &stats.ApprovedRequests, &stats.RejectedRequests,
	)
	if err != nil {
		return domain.DashboardStats{}, apperror.NewDBError("failed to load dashboard counts", err)
	}

	rows, err := r.DB.QueryContext(ctxTimeout, `SELECT kind, COUNT(*) FROM pets GROUP BY kind`)
	if err != nil {
		return domain.DashboardStats{}, apperror.NewDBError("failed to group pets by kind", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return domain.DashboardStats{}, apperror.NewDBError("failed to scan pets-by-kind row", err)
		}
		stats.PetsByKind[kind] = count
	}
	if err := rows.Err(); err != nil {
		return domain.DashboardStats{}, apperror.NewDBError("failed to iterate pets-by-kind rows", err)
	}

	return stats, nil
}
