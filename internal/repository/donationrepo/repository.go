package donationrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"petconnect/internal/domain"
	apperror "petconnect/internal/errors"
	"petconnect/internal/pkg/logger"
)

const donationColumns = `id, stripe_session_id, amount, currency, description,
	donor_email, status, created_at, updated_at`

// DonationRepository implementa domain.DonationRepository sobre PostgreSQL.
type DonationRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewDonationRepository cria o repositório de doações.
func NewDonationRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *DonationRepository {
	return &DonationRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

// Save registra a doação pendente criada junto com a sessão de checkout.
func (r *DonationRepository) Save(ctx context.Context, d domain.Donation) (domain.Donation, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	d.ID = uuid.NewString()
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now
	if d.Status == "" {
		d.Status = domain.DonationPending
	}

	const insertSQL = `INSERT INTO donations (` + donationColumns + `)
                       VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`

	_, err := r.DB.ExecContext(ctxTimeout, insertSQL,
		d.ID, d.StripeSessionID, d.Amount, d.Currency, d.Description,
		d.DonorEmail, d.Status, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir doação no DB.", err)
		return domain.Donation{}, apperror.NewDBError("failed to insert donation", err)
	}

	return d, nil
}

// FindAll lista todas as doações, mais recentes primeiro.
func (r *DonationRepository) FindAll(ctx context.Context) ([]domain.Donation, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const querySQL = `SELECT ` + donationColumns + ` FROM donations ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctxTimeout, querySQL)
	if err != nil {
		return nil, apperror.NewDBError("failed to list donations", err)
	}
	defer rows.Close()

	donations := []domain.Donation{}
	for rows.Next() {
		var d domain.Donation
		err := rows.Scan(
			&d.ID, &d.StripeSessionID, &d.Amount, &d.Currency, &d.Description,
			&d.DonorEmail, &d.Status, &d.CreatedAt, &d.UpdatedAt,
		)
		if err != nil {
			return nil, apperror.NewDBError("failed to scan donation row", err)
		}
		donations = append(donations, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate donation rows", err)
	}

	return donations, nil
}

// CompleteBySession transiciona a doação pendente da sessão para "completed".
// A condição status = 'pending' no UPDATE cobre os dois casos de 404 do
// contrato: sessão desconhecida e doação já concluída.
func (r *DonationRepository) CompleteBySession(ctx context.Context, sessionID string, donorEmail string) (domain.Donation, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const updateSQL = `
		UPDATE donations
		SET status = $2, donor_email = COALESCE(NULLIF($3, ''), donor_email), updated_at = $4
		WHERE stripe_session_id = $1 AND status = $5
		RETURNING ` + donationColumns

	var d domain.Donation
	err := r.DB.QueryRowContext(ctxTimeout, updateSQL,
		sessionID, domain.DonationCompleted, donorEmail, time.Now().UTC(), domain.DonationPending,
	).Scan(
		&d.ID, &d.StripeSessionID, &d.Amount, &d.Currency, &d.Description,
		&d.DonorEmail, &d.Status, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Donation{}, apperror.NewNotFoundError(fmt.Sprintf("Doação pendente para a sessão %s não encontrada", sessionID))
		}
		return domain.Donation{}, apperror.NewDBError("failed to complete donation", err)
	}

	return d, nil
}
