package followuprepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"petconnect/internal/domain"
	apperror "petconnect/internal/errors"
	"petconnect/internal/pkg/logger"
)

const followUpColumns = `id, adoption_request_id, visit_type, visit_date, status,
	mood, health, weight, notes, created_at, updated_at`

// FollowUpRepository implementa domain.FollowUpRepository sobre PostgreSQL.
type FollowUpRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewFollowUpRepository cria o repositório de visitas de seguimento.
func NewFollowUpRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *FollowUpRepository {
	return &FollowUpRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

// SaveBatch insere todas as visitas dentro de uma única transação: ou o
// lote inteiro é persistido, ou nada é. É o que garante o invariante de
// "exatamente {0,3} visitas por adoção" contra falha parcial.
func (r *FollowUpRepository) SaveBatch(ctx context.Context, visits []domain.FollowUp) ([]domain.FollowUp, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		return nil, apperror.NewDBError("failed to start tx", err)
	}

	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	const insertSQL = `INSERT INTO follow_ups (` + followUpColumns + `)
                       VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`

	now := time.Now().UTC()
	for i := range visits {
		visits[i].CreatedAt = now
		visits[i].UpdatedAt = now

		_, err = tx.ExecContext(ctxTimeout, insertSQL,
			visits[i].ID, visits[i].AdoptionRequestID, visits[i].VisitType,
			visits[i].VisitDate, visits[i].Status, visits[i].Mood,
			visits[i].Health, visits[i].Weight, visits[i].Notes,
			visits[i].CreatedAt, visits[i].UpdatedAt,
		)
		if err != nil {
			r.logger.Error("Falha ao inserir visita de seguimento no DB.", err)
			return nil, apperror.NewDBError("failed to insert follow-up", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, apperror.NewDBError("failed to commit tx", err)
	}

	return visits, nil
}

// FindByID busca uma visita pelo ID.
func (r *FollowUpRepository) FindByID(ctx context.Context, id string) (domain.FollowUp, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const querySQL = `SELECT ` + followUpColumns + ` FROM follow_ups WHERE id = $1`

	var fu domain.FollowUp
	if err := scanFollowUp(r.DB.QueryRowContext(ctxTimeout, querySQL, id), &fu); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.FollowUp{}, apperror.NewNotFoundError(fmt.Sprintf("Seguimento com ID %s não encontrado", id))
		}
		return domain.FollowUp{}, apperror.NewDBError("failed to find follow-up", err)
	}

	return fu, nil
}

// FindByRequest lista as visitas de uma solicitação, na ordem das datas.
func (r *FollowUpRepository) FindByRequest(ctx context.Context, requestID string) ([]domain.FollowUp, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const querySQL = `SELECT ` + followUpColumns + ` FROM follow_ups
	                  WHERE adoption_request_id = $1 ORDER BY visit_date ASC`

	rows, err := r.DB.QueryContext(ctxTimeout, querySQL, requestID)
	if err != nil {
		return nil, apperror.NewDBError("failed to list follow-ups", err)
	}
	defer rows.Close()

	visits := []domain.FollowUp{}
	for rows.Next() {
		var fu domain.FollowUp
		if err := scanFollowUp(rows, &fu); err != nil {
			return nil, apperror.NewDBError("failed to scan follow-up row", err)
		}
		visits = append(visits, fu)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate follow-up rows", err)
	}

	return visits, nil
}

// FindAllJoined devolve todas as visitas com solicitação, mascote e
// adotante resolvidos por LEFT JOIN. Referências apagadas chegam nil.
func (r *FollowUpRepository) FindAllJoined(ctx context.Context) ([]domain.FollowUpJoined, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const querySQL = `
		SELECT f.id, f.adoption_request_id, f.visit_type, f.visit_date, f.status,
		       f.mood, f.health, f.weight, f.notes, f.created_at, f.updated_at,
		       p.id, p.name, p.image,
		       u.id, u.name, u.email
		FROM follow_ups f
		LEFT JOIN adoption_requests ar ON ar.id = f.adoption_request_id
		LEFT JOIN pets p ON p.id = ar.pet_id
		LEFT JOIN users u ON u.id = ar.user_id
		ORDER BY f.visit_date ASC`

	rows, err := r.DB.QueryContext(ctxTimeout, querySQL)
	if err != nil {
		return nil, apperror.NewDBError("failed to list joined follow-ups", err)
	}
	defer rows.Close()

	joined := []domain.FollowUpJoined{}
	for rows.Next() {
		var row domain.FollowUpJoined
		err := rows.Scan(
			&row.ID, &row.AdoptionRequestID, &row.VisitType, &row.VisitDate, &row.Status,
			&row.Mood, &row.Health, &row.Weight, &row.Notes, &row.CreatedAt, &row.UpdatedAt,
			&row.PetID, &row.PetName, &row.PetImage,
			&row.UserID, &row.UserName, &row.UserEmail,
		)
		if err != nil {
			return nil, apperror.NewDBError("failed to scan joined follow-up row", err)
		}
		joined = append(joined, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate joined follow-up rows", err)
	}

	return joined, nil
}

// Update aplica uma atualização parcial sobre os campos de resultado e
// agenda da visita, retornando a linha resultante.
func (r *FollowUpRepository) Update(ctx context.Context, id string, upd domain.FollowUpUpdate) (domain.FollowUp, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const updateSQL = `
		UPDATE follow_ups SET
			mood       = COALESCE($2, mood),
			health     = COALESCE($3, health),
			weight     = COALESCE($4, weight),
			notes      = COALESCE($5, notes),
			status     = COALESCE($6, status),
			visit_date = COALESCE($7, visit_date),
			updated_at = $8
		WHERE id = $1
		RETURNING ` + followUpColumns

	row := r.DB.QueryRowContext(ctxTimeout, updateSQL, id,
		upd.Mood, upd.Health, upd.Weight, upd.Notes, upd.Status, upd.VisitDate,
		time.Now().UTC(),
	)

	var fu domain.FollowUp
	if err := scanFollowUp(row, &fu); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.FollowUp{}, apperror.NewNotFoundError(fmt.Sprintf("Seguimento com ID %s não encontrado", id))
		}
		return domain.FollowUp{}, apperror.NewDBError("failed to update follow-up", err)
	}

	return fu, nil
}

// Delete remove uma visita (hard delete).
func (r *FollowUpRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM follow_ups WHERE id = $1`, id)
	if err != nil {
		return apperror.NewDBError("failed to delete follow-up", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Seguimento com ID %s não encontrado", id))
	}

	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanFollowUp(s scanner, fu *domain.FollowUp) error {
	return s.Scan(
		&fu.ID, &fu.AdoptionRequestID, &fu.VisitType, &fu.VisitDate, &fu.Status,
		&fu.Mood, &fu.Health, &fu.Weight, &fu.Notes, &fu.CreatedAt, &fu.UpdatedAt,
	)
}
