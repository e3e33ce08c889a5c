package formrepo

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

const submissionColumns = `id, full_name, email, phone, housing_type, has_other_pets,
	has_children, lives_with_adults, age_range, department, city, pet_preference,
	reason_for_adoption, user_id, status, created_at, updated_at`

// FormSubmissionRepository implementa domain.FormSubmissionRepository sobre PostgreSQL.
type FormSubmissionRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewFormSubmissionRepository cria o repositório de formulários de adotante.
func NewFormSubmissionRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *FormSubmissionRepository {
	return &FormSubmissionRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

// Save insere um novo formulário. Status default é "pendiente".
func (r *FormSubmissionRepository) Save(ctx context.Context, sub domain.AdopterFormSubmission) (domain.AdopterFormSubmission, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	sub.ID = uuid.NewString()
	now := time.Now().UTC()
	sub.CreatedAt = now
	sub.UpdatedAt = now
	if sub.Status == "" {
		sub.Status = domain.SubmissionPendiente
	}

	const insertSQL = `INSERT INTO adopter_form_submissions (` + submissionColumns + `)
                       VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`

	_, err := r.DB.ExecContext(ctxTimeout, insertSQL,
		sub.ID, sub.FullName, sub.Email, sub.Phone, sub.HousingType,
		sub.HasOtherPets, sub.HasChildren, sub.LivesWithAdults, sub.AgeRange,
		sub.Department, sub.City, sub.PetPreference, sub.ReasonForAdoption,
		sub.UserID, sub.Status, sub.CreatedAt, sub.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir formulário de adotante no DB.", err)
		return domain.AdopterFormSubmission{}, apperror.NewDBError("failed to insert form submission", err)
	}

	return sub, nil
}

// FindByID busca um formulário pelo ID.
func (r *FormSubmissionRepository) FindByID(ctx context.Context, id string) (domain.AdopterFormSubmission, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const querySQL = `SELECT ` + submissionColumns + ` FROM adopter_form_submissions WHERE id = $1`

	var sub domain.AdopterFormSubmission
	if err := scanSubmission(r.DB.QueryRowContext(ctxTimeout, querySQL, id), &sub); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.AdopterFormSubmission{}, apperror.NewNotFoundError(fmt.Sprintf("Formulário com ID %s não encontrado", id))
		}
		return domain.AdopterFormSubmission{}, apperror.NewDBError("failed to find form submission", err)
	}

	return sub, nil
}

// FindAll lista todos os formulários, mais recentes primeiro.
func (r *FormSubmissionRepository) FindAll(ctx context.Context) ([]domain.AdopterFormSubmission, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const querySQL = `SELECT ` + submissionColumns + ` FROM adopter_form_submissions ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctxTimeout, querySQL)
	if err != nil {
		return nil, apperror.NewDBError("failed to list form submissions", err)
	}
	defer rows.Close()

	subs := []domain.AdopterFormSubmission{}
	for rows.Next() {
		var sub domain.AdopterFormSubmission
		if err := scanSubmission(rows, &sub); err != nil {
			return nil, apperror.NewDBError("failed to scan form submission row", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate form submission rows", err)
	}

	return subs, nil
}

// UpdateStatus altera apenas o estado de revisão do formulário.
func (r *FormSubmissionRepository) UpdateStatus(ctx context.Context, id string, status domain.SubmissionStatus) (domain.AdopterFormSubmission, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const updateSQL = `UPDATE adopter_form_submissions SET status = $2, updated_at = $3
	                   WHERE id = $1 RETURNING ` + submissionColumns

	var sub domain.AdopterFormSubmission
	row := r.DB.QueryRowContext(ctxTimeout, updateSQL, id, status, time.Now().UTC())
	if err := scanSubmission(row, &sub); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.AdopterFormSubmission{}, apperror.NewNotFoundError(fmt.Sprintf("Formulário com ID %s não encontrado", id))
		}
		return domain.AdopterFormSubmission{}, apperror.NewDBError("failed to update form submission", err)
	}

	return sub, nil
}

// Delete remove um formulário.
func (r *FormSubmissionRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM adopter_form_submissions WHERE id = $1`, id)
	if err != nil {
		return apperror.NewDBError("failed to delete form submission", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Formulário com ID %s não encontrado", id))
	}

	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSubmission(s scanner, sub *domain.AdopterFormSubmission) error {
	return s.Scan(
		&sub.ID, &sub.FullName, &sub.Email, &sub.Phone, &sub.HousingType,
		&sub.HasOtherPets, &sub.HasChildren, &sub.LivesWithAdults, &sub.AgeRange,
		&sub.Department, &sub.City, &sub.PetPreference, &sub.ReasonForAdoption,
		&sub.UserID, &sub.Status, &sub.CreatedAt, &sub.UpdatedAt,
	)
}
