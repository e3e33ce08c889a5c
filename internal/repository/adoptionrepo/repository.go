package adoptionrepo

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

const requestColumns = `ar.id, ar.pet_id, ar.user_id, ar.form_submission_id, ar.status,
	ar.contact_email, ar.contact_phone, ar.message, ar.created_at, ar.updated_at`

// A visão de listagem resolve os campos de exibição por LEFT JOIN: a
// chave estrangeira crua é o fato armazenado, referências apagadas não
// derrubam a consulta.
const requestViewSQL = `
	SELECT ` + requestColumns + `,
	       p.id, p.name, p.image,
	       u.id, u.name, u.email
	FROM adoption_requests ar
	LEFT JOIN pets p ON p.id = ar.pet_id
	LEFT JOIN users u ON u.id = ar.user_id`

// AdoptionRequestRepository implementa domain.AdoptionRequestRepository sobre PostgreSQL.
type AdoptionRequestRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewAdoptionRequestRepository cria o repositório de solicitações de adoção.
func NewAdoptionRequestRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *AdoptionRequestRepository {
	return &AdoptionRequestRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

// Save insere uma nova solicitação com status "pendiente".
func (r *AdoptionRequestRepository) Save(ctx context.Context, req domain.AdoptionRequest) (domain.AdoptionRequest, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	req.ID = uuid.NewString()
	now := time.Now().UTC()
	req.CreatedAt = now
	req.UpdatedAt = now
	if req.Status == "" {
		req.Status = domain.RequestPendiente
	}

	const insertSQL = `INSERT INTO adoption_requests
		(id, pet_id, user_id, form_submission_id, status, contact_email, contact_phone, message, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`

	_, err := r.DB.ExecContext(ctxTimeout, insertSQL,
		req.ID, req.PetID, req.UserID, req.FormSubmissionID, req.Status,
		req.ContactEmail, req.ContactPhone, req.Message, req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir solicitação de adoção no DB.", err)
		return domain.AdoptionRequest{}, apperror.NewDBError("failed to insert adoption request", err)
	}

	return req, nil
}

// FindByID busca uma solicitação com os campos de exibição resolvidos.
func (r *AdoptionRequestRepository) FindByID(ctx context.Context, id string) (domain.AdoptionRequestView, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	row := r.DB.QueryRowContext(ctxTimeout, requestViewSQL+` WHERE ar.id = $1`, id)

	view, err := scanRequestView(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.AdoptionRequestView{}, apperror.NewNotFoundError(fmt.Sprintf("Solicitação com ID %s não encontrada", id))
		}
		return domain.AdoptionRequestView{}, apperror.NewDBError("failed to find adoption request", err)
	}

	return view, nil
}

// FindByUser lista as solicitações de um usuário, mais recentes primeiro.
func (r *AdoptionRequestRepository) FindByUser(ctx context.Context, userID string) ([]domain.AdoptionRequestView, error) {
	return r.queryViews(ctx, requestViewSQL+` WHERE ar.user_id = $1 ORDER BY ar.created_at DESC`, userID)
}

// FindAll lista todas as solicitações, mais recentes primeiro.
func (r *AdoptionRequestRepository) FindAll(ctx context.Context) ([]domain.AdoptionRequestView, error) {
	return r.queryViews(ctx, requestViewSQL+` ORDER BY ar.created_at DESC`)
}

// FindApprovedByPet retorna a solicitação aprovada de uma mascote, sem joins.
func (r *AdoptionRequestRepository) FindApprovedByPet(ctx context.Context, petID string) (domain.AdoptionRequest, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const querySQL = `
		SELECT ` + requestColumns + `
		FROM adoption_requests ar
		WHERE ar.pet_id = $1 AND ar.status = $2
		ORDER BY ar.updated_at DESC
		LIMIT 1`

	var req domain.AdoptionRequest
	err := r.DB.QueryRowContext(ctxTimeout, querySQL, petID, domain.RequestAprobada).Scan(
		&req.ID, &req.PetID, &req.UserID, &req.FormSubmissionID, &req.Status,
		&req.ContactEmail, &req.ContactPhone, &req.Message, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.AdoptionRequest{}, apperror.NewNotFoundError(fmt.Sprintf("Nenhuma solicitação aprovada para a mascote %s", petID))
		}
		return domain.AdoptionRequest{}, apperror.NewDBError("failed to find approved request", err)
	}

	return req, nil
}

// UpdateStatus define o status da solicitação e retorna a linha resultante.
func (r *AdoptionRequestRepository) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (domain.AdoptionRequest, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const updateSQL = `
		UPDATE adoption_requests SET status = $2, updated_at = $3
		WHERE id = $1
		RETURNING id, pet_id, user_id, form_submission_id, status,
		          contact_email, contact_phone, message, created_at, updated_at`

	var req domain.AdoptionRequest
	err := r.DB.QueryRowContext(ctxTimeout, updateSQL, id, status, time.Now().UTC()).Scan(
		&req.ID, &req.PetID, &req.UserID, &req.FormSubmissionID, &req.Status,
		&req.ContactEmail, &req.ContactPhone, &req.Message, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.AdoptionRequest{}, apperror.NewNotFoundError(fmt.Sprintf("Solicitação com ID %s não encontrada", id))
		}
		return domain.AdoptionRequest{}, apperror.NewDBError("failed to update adoption request", err)
	}

	return req, nil
}

// Delete remove uma solicitação.
func (r *AdoptionRequestRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM adoption_requests WHERE id = $1`, id)
	if err != nil {
		return apperror.NewDBError("failed to delete adoption request", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Solicitação com ID %s não encontrada", id))
	}

	return nil
}

func (r *AdoptionRequestRepository) queryViews(ctx context.Context, querySQL string, args ...interface{}) ([]domain.AdoptionRequestView, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, querySQL, args...)
	if err != nil {
		return nil, apperror.NewDBError("failed to list adoption requests", err)
	}
	defer rows.Close()

	views := []domain.AdoptionRequestView{}
	for rows.Next() {
		view, err := scanRequestView(rows)
		if err != nil {
			return nil, apperror.NewDBError("failed to scan adoption request row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate adoption request rows", err)
	}

	return views, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRequestView(s scanner) (domain.AdoptionRequestView, error) {
	var (
		view                         domain.AdoptionRequestView
		petID, petName, petImage     sql.NullString
		userID, userName, userEmail  sql.NullString
	)

	err := s.Scan(
		&view.ID, &view.PetID, &view.UserID, &view.FormSubmissionID, &view.Status,
		&view.ContactEmail, &view.ContactPhone, &view.Message, &view.CreatedAt, &view.UpdatedAt,
		&petID, &petName, &petImage,
		&userID, &userName, &userEmail,
	)
	if err != nil {
		return domain.AdoptionRequestView{}, err
	}

	if petID.Valid {
		view.Pet = &domain.PetSummary{ID: petID.String, Name: petName.String, Image: petImage.String}
	}
	if userID.Valid {
		view.User = &domain.UserSummary{ID: userID.String, Name: userName.String, Email: userEmail.String}
	}

	return view, nil
}
