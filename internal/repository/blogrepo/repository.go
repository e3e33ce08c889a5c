package blogrepo

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

const blogColumns = `id, title, summary, image, content, created_at, updated_at`

// BlogRepository implementa domain.BlogRepository sobre PostgreSQL.
type BlogRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewBlogRepository cria o repositório de campanhas educativas.
func NewBlogRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *BlogRepository {
	return &BlogRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

// Save insere uma nova campanha.
func (r *BlogRepository) Save(ctx context.Context, b domain.Blog) (domain.Blog, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	b.ID = uuid.NewString()
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	const insertSQL = `INSERT INTO blogs (` + blogColumns + `) VALUES ($1,$2,$3,$4,$5,$6,$7)`

	_, err := r.DB.ExecContext(ctxTimeout, insertSQL,
		b.ID, b.Title, b.Summary, b.Image, b.Content, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir campanha no DB.", err)
		return domain.Blog{}, apperror.NewDBError("failed to insert blog", err)
	}

	return b, nil
}

// FindByID busca uma campanha pelo ID.
func (r *BlogRepository) FindByID(ctx context.Context, id string) (domain.Blog, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const querySQL = `SELECT ` + blogColumns + ` FROM blogs WHERE id = $1`

	var b domain.Blog
	err := r.DB.QueryRowContext(ctxTimeout, querySQL, id).Scan(
		&b.ID, &b.Title, &b.Summary, &b.Image, &b.Content, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Blog{}, apperror.NewNotFoundError(fmt.Sprintf("Campanha com ID %s não encontrada", id))
		}
		return domain.Blog{}, apperror.NewDBError("failed to find blog", err)
	}

	return b, nil
}

// FindAll lista todas as campanhas, mais recentes primeiro.
func (r *BlogRepository) FindAll(ctx context.Context) ([]domain.Blog, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const querySQL = `SELECT ` + blogColumns + ` FROM blogs ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctxTimeout, querySQL)
	if err != nil {
		return nil, apperror.NewDBError("failed to list blogs", err)
	}
	defer rows.Close()

	blogs := []domain.Blog{}
	for rows.Next() {
		var b domain.Blog
		err := rows.Scan(&b.ID, &b.Title, &b.Summary, &b.Image, &b.Content, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return nil, apperror.NewDBError("failed to scan blog row", err)
		}
		blogs = append(blogs, b)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate blog rows", err)
	}

	return blogs, nil
}

// Update aplica uma atualização parcial e retorna a linha resultante.
func (r *BlogRepository) Update(ctx context.Context, id string, upd domain.BlogUpdate) (domain.Blog, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const updateSQL = `
		UPDATE blogs SET
			title      = COALESCE($2, title),
			summary    = COALESCE($3, summary),
			image      = COALESCE($4, image),
			content    = COALESCE($5, content),
			updated_at = $6
		WHERE id = $1
		RETURNING ` + blogColumns

	var b domain.Blog
	err := r.DB.QueryRowContext(ctxTimeout, updateSQL, id,
		upd.Title, upd.Summary, upd.Image, upd.Content, time.Now().UTC(),
	).Scan(&b.ID, &b.Title, &b.Summary, &b.Image, &b.Content, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Blog{}, apperror.NewNotFoundError(fmt.Sprintf("Campanha com ID %s não encontrada", id))
		}
		return domain.Blog{}, apperror.NewDBError("failed to update blog", err)
	}

	return b, nil
}

// Delete remove uma campanha.
func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return apperror.NewDBError("failed to delete blog", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Campanha com ID %s não encontrada", id))
	}

	return nil
}
