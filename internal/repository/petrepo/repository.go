package petrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"petconnect/internal/domain"
	apperror "petconnect/internal/errors"
	"petconnect/internal/pkg/cache"
	"petconnect/internal/pkg/logger"
)

// Chave de cache para mascotes individuais.
const petCacheKey = "pet:%s"

const petColumns = `id, name, age, kind, short_bio, personality, rescuer, size, history, image, status, created_at, updated_at`

// PetRepository implementa domain.PetRepository sobre PostgreSQL, com
// leitura cache-aside no Redis para o perfil individual (a página de
// detalhe do catálogo é de longe a leitura mais frequente).
type PetRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewPetRepository cria o repositório injetando DB, cache e timeout.
func NewPetRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, log logger.Logger) *PetRepository {
	return &PetRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    log,
	}
}

// Save insere uma nova mascote. Status default é "disponible".
func (r *PetRepository) Save(ctx context.Context, pet domain.Pet) (domain.Pet, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	pet.ID = uuid.NewString()
	now := time.Now().UTC()
	pet.CreatedAt = now
	pet.UpdatedAt = now
	if pet.Status == "" {
		pet.Status = domain.PetDisponible
	}

	const insertSQL = `INSERT INTO pets (` + petColumns + `)
                       VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`

	_, err := r.DB.ExecContext(ctxTimeout, insertSQL,
		pet.ID, pet.Name, pet.Age, pet.Kind, pet.ShortBio, pet.Personality,
		pet.Rescuer, pet.Size, pet.History, pet.Image, pet.Status,
		pet.CreatedAt, pet.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir mascote no DB.", err)
		return domain.Pet{}, apperror.NewDBError("failed to insert pet", err)
	}

	return pet, nil
}

// FindByID busca uma mascote pelo ID, utilizando a estratégia Cache-Aside.
func (r *PetRepository) FindByID(ctx context.Context, id string) (domain.Pet, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	key := fmt.Sprintf(petCacheKey, id)
	var pet domain.Pet

	// 1. Tentar obter do Cache (Redis)
	cachedData, err := r.Cache.Get(ctxTimeout, key)
	if err == nil {
		if json.Unmarshal([]byte(cachedData), &pet) == nil {
			return pet, nil
		}
		// Desserialização falhou: segue para o DB.
	} else if err != cache.ErrCacheMiss {
		r.logger.Warn("Falha ao ler do cache Redis, seguindo para o DB.", map[string]interface{}{"key": key})
	}

	// 2. Busca no Banco de Dados
	const querySQL = `SELECT ` + petColumns + ` FROM pets WHERE id = $1`

	row := r.DB.QueryRowContext(ctxTimeout, querySQL, id)
	if err := scanPet(row, &pet); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Pet{}, apperror.NewNotFoundError(fmt.Sprintf("Mascote com ID %s não existe.", id))
		}
		return domain.Pet{}, apperror.NewDBError("failed to find pet", err)
	}

	// 3. Popular o cache para futuras requisições.
	if petJSON, marshalErr := json.Marshal(pet); marshalErr == nil {
		_ = r.Cache.Set(ctxTimeout, key, petJSON, r.CacheTTL)
	}

	return pet, nil
}

// FindAll lista todas as mascotes, mais recentes primeiro.
func (r *PetRepository) FindAll(ctx context.Context) ([]domain.Pet, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const querySQL = `SELECT ` + petColumns + ` FROM pets ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctxTimeout, querySQL)
	if err != nil {
		return nil, apperror.NewDBError("failed to list pets", err)
	}
	defer rows.Close()

	pets := []domain.Pet{}
	for rows.Next() {
		var pet domain.Pet
		if err := scanPet(rows, &pet); err != nil {
			return nil, apperror.NewDBError("failed to scan pet row", err)
		}
		pets = append(pets, pet)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate pet rows", err)
	}

	return pets, nil
}

// Update aplica uma atualização parcial e retorna a linha resultante.
// Campos nil do PetUpdate mantêm o valor persistido (COALESCE).
func (r *PetRepository) Update(ctx context.Context, id string, upd domain.PetUpdate) (domain.Pet, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const updateSQL = `
		UPDATE pets SET
			name        = COALESCE($2, name),
			age         = COALESCE($3, age),
			kind        = COALESCE($4, kind),
			short_bio   = COALESCE($5, short_bio),
			personality = COALESCE($6, personality),
			rescuer     = COALESCE($7, rescuer),
			size        = COALESCE($8, size),
			history     = COALESCE($9, history),
			image       = COALESCE($10, image),
			status      = COALESCE($11, status),
			updated_at  = $12
		WHERE id = $1
		RETURNING ` + petColumns

	row := r.DB.QueryRowContext(ctxTimeout, updateSQL, id,
		upd.Name, upd.Age, upd.Kind, upd.ShortBio, upd.Personality,
		upd.Rescuer, upd.Size, upd.History, upd.Image, upd.Status,
		time.Now().UTC(),
	)

	var pet domain.Pet
	if err := scanPet(row, &pet); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Pet{}, apperror.NewNotFoundError(fmt.Sprintf("Mascote com ID %s não existe.", id))
		}
		return domain.Pet{}, apperror.NewDBError("failed to update pet", err)
	}

	r.invalidate(ctxTimeout, id)
	return pet, nil
}

// UpdateStatus define apenas o status da mascote. Reaplicar o mesmo status
// é um no-op em efeito, o que mantém a aprovação idempotente.
func (r *PetRepository) UpdateStatus(ctx context.Context, id string, status domain.PetStatus) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const updateSQL = `UPDATE pets SET status = $2, updated_at = $3 WHERE id = $1`

	res, err := r.DB.ExecContext(ctxTimeout, updateSQL, id, status, time.Now().UTC())
	if err != nil {
		return apperror.NewDBError("failed to update pet status", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Mascote com ID %s não existe.", id))
	}

	r.invalidate(ctxTimeout, id)
	return nil
}

// Delete remove a mascote do catálogo.
func (r *PetRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return apperror.NewDBError("failed to delete pet", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Mascote com ID %s não existe.", id))
	}

	r.invalidate(ctxTimeout, id)
	return nil
}

// invalidate remove a entrada de cache da mascote após escrita.
func (r *PetRepository) invalidate(ctx context.Context, id string) {
	if err := r.Cache.Delete(ctx, fmt.Sprintf(petCacheKey, id)); err != nil {
		r.logger.Warn("Falha ao invalidar cache de mascote.", map[string]interface{}{"pet_id": id})
	}
}

// scanner cobre *sql.Row e *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPet(s scanner, pet *domain.Pet) error {
	return s.Scan(
		&pet.ID, &pet.Name, &pet.Age, &pet.Kind, &pet.ShortBio,
		&pet.Personality, &pet.Rescuer, &pet.Size, &pet.History,
		&pet.Image, &pet.Status, &pet.CreatedAt, &pet.UpdatedAt,
	)
}
