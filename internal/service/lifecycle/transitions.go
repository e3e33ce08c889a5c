package lifecycle

import (
	"context"

	"petconnect/internal/pkg/logger"
)

// Entity identifica qual entidade sofreu a mudança de status.
type Entity string

const (
	EntityPet             Entity = "pet"
	EntityAdoptionRequest Entity = "adoption_request"
)

// Transition é a chave da tabela: entidade mais o status de destino.
// O status de origem não participa da chave — os efeitos colaterais do
// fluxo de adoção são idempotentes por construção, então reaplicar a
// mesma transição é inofensivo.
type Transition struct {
	Entity Entity
	To     string
}

// SideEffect é o efeito disparado por uma transição. O id recebido é
// sempre o da mascote afetada, que é o sujeito comum das duas regras
// do fluxo (aprovação marca a mascote como adotada; "en seguimiento"
// inicia o agendamento das visitas).
type SideEffect func(ctx context.Context, petID string) error

// Table mapeia transições de status para seus efeitos colaterais.
// Substitui os condicionais espalhados pelos handlers por um único
// ponto de registro, testável sem HTTP.
type Table struct {
	rules  map[Transition]SideEffect
	logger logger.Logger
}

// NewTable cria uma tabela de transições vazia.
func NewTable(log logger.Logger) *Table {
	return &Table{
		rules:  map[Transition]SideEffect{},
		logger: log,
	}
}

// Register associa um efeito colateral à transição (entity, to).
func (t *Table) Register(entity Entity, to string, effect SideEffect) {
	t.rules[Transition{Entity: entity, To: to}] = effect
}

// Apply dispara o efeito registrado para a transição, se houver.
// Transições sem regra registrada são um no-op.
func (t *Table) Apply(ctx context.Context, entity Entity, to string, petID string) error {
	effect, ok := t.rules[Transition{Entity: entity, To: to}]
	if !ok {
		return nil
	}

	t.logger.Debug("Aplicando efeito colateral de transição de status.", map[string]interface{}{
		"entity": string(entity),
		"to":     to,
		"pet_id": petID,
	})

	return effect(ctx, petID)
}
