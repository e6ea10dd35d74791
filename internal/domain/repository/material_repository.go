package repository

import (
	"github.com/shopspring/decimal"

	"github.com/ecovale/recicla-api/internal/domain/entity"
)

// MaterialRepository define a porta de persistência do inventário por material.
// GetForUpdate e UpdateStock só devem ser chamados dentro de transação ativa
// (repos atados à tx pelo TxRunner).
type MaterialRepository interface {
	Create(m *entity.Material) error
	GetByID(id string) (*entity.Material, error)
	GetByName(name string) (*entity.Material, error)
	List(limit, offset int) ([]*entity.Material, error)
	// GetForUpdate carrega o material bloqueando a linha (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Material, error)
	// UpdateStock grava os novos contadores. Valores negativos são recusados
	// com StockInvariantError, sem mutação (checagem defensiva de última linha).
	UpdateStock(id string, weight, volume decimal.Decimal) error
	// Delete remove o material; falha com ErrMaterialInUse se houver referência.
	Delete(id string) error
}
