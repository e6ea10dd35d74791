package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecovale/recicla-api/internal/domain/entity"
)

// ReceiptRepository define a porta de persistência dos recebimentos (append-only).
// As somas por janela alimentam as checagens de teto do motor de validação;
// intervalos são meio-abertos [from, to).
type ReceiptRepository interface {
	Create(r *entity.Receipt) error
	GetByID(id string) (*entity.Receipt, error)
	ListByMaterial(materialID string, from, to *time.Time, limit, offset int) ([]*entity.Receipt, error)
	// SumWeightByStaff soma o peso recebido pelo coletador no intervalo.
	SumWeightByStaff(staffID string, from, to time.Time) (decimal.Decimal, error)
	// SumWeight soma o peso recebido por todos os coletadores no intervalo.
	SumWeight(from, to time.Time) (decimal.Decimal, error)
	// SumByMaterial soma peso e volume de todos os recebimentos do material (reconciliação).
	SumByMaterial(materialID string) (weight, volume decimal.Decimal, err error)
}
