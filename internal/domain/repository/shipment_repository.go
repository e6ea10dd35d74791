package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecovale/recicla-api/internal/domain/entity"
)

// ShipmentRepository define a porta de persistência das remessas.
// Append-only com uma exceção: Retract marca a remessa como RETRACTED
// (a variante sai de todos os agregados ativos; a linha nunca é apagada).
type ShipmentRepository interface {
	Create(s *entity.Shipment) error
	GetByID(id string) (*entity.Shipment, error)
	// GetActiveForUpdate carrega uma remessa ativa bloqueando a linha; nil se
	// não existir ou já estiver retratada.
	GetActiveForUpdate(id string) (*entity.Shipment, error)
	// Retract marca a remessa como retratada no instante dado.
	Retract(id string, at time.Time) error
	ListByMaterial(materialID string, from, to *time.Time, limit, offset int) ([]*entity.Shipment, error)
	// ExistsForPartner informa se a parceira já tem remessa ativa no intervalo.
	ExistsForPartner(partnerID string, from, to time.Time) (bool, error)
	// SumActiveByMaterial soma peso e volume das remessas ativas do material (reconciliação).
	SumActiveByMaterial(materialID string) (weight, volume decimal.Decimal, err error)
}
