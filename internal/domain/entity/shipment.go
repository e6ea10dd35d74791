package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de uma remessa. A retratação é a única emenda permitida no ledger:
// a remessa passa a RETRACTED e sai de todos os agregados ativos.
const (
	ShipmentStatusActive    = "ACTIVE"
	ShipmentStatusRetracted = "RETRACTED"
)

// Shipment representa uma remessa: material enviado a uma empresa parceira,
// que decrementa o estoque. Retratável (soft delete com reversão do efeito).
type Shipment struct {
	ID          string
	MaterialID  string
	PartnerID   string
	Weight      decimal.Decimal
	Volume      decimal.Decimal
	Status      string // ShipmentStatusActive | ShipmentStatusRetracted
	CreatedAt   time.Time
	RetractedAt *time.Time
}

// Active informa se a remessa ainda conta nos agregados.
func (s *Shipment) Active() bool {
	return s.Status == ShipmentStatusActive
}
