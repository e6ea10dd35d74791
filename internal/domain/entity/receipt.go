package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt representa um recebimento: material trazido por um coletador, que
// incrementa o estoque. Imutável depois de criado (ledger append-only).
type Receipt struct {
	ID         string
	MaterialID string
	StaffID    string
	Weight     decimal.Decimal
	Volume     decimal.Decimal
	CreatedAt  time.Time
}
