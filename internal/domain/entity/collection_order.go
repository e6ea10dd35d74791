package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CollectionOrder representa um pedido de coleta ligando cliente, coletador e
// material. Não altera o estoque; compartilha a disciplina de unicidade diária.
// Imutável depois de criado.
type CollectionOrder struct {
	ID         string
	MaterialID string
	ClientID   string
	StaffID    string
	Weight     decimal.Decimal
	Volume     decimal.Decimal
	Type       string // rótulo livre (ex.: residencial, comercial)
	CreatedAt  time.Time
}
