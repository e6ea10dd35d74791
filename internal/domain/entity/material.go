package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material representa um tipo de material com contadores vivos de peso e volume.
// Os contadores são um agregado materializado do log de movimentações: só o motor
// de estoque os altera, dentro de transação com lock de linha.
type Material struct {
	ID        string
	Name      string          // único
	Weight    decimal.Decimal // kg, nunca negativo
	Volume    decimal.Decimal // nunca negativo
	RiskLevel string          // descritivo, não usado pelo motor
	CreatedAt time.Time
	UpdatedAt time.Time
}
