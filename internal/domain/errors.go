package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Erros de domínio (sem dependências de infraestrutura).
var (
	ErrNotFound         = errors.New("recurso não encontrado")
	ErrMaterialNotFound = errors.New("material não encontrado")
	ErrStaffNotFound    = errors.New("coletador não encontrado")
	ErrClientNotFound   = errors.New("cliente não encontrado")
	ErrPartnerNotFound  = errors.New("empresa parceira não encontrada")
	ErrMovementNotFound = errors.New("movimentação não encontrada")

	ErrInvalidInput    = errors.New("entrada inválida")
	ErrInvalidQuantity = errors.New("peso e volume devem ser maiores que zero")
	ErrDuplicate       = errors.New("recurso duplicado")

	ErrMonthlyCapExceeded     = errors.New("limite mensal do coletador excedido")
	ErrDailyCapExceeded       = errors.New("limite diário de recebimentos excedido")
	ErrDuplicateDailyShipment = errors.New("já existe remessa para a parceira hoje")
	ErrDuplicateDailyOrder    = errors.New("já existe coleta para o par cliente/coletador hoje")
	ErrInsufficientStock      = errors.New("estoque insuficiente")
	ErrInsufficientBaseStock  = errors.New("estoque abaixo do mínimo operacional para remessa")

	ErrLockTimeout    = errors.New("tempo de espera pelo lock do material esgotado")
	ErrStockInvariant = errors.New("estoque divergente do log de movimentações")

	ErrMaterialInUse = errors.New("material referenciado por movimentações ou coletas")
)

// CapExceededError detalha a violação de um teto acumulado (mensal por coletador
// ou diário da organização). Unwrap devolve o sentinel correspondente.
type CapExceededError struct {
	Rule    error // ErrMonthlyCapExceeded ou ErrDailyCapExceeded
	Limit   decimal.Decimal
	Current decimal.Decimal // soma incluindo o recebimento proposto
}

func (e *CapExceededError) Error() string {
	return fmt.Sprintf("%s: total %s excede o limite de %s kg", e.Rule.Error(), e.Current, e.Limit)
}

func (e *CapExceededError) Unwrap() error { return e.Rule }

// InsufficientStockError detalha uma remessa que excede o disponível ou o piso operacional.
type InsufficientStockError struct {
	Rule      error  // ErrInsufficientStock ou ErrInsufficientBaseStock
	Resource  string // "peso" ou "volume"
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	if errors.Is(e.Rule, ErrInsufficientBaseStock) {
		return fmt.Sprintf("%s: peso atual %s kg, mínimo %s kg", e.Rule.Error(), e.Available, e.Requested)
	}
	return fmt.Sprintf("%s: %s disponível %s, solicitado %s", e.Rule.Error(), e.Resource, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return e.Rule }

// StockInvariantError sinaliza que a aplicação do delta produziria contador negativo.
// Inalcançável com o motor de validação correto; se ocorrer é fatal/alertável, não retry.
type StockInvariantError struct {
	MaterialID string
	Weight     decimal.Decimal
	Volume     decimal.Decimal
}

func (e *StockInvariantError) Error() string {
	return fmt.Sprintf("%s: material %s ficaria com peso %s / volume %s",
		ErrStockInvariant.Error(), e.MaterialID, e.Weight, e.Volume)
}

func (e *StockInvariantError) Unwrap() error { return ErrStockInvariant }
