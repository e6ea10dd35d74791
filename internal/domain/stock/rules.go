// Package stock contém o motor de validação do estoque: funções puras que,
// dadas as quantidades propostas, o snapshot do material sob lock e os agregados
// do log, decidem aceitar ou rejeitar e calculam os novos contadores.
// As regras são avaliadas em ordem fixa; a primeira que falhar decide o erro.
package stock

import (
	"github.com/shopspring/decimal"

	"github.com/ecovale/recicla-api/internal/domain"
)

// Limites de negócio da operação (kg).
var (
	// MonthlyStaffCapKg é o teto mensal de peso recebido por coletador.
	MonthlyStaffCapKg = decimal.NewFromInt(100)
	// DailyReceiptCapKg é o teto diário de peso recebido pela organização inteira.
	DailyReceiptCapKg = decimal.NewFromInt(2000)
	// MinShipmentBaseKg é o estoque mínimo operacional para permitir qualquer remessa.
	// A checagem usa o peso vivo da linha bloqueada no instante da decisão.
	MinShipmentBaseKg = decimal.NewFromInt(100)
)

// Snapshot é a visão do material (ou de uma remessa) no instante da decisão,
// lida sob o lock da transação.
type Snapshot struct {
	Found  bool
	Weight decimal.Decimal
	Volume decimal.Decimal
}

// Decision carrega os novos contadores de um movimento aceito.
type Decision struct {
	NewWeight decimal.Decimal
	NewVolume decimal.Decimal
}

// ReceiptState agrega o estado necessário para decidir um recebimento.
// As somas NÃO incluem o recebimento proposto.
type ReceiptState struct {
	Material         Snapshot
	StaffFound       bool
	MonthStaffWeight decimal.Decimal // peso do coletador no mês corrente
	DayTotalWeight   decimal.Decimal // peso de todos os coletadores no dia corrente
}

// EvaluateReceipt decide um recebimento (entrada de material por coletador).
func EvaluateReceipt(weight, volume decimal.Decimal, st ReceiptState) (Decision, error) {
	if !st.Material.Found {
		return Decision{}, domain.ErrMaterialNotFound
	}
	if !st.StaffFound {
		return Decision{}, domain.ErrStaffNotFound
	}
	if !bothPositive(weight, volume) {
		return Decision{}, domain.ErrInvalidQuantity
	}
	monthTotal := st.MonthStaffWeight.Add(weight)
	if monthTotal.GreaterThan(MonthlyStaffCapKg) {
		return Decision{}, &domain.CapExceededError{
			Rule:    domain.ErrMonthlyCapExceeded,
			Limit:   MonthlyStaffCapKg,
			Current: monthTotal,
		}
	}
	dayTotal := st.DayTotalWeight.Add(weight)
	if dayTotal.GreaterThan(DailyReceiptCapKg) {
		return Decision{}, &domain.CapExceededError{
			Rule:    domain.ErrDailyCapExceeded,
			Limit:   DailyReceiptCapKg,
			Current: dayTotal,
		}
	}
	return Decision{
		NewWeight: st.Material.Weight.Add(weight),
		NewVolume: st.Material.Volume.Add(volume),
	}, nil
}

// ShipmentState agrega o estado necessário para decidir uma remessa.
type ShipmentState struct {
	Material            Snapshot
	PartnerFound        bool
	PartnerShippedToday bool // já existe remessa ativa da parceira no dia
}

// EvaluateShipment decide uma remessa (saída de material para parceira).
func EvaluateShipment(weight, volume decimal.Decimal, st ShipmentState) (Decision, error) {
	if !st.Material.Found {
		return Decision{}, domain.ErrMaterialNotFound
	}
	if st.Material.Weight.LessThan(MinShipmentBaseKg) {
		return Decision{}, &domain.InsufficientStockError{
			Rule:      domain.ErrInsufficientBaseStock,
			Resource:  "peso",
			Available: st.Material.Weight,
			Requested: MinShipmentBaseKg,
		}
	}
	if !st.PartnerFound {
		return Decision{}, domain.ErrPartnerNotFound
	}
	if st.PartnerShippedToday {
		return Decision{}, domain.ErrDuplicateDailyShipment
	}
	if !bothPositive(weight, volume) {
		return Decision{}, domain.ErrInvalidQuantity
	}
	if weight.GreaterThan(st.Material.Weight) {
		return Decision{}, &domain.InsufficientStockError{
			Rule:      domain.ErrInsufficientStock,
			Resource:  "peso",
			Available: st.Material.Weight,
			Requested: weight,
		}
	}
	if volume.GreaterThan(st.Material.Volume) {
		return Decision{}, &domain.InsufficientStockError{
			Rule:      domain.ErrInsufficientStock,
			Resource:  "volume",
			Available: st.Material.Volume,
			Requested: volume,
		}
	}
	return Decision{
		NewWeight: st.Material.Weight.Sub(weight),
		NewVolume: st.Material.Volume.Sub(volume),
	}, nil
}

// RetractionState agrega o estado para reverter uma remessa.
// Shipment.Found indica que a remessa existe e ainda está ativa.
type RetractionState struct {
	Material Snapshot
	Shipment Snapshot
}

// EvaluateRetraction decide a reversão de uma remessa: sempre aceita se a
// remessa existe e está ativa; o efeito é o inverso exato da criação.
func EvaluateRetraction(st RetractionState) (Decision, error) {
	if !st.Shipment.Found {
		return Decision{}, domain.ErrMovementNotFound
	}
	return Decision{
		NewWeight: st.Material.Weight.Add(st.Shipment.Weight),
		NewVolume: st.Material.Volume.Add(st.Shipment.Volume),
	}, nil
}

// OrderState agrega o estado necessário para decidir um pedido de coleta.
type OrderState struct {
	ClientFound      bool
	StaffFound       bool
	MaterialFound    bool
	PairOrderedToday bool // já existe coleta do par cliente/coletador no dia
}

// EvaluateOrder decide um pedido de coleta. Só registra; não mexe no estoque.
func EvaluateOrder(weight, volume decimal.Decimal, st OrderState) error {
	if !st.ClientFound {
		return domain.ErrClientNotFound
	}
	if !st.StaffFound {
		return domain.ErrStaffNotFound
	}
	if !st.MaterialFound {
		return domain.ErrMaterialNotFound
	}
	if st.PairOrderedToday {
		return domain.ErrDuplicateDailyOrder
	}
	if !bothPositive(weight, volume) {
		return domain.ErrInvalidQuantity
	}
	return nil
}

func bothPositive(weight, volume decimal.Decimal) bool {
	return weight.GreaterThan(decimal.Zero) && volume.GreaterThan(decimal.Zero)
}
