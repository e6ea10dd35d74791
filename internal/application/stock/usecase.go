package stock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ecovale/recicla-api/internal/domain"
	"github.com/ecovale/recicla-api/internal/domain/entity"
	"github.com/ecovale/recicla-api/internal/domain/repository"
	rules "github.com/ecovale/recicla-api/internal/domain/stock"
	"github.com/ecovale/recicla-api/pkg/logger"
)

// UseCase é o coordenador transacional do motor de estoque. Cada operação segue
// o mesmo pipeline: abrir tx, bloquear a linha do material (SELECT FOR UPDATE),
// carregar os agregados do log, avaliar as regras puras e, se aceito, apendar
// no log e aplicar o delta nos contadores; Commit ou Rollback.
type UseCase struct {
	txRunner    TxRunner
	staffRepo   repository.StaffRepository
	clientRepo  repository.ClientRepository
	partnerRepo repository.PartnerRepository
	log         *logger.Logger
}

// NewUseCase constrói o caso de uso do motor de estoque.
func NewUseCase(
	txRunner TxRunner,
	staffRepo repository.StaffRepository,
	clientRepo repository.ClientRepository,
	partnerRepo repository.PartnerRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		staffRepo:   staffRepo,
		clientRepo:  clientRepo,
		partnerRepo: partnerRepo,
		log:         log,
	}
}

// ReceiptInput entrada para registrar um recebimento.
type ReceiptInput struct {
	MaterialID string
	StaffCPF   string
	Weight     decimal.Decimal
	Volume     decimal.Decimal
}

// RegisterReceipt registra um recebimento: incrementa o estoque do material se
// as regras de teto (mensal por coletador, diário da organização) permitirem.
func (uc *UseCase) RegisterReceipt(ctx context.Context, input ReceiptInput) (receipt *entity.Receipt, err error) {
	defer func() { observeDecision("receipt", err) }()

	// Dado mestre: resolve o coletador fora da tx (imutável para o motor).
	staff, err := uc.staffRepo.GetByCPF(input.StaffCPF)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	dayFrom, dayTo := rules.DayWindow(now)
	monthFrom, monthTo := rules.MonthWindow(now)

	err = uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		receiptRepo repository.ReceiptRepository,
		_ repository.ShipmentRepository,
		_ repository.CollectionOrderRepository,
		locks repository.LockRepository,
	) error {
		// Bloqueia a linha do material; o lock vale até o Commit/Rollback.
		material, err := materialRepo.GetForUpdate(input.MaterialID)
		if err != nil {
			return err
		}

		st := rules.ReceiptState{
			Material:   snapshotOf(material),
			StaffFound: staff != nil,
		}
		if material != nil && staff != nil {
			// Os tetos cruzam materiais: enfileira pelo coletador e pelo dia
			// da organização antes de ler as somas, senão dois recebimentos
			// simultâneos em materiais diferentes leem o mesmo agregado e
			// ambos passam.
			if err := locks.LockStaff(staff.ID); err != nil {
				return err
			}
			if err := locks.LockDay(now); err != nil {
				return err
			}
			if st.MonthStaffWeight, err = receiptRepo.SumWeightByStaff(staff.ID, monthFrom, monthTo); err != nil {
				return err
			}
			if st.DayTotalWeight, err = receiptRepo.SumWeight(dayFrom, dayTo); err != nil {
				return err
			}
		}

		decision, err := rules.EvaluateReceipt(input.Weight, input.Volume, st)
		if err != nil {
			return err
		}

		receipt = &entity.Receipt{
			ID:         uuid.New().String(),
			MaterialID: input.MaterialID,
			StaffID:    staff.ID,
			Weight:     input.Weight,
			Volume:     input.Volume,
			CreatedAt:  now,
		}
		if err := receiptRepo.Create(receipt); err != nil {
			return err
		}
		return uc.applyDelta(materialRepo, input.MaterialID, decision)
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// ShipmentInput entrada para registrar uma remessa.
type ShipmentInput struct {
	MaterialID  string
	PartnerCNPJ string
	Weight      decimal.Decimal
	Volume      decimal.Decimal
}

// RegisterShipment registra uma remessa: decrementa o estoque do material se o
// piso operacional, a unicidade diária da parceira e a suficiência permitirem.
func (uc *UseCase) RegisterShipment(ctx context.Context, input ShipmentInput) (shipment *entity.Shipment, err error) {
	defer func() { observeDecision("shipment", err) }()

	partner, err := uc.partnerRepo.GetByCNPJ(input.PartnerCNPJ)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	dayFrom, dayTo := rules.DayWindow(now)

	err = uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		_ repository.ReceiptRepository,
		shipmentRepo repository.ShipmentRepository,
		_ repository.CollectionOrderRepository,
		locks repository.LockRepository,
	) error {
		material, err := materialRepo.GetForUpdate(input.MaterialID)
		if err != nil {
			return err
		}

		st := rules.ShipmentState{
			Material:     snapshotOf(material),
			PartnerFound: partner != nil,
		}
		if material != nil && partner != nil {
			// A unicidade diária é por parceira, não por material: enfileira
			// pela linha da parceira antes de consultar o dia.
			if err := locks.LockPartner(partner.ID); err != nil {
				return err
			}
			if st.PartnerShippedToday, err = shipmentRepo.ExistsForPartner(partner.ID, dayFrom, dayTo); err != nil {
				return err
			}
		}

		decision, err := rules.EvaluateShipment(input.Weight, input.Volume, st)
		if err != nil {
			return err
		}

		shipment = &entity.Shipment{
			ID:         uuid.New().String(),
			MaterialID: input.MaterialID,
			PartnerID:  partner.ID,
			Weight:     input.Weight,
			Volume:     input.Volume,
			Status:     entity.ShipmentStatusActive,
			CreatedAt:  now,
		}
		if err := shipmentRepo.Create(shipment); err != nil {
			return err
		}
		return uc.applyDelta(materialRepo, input.MaterialID, decision)
	})
	if err != nil {
		return nil, err
	}
	return shipment, nil
}

// RetractShipment reverte uma remessa: marca como RETRACTED e devolve peso e
// volume ao estoque, sob a mesma disciplina de lock da criação.
func (uc *UseCase) RetractShipment(ctx context.Context, id string) (shipment *entity.Shipment, err error) {
	defer func() { observeDecision("retraction", err) }()

	now := time.Now()

	err = uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		_ repository.ReceiptRepository,
		shipmentRepo repository.ShipmentRepository,
		_ repository.CollectionOrderRepository,
		_ repository.LockRepository,
	) error {
		// Bloqueia primeiro a remessa, depois a linha do material.
		shipment, err = shipmentRepo.GetActiveForUpdate(id)
		if err != nil {
			return err
		}
		st := rules.RetractionState{}
		if shipment != nil {
			st.Shipment = rules.Snapshot{Found: true, Weight: shipment.Weight, Volume: shipment.Volume}
			material, err := materialRepo.GetForUpdate(shipment.MaterialID)
			if err != nil {
				return err
			}
			st.Material = snapshotOf(material)
		}

		decision, err := rules.EvaluateRetraction(st)
		if err != nil {
			return err
		}

		if err := shipmentRepo.Retract(id, now); err != nil {
			return err
		}
		shipment.Status = entity.ShipmentStatusRetracted
		shipment.RetractedAt = &now
		return uc.applyDelta(materialRepo, shipment.MaterialID, decision)
	})
	if err != nil {
		return nil, err
	}
	return shipment, nil
}

// OrderInput entrada para registrar um pedido de coleta.
type OrderInput struct {
	MaterialID string
	ClientCPF  string
	StaffCPF   string
	Weight     decimal.Decimal
	Volume     decimal.Decimal
	Type       string
}

// RegisterOrder registra um pedido de coleta. Não altera o estoque; a unicidade
// diária do par cliente/coletador é checada sob o lock do material, como os
// demais movimentos.
func (uc *UseCase) RegisterOrder(ctx context.Context, input OrderInput) (order *entity.CollectionOrder, err error) {
	defer func() { observeDecision("order", err) }()

	client, err := uc.clientRepo.GetByCPF(input.ClientCPF)
	if err != nil {
		return nil, err
	}
	staff, err := uc.staffRepo.GetByCPF(input.StaffCPF)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	dayFrom, dayTo := rules.DayWindow(now)

	err = uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		_ repository.ReceiptRepository,
		_ repository.ShipmentRepository,
		orderRepo repository.CollectionOrderRepository,
		locks repository.LockRepository,
	) error {
		material, err := materialRepo.GetForUpdate(input.MaterialID)
		if err != nil {
			return err
		}

		st := rules.OrderState{
			ClientFound:   client != nil,
			StaffFound:    staff != nil,
			MaterialFound: material != nil,
		}
		if client != nil && staff != nil {
			// O par cliente/coletador cruza materiais: a linha do cliente
			// serializa qualquer dupla de pedidos que compartilhe o par.
			if err := locks.LockClient(client.ID); err != nil {
				return err
			}
			if st.PairOrderedToday, err = orderRepo.ExistsForPair(client.ID, staff.ID, dayFrom, dayTo); err != nil {
				return err
			}
		}

		if err := rules.EvaluateOrder(input.Weight, input.Volume, st); err != nil {
			return err
		}

		order = &entity.CollectionOrder{
			ID:         uuid.New().String(),
			MaterialID: input.MaterialID,
			ClientID:   client.ID,
			StaffID:    staff.ID,
			Weight:     input.Weight,
			Volume:     input.Volume,
			Type:       input.Type,
			CreatedAt:  now,
		}
		return orderRepo.Create(order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// applyDelta grava os novos contadores. A violação de invariante (contador
// negativo) é inalcançável com o motor correto; se ocorrer, loga como alertável
// e aborta a transação sem retry.
func (uc *UseCase) applyDelta(materialRepo repository.MaterialRepository, materialID string, d rules.Decision) error {
	err := materialRepo.UpdateStock(materialID, d.NewWeight, d.NewVolume)
	if errors.Is(err, domain.ErrStockInvariant) {
		uc.log.Error().
			Str("material_id", materialID).
			Str("new_weight", d.NewWeight.String()).
			Str("new_volume", d.NewVolume.String()).
			Msg("invariante de estoque violada: agregado divergente do log, requer reconciliação")
	}
	return err
}

func snapshotOf(m *entity.Material) rules.Snapshot {
	if m == nil {
		return rules.Snapshot{}
	}
	return rules.Snapshot{Found: true, Weight: m.Weight, Volume: m.Volume}
}
