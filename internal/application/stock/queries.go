package stock

import (
	"time"

	"github.com/ecovale/recicla-api/internal/application/dto"
	"github.com/ecovale/recicla-api/internal/domain"
	"github.com/ecovale/recicla-api/internal/domain/repository"
)

// QueryUseCase leituras do ledger (listagens e reconciliação). Usa repositórios
// atados ao pool; não precisa de transação porque não muta nada.
type QueryUseCase struct {
	materialRepo repository.MaterialRepository
	receiptRepo  repository.ReceiptRepository
	shipmentRepo repository.ShipmentRepository
	orderRepo    repository.CollectionOrderRepository
}

// NewQueryUseCase constrói o caso de uso de leitura.
func NewQueryUseCase(
	materialRepo repository.MaterialRepository,
	receiptRepo repository.ReceiptRepository,
	shipmentRepo repository.ShipmentRepository,
	orderRepo repository.CollectionOrderRepository,
) *QueryUseCase {
	return &QueryUseCase{
		materialRepo: materialRepo,
		receiptRepo:  receiptRepo,
		shipmentRepo: shipmentRepo,
		orderRepo:    orderRepo,
	}
}

// ListReceipts lista recebimentos de um material por intervalo de datas.
func (uc *QueryUseCase) ListReceipts(materialID string, from, to *time.Time, limit, offset int) ([]dto.ReceiptResponse, error) {
	list, err := uc.receiptRepo.ListByMaterial(materialID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReceiptResponse, 0, len(list))
	for _, r := range list {
		items = append(items, dto.ReceiptResponse{
			ID:         r.ID,
			MaterialID: r.MaterialID,
			StaffID:    r.StaffID,
			Weight:     r.Weight,
			Volume:     r.Volume,
			CreatedAt:  r.CreatedAt,
		})
	}
	return items, nil
}

// ListShipments lista remessas de um material por intervalo de datas
// (inclui as retratadas, com o status correspondente).
func (uc *QueryUseCase) ListShipments(materialID string, from, to *time.Time, limit, offset int) ([]dto.ShipmentResponse, error) {
	list, err := uc.shipmentRepo.ListByMaterial(materialID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ShipmentResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.ShipmentResponse{
			ID:          s.ID,
			MaterialID:  s.MaterialID,
			PartnerID:   s.PartnerID,
			Weight:      s.Weight,
			Volume:      s.Volume,
			Status:      s.Status,
			CreatedAt:   s.CreatedAt,
			RetractedAt: s.RetractedAt,
		})
	}
	return items, nil
}

// ListOrders lista pedidos de coleta por intervalo de datas.
func (uc *QueryUseCase) ListOrders(from, to *time.Time, limit, offset int) ([]dto.OrderResponse, error) {
	list, err := uc.orderRepo.List(from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, dto.OrderResponse{
			ID:         o.ID,
			MaterialID: o.MaterialID,
			ClientID:   o.ClientID,
			StaffID:    o.StaffID,
			Weight:     o.Weight,
			Volume:     o.Volume,
			Type:       o.Type,
			CreatedAt:  o.CreatedAt,
		})
	}
	return items, nil
}

// Reconcile compara os contadores vivos do material com as somas do ledger:
// peso = Σ recebimentos − Σ remessas ativas (idem volume). Divergência indica
// corrupção do agregado e pede reconciliação manual.
func (uc *QueryUseCase) Reconcile(materialID string) (*dto.ReconciliationResponse, error) {
	material, err := uc.materialRepo.GetByID(materialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrMaterialNotFound
	}
	inW, inV, err := uc.receiptRepo.SumByMaterial(materialID)
	if err != nil {
		return nil, err
	}
	outW, outV, err := uc.shipmentRepo.SumActiveByMaterial(materialID)
	if err != nil {
		return nil, err
	}
	ledgerW := inW.Sub(outW)
	ledgerV := inV.Sub(outV)
	return &dto.ReconciliationResponse{
		MaterialID:   materialID,
		Weight:       material.Weight,
		Volume:       material.Volume,
		LedgerWeight: ledgerW,
		LedgerVolume: ledgerV,
		Consistent:   material.Weight.Equal(ledgerW) && material.Volume.Equal(ledgerV),
	}, nil
}
