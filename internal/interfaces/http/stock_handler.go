package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/ecovale/recicla-api/internal/application/dto"
	stockuc "github.com/ecovale/recicla-api/internal/application/stock"
	"github.com/ecovale/recicla-api/internal/domain/entity"
)

// stockService é o que o handler precisa do coordenador transacional.
type stockService interface {
	RegisterReceipt(ctx context.Context, in stockuc.ReceiptInput) (*entity.Receipt, error)
	RegisterShipment(ctx context.Context, in stockuc.ShipmentInput) (*entity.Shipment, error)
	RetractShipment(ctx context.Context, id string) (*entity.Shipment, error)
	RegisterOrder(ctx context.Context, in stockuc.OrderInput) (*entity.CollectionOrder, error)
}

// StockHandler trata as requisições do motor de estoque (recebimentos, remessas e coletas).
type StockHandler struct {
	svc     stockService
	queries *stockuc.QueryUseCase
}

// NewStockHandler constrói o handler.
func NewStockHandler(svc stockService, queries *stockuc.QueryUseCase) *StockHandler {
	return &StockHandler{svc: svc, queries: queries}
}

// CreateReceipt godoc
// @Summary      Registrar recebimento de material
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReceiptRequest  true  "material_id, staff_cpf, weight, volume"
// @Success      201  {object}  dto.ReceiptResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts [post]
func (h *StockHandler) CreateReceipt(c *fiber.Ctx) error {
	var in dto.CreateReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	receipt, err := h.svc.RegisterReceipt(c.Context(), stockuc.ReceiptInput{
		MaterialID: in.MaterialID,
		StaffCPF:   in.StaffCPF,
		Weight:     in.Weight,
		Volume:     in.Volume,
	})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ReceiptResponse{
		ID:         receipt.ID,
		MaterialID: receipt.MaterialID,
		StaffID:    receipt.StaffID,
		Weight:     receipt.Weight,
		Volume:     receipt.Volume,
		CreatedAt:  receipt.CreatedAt,
	})
}

// CreateShipment godoc
// @Summary      Registrar remessa para empresa parceira
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShipmentRequest  true  "material_id, partner_cnpj, weight_sent, volume_sent"
// @Success      201  {object}  dto.ShipmentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipments [post]
func (h *StockHandler) CreateShipment(c *fiber.Ctx) error {
	var in dto.CreateShipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	shipment, err := h.svc.RegisterShipment(c.Context(), stockuc.ShipmentInput{
		MaterialID:  in.MaterialID,
		PartnerCNPJ: in.PartnerCNPJ,
		Weight:      in.WeightSent,
		Volume:      in.VolumeSent,
	})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toShipmentResponse(shipment))
}

// RetractShipment godoc
// @Summary      Retratar (excluir) remessa, devolvendo peso e volume ao estoque
// @Tags         stock
// @Produce      json
// @Param        id  path  string  true  "ID da remessa"
// @Success      200  {object}  dto.ShipmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipments/{id} [delete]
func (h *StockHandler) RetractShipment(c *fiber.Ctx) error {
	shipment, err := h.svc.RetractShipment(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toShipmentResponse(shipment))
}

// CreateOrder godoc
// @Summary      Registrar pedido de coleta
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "material_id, client_cpf, staff_cpf, weight, volume, type"
// @Success      201  {object}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/collection-orders [post]
func (h *StockHandler) CreateOrder(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	order, err := h.svc.RegisterOrder(c.Context(), stockuc.OrderInput{
		MaterialID: in.MaterialID,
		ClientCPF:  in.ClientCPF,
		StaffCPF:   in.StaffCPF,
		Weight:     in.Weight,
		Volume:     in.Volume,
		Type:       in.Type,
	})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OrderResponse{
		ID:         order.ID,
		MaterialID: order.MaterialID,
		ClientID:   order.ClientID,
		StaffID:    order.StaffID,
		Weight:     order.Weight,
		Volume:     order.Volume,
		Type:       order.Type,
		CreatedAt:  order.CreatedAt,
	})
}

// ListReceipts godoc
// @Summary      Listar recebimentos de um material
// @Tags         stock
// @Produce      json
// @Param        material_id  query  string  true   "ID do material"
// @Success      200  {array}  dto.ReceiptResponse
// @Router       /api/receipts [get]
func (h *StockHandler) ListReceipts(c *fiber.Ctx) error {
	var in dto.MovementListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	in.DefaultPage()
	list, err := h.queries.ListReceipts(in.MaterialID, in.From, in.To, in.Limit, in.Offset)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "receipts": list})
}

// ListShipments godoc
// @Summary      Listar remessas de um material
// @Tags         stock
// @Produce      json
// @Param        material_id  query  string  true   "ID do material"
// @Success      200  {array}  dto.ShipmentResponse
// @Router       /api/shipments [get]
func (h *StockHandler) ListShipments(c *fiber.Ctx) error {
	var in dto.MovementListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	in.DefaultPage()
	list, err := h.queries.ListShipments(in.MaterialID, in.From, in.To, in.Limit, in.Offset)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "shipments": list})
}

// ListOrders godoc
// @Summary      Listar pedidos de coleta
// @Tags         stock
// @Produce      json
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/collection-orders [get]
func (h *StockHandler) ListOrders(c *fiber.Ctx) error {
	var in dto.MovementListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	in.DefaultPage()
	list, err := h.queries.ListOrders(in.From, in.To, in.Limit, in.Offset)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "orders": list})
}

// Reconcile godoc
// @Summary      Conferir contadores do material contra o ledger
// @Tags         stock
// @Produce      json
// @Param        id  path  string  true  "ID do material"
// @Success      200  {object}  dto.ReconciliationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id}/reconciliation [get]
func (h *StockHandler) Reconcile(c *fiber.Ctx) error {
	res, err := h.queries.Reconcile(c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(res)
}

func toShipmentResponse(s *entity.Shipment) dto.ShipmentResponse {
	return dto.ShipmentResponse{
		ID:          s.ID,
		MaterialID:  s.MaterialID,
		PartnerID:   s.PartnerID,
		Weight:      s.Weight,
		Volume:      s.Volume,
		Status:      s.Status,
		CreatedAt:   s.CreatedAt,
		RetractedAt: s.RetractedAt,
	}
}
