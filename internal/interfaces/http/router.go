package http

import (
	"github.com/gofiber/fiber/v2"

	stockuc "github.com/ecovale/recicla-api/internal/application/stock"
	"github.com/ecovale/recicla-api/internal/application/usecase"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	Stock        *stockuc.UseCase
	StockQueries *stockuc.QueryUseCase
	MaterialUC   *usecase.MaterialUseCase
	ClientUC     *usecase.ClientUseCase
	StaffUC      *usecase.StaffUseCase
	PartnerUC    *usecase.PartnerUseCase
	CatalogUC    *usecase.CatalogUseCase
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Motor de estoque: recebimentos, remessas e pedidos de coleta
	stockHandler := NewStockHandler(deps.Stock, deps.StockQueries)
	api.Post("/receipts", stockHandler.CreateReceipt)
	api.Get("/receipts", stockHandler.ListReceipts)
	api.Post("/shipments", stockHandler.CreateShipment)
	api.Get("/shipments", stockHandler.ListShipments)
	api.Delete("/shipments/:id", stockHandler.RetractShipment)
	api.Post("/collection-orders", stockHandler.CreateOrder)
	api.Get("/collection-orders", stockHandler.ListOrders)

	// Materiais (cadastro + reconciliação do ledger)
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials := api.Group("/materials")
	materials.Post("/", materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Delete("/:id", materialHandler.Delete)
	materials.Get("/:id/reconciliation", stockHandler.Reconcile)

	// Dados mestres (CRUD simples)
	md := NewMasterDataHandler(deps.ClientUC, deps.StaffUC, deps.PartnerUC, deps.CatalogUC)
	api.Post("/clients", md.CreateClient)
	api.Get("/clients", md.ListClients)
	api.Post("/staff", md.CreateStaff)
	api.Get("/staff", md.ListStaff)
	api.Post("/partners", md.CreatePartner)
	api.Get("/partners", md.ListPartners)
	api.Post("/roles", md.CreateRole)
	api.Get("/roles", md.ListRoles)
	api.Post("/neighborhoods", md.CreateNeighborhood)
	api.Get("/neighborhoods", md.ListNeighborhoods)
}
