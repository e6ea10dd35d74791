package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ecovale/recicla-api/internal/application/dto"
	"github.com/ecovale/recicla-api/internal/application/usecase"
)

// MasterDataHandler trata os cadastros simples: clientes, funcionários,
// parceiras, cargos e bairros. Sem invariantes além de unicidade e FK.
type MasterDataHandler struct {
	clientUC  *usecase.ClientUseCase
	staffUC   *usecase.StaffUseCase
	partnerUC *usecase.PartnerUseCase
	catalogUC *usecase.CatalogUseCase
}

// NewMasterDataHandler constrói o handler.
func NewMasterDataHandler(
	clientUC *usecase.ClientUseCase,
	staffUC *usecase.StaffUseCase,
	partnerUC *usecase.PartnerUseCase,
	catalogUC *usecase.CatalogUseCase,
) *MasterDataHandler {
	return &MasterDataHandler{clientUC: clientUC, staffUC: staffUC, partnerUC: partnerUC, catalogUC: catalogUC}
}

// CreateClient godoc
// @Summary  Cadastrar cliente
// @Tags     masterdata
// @Router   /api/clients [post]
func (h *MasterDataHandler) CreateClient(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil || in.Name == "" || in.CPF == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	client, err := h.clientUC.Create(in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

// ListClients godoc
// @Summary  Listar clientes
// @Tags     masterdata
// @Router   /api/clients [get]
func (h *MasterDataHandler) ListClients(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	page.DefaultPage()
	list, err := h.clientUC.List(page.Limit, page.Offset)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "clients": list})
}

// CreateStaff godoc
// @Summary  Cadastrar funcionário
// @Tags     masterdata
// @Router   /api/staff [post]
func (h *MasterDataHandler) CreateStaff(c *fiber.Ctx) error {
	var in dto.CreateStaffRequest
	if err := c.BodyParser(&in); err != nil || in.Name == "" || in.CPF == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	staff, err := h.staffUC.Create(in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(staff)
}

// ListStaff godoc
// @Summary  Listar funcionários
// @Tags     masterdata
// @Router   /api/staff [get]
func (h *MasterDataHandler) ListStaff(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	page.DefaultPage()
	list, err := h.staffUC.List(page.Limit, page.Offset)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "staff": list})
}

// CreatePartner godoc
// @Summary  Cadastrar empresa parceira
// @Tags     masterdata
// @Router   /api/partners [post]
func (h *MasterDataHandler) CreatePartner(c *fiber.Ctx) error {
	var in dto.CreatePartnerRequest
	if err := c.BodyParser(&in); err != nil || in.Name == "" || in.CNPJ == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	partner, err := h.partnerUC.Create(in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(partner)
}

// ListPartners godoc
// @Summary  Listar parceiras
// @Tags     masterdata
// @Router   /api/partners [get]
func (h *MasterDataHandler) ListPartners(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	page.DefaultPage()
	list, err := h.partnerUC.List(page.Limit, page.Offset)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "partners": list})
}

// CreateRole godoc
// @Summary  Cadastrar cargo
// @Tags     masterdata
// @Router   /api/roles [post]
func (h *MasterDataHandler) CreateRole(c *fiber.Ctx) error {
	return h.createCatalog(c, h.catalogUC.CreateRole)
}

// ListRoles godoc
// @Summary  Listar cargos
// @Tags     masterdata
// @Router   /api/roles [get]
func (h *MasterDataHandler) ListRoles(c *fiber.Ctx) error {
	list, err := h.catalogUC.ListRoles()
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "roles": list})
}

// CreateNeighborhood godoc
// @Summary  Cadastrar bairro
// @Tags     masterdata
// @Router   /api/neighborhoods [post]
func (h *MasterDataHandler) CreateNeighborhood(c *fiber.Ctx) error {
	return h.createCatalog(c, h.catalogUC.CreateNeighborhood)
}

// ListNeighborhoods godoc
// @Summary  Listar bairros
// @Tags     masterdata
// @Router   /api/neighborhoods [get]
func (h *MasterDataHandler) ListNeighborhoods(c *fiber.Ctx) error {
	list, err := h.catalogUC.ListNeighborhoods()
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "neighborhoods": list})
}

func (h *MasterDataHandler) createCatalog(c *fiber.Ctx, create func(dto.CreateCatalogRequest) (*dto.CatalogResponse, error)) error {
	var in dto.CreateCatalogRequest
	if err := c.BodyParser(&in); err != nil || in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	item, err := create(in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}
