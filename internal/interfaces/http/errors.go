package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ecovale/recicla-api/internal/application/dto"
	"github.com/ecovale/recicla-api/internal/domain"
)

// statusForError traduz um erro de domínio para status HTTP e código da API.
// As violações de regra voltam 400 com a mensagem íntegra (limite e valor
// corrente); LockTimeout volta 409 e pode ser reenviado pelo caller;
// a violação de invariante volta 500 e NÃO deve ser reenviada.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrMaterialNotFound):
		return fiber.StatusNotFound, "MATERIAL_NOT_FOUND"
	case errors.Is(err, domain.ErrStaffNotFound):
		return fiber.StatusNotFound, "STAFF_NOT_FOUND"
	case errors.Is(err, domain.ErrClientNotFound):
		return fiber.StatusNotFound, "CLIENT_NOT_FOUND"
	case errors.Is(err, domain.ErrPartnerNotFound):
		return fiber.StatusNotFound, "PARTNER_NOT_FOUND"
	case errors.Is(err, domain.ErrMovementNotFound):
		return fiber.StatusNotFound, "MOVEMENT_NOT_FOUND"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidQuantity):
		return fiber.StatusBadRequest, "INVALID_QUANTITY"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrMonthlyCapExceeded):
		return fiber.StatusBadRequest, "MONTHLY_CAP_EXCEEDED"
	case errors.Is(err, domain.ErrDailyCapExceeded):
		return fiber.StatusBadRequest, "DAILY_CAP_EXCEEDED"
	case errors.Is(err, domain.ErrDuplicateDailyShipment):
		return fiber.StatusBadRequest, "DUPLICATE_DAILY_SHIPMENT"
	case errors.Is(err, domain.ErrDuplicateDailyOrder):
		return fiber.StatusBadRequest, "DUPLICATE_DAILY_ORDER"
	case errors.Is(err, domain.ErrInsufficientBaseStock):
		return fiber.StatusBadRequest, "INSUFFICIENT_BASE_STOCK"
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusBadRequest, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrMaterialInUse):
		return fiber.StatusConflict, "MATERIAL_IN_USE"
	case errors.Is(err, domain.ErrLockTimeout):
		return fiber.StatusConflict, "LOCK_TIMEOUT"
	case errors.Is(err, domain.ErrStockInvariant):
		return fiber.StatusInternalServerError, "STOCK_INVARIANT"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// errorJSON responde o erro no corpo padrão da API.
func errorJSON(c *fiber.Ctx, err error) error {
	status, code := statusForError(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}
