package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Traslados-api/internal/application/dto"
	"github.com/jhoicas/Traslados-api/internal/domain"
)

// respondError mapea errores de dominio a códigos HTTP. Se usa en todos los
// handlers para mantener el mapeo en un solo lugar:
//
//	404  recursos inexistentes
//	400  entradas inválidas (precondiciones, cantidades)
//	409  conflictos de estado (stock insuficiente, envío terminal, duplicado)
func respondError(c *fiber.Ctx, err error) error {
	var constraintErr *domain.ConstraintViolationError
	var exceededErr *domain.QuantityExceededError
	var notPendingErr *domain.ShipmentNotPendingError
	var notAcceptedErr *domain.ShipmentNotAcceptedError

	switch {
	case errors.Is(err, domain.ErrStockNotFound),
		errors.Is(err, domain.ErrShipmentNotFound),
		errors.Is(err, domain.ErrTransferNotFound),
		errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrWarehouseNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})

	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: err.Error()})

	case errors.As(err, &constraintErr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "CONSTRAINT_VIOLATION", Message: err.Error()})

	case errors.As(err, &exceededErr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "QUANTITY_EXCEEDED", Message: err.Error()})

	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})

	case errors.Is(err, domain.ErrDuplicateStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_STOCK", Message: err.Error()})

	case errors.As(err, &notPendingErr):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SHIPMENT_NOT_PENDING", Message: err.Error()})

	case errors.As(err, &notAcceptedErr):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SHIPMENT_NOT_ACCEPTED", Message: err.Error()})

	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})

	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})

	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: err.Error()})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
