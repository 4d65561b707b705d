package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/supply-chain-api/internal/application/dto"
	"github.com/jhoicas/supply-chain-api/internal/domain"
	"github.com/jhoicas/supply-chain-api/pkg/jwt"
)

// writeError traduce errores de dominio a dto.ErrorResponse con el status HTTP correspondiente.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrNoSupplierOffer):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_SUPPLIER_OFFER", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// paramID lee un parámetro de ruta entero positivo.
func paramID(c *fiber.Ctx, name string) (int, bool) {
	n, err := c.ParamsInt(name)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// branchScope sucursal a la que está limitado el usuario; 0 para admin y tokens sin sucursal.
func branchScope(c *fiber.Ctx) int {
	if GetRole(c) == jwt.RoleAdmin {
		return 0
	}
	return GetBranchID(c)
}

// branchAllowed indica si el usuario puede operar sobre la sucursal.
func branchAllowed(c *fiber.Ctx, branchID int) bool {
	scope := branchScope(c)
	return scope == 0 || scope == branchID
}

func forbiddenBranch(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sucursal fuera de su alcance"})
}
