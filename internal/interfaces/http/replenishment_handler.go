package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/supply-chain-api/internal/application/usecase"
)

// ReplenishmentHandler consultas de faltantes y precios, y disparo manual de corridas.
type ReplenishmentHandler struct {
	uc *usecase.ReplenishmentUseCase
}

// NewReplenishmentHandler construye el handler.
func NewReplenishmentHandler(uc *usecase.ReplenishmentUseCase) *ReplenishmentHandler {
	return &ReplenishmentHandler{uc: uc}
}

// Shortages godoc
// @Summary      Faltantes de una sucursal
// @Tags         branches
// @Security     Bearer
// @Produce      json
// @Param        branch  path  int  true  "ID de sucursal"
// @Success      200  {object}  dto.ShortageResponse
// @Router       /api/branches/{branch}/shortages [get]
func (h *ReplenishmentHandler) Shortages(c *fiber.Ctx) error {
	branchID, ok := paramID(c, "branch")
	if !ok {
		return badRequest(c, "MISSING_ID", "sucursal inválida")
	}
	if !branchAllowed(c, branchID) {
		return forbiddenBranch(c)
	}
	out, err := h.uc.Shortages(c.Context(), branchID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// BestPrice godoc
// @Summary      Mejor precio con descuentos
// @Description  Compara todas las ofertas del producto para la cantidad. found=false y total=-1 si no hay ofertas.
// @Tags         procurement
// @Security     Bearer
// @Produce      json
// @Param        product   path   int  true  "ID de producto del proveedor"
// @Param        quantity  query  int  true  "Cantidad"
// @Success      200  {object}  dto.BestPriceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/{product}/best-price [get]
func (h *ReplenishmentHandler) BestPrice(c *fiber.Ctx) error {
	productID, ok := paramID(c, "product")
	if !ok {
		return badRequest(c, "MISSING_ID", "producto inválido")
	}
	quantity := c.QueryInt("quantity", 0)
	if quantity <= 0 {
		return badRequest(c, "VALIDATION", "quantity debe ser mayor que cero")
	}
	out, err := h.uc.BestPrice(c.Context(), productID, quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CheapestOffer godoc
// @Summary      Oferta de menor precio de lista
// @Tags         procurement
// @Security     Bearer
// @Produce      json
// @Param        product  path  int  true  "ID de producto del proveedor"
// @Success      200  {object}  dto.OfferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{product}/cheapest-offer [get]
func (h *ReplenishmentHandler) CheapestOffer(c *fiber.Ctx) error {
	productID, ok := paramID(c, "product")
	if !ok {
		return badRequest(c, "MISSING_ID", "producto inválido")
	}
	out, err := h.uc.CheapestOffer(c.Context(), productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RunPeriodic godoc
// @Summary      Ejecutar órdenes periódicas de la sucursal
// @Tags         replenishment
// @Security     Bearer
// @Produce      json
// @Param        branch  path  int  true  "ID de sucursal"
// @Success      200  {object}  dto.RunReportResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/replenishment/{branch}/periodic [post]
func (h *ReplenishmentHandler) RunPeriodic(c *fiber.Ctx) error {
	branchID, ok := paramID(c, "branch")
	if !ok {
		return badRequest(c, "MISSING_ID", "sucursal inválida")
	}
	if !branchAllowed(c, branchID) {
		return forbiddenBranch(c)
	}
	out, err := h.uc.RunPeriodic(c.Context(), branchID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RunShortage godoc
// @Summary      Ejecutar la pasada de faltantes de la sucursal
// @Description  Una vez por día y sucursal; una segunda llamada devuelve status already-processed.
// @Tags         replenishment
// @Security     Bearer
// @Produce      json
// @Param        branch  path  int  true  "ID de sucursal"
// @Success      200  {object}  dto.RunReportResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/replenishment/{branch}/shortage [post]
func (h *ReplenishmentHandler) RunShortage(c *fiber.Ctx) error {
	branchID, ok := paramID(c, "branch")
	if !ok {
		return badRequest(c, "MISSING_ID", "sucursal inválida")
	}
	if !branchAllowed(c, branchID) {
		return forbiddenBranch(c)
	}
	out, err := h.uc.RunShortage(c.Context(), branchID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
