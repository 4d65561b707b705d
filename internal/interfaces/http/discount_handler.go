package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/supply-chain-api/internal/application/dto"
	"github.com/jhoicas/supply-chain-api/internal/application/usecase"
)

// DiscountHandler escalones de descuento de proveedor y de tienda.
type DiscountHandler struct {
	uc *usecase.DiscountUseCase
}

// NewDiscountHandler construye el handler.
func NewDiscountHandler(uc *usecase.DiscountUseCase) *DiscountHandler {
	return &DiscountHandler{uc: uc}
}

// Upsert godoc
// @Summary      Crear o reemplazar escalón de descuento
// @Description  Si ya hay un escalón con la misma cantidad mínima, decide la política de desempate configurada.
// @Description  201 si se guardó; 200 con la regla vigente si se conservó la existente.
// @Tags         discounts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertDiscountRequest  true  "Escalón"
// @Success      201  {object}  dto.DiscountResponse
// @Success      200  {object}  dto.DiscountResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/discounts [put]
func (h *DiscountHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertDiscountRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, applied, err := h.uc.Upsert(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	if !applied {
		return c.JSON(out)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListForOffer godoc
// @Summary      Escalones de la oferta de un proveedor
// @Tags         discounts
// @Security     Bearer
// @Produce      json
// @Param        product       path   int  true  "ID de producto del proveedor"
// @Param        supplier_id   query  int  true  "Proveedor"
// @Param        agreement_id  query  int  true  "Acuerdo"
// @Success      200  {array}  dto.DiscountResponse
// @Router       /api/offers/{product}/discounts [get]
func (h *DiscountHandler) ListForOffer(c *fiber.Ctx) error {
	productID, ok := paramID(c, "product")
	if !ok {
		return badRequest(c, "MISSING_ID", "producto inválido")
	}
	supplierID := c.QueryInt("supplier_id", 0)
	agreementID := c.QueryInt("agreement_id", 0)
	if supplierID <= 0 || agreementID <= 0 {
		return badRequest(c, "VALIDATION", "supplier_id y agreement_id son requeridos")
	}
	out, err := h.uc.ListForOffer(c.Context(), supplierID, agreementID, productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// StoreDiscount godoc
// @Summary      Descuento de tienda vigente
// @Tags         discounts
// @Security     Bearer
// @Produce      json
// @Param        branch    path   int  true  "ID de sucursal"
// @Param        catalog   query  int  true  "Número de catálogo"
// @Param        quantity  query  int  true  "Cantidad"
// @Success      200  {object}  dto.StoreDiscountResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/branches/{branch}/store-discount [get]
func (h *DiscountHandler) StoreDiscount(c *fiber.Ctx) error {
	branchID, ok := paramID(c, "branch")
	if !ok {
		return badRequest(c, "MISSING_ID", "sucursal inválida")
	}
	if !branchAllowed(c, branchID) {
		return forbiddenBranch(c)
	}
	out, err := h.uc.StoreDiscount(c.Context(), branchID, c.QueryInt("catalog", 0), c.QueryInt("quantity", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
