package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/supply-chain-api/internal/application/dto"
	"github.com/jhoicas/supply-chain-api/internal/application/usecase"
)

// SupplierHandler proveedores, acuerdos y ofertas.
type SupplierHandler struct {
	uc *usecase.SupplierUseCase
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(uc *usecase.SupplierUseCase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

// UpsertSupplier godoc
// @Summary      Crear o actualizar proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.UpsertSupplierRequest  true  "Proveedor"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/suppliers [put]
func (h *SupplierHandler) UpsertSupplier(c *fiber.Ctx) error {
	var in dto.UpsertSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := h.uc.UpsertSupplier(c.Context(), in); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpsertAgreement godoc
// @Summary      Crear o actualizar acuerdo de proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertAgreementRequest  true  "Acuerdo (delivery_days 0=domingo..6=sábado)"
// @Success      200  {object}  dto.AgreementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/agreements [put]
func (h *SupplierHandler) UpsertAgreement(c *fiber.Ctx) error {
	var in dto.UpsertAgreementRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.UpsertAgreement(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetAgreement godoc
// @Summary      Obtener acuerdo
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del acuerdo"
// @Success      200  {object}  dto.AgreementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/agreements/{id} [get]
func (h *SupplierHandler) GetAgreement(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "MISSING_ID", "id inválido")
	}
	out, err := h.uc.GetAgreement(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "acuerdo no encontrado"})
	}
	return c.JSON(out)
}

// UpsertOffer godoc
// @Summary      Crear o actualizar oferta de producto
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertOfferRequest  true  "Oferta"
// @Success      200  {object}  dto.OfferResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/offers [put]
func (h *SupplierHandler) UpsertOffer(c *fiber.Ctx) error {
	var in dto.UpsertOfferRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.UpsertOffer(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListOffers godoc
// @Summary      Ofertas de un producto con sus escalones
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        product  path  int  true  "ID de producto del proveedor"
// @Success      200  {array}  dto.OfferResponse
// @Router       /api/products/{product}/offers [get]
func (h *SupplierHandler) ListOffers(c *fiber.Ctx) error {
	productID, ok := paramID(c, "product")
	if !ok {
		return badRequest(c, "MISSING_ID", "producto inválido")
	}
	out, err := h.uc.ListOffers(c.Context(), productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
