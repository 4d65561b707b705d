package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/supply-chain-api/internal/application/dto"
	"github.com/jhoicas/supply-chain-api/internal/application/usecase"
)

// OrderHandler seguimiento de órdenes de reposición y órdenes de compra.
type OrderHandler struct {
	uc *usecase.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// AdvanceShortage godoc
// @Summary      Avanzar estado de orden por faltante
// @Description  Solo PENDING → IN_TRANSIT → DELIVERED.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Nuevo estado"
// @Success      200  {object}  dto.OrderStatusResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/shortage/{id}/status [patch]
func (h *OrderHandler) AdvanceShortage(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.AdvanceShortageStatus(c.Context(), c.Params("id"), branchScope(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AdvanceOnTheWay godoc
// @Summary      Avanzar estado de orden en camino
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Nuevo estado"
// @Success      200  {object}  dto.OrderStatusResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/on-the-way/{id}/status [patch]
func (h *OrderHandler) AdvanceOnTheWay(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.AdvanceOnTheWayStatus(c.Context(), c.Params("id"), branchScope(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreatePurchaseOrder godoc
// @Summary      Crear orden de compra a proveedor
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "Orden"
// @Success      201  {object}  dto.PurchaseOrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [post]
func (h *OrderHandler) CreatePurchaseOrder(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.BranchID == 0 {
		in.BranchID = GetBranchID(c)
	}
	if !branchAllowed(c, in.BranchID) {
		return forbiddenBranch(c)
	}
	out, err := h.uc.CreatePurchaseOrder(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// PurchaseOrderPDF godoc
// @Summary      PDF de la orden de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {file}  binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/pdf [get]
func (h *OrderHandler) PurchaseOrderPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.uc.PurchaseOrderPDF(c.Context(), id, branchScope(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="orden-`+id+`.pdf"`)
	return c.Send(out)
}
