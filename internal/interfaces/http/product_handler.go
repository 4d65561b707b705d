package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/supply-chain-api/internal/application/dto"
	"github.com/jhoicas/supply-chain-api/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP del catálogo de productos (protegido).
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.CatalogNumber <= 0 || in.Name == "" {
		return badRequest(c, "VALIDATION", "catalog_number y name son requeridos")
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByCatalogNumber godoc
// @Summary      Obtener producto por número de catálogo
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        catalog  path  int  true  "Número de catálogo"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{catalog} [get]
func (h *ProductHandler) GetByCatalogNumber(c *fiber.Ctx) error {
	catalogNumber, ok := paramID(c, "catalog")
	if !ok {
		return badRequest(c, "MISSING_ID", "número de catálogo inválido")
	}
	out, err := h.uc.GetByCatalogNumber(c.Context(), catalogNumber)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	out, err := h.uc.List(c.Context(), dto.PageRequest{Limit: limit, Offset: offset})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// BranchStock godoc
// @Summary      Stock de una sucursal
// @Description  Unidades en tienda y bodega por producto, marcando los que están bajo el umbral de alerta.
// @Tags         branches
// @Security     Bearer
// @Produce      json
// @Param        branch  path  int  true  "ID de sucursal"
// @Success      200  {object}  dto.BranchStockResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/branches/{branch}/stock [get]
func (h *ProductHandler) BranchStock(c *fiber.Ctx) error {
	branchID, ok := paramID(c, "branch")
	if !ok {
		return badRequest(c, "MISSING_ID", "sucursal inválida")
	}
	if !branchAllowed(c, branchID) {
		return forbiddenBranch(c)
	}
	out, err := h.uc.BranchStock(c.Context(), branchID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
