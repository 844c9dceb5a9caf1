package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mfbgull/mini-erp-sub001/internal/application/dto"
	"github.com/mfbgull/mini-erp-sub001/internal/application/usecase"
)

// BOMHandler maneja las peticiones HTTP de recetas (listas de materiales).
type BOMHandler struct {
	uc *usecase.BOMUseCase
}

// NewBOMHandler construye el handler.
func NewBOMHandler(uc *usecase.BOMUseCase) *BOMHandler {
	return &BOMHandler{uc: uc}
}

// Create godoc
// @Summary      Crear receta
// @Description  El ítem de salida debe ser producible y cada línea de insumo
//
//	debe referenciar un ítem existente con cantidad > 0.
//
// @Tags         boms
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBOMRequest  true  "name, output_item_id, output_quantity, lines"
// @Success      201   {object}  dto.BOMResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/boms [post]
func (h *BOMHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBOMRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener receta por ID (con líneas)
// @Tags         boms
// @Produce      json
// @Param        id   path      string  true  "ID de la receta"
// @Success      200  {object}  dto.BOMResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/boms/{id} [get]
func (h *BOMHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	if out == nil {
		return notFound(c, "BOM_NOT_FOUND", "receta no encontrada")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar recetas
// @Tags         boms
// @Produce      json
// @Param        active  query  bool  false  "solo recetas activas"
// @Param        limit   query  int   false  "máximo por página (default 20)"
// @Param        offset  query  int   false  "desplazamiento"
// @Success      200  {object}  dto.BOMListResponse
// @Router       /api/boms [get]
func (h *BOMHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	activeOnly := c.QueryBool("active")
	out, err := h.uc.List(activeOnly, page.Limit, page.Offset)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Desactivar receta (soft; las producciones existentes no se tocan)
// @Tags         boms
// @Produce      json
// @Param        id   path  string  true  "ID de la receta"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/boms/{id} [delete]
func (h *BOMHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
