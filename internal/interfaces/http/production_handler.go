package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mfbgull/mini-erp-sub001/internal/application/dto"
	"github.com/mfbgull/mini-erp-sub001/internal/application/production"
	"github.com/mfbgull/mini-erp-sub001/internal/application/query"
	"github.com/mfbgull/mini-erp-sub001/internal/domain/entity"
)

// ProductionHandler maneja las peticiones HTTP del motor de producción.
type ProductionHandler struct {
	uc *production.ProductionUseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(uc *production.ProductionUseCase) *ProductionHandler {
	return &ProductionHandler{uc: uc}
}

// Create godoc
// @Summary      Confirmar una producción
// @Description  Explota la receta, valida disponibilidad en la bodega de
//
//	insumos y confirma de forma atómica el consumo y la entrada del producto
//	terminado. 409 INSUFFICIENT_STOCK lleva en details la lista completa de
//	faltantes; 409 CONCURRENT_CONFLICT indica que otra producción drenó el
//	stock en paralelo y la solicitud debe reenviarse.
//
// @Tags         productions
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductionRequest  true  "bom_id, quantity, raw_warehouse_id, finished_warehouse_id"
// @Success      201   {object}  dto.ProductionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/productions [post]
func (h *ProductionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	input := production.CreateProductionInput{
		BOMID:               in.BOMID,
		Quantity:            in.Quantity,
		RawWarehouseID:      in.RawWarehouseID,
		FinishedWarehouseID: in.FinishedWarehouseID,
		Remarks:             in.Remarks,
	}
	if in.Date != nil {
		input.Date = *in.Date
	}
	record, err := h.uc.CreateProduction(c.Context(), input)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toProductionResponse(record))
}

// GetByID godoc
// @Summary      Obtener producción por ID (con movimientos)
// @Tags         productions
// @Produce      json
// @Param        id   path      string  true  "ID de la producción"
// @Success      200  {object}  dto.ProductionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productions/{id} [get]
func (h *ProductionHandler) GetByID(c *fiber.Ctx) error {
	record, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	if record == nil {
		return notFound(c, "NOT_FOUND", "producción no encontrada")
	}
	return c.JSON(toProductionResponse(record))
}

// List godoc
// @Summary      Listar producciones (sin movimientos)
// @Tags         productions
// @Produce      json
// @Param        limit   query  int  false  "máximo por página (default 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.ProductionListResponse
// @Router       /api/productions [get]
func (h *ProductionHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	records, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return handleError(c, err)
	}
	out := dto.ProductionListResponse{
		Items: make([]dto.ProductionResponse, 0, len(records)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, r := range records {
		out.Items = append(out.Items, toProductionResponse(r))
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producción (siempre rechazado una vez confirmada)
// @Description  La reversión se modela con movimientos ADJUSTMENT
//
//	compensatorios, nunca borrando historial.
//
// @Tags         productions
// @Produce      json
// @Param        id   path  string  true  "ID de la producción"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/productions/{id} [delete]
func (h *ProductionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toProductionResponse(r *entity.ProductionRecord) dto.ProductionResponse {
	out := dto.ProductionResponse{
		ID:                  r.ID,
		Number:              r.Number,
		BOMID:               r.BOMID,
		OutputItemID:        r.OutputItemID,
		Quantity:            r.Quantity,
		RawWarehouseID:      r.RawWarehouseID,
		FinishedWarehouseID: r.FinishedWarehouseID,
		Date:                r.Date,
		Remarks:             r.Remarks,
		CreatedAt:           r.CreatedAt,
	}
	for _, m := range r.Movements {
		out.Movements = append(out.Movements, query.ToMovementResponse(m))
	}
	return out
}
