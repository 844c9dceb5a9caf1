package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mfbgull/mini-erp-sub001/internal/application/dto"
	"github.com/mfbgull/mini-erp-sub001/internal/application/ledger"
	"github.com/mfbgull/mini-erp-sub001/internal/application/query"
	"github.com/mfbgull/mini-erp-sub001/internal/domain/repository"
)

// StockHandler maneja las peticiones HTTP del libro de inventario: registro de
// movimientos simples y consultas de saldos e historial.
type StockHandler struct {
	ledgerUC *ledger.LedgerUseCase
	queryUC  *query.QueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(ledgerUC *ledger.LedgerUseCase, queryUC *query.QueryUseCase) *StockHandler {
	return &StockHandler{ledgerUC: ledgerUC, queryUC: queryUC}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  Tipos permitidos: PURCHASE, SALE, ADJUSTMENT. Los movimientos
//
//	PRODUCTION_IN/PRODUCTION_OUT solo los escribe el motor de producción.
//	Una SALE que dejaría el saldo negativo se rechaza con 409.
//
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "item_id, warehouse_id, type, quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	input := ledger.MovementInput{
		ItemID:      in.ItemID,
		WarehouseID: in.WarehouseID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		Reference:   in.Reference,
		Remarks:     in.Remarks,
	}
	if in.Date != nil {
		input.Date = *in.Date
	}
	mov, err := h.ledgerUC.RegisterMovement(c.Context(), input)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(query.ToMovementResponse(mov))
}

// ListMovements godoc
// @Summary      Historial de movimientos
// @Description  Filtros combinables por ítem, bodega, tipo y rango de fechas
//
//	(RFC 3339). Orden: más reciente primero.
//
// @Tags         stock
// @Produce      json
// @Param        item_id       query  string  false  "filtrar por ítem"
// @Param        warehouse_id  query  string  false  "filtrar por bodega"
// @Param        type          query  string  false  "PURCHASE, SALE, PRODUCTION_IN, PRODUCTION_OUT, ADJUSTMENT"
// @Param        from          query  string  false  "fecha inicial (RFC 3339)"
// @Param        to            query  string  false  "fecha final (RFC 3339)"
// @Param        limit         query  int     false  "máximo por página (default 20, máx 100)"
// @Param        offset        query  int     false  "desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	filter := repository.MovementFilter{
		ItemID:      c.Query("item_id"),
		WarehouseID: c.Query("warehouse_id"),
		Type:        c.Query("type"),
		Limit:       c.QueryInt("limit"),
		Offset:      c.QueryInt("offset"),
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha 'from' inválida (RFC 3339)"})
		}
		filter.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha 'to' inválida (RFC 3339)"})
		}
		filter.To = &t
	}
	out, err := h.queryUC.ListMovements(filter)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// GetBalance godoc
// @Summary      Saldo de un ítem en una bodega
// @Description  Sin movimientos registrados el saldo es cero, no 404.
// @Tags         stock
// @Produce      json
// @Param        item_id       path  string  true  "ID del ítem"
// @Param        warehouse_id  path  string  true  "ID de la bodega"
// @Success      200  {object}  dto.StockBalanceResponse
// @Router       /api/stock/balances/{item_id}/{warehouse_id} [get]
func (h *StockHandler) GetBalance(c *fiber.Ctx) error {
	out, err := h.queryUC.GetBalance(c.Params("item_id"), c.Params("warehouse_id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// GetItemBalances godoc
// @Summary      Saldos de un ítem en todas las bodegas, con total
// @Tags         stock
// @Produce      json
// @Param        item_id  path  string  true  "ID del ítem"
// @Success      200  {object}  dto.ItemBalancesResponse
// @Router       /api/stock/balances/{item_id} [get]
func (h *StockHandler) GetItemBalances(c *fiber.Ctx) error {
	out, err := h.queryUC.GetItemBalances(c.Params("item_id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
