package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mfbgull/mini-erp-sub001/internal/application/ledger"
	"github.com/mfbgull/mini-erp-sub001/internal/application/production"
	"github.com/mfbgull/mini-erp-sub001/internal/application/query"
	"github.com/mfbgull/mini-erp-sub001/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC       *usecase.ItemUseCase
	WarehouseUC  *usecase.WarehouseUseCase
	BOMUC        *usecase.BOMUseCase
	LedgerUC     *ledger.LedgerUseCase
	QueryUC      *query.QueryUseCase
	ProductionUC *production.ProductionUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo de ítems
	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)

	// Bodegas
	warehouses := api.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)
	warehouses.Delete("/:id", warehouseHandler.Delete)

	// Recetas (listas de materiales)
	boms := api.Group("/boms")
	bomHandler := NewBOMHandler(deps.BOMUC)
	boms.Post("/", bomHandler.Create)
	boms.Get("/", bomHandler.List)
	boms.Get("/:id", bomHandler.GetByID)
	boms.Delete("/:id", bomHandler.Deactivate)

	// Libro de inventario: movimientos y saldos
	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.LedgerUC, deps.QueryUC)
	stock.Post("/movements", stockHandler.RegisterMovement)
	stock.Get("/movements", stockHandler.ListMovements)
	stock.Get("/balances/:item_id", stockHandler.GetItemBalances)
	stock.Get("/balances/:item_id/:warehouse_id", stockHandler.GetBalance)

	// Motor de producción
	productions := api.Group("/productions")
	productionHandler := NewProductionHandler(deps.ProductionUC)
	productions.Post("/", productionHandler.Create)
	productions.Get("/", productionHandler.List)
	productions.Get("/:id", productionHandler.GetByID)
	productions.Delete("/:id", productionHandler.Delete)
}
