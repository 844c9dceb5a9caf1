package entity

import "time"

// Warehouse representa una bodega física o lógica donde se almacena inventario.
type Warehouse struct {
	ID        string
	Code      string // código único
	Name      string
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
