package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItemDTO producto del menú.
type MenuItemDTO struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// MenuCategoryDTO categoría con sus productos.
type MenuCategoryDTO struct {
	Name  string        `json:"name"`
	Items []MenuItemDTO `json:"items"`
}

// PublishMenuRequest catálogo completo a publicar como versión nueva.
type PublishMenuRequest struct {
	Categories []MenuCategoryDTO `json:"categories"`
}

// PublishMenuResponse versión asignada.
type PublishMenuResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Version int    `json:"version"`
}

// MenuResponse instantánea vigente.
type MenuResponse struct {
	Version     int               `json:"version"`
	LastUpdated time.Time         `json:"last_updated"`
	Categories  []MenuCategoryDTO `json:"categories"`
}

// MenuVersionResponse versión vigente; 0 y last_updated nulo si no hay menú.
type MenuVersionResponse struct {
	Version     int        `json:"version"`
	LastUpdated *time.Time `json:"last_updated"`
}
