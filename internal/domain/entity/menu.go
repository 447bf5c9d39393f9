package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Menu es una instantánea inmutable del catálogo completo.
// Publicar un menú nuevo inserta una fila con version = max(version)+1.
type Menu struct {
	ID          int64
	Version     int
	Data        MenuData
	LastUpdated time.Time
}

// MenuData documento serializado en la columna data (jsonb).
type MenuData struct {
	Categories []MenuCategory `json:"categories"`
}

// MenuCategory agrupa productos del menú.
type MenuCategory struct {
	Name  string     `json:"name"`
	Items []MenuItem `json:"items"`
}

// MenuItem producto vendible.
type MenuItem struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}
