package repository

import (
	"context"
	"time"

	"github.com/jhoicas/whiteslip-api/internal/domain/entity"
)

// OrderFilter filtros conjuntivos (AND) para consultas de pedidos.
// Las fechas se comparan contra business_day, ambos extremos inclusive.
type OrderFilter struct {
	OrderIDContains string
	BusinessDay     *time.Time
	From            *time.Time
	To              *time.Time
}

// OrderRepository define el puerto de persistencia del libro de pedidos.
type OrderRepository interface {
	// CreateWithItems inserta cabecera y líneas como una unidad. Si falla no deja
	// filas parciales. Devuelve domain.ErrOrderDuplicate ante clave duplicada.
	CreateWithItems(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, orderID string) (*entity.Order, error)
	// Search pagina por offset, ordena por created_at descendente e incluye líneas.
	Search(ctx context.Context, f OrderFilter, limit, offset int) ([]*entity.Order, int, error)
	// ListForReport devuelve cabeceras (sin líneas) ordenadas por business_day, created_at.
	ListForReport(ctx context.Context, f OrderFilter) ([]*entity.Order, error)
}
