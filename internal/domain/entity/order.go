package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxOrderIDLength longitud máxima de order_id (clave primaria enviada por el cliente).
const MaxOrderIDLength = 20

// Order representa una transacción completada en un terminal.
type Order struct {
	OrderID     string
	BusinessDay time.Time // solo fecha (UTC, 00:00)
	Total       decimal.Decimal
	CreatedAt   time.Time
	Items       []OrderItem
}

// OrderItem línea de un pedido. Clave compuesta (order_id, line_no), line_no desde 1.
type OrderItem struct {
	OrderID   string
	LineNo    int
	Name      string
	Qty       int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// DateOnly trunca t a la fecha calendario en UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
