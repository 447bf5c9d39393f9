package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados por pedido dentro de un envío en lote.
const (
	OrderStatusSuccess   = "success"
	OrderStatusDuplicate = "duplicate"
	OrderStatusError     = "error"
)

// OrderItemRequest línea tal como la envía el terminal; line_no lo asigna el servidor.
type OrderItemRequest struct {
	Name      string          `json:"name"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderRequest pedido completo enviado por un terminal.
type OrderRequest struct {
	OrderID     string             `json:"order_id"`
	BusinessDay Date               `json:"business_day"`
	Total       decimal.Decimal    `json:"total"`
	CreatedAt   time.Time          `json:"created_at"`
	Items       []OrderItemRequest `json:"items"`
}

// OrderResult resultado individual dentro del lote.
type OrderResult struct {
	OrderID string `json:"order_id"`
	Success bool   `json:"success"`
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BulkSummary conteos; Success+Duplicate+Error == Total.
type BulkSummary struct {
	Total     int `json:"total"`
	Success   int `json:"success"`
	Duplicate int `json:"duplicate"`
	Error     int `json:"error"`
}

// BulkOrderResponse respuesta de POST /orders/bulk.
type BulkOrderResponse struct {
	Summary BulkSummary   `json:"summary"`
	Results []OrderResult `json:"results"`
}

// OrderQuery filtros de GET /orders. Fechas en formato YYYY-MM-DD.
type OrderQuery struct {
	OrderID     string `query:"order_id"`
	BusinessDay string `query:"business_day"`
	StartDate   string `query:"start_date"`
	EndDate     string `query:"end_date"`
	Page        int    `query:"page"`
	PageSize    int    `query:"page_size"`
}

// OrderItemResponse línea de pedido.
type OrderItemResponse struct {
	LineNo    int             `json:"line_no"`
	Name      string          `json:"name"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse pedido con sus líneas.
type OrderResponse struct {
	OrderID     string              `json:"order_id"`
	BusinessDay Date                `json:"business_day"`
	Total       decimal.Decimal     `json:"total"`
	CreatedAt   time.Time           `json:"created_at"`
	Items       []OrderItemResponse `json:"items"`
}

// OrderPage página de resultados.
type OrderPage struct {
	Data     []OrderResponse `json:"data"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
	Total    int             `json:"total"`
}

// ReprintResponse confirmación de reimpresión.
type ReprintResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	OrderID string          `json:"order_id"`
	Total   decimal.Decimal `json:"total"`
}

// ReportQuery rango opcional de business_day (inclusive).
type ReportQuery struct {
	From string `query:"from"`
	To   string `query:"to"`
}

// ReportOrder fila del reporte.
type ReportOrder struct {
	OrderID     string          `json:"order_id"`
	BusinessDay Date            `json:"business_day"`
	Total       decimal.Decimal `json:"total"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ReportResponse agregado del rango.
type ReportResponse struct {
	From   *Date           `json:"from"`
	To     *Date           `json:"to"`
	Count  int             `json:"count"`
	Total  decimal.Decimal `json:"total"`
	Orders []ReportOrder   `json:"orders"`
}
