package ordering

import (
	"context"

	"github.com/jhoicas/whiteslip-api/internal/domain/entity"
	"github.com/jhoicas/whiteslip-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con el repositorio de pedidos atado a ella.
type TxRunner interface {
	RunOrders(ctx context.Context, fn func(orders repository.OrderRepository) error) error
}

// ReceiptRenderer genera el comprobante imprimible de un pedido.
type ReceiptRenderer interface {
	RenderReceipt(order *entity.Order) ([]byte, error)
}
