package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/whiteslip-api/internal/domain"
	"github.com/jhoicas/whiteslip-api/internal/domain/entity"
	"github.com/jhoicas/whiteslip-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// CreateWithItems inserta cabecera y líneas en una sub-transacción propia
// (SAVEPOINT si r.q ya es una tx), de modo que un fallo no contamina el lote.
// El duplicado se detecta por la violación de unicidad dentro de esa misma sub-transacción.
func (r *OrderRepo) CreateWithItems(ctx context.Context, o *entity.Order) error {
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin order: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (order_id, business_day, total, created_at)
		VALUES ($1, $2, $3, $4)`,
		o.OrderID, o.BusinessDay, o.Total, o.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrOrderDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}

	if len(o.Items) > 0 {
		batch := &pgx.Batch{}
		for _, it := range o.Items {
			batch.Queue(`
				INSERT INTO order_items (order_id, line_no, name, qty, unit_price, subtotal)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				o.OrderID, it.LineNo, it.Name, it.Qty, it.UnitPrice, it.Subtotal,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert order items: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit order: %w", err)
	}
	return nil
}

// GetByID obtiene el pedido con sus líneas, o (nil, nil) si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, orderID string) (*entity.Order, error) {
	var o entity.Order
	err := r.q.QueryRow(ctx, `
		SELECT order_id, business_day, total, created_at
		FROM orders WHERE order_id = $1`, orderID,
	).Scan(&o.OrderID, &o.BusinessDay, &o.Total, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	list := []*entity.Order{&o}
	if err := r.attachItems(ctx, list); err != nil {
		return nil, err
	}
	return &o, nil
}

// Search pagina pedidos filtrados, del más reciente al más antiguo.
func (r *OrderRepo) Search(ctx context.Context, f repository.OrderFilter, limit, offset int) ([]*entity.Order, int, error) {
	where, args := buildOrderWhere(f)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	n := len(args)
	query := fmt.Sprintf(`
		SELECT order_id, business_day, total, created_at
		FROM orders%s
		ORDER BY created_at DESC, order_id
		LIMIT $%d OFFSET $%d`, where, n+1, n+2)
	list, err := r.queryOrders(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	if err := r.attachItems(ctx, list); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListForReport devuelve cabeceras sin líneas en orden cronológico.
func (r *OrderRepo) ListForReport(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	where, args := buildOrderWhere(f)
	return r.queryOrders(ctx, `
		SELECT order_id, business_day, total, created_at
		FROM orders`+where+`
		ORDER BY business_day, created_at, order_id`, args...)
}

func (r *OrderRepo) queryOrders(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	list := []*entity.Order{}
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.OrderID, &o.BusinessDay, &o.Total, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// attachItems carga las líneas de todos los pedidos con una sola consulta.
func (r *OrderRepo) attachItems(ctx context.Context, orders []*entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Order, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		o.Items = []entity.OrderItem{}
		byID[o.OrderID] = o
		ids = append(ids, o.OrderID)
	}

	rows, err := r.q.Query(ctx, `
		SELECT order_id, line_no, name, qty, unit_price, subtotal
		FROM order_items WHERE order_id = ANY($1)
		ORDER BY order_id, line_no`, ids)
	if err != nil {
		return fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.OrderID, &it.LineNo, &it.Name, &it.Qty, &it.UnitPrice, &it.Subtotal); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if o, ok := byID[it.OrderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	return rows.Err()
}

// buildOrderWhere arma la cláusula WHERE conjuntiva y sus argumentos posicionales.
func buildOrderWhere(f repository.OrderFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.OrderIDContains != "" {
		add(`order_id LIKE $%d ESCAPE '\'`, containsPattern(f.OrderIDContains))
	}
	if f.BusinessDay != nil {
		add(`business_day = $%d`, entity.DateOnly(*f.BusinessDay))
	}
	if f.From != nil {
		add(`business_day >= $%d`, entity.DateOnly(*f.From))
	}
	if f.To != nil {
		add(`business_day <= $%d`, entity.DateOnly(*f.To))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

