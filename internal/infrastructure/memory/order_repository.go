package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/whiteslip-api/internal/domain"
	"github.com/jhoicas/whiteslip-api/internal/domain/entity"
	"github.com/jhoicas/whiteslip-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo libro de pedidos en memoria.
type OrderRepo struct {
	mu     sync.Mutex
	orders map[string]entity.Order
	// FailCreate permite simular fallos de almacenamiento por order_id.
	FailCreate func(orderID string) error
}

// NewOrderRepo construye el libro vacío.
func NewOrderRepo() *OrderRepo {
	return &OrderRepo{orders: map[string]entity.Order{}}
}

func (r *OrderRepo) CreateWithItems(_ context.Context, o *entity.Order) error {
	if r.FailCreate != nil {
		if err := r.FailCreate(o.OrderID); err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[o.OrderID]; ok {
		return domain.ErrOrderDuplicate
	}
	cp := *o
	cp.Items = append([]entity.OrderItem(nil), o.Items...)
	r.orders[o.OrderID] = cp
	return nil
}

func (r *OrderRepo) GetByID(_ context.Context, orderID string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *OrderRepo) Search(_ context.Context, f repository.OrderFilter, limit, offset int) ([]*entity.Order, int, error) {
	list := r.filter(f)
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].OrderID < list[j].OrderID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	total := len(list)
	if offset < 0 || limit < 0 {
		return nil, 0, fmt.Errorf("search: offset %d, limit %d: %w", offset, limit, domain.ErrInvalidInput)
	}
	if offset >= total {
		return []*entity.Order{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return list[offset:end], total, nil
}

func (r *OrderRepo) ListForReport(_ context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	list := r.filter(f)
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if !a.BusinessDay.Equal(b.BusinessDay) {
			return a.BusinessDay.Before(b.BusinessDay)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.OrderID < b.OrderID
	})
	for _, o := range list {
		o.Items = nil
	}
	return list, nil
}

func (r *OrderRepo) filter(f repository.OrderFilter) []*entity.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := []*entity.Order{}
	for _, o := range r.orders {
		if f.OrderIDContains != "" && !strings.Contains(o.OrderID, f.OrderIDContains) {
			continue
		}
		day := entity.DateOnly(o.BusinessDay)
		if f.BusinessDay != nil && !day.Equal(entity.DateOnly(*f.BusinessDay)) {
			continue
		}
		if f.From != nil && day.Before(entity.DateOnly(*f.From)) {
			continue
		}
		if f.To != nil && day.After(entity.DateOnly(*f.To)) {
			continue
		}
		o := o
		o.Items = append([]entity.OrderItem(nil), o.Items...)
		list = append(list, &o)
	}
	return list
}

// TxRunner ejecuta fn directamente sobre el repo en memoria.
type TxRunner struct {
	Orders *OrderRepo
}

func (t TxRunner) RunOrders(_ context.Context, fn func(repository.OrderRepository) error) error {
	return fn(t.Orders)
}
