package ordering

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/whiteslip-api/internal/application/dto"
	"github.com/jhoicas/whiteslip-api/internal/domain"
	"github.com/jhoicas/whiteslip-api/internal/domain/entity"
	"github.com/jhoicas/whiteslip-api/internal/domain/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100

	// Desplazamiento máximo aceptado; acota (page-1)*size antes de multiplicar.
	maxOffset = math.MaxInt32
)

// Resultados por pedido que no son errores de dominio propagados.
var (
	orderCreated   = &domain.Error{Code: "ORDER_CREATED", Message: "pedido creado"}
	errOrderFailed = domain.NewError(domain.ErrUnavailable, "ORDER_FAILED", "no se pudo procesar el pedido")
)

// OrderUseCase ingreso de pedidos y consultas del libro.
type OrderUseCase struct {
	tx       TxRunner
	repo     repository.OrderRepository
	receipts ReceiptRenderer
	log      zerolog.Logger
	now      func() time.Time
}

// NewOrderUseCase construye el caso de uso. repo atiende las lecturas fuera de transacción.
func NewOrderUseCase(tx TxRunner, repo repository.OrderRepository, receipts ReceiptRenderer, log zerolog.Logger) *OrderUseCase {
	return &OrderUseCase{
		tx:       tx,
		repo:     repo,
		receipts: receipts,
		log:      log.With().Str("component", "orders").Logger(),
		now:      time.Now,
	}
}

// BulkSubmit procesa cada pedido por separado: un fallo no afecta a los demás.
// Dentro del mismo lote gana la primera aparición de un order_id.
func (uc *OrderUseCase) BulkSubmit(ctx context.Context, deviceID string, orders []dto.OrderRequest) (*dto.BulkOrderResponse, error) {
	resp := &dto.BulkOrderResponse{
		Summary: dto.BulkSummary{Total: len(orders)},
		Results: make([]dto.OrderResult, 0, len(orders)),
	}
	record := func(orderID, status string, outcome *domain.Error) {
		resp.Results = append(resp.Results, dto.OrderResult{
			OrderID: orderID,
			Success: status == dto.OrderStatusSuccess,
			Status:  status,
			Code:    outcome.Code,
			Message: outcome.Message,
		})
		switch status {
		case dto.OrderStatusSuccess:
			resp.Summary.Success++
		case dto.OrderStatusDuplicate:
			resp.Summary.Duplicate++
		default:
			resp.Summary.Error++
		}
	}

	err := uc.tx.RunOrders(ctx, func(repo repository.OrderRepository) error {
		seen := make(map[string]struct{}, len(orders))
		for _, in := range orders {
			if err := ctx.Err(); err != nil {
				return err
			}
			id := in.OrderID
			if strings.TrimSpace(id) == "" || len([]rune(id)) > entity.MaxOrderIDLength {
				record(id, dto.OrderStatusError, domain.ErrOrderInvalidID)
				continue
			}
			if _, dup := seen[id]; dup {
				record(id, dto.OrderStatusDuplicate, domain.ErrOrderDuplicate)
				continue
			}
			seen[id] = struct{}{}

			// Sin consulta previa: el duplicado lo reporta el insert, aislado por pedido.
			err := repo.CreateWithItems(ctx, toOrderEntity(in, uc.now().UTC()))
			switch {
			case err == nil:
				record(id, dto.OrderStatusSuccess, orderCreated)
			case errors.Is(err, domain.ErrOrderDuplicate):
				record(id, dto.OrderStatusDuplicate, domain.ErrOrderDuplicate)
			default:
				uc.log.Error().Err(err).Str("order_id", id).Msg("guardar pedido")
				record(id, dto.OrderStatusError, errOrderFailed)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("lote de pedidos: %w", err)
	}

	uc.log.Info().
		Str("device_id", deviceID).
		Int("total", resp.Summary.Total).
		Int("success", resp.Summary.Success).
		Int("duplicate", resp.Summary.Duplicate).
		Int("error", resp.Summary.Error).
		Msg("lote de pedidos procesado")
	return resp, nil
}

// Query pagina pedidos filtrados del más reciente al más antiguo.
func (uc *OrderUseCase) Query(ctx context.Context, q dto.OrderQuery) (*dto.OrderPage, error) {
	f, err := filterFromQuery(q)
	if err != nil {
		return nil, err
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.PageSize
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	if page-1 > maxOffset/size {
		return nil, domain.ErrInvalidPage
	}

	orders, total, err := uc.repo.Search(ctx, f, size, (page-1)*size)
	if err != nil {
		return nil, err
	}
	data := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		data = append(data, toOrderResponse(o))
	}
	return &dto.OrderPage{Data: data, Page: page, PageSize: size, Total: total}, nil
}

// Reprint busca el pedido y registra la intención de reimpresión.
func (uc *OrderUseCase) Reprint(ctx context.Context, deviceID, orderID string) (*dto.ReprintResponse, error) {
	o, err := uc.find(ctx, orderID)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("device_id", deviceID).Str("order_id", o.OrderID).Str("total", o.Total.StringFixed(2)).Msg("reimpresión")
	return &dto.ReprintResponse{Success: true, OrderID: o.OrderID, Total: o.Total}, nil
}

// Receipt genera el comprobante PDF del pedido.
func (uc *OrderUseCase) Receipt(ctx context.Context, orderID string) ([]byte, error) {
	o, err := uc.find(ctx, orderID)
	if err != nil {
		return nil, err
	}
	pdf, err := uc.receipts.RenderReceipt(o)
	if err != nil {
		return nil, fmt.Errorf("generar comprobante: %w", err)
	}
	return pdf, nil
}

func (uc *OrderUseCase) find(ctx context.Context, orderID string) (*entity.Order, error) {
	o, err := uc.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

func filterFromQuery(q dto.OrderQuery) (repository.OrderFilter, error) {
	f := repository.OrderFilter{OrderIDContains: strings.TrimSpace(q.OrderID)}
	var err error
	if f.BusinessDay, err = optionalDate(q.BusinessDay); err != nil {
		return f, err
	}
	if f.From, err = optionalDate(q.StartDate); err != nil {
		return f, err
	}
	if f.To, err = optionalDate(q.EndDate); err != nil {
		return f, err
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return f, domain.ErrInvalidDateRange
	}
	return f, nil
}

func optionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := dto.ParseDate(s)
	if err != nil {
		return nil, domain.NewError(domain.ErrInvalidInput, domain.ErrInvalidDateRange.Code, err.Error())
	}
	return &d.Time, nil
}

func toOrderEntity(in dto.OrderRequest, now time.Time) *entity.Order {
	createdAt := in.CreatedAt.UTC()
	if in.CreatedAt.IsZero() {
		createdAt = now
	}
	o := &entity.Order{
		OrderID:     in.OrderID,
		BusinessDay: entity.DateOnly(in.BusinessDay.Time),
		Total:       in.Total,
		CreatedAt:   createdAt,
		Items:       make([]entity.OrderItem, 0, len(in.Items)),
	}
	if in.BusinessDay.IsZero() {
		o.BusinessDay = entity.DateOnly(createdAt)
	}
	for i, it := range in.Items {
		o.Items = append(o.Items, entity.OrderItem{
			OrderID:   in.OrderID,
			LineNo:    i + 1,
			Name:      it.Name,
			Qty:       it.Qty,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return o
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			LineNo:    it.LineNo,
			Name:      it.Name,
			Qty:       it.Qty,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return dto.OrderResponse{
		OrderID:     o.OrderID,
		BusinessDay: dto.Date{Time: o.BusinessDay},
		Total:       o.Total,
		CreatedAt:   o.CreatedAt,
		Items:       items,
	}
}
