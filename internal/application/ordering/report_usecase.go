package ordering

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/whiteslip-api/internal/application/dto"
	"github.com/jhoicas/whiteslip-api/internal/domain/repository"
)

// csvTimeLayout marca de tiempo ISO ordenable, sin zona.
const csvTimeLayout = "2006-01-02T15:04:05"

// ReportUseCase agregados de ventas por rango de business_day.
type ReportUseCase struct {
	repo repository.OrderRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.OrderRepository) *ReportUseCase {
	return &ReportUseCase{repo: repo}
}

// Report cuenta y suma los pedidos del rango [from, to], ambos inclusive.
func (uc *ReportUseCase) Report(ctx context.Context, q dto.ReportQuery) (*dto.ReportResponse, error) {
	f, err := reportFilter(q)
	if err != nil {
		return nil, err
	}
	// count y total salen de las mismas filas que se listan.
	orders, err := uc.repo.ListForReport(ctx, f)
	if err != nil {
		return nil, err
	}

	resp := &dto.ReportResponse{
		Count:  len(orders),
		Total:  decimal.Zero,
		Orders: make([]dto.ReportOrder, 0, len(orders)),
	}
	if f.From != nil {
		resp.From = &dto.Date{Time: *f.From}
	}
	if f.To != nil {
		resp.To = &dto.Date{Time: *f.To}
	}
	for _, o := range orders {
		resp.Total = resp.Total.Add(o.Total)
		resp.Orders = append(resp.Orders, dto.ReportOrder{
			OrderID:     o.OrderID,
			BusinessDay: dto.Date{Time: o.BusinessDay},
			Total:       o.Total,
			CreatedAt:   o.CreatedAt,
		})
	}
	return resp, nil
}

// CSV exporta el mismo rango con cabecera OrderId,BusinessDay,Total,CreatedAt.
func (uc *ReportUseCase) CSV(ctx context.Context, q dto.ReportQuery) ([]byte, error) {
	f, err := reportFilter(q)
	if err != nil {
		return nil, err
	}
	orders, err := uc.repo.ListForReport(ctx, f)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"OrderId", "BusinessDay", "Total", "CreatedAt"}); err != nil {
		return nil, err
	}
	for _, o := range orders {
		row := []string{
			o.OrderID,
			o.BusinessDay.Format(dto.DateLayout),
			o.Total.StringFixed(2),
			o.CreatedAt.UTC().Format(csvTimeLayout),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("escribir csv: %w", err)
	}
	return buf.Bytes(), nil
}

func reportFilter(q dto.ReportQuery) (repository.OrderFilter, error) {
	return filterFromQuery(dto.OrderQuery{StartDate: q.From, EndDate: q.To})
}

