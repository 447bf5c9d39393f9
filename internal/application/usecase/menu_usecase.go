package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/whiteslip-api/internal/application/dto"
	"github.com/jhoicas/whiteslip-api/internal/domain"
	"github.com/jhoicas/whiteslip-api/internal/domain/entity"
	"github.com/jhoicas/whiteslip-api/internal/domain/repository"
)

// maxPublishAttempts reintentos ante otra publicación simultánea con la misma versión.
const maxPublishAttempts = 3

// MenuUseCase catálogo versionado de solo inserción.
type MenuUseCase struct {
	repo repository.MenuRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewMenuUseCase construye el caso de uso.
func NewMenuUseCase(repo repository.MenuRepository, log zerolog.Logger) *MenuUseCase {
	return &MenuUseCase{repo: repo, log: log.With().Str("component", "menu").Logger(), now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *MenuUseCase) WithClock(now func() time.Time) *MenuUseCase {
	uc.now = now
	return uc
}

// LatestVersion devuelve la versión vigente, o 0 si no hay menú.
func (uc *MenuUseCase) LatestVersion(ctx context.Context) (*dto.MenuVersionResponse, error) {
	m, err := uc.repo.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return &dto.MenuVersionResponse{}, nil
	}
	last := m.LastUpdated
	return &dto.MenuVersionResponse{Version: m.Version, LastUpdated: &last}, nil
}

// Get devuelve la instantánea vigente. Si ifVersion coincide con ella, notModified es true y no hay cuerpo.
func (uc *MenuUseCase) Get(ctx context.Context, ifVersion *int) (resp *dto.MenuResponse, notModified bool, err error) {
	m, err := uc.repo.Latest(ctx)
	if err != nil {
		return nil, false, err
	}
	if m == nil {
		return nil, false, domain.ErrMenuNotFound
	}
	if ifVersion != nil && *ifVersion == m.Version {
		return nil, true, nil
	}
	return toMenuResponse(m), false, nil
}

// Publish valida el catálogo e inserta la versión max+1.
func (uc *MenuUseCase) Publish(ctx context.Context, in dto.PublishMenuRequest) (*dto.PublishMenuResponse, error) {
	data, err := validateMenu(in)
	if err != nil {
		return nil, err
	}
	for attempt := 1; ; attempt++ {
		latest, err := uc.repo.Latest(ctx)
		if err != nil {
			return nil, err
		}
		next := 1
		if latest != nil {
			next = latest.Version + 1
		}
		m := &entity.Menu{Version: next, Data: data, LastUpdated: uc.now().UTC()}
		err = uc.repo.Insert(ctx, m)
		if err == nil {
			uc.log.Info().Int("version", next).Int("categories", len(data.Categories)).Msg("menú publicado")
			return &dto.PublishMenuResponse{Success: true, Version: next}, nil
		}
		if !errors.Is(err, domain.ErrMenuVersionConflict) || attempt == maxPublishAttempts {
			return nil, err
		}
		uc.log.Warn().Int("version", next).Int("attempt", attempt).Msg("versión tomada, reintentando")
	}
}

// validateMenu devuelve la primera violación encontrada.
func validateMenu(in dto.PublishMenuRequest) (entity.MenuData, error) {
	if len(in.Categories) == 0 {
		return entity.MenuData{}, domain.ErrMenuNoCategories
	}
	data := entity.MenuData{Categories: make([]entity.MenuCategory, 0, len(in.Categories))}
	for ci, c := range in.Categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return entity.MenuData{}, withPosition(domain.ErrMenuCategoryName, fmt.Sprintf("categoría %d", ci+1))
		}
		cat := entity.MenuCategory{Name: name, Items: make([]entity.MenuItem, 0, len(c.Items))}
		for ii, it := range c.Items {
			itemName := strings.TrimSpace(it.Name)
			if itemName == "" {
				return entity.MenuData{}, withPosition(domain.ErrMenuItemName, fmt.Sprintf("%s, producto %d", name, ii+1))
			}
			if !it.Price.IsPositive() {
				return entity.MenuData{}, withPosition(domain.ErrMenuItemPrice, fmt.Sprintf("%s, %s", name, itemName))
			}
			cat.Items = append(cat.Items, entity.MenuItem{Name: itemName, Price: it.Price})
		}
		data.Categories = append(data.Categories, cat)
	}
	return data, nil
}

// withPosition copia el error de dominio agregando dónde ocurrió la violación.
func withPosition(e *domain.Error, where string) *domain.Error {
	return domain.NewError(e.Kind, e.Code, fmt.Sprintf("%s (%s)", e.Message, where))
}

func toMenuResponse(m *entity.Menu) *dto.MenuResponse {
	cats := make([]dto.MenuCategoryDTO, 0, len(m.Data.Categories))
	for _, c := range m.Data.Categories {
		items := make([]dto.MenuItemDTO, 0, len(c.Items))
		for _, it := range c.Items {
			items = append(items, dto.MenuItemDTO{Name: it.Name, Price: it.Price})
		}
		cats = append(cats, dto.MenuCategoryDTO{Name: c.Name, Items: items})
	}
	return &dto.MenuResponse{Version: m.Version, LastUpdated: m.LastUpdated, Categories: cats}
}
