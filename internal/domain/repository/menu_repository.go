package repository

import (
	"context"

	"github.com/jhoicas/whiteslip-api/internal/domain/entity"
)

// MenuRepository puerto del catálogo versionado (solo inserción).
type MenuRepository interface {
	// Latest devuelve la fila de mayor versión o (nil, nil) si no hay menús.
	Latest(ctx context.Context) (*entity.Menu, error)
	// Insert inserta menu con menu.Version ya calculada. Devuelve
	// domain.ErrMenuVersionConflict si la versión ya existe.
	Insert(ctx context.Context, menu *entity.Menu) error
}
