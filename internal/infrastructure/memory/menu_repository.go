package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/whiteslip-api/internal/domain"
	"github.com/jhoicas/whiteslip-api/internal/domain/entity"
	"github.com/jhoicas/whiteslip-api/internal/domain/repository"
)

var _ repository.MenuRepository = (*MenuRepo)(nil)

// MenuRepo lista de versiones en orden de inserción.
type MenuRepo struct {
	mu    sync.Mutex
	menus []entity.Menu
	// BeforeInsert se ejecuta sin el lock antes de cada Insert (simula publicaciones concurrentes).
	BeforeInsert func()
}

// NewMenuRepo construye el repositorio sin versiones publicadas.
func NewMenuRepo() *MenuRepo {
	return &MenuRepo{}
}

// All devuelve todas las versiones guardadas.
func (r *MenuRepo) All() []entity.Menu {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.Menu(nil), r.menus...)
}

func (r *MenuRepo) Latest(_ context.Context) (*entity.Menu, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *entity.Menu
	for i := range r.menus {
		if latest == nil || r.menus[i].Version > latest.Version {
			m := r.menus[i]
			latest = &m
		}
	}
	return latest, nil
}

func (r *MenuRepo) Insert(_ context.Context, m *entity.Menu) error {
	r.mu.Lock()
	hook := r.BeforeInsert
	r.BeforeInsert = nil
	r.mu.Unlock()
	if hook != nil {
		hook()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.menus {
		if existing.Version == m.Version {
			return domain.ErrMenuVersionConflict
		}
	}
	m.ID = int64(len(r.menus) + 1)
	r.menus = append(r.menus, *m)
	return nil
}
