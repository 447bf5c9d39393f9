package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/whiteslip-api/internal/domain"
	"github.com/jhoicas/whiteslip-api/internal/domain/entity"
	"github.com/jhoicas/whiteslip-api/internal/domain/repository"
)

var _ repository.MenuRepository = (*MenuRepo)(nil)

// MenuRepo guarda cada versión del menú como documento jsonb.
type MenuRepo struct {
	q Querier
}

// NewMenuRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMenuRepository(q Querier) *MenuRepo {
	return &MenuRepo{q: q}
}

// Latest devuelve la versión más alta o (nil, nil) si no hay menús.
func (r *MenuRepo) Latest(ctx context.Context) (*entity.Menu, error) {
	var m entity.Menu
	err := r.q.QueryRow(ctx, `
		SELECT id, version, data, last_updated
		FROM menus ORDER BY version DESC LIMIT 1`,
	).Scan(&m.ID, &m.Version, &m.Data, &m.LastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest menu: %w", err)
	}
	return &m, nil
}

// Insert agrega una versión nueva. El índice único sobre version resuelve publicaciones simultáneas.
func (r *MenuRepo) Insert(ctx context.Context, m *entity.Menu) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO menus (version, data, last_updated)
		VALUES ($1, $2, $3) RETURNING id`,
		m.Version, m.Data, m.LastUpdated,
	).Scan(&m.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrMenuVersionConflict
		}
		return fmt.Errorf("insert menu: %w", err)
	}
	return nil
}
