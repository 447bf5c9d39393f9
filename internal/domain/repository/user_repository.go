package repository

import (
	"context"

	"github.com/jhoicas/whiteslip-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	// Create devuelve domain.ErrAccountTaken si la cuenta ya existe.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByAccount(ctx context.Context, account string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) error
	ExistsWithRole(ctx context.Context, role entity.Role) (bool, error)
}
