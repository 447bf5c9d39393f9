package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/whiteslip-api/internal/application/dto"
	"github.com/jhoicas/whiteslip-api/internal/domain"
	"github.com/jhoicas/whiteslip-api/internal/domain/entity"
	"github.com/jhoicas/whiteslip-api/internal/domain/repository"
	"github.com/jhoicas/whiteslip-api/pkg/password"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo   repository.UserRepository
	hasher password.Hasher
	log    zerolog.Logger
	now    func() time.Time
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, hasher password.Hasher, log zerolog.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, hasher: hasher, log: log.With().Str("component", "users").Logger(), now: time.Now}
}

// List devuelve todos los usuarios, sin digest.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *entityToUserResponse(u))
	}
	return out, nil
}

// Create valida y persiste un usuario nuevo.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	account := strings.TrimSpace(in.Account)
	if account == "" || in.Password == "" || strings.TrimSpace(in.Role) == "" {
		return nil, domain.ErrUserFieldsRequired
	}
	role, ok := entity.ParseRole(in.Role)
	if !ok {
		return nil, domain.ErrInvalidRole
	}
	existing, err := uc.repo.GetByAccount(ctx, account)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAccountTaken
	}
	digest, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:             uuid.New().String(),
		Account:        account,
		PasswordDigest: digest,
		Role:           role,
		CreatedAt:      uc.now().UTC(),
	}
	// El índice único resuelve la carrera entre la verificación y el insert.
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("account", account).Str("role", string(role)).Msg("usuario creado")
	return entityToUserResponse(user), nil
}

// Update cambia solo los campos presentes en in.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Role != nil {
		role, ok := entity.ParseRole(*in.Role)
		if !ok {
			return nil, domain.ErrInvalidRole
		}
		user.Role = role
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, domain.ErrUserFieldsRequired
		}
		digest, err := uc.hasher.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordDigest = digest
	}
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Bool("password", in.Password != nil).Bool("role", in.Role != nil).Msg("usuario actualizado")
	return entityToUserResponse(user), nil
}

// Delete elimina físicamente el usuario.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.find(ctx, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("user_id", id).Msg("usuario eliminado")
	return nil
}

func (uc *UserUseCase) find(ctx context.Context, id string) (*entity.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrUserNotFound
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Account:   u.Account,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}
