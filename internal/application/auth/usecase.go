package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/whiteslip-api/internal/application/dto"
	"github.com/jhoicas/whiteslip-api/internal/domain"
	"github.com/jhoicas/whiteslip-api/internal/domain/repository"
	"github.com/jhoicas/whiteslip-api/pkg/password"
)

// LoginUseCase login de personal con cuenta y contraseña.
type LoginUseCase struct {
	users  repository.UserRepository
	hasher password.Hasher
	tokens TokenIssuer
	log    zerolog.Logger
}

// NewLoginUseCase construye el caso de uso de login.
func NewLoginUseCase(users repository.UserRepository, hasher password.Hasher, tokens TokenIssuer, log zerolog.Logger) *LoginUseCase {
	return &LoginUseCase{users: users, hasher: hasher, tokens: tokens, log: log.With().Str("component", "login").Logger()}
}

// Login verifica cuenta/contraseña y emite un token con el rol guardado.
// Cuenta inexistente y contraseña incorrecta devuelven el mismo error.
func (uc *LoginUseCase) Login(ctx context.Context, in dto.UserLoginRequest) (*dto.AuthResponse, error) {
	if strings.TrimSpace(in.Account) == "" || in.Password == "" {
		return nil, domain.ErrCredentialsRequired
	}
	user, err := uc.users.GetByAccount(ctx, in.Account)
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	if user == nil || !uc.hasher.Verify(in.Password, user.PasswordDigest) {
		uc.log.Warn().Str("account", in.Account).Msg("login fallido")
		return nil, domain.ErrInvalidCredentials
	}
	token, expiresAt, err := uc.tokens.IssueUserToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("login")
	return &dto.AuthResponse{Success: true, Token: token, ExpiresAt: expiresAt, Role: string(user.Role)}, nil
}
