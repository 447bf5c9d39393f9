package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/whiteslip-api/internal/domain/entity"
	"github.com/jhoicas/whiteslip-api/internal/domain/repository"
	"github.com/jhoicas/whiteslip-api/pkg/password"
)

// BootstrapConfig datos iniciales.
type BootstrapConfig struct {
	AdminAccount  string
	AdminPassword string
	TestDevice    string // vacío = no crear dispositivo de prueba
}

// Bootstrap crea la cuenta Admin si no hay ninguna y el dispositivo de prueba
// si la tabla de dispositivos está vacía. Es idempotente.
func Bootstrap(ctx context.Context, users repository.UserRepository, devices repository.DeviceRepository, hasher password.Hasher, cfg BootstrapConfig, log zerolog.Logger) error {
	now := time.Now().UTC()

	hasAdmin, err := users.ExistsWithRole(ctx, entity.RoleAdmin)
	if err != nil {
		return fmt.Errorf("seed: verificar admin: %w", err)
	}
	if !hasAdmin && cfg.AdminAccount != "" {
		digest, err := hasher.Hash(cfg.AdminPassword)
		if err != nil {
			return fmt.Errorf("seed: hash admin: %w", err)
		}
		admin := &entity.User{
			ID:             uuid.New().String(),
			Account:        cfg.AdminAccount,
			PasswordDigest: digest,
			Role:           entity.RoleAdmin,
			CreatedAt:      now,
		}
		if err := users.Create(ctx, admin); err != nil {
			return fmt.Errorf("seed: crear admin: %w", err)
		}
		log.Warn().Str("account", admin.Account).Msg("cuenta Admin por defecto creada, cambie la contraseña")
	}

	if cfg.TestDevice == "" {
		return nil
	}
	n, err := devices.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed: contar dispositivos: %w", err)
	}
	if n > 0 {
		return nil
	}
	device := &entity.Device{
		ID:          uuid.New().String(),
		Code:        cfg.TestDevice,
		Name:        "Dispositivo de prueba",
		Status:      entity.DeviceActive,
		LastSeen:    now,
		CreatedAt:   now,
		ActivatedAt: &now,
	}
	if err := devices.Create(ctx, device); err != nil {
		return fmt.Errorf("seed: crear dispositivo: %w", err)
	}
	log.Info().Str("device_code", device.Code).Msg("dispositivo de prueba creado")
	return nil
}
