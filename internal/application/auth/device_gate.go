package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/whiteslip-api/internal/domain"
	"github.com/jhoicas/whiteslip-api/internal/domain/repository"
	"github.com/jhoicas/whiteslip-api/pkg/jwt"
)

// DeviceGate revalida en cada petición que el dispositivo del token siga habilitado.
// Lee siempre de la base: deshabilitar o eliminar surte efecto en la siguiente petición.
type DeviceGate struct {
	repo repository.DeviceRepository
	log  zerolog.Logger
}

// NewDeviceGate construye la regla.
func NewDeviceGate(repo repository.DeviceRepository, log zerolog.Logger) *DeviceGate {
	return &DeviceGate{repo: repo, log: log.With().Str("component", "device_gate").Logger()}
}

// Authorize devuelve nil si p puede continuar.
func (g *DeviceGate) Authorize(ctx context.Context, p jwt.Principal) error {
	// Tokens de usuario no pasan por esta regla; los roles se validan en otro middleware.
	if !p.IsDevice() {
		return nil
	}
	if _, err := uuid.Parse(p.ID); err != nil {
		g.log.Warn().Str("subject", p.ID).Msg("sub de dispositivo inválido")
		return domain.ErrDeviceRevoked
	}
	device, err := g.repo.GetByID(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("device gate: %w", err)
	}
	if device == nil || device.Blocked() {
		ev := g.log.Warn().Str("device_id", p.ID)
		if device != nil {
			ev = ev.Str("status", string(device.Status))
		}
		ev.Msg("dispositivo sin acceso")
		return domain.ErrDeviceRevoked
	}
	return nil
}
