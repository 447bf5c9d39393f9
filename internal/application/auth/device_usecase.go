package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/whiteslip-api/internal/application/dto"
	"github.com/jhoicas/whiteslip-api/internal/domain"
	"github.com/jhoicas/whiteslip-api/internal/domain/entity"
	"github.com/jhoicas/whiteslip-api/internal/domain/repository"
)

const (
	minDeviceCodeLength = 3
	maxCodeAttempts     = 10

	// Reintentos cuando otro escritor cambia el estado entre la lectura y la escritura.
	maxUpdateAttempts = 3
)

// DeviceUseCase directorio de dispositivos: autenticación por código, alta y ciclo de vida.
type DeviceUseCase struct {
	repo    repository.DeviceRepository
	tokens  TokenIssuer
	log     zerolog.Logger
	now     func() time.Time
	newCode CodeGenerator
}

// DeviceOption configura DeviceUseCase.
type DeviceOption func(*DeviceUseCase)

// WithDeviceClock reemplaza el reloj.
func WithDeviceClock(now func() time.Time) DeviceOption {
	return func(uc *DeviceUseCase) { uc.now = now }
}

// WithCodeGenerator reemplaza el generador de códigos.
func WithCodeGenerator(gen CodeGenerator) DeviceOption {
	return func(uc *DeviceUseCase) { uc.newCode = gen }
}

// NewDeviceUseCase construye el caso de uso.
func NewDeviceUseCase(repo repository.DeviceRepository, tokens TokenIssuer, log zerolog.Logger, opts ...DeviceOption) *DeviceUseCase {
	uc := &DeviceUseCase{
		repo:    repo,
		tokens:  tokens,
		log:     log.With().Str("component", "devices").Logger(),
		now:     time.Now,
		newCode: RandomCode,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Authenticate valida el código, activa el dispositivo en su primer uso y emite el token.
func (uc *DeviceUseCase) Authenticate(ctx context.Context, in dto.DeviceAuthRequest) (*dto.AuthResponse, error) {
	if len([]rune(strings.TrimSpace(in.DeviceCode))) < minDeviceCodeLength {
		return nil, domain.ErrInvalidDeviceCode
	}

	var (
		device    *entity.Device
		activated bool
		err       error
	)
	for attempt := 0; ; attempt++ {
		device, err = uc.repo.GetByCode(ctx, in.DeviceCode)
		if err != nil {
			return nil, fmt.Errorf("buscar dispositivo: %w", err)
		}
		if device == nil {
			uc.log.Warn().Str("device_code", in.DeviceCode).Msg("código no registrado")
			return nil, domain.ErrDeviceNotRegistered
		}
		switch device.Status {
		case entity.DeviceDisabled:
			uc.log.Warn().Str("device_id", device.ID).Msg("autenticación de dispositivo deshabilitado")
			return nil, domain.ErrDeviceDisabled
		case entity.DeviceDeleted:
			uc.log.Warn().Str("device_id", device.ID).Msg("autenticación de dispositivo eliminado")
			return nil, domain.ErrDeviceDeleted
		}

		from := device.Status
		activated = device.Touch(uc.now().UTC())
		err = uc.repo.Update(ctx, device, from)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrDeviceStateChanged) || attempt+1 >= maxUpdateAttempts {
			return nil, fmt.Errorf("actualizar dispositivo: %w", err)
		}
		uc.log.Debug().Str("device_id", device.ID).Msg("estado cambiado durante la autenticación, releyendo")
	}
	if activated {
		uc.log.Info().Str("device_id", device.ID).Str("device_code", device.Code).Msg("dispositivo activado")
	}

	token, expiresAt, err := uc.tokens.IssueDeviceToken(device.ID)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("device_id", device.ID).Msg("dispositivo autenticado")
	return &dto.AuthResponse{Success: true, Token: token, ExpiresAt: expiresAt}, nil
}

// GenerateAuthCode crea un dispositivo Inactive con un código nuevo, nunca usado antes.
func (uc *DeviceUseCase) GenerateAuthCode(ctx context.Context, in dto.GenerateAuthCodeRequest) (*dto.GenerateAuthCodeResponse, error) {
	name := strings.TrimSpace(in.DeviceName)
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := uc.newCode()
		if err != nil {
			return nil, err
		}
		taken, err := uc.repo.CodeExists(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("verificar código: %w", err)
		}
		if taken {
			continue
		}

		now := uc.now().UTC()
		device := &entity.Device{
			ID:        uuid.New().String(),
			Code:      code,
			Name:      name,
			Status:    entity.DeviceInactive,
			LastSeen:  now,
			CreatedAt: now,
		}
		if err := uc.repo.Create(ctx, device); err != nil {
			// Otro alta concurrente tomó el mismo código entre la verificación y el insert.
			if errors.Is(err, domain.ErrConflict) {
				continue
			}
			return nil, fmt.Errorf("crear dispositivo: %w", err)
		}
		uc.log.Info().Str("device_id", device.ID).Str("device_name", name).Msg("código de emparejamiento generado")
		return &dto.GenerateAuthCodeResponse{Success: true, AuthCode: code, DeviceID: device.ID}, nil
	}
	uc.log.Error().Int("attempts", maxCodeAttempts).Msg("sin códigos libres")
	return nil, domain.ErrDeviceCodeExhausted
}

// List devuelve los dispositivos por last_seen descendente con is_active calculado ahora.
func (uc *DeviceUseCase) List(ctx context.Context, includeDeleted bool) (*dto.DeviceListResponse, error) {
	devices, err := uc.repo.List(ctx, includeDeleted)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	out := make([]dto.DeviceSummary, 0, len(devices))
	for _, d := range devices {
		out = append(out, toDeviceSummary(d, now))
	}
	return &dto.DeviceListResponse{Devices: out, TotalCount: len(out)}, nil
}

// Disable Active -> Disabled.
func (uc *DeviceUseCase) Disable(ctx context.Context, id string) (*dto.DeviceStatusResponse, error) {
	return uc.transition(ctx, id, "deshabilitado", (*entity.Device).Disable)
}

// Enable Disabled/Inactive -> Active.
func (uc *DeviceUseCase) Enable(ctx context.Context, id string) (*dto.DeviceStatusResponse, error) {
	return uc.transition(ctx, id, "habilitado", (*entity.Device).Enable)
}

// Delete borrado lógico; el código queda reservado.
func (uc *DeviceUseCase) Delete(ctx context.Context, id string) (*dto.DeviceStatusResponse, error) {
	return uc.transition(ctx, id, "eliminado", (*entity.Device).Delete)
}

func (uc *DeviceUseCase) transition(ctx context.Context, id, action string, apply func(*entity.Device, time.Time) error) (*dto.DeviceStatusResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrDeviceNotFound
	}
	var (
		device *entity.Device
		from   entity.DeviceStatus
		err    error
	)
	for attempt := 0; ; attempt++ {
		device, err = uc.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if device == nil {
			return nil, domain.ErrDeviceNotFound
		}
		from = device.Status
		if err := apply(device, uc.now().UTC()); err != nil {
			return nil, err
		}
		err = uc.repo.Update(ctx, device, from)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrDeviceStateChanged) || attempt+1 >= maxUpdateAttempts {
			return nil, fmt.Errorf("actualizar dispositivo: %w", err)
		}
	}
	uc.log.Info().
		Str("device_id", device.ID).
		Str("from", string(from)).
		Str("to", string(device.Status)).
		Msg("dispositivo " + action)
	return &dto.DeviceStatusResponse{Success: true, DeviceID: device.ID, Status: string(device.Status)}, nil
}

func toDeviceSummary(d *entity.Device, now time.Time) dto.DeviceSummary {
	return dto.DeviceSummary{
		ID:          d.ID,
		DeviceCode:  d.Code,
		DeviceName:  d.Name,
		Status:      string(d.Status),
		IsActive:    d.RecentlySeen(now),
		LastSeen:    d.LastSeen,
		CreatedAt:   d.CreatedAt,
		ActivatedAt: d.ActivatedAt,
		DisabledAt:  d.DisabledAt,
		DeletedAt:   d.DeletedAt,
	}
}
