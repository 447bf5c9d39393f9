package repository

import (
	"context"

	"github.com/jhoicas/whiteslip-api/internal/domain/entity"
)

// DeviceRepository define el puerto de persistencia para Device.
// Los métodos Get* devuelven (nil, nil) si no existe la fila.
type DeviceRepository interface {
	// Create devuelve domain.ErrConflict si device_code ya existe (incluidos los eliminados).
	Create(ctx context.Context, device *entity.Device) error
	GetByID(ctx context.Context, id string) (*entity.Device, error)
	GetByCode(ctx context.Context, code string) (*entity.Device, error)
	// CodeExists considera todos los dispositivos, también los eliminados.
	CodeExists(ctx context.Context, code string) (bool, error)
	// List ordena por last_seen descendente.
	List(ctx context.Context, includeDeleted bool) ([]*entity.Device, error)
	// Update escribe el dispositivo solo si su estado almacenado sigue siendo from;
	// si otro escritor lo cambió devuelve domain.ErrDeviceStateChanged.
	Update(ctx context.Context, device *entity.Device, from entity.DeviceStatus) error
	Count(ctx context.Context) (int, error)
}
