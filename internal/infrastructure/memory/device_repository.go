// Package memory implementa los puertos de repositorio en memoria.
// Lo usan las pruebas de casos de uso y de HTTP; no persiste nada.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/whiteslip-api/internal/domain"
	"github.com/jhoicas/whiteslip-api/internal/domain/entity"
	"github.com/jhoicas/whiteslip-api/internal/domain/repository"
)

var _ repository.DeviceRepository = (*DeviceRepo)(nil)

// DeviceRepo guarda copias de los dispositivos indexadas por ID.
type DeviceRepo struct {
	mu     sync.Mutex
	byID   map[string]entity.Device
	calls  int
	GetErr error // si no es nil, GetByID lo devuelve
}

// NewDeviceRepo construye el repositorio vacío.
func NewDeviceRepo() *DeviceRepo {
	return &DeviceRepo{byID: map[string]entity.Device{}}
}

// Calls cantidad de operaciones recibidas.
func (r *DeviceRepo) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func (r *DeviceRepo) Create(_ context.Context, d *entity.Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	for _, existing := range r.byID {
		if existing.Code == d.Code {
			return fmt.Errorf("device_code %q: %w", d.Code, domain.ErrConflict)
		}
	}
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	r.byID[d.ID] = *d
	return nil
}

func (r *DeviceRepo) GetByID(_ context.Context, id string) (*entity.Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	d, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *DeviceRepo) GetByCode(_ context.Context, code string) (*entity.Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	for _, d := range r.byID {
		if d.Code == code {
			return &d, nil
		}
	}
	return nil, nil
}

func (r *DeviceRepo) CodeExists(_ context.Context, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	for _, d := range r.byID {
		if d.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *DeviceRepo) List(_ context.Context, includeDeleted bool) ([]*entity.Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	var list []*entity.Device
	for _, d := range r.byID {
		if !includeDeleted && d.Status == entity.DeviceDeleted {
			continue
		}
		d := d
		list = append(list, &d)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].LastSeen.Equal(list[j].LastSeen) {
			return list[i].Code < list[j].Code
		}
		return list[i].LastSeen.After(list[j].LastSeen)
	})
	return list, nil
}

func (r *DeviceRepo) Update(_ context.Context, d *entity.Device, from entity.DeviceStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	stored, ok := r.byID[d.ID]
	if !ok {
		return domain.ErrDeviceNotFound
	}
	if stored.Status != from {
		return domain.ErrDeviceStateChanged
	}
	r.byID[d.ID] = *d
	return nil
}

func (r *DeviceRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return len(r.byID), nil
}
