package entity

import (
	"time"

	"github.com/jhoicas/whiteslip-api/internal/domain"
)

// DeviceStatus estado del ciclo de vida de un terminal.
//
//	Inactive -> Active <-> Disabled
//	{Inactive, Active, Disabled} -> Deleted (terminal)
type DeviceStatus string

const (
	DeviceInactive DeviceStatus = "Inactive"
	DeviceActive   DeviceStatus = "Active"
	DeviceDisabled DeviceStatus = "Disabled"
	DeviceDeleted  DeviceStatus = "Deleted"
)

// ActivityWindow ventana en la que un dispositivo se considera en uso (is_active).
const ActivityWindow = 24 * time.Hour

// Device representa un terminal físico autorizado a pedir menú y enviar pedidos.
type Device struct {
	ID          string
	Code        string
	Name        string
	Status      DeviceStatus
	LastSeen    time.Time
	CreatedAt   time.Time
	ActivatedAt *time.Time
	DisabledAt  *time.Time
	DeletedAt   *time.Time
}

// Blocked indica si el dispositivo no puede autenticarse ni usar la API.
func (d *Device) Blocked() bool {
	return d.Status == DeviceDisabled || d.Status == DeviceDeleted
}

// RecentlySeen calcula is_active al momento de lectura; no depende de Status.
func (d *Device) RecentlySeen(now time.Time) bool {
	return d.LastSeen.After(now.Add(-ActivityWindow))
}

// Touch registra una autenticación exitosa. La primera autenticación de un
// dispositivo Inactive lo activa. Devuelve true si hubo activación.
func (d *Device) Touch(now time.Time) bool {
	d.LastSeen = now
	if d.Status != DeviceInactive {
		return false
	}
	d.Status = DeviceActive
	d.ActivatedAt = &now
	return true
}

// Disable pasa Active -> Disabled. Repetirlo sobre un Disabled no cambia nada.
func (d *Device) Disable(now time.Time) error {
	switch d.Status {
	case DeviceActive:
		d.Status = DeviceDisabled
		d.DisabledAt = &now
		return nil
	case DeviceDisabled:
		return nil
	default:
		return domain.ErrDeviceInvalidStatus
	}
}

// Enable pasa Disabled (o Inactive) -> Active y limpia disabled_at.
func (d *Device) Enable(now time.Time) error {
	switch d.Status {
	case DeviceDisabled, DeviceInactive:
		d.Status = DeviceActive
		d.ActivatedAt = &now
		d.DisabledAt = nil
		return nil
	case DeviceActive:
		return nil
	default:
		return domain.ErrDeviceInvalidStatus
	}
}

// Delete es el borrado lógico; Deleted no tiene transiciones de salida.
func (d *Device) Delete(now time.Time) error {
	if d.Status == DeviceDeleted {
		return domain.ErrDeviceInvalidStatus
	}
	d.Status = DeviceDeleted
	d.DeletedAt = &now
	return nil
}
