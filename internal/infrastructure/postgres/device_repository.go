package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/whiteslip-api/internal/domain"
	"github.com/jhoicas/whiteslip-api/internal/domain/entity"
	"github.com/jhoicas/whiteslip-api/internal/domain/repository"
)

var _ repository.DeviceRepository = (*DeviceRepo)(nil)

const deviceColumns = `id, device_code, device_name, status, last_seen, created_at, activated_at, disabled_at, deleted_at`

// DeviceRepo implementación de DeviceRepository (usable con pool o tx).
type DeviceRepo struct {
	q Querier
}

// NewDeviceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDeviceRepository(q Querier) *DeviceRepo {
	return &DeviceRepo{q: q}
}

// Create persiste un dispositivo nuevo.
func (r *DeviceRepo) Create(ctx context.Context, d *entity.Device) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	query := `
		INSERT INTO devices (` + deviceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.Code, nullIfEmpty(d.Name), string(d.Status), d.LastSeen, d.CreatedAt,
		d.ActivatedAt, d.DisabledAt, d.DeletedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("device_code %q: %w", d.Code, domain.ErrConflict)
		}
		return fmt.Errorf("insert device: %w", err)
	}
	return nil
}

// GetByID obtiene un dispositivo por ID, sin filtrar por estado.
func (r *DeviceRepo) GetByID(ctx context.Context, id string) (*entity.Device, error) {
	return r.getOne(ctx, `SELECT `+deviceColumns+` FROM devices WHERE id = $1`, id)
}

// GetByCode obtiene un dispositivo por su código (coincidencia exacta).
func (r *DeviceRepo) GetByCode(ctx context.Context, code string) (*entity.Device, error) {
	return r.getOne(ctx, `SELECT `+deviceColumns+` FROM devices WHERE device_code = $1`, code)
}

func (r *DeviceRepo) getOne(ctx context.Context, query string, arg any) (*entity.Device, error) {
	d, err := scanDevice(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get device: %w", err)
	}
	return d, nil
}

// CodeExists indica si el código ya fue usado alguna vez.
func (r *DeviceRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM devices WHERE device_code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("device code exists: %w", err)
	}
	return exists, nil
}

// List devuelve los dispositivos por last_seen descendente.
func (r *DeviceRepo) List(ctx context.Context, includeDeleted bool) ([]*entity.Device, error) {
	query := `SELECT ` + deviceColumns + ` FROM devices`
	if !includeDeleted {
		query += ` WHERE status <> 'Deleted'`
	}
	query += ` ORDER BY last_seen DESC, device_code`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	defer rows.Close()

	var list []*entity.Device
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan device: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// Update persiste estado, last_seen y marcas de tiempo si el estado en la base sigue siendo from.
// Las filas de devices nunca se borran, así que 0 filas afectadas significa que el estado cambió.
func (r *DeviceRepo) Update(ctx context.Context, d *entity.Device, from entity.DeviceStatus) error {
	query := `
		UPDATE devices
		SET device_name = $2, status = $3, last_seen = $4,
		    activated_at = $5, disabled_at = $6, deleted_at = $7
		WHERE id = $1 AND status = $8`
	tag, err := r.q.Exec(ctx, query,
		d.ID, nullIfEmpty(d.Name), string(d.Status), d.LastSeen,
		d.ActivatedAt, d.DisabledAt, d.DeletedAt, string(from),
	)
	if err != nil {
		return fmt.Errorf("update device: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDeviceStateChanged
	}
	return nil
}

// Count total de dispositivos, incluidos los eliminados.
func (r *DeviceRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM devices`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count devices: %w", err)
	}
	return n, nil
}

func scanDevice(row pgx.Row) (*entity.Device, error) {
	var (
		d      entity.Device
		name   *string
		status string
	)
	err := row.Scan(&d.ID, &d.Code, &name, &status, &d.LastSeen, &d.CreatedAt,
		&d.ActivatedAt, &d.DisabledAt, &d.DeletedAt)
	if err != nil {
		return nil, err
	}
	d.Name = derefStr(name)
	d.Status = entity.DeviceStatus(status)
	return &d, nil
}
