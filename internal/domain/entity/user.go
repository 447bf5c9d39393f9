package entity

import (
	"strings"
	"time"
)

// Role es el rol de un usuario del personal. Orden total: Admin > Manager > Staff.
type Role string

// Roles válidos para User.
const (
	RoleAdmin   Role = "Admin"
	RoleManager Role = "Manager"
	RoleStaff   Role = "Staff"
)

// RoleDevice no es un rol de usuario: marca los tokens emitidos a dispositivos.
const RoleDevice = "Device"

func (r Role) rank() int {
	switch r {
	case RoleAdmin:
		return 3
	case RoleManager:
		return 2
	case RoleStaff:
		return 1
	default:
		return 0
	}
}

// Valid indica si el rol pertenece al conjunto cerrado.
func (r Role) Valid() bool { return r.rank() > 0 }

// AtLeast indica si r tiene el mismo nivel o superior que min.
// Un rol inválido nunca satisface la comparación.
func (r Role) AtLeast(min Role) bool {
	return r.Valid() && r.rank() >= min.rank()
}

// ParseRole normaliza un rol recibido como texto ("admin", "Admin", " MANAGER ").
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, true
	case "manager":
		return RoleManager, true
	case "staff":
		return RoleStaff, true
	}
	return "", false
}

// User representa una cuenta del personal. No tiene borrado lógico.
type User struct {
	ID             string
	Account        string
	PasswordDigest string // nunca la contraseña en claro
	Role           Role
	CreatedAt      time.Time
}
