package dto

import "time"

// DeviceAuthRequest autenticación de un terminal por su código.
type DeviceAuthRequest struct {
	DeviceCode string `json:"device_code"`
}

// AuthResponse token emitido a un dispositivo o a un usuario. Role solo para usuarios.
type AuthResponse struct {
	Success   bool      `json:"success"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Role      string    `json:"role,omitempty"`
	Message   string    `json:"message,omitempty"`
}

// UserLoginRequest credenciales de personal.
type UserLoginRequest struct {
	Account  string `json:"account"`
	Password string `json:"password"`
}

// GenerateAuthCodeRequest alta de un dispositivo nuevo.
type GenerateAuthCodeRequest struct {
	DeviceName string `json:"device_name"`
}

// GenerateAuthCodeResponse código de emparejamiento para entregar fuera de banda.
type GenerateAuthCodeResponse struct {
	Success  bool   `json:"success"`
	AuthCode string `json:"auth_code"`
	DeviceID string `json:"device_id"`
	Message  string `json:"message,omitempty"`
}

// DeviceSummary vista de un dispositivo en el listado de administración.
type DeviceSummary struct {
	ID          string     `json:"id"`
	DeviceCode  string     `json:"device_code"`
	DeviceName  string     `json:"device_name,omitempty"`
	Status      string     `json:"status"`
	IsActive    bool       `json:"is_active"`
	LastSeen    time.Time  `json:"last_seen"`
	CreatedAt   time.Time  `json:"created_at"`
	ActivatedAt *time.Time `json:"activated_at"`
	DisabledAt  *time.Time `json:"disabled_at"`
	DeletedAt   *time.Time `json:"deleted_at"`
}

// DeviceListResponse listado de dispositivos.
type DeviceListResponse struct {
	Devices    []DeviceSummary `json:"devices"`
	TotalCount int             `json:"total_count"`
}

// DeviceStatusResponse resultado de disable/enable/delete.
type DeviceStatusResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	DeviceID string `json:"device_id"`
	Status   string `json:"status"`
}
