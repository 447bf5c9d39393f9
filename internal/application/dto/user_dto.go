package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Account  string `json:"account"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateUserRequest actualización parcial: solo cambian los campos presentes.
type UpdateUserRequest struct {
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
}

// UserResponse salida de un usuario (sin digest).
type UserResponse struct {
	ID        string    `json:"id"`
	Account   string    `json:"account"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// UserMutationResponse resultado de crear/actualizar/eliminar.
type UserMutationResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	User    *UserResponse `json:"user,omitempty"`
}
