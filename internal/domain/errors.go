package domain

import "errors"

// Tipos de error de dominio (sin dependencias externas).
// La capa HTTP los traduce a códigos de estado: 400, 401, 403, 404, 409 y 500.
var (
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrUnavailable  = errors.New("servicio no disponible")
)

// Error es un error de dominio tipado: Kind es uno de los sentinelas de arriba,
// Code es un identificador estable para clientes y Message el texto por defecto.
type Error struct {
	Kind    error
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

// Unwrap permite errors.Is(err, domain.ErrUnauthorized).
func (e *Error) Unwrap() error { return e.Kind }

// NewError construye un error de dominio.
func NewError(kind error, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Errores concretos usados por los casos de uso.
var (
	ErrInvalidDeviceCode   = NewError(ErrInvalidInput, "INVALID_DEVICE_CODE", "código de dispositivo inválido")
	ErrDeviceNotRegistered = NewError(ErrUnauthorized, "DEVICE_NOT_REGISTERED", "dispositivo no registrado, contacte al administrador")
	ErrDeviceDisabled      = NewError(ErrUnauthorized, "DEVICE_DISABLED", "dispositivo deshabilitado, contacte al administrador")
	ErrDeviceDeleted       = NewError(ErrUnauthorized, "DEVICE_DELETED", "dispositivo eliminado")
	ErrDeviceNotFound      = NewError(ErrNotFound, "DEVICE_NOT_FOUND", "dispositivo no encontrado")
	ErrDeviceInvalidStatus = NewError(ErrConflict, "DEVICE_INVALID_TRANSITION", "transición de estado no permitida")
	ErrDeviceStateChanged  = NewError(ErrConflict, "DEVICE_STATE_CHANGED", "el estado del dispositivo cambió, intente de nuevo")
	ErrDeviceCodeExhausted = NewError(ErrUnavailable, "DEVICE_CODE_EXHAUSTED", "no se pudo generar un código único")
	ErrDeviceRevoked       = NewError(ErrUnauthorized, "DEVICE_REVOKED", "el dispositivo ya no tiene acceso")
	ErrCredentialsRequired = NewError(ErrInvalidInput, "CREDENTIALS_REQUIRED", "cuenta y contraseña son requeridas")
	ErrInvalidCredentials  = NewError(ErrUnauthorized, "INVALID_CREDENTIALS", "cuenta o contraseña incorrecta")
	ErrUserFieldsRequired  = NewError(ErrInvalidInput, "USER_FIELDS_REQUIRED", "cuenta, contraseña y rol son requeridos")
	ErrInvalidRole         = NewError(ErrInvalidInput, "INVALID_ROLE", "rol inválido")
	ErrAccountTaken        = NewError(ErrConflict, "ACCOUNT_EXISTS", "la cuenta ya existe")
	ErrUserNotFound        = NewError(ErrNotFound, "USER_NOT_FOUND", "usuario no encontrado")
	ErrMenuNotFound        = NewError(ErrNotFound, "MENU_NOT_FOUND", "menú no encontrado")
	ErrMenuNoCategories    = NewError(ErrInvalidInput, "MENU_NO_CATEGORIES", "se requiere al menos una categoría")
	ErrMenuCategoryName    = NewError(ErrInvalidInput, "MENU_CATEGORY_NAME", "el nombre de la categoría no puede estar vacío")
	ErrMenuItemName        = NewError(ErrInvalidInput, "MENU_ITEM_NAME", "el nombre del producto no puede estar vacío")
	ErrMenuItemPrice       = NewError(ErrInvalidInput, "MENU_ITEM_PRICE", "el precio debe ser mayor que 0")
	ErrMenuVersionConflict = NewError(ErrConflict, "MENU_VERSION_CONFLICT", "otra versión del menú se publicó al mismo tiempo")
	ErrOrderNotFound       = NewError(ErrNotFound, "ORDER_NOT_FOUND", "pedido no encontrado")
	ErrOrderDuplicate      = NewError(ErrConflict, "ORDER_DUPLICATE", "el pedido ya existe")
	ErrOrderInvalidID      = NewError(ErrInvalidInput, "ORDER_INVALID_ID", "order_id requerido (máximo 20 caracteres)")
	ErrInvalidDateRange    = NewError(ErrInvalidInput, "INVALID_DATE_RANGE", "rango de fechas inválido")
	ErrInvalidPage         = NewError(ErrInvalidInput, "INVALID_PAGE", "página fuera de rango")
)

// CodeOf devuelve el código estable de un error de dominio, o "" si no lo es.
func CodeOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
