package i18n

type text struct {
	es, en, zh string
}

// messages catálogo por código. Los códigos de error de dominio coinciden con domain.Error.Code.
var messages = map[string]text{
	// Dispositivos
	"INVALID_DEVICE_CODE":       {"código de dispositivo inválido", "invalid device code", "無效的裝置代碼"},
	"DEVICE_NOT_REGISTERED":     {"dispositivo no registrado, contacte al administrador", "device not registered, contact the administrator", "裝置未註冊，請聯繫管理員"},
	"DEVICE_DISABLED":           {"dispositivo deshabilitado, contacte al administrador", "device disabled, contact the administrator", "裝置已被停用，請聯繫管理員"},
	"DEVICE_DELETED":            {"dispositivo eliminado", "device deleted", "裝置已被刪除"},
	"DEVICE_NOT_FOUND":          {"dispositivo no encontrado", "device not found", "裝置不存在"},
	"DEVICE_STATE_CHANGED":      {"el estado del dispositivo cambió, intente de nuevo", "device status changed, try again", "裝置狀態已變更，請重試"},
	"DEVICE_INVALID_TRANSITION": {"transición de estado no permitida", "state transition not allowed", "不允許的狀態轉換"},
	"DEVICE_CODE_EXHAUSTED":     {"no se pudo generar un código único", "could not generate a unique code", "無法產生唯一授權碼"},
	"DEVICE_REVOKED":            {"el dispositivo ya no tiene acceso", "device access revoked", "裝置已無存取權限"},
	"AUTH_OK":                   {"autenticación exitosa", "authentication succeeded", "認證成功"},
	"AUTH_CODE_OK":              {"código de autorización generado", "authorization code generated", "授權碼生成成功"},
	"DEVICE_DISABLED_OK":        {"dispositivo deshabilitado", "device disabled", "裝置停用成功"},
	"DEVICE_ENABLED_OK":         {"dispositivo habilitado", "device enabled", "裝置啟用成功"},
	"DEVICE_DELETED_OK":         {"dispositivo eliminado", "device deleted", "裝置刪除成功"},

	// Usuarios
	"CREDENTIALS_REQUIRED": {"cuenta y contraseña son requeridas", "account and password are required", "帳號或密碼不得為空"},
	"INVALID_CREDENTIALS":  {"cuenta o contraseña incorrecta", "account or password incorrect", "帳號或密碼錯誤"},
	"USER_FIELDS_REQUIRED": {"cuenta, contraseña y rol son requeridos", "account, password and role are required", "帳號、密碼、角色皆必填"},
	"INVALID_ROLE":         {"rol inválido", "invalid role", "無效的角色"},
	"ACCOUNT_EXISTS":       {"la cuenta ya existe", "account already exists", "帳號已存在"},
	"USER_NOT_FOUND":       {"usuario no encontrado", "user not found", "使用者不存在"},
	"LOGIN_OK":             {"inicio de sesión exitoso", "login succeeded", "登入成功"},
	"USER_CREATED":         {"usuario creado", "user created", "建立成功"},
	"USER_UPDATED":         {"usuario actualizado", "user updated", "更新成功"},
	"USER_DELETED":         {"usuario eliminado", "user deleted", "刪除成功"},

	// Menú
	"MENU_NOT_FOUND":        {"menú no encontrado", "menu not found", "菜單不存在"},
	"MENU_NO_CATEGORIES":    {"se requiere al menos una categoría", "at least one category is required", "至少需要一個分類"},
	"MENU_CATEGORY_NAME":    {"el nombre de la categoría no puede estar vacío", "category name cannot be empty", "分類名稱不能為空"},
	"MENU_ITEM_NAME":        {"el nombre del producto no puede estar vacío", "item name cannot be empty", "項目名稱不能為空"},
	"MENU_ITEM_PRICE":       {"el precio debe ser mayor que 0", "price must be greater than 0", "價格必須大於 0"},
	"MENU_VERSION_CONFLICT": {"otra versión del menú se publicó al mismo tiempo", "another menu version was published concurrently", "菜單版本衝突，請重試"},
	"MENU_PUBLISHED":        {"menú publicado", "menu published", "菜單建立成功"},

	// Pedidos
	"ORDER_NOT_FOUND":    {"pedido no encontrado", "order not found", "訂單不存在"},
	"ORDER_DUPLICATE":    {"el pedido ya existe", "order already exists", "訂單已存在"},
	"ORDER_INVALID_ID":   {"order_id requerido (máximo 20 caracteres)", "order_id required (max 20 characters)", "訂單編號必填（最多 20 字元）"},
	"ORDER_CREATED":      {"pedido creado", "order created", "訂單創建成功"},
	"ORDER_FAILED":       {"error al procesar el pedido", "order processing failed", "處理失敗"},
	"REPRINT_OK":         {"reimpresión registrada", "reprint recorded", "重新列印成功"},
	"INVALID_DATE_RANGE": {"rango de fechas inválido", "invalid date range", "日期範圍無效"},
	"INVALID_PAGE":       {"página fuera de rango", "page out of range", "頁碼超出範圍"},

	// Transporte HTTP
	"INVALID_BODY":  {"cuerpo inválido", "invalid request body", "請求內容無效"},
	"INVALID_PARAM": {"parámetro inválido", "invalid parameter", "參數無效"},
	"MISSING_TOKEN": {"Authorization header requerido", "Authorization header required", "缺少授權標頭"},
	"INVALID_TOKEN": {"token inválido o expirado", "invalid or expired token", "權杖無效或已過期"},
	"MISSING_ROLE":  {"el token no contiene rol", "token has no role", "權杖缺少角色"},
	"FORBIDDEN":     {"permisos insuficientes", "insufficient permissions", "權限不足"},
	"RATE_LIMITED":  {"demasiadas peticiones, intente más tarde", "too many requests, try again later", "請求過於頻繁，請稍後再試"},
	"INTERNAL":      {"servicio temporalmente no disponible", "service temporarily unavailable", "服務暫時不可用"},
}
