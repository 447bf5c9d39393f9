package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// MinSecretLength longitud mínima del secreto HMAC (HS256 usa claves de 256 bits).
const MinSecretLength = 32

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
// Se carga una sola vez al arrancar; no hay recarga en caliente.
type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	HTTP      HTTPConfig
	RateLimit RateLimitConfig
	Seed      SeedConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env        string // development, staging, production
	Name       string
	LogLevel   string
	BcryptCost int
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig firma de tokens de dispositivos y usuarios.
// La vigencia de los tokens es fija (jwt.TokenTTL).
type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host          string
	Port          int
	CORSOrigins   string
	SwaggerEnable bool
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RateLimitConfig límite de peticiones a /auth, en formato ulule ("20-M", "5-S").
type RateLimitConfig struct {
	Auth string
}

// SeedConfig datos iniciales creados al arrancar si la base está vacía.
type SeedConfig struct {
	AdminAccount  string
	AdminPassword string
	TestDevice    string // vacío = no crear dispositivo de prueba
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:        getString(v, "APP_ENV", "development"),
			Name:       getString(v, "APP_NAME", "whiteslip-api"),
			LogLevel:   getString(v, "LOG_LEVEL", "info"),
			BcryptCost: getInt(v, "BCRYPT_COST", 10),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "whiteslip"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:   getString(v, "JWT_SECRET", ""),
			Issuer:   getString(v, "JWT_ISSUER", "white-slip-api"),
			Audience: getString(v, "JWT_AUDIENCE", "white-slip-app"),
		},
		HTTP: HTTPConfig{
			Host:          getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:          getInt(v, "HTTP_PORT", 8080),
			CORSOrigins:   getString(v, "HTTP_CORS_ORIGINS", "*"),
			SwaggerEnable: getBool(v, "HTTP_SWAGGER", false),
		},
		RateLimit: RateLimitConfig{
			Auth: getString(v, "AUTH_RATE_LIMIT", "20-M"),
		},
		Seed: SeedConfig{
			AdminAccount:  getString(v, "SEED_ADMIN_ACCOUNT", "admin"),
			AdminPassword: getString(v, "SEED_ADMIN_PASSWORD", "admin123"),
			TestDevice:    getString(v, "SEED_TEST_DEVICE", "TEST123"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate verifica los valores obligatorios al arrancar.
func (c *Config) Validate() error {
	var errs []error
	if len(c.JWT.Secret) < MinSecretLength {
		errs = append(errs, fmt.Errorf("JWT_SECRET debe tener al menos %d caracteres", MinSecretLength))
	}
	if c.JWT.Issuer == "" {
		errs = append(errs, errors.New("JWT_ISSUER es requerido"))
	}
	if c.JWT.Audience == "" {
		errs = append(errs, errors.New("JWT_AUDIENCE es requerido"))
	}
	if c.DB.DatabaseURL == "" && (c.DB.Host == "" || c.DB.DBName == "") {
		errs = append(errs, errors.New("DATABASE_URL o DB_HOST/DB_NAME son requeridos"))
	}
	return errors.Join(errs...)
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
