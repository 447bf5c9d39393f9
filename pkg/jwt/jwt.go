package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DeviceRole es el rol fijo que llevan los tokens de dispositivo.
const DeviceRole = "Device"

// TokenTTL vigencia fija de todos los tokens (dispositivos y usuarios); no es configurable.
const TokenTTL = 20 * time.Hour

// ErrInvalidToken es el único error de Verify: no se distingue la causa
// (malformado, firma, issuer, audience, expirado o algoritmo).
var ErrInvalidToken = errors.New("jwt: token inválido")

// Config parámetros de firma, cargados una vez al arrancar el proceso.
type Config struct {
	Secret   string
	Issuer   string
	Audience string
}

// Claims incluye los claims estándar más el rol.
// sub = id del dispositivo o del usuario; role = "Device" o el rol del usuario.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// PrincipalKind distingue los dos tipos de identidad que viajan en el mismo formato de token.
type PrincipalKind int

const (
	PrincipalDevice PrincipalKind = iota + 1
	PrincipalUser
)

// Principal identidad autenticada de la petición, decodificada una sola vez tras verificar la firma.
// Role solo tiene sentido para PrincipalUser.
type Principal struct {
	Kind PrincipalKind
	ID   string
	Role string
}

// IsDevice indica si el token fue emitido a un dispositivo.
func (p Principal) IsDevice() bool { return p.Kind == PrincipalDevice }

// Issuer emite y verifica tokens HS256.
type Issuer struct {
	cfg Config
	now func() time.Time
}

// Option configura el Issuer.
type Option func(*Issuer)

// WithClock reemplaza el reloj (útil en tests).
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) { i.now = now }
}

// NewIssuer valida la configuración y construye el emisor.
func NewIssuer(cfg Config, opts ...Option) (*Issuer, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	if cfg.Issuer == "" || cfg.Audience == "" {
		return nil, fmt.Errorf("jwt: issuer y audience son requeridos")
	}
	i := &Issuer{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// IssueDeviceToken firma un token con sub = deviceID y role = "Device".
func (i *Issuer) IssueDeviceToken(deviceID string) (string, time.Time, error) {
	return i.sign(deviceID, DeviceRole)
}

// IssueUserToken firma un token con sub = userID y el rol del usuario.
func (i *Issuer) IssueUserToken(userID, role string) (string, time.Time, error) {
	return i.sign(userID, role)
}

func (i *Issuer) sign(subject, role string) (string, time.Time, error) {
	now := i.now()
	exp := now.Add(TokenTTL)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.cfg.Issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings{i.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Role: role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(i.cfg.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwt: firmar token: %w", err)
	}
	return signed, exp, nil
}

// Verify valida firma, algoritmo, issuer, audience y expiración sin tolerancia de reloj.
func (i *Issuer) Verify(tokenString string) (Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(i.cfg.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.cfg.Issuer),
		jwt.WithAudience(i.cfg.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(0),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return Principal{}, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return Principal{}, ErrInvalidToken
	}
	if claims.Role == DeviceRole {
		return Principal{Kind: PrincipalDevice, ID: claims.Subject, Role: DeviceRole}, nil
	}
	return Principal{Kind: PrincipalUser, ID: claims.Subject, Role: claims.Role}, nil
}
