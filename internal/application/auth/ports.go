package auth

import (
	"time"

	"github.com/jhoicas/whiteslip-api/pkg/jwt"
)

// TokenIssuer emite tokens firmados; lo implementa *jwt.Issuer.
type TokenIssuer interface {
	IssueDeviceToken(deviceID string) (string, time.Time, error)
	IssueUserToken(userID, role string) (string, time.Time, error)
}

var _ TokenIssuer = (*jwt.Issuer)(nil)

// CodeGenerator produce códigos de emparejamiento candidatos.
type CodeGenerator func() (string, error)
