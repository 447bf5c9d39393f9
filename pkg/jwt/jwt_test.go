package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/whiteslip-api/pkg/jwt"
)

const (
	testSecret   = "test-secret-key-for-unit-tests-32b!"
	testIssuer   = "white-slip-api-test"
	testAudience = "white-slip-app-test"
	testDeviceID = "00000000-0000-0000-0000-0000000000d1"
	testUserID   = "00000000-0000-0000-0000-0000000000a1"
)

var t0 = time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func newIssuer(t *testing.T, now time.Time) *pkgjwt.Issuer {
	t.Helper()
	iss, err := pkgjwt.NewIssuer(pkgjwt.Config{
		Secret:   testSecret,
		Issuer:   testIssuer,
		Audience: testAudience,
	}, pkgjwt.WithClock(fixedClock(now)))
	require.NoError(t, err)
	return iss
}

func TestIssueDeviceToken_VerifyDevuelvePrincipalDispositivo(t *testing.T) {
	iss := newIssuer(t, t0)

	tok, exp, err := iss.IssueDeviceToken(testDeviceID)
	require.NoError(t, err)
	assert.Equal(t, t0.Add(20*time.Hour), exp, "la vigencia es de 20 horas")

	p, err := iss.Verify(tok)
	require.NoError(t, err)
	assert.True(t, p.IsDevice())
	assert.Equal(t, pkgjwt.PrincipalDevice, p.Kind)
	assert.Equal(t, testDeviceID, p.ID)
	assert.Equal(t, pkgjwt.DeviceRole, p.Role)
}

func TestIssueUserToken_VerifyDevuelveRol(t *testing.T) {
	iss := newIssuer(t, t0)

	tok, exp, err := iss.IssueUserToken(testUserID, "Manager")
	require.NoError(t, err)
	assert.Equal(t, t0.Add(pkgjwt.TokenTTL), exp, "misma vigencia que los dispositivos")

	p, err := iss.Verify(tok)
	require.NoError(t, err)
	assert.False(t, p.IsDevice())
	assert.Equal(t, pkgjwt.PrincipalUser, p.Kind)
	assert.Equal(t, testUserID, p.ID)
	assert.Equal(t, "Manager", p.Role)
}

func TestVerify_SinToleranciaDeReloj(t *testing.T) {
	tok, _, err := newIssuer(t, t0).IssueDeviceToken(testDeviceID)
	require.NoError(t, err)

	_, err = newIssuer(t, t0.Add(20*time.Hour-time.Second)).Verify(tok)
	assert.NoError(t, err, "un segundo antes de expirar sigue siendo válido")

	_, err = newIssuer(t, t0.Add(20*time.Hour)).Verify(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken, "en el instante de expiración ya no es válido")
}

func TestVerify_RechazaFirmaIssuerAudienceIncorrectos(t *testing.T) {
	tok, _, err := newIssuer(t, t0).IssueUserToken(testUserID, "Admin")
	require.NoError(t, err)

	cases := map[string]pkgjwt.Config{
		"secret":   {Secret: "otro-secret-completamente-distinto", Issuer: testIssuer, Audience: testAudience},
		"issuer":   {Secret: testSecret, Issuer: "otro-issuer", Audience: testAudience},
		"audience": {Secret: testSecret, Issuer: testIssuer, Audience: "otra-app"},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			other, err := pkgjwt.NewIssuer(cfg, pkgjwt.WithClock(fixedClock(t0)))
			require.NoError(t, err)
			_, err = other.Verify(tok)
			assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)
		})
	}
}

func TestVerify_RechazaAlgoritmoDistinto(t *testing.T) {
	claims := pkgjwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   testUserID,
			Audience:  gojwt.ClaimStrings{testAudience},
			ExpiresAt: gojwt.NewNumericDate(t0.Add(time.Hour)),
		},
		Role: "Admin",
	}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = newIssuer(t, t0).Verify(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken, "solo se acepta HS256")
}

func TestVerify_RechazaTokenSinExpiracion(t *testing.T) {
	claims := pkgjwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:   testIssuer,
			Subject:  testUserID,
			Audience: gojwt.ClaimStrings{testAudience},
		},
		Role: "Admin",
	}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = newIssuer(t, t0).Verify(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)
}

func TestVerify_TokenMalformado(t *testing.T) {
	_, err := newIssuer(t, t0).Verify("token.invalido.aqui")
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)
}

func TestNewIssuer_ConfiguracionIncompleta(t *testing.T) {
	_, err := pkgjwt.NewIssuer(pkgjwt.Config{Issuer: testIssuer, Audience: testAudience})
	assert.Error(t, err, "secret vacío debe fallar")

	_, err = pkgjwt.NewIssuer(pkgjwt.Config{Secret: testSecret})
	assert.Error(t, err, "issuer y audience son obligatorios")
}
