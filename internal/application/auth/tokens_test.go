package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/empleados-api/internal/application/auth"
	"github.com/jhoicas/empleados-api/internal/domain"
	"github.com/jhoicas/empleados-api/internal/domain/entity"
	"github.com/jhoicas/empleados-api/pkg/jwt"
)

func TestTokenService_InvitacionRoundTrip(t *testing.T) {
	env := newEnv(t)
	tok, _, err := env.tokens.IssueInvite(entity.InviteClaims{Role: entity.RoleAuxiliar, Email: "a@b.com"}, time.Hour)
	require.NoError(t, err)

	claims, err := env.tokens.VerifyInvite(tok)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAuxiliar, claims.Role)
	assert.Equal(t, "a@b.com", claims.Email)
}

func TestTokenService_InvitacionConRolInvalido(t *testing.T) {
	env := newEnv(t)
	_, _, err := env.tokens.IssueInvite(entity.InviteClaims{Role: entity.RoleUnknown, Email: "a@b.com"}, time.Hour)
	assert.ErrorIs(t, err, domain.ErrInvalidRole)

	codec, err := jwt.NewCodec(testSecret, testIssuer)
	require.NoError(t, err)
	tok, _, err := codec.GenerateInvite("gerente", "a@b.com", time.Hour)
	require.NoError(t, err)
	_, err = env.tokens.VerifyInvite(tok)
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestTokenService_InvitacionAlteradaNoDevuelveClaims(t *testing.T) {
	env := newEnv(t)
	other, err := jwt.NewCodec("otro-secreto", testIssuer)
	require.NoError(t, err)
	forged, _, err := other.GenerateInvite("administrador", "x@y.com", time.Hour)
	require.NoError(t, err)

	claims, err := env.tokens.VerifyInvite(forged)
	assert.ErrorIs(t, err, domain.ErrInviteInvalid)
	assert.Equal(t, entity.InviteClaims{}, claims)
}

func TestTokenService_SesionConRolDesconocidoEsInvalida(t *testing.T) {
	codec, err := jwt.NewCodec(testSecret, testIssuer)
	require.NoError(t, err)
	tok, _, err := codec.GenerateSession("id-1", "jdoe", "gerente", time.Hour)
	require.NoError(t, err)

	svc := auth.NewTokenService(codec, time.Hour)
	_, err = svc.VerifySession(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalid)
}
