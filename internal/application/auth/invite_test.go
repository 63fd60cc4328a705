package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/empleados-api/internal/application/auth"
	"github.com/jhoicas/empleados-api/internal/application/dto"
	"github.com/jhoicas/empleados-api/internal/domain"
	"github.com/jhoicas/empleados-api/internal/domain/entity"
)

func TestInvite_EmiteCodigoPersistido(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	out, err := env.invite.Issue(ctx, adminIdentity, dto.InviteRequest{Role: "Cajero", Email: " A@B.com "})
	require.NoError(t, err)
	assert.Len(t, out.Code, 5)
	for _, r := range out.Code {
		assert.Contains(t, auth.InviteAlphabet, string(r))
	}
	assert.WithinDuration(t, time.Now().Add(time.Hour), out.ExpiresAt, 5*time.Second)

	inv, err := env.store.Invites().GetByCode(ctx, out.Code)
	require.NoError(t, err)
	require.NotNil(t, inv)
	assert.False(t, inv.Used)
	assert.Equal(t, adminIdentity.ID, inv.CreatedBy)

	claims, err := env.tokens.VerifyInvite(inv.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVendedor, claims.Role)
	assert.Equal(t, "a@b.com", claims.Email)
}

func TestInvite_RolPorCodigoNumerico(t *testing.T) {
	env := newEnv(t)
	code := env.issue(t, float64(0), "a@b.com")

	inv, err := env.store.Invites().GetByCode(context.Background(), code)
	require.NoError(t, err)
	claims, err := env.tokens.VerifyInvite(inv.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdministrador, claims.Role)
}

func TestInvite_AuxiliarNoPuedeInvitarAdministrador(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	auxiliar := entity.Identity{ID: "00000000-0000-0000-0000-000000000002", Username: "aux", Role: entity.RoleAuxiliar}

	for _, role := range []interface{}{"administrador", " Administrador ", float64(0)} {
		out, err := env.invite.Issue(ctx, auxiliar, dto.InviteRequest{Role: role, Email: "evil@x.com"})
		assert.ErrorIs(t, err, domain.ErrForbidden, "rol %v", role)
		assert.Nil(t, out)
	}
	n, err := env.store.Invites().CountExpired(ctx, time.Now().Add(24*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, n, "no se persiste ningún código")

	// el resto de roles sigue permitido para el auxiliar
	out, err := env.invite.Issue(ctx, auxiliar, dto.InviteRequest{Role: "vendedor", Email: "v@x.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Code)
}

func TestInvite_AdministradorPuedeInvitarAdministrador(t *testing.T) {
	env := newEnv(t)
	code := env.issue(t, "administrador", "jefe@x.com")

	created, err := env.register.Register(context.Background(), registerRequest("jefe", code))
	require.NoError(t, err)
	assert.Equal(t, string(entity.RoleAdministrador), created.Role)
}

func TestInvite_ValidacionDeEntrada(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	_, err := env.invite.Issue(ctx, adminIdentity, dto.InviteRequest{Email: "a@b.com"})
	var fe *domain.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "role", fe.Field)

	_, err = env.invite.Issue(ctx, adminIdentity, dto.InviteRequest{Role: "gerente", Email: "a@b.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)

	_, err = env.invite.Issue(ctx, adminIdentity, dto.InviteRequest{Role: "vendedor"})
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "email", fe.Field)
	assert.ErrorIs(t, err, domain.ErrMissingField)

	_, err = env.invite.Issue(ctx, adminIdentity, dto.InviteRequest{Role: "vendedor", Email: "no-es-email"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInvite_ReintentaAnteColision(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	codes := &sequenceCodes{codes: []string{"AAAAA", "AAAAA", "BBBBB"}}
	uc := auth.NewInviteUseCase(env.store.Invites(), env.tokens, codes, auth.InviteConfig{TTL: time.Hour})

	first, err := uc.Issue(ctx, adminIdentity, dto.InviteRequest{Role: "vendedor", Email: "a@b.com"})
	require.NoError(t, err)
	assert.Equal(t, "AAAAA", first.Code)

	second, err := uc.Issue(ctx, adminIdentity, dto.InviteRequest{Role: "vendedor", Email: "c@d.com"})
	require.NoError(t, err)
	assert.Equal(t, "BBBBB", second.Code)
}

func TestInvite_EspacioAgotado(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	codes := &sequenceCodes{codes: []string{"AAAAA"}}
	uc := auth.NewInviteUseCase(env.store.Invites(), env.tokens, codes, auth.InviteConfig{TTL: time.Hour, MaxAttempts: 3})

	_, err := uc.Issue(ctx, adminIdentity, dto.InviteRequest{Role: "vendedor", Email: "a@b.com"})
	require.NoError(t, err)
	_, err = uc.Issue(ctx, adminIdentity, dto.InviteRequest{Role: "vendedor", Email: "c@d.com"})
	assert.ErrorIs(t, err, domain.ErrInviteCodeSpace)
}

func TestCodeGenerator_LongitudYAlfabeto(t *testing.T) {
	g := auth.NewCodeGenerator(8)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := g.Generate()
		require.NoError(t, err)
		assert.Len(t, code, 8)
		for _, r := range code {
			assert.Contains(t, auth.InviteAlphabet, string(r))
		}
		seen[code] = true
	}
	assert.Greater(t, len(seen), 45)
}
