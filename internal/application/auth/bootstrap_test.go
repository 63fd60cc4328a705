package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/empleados-api/internal/application/auth"
	"github.com/jhoicas/empleados-api/internal/application/dto"
	"github.com/jhoicas/empleados-api/internal/domain/entity"
)

func TestSeedAdmin_SoloConAlmacenVacio(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	admin := auth.BootstrapAdmin{Username: "root", Password: "cambiar!", Email: "root@empresa.com"}

	created, err := auth.SeedAdmin(ctx, env.store, env.hasher, admin)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = auth.SeedAdmin(ctx, env.store, env.hasher, admin)
	require.NoError(t, err)
	assert.False(t, created)

	e, err := env.store.Employees().GetByUsername(ctx, "root")
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, entity.RoleAdministrador, e.Role)
	assert.Equal(t, 1001, e.NEmployee)

	out, err := env.login.Login(ctx, dto.LoginRequest{Username: "root", Password: "cambiar!"})
	require.NoError(t, err)
	assert.Equal(t, "administrador", out.Role)
}
