package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/empleados-api/internal/application/auth"
	"github.com/jhoicas/empleados-api/internal/domain/entity"
)

func TestAllowed_TablaDePermisos(t *testing.T) {
	cases := []struct {
		op   auth.Operation
		role entity.Role
		want bool
	}{
		{auth.OpIssueInvite, entity.RoleAdministrador, true},
		{auth.OpIssueInvite, entity.RoleAuxiliar, true},
		{auth.OpIssueInvite, entity.RoleVendedor, false},
		{auth.OpIssueInvite, entity.RoleAlmacenista, false},
		{auth.OpInviteAdministrador, entity.RoleAdministrador, true},
		{auth.OpInviteAdministrador, entity.RoleAuxiliar, false},
		{auth.OpListEmployees, entity.RoleAdministrador, true},
		{auth.OpListEmployees, entity.RoleAuxiliar, false},
		{auth.OpViewSelf, entity.RoleVendedor, true},
		{auth.OpUpdateEmployee, entity.RoleAlmacenista, true},
		{auth.OpManageEmployees, entity.RoleAuxiliar, false},
		{auth.OpSetEmployeeStatus, entity.RoleAdministrador, true},
		{auth.OpSetEmployeeStatus, entity.RoleVendedor, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, auth.Allowed(tc.op, tc.role), "%s / %s", tc.op, tc.role)
	}
}

func TestAllowed_RolDesconocidoYOperacionSinEntrada(t *testing.T) {
	assert.False(t, auth.Allowed(auth.OpViewSelf, entity.RoleUnknown))
	assert.False(t, auth.Allowed(auth.Operation("desconocida"), entity.RoleAdministrador))
}

func TestAllowedRoles_DevuelveCopia(t *testing.T) {
	roles := auth.AllowedRoles(auth.OpIssueInvite)
	roles[0] = entity.RoleVendedor
	assert.False(t, auth.Allowed(auth.OpIssueInvite, entity.RoleVendedor))
}
