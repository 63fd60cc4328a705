package auth

import "github.com/jhoicas/empleados-api/internal/domain/entity"

// Operation identifica una operación protegida.
type Operation string

const (
	OpIssueInvite         Operation = "invite:issue"
	OpInviteAdministrador Operation = "invite:administrador" // invitar con rol administrador
	OpViewSelf            Operation = "employees:me"
	OpListEmployees       Operation = "employees:list"
	OpUpdateEmployee      Operation = "employees:update"
	OpManageEmployees     Operation = "employees:manage" // editar a otros, cambiar rol/estado
	OpSetEmployeeStatus   Operation = "employees:status"
)

var anyRole = entity.Roles()

// permissions es la única tabla de autorización: operación -> roles permitidos.
var permissions = map[Operation][]entity.Role{
	OpIssueInvite:         {entity.RoleAdministrador, entity.RoleAuxiliar},
	OpInviteAdministrador: {entity.RoleAdministrador},
	OpViewSelf:            anyRole,
	OpListEmployees:       {entity.RoleAdministrador},
	OpUpdateEmployee:      anyRole,
	OpManageEmployees:     {entity.RoleAdministrador},
	OpSetEmployeeStatus:   {entity.RoleAdministrador},
}

// Allowed indica si role puede ejecutar op. Operaciones sin entrada se deniegan.
func Allowed(op Operation, role entity.Role) bool {
	for _, r := range permissions[op] {
		if r == role {
			return true
		}
	}
	return false
}

// AllowedRoles devuelve la lista de roles de op (copia).
func AllowedRoles(op Operation) []entity.Role {
	return append([]entity.Role(nil), permissions[op]...)
}
