package entity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/empleados-api/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Role es el rol cerrado de un empleado. Los cuatro valores son mutuamente excluyentes
// y no hay jerarquía: los permisos salen de listas explícitas por operación.
type Role uint8

// Roles válidos. RoleUnknown nunca se persiste.
const (
	RoleUnknown Role = iota
	RoleAdministrador
	RoleAlmacenista
	RoleAuxiliar
	RoleVendedor
)

// Roles devuelve los roles válidos en orden de código.
func Roles() []Role {
	return []Role{RoleAdministrador, RoleAlmacenista, RoleAuxiliar, RoleVendedor}
}

var roleNames = map[Role]string{
	RoleAdministrador: "administrador",
	RoleAlmacenista:   "almacenista",
	RoleAuxiliar:      "auxiliar",
	RoleVendedor:      "vendedor",
}

// Nombres alternativos usados por otros despliegues (ticketing).
var roleAliases = map[string]Role{
	"administrador": RoleAdministrador,
	"admin":         RoleAdministrador,
	"almacenista":   RoleAlmacenista,
	"compras":       RoleAlmacenista,
	"auxiliar":      RoleAuxiliar,
	"encargado":     RoleAuxiliar,
	"vendedor":      RoleVendedor,
	"cajero":        RoleVendedor,
}

// Un Caser no es seguro entre goroutines; se crea uno por llamada.
func foldString(s string) string {
	return cases.Fold().String(s)
}

// String devuelve la serialización canónica del rol.
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "desconocido"
}

// Valid indica si el rol pertenece a la enumeración.
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// ParseRole convierte un nombre (canónico o alias, sin distinguir mayúsculas) en Role.
func ParseRole(s string) (Role, error) {
	key := foldString(norm.NFC.String(strings.TrimSpace(s)))
	if r, ok := roleAliases[key]; ok {
		return r, nil
	}
	return RoleUnknown, fmt.Errorf("rol %q: %w", s, domain.ErrInvalidRole)
}

// RoleFromCode convierte un código numérico en Role. base indica el código del
// Administrador (0 o 1); el resto sigue en orden.
func RoleFromCode(code, base int) (Role, error) {
	idx := code - base
	all := Roles()
	if idx < 0 || idx >= len(all) {
		return RoleUnknown, fmt.Errorf("código de rol %d: %w", code, domain.ErrInvalidRole)
	}
	return all[idx], nil
}

// ParseRoleValue acepta el rol tal como llega en JSON: string con nombre, string
// numérico o número.
func ParseRoleValue(v interface{}, base int) (Role, error) {
	switch x := v.(type) {
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(x)); err == nil {
			return RoleFromCode(n, base)
		}
		return ParseRole(x)
	case float64:
		if x != float64(int(x)) {
			return RoleUnknown, fmt.Errorf("código de rol %v: %w", x, domain.ErrInvalidRole)
		}
		return RoleFromCode(int(x), base)
	case int:
		return RoleFromCode(x, base)
	default:
		return RoleUnknown, fmt.Errorf("rol %v: %w", v, domain.ErrInvalidRole)
	}
}

// MarshalText serializa el rol con su nombre canónico.
func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("rol %d: %w", uint8(r), domain.ErrInvalidRole)
	}
	return []byte(r.String()), nil
}

// UnmarshalText rechaza valores fuera de la enumeración en vez de coercionarlos.
func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
