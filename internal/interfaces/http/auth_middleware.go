package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/empleados-api/internal/application/auth"
	"github.com/jhoicas/empleados-api/internal/application/dto"
	"github.com/jhoicas/empleados-api/internal/domain/entity"
	"github.com/jhoicas/empleados-api/pkg/jwt"
)

// Locals keys para la identidad decodificada del token.
const (
	LocalUserID   = "user_id"
	LocalUsername = "username"
	LocalRole     = "role"
)

// SessionVerifier valida un token de sesión (lo implementa *auth.TokenService).
type SessionVerifier interface {
	VerifySession(token string) (entity.Identity, error)
}

// bearerToken acepta "Bearer <token>" o el token sin prefijo.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) >= 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}

// AuthMiddleware valida el token de sesión y deja id, username y rol en c.Locals.
// Es stateless: no consulta la base de datos.
func AuthMiddleware(verifier SessionVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c.Get(fiber.HeaderAuthorization))
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		id, err := verifier.VerifySession(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "TOKEN_EXPIRED", Message: "token expirado"})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, id.ID)
		c.Locals(LocalUsername, id.Username)
		c.Locals(LocalRole, id.Role)
		return c.Next()
	}
}

// RequirePermission consulta la tabla de permisos para op. Debe ir después de AuthMiddleware.
func RequirePermission(op auth.Operation) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if !role.Valid() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no contiene un rol válido"})
		}
		if !auth.Allowed(op, role) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
		}
		return c.Next()
	}
}

// GetUserID devuelve el id del empleado autenticado.
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol del empleado autenticado (RoleUnknown si no hay).
func GetRole(c *fiber.Ctx) entity.Role {
	r, _ := c.Locals(LocalRole).(entity.Role)
	return r
}

// GetIdentity devuelve la identidad completa del token.
func GetIdentity(c *fiber.Ctx) entity.Identity {
	username, _ := c.Locals(LocalUsername).(string)
	return entity.Identity{ID: GetUserID(c), Username: username, Role: GetRole(c)}
}
