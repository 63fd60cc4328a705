package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/empleados-api/internal/domain"
	"github.com/jhoicas/empleados-api/internal/domain/entity"
	"github.com/jhoicas/empleados-api/pkg/jwt"
)

// TokenService traduce entre los claims del dominio y los tokens firmados.
type TokenService struct {
	codec      *jwt.Codec
	sessionTTL time.Duration
}

// NewTokenService construye el servicio sobre un codec ya configurado con su secreto.
func NewTokenService(codec *jwt.Codec, sessionTTL time.Duration) *TokenService {
	return &TokenService{codec: codec, sessionTTL: sessionTTL}
}

// IssueInvite firma {role, email} con vigencia ttl.
func (s *TokenService) IssueInvite(claims entity.InviteClaims, ttl time.Duration) (string, time.Time, error) {
	if !claims.Role.Valid() {
		return "", time.Time{}, domain.ErrInvalidRole
	}
	return s.codec.GenerateInvite(claims.Role.String(), claims.Email, ttl)
}

// VerifyInvite devuelve los claims del token o ErrInviteInvalid / ErrInvalidRole.
// Ante cualquier fallo no se devuelve ningún claim.
func (s *TokenService) VerifyInvite(token string) (entity.InviteClaims, error) {
	c, err := s.codec.ParseInvite(token)
	if err != nil {
		return entity.InviteClaims{}, fmt.Errorf("%w: %v", domain.ErrInviteInvalid, err)
	}
	role, err := entity.ParseRole(c.Role)
	if err != nil {
		return entity.InviteClaims{}, err
	}
	return entity.InviteClaims{Role: role, Email: c.Email}, nil
}

// IssueSession emite el token de sesión para la identidad dada.
func (s *TokenService) IssueSession(id entity.Identity) (string, time.Time, error) {
	return s.codec.GenerateSession(id.ID, id.Username, id.Role.String(), s.sessionTTL)
}

// VerifySession valida el token Bearer. Devuelve jwt.ErrTokenExpired o jwt.ErrTokenInvalid;
// un rol fuera de la enumeración cuenta como token inválido.
func (s *TokenService) VerifySession(token string) (entity.Identity, error) {
	c, err := s.codec.ParseSession(token)
	if err != nil {
		return entity.Identity{}, err
	}
	role, err := entity.ParseRole(c.Role)
	if err != nil {
		return entity.Identity{}, errors.Join(jwt.ErrTokenInvalid, err)
	}
	return entity.Identity{ID: c.UserID, Username: c.Username, Role: role}, nil
}
