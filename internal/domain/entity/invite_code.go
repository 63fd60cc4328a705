package entity

import (
	"time"

	"github.com/jhoicas/empleados-api/internal/domain"
)

// InviteCode es un código corto de un solo uso que envuelve un token firmado {role, email}.
type InviteCode struct {
	Code      string
	Token     string
	Used      bool
	ExpiresAt time.Time
	CreatedBy string
	CreatedAt time.Time
}

// CheckRedeemable devuelve nil si el código puede canjearse en now.
// Una invitación expirada nunca es canjeable, esté usada o no.
func (i *InviteCode) CheckRedeemable(now time.Time) error {
	if !now.Before(i.ExpiresAt) {
		return domain.ErrInviteExpired
	}
	if i.Used {
		return domain.ErrInviteUsed
	}
	return nil
}

// InviteClaims son los datos firmados dentro del token de invitación.
type InviteClaims struct {
	Role  Role
	Email string
}

// Identity es la identidad decodificada de un token de sesión.
type Identity struct {
	ID       string
	Username string
	Role     Role
}
