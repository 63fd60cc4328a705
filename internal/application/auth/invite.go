package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/jhoicas/empleados-api/internal/application/dto"
	"github.com/jhoicas/empleados-api/internal/domain"
	"github.com/jhoicas/empleados-api/internal/domain/entity"
	"github.com/jhoicas/empleados-api/internal/domain/repository"
)

// DefaultCodeAttempts intentos de generación antes de rendirse.
const DefaultCodeAttempts = 32

// InviteConfig parámetros de emisión de invitaciones.
type InviteConfig struct {
	TTL          time.Duration
	RoleCodeBase int
	MaxAttempts  int
}

// InviteUseCase emite códigos de invitación.
type InviteUseCase struct {
	invites repository.InviteRepository
	tokens  *TokenService
	codes   CodeGenerator
	cfg     InviteConfig
	now     Clock
}

// NewInviteUseCase construye el caso de uso de invitaciones.
func NewInviteUseCase(invites repository.InviteRepository, tokens *TokenService, codes CodeGenerator, cfg InviteConfig) *InviteUseCase {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultCodeAttempts
	}
	return &InviteUseCase{invites: invites, tokens: tokens, codes: codes, cfg: cfg, now: time.Now}
}

// WithClock reemplaza el reloj.
func (uc *InviteUseCase) WithClock(now Clock) *InviteUseCase {
	uc.now = now
	return uc
}

// Issue valida rol y email, firma el token y persiste un código libre.
// Solo un administrador puede invitar con rol administrador.
// La unicidad del código se comprueba activamente y se reintenta ante colisión.
func (uc *InviteUseCase) Issue(ctx context.Context, issuer entity.Identity, in dto.InviteRequest) (*dto.InviteResponse, error) {
	if in.Role == nil {
		return nil, domain.NewFieldError("role")
	}
	role, err := entity.ParseRoleValue(in.Role, uc.cfg.RoleCodeBase)
	if err != nil {
		return nil, err
	}
	if role == entity.RoleAdministrador && !Allowed(OpInviteAdministrador, issuer.Role) {
		return nil, domain.ErrForbidden
	}
	email := entity.NormalizeEmail(in.Email)
	if err := validation.Validate(email, validation.Required); err != nil {
		return nil, domain.NewFieldError("email")
	}
	if err := validation.Validate(email, is.Email); err != nil {
		return nil, domain.NewInvalidFieldError("email")
	}

	token, expiresAt, err := uc.tokens.IssueInvite(entity.InviteClaims{Role: role, Email: email}, uc.cfg.TTL)
	if err != nil {
		return nil, fmt.Errorf("firmar invitación: %w", err)
	}

	for attempt := 0; attempt < uc.cfg.MaxAttempts; attempt++ {
		code, err := uc.codes.Generate()
		if err != nil {
			return nil, fmt.Errorf("generar código: %w", err)
		}
		exists, err := uc.invites.Exists(ctx, code)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}
		inv := &entity.InviteCode{
			Code:      code,
			Token:     token,
			Used:      false,
			ExpiresAt: expiresAt,
			CreatedBy: issuer.ID,
			CreatedAt: uc.now(),
		}
		if err := uc.invites.Create(ctx, inv); err != nil {
			// otro emisor ganó el mismo código entre Exists y Create
			if errors.Is(err, domain.ErrConflict) {
				continue
			}
			return nil, err
		}
		return &dto.InviteResponse{Code: code, ExpiresAt: expiresAt}, nil
	}
	return nil, domain.ErrInviteCodeSpace
}
