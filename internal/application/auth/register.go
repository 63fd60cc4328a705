package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/empleados-api/internal/application/dto"
	"github.com/jhoicas/empleados-api/internal/domain"
	"github.com/jhoicas/empleados-api/internal/domain/entity"
	"github.com/jhoicas/empleados-api/internal/domain/repository"
)

// RegisterUseCase canjea un código de invitación por una cuenta de empleado.
type RegisterUseCase struct {
	tx     TxRunner
	tokens *TokenService
	hasher PasswordHasher
	now    Clock
}

// NewRegisterUseCase construye el caso de uso de registro.
func NewRegisterUseCase(tx TxRunner, tokens *TokenService, hasher PasswordHasher) *RegisterUseCase {
	return &RegisterUseCase{tx: tx, tokens: tokens, hasher: hasher, now: time.Now}
}

// WithClock reemplaza el reloj.
func (uc *RegisterUseCase) WithClock(now Clock) *RegisterUseCase {
	uc.now = now
	return uc
}

// Register ejecuta el flujo completo en una sola transacción: el código se reclama
// con test-and-set al inicio y cualquier fallo posterior revierte el reclamo, así que
// nunca queda un código marcado sin empleado ni un empleado con el código libre.
// Role y email se toman exclusivamente del token firmado de la invitación.
// El hash de la contraseña se calcula antes de abrir la transacción.
func (uc *RegisterUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.EmployeeResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(in.InviteCode))
	if code == "" {
		return nil, domain.ErrMissingInvite
	}
	// contraseña vacía: el error lo reporta validateRegistration en su orden
	var hash string
	if in.PassHash != "" {
		h, err := uc.hasher.Hash(in.PassHash)
		if err != nil {
			return nil, err
		}
		hash = h
	}

	var created *entity.Employee
	err := uc.tx.Run(ctx, func(employees repository.EmployeeRepository, invites repository.InviteRepository) error {
		now := uc.now()

		inv, err := invites.Claim(ctx, code, now)
		if err != nil {
			return err
		}
		claims, err := uc.tokens.VerifyInvite(inv.Token)
		if err != nil {
			return err
		}
		if err := validateRegistration(in, now); err != nil {
			return err
		}

		username := entity.NormalizeUsername(in.Username)
		email := entity.NormalizeEmail(claims.Email)
		exists, err := employees.ExistsByUsername(ctx, username)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrUsernameExists
		}
		exists, err = employees.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrEmailExists
		}

		n, err := employees.NextEmployeeNumber(ctx)
		if err != nil {
			return err
		}

		e := &entity.Employee{
			ID:         uuid.New().String(),
			NEmployee:  n,
			Username:   username,
			FirstName:  strings.TrimSpace(in.FirstName),
			LastNameP:  strings.TrimSpace(in.LastNameP),
			LastNameM:  strings.TrimSpace(in.LastNameM),
			PassHash:   hash,
			BirthDay:   int(in.BirthDay),
			BirthMonth: int(in.BirthMonth),
			BirthYear:  int(in.BirthYear),
			Email:      email,
			Role:       claims.Role,
			Status:     true,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := employees.Create(ctx, e); err != nil {
			return err
		}
		created = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToEmployeeResponse(created), nil
}
