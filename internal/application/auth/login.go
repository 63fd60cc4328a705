package auth

import (
	"context"
	"fmt"

	"github.com/jhoicas/empleados-api/internal/application/dto"
	"github.com/jhoicas/empleados-api/internal/domain"
	"github.com/jhoicas/empleados-api/internal/domain/entity"
	"github.com/jhoicas/empleados-api/internal/domain/repository"
)

// LoginUseCase verifica credenciales y emite tokens de sesión. No escribe nada.
type LoginUseCase struct {
	employees repository.EmployeeRepository
	tokens    *TokenService
	hasher    PasswordHasher
}

// NewLoginUseCase construye el caso de uso de login.
func NewLoginUseCase(employees repository.EmployeeRepository, tokens *TokenService, hasher PasswordHasher) *LoginUseCase {
	return &LoginUseCase{employees: employees, tokens: tokens, hasher: hasher}
}

// Login devuelve ErrMissingCredentials, ErrEmployeeNotFound, ErrInvalidCredentials
// o ErrAccountInactive según el primer paso que falle.
func (uc *LoginUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := validateLogin(in); err != nil {
		return nil, err
	}
	e, err := uc.employees.GetByUsername(ctx, entity.NormalizeUsername(in.Username))
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrEmployeeNotFound
	}
	if !uc.hasher.Verify(in.Password, e.PassHash) {
		return nil, domain.ErrInvalidCredentials
	}
	if !e.Status {
		return nil, domain.ErrAccountInactive
	}
	token, exp, err := uc.tokens.IssueSession(entity.Identity{ID: e.ID, Username: e.Username, Role: e.Role})
	if err != nil {
		return nil, fmt.Errorf("emitir sesión: %w", err)
	}
	return &dto.LoginResponse{
		Token:     token,
		Username:  e.Username,
		Role:      e.Role.String(),
		ExpiresAt: exp,
	}, nil
}
