package auth

import (
	"context"
	"time"

	"github.com/jhoicas/empleados-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
// Si fn devuelve error no queda nada escrito.
type TxRunner interface {
	Run(ctx context.Context, fn func(employees repository.EmployeeRepository, invites repository.InviteRepository) error) error
}

// PasswordHasher contrato del hash de credenciales (lo implementa *password.Hasher).
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

// CodeGenerator produce códigos de invitación candidatos.
type CodeGenerator interface {
	Generate() (string, error)
}

// Clock devuelve la hora actual; se reemplaza en tests.
type Clock func() time.Time
