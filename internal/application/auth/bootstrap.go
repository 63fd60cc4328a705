package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/empleados-api/internal/domain/entity"
	"github.com/jhoicas/empleados-api/internal/domain/repository"
)

// BootstrapAdmin datos del administrador inicial.
type BootstrapAdmin struct {
	Username string
	Password string
	Email    string
}

// SeedAdmin crea el primer Administrador solo si no existe ningún empleado, para que
// alguien pueda emitir la primera invitación. Devuelve true si lo creó.
func SeedAdmin(ctx context.Context, tx TxRunner, hasher PasswordHasher, admin BootstrapAdmin) (bool, error) {
	created := false
	err := tx.Run(ctx, func(employees repository.EmployeeRepository, _ repository.InviteRepository) error {
		n, err := employees.Count(ctx)
		if err != nil || n > 0 {
			return err
		}
		hash, err := hasher.Hash(admin.Password)
		if err != nil {
			return err
		}
		num, err := employees.NextEmployeeNumber(ctx)
		if err != nil {
			return err
		}
		now := time.Now()
		if err := employees.Create(ctx, &entity.Employee{
			ID:        uuid.New().String(),
			NEmployee: num,
			Username:  entity.NormalizeUsername(admin.Username),
			FirstName: admin.Username,
			PassHash:  hash,
			Email:     entity.NormalizeEmail(admin.Email),
			Role:      entity.RoleAdministrador,
			Status:    true,
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, err
}
