package repository

import (
	"context"

	"github.com/jhoicas/empleados-api/internal/domain/entity"
)

// EmployeeRepository define el puerto de persistencia para Employee (DIP).
// Los Get* devuelven (nil, nil) cuando no hay registro.
type EmployeeRepository interface {
	Create(ctx context.Context, e *entity.Employee) error
	GetByID(ctx context.Context, id string) (*entity.Employee, error)
	GetByUsername(ctx context.Context, username string) (*entity.Employee, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// NextEmployeeNumber reserva el siguiente número; dentro de una transacción
	// queda serializado hasta el commit.
	NextEmployeeNumber(ctx context.Context) (int, error)
	Update(ctx context.Context, e *entity.Employee) error
	SetStatus(ctx context.Context, id string, active bool) (*entity.Employee, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Employee, error)
	Count(ctx context.Context) (int, error)
}
