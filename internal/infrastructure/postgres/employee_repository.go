package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/empleados-api/internal/domain"
	"github.com/jhoicas/empleados-api/internal/domain/entity"
	"github.com/jhoicas/empleados-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// employeeNumberLock clave del advisory lock que serializa la asignación de n_employee.
const employeeNumberLock = 741001

const employeeColumns = `id, n_employee, username, first_name, last_name_p, last_name_m, pass_hash,
	birth_day, birth_month, birth_year, email, role, status, created_at, updated_at`

// EmployeeRepo implementación de EmployeeRepository sobre PostgreSQL (usable con pool o tx).
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

func scanEmployee(row pgxScanner) (*entity.Employee, error) {
	var e entity.Employee
	var role string
	err := row.Scan(
		&e.ID, &e.NEmployee, &e.Username, &e.FirstName, &e.LastNameP, &e.LastNameM, &e.PassHash,
		&e.BirthDay, &e.BirthMonth, &e.BirthYear, &e.Email, &role, &e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if e.Role, err = entity.ParseRole(role); err != nil {
		return nil, fmt.Errorf("empleado %s: %w", e.ID, err)
	}
	return &e, nil
}

// mapWriteError traduce violaciones de unicidad a errores de dominio.
func mapWriteError(op string, err error) error {
	if !isUniqueViolation(err) {
		return fmt.Errorf("%s: %w", op, err)
	}
	switch violatedConstraint(err) {
	case "employees_username_key":
		return domain.ErrUsernameExists
	case "employees_email_key":
		return domain.ErrEmailExists
	case "employees_n_employee_key":
		return domain.ErrEmployeeNumberUsed
	default:
		return domain.ErrConflict
	}
}

// Create persiste un nuevo empleado.
func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.NEmployee, e.Username, e.FirstName, e.LastNameP, e.LastNameM, e.PassHash,
		e.BirthDay, e.BirthMonth, e.BirthYear, e.Email, e.Role.String(), e.Status, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("insert employee", err)
	}
	return nil
}

func (r *EmployeeRepo) getOne(ctx context.Context, where string, arg any) (*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE ` + where + ` LIMIT 1`
	e, err := scanEmployee(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

// GetByID obtiene un empleado por ID. Un ID que no es UUID no existe.
func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	return r.getOne(ctx, "id = $1", id)
}

// GetByUsername obtiene un empleado por username.
func (r *EmployeeRepo) GetByUsername(ctx context.Context, username string) (*entity.Employee, error) {
	return r.getOne(ctx, "username = $1", username)
}

func (r *EmployeeRepo) exists(ctx context.Context, column, value string) (bool, error) {
	var ok bool
	query := `SELECT EXISTS (SELECT 1 FROM employees WHERE ` + column + ` = $1)`
	if err := r.q.QueryRow(ctx, query, value).Scan(&ok); err != nil {
		return false, fmt.Errorf("exists employee by %s: %w", column, err)
	}
	return ok, nil
}

// ExistsByUsername indica si el username ya está tomado.
func (r *EmployeeRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username", username)
}

// ExistsByEmail indica si el email ya está tomado.
func (r *EmployeeRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email", email)
}

// NextEmployeeNumber toma un advisory lock de transacción y calcula max(n_employee, 1000) + 1.
// Fuera de una transacción el lock se libera de inmediato y solo protege el índice único.
func (r *EmployeeRepo) NextEmployeeNumber(ctx context.Context) (int, error) {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, employeeNumberLock); err != nil {
		return 0, fmt.Errorf("lock n_employee: %w", err)
	}
	var max int
	if err := r.q.QueryRow(ctx, `SELECT COALESCE(MAX(n_employee), 0) FROM employees`).Scan(&max); err != nil {
		return 0, fmt.Errorf("max n_employee: %w", err)
	}
	return entity.NextEmployeeNumber(max), nil
}

// Update actualiza un empleado.
func (r *EmployeeRepo) Update(ctx context.Context, e *entity.Employee) error {
	query := `
		UPDATE employees SET username = $2, first_name = $3, last_name_p = $4, last_name_m = $5,
			pass_hash = $6, birth_day = $7, birth_month = $8, birth_year = $9, email = $10,
			role = $11, status = $12, updated_at = $13
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		e.ID, e.Username, e.FirstName, e.LastNameP, e.LastNameM,
		e.PassHash, e.BirthDay, e.BirthMonth, e.BirthYear, e.Email,
		e.Role.String(), e.Status, e.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("update employee", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

// SetStatus activa o desactiva un empleado y devuelve el registro actualizado.
func (r *EmployeeRepo) SetStatus(ctx context.Context, id string, active bool) (*entity.Employee, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrEmployeeNotFound
	}
	query := `UPDATE employees SET status = $2, updated_at = now() WHERE id = $1 RETURNING ` + employeeColumns
	e, err := scanEmployee(r.q.QueryRow(ctx, query, id, active))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("set employee status: %w", err)
	}
	return e, nil
}

// List lista empleados por número de empleado con paginación.
func (r *EmployeeRepo) List(ctx context.Context, limit, offset int) ([]*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY n_employee LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()
	var list []*entity.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Count devuelve el total de empleados.
func (r *EmployeeRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count employees: %w", err)
	}
	return n, nil
}
