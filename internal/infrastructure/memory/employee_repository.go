package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/empleados-api/internal/domain"
	"github.com/jhoicas/empleados-api/internal/domain/entity"
	"github.com/jhoicas/empleados-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo implementación en memoria de EmployeeRepository.
type EmployeeRepo struct {
	store *Store
	tx    *state
}

func copyEmployee(e *entity.Employee) *entity.Employee {
	if e == nil {
		return nil
	}
	cp := *e
	return &cp
}

func checkUnique(st *state, e *entity.Employee) error {
	for id, other := range st.employees {
		if id == e.ID {
			continue
		}
		if other.Username == e.Username {
			return domain.ErrUsernameExists
		}
		if other.Email == e.Email {
			return domain.ErrEmailExists
		}
		if other.NEmployee == e.NEmployee {
			return domain.ErrEmployeeNumberUsed
		}
	}
	return nil
}

// Create persiste un nuevo empleado respetando las restricciones de unicidad.
func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	return r.store.view(ctx, r.tx, func(st *state) error {
		if _, ok := st.employees[e.ID]; ok {
			return domain.ErrConflict
		}
		if err := checkUnique(st, e); err != nil {
			return err
		}
		st.employees[e.ID] = copyEmployee(e)
		return nil
	})
}

// GetByID obtiene un empleado por ID.
func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	var out *entity.Employee
	err := r.store.view(ctx, r.tx, func(st *state) error {
		out = copyEmployee(st.employees[id])
		return nil
	})
	return out, err
}

// GetByUsername obtiene un empleado por username.
func (r *EmployeeRepo) GetByUsername(ctx context.Context, username string) (*entity.Employee, error) {
	var out *entity.Employee
	err := r.store.view(ctx, r.tx, func(st *state) error {
		for _, e := range st.employees {
			if e.Username == username {
				out = copyEmployee(e)
				break
			}
		}
		return nil
	})
	return out, err
}

// ExistsByUsername indica si el username ya está tomado.
func (r *EmployeeRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	e, err := r.GetByUsername(ctx, username)
	return e != nil, err
}

// ExistsByEmail indica si el email ya está tomado.
func (r *EmployeeRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	found := false
	err := r.store.view(ctx, r.tx, func(st *state) error {
		for _, e := range st.employees {
			if e.Email == email {
				found = true
				break
			}
		}
		return nil
	})
	return found, err
}

// NextEmployeeNumber devuelve max(n_employee, 1000) + 1.
func (r *EmployeeRepo) NextEmployeeNumber(ctx context.Context) (int, error) {
	max := 0
	err := r.store.view(ctx, r.tx, func(st *state) error {
		for _, e := range st.employees {
			if e.NEmployee > max {
				max = e.NEmployee
			}
		}
		return nil
	})
	return entity.NextEmployeeNumber(max), err
}

// Update reemplaza el registro completo.
func (r *EmployeeRepo) Update(ctx context.Context, e *entity.Employee) error {
	return r.store.view(ctx, r.tx, func(st *state) error {
		if _, ok := st.employees[e.ID]; !ok {
			return domain.ErrEmployeeNotFound
		}
		if err := checkUnique(st, e); err != nil {
			return err
		}
		st.employees[e.ID] = copyEmployee(e)
		return nil
	})
}

// SetStatus activa o desactiva un empleado.
func (r *EmployeeRepo) SetStatus(ctx context.Context, id string, active bool) (*entity.Employee, error) {
	var out *entity.Employee
	err := r.store.view(ctx, r.tx, func(st *state) error {
		e, ok := st.employees[id]
		if !ok {
			return domain.ErrEmployeeNotFound
		}
		e.Status = active
		out = copyEmployee(e)
		return nil
	})
	return out, err
}

// List lista empleados ordenados por número de empleado.
func (r *EmployeeRepo) List(ctx context.Context, limit, offset int) ([]*entity.Employee, error) {
	var list []*entity.Employee
	err := r.store.view(ctx, r.tx, func(st *state) error {
		all := make([]*entity.Employee, 0, len(st.employees))
		for _, e := range st.employees {
			all = append(all, e)
		}
		sort.Slice(all, func(i, j int) bool { return all[i].NEmployee < all[j].NEmployee })
		for i := offset; i < len(all) && i < offset+limit; i++ {
			list = append(list, copyEmployee(all[i]))
		}
		return nil
	})
	return list, err
}

// Count devuelve el total de empleados.
func (r *EmployeeRepo) Count(ctx context.Context) (int, error) {
	n := 0
	err := r.store.view(ctx, r.tx, func(st *state) error {
		n = len(st.employees)
		return nil
	})
	return n, err
}
