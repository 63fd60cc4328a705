package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/empleados-api/internal/domain/entity"
	"github.com/jhoicas/empleados-api/internal/domain/repository"
)

// Store es un almacén en memoria con transacciones serializadas: Run toma el lock
// durante todo el callback y trabaja sobre una copia que solo se publica en commit.
type Store struct {
	mu   sync.Mutex
	data *state
}

type state struct {
	employees map[string]*entity.Employee
	invites   map[string]*entity.InviteCode
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: &state{
		employees: map[string]*entity.Employee{},
		invites:   map[string]*entity.InviteCode{},
	}}
}

func (s *state) clone() *state {
	cp := &state{
		employees: make(map[string]*entity.Employee, len(s.employees)),
		invites:   make(map[string]*entity.InviteCode, len(s.invites)),
	}
	for k, v := range s.employees {
		e := *v
		cp.employees[k] = &e
	}
	for k, v := range s.invites {
		i := *v
		cp.invites[k] = &i
	}
	return cp
}

// Employees devuelve el repositorio de empleados fuera de transacción.
func (s *Store) Employees() *EmployeeRepo {
	return &EmployeeRepo{store: s}
}

// Invites devuelve el repositorio de invitaciones fuera de transacción.
func (s *Store) Invites() *InviteRepo {
	return &InviteRepo{store: s}
}

// Run implementa auth.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(employees repository.EmployeeRepository, invites repository.InviteRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.data.clone()
	if err := fn(&EmployeeRepo{store: s, tx: tx}, &InviteRepo{store: s, tx: tx}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.data = tx
	return nil
}

// view ejecuta fn sobre el estado de la transacción o, fuera de ella, bajo el lock.
func (s *Store) view(ctx context.Context, tx *state, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if tx != nil {
		return fn(tx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}
