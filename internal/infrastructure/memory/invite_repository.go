package memory

import (
	"context"
	"time"

	"github.com/jhoicas/empleados-api/internal/domain"
	"github.com/jhoicas/empleados-api/internal/domain/entity"
	"github.com/jhoicas/empleados-api/internal/domain/repository"
)

var _ repository.InviteRepository = (*InviteRepo)(nil)

// InviteRepo implementación en memoria de InviteRepository.
type InviteRepo struct {
	store *Store
	tx    *state
}

// Create persiste un código nuevo.
func (r *InviteRepo) Create(ctx context.Context, inv *entity.InviteCode) error {
	return r.store.view(ctx, r.tx, func(st *state) error {
		if _, ok := st.invites[inv.Code]; ok {
			return domain.ErrConflict
		}
		cp := *inv
		st.invites[inv.Code] = &cp
		return nil
	})
}

// Exists indica si el código ya fue emitido.
func (r *InviteRepo) Exists(ctx context.Context, code string) (bool, error) {
	inv, err := r.GetByCode(ctx, code)
	return inv != nil, err
}

// GetByCode obtiene un código; (nil, nil) si no existe.
func (r *InviteRepo) GetByCode(ctx context.Context, code string) (*entity.InviteCode, error) {
	var out *entity.InviteCode
	err := r.store.view(ctx, r.tx, func(st *state) error {
		if inv, ok := st.invites[code]; ok {
			cp := *inv
			out = &cp
		}
		return nil
	})
	return out, err
}

// Claim marca el código como usado si sigue canjeable en now.
func (r *InviteRepo) Claim(ctx context.Context, code string, now time.Time) (*entity.InviteCode, error) {
	var out *entity.InviteCode
	err := r.store.view(ctx, r.tx, func(st *state) error {
		inv, ok := st.invites[code]
		if !ok {
			return domain.ErrInviteNotFound
		}
		if err := inv.CheckRedeemable(now); err != nil {
			return err
		}
		inv.Used = true
		cp := *inv
		out = &cp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CountExpired cuenta los códigos sin usar vencidos en now.
func (r *InviteRepo) CountExpired(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	err := r.store.view(ctx, r.tx, func(st *state) error {
		for _, inv := range st.invites {
			if !inv.Used && !now.Before(inv.ExpiresAt) {
				n++
			}
		}
		return nil
	})
	return n, err
}
