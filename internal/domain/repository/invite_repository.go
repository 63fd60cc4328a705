package repository

import (
	"context"
	"time"

	"github.com/jhoicas/empleados-api/internal/domain/entity"
)

// InviteRepository define el puerto de persistencia para InviteCode.
type InviteRepository interface {
	// Create falla con domain.ErrConflict si el código ya existe.
	Create(ctx context.Context, inv *entity.InviteCode) error
	Exists(ctx context.Context, code string) (bool, error)
	GetByCode(ctx context.Context, code string) (*entity.InviteCode, error)
	// Claim marca el código como usado solo si sigue sin usar y vigente en now
	// (test-and-set). Devuelve ErrInviteNotFound, ErrInviteUsed o ErrInviteExpired
	// cuando no puede canjearse.
	Claim(ctx context.Context, code string, now time.Time) (*entity.InviteCode, error)
	// CountExpired cuenta los códigos sin usar ya vencidos en now. No borra nada:
	// un código vencido queda como registro lógicamente muerto.
	CountExpired(ctx context.Context, now time.Time) (int64, error)
}
