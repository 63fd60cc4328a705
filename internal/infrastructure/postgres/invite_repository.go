package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/empleados-api/internal/domain"
	"github.com/jhoicas/empleados-api/internal/domain/entity"
	"github.com/jhoicas/empleados-api/internal/domain/repository"
)

var _ repository.InviteRepository = (*InviteRepo)(nil)

// InviteRepo implementación de InviteRepository sobre PostgreSQL (usable con pool o tx).
type InviteRepo struct {
	q Querier
}

// NewInviteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInviteRepository(q Querier) *InviteRepo {
	return &InviteRepo{q: q}
}

// Create persiste un código nuevo; ErrConflict si el código ya existe.
func (r *InviteRepo) Create(ctx context.Context, inv *entity.InviteCode) error {
	query := `
		INSERT INTO invite_codes (code, token, used, expires_at, created_by, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, '')::uuid, $6)`
	_, err := r.q.Exec(ctx, query, inv.Code, inv.Token, inv.Used, inv.ExpiresAt, inv.CreatedBy, inv.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert invite code: %w", err)
	}
	return nil
}

// Exists indica si el código ya fue emitido.
func (r *InviteRepo) Exists(ctx context.Context, code string) (bool, error) {
	var ok bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM invite_codes WHERE code = $1)`, code).Scan(&ok); err != nil {
		return false, fmt.Errorf("exists invite code: %w", err)
	}
	return ok, nil
}

// GetByCode obtiene un código; (nil, nil) si no existe.
func (r *InviteRepo) GetByCode(ctx context.Context, code string) (*entity.InviteCode, error) {
	query := `
		SELECT code, token, used, expires_at, COALESCE(created_by::text, ''), created_at
		FROM invite_codes WHERE code = $1`
	var inv entity.InviteCode
	err := r.q.QueryRow(ctx, query, code).Scan(
		&inv.Code, &inv.Token, &inv.Used, &inv.ExpiresAt, &inv.CreatedBy, &inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invite code: %w", err)
	}
	return &inv, nil
}

// Claim es un UPDATE condicional: solo una transacción puede pasar used de false a true.
// Una segunda transacción concurrente espera el lock de fila y, tras el commit de la
// primera, ya no cumple la condición. Si la primera hace rollback, la segunda procede.
func (r *InviteRepo) Claim(ctx context.Context, code string, now time.Time) (*entity.InviteCode, error) {
	query := `
		UPDATE invite_codes SET used = TRUE
		WHERE code = $1 AND used = FALSE AND expires_at > $2
		RETURNING code, token, used, expires_at, COALESCE(created_by::text, ''), created_at`
	var inv entity.InviteCode
	err := r.q.QueryRow(ctx, query, code, now).Scan(
		&inv.Code, &inv.Token, &inv.Used, &inv.ExpiresAt, &inv.CreatedBy, &inv.CreatedAt,
	)
	if err == nil {
		return &inv, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("claim invite code: %w", err)
	}
	// No se pudo reclamar: averiguar el motivo para el mensaje.
	existing, err := r.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrInviteNotFound
	}
	if err := existing.CheckRedeemable(now); err != nil {
		return nil, err
	}
	return nil, domain.ErrInviteUsed
}

// CountExpired cuenta los códigos sin usar vencidos en now.
func (r *InviteRepo) CountExpired(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	query := `SELECT COUNT(*) FROM invite_codes WHERE used = FALSE AND expires_at <= $1`
	if err := r.q.QueryRow(ctx, query, now).Scan(&n); err != nil {
		return 0, fmt.Errorf("count expired invite codes: %w", err)
	}
	return n, nil
}
