package auth

import (
	"context"
	"time"

	"github.com/jhoicas/empleados-api/internal/domain/repository"
	"github.com/jhoicas/empleados-api/pkg/logger"
)

// InviteMonitor reporta cuántos códigos vencieron sin canjearse. Solo lee:
// un código vencido sigue en la tabla y su canje se rechaza como vencido.
type InviteMonitor struct {
	invites repository.InviteRepository
	log     *logger.Logger
	now     Clock
}

// NewInviteMonitor construye el reporte periódico de invitaciones vencidas.
func NewInviteMonitor(invites repository.InviteRepository, log *logger.Logger) *InviteMonitor {
	return &InviteMonitor{invites: invites, log: log, now: time.Now}
}

// WithClock reemplaza el reloj.
func (m *InviteMonitor) WithClock(now Clock) *InviteMonitor {
	m.now = now
	return m
}

// Report cuenta las vencidas sin usar y lo registra si hay alguna.
func (m *InviteMonitor) Report(ctx context.Context) error {
	n, err := m.invites.CountExpired(ctx, m.now())
	if err != nil {
		return err
	}
	if n > 0 {
		m.log.Info().Int64("expired_unused", n).Msg("invitaciones vencidas sin usar")
	}
	return nil
}
