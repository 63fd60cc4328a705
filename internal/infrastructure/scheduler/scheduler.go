package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/empleados-api/pkg/logger"
)

// Job es una tarea periódica; recibe un contexto acotado por el timeout del scheduler.
type Job func(ctx context.Context) error

// Scheduler ejecuta tareas de mantenimiento en segundo plano sobre robfig/cron.
type Scheduler struct {
	cron    *cron.Cron
	log     *logger.Logger
	timeout time.Duration
}

// New crea el scheduler. timeout acota cada ejecución.
func New(log *logger.Logger, timeout time.Duration) *Scheduler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Scheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		log:     log,
		timeout: timeout,
	}
}

// Every registra job cada interval.
func (s *Scheduler) Every(name string, interval time.Duration, job Job) error {
	if interval <= 0 {
		return fmt.Errorf("scheduler: intervalo inválido para %s: %s", name, interval)
	}
	_, err := s.cron.AddFunc("@every "+interval.String(), func() { s.run(name, job) })
	if err != nil {
		return fmt.Errorf("scheduler: registrar %s: %w", name, err)
	}
	return nil
}

func (s *Scheduler) run(name string, job Job) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Str("job", name).Interface("panic", r).Msg("tarea programada abortada")
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := job(ctx); err != nil {
		s.log.Error().Err(err).Str("job", name).Msg("tarea programada fallida")
	}
}

// Len devuelve el número de tareas registradas.
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

// Start arranca el scheduler en su propia goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop detiene el scheduler y espera a que terminen las tareas en curso.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
