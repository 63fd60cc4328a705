package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/empleados-api/internal/application/auth"
	"github.com/jhoicas/empleados-api/internal/application/usecase"
	"github.com/jhoicas/empleados-api/internal/domain/repository"
	"github.com/jhoicas/empleados-api/internal/infrastructure/memory"
	"github.com/jhoicas/empleados-api/internal/infrastructure/postgres"
	"github.com/jhoicas/empleados-api/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/empleados-api/internal/interfaces/http"
	"github.com/jhoicas/empleados-api/pkg/config"
	"github.com/jhoicas/empleados-api/pkg/jwt"
	"github.com/jhoicas/empleados-api/pkg/logger"
	"github.com/jhoicas/empleados-api/pkg/password"
)

// storage agrupa los adaptadores de persistencia elegidos por STORE_DRIVER.
type storage struct {
	employees repository.EmployeeRepository
	invites   repository.InviteRepository
	tx        auth.TxRunner
	close     func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Store.Driver == "memory" {
		log.Warn().Msg("usando almacenamiento en memoria; los datos se pierden al reiniciar")
		st := memory.NewStore()
		return &storage{employees: st.Employees(), invites: st.Invites(), tx: st, close: func() {}}, nil
	}
	pool, err := postgres.NewPool(ctx, cfg.DB, postgres.PoolOptions{})
	if err != nil {
		return nil, err
	}
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &storage{
		employees: postgres.NewEmployeeRepository(pool),
		invites:   postgres.NewInviteRepository(pool),
		tx:        postgres.NewTxRunner(pool),
		close:     pool.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	codec, err := jwt.NewCodec(cfg.JWT.Secret, cfg.JWT.Issuer)
	if err != nil {
		log.Fatal().Err(err).Msg("configurar JWT")
	}
	hasher, err := password.NewHasher(cfg.Hash.Secret, cfg.Hash.Cost)
	if err != nil {
		log.Fatal().Err(err).Msg("configurar hash de contraseñas")
	}
	tokens := auth.NewTokenService(codec, time.Duration(cfg.JWT.Expiration)*time.Minute)

	if cfg.Bootstrap.Enabled() {
		created, err := auth.SeedAdmin(ctx, store.tx, hasher, auth.BootstrapAdmin{
			Username: cfg.Bootstrap.AdminUsername,
			Password: cfg.Bootstrap.AdminPassword,
			Email:    cfg.Bootstrap.AdminEmail,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("sembrar administrador inicial")
		}
		if created {
			log.Info().Str("username", cfg.Bootstrap.AdminUsername).Msg("administrador inicial creado")
		}
	}

	inviteUC := auth.NewInviteUseCase(store.invites, tokens, auth.NewCodeGenerator(cfg.Invite.CodeLength), auth.InviteConfig{
		TTL:          cfg.Invite.TTL(),
		RoleCodeBase: cfg.Invite.RoleCodeBase,
	})
	registerUC := auth.NewRegisterUseCase(store.tx, tokens, hasher)
	loginUC := auth.NewLoginUseCase(store.employees, tokens, hasher)
	employeeUC := usecase.NewEmployeeUseCase(store.employees, hasher)

	jobs := scheduler.New(log.Named("scheduler"), 30*time.Second)
	if interval := cfg.Invite.ReportInterval(); interval > 0 {
		monitor := auth.NewInviteMonitor(store.invites, log.Named("invites"))
		if err := jobs.Every("invite-report", interval, monitor.Report); err != nil {
			log.Fatal().Err(err).Msg("programar reporte de invitaciones")
		}
	}
	jobs.Start()
	defer jobs.Stop()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestID())
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Empleados API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		InviteUC:       inviteUC,
		RegisterUC:     registerUC,
		LoginUC:        loginUC,
		EmployeeUC:     employeeUC,
		Sessions:       tokens,
		Log:            log.Named("api"),
		RequestTimeout: cfg.HTTP.Timeout(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
