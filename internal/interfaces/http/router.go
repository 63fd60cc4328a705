package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/empleados-api/internal/application/auth"
	"github.com/jhoicas/empleados-api/internal/application/usecase"
	"github.com/jhoicas/empleados-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InviteUC       *auth.InviteUseCase
	RegisterUC     *auth.RegisterUseCase
	LoginUC        *auth.LoginUseCase
	EmployeeUC     *usecase.EmployeeUseCase
	Sessions       SessionVerifier
	Log            *logger.Logger
	RequestTimeout time.Duration
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.RequestTimeout <= 0 {
		deps.RequestTimeout = 10 * time.Second
	}
	api := app.Group("/api", Timeout(deps.RequestTimeout))

	authHandler := NewAuthHandler(deps.InviteUC, deps.RegisterUC, deps.LoginUC, deps.Log)
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC, deps.Log)
	guard := AuthMiddleware(deps.Sessions)

	// Auth (público)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)

	// Rutas protegidas: sesión + tabla de permisos por operación
	authGroup.Post("/invite", guard, RequirePermission(auth.OpIssueInvite), authHandler.Invite)
	authGroup.Get("/me", guard, RequirePermission(auth.OpViewSelf), employeeHandler.Me)
	authGroup.Get("/employees", guard, RequirePermission(auth.OpListEmployees), employeeHandler.List)
	authGroup.Put("/employees", guard, RequirePermission(auth.OpUpdateEmployee), employeeHandler.Update)
	authGroup.Patch("/employees", guard, RequirePermission(auth.OpSetEmployeeStatus), employeeHandler.SetStatus)
}
