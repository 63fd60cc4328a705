package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/empleados-api/internal/application/dto"
	"github.com/jhoicas/empleados-api/internal/domain"
	"github.com/jhoicas/empleados-api/pkg/logger"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// errorTable se recorre en orden; gana la primera coincidencia con errors.Is.
var errorTable = []errorMapping{
	{domain.ErrMissingInvite, fiber.StatusBadRequest, "MISSING_INVITE"},
	{domain.ErrInviteNotFound, fiber.StatusBadRequest, "INVALID_INVITE"},
	{domain.ErrInviteExpired, fiber.StatusBadRequest, "INVALID_INVITE"},
	{domain.ErrInviteInvalid, fiber.StatusBadRequest, "INVALID_INVITE"},
	{domain.ErrInviteUsed, fiber.StatusConflict, "INVITE_USED"},
	{domain.ErrInvalidRole, fiber.StatusBadRequest, "INVALID_ROLE"},
	{domain.ErrMissingField, fiber.StatusBadRequest, "MISSING_FIELD"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrUsernameExists, fiber.StatusConflict, "USERNAME_EXISTS"},
	{domain.ErrEmailExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrEmployeeNumberUsed, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrMissingCredentials, fiber.StatusBadRequest, "MISSING_CREDENTIALS"},
	{domain.ErrEmployeeNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_PASSWORD"},
	{domain.ErrAccountInactive, fiber.StatusForbidden, "ACCOUNT_INACTIVE"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{context.DeadlineExceeded, fiber.StatusGatewayTimeout, "TIMEOUT"},
}

// writeError traduce un error de dominio a la respuesta HTTP. Lo no clasificado
// es un 500 con mensaje genérico y se registra con el error real.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var fe *domain.FieldError
	if errors.As(err, &fe) {
		code := "MISSING_FIELD"
		if errors.Is(fe, domain.ErrInvalidInput) {
			code = "VALIDATION"
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: fe.Error()})
	}
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: m.err.Error()})
		}
	}
	log.Error().
		Err(err).
		Str("request_id", requestID(c)).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error no controlado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
