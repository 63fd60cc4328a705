package auth

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/jhoicas/empleados-api/internal/application/dto"
	"github.com/jhoicas/empleados-api/internal/domain"
)

type namedField struct {
	name  string
	value interface{}
}

// firstMissing devuelve un FieldError con el primer campo vacío, en el orden dado.
func firstMissing(fields ...namedField) error {
	for _, f := range fields {
		if s, ok := f.value.(string); ok {
			f.value = strings.TrimSpace(s)
		}
		if err := validation.Validate(f.value, validation.Required); err != nil {
			return domain.NewFieldError(f.name)
		}
	}
	return nil
}

func validateRegistration(in dto.RegisterRequest, now time.Time) error {
	if err := firstMissing(
		namedField{"username", in.Username},
		namedField{"firstName", in.FirstName},
		namedField{"lastNameP", in.LastNameP},
		namedField{"lastNameM", in.LastNameM},
		namedField{"passHash", in.PassHash},
		namedField{"birthDay", int(in.BirthDay)},
		namedField{"birthMonth", int(in.BirthMonth)},
		namedField{"birthYear", int(in.BirthYear)},
	); err != nil {
		return err
	}
	return validateBirthDate(int(in.BirthDay), int(in.BirthMonth), int(in.BirthYear), now)
}

func validateBirthDate(day, month, year int, now time.Time) error {
	if err := validation.Validate(day, validation.Min(1), validation.Max(31)); err != nil {
		return domain.NewInvalidFieldError("birthDay")
	}
	if err := validation.Validate(month, validation.Min(1), validation.Max(12)); err != nil {
		return domain.NewInvalidFieldError("birthMonth")
	}
	if err := validation.Validate(year, validation.Min(1900), validation.Max(now.Year())); err != nil {
		return domain.NewInvalidFieldError("birthYear")
	}
	// 31 de febrero, etc.
	if d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC); d.Day() != day {
		return domain.NewInvalidFieldError("birthDay")
	}
	return nil
}

func validateLogin(in dto.LoginRequest) error {
	if strings.TrimSpace(in.Username) == "" || in.Password == "" {
		return domain.ErrMissingCredentials
	}
	return nil
}
