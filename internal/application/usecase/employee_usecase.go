package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/empleados-api/internal/application/auth"
	"github.com/jhoicas/empleados-api/internal/application/dto"
	"github.com/jhoicas/empleados-api/internal/domain"
	"github.com/jhoicas/empleados-api/internal/domain/entity"
	"github.com/jhoicas/empleados-api/internal/domain/repository"
)

// EmployeeUseCase aplica reglas de negocio para la gestión de empleados.
type EmployeeUseCase struct {
	repo   repository.EmployeeRepository
	hasher auth.PasswordHasher
	now    auth.Clock
}

// NewEmployeeUseCase construye el caso de uso con el puerto de persistencia.
func NewEmployeeUseCase(repo repository.EmployeeRepository, hasher auth.PasswordHasher) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo, hasher: hasher, now: time.Now}
}

// List devuelve una página de tamaño fijo.
func (uc *EmployeeUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.EmployeePage, error) {
	page.DefaultPage()
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, dto.EmployeesPageSize, page.Offset(dto.EmployeesPageSize))
	if err != nil {
		return nil, err
	}
	users := make([]*dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		users = append(users, auth.ToEmployeeResponse(e))
	}
	return &dto.EmployeePage{
		Page:       page.Page,
		TotalPages: (total + dto.EmployeesPageSize - 1) / dto.EmployeesPageSize,
		TotalUsers: total,
		Users:      users,
	}, nil
}

// Me devuelve el registro del propio solicitante.
func (uc *EmployeeUseCase) Me(ctx context.Context, actor entity.Identity) (*dto.EmployeeResponse, error) {
	e, err := uc.repo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrEmployeeNotFound
	}
	return auth.ToEmployeeResponse(e), nil
}

// Update aplica una actualización. Un empleado puede editarse a sí mismo; solo quien
// tiene OpManageEmployees edita a otros y cambia rol o estado (si no, se descartan).
func (uc *EmployeeUseCase) Update(ctx context.Context, actor entity.Identity, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, domain.NewFieldError("id")
	}
	canManage := auth.Allowed(auth.OpManageEmployees, actor.Role)
	if !canManage && actor.ID != in.ID {
		return nil, domain.ErrForbidden
	}
	if !canManage {
		in.Role = nil
		in.Status = nil
	}

	e, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrEmployeeNotFound
	}

	if err := uc.apply(ctx, e, in); err != nil {
		return nil, err
	}
	e.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return auth.ToEmployeeResponse(e), nil
}

func (uc *EmployeeUseCase) apply(ctx context.Context, e *entity.Employee, in dto.UpdateEmployeeRequest) error {
	if in.Username != nil {
		username := entity.NormalizeUsername(*in.Username)
		if username == "" {
			return domain.NewFieldError("username")
		}
		if username != e.Username {
			exists, err := uc.repo.ExistsByUsername(ctx, username)
			if err != nil {
				return err
			}
			if exists {
				return domain.ErrUsernameExists
			}
			e.Username = username
		}
	}
	if in.Email != nil {
		email := entity.NormalizeEmail(*in.Email)
		if email == "" {
			return domain.NewFieldError("email")
		}
		if email != e.Email {
			exists, err := uc.repo.ExistsByEmail(ctx, email)
			if err != nil {
				return err
			}
			if exists {
				return domain.ErrEmailExists
			}
			e.Email = email
		}
	}
	setString(&e.FirstName, in.FirstName)
	setString(&e.LastNameP, in.LastNameP)
	setString(&e.LastNameM, in.LastNameM)
	setInt(&e.BirthDay, in.BirthDay)
	setInt(&e.BirthMonth, in.BirthMonth)
	setInt(&e.BirthYear, in.BirthYear)

	if in.Password != nil && *in.Password != "" {
		hash, err := uc.hasher.Hash(*in.Password)
		if err != nil {
			return err
		}
		e.PassHash = hash
	}
	if in.Role != nil {
		role, err := entity.ParseRole(*in.Role)
		if err != nil {
			return err
		}
		e.Role = role
	}
	if in.Status != nil {
		e.Status = *in.Status
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil && strings.TrimSpace(*v) != "" {
		*dst = strings.TrimSpace(*v)
	}
}

func setInt(dst *int, v *dto.FlexInt) {
	if v != nil && *v != 0 {
		*dst = int(*v)
	}
}

// SetStatus activa o desactiva un empleado.
func (uc *EmployeeUseCase) SetStatus(ctx context.Context, in dto.SetStatusRequest) (*dto.EmployeeResponse, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, domain.NewFieldError("id")
	}
	if in.Active == nil {
		return nil, domain.NewFieldError("active")
	}
	e, err := uc.repo.SetStatus(ctx, in.ID, *in.Active)
	if err != nil {
		return nil, err
	}
	return auth.ToEmployeeResponse(e), nil
}
