package auth

import (
	"github.com/jhoicas/empleados-api/internal/application/dto"
	"github.com/jhoicas/empleados-api/internal/domain/entity"
)

// ToEmployeeResponse proyecta solo campos no sensibles.
func ToEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	if e == nil {
		return nil
	}
	return &dto.EmployeeResponse{
		ID:         e.ID,
		NEmployee:  e.NEmployee,
		Username:   e.Username,
		FirstName:  e.FirstName,
		LastNameP:  e.LastNameP,
		LastNameM:  e.LastNameM,
		BirthDay:   e.BirthDay,
		BirthMonth: e.BirthMonth,
		BirthYear:  e.BirthYear,
		Email:      e.Email,
		Role:       e.Role.String(),
		Status:     e.Status,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}
