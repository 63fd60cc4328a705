package dto

import "time"

// EmployeeResponse salida de un empleado (sin digest de contraseña).
type EmployeeResponse struct {
	ID         string    `json:"id"`
	NEmployee  int       `json:"n_employee"`
	Username   string    `json:"username"`
	FirstName  string    `json:"firstName"`
	LastNameP  string    `json:"lastNameP"`
	LastNameM  string    `json:"lastNameM"`
	BirthDay   int       `json:"birthDay"`
	BirthMonth int       `json:"birthMonth"`
	BirthYear  int       `json:"birthYear"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Status     bool      `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// EmployeePage listado paginado de empleados.
type EmployeePage struct {
	Page       int                 `json:"page"`
	TotalPages int                 `json:"totalPages"`
	TotalUsers int                 `json:"totalUsers"`
	Users      []*EmployeeResponse `json:"users"`
}

// UpdateEmployeeRequest actualización de un empleado. Campos nil no se modifican.
// Role y Status se descartan en silencio si quien actualiza no es Administrador.
type UpdateEmployeeRequest struct {
	ID         string   `json:"id"`
	Username   *string  `json:"username"`
	FirstName  *string  `json:"firstName"`
	LastNameP  *string  `json:"lastNameP"`
	LastNameM  *string  `json:"lastNameM"`
	Password   *string  `json:"passHash"`
	BirthDay   *FlexInt `json:"birthDay"`
	BirthMonth *FlexInt `json:"birthMonth"`
	BirthYear  *FlexInt `json:"birthYear"`
	Email      *string  `json:"email"`
	Role       *string  `json:"role"`
	Status     *bool    `json:"status"`
}

// SetStatusRequest activa o desactiva un empleado.
type SetStatusRequest struct {
	ID     string `json:"id"`
	Active *bool  `json:"active"`
}
