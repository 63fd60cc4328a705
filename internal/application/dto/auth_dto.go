package dto

import "time"

// InviteRequest entrada para emitir una invitación. Role acepta nombre o código numérico.
type InviteRequest struct {
	Role  interface{} `json:"role"`
	Email string      `json:"email"`
}

// InviteResponse salida con el código corto a compartir.
type InviteResponse struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// RegisterRequest entrada para registro con código de invitación.
// PassHash es la contraseña en claro (nombre heredado del formulario); se hashea en el caso de uso.
// Cualquier role/email enviado por el cliente se ignora: salen del token de la invitación.
type RegisterRequest struct {
	Username   string  `json:"username"`
	FirstName  string  `json:"firstName"`
	LastNameP  string  `json:"lastNameP"`
	LastNameM  string  `json:"lastNameM"`
	PassHash   string  `json:"passHash"`
	BirthDay   FlexInt `json:"birthDay"`
	BirthMonth FlexInt `json:"birthMonth"`
	BirthYear  FlexInt `json:"birthYear"`
	InviteCode string  `json:"inviteCode"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse salida con token de sesión.
type LoginResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}
