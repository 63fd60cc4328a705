package entity

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// EmployeeNumberFloor es la base de la numeración: el primer empleado recibe 1001.
const EmployeeNumberFloor = 1000

// Employee representa un empleado con acceso al sistema.
type Employee struct {
	ID         string
	NEmployee  int
	Username   string
	FirstName  string
	LastNameP  string
	LastNameM  string
	PassHash   string // bcrypt; nunca sale en respuestas al cliente
	BirthDay   int
	BirthMonth int
	BirthYear  int
	Email      string // siempre proviene del claim de la invitación al registrarse
	Role       Role   // siempre proviene del claim de la invitación al registrarse
	Status     bool   // activo/inactivo; solo lo cambia un Administrador
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NextEmployeeNumber devuelve max(actual, 1000) + 1.
func NextEmployeeNumber(currentMax int) int {
	if currentMax < EmployeeNumberFloor {
		currentMax = EmployeeNumberFloor
	}
	return currentMax + 1
}

// NormalizeUsername recorta espacios y normaliza a NFC; la comparación sigue siendo sensible a mayúsculas.
func NormalizeUsername(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// NormalizeEmail recorta espacios y pliega mayúsculas.
func NormalizeEmail(s string) string {
	return foldString(norm.NFC.String(strings.TrimSpace(s)))
}
