package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// EmployeesPageSize tamaño fijo de página en el listado de empleados.
const EmployeesPageSize = 10

// PageRequest paginación por número de página (1-based).
type PageRequest struct {
	Page int `query:"page"`
}

// DefaultPage aplica valores por defecto si Page es inválido.
func (p *PageRequest) DefaultPage() {
	if p.Page < 1 {
		p.Page = 1
	}
}

// Offset devuelve el desplazamiento para un tamaño de página.
func (p PageRequest) Offset(size int) int {
	return (p.Page - 1) * size
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse cuerpo de respuestas informativas.
type MessageResponse struct {
	Message string `json:"message"`
}

// FlexInt acepta un entero como número JSON o como string numérico ("12").
// El valor cero se trata como ausente en las validaciones.
type FlexInt int

// UnmarshalJSON implementa json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("entero inválido %q", s)
		}
		*f = FlexInt(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexInt(n)
	return nil
}
