package password

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost costo bcrypt por defecto.
const DefaultCost = 10

var ErrEmptySecret = errors.New("password: secret vacío")

// Hasher combina la contraseña con el secreto del despliegue antes de aplicar bcrypt,
// de modo que un digest filtrado no puede validarse sin conocer también el secreto.
type Hasher struct {
	secret string
	cost   int
}

// NewHasher construye el hasher. cost fuera del rango de bcrypt es un error de configuración.
func NewHasher(secret string, cost int) (*Hasher, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if cost == 0 {
		cost = DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("password: costo bcrypt fuera de rango: %d", cost)
	}
	return &Hasher{secret: secret, cost: cost}, nil
}

// Hash devuelve el digest bcrypt de password+secret.
func (h *Hasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword(h.material(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Verify compara password contra digest. Un digest malformado es simplemente false.
func (h *Hasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), h.material(password)) == nil
}

// bcrypt solo usa los primeros 72 bytes; password+secret se reduce con SHA-256
// para que ni una contraseña larga ni un secreto largo se trunquen.
func (h *Hasher) material(password string) []byte {
	sum := sha256.Sum256([]byte(password + h.secret))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}
