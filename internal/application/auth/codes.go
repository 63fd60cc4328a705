package auth

import (
	"crypto/rand"
	"math/big"
)

// InviteAlphabet letras mayúsculas y dígitos.
const InviteAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomCodeGenerator genera códigos uniformes sobre InviteAlphabet con crypto/rand.
type RandomCodeGenerator struct {
	length int
}

// NewCodeGenerator construye el generador con la longitud indicada.
func NewCodeGenerator(length int) *RandomCodeGenerator {
	return &RandomCodeGenerator{length: length}
}

// Generate implementa CodeGenerator.
func (g *RandomCodeGenerator) Generate() (string, error) {
	max := big.NewInt(int64(len(InviteAlphabet)))
	out := make([]byte, g.length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = InviteAlphabet[n.Int64()]
	}
	return string(out), nil
}
