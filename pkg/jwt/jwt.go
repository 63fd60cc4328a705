package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token expirado")
	ErrTokenInvalid = errors.New("token inválido")
	ErrEmptySecret  = errors.New("jwt: secret vacío")
)

// Audiencias: un token de invitación nunca sirve como sesión y viceversa.
const (
	AudienceSession = "session"
	AudienceInvite  = "invite"
)

// SessionClaims incluye los claims estándar JWT más la identidad del empleado.
// Role va en el token para que el middleware RBAC decida sin consultar la DB.
type SessionClaims struct {
	jwt.RegisteredClaims
	UserID   string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// InviteClaims son los datos firmados de una invitación.
type InviteClaims struct {
	jwt.RegisteredClaims
	Role  string `json:"role"`
	Email string `json:"email"`
}

// Codec firma y verifica tokens HS256 con un secreto simétrico.
type Codec struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewCodec construye el codec. El secreto es obligatorio.
func NewCodec(secret, issuer string) (*Codec, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Codec{secret: []byte(secret), issuer: issuer, now: time.Now}, nil
}

// WithClock reemplaza el reloj usado al emitir y validar.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	cp := *c
	cp.now = now
	return &cp
}

// GenerateSession emite el token de sesión que el cliente presenta como Bearer.
func (c *Codec) GenerateSession(userID, username, role string, ttl time.Duration) (string, time.Time, error) {
	now := c.now()
	exp := now.Add(ttl)
	claims := SessionClaims{
		RegisteredClaims: c.registered(userID, AudienceSession, now, exp),
		UserID:           userID,
		Username:         username,
		Role:             role,
	}
	token, err := c.sign(claims)
	return token, exp, err
}

// ParseSession valida firma, algoritmo, audiencia y expiración del token de sesión.
func (c *Codec) ParseSession(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if err := c.parse(tokenString, claims, AudienceSession); err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// GenerateInvite emite el token firmado {role, email} que envuelve un código de invitación.
func (c *Codec) GenerateInvite(role, email string, ttl time.Duration) (string, time.Time, error) {
	now := c.now()
	exp := now.Add(ttl)
	claims := InviteClaims{
		RegisteredClaims: c.registered(email, AudienceInvite, now, exp),
		Role:             role,
		Email:            email,
	}
	token, err := c.sign(claims)
	return token, exp, err
}

// ParseInvite valida el token de invitación; nunca devuelve claims parciales.
func (c *Codec) ParseInvite(tokenString string) (*InviteClaims, error) {
	claims := &InviteClaims{}
	if err := c.parse(tokenString, claims, AudienceInvite); err != nil {
		return nil, err
	}
	if claims.Role == "" || claims.Email == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func (c *Codec) registered(subject, audience string, now, exp time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Issuer:    c.issuer,
		Subject:   subject,
		Audience:  jwt.ClaimStrings{audience},
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
}

func (c *Codec) sign(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("firmar token: %w", err)
	}
	return s, nil
}

func (c *Codec) parse(tokenString string, claims jwt.Claims, audience string) error {
	if tokenString == "" {
		return ErrTokenInvalid
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithAudience(audience),
		jwt.WithTimeFunc(c.now),
	}
	if c.issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return c.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return ErrTokenInvalid
	}
	if !token.Valid {
		return ErrTokenInvalid
	}
	return nil
}
