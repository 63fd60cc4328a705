package auth_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/empleados-api/internal/application/auth"
	"github.com/jhoicas/empleados-api/internal/application/dto"
	"github.com/jhoicas/empleados-api/internal/domain/entity"
	"github.com/jhoicas/empleados-api/internal/infrastructure/memory"
	"github.com/jhoicas/empleados-api/pkg/jwt"
	"github.com/jhoicas/empleados-api/pkg/password"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "empleados-api-test"
)

var adminIdentity = entity.Identity{
	ID:       "00000000-0000-0000-0000-000000000001",
	Username: "root",
	Role:     entity.RoleAdministrador,
}

// testEnv arma los casos de uso sobre el almacén en memoria.
type testEnv struct {
	store    *memory.Store
	tokens   *auth.TokenService
	hasher   *password.Hasher
	invite   *auth.InviteUseCase
	register *auth.RegisterUseCase
	login    *auth.LoginUseCase
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	codec, err := jwt.NewCodec(testSecret, testIssuer)
	require.NoError(t, err)
	hasher, err := password.NewHasher("pepper", bcrypt.MinCost)
	require.NoError(t, err)

	store := memory.NewStore()
	tokens := auth.NewTokenService(codec, time.Hour)
	return &testEnv{
		store:    store,
		tokens:   tokens,
		hasher:   hasher,
		invite:   auth.NewInviteUseCase(store.Invites(), tokens, auth.NewCodeGenerator(5), auth.InviteConfig{TTL: time.Hour}),
		register: auth.NewRegisterUseCase(store, tokens, hasher),
		login:    auth.NewLoginUseCase(store.Employees(), tokens, hasher),
	}
}

func (e *testEnv) issue(t *testing.T, role interface{}, email string) string {
	t.Helper()
	out, err := e.invite.Issue(context.Background(), adminIdentity, dto.InviteRequest{Role: role, Email: email})
	require.NoError(t, err)
	return out.Code
}

func registerRequest(username, code string) dto.RegisterRequest {
	return dto.RegisterRequest{
		Username:   username,
		FirstName:  "John",
		LastNameP:  "Doe",
		LastNameM:  "Roe",
		PassHash:   "s3creta!",
		BirthDay:   12,
		BirthMonth: 3,
		BirthYear:  1990,
		InviteCode: code,
	}
}

// sequenceCodes devuelve los códigos en orden y repite el último.
type sequenceCodes struct {
	codes []string
	i     int
}

func (s *sequenceCodes) Generate() (string, error) {
	c := s.codes[s.i]
	if s.i < len(s.codes)-1 {
		s.i++
	}
	return c, nil
}

func jsonUnmarshal(s string, v interface{}) error {
	return json.Unmarshal([]byte(s), v)
}
