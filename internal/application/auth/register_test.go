package auth_test

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/empleados-api/internal/application/auth"
	"github.com/jhoicas/empleados-api/internal/application/dto"
	"github.com/jhoicas/empleados-api/internal/domain"
	"github.com/jhoicas/empleados-api/internal/domain/entity"
	"github.com/jhoicas/empleados-api/internal/domain/repository"
)

func TestRegister_FlujoCompleto(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	code := env.issue(t, "Cajero", "a@b.com")

	out, err := env.register.Register(ctx, registerRequest("jdoe", code))
	require.NoError(t, err)
	assert.Equal(t, 1001, out.NEmployee)
	assert.Equal(t, "jdoe", out.Username)
	assert.Equal(t, "vendedor", out.Role)
	assert.Equal(t, "a@b.com", out.Email)
	assert.True(t, out.Status)

	stored, err := env.store.Employees().GetByUsername(ctx, "jdoe")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "s3creta!", stored.PassHash)
	assert.True(t, env.hasher.Verify("s3creta!", stored.PassHash))

	inv, err := env.store.Invites().GetByCode(ctx, code)
	require.NoError(t, err)
	assert.True(t, inv.Used)
}

func TestRegister_NumerosConsecutivos(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	first, err := env.register.Register(ctx, registerRequest("uno", env.issue(t, "vendedor", "uno@b.com")))
	require.NoError(t, err)
	second, err := env.register.Register(ctx, registerRequest("dos", env.issue(t, "vendedor", "dos@b.com")))
	require.NoError(t, err)

	assert.Equal(t, 1001, first.NEmployee)
	assert.Equal(t, 1002, second.NEmployee)
}

func TestRegister_CodigoEnMinusculasSeNormaliza(t *testing.T) {
	env := newEnv(t)
	code := env.issue(t, "vendedor", "a@b.com")

	_, err := env.register.Register(context.Background(), registerRequest("jdoe", "  "+strings.ToLower(code)+" "))
	assert.NoError(t, err)
}

func TestRegister_CodigoReutilizadoSeRechaza(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	code := env.issue(t, "vendedor", "a@b.com")

	_, err := env.register.Register(ctx, registerRequest("jdoe", code))
	require.NoError(t, err)

	_, err = env.register.Register(ctx, registerRequest("otro", code))
	assert.ErrorIs(t, err, domain.ErrInviteUsed)

	n, err := env.store.Employees().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRegister_CodigoInexistenteNoCreaEmpleado(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	_, err := env.register.Register(ctx, registerRequest("jdoe", "ZZZZZ"))
	assert.ErrorIs(t, err, domain.ErrInviteNotFound)

	_, err = env.register.Register(ctx, registerRequest("jdoe", "   "))
	assert.ErrorIs(t, err, domain.ErrMissingInvite)

	n, err := env.store.Employees().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRegister_CodigoExpirado(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	code := env.issue(t, "vendedor", "a@b.com")

	later := time.Now().Add(2 * time.Hour)
	_, err := env.register.WithClock(func() time.Time { return later }).Register(ctx, registerRequest("jdoe", code))
	assert.ErrorIs(t, err, domain.ErrInviteExpired)

	inv, err := env.store.Invites().GetByCode(ctx, code)
	require.NoError(t, err)
	assert.False(t, inv.Used)
}

func TestRegister_CampoFaltanteNoConsumeCodigo(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	code := env.issue(t, "vendedor", "a@b.com")

	in := registerRequest("jdoe", code)
	in.LastNameP = "  "
	_, err := env.register.Register(ctx, in)
	var fe *domain.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "lastNameP", fe.Field)
	assert.Equal(t, "Missing field: lastNameP", fe.Error())

	// El reclamo se revirtió: el mismo código sigue sirviendo.
	_, err = env.register.Register(ctx, registerRequest("jdoe", code))
	assert.NoError(t, err)
}

func TestRegister_FechaInexistente(t *testing.T) {
	env := newEnv(t)
	in := registerRequest("jdoe", env.issue(t, "vendedor", "a@b.com"))
	in.BirthDay = 31
	in.BirthMonth = 2

	_, err := env.register.Register(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_UsernameDuplicado(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	_, err := env.register.Register(ctx, registerRequest("jdoe", env.issue(t, "vendedor", "a@b.com")))
	require.NoError(t, err)

	second := env.issue(t, "vendedor", "c@d.com")
	_, err = env.register.Register(ctx, registerRequest(" jdoe ", second))
	assert.ErrorIs(t, err, domain.ErrUsernameExists)

	inv, err := env.store.Invites().GetByCode(ctx, second)
	require.NoError(t, err)
	assert.False(t, inv.Used, "un registro fallido no debe consumir el código")
}

func TestRegister_EmailDuplicado(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	_, err := env.register.Register(ctx, registerRequest("jdoe", env.issue(t, "vendedor", "a@b.com")))
	require.NoError(t, err)

	_, err = env.register.Register(ctx, registerRequest("otro", env.issue(t, "almacenista", "A@B.COM")))
	assert.ErrorIs(t, err, domain.ErrEmailExists)
}

func TestRegister_RolYEmailSalenDelToken(t *testing.T) {
	env := newEnv(t)
	code := env.issue(t, "vendedor", "a@b.com")

	// El formulario no tiene campos de rol ni email: aunque el JSON los traiga, se ignoran.
	var in dto.RegisterRequest
	require.NoError(t, jsonUnmarshal(`{
		"username": "jdoe", "firstName": "John", "lastNameP": "Doe", "lastNameM": "Roe",
		"passHash": "s3creta!", "birthDay": 1, "birthMonth": 1, "birthYear": 1990,
		"role": "administrador", "email": "root@empresa.com", "inviteCode": "`+code+`"}`, &in))

	out, err := env.register.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVendedor.String(), out.Role)
	assert.Equal(t, "a@b.com", out.Email)
}

func TestRegister_CanjeConcurrenteUnSoloGanador(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	code := env.issue(t, "vendedor", "a@b.com")

	const n = 16
	var ok, used atomic.Int32
	var wg conc.WaitGroup
	for i := 0; i < n; i++ {
		username := "user" + string(rune('a'+i))
		wg.Go(func() {
			_, err := env.register.Register(ctx, registerRequest(username, code))
			switch {
			case err == nil:
				ok.Add(1)
			case assert.ErrorIs(t, err, domain.ErrInviteUsed):
				used.Add(1)
			}
		})
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(n-1), used.Load())

	count, err := env.store.Employees().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

// trackingTx marca cuándo hay una transacción abierta.
type trackingTx struct {
	inner auth.TxRunner
	open  atomic.Bool
}

func (tx *trackingTx) Run(ctx context.Context, fn func(repository.EmployeeRepository, repository.InviteRepository) error) error {
	tx.open.Store(true)
	defer tx.open.Store(false)
	return tx.inner.Run(ctx, fn)
}

// txAwareHasher registra si Hash se llamó con la transacción abierta.
type txAwareHasher struct {
	auth.PasswordHasher
	tx       *trackingTx
	calls    atomic.Int32
	insideTx atomic.Int32
}

func (h *txAwareHasher) Hash(password string) (string, error) {
	h.calls.Add(1)
	if h.tx.open.Load() {
		h.insideTx.Add(1)
	}
	return h.PasswordHasher.Hash(password)
}

func TestRegister_HashFueraDeLaTransaccion(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	code := env.issue(t, "vendedor", "a@b.com")

	tx := &trackingTx{inner: env.store}
	hasher := &txAwareHasher{PasswordHasher: env.hasher, tx: tx}
	register := auth.NewRegisterUseCase(tx, env.tokens, hasher)

	out, err := register.Register(ctx, registerRequest("jdoe", code))
	require.NoError(t, err)
	assert.Equal(t, int32(1), hasher.calls.Load())
	assert.Zero(t, hasher.insideTx.Load(), "bcrypt no debe correr con el almacén bloqueado")

	// el hash guardado corresponde a la contraseña enviada
	e, err := env.store.Employees().GetByID(ctx, out.ID)
	require.NoError(t, err)
	assert.True(t, env.hasher.Verify("s3creta!", e.PassHash))

	// sin contraseña no se calcula hash y el error sigue siendo el del campo
	code = env.issue(t, "vendedor", "c@d.com")
	in := registerRequest("otro", code)
	in.PassHash = ""
	_, err = register.Register(ctx, in)
	var fe *domain.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "passHash", fe.Field)
	assert.Equal(t, int32(1), hasher.calls.Load())
}
