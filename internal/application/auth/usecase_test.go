package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/memstore"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/Almacen-api/pkg/jwt"
)

func newUseCase() (*auth.UseCase, *memstore.Store) {
	store := memstore.New()
	uc := auth.NewUseCase(store.Users(), auth.JWTConfig{
		Secret:     "secret-de-prueba",
		ExpMinutes: 60,
		Issuer:     "almacen-api-test",
	})
	return uc, store
}

func TestRegisterYLogin_FlujoCompleto(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	user, err := uc.Register(ctx, dto.RegisterRequest{
		Username: "mgarcia",
		Password: "s3creta",
		Role:     entity.RoleManager,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, user.Role)
	assert.Equal(t, entity.StatusActive, user.Status)

	resp, err := uc.Login(ctx, dto.LoginRequest{Username: "mgarcia", Password: "s3creta"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	userID, role, err := pkgjwt.Parse("secret-de-prueba", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, entity.RoleManager, role)
}

func TestRegister_RolPorDefectoYValidaciones(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	user, err := uc.Register(ctx, dto.RegisterRequest{Username: "clerk1", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleClerk, user.Role, "sin rol explícito se asigna CLERK")

	_, err = uc.Register(ctx, dto.RegisterRequest{Username: "", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Register(ctx, dto.RegisterRequest{Username: "u2", Password: "x", Role: "SUPERADMIN"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Register(ctx, dto.RegisterRequest{Username: "clerk1", Password: "y"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLogin_Rechazos(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Username: "ana", Password: "correcta"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "desconocido", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestEnsureAdmin_CreaUnaSolaVez(t *testing.T) {
	uc, store := newUseCase()
	ctx := context.Background()

	require.NoError(t, uc.EnsureAdmin(ctx, "admin", "bootstrap"))

	admin, err := store.Users().FindByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, entity.RoleAdmin, admin.Role)

	// Idempotente: una segunda llamada no duplica ni falla.
	require.NoError(t, uc.EnsureAdmin(ctx, "admin", "otra-clave"))
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "bootstrap"})
	assert.NoError(t, err, "la contraseña original sigue vigente")

	// Password vacío: no-op.
	require.NoError(t, uc.EnsureAdmin(ctx, "otro", ""))
	missing, err := store.Users().FindByUsername(ctx, "otro")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
