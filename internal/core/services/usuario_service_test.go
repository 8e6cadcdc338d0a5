package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatarra-market/internal/adapters/persistence/models"
	"chatarra-market/internal/adapters/persistence/repositories"
	"chatarra-market/internal/core/domain"
	"chatarra-market/internal/core/services"
	"chatarra-market/internal/pkg/testkit"
)

func TestUsuarioService_CambiarRol(t *testing.T) {
	db := testkit.NewDB(t)
	svc := services.NewUsuarioService(repositories.NewUsuarioRepository(db), repositories.NewRefreshTokenRepository(db))
	ctx := context.Background()
	admin := testkit.CreateUsuario(t, db, "admin@test.com", domain.RolAdmin)
	v := testkit.CreateUsuario(t, db, "v@test.com", domain.RolVendedor)

	res, err := svc.CambiarRol(ctx, admin.ID, v.ID, "admin")
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", res.Rol)

	_, err = svc.CambiarRol(ctx, admin.ID, v.ID, "SUPERVISOR")
	assert.ErrorIs(t, err, domain.ErrInvalidRol)

	_, err = svc.CambiarRol(ctx, admin.ID, admin.ID, "VENDEDOR")
	assert.ErrorIs(t, err, services.ErrCannotChangeOwnRole)

	_, err = svc.CambiarRol(ctx, admin.ID, 9999, "VENDEDOR")
	assert.ErrorIs(t, err, domain.ErrUsuarioNotFound)
}

func TestUsuarioService_CambiarEstado(t *testing.T) {
	db := testkit.NewDB(t)
	tokens := repositories.NewRefreshTokenRepository(db)
	svc := services.NewUsuarioService(repositories.NewUsuarioRepository(db), tokens)
	ctx := context.Background()
	admin := testkit.CreateUsuario(t, db, "admin@test.com", domain.RolAdmin)
	v := testkit.CreateUsuario(t, db, "v@test.com", domain.RolVendedor)

	require.NoError(t, tokens.Create(ctx, &models.RefreshToken{
		UsuarioID: v.ID,
		TokenHash: "hash",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	res, err := svc.CambiarEstado(ctx, admin.ID, v.ID, false)
	require.NoError(t, err)
	assert.False(t, res.Activo)

	stored, err := tokens.GetByTokenHash(ctx, "hash")
	require.NoError(t, err)
	assert.True(t, stored.IsRevoked(), "deactivation revokes open sessions")

	res, err = svc.CambiarEstado(ctx, admin.ID, v.ID, true)
	require.NoError(t, err)
	assert.True(t, res.Activo)

	_, err = svc.CambiarEstado(ctx, admin.ID, admin.ID, false)
	assert.ErrorIs(t, err, services.ErrCannotDeactivateSelf)
}

func TestUsuarioService_ListAndGet(t *testing.T) {
	db := testkit.NewDB(t)
	svc := services.NewUsuarioService(repositories.NewUsuarioRepository(db), repositories.NewRefreshTokenRepository(db))
	ctx := context.Background()
	a := testkit.CreateUsuario(t, db, "a@test.com", domain.RolAdmin)
	testkit.CreateUsuario(t, db, "b@test.com", domain.RolVendedor)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	got, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@test.com", got.Email)

	_, err = svc.Get(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrUsuarioNotFound)
}
