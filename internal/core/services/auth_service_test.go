package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"chatarra-market/internal/adapters/persistence/models"
	"chatarra-market/internal/adapters/persistence/repositories"
	"chatarra-market/internal/core/domain"
	"chatarra-market/internal/core/services"
	"chatarra-market/internal/pkg/jwt"
	"chatarra-market/internal/pkg/testkit"
)

func newAuthService(t *testing.T) (*services.AuthService, *gorm.DB) {
	t.Helper()
	db := testkit.NewDB(t)
	c, _ := testkit.NewCache(t)
	svc := services.NewAuthService(
		repositories.NewUsuarioRepository(db),
		repositories.NewRefreshTokenRepository(db),
		c,
		testkit.TestConfig(),
	)
	return svc, db
}

func register(t *testing.T, svc *services.AuthService, email string) *services.AuthResponse {
	t.Helper()
	res, err := svc.Register(context.Background(), &services.RegisterInput{
		NombreCompleto: "Juan Pérez",
		Email:          email,
		Password:       "secreto123",
	})
	require.NoError(t, err)
	return res
}

func TestRegister_CreatesVendedorAndTokens(t *testing.T) {
	svc, db := newAuthService(t)

	res := register(t, svc, "  Juan@Test.com ")

	assert.Equal(t, "juan@test.com", res.Email)
	assert.Equal(t, "VENDEDOR", res.Rol)
	assert.Equal(t, "Bearer", res.Tipo)
	assert.Equal(t, 3600, res.ExpiraEn)
	assert.NotEmpty(t, res.Token)
	assert.NotEmpty(t, res.RefreshToken)

	claims, err := jwt.ValidateAccessToken(res.Token, testkit.TestJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, "juan@test.com", claims.Email())

	var u models.Usuario
	require.NoError(t, db.First(&u, res.ID).Error)
	assert.True(t, u.Activo)
	assert.NotEqual(t, "secreto123", u.Password)
	assert.False(t, u.FechaRegistro.IsZero())

	var tokens int64
	db.Model(&models.RefreshToken{}).Where("usuario_id = ?", res.ID).Count(&tokens)
	assert.Equal(t, int64(1), tokens)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)
	register(t, svc, "ana@test.com")

	_, err := svc.Register(context.Background(), &services.RegisterInput{
		NombreCompleto: "Otra Ana",
		Email:          "ANA@test.com",
		Password:       "secreto123",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	svc, db := newAuthService(t)
	ctx := context.Background()
	reg := register(t, svc, "ana@test.com")

	res, err := svc.Login(ctx, &services.LoginInput{Email: "ana@test.com", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, reg.ID, res.ID)

	_, err = svc.Login(ctx, &services.LoginInput{Email: "ana@test.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &services.LoginInput{Email: "nadie@test.com", Password: "secreto123"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	require.NoError(t, db.Model(&models.Usuario{}).Where("id = ?", reg.ID).Update("activo", false).Error)
	_, err = svc.Login(ctx, &services.LoginInput{Email: "ana@test.com", Password: "secreto123"})
	assert.ErrorIs(t, err, services.ErrUserInactive)
}

func TestRefresh_RotatesToken(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()
	reg := register(t, svc, "ana@test.com")

	next, err := svc.Refresh(ctx, reg.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, reg.RefreshToken, next.RefreshToken)

	// the rotated token cannot be reused
	_, err = svc.Refresh(ctx, reg.RefreshToken)
	assert.ErrorIs(t, err, services.ErrTokenRevoked)

	_, err = svc.Refresh(ctx, next.RefreshToken)
	assert.NoError(t, err)
}

// lookupBarrier holds every GetByTokenHash caller until n of them have read
// the row, so they all see the token as active.
type lookupBarrier struct {
	repositories.RefreshTokenRepository
	wg sync.WaitGroup
}

func (b *lookupBarrier) GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	token, err := b.RefreshTokenRepository.GetByTokenHash(ctx, tokenHash)
	b.wg.Done()
	b.wg.Wait()
	return token, err
}

func TestRefresh_ConcurrentReuseIssuesOnePair(t *testing.T) {
	db := testkit.NewDB(t)
	c, _ := testkit.NewCache(t)
	usuarios := repositories.NewUsuarioRepository(db)
	tokens := repositories.NewRefreshTokenRepository(db)

	reg := register(t, services.NewAuthService(usuarios, tokens, c, testkit.TestConfig()), "ana@test.com")

	const callers = 2
	barrier := &lookupBarrier{RefreshTokenRepository: tokens}
	barrier.wg.Add(callers)
	svc := services.NewAuthService(usuarios, barrier, c, testkit.TestConfig())

	var (
		mu      sync.Mutex
		ok      int
		revoked int
		done    sync.WaitGroup
	)
	for i := 0; i < callers; i++ {
		done.Add(1)
		go func() {
			defer done.Done()
			_, err := svc.Refresh(context.Background(), reg.RefreshToken)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, services.ErrTokenRevoked):
				revoked++
			}
		}()
	}
	done.Wait()

	assert.Equal(t, 1, ok, "a refresh token rotates exactly once")
	assert.Equal(t, 1, revoked)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	svc, _ := newAuthService(t)
	reg := register(t, svc, "ana@test.com")

	_, err := svc.Refresh(context.Background(), reg.Token)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestLogout_DenylistsAccessToken(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()
	reg := register(t, svc, "ana@test.com")

	u, _, err := svc.Authenticate(ctx, reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, u.ID)

	require.NoError(t, svc.Logout(ctx, reg.RefreshToken, reg.Token))

	_, _, err = svc.Authenticate(ctx, reg.Token)
	assert.ErrorIs(t, err, services.ErrTokenRevoked)

	_, err = svc.Refresh(ctx, reg.RefreshToken)
	assert.ErrorIs(t, err, services.ErrTokenRevoked)
}

func TestLogoutAll_RevokesEverySession(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()
	reg := register(t, svc, "ana@test.com")
	second, err := svc.Login(ctx, &services.LoginInput{Email: "ana@test.com", Password: "secreto123"})
	require.NoError(t, err)

	require.NoError(t, svc.LogoutAll(ctx, reg.ID))

	_, err = svc.Refresh(ctx, reg.RefreshToken)
	assert.ErrorIs(t, err, services.ErrTokenRevoked)
	_, err = svc.Refresh(ctx, second.RefreshToken)
	assert.ErrorIs(t, err, services.ErrTokenRevoked)
}

func TestAuthenticate_InactiveUser(t *testing.T) {
	svc, db := newAuthService(t)
	reg := register(t, svc, "ana@test.com")
	require.NoError(t, db.Model(&models.Usuario{}).Where("id = ?", reg.ID).Update("activo", false).Error)

	_, _, err := svc.Authenticate(context.Background(), reg.Token)
	assert.ErrorIs(t, err, services.ErrUserInactive)
}

func TestAuthenticate_UsesStoredRol(t *testing.T) {
	svc, db := newAuthService(t)
	reg := register(t, svc, "ana@test.com")
	require.NoError(t, db.Model(&models.Usuario{}).Where("id = ?", reg.ID).Update("rol", domain.RolAdmin).Error)

	u, claims, err := svc.Authenticate(context.Background(), reg.Token)
	require.NoError(t, err)
	assert.Equal(t, "VENDEDOR", claims.Rol)
	assert.Equal(t, domain.RolAdmin, u.Rol)
}

func TestAuthenticate_Garbage(t *testing.T) {
	svc, _ := newAuthService(t)

	_, _, err := svc.Authenticate(context.Background(), "garbage")
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}
