// Package testkit provides helpers shared by package tests.
package testkit

import (
	"context"
	"testing"

	"chatarra-market/internal/adapters/persistence/models"
	"chatarra-market/internal/config"
	"chatarra-market/internal/core/domain"
	"chatarra-market/internal/pkg/cache"
	"chatarra-market/internal/pkg/password"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestJWTSecret is the signing secret used by TestConfig
const TestJWTSecret = "test-secret-key-for-unit-tests"

// NewDB opens a migrated in-memory SQLite database that lives for the test
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to ":memory:" is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, models.AutoMigrate(db))
	return db
}

// NewCache returns a cache backed by an in-process redis server
func NewCache(t *testing.T) (*cache.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return cache.NewWithClient(rdb), mr
}

// TestConfig returns a dev config suitable for tests
func TestConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		Port:    "0",
		JWT: config.JWTConfig{
			Secret:           TestJWTSecret,
			RefreshSecret:    TestJWTSecret + "-refresh",
			Issuer:           "chatarra-test",
			AccessTokenMins:  60,
			RefreshTokenDays: 7,
		},
		Cookie: config.CookieConfig{SameSite: "lax"},
		Redis:  config.RedisConfig{StatsTTLSecs: 60},
		Storage: config.StorageConfig{
			Driver:    "local",
			PublicURL: "/uploads",
		},
		Admin: config.AdminConfig{
			Email:          "admin@chatarra.com",
			Password:       "admin123456",
			NombreCompleto: "Administrador",
		},
		Cron: config.CronConfig{TokenCleanup: "0 3 * * *"},
	}
}

// hashed once: bcrypt cost 12 is slow
var testPasswordHash string

// CreateUsuario inserts a usuario with password "secreto123"
func CreateUsuario(t *testing.T, db *gorm.DB, email string, rol domain.Rol) *models.Usuario {
	t.Helper()

	if testPasswordHash == "" {
		h, err := password.Hash("secreto123")
		require.NoError(t, err)
		testPasswordHash = h
	}

	u := &models.Usuario{
		NombreCompleto: "Usuario " + email,
		Email:          email,
		Password:       testPasswordHash,
		Rol:            rol,
		Activo:         true,
	}
	require.NoError(t, db.WithContext(context.Background()).Create(u).Error)
	return u
}

// CreateOferta inserts an oferta owned by vendedorID in the given estado
func CreateOferta(t *testing.T, db *gorm.DB, vendedorID uint, cantidad, precio string, estado domain.EstadoOferta) *models.Oferta {
	t.Helper()

	o := &models.Oferta{
		VendedorID:     vendedorID,
		TipoMaterial:   "Cobre",
		Cantidad:       decimal.RequireFromString(cantidad),
		PrecioUnitario: decimal.RequireFromString(precio),
		Descripcion:    "Cable de cobre",
		Ubicacion:      "Lima",
		Estado:         estado,
	}
	require.NoError(t, db.Omit("Vendedor").Create(o).Error)
	return o
}
