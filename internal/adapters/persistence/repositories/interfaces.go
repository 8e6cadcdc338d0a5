package repositories

import (
	"context"
	"time"

	"chatarra-market/internal/adapters/persistence/models"
	"chatarra-market/internal/core/domain"

	"github.com/shopspring/decimal"
)

// UsuarioRepository defines usuario repository interface
type UsuarioRepository interface {
	Create(ctx context.Context, usuario *models.Usuario) error
	GetByID(ctx context.Context, id uint) (*models.Usuario, error)
	GetByEmail(ctx context.Context, email string) (*models.Usuario, error)
	Update(ctx context.Context, usuario *models.Usuario) error
	List(ctx context.Context) ([]*models.Usuario, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountByRol(ctx context.Context, rol domain.Rol) (int64, error)
	CountActivos(ctx context.Context) (int64, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) (bool, error)
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUsuarioID(ctx context.Context, usuarioID uint) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// OfertaFilter narrows oferta listings
type OfertaFilter struct {
	VendedorID   uint
	Estado       domain.EstadoOferta
	TipoMaterial string
}

// OfertaRepository defines oferta repository interface
type OfertaRepository interface {
	Create(ctx context.Context, oferta *models.Oferta) error
	GetByID(ctx context.Context, id uint) (*models.Oferta, error)
	Update(ctx context.Context, oferta *models.Oferta) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter OfertaFilter, offset, limit int) ([]*models.Oferta, int64, error)
	ListByVendedor(ctx context.Context, vendedorID uint, limit int) ([]*models.Oferta, error)
	CountByEstado(ctx context.Context, vendedorID uint, estado domain.EstadoOferta) (int64, error)
	SumPrecioTotal(ctx context.Context, vendedorID uint, estado domain.EstadoOferta) (decimal.Decimal, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}
