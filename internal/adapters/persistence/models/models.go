package models

import (
	"time"

	"chatarra-market/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ============================================================
// Auth & Usuario tables
// ============================================================

// Usuario represents usuarios table
type Usuario struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	NombreCompleto string     `gorm:"size:100;not null" json:"nombreCompleto"`
	Email          string     `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password       string     `gorm:"size:255;not null" json:"-"`
	Rol            domain.Rol `gorm:"size:20;not null;default:'VENDEDOR'" json:"rol"`
	Activo         bool       `gorm:"not null;default:true" json:"activo"`
	FechaRegistro  time.Time  `gorm:"not null" json:"fechaRegistro"`
	Ofertas        []Oferta   `gorm:"foreignKey:VendedorID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Usuario) TableName() string {
	return "usuarios"
}

// BeforeCreate fills the registration defaults
func (u *Usuario) BeforeCreate(tx *gorm.DB) error {
	if u.FechaRegistro.IsZero() {
		u.FechaRegistro = time.Now()
	}
	if u.Rol == "" {
		u.Rol = domain.RolVendedor
	}
	return nil
}

// UsuarioResponse DTO
type UsuarioResponse struct {
	ID             uint      `json:"id"`
	NombreCompleto string    `json:"nombreCompleto"`
	Email          string    `json:"email"`
	Rol            string    `json:"rol"`
	Activo         bool      `json:"activo"`
	FechaRegistro  time.Time `json:"fechaRegistro"`
}

func (u *Usuario) ToResponse() *UsuarioResponse {
	return &UsuarioResponse{
		ID:             u.ID,
		NombreCompleto: u.NombreCompleto,
		Email:          u.Email,
		Rol:            string(u.Rol),
		Activo:         u.Activo,
		FechaRegistro:  u.FechaRegistro,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UsuarioID uint       `gorm:"index;not null" json:"usuario_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	Usuario   Usuario    `gorm:"foreignKey:UsuarioID;constraint:OnDelete:CASCADE" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Ofertas
// ============================================================

// Oferta represents ofertas table
type Oferta struct {
	ID                 uint                `gorm:"primaryKey" json:"id"`
	VendedorID         uint                `gorm:"index;not null" json:"vendedorId"`
	Vendedor           Usuario             `gorm:"foreignKey:VendedorID" json:"-"`
	TipoMaterial       string              `gorm:"size:100;not null;index" json:"tipoMaterial"`
	Cantidad           decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"cantidad"`
	PrecioUnitario     decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"precioUnitario"`
	PrecioTotal        decimal.Decimal     `gorm:"type:decimal(12,2)" json:"precioTotal"`
	Descripcion        string              `gorm:"type:text" json:"descripcion"`
	Ubicacion          string              `gorm:"size:200" json:"ubicacion"`
	ImagenURL          string              `gorm:"column:imagen_url;size:500" json:"imagenUrl"`
	Estado             domain.EstadoOferta `gorm:"size:20;not null;index;default:'PENDIENTE'" json:"estado"`
	FechaCreacion      time.Time           `gorm:"autoCreateTime;not null;index" json:"fechaCreacion"`
	FechaActualizacion time.Time           `gorm:"autoUpdateTime" json:"fechaActualizacion"`
}

func (Oferta) TableName() string {
	return "ofertas"
}

// BeforeSave keeps precio_total consistent with cantidad x precio_unitario
func (o *Oferta) BeforeSave(tx *gorm.DB) error {
	if o.Estado == "" {
		o.Estado = domain.EstadoPendiente
	}
	o.PrecioTotal = domain.PrecioTotal(o.Cantidad, o.PrecioUnitario)
	return nil
}

// OfertaResponse DTO
type OfertaResponse struct {
	ID                 uint            `json:"id"`
	VendedorID         uint            `json:"vendedorId"`
	VendedorNombre     string          `json:"vendedorNombre"`
	TipoMaterial       string          `json:"tipoMaterial"`
	Cantidad           decimal.Decimal `json:"cantidad"`
	PrecioUnitario     decimal.Decimal `json:"precioUnitario"`
	PrecioTotal        decimal.Decimal `json:"precioTotal"`
	Descripcion        string          `json:"descripcion"`
	Ubicacion          string          `json:"ubicacion"`
	Estado             string          `json:"estado"`
	ImagenURL          string          `json:"imagenUrl"`
	FechaCreacion      time.Time       `json:"fechaCreacion"`
	FechaActualizacion time.Time       `json:"fechaActualizacion"`
}

// ToResponse expects Vendedor to be preloaded for VendedorNombre
func (o *Oferta) ToResponse() *OfertaResponse {
	return &OfertaResponse{
		ID:                 o.ID,
		VendedorID:         o.VendedorID,
		VendedorNombre:     o.Vendedor.NombreCompleto,
		TipoMaterial:       o.TipoMaterial,
		Cantidad:           o.Cantidad,
		PrecioUnitario:     o.PrecioUnitario,
		PrecioTotal:        o.PrecioTotal,
		Descripcion:        o.Descripcion,
		Ubicacion:          o.Ubicacion,
		Estado:             string(o.Estado),
		ImagenURL:          o.ImagenURL,
		FechaCreacion:      o.FechaCreacion,
		FechaActualizacion: o.FechaActualizacion,
	}
}

// OfertasToResponse converts a slice of ofertas
func OfertasToResponse(ofertas []*Oferta) []*OfertaResponse {
	out := make([]*OfertaResponse, len(ofertas))
	for i, o := range ofertas {
		out[i] = o.ToResponse()
	}
	return out
}

// AutoMigrate runs auto migration for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Usuario{},
		&RefreshToken{},
		&Oferta{},
	)
}
