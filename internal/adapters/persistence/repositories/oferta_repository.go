package repositories

import (
	"context"
	"strings"
	"time"

	"chatarra-market/internal/adapters/persistence/models"
	"chatarra-market/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ofertaRepository implements OfertaRepository interface
type ofertaRepository struct {
	db *gorm.DB
}

// NewOfertaRepository creates a new oferta repository
func NewOfertaRepository(db *gorm.DB) OfertaRepository {
	return &ofertaRepository{db: db}
}

// Create inserts the oferta and loads its vendedor
func (r *ofertaRepository) Create(ctx context.Context, oferta *models.Oferta) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(oferta).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).First(&oferta.Vendedor, oferta.VendedorID).Error
}

// GetByID gets an oferta with its vendedor
func (r *ofertaRepository) GetByID(ctx context.Context, id uint) (*models.Oferta, error) {
	var oferta models.Oferta
	err := r.db.WithContext(ctx).
		Preload("Vendedor").
		Where("id = ?", id).
		First(&oferta).Error
	if err != nil {
		return nil, err
	}
	return &oferta, nil
}

// Update saves every column of the oferta, never its vendedor
func (r *ofertaRepository) Update(ctx context.Context, oferta *models.Oferta) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(oferta).Error
}

// Delete removes an oferta
func (r *ofertaRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Oferta{}, id).Error
}

// List lists ofertas matching filter, newest first. limit <= 0 returns every row.
func (r *ofertaRepository) List(ctx context.Context, filter OfertaFilter, offset, limit int) ([]*models.Oferta, int64, error) {
	var ofertas []*models.Oferta
	var total int64

	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.Oferta{}), filter)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = r.applyFilter(r.db.WithContext(ctx), filter).
		Preload("Vendedor").
		Order("fecha_creacion DESC").
		Order("id DESC")
	if limit > 0 {
		query = query.Offset(offset).Limit(limit)
	}

	if err := query.Find(&ofertas).Error; err != nil {
		return nil, 0, err
	}

	return ofertas, total, nil
}

// ListByVendedor lists the ofertas of a vendedor newest first
func (r *ofertaRepository) ListByVendedor(ctx context.Context, vendedorID uint, limit int) ([]*models.Oferta, error) {
	ofertas, _, err := r.List(ctx, OfertaFilter{VendedorID: vendedorID}, 0, limit)
	return ofertas, err
}

// CountByEstado counts ofertas in estado. vendedorID 0 counts every vendedor.
func (r *ofertaRepository) CountByEstado(ctx context.Context, vendedorID uint, estado domain.EstadoOferta) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.Oferta{}), OfertaFilter{VendedorID: vendedorID, Estado: estado}).
		Count(&count).Error
	return count, err
}

// SumPrecioTotal sums precio_total of ofertas in estado. vendedorID 0 sums every vendedor.
func (r *ofertaRepository) SumPrecioTotal(ctx context.Context, vendedorID uint, estado domain.EstadoOferta) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := r.applyFilter(r.db.WithContext(ctx).Model(&models.Oferta{}), OfertaFilter{VendedorID: vendedorID, Estado: estado}).
		Select("COALESCE(SUM(precio_total), 0)").
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// CountCreatedSince counts ofertas created at or after since
func (r *ofertaRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Oferta{}).
		Where("fecha_creacion >= ?", since).
		Count(&count).Error
	return count, err
}

func (r *ofertaRepository) applyFilter(query *gorm.DB, filter OfertaFilter) *gorm.DB {
	if filter.VendedorID != 0 {
		query = query.Where("vendedor_id = ?", filter.VendedorID)
	}
	if filter.Estado != "" {
		query = query.Where("estado = ?", filter.Estado)
	}
	if tipo := strings.TrimSpace(filter.TipoMaterial); tipo != "" {
		query = query.Where("LOWER(tipo_material) LIKE ?", "%"+strings.ToLower(tipo)+"%")
	}
	return query
}
