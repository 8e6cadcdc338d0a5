package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"chatarra-market/internal/adapters/persistence/models"
	"chatarra-market/internal/adapters/persistence/repositories"
	"chatarra-market/internal/core/domain"
	"chatarra-market/internal/pkg/cache"
	"chatarra-market/internal/pkg/metrics"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecientesLimit is the number of ofertas returned by Recientes
const RecientesLimit = 5

// OfertaInput is the body of create and update
type OfertaInput struct {
	TipoMaterial   string          `json:"tipoMaterial" validate:"required,max=100"`
	Cantidad       decimal.Decimal `json:"cantidad" validate:"required,gte=0.01"`
	PrecioUnitario decimal.Decimal `json:"precioUnitario" validate:"required,gte=0.01"`
	Descripcion    string          `json:"descripcion" validate:"max=1000"`
	Ubicacion      string          `json:"ubicacion" validate:"max=200"`
	ImagenURL      string          `json:"imagenUrl" validate:"max=500"`
}

// Trim strips surrounding whitespace from the text fields
func (in *OfertaInput) Trim() {
	in.TipoMaterial = strings.TrimSpace(in.TipoMaterial)
	in.Descripcion = strings.TrimSpace(in.Descripcion)
	in.Ubicacion = strings.TrimSpace(in.Ubicacion)
	in.ImagenURL = strings.TrimSpace(in.ImagenURL)
}

// RoundAmounts rounds cantidad and precioUnitario to cents. Call it after
// validation so sub-cent inputs are rejected rather than rounded up.
func (in *OfertaInput) RoundAmounts() {
	in.Cantidad = in.Cantidad.Round(2)
	in.PrecioUnitario = in.PrecioUnitario.Round(2)
}

// OfertaService handles the oferta lifecycle
type OfertaService struct {
	ofertaRepo repositories.OfertaRepository
	cache      *cache.Cache
	imagenes   *ImagenService
}

// NewOfertaService creates a new oferta service. imagenes may be nil, in
// which case replaced or orphaned images are left in storage.
func NewOfertaService(ofertaRepo repositories.OfertaRepository, cache *cache.Cache, imagenes *ImagenService) *OfertaService {
	return &OfertaService{
		ofertaRepo: ofertaRepo,
		cache:      cache,
		imagenes:   imagenes,
	}
}

// ============================================================
// Vendedor
// ============================================================

// Crear creates a PENDIENTE oferta owned by vendedorID
func (s *OfertaService) Crear(ctx context.Context, vendedorID uint, input *OfertaInput) (*models.OfertaResponse, error) {
	oferta := &models.Oferta{
		VendedorID:     vendedorID,
		TipoMaterial:   input.TipoMaterial,
		Cantidad:       input.Cantidad,
		PrecioUnitario: input.PrecioUnitario,
		Descripcion:    input.Descripcion,
		Ubicacion:      input.Ubicacion,
		ImagenURL:      input.ImagenURL,
		Estado:         domain.EstadoPendiente,
	}
	if err := s.ofertaRepo.Create(ctx, oferta); err != nil {
		return nil, fmt.Errorf("create oferta: %w", err)
	}

	s.invalidate(ctx, vendedorID)
	metrics.OfertasCreated.Inc()
	log.Ctx(ctx).Info().
		Uint("oferta_id", oferta.ID).
		Uint("vendedor_id", vendedorID).
		Str("precio_total", oferta.PrecioTotal.StringFixed(2)).
		Msg("oferta creada")

	return oferta.ToResponse(), nil
}

// MisOfertas lists the ofertas of vendedorID, newest first
func (s *OfertaService) MisOfertas(ctx context.Context, vendedorID uint) ([]*models.OfertaResponse, error) {
	ofertas, err := s.ofertaRepo.ListByVendedor(ctx, vendedorID, 0)
	if err != nil {
		return nil, fmt.Errorf("list ofertas: %w", err)
	}
	return models.OfertasToResponse(ofertas), nil
}

// Recientes lists the RecientesLimit newest ofertas of vendedorID
func (s *OfertaService) Recientes(ctx context.Context, vendedorID uint) ([]*models.OfertaResponse, error) {
	ofertas, err := s.ofertaRepo.ListByVendedor(ctx, vendedorID, RecientesLimit)
	if err != nil {
		return nil, fmt.Errorf("list ofertas: %w", err)
	}
	return models.OfertasToResponse(ofertas), nil
}

// ObtenerPropia returns oferta id if it belongs to vendedorID
func (s *OfertaService) ObtenerPropia(ctx context.Context, vendedorID, id uint) (*models.OfertaResponse, error) {
	oferta, err := s.findOwned(ctx, vendedorID, id)
	if err != nil {
		return nil, err
	}
	return oferta.ToResponse(), nil
}

// Actualizar replaces the editable fields of a PENDIENTE oferta
func (s *OfertaService) Actualizar(ctx context.Context, vendedorID, id uint, input *OfertaInput) (*models.OfertaResponse, error) {
	oferta, err := s.findOwned(ctx, vendedorID, id)
	if err != nil {
		return nil, err
	}
	if !oferta.Estado.IsEditable() {
		return nil, domain.ErrOfertaNotEditable
	}

	previousImagen := oferta.ImagenURL
	oferta.TipoMaterial = input.TipoMaterial
	oferta.Cantidad = input.Cantidad
	oferta.PrecioUnitario = input.PrecioUnitario
	oferta.Descripcion = input.Descripcion
	oferta.Ubicacion = input.Ubicacion
	oferta.ImagenURL = input.ImagenURL

	if err := s.ofertaRepo.Update(ctx, oferta); err != nil {
		return nil, fmt.Errorf("update oferta: %w", err)
	}

	if previousImagen != oferta.ImagenURL {
		s.imagenes.Eliminar(ctx, previousImagen)
	}
	s.invalidate(ctx, vendedorID)
	log.Ctx(ctx).Info().Uint("oferta_id", id).Msg("oferta actualizada")
	return oferta.ToResponse(), nil
}

// Cancelar moves an own PENDIENTE oferta to CANCELADA
func (s *OfertaService) Cancelar(ctx context.Context, vendedorID, id uint) (*models.OfertaResponse, error) {
	oferta, err := s.findOwned(ctx, vendedorID, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanVendedorCancel(oferta.Estado) {
		return nil, domain.ErrTransitionForbidden
	}

	if err := s.transition(ctx, oferta, domain.EstadoCancelada); err != nil {
		return nil, err
	}
	return oferta.ToResponse(), nil
}

// Eliminar deletes an own PENDIENTE oferta
func (s *OfertaService) Eliminar(ctx context.Context, vendedorID, id uint) error {
	oferta, err := s.findOwned(ctx, vendedorID, id)
	if err != nil {
		return err
	}
	if !oferta.Estado.IsEditable() {
		return domain.ErrOfertaNotEditable
	}

	if err := s.ofertaRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete oferta: %w", err)
	}

	s.imagenes.Eliminar(ctx, oferta.ImagenURL)
	s.invalidate(ctx, vendedorID)
	log.Ctx(ctx).Info().Uint("oferta_id", id).Uint("vendedor_id", vendedorID).Msg("oferta eliminada")
	return nil
}

// ============================================================
// Admin
// ============================================================

// Listar lists every oferta, optionally filtered by estado
func (s *OfertaService) Listar(ctx context.Context, estado string) ([]*models.OfertaResponse, error) {
	filter := repositories.OfertaFilter{}
	if strings.TrimSpace(estado) != "" {
		e, ok := domain.ParseEstado(estado)
		if !ok {
			return nil, domain.ErrInvalidEstado
		}
		filter.Estado = e
	}

	ofertas, _, err := s.ofertaRepo.List(ctx, filter, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list ofertas: %w", err)
	}
	return models.OfertasToResponse(ofertas), nil
}

// Obtener returns any oferta
func (s *OfertaService) Obtener(ctx context.Context, id uint) (*models.OfertaResponse, error) {
	oferta, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return oferta.ToResponse(), nil
}

// CambiarEstado applies an admin transition. estado must be APROBADA,
// RECHAZADA or VENDIDA and allowed from the current estado.
func (s *OfertaService) CambiarEstado(ctx context.Context, adminID, id uint, estado string) (*models.OfertaResponse, error) {
	target, ok := domain.ParseEstado(estado)
	if !ok || !domain.IsAdminTarget(target) {
		return nil, domain.ErrInvalidEstado
	}

	oferta, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanAdminTransition(oferta.Estado, target) {
		return nil, domain.ErrTransitionForbidden
	}

	if err := s.transition(ctx, oferta, target); err != nil {
		return nil, err
	}
	log.Ctx(ctx).Info().Uint("admin_id", adminID).Uint("oferta_id", id).Str("estado", string(target)).Msg("estado de oferta cambiado por admin")
	return oferta.ToResponse(), nil
}

// ============================================================
// Public catalogue
// ============================================================

// Catalogo lists APROBADA ofertas, optionally filtered by tipoMaterial
func (s *OfertaService) Catalogo(ctx context.Context, tipoMaterial string, offset, limit int) ([]*models.OfertaResponse, int64, error) {
	ofertas, total, err := s.ofertaRepo.List(ctx, repositories.OfertaFilter{
		Estado:       domain.EstadoAprobada,
		TipoMaterial: tipoMaterial,
	}, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list catalogo: %w", err)
	}
	return models.OfertasToResponse(ofertas), total, nil
}

// DetallePublico returns oferta id only when it is APROBADA
func (s *OfertaService) DetallePublico(ctx context.Context, id uint) (*models.OfertaResponse, error) {
	oferta, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if oferta.Estado != domain.EstadoAprobada {
		return nil, domain.ErrOfertaNotFound
	}
	return oferta.ToResponse(), nil
}

// ============================================================
// helpers
// ============================================================

func (s *OfertaService) find(ctx context.Context, id uint) (*models.Oferta, error) {
	oferta, err := s.ofertaRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOfertaNotFound
		}
		return nil, fmt.Errorf("get oferta: %w", err)
	}
	return oferta, nil
}

func (s *OfertaService) findOwned(ctx context.Context, vendedorID, id uint) (*models.Oferta, error) {
	oferta, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if oferta.VendedorID != vendedorID {
		return nil, domain.ErrNotOfertaOwner
	}
	return oferta, nil
}

func (s *OfertaService) transition(ctx context.Context, oferta *models.Oferta, to domain.EstadoOferta) error {
	from := oferta.Estado
	oferta.Estado = to
	if err := s.ofertaRepo.Update(ctx, oferta); err != nil {
		oferta.Estado = from
		return fmt.Errorf("update estado: %w", err)
	}

	metrics.RecordTransition(string(from), string(to))
	s.invalidate(ctx, oferta.VendedorID)
	return nil
}

// invalidate drops the cached estadisticas of vendedorID
func (s *OfertaService) invalidate(ctx context.Context, vendedorID uint) {
	if err := s.cache.Delete(ctx, estadisticasKey(vendedorID)); err != nil {
		log.Ctx(ctx).Warn().Err(err).Uint("vendedor_id", vendedorID).Msg("no se pudo invalidar la cache de estadisticas")
	}
}
