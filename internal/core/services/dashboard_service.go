package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"chatarra-market/internal/adapters/persistence/models"
	"chatarra-market/internal/adapters/persistence/repositories"
	"chatarra-market/internal/core/domain"
	"chatarra-market/internal/pkg/cache"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

func estadisticasKey(vendedorID uint) string {
	return "estadisticas:vendedor:" + strconv.FormatUint(uint64(vendedorID), 10)
}

// DashboardService aggregates statistics for vendedores and admins
type DashboardService struct {
	usuarioRepo repositories.UsuarioRepository
	ofertaRepo  repositories.OfertaRepository
	cache       *cache.Cache
	ttl         time.Duration
}

// NewDashboardService creates a new dashboard service. ttl is how long
// vendedor statistics stay cached.
func NewDashboardService(
	usuarioRepo repositories.UsuarioRepository,
	ofertaRepo repositories.OfertaRepository,
	cache *cache.Cache,
	ttl time.Duration,
) *DashboardService {
	return &DashboardService{
		usuarioRepo: usuarioRepo,
		ofertaRepo:  ofertaRepo,
		cache:       cache,
		ttl:         ttl,
	}
}

// ============================================================
// Vendedor
// ============================================================

// EstadisticasVendedor summarises the ofertas of one vendedor
type EstadisticasVendedor struct {
	OfertasActivas    int64           `json:"ofertasActivas"`
	OfertasPendientes int64           `json:"ofertasPendientes"`
	OfertasVendidas   int64           `json:"ofertasVendidas"`
	OfertasRechazadas int64           `json:"ofertasRechazadas"`
	TotalOfertas      int64           `json:"totalOfertas"`
	TotalVendido      decimal.Decimal `json:"totalVendido"`
	PromedioVenta     decimal.Decimal `json:"promedioVenta"`
}

// Estadisticas returns the statistics of vendedorID, from cache when fresh.
// CANCELADA ofertas are not counted in TotalOfertas.
func (s *DashboardService) Estadisticas(ctx context.Context, vendedorID uint) (*EstadisticasVendedor, error) {
	key := estadisticasKey(vendedorID)

	var cached EstadisticasVendedor
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	stats := &EstadisticasVendedor{}
	counts := []struct {
		estado domain.EstadoOferta
		dest   *int64
	}{
		{domain.EstadoAprobada, &stats.OfertasActivas},
		{domain.EstadoPendiente, &stats.OfertasPendientes},
		{domain.EstadoVendida, &stats.OfertasVendidas},
		{domain.EstadoRechazada, &stats.OfertasRechazadas},
	}
	for _, c := range counts {
		n, err := s.ofertaRepo.CountByEstado(ctx, vendedorID, c.estado)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", c.estado, err)
		}
		*c.dest = n
		stats.TotalOfertas += n
	}

	total, err := s.ofertaRepo.SumPrecioTotal(ctx, vendedorID, domain.EstadoVendida)
	if err != nil {
		return nil, fmt.Errorf("sum vendido: %w", err)
	}
	stats.TotalVendido = total.Round(2)
	stats.PromedioVenta = domain.PromedioVenta(stats.TotalVendido, stats.OfertasVendidas)

	if s.ttl > 0 {
		if err := s.cache.SetJSON(ctx, key, stats, s.ttl); err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("no se pudo cachear estadisticas")
		}
	}
	return stats, nil
}

// ============================================================
// Admin Dashboard
// ============================================================

// AdminDashboard represents admin dashboard data
type AdminDashboard struct {
	TotalUsuarios   int64 `json:"totalUsuarios"`
	TotalVendedores int64 `json:"totalVendedores"`
	TotalAdmins     int64 `json:"totalAdmins"`
	UsuariosActivos int64 `json:"usuariosActivos"`

	OfertasPorEstado map[string]int64 `json:"ofertasPorEstado"`
	TotalOfertas     int64            `json:"totalOfertas"`
	TotalVendido     decimal.Decimal  `json:"totalVendido"`
	OfertasEsteMes   int64            `json:"ofertasEsteMes"`

	OfertasRecientes []*models.OfertaResponse `json:"ofertasRecientes"`
}

// AdminDashboard returns global counters and the newest ofertas
func (s *DashboardService) AdminDashboard(ctx context.Context) (*AdminDashboard, error) {
	data := &AdminDashboard{OfertasPorEstado: make(map[string]int64, len(domain.Estados))}
	var err error

	if data.TotalVendedores, err = s.usuarioRepo.CountByRol(ctx, domain.RolVendedor); err != nil {
		return nil, fmt.Errorf("count vendedores: %w", err)
	}
	if data.TotalAdmins, err = s.usuarioRepo.CountByRol(ctx, domain.RolAdmin); err != nil {
		return nil, fmt.Errorf("count admins: %w", err)
	}
	data.TotalUsuarios = data.TotalVendedores + data.TotalAdmins
	if data.UsuariosActivos, err = s.usuarioRepo.CountActivos(ctx); err != nil {
		return nil, fmt.Errorf("count activos: %w", err)
	}

	for _, estado := range domain.Estados {
		n, err := s.ofertaRepo.CountByEstado(ctx, 0, estado)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", estado, err)
		}
		data.OfertasPorEstado[string(estado)] = n
		data.TotalOfertas += n
	}

	total, err := s.ofertaRepo.SumPrecioTotal(ctx, 0, domain.EstadoVendida)
	if err != nil {
		return nil, fmt.Errorf("sum vendido: %w", err)
	}
	data.TotalVendido = total.Round(2)

	now := time.Now()
	inicioMes := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if data.OfertasEsteMes, err = s.ofertaRepo.CountCreatedSince(ctx, inicioMes); err != nil {
		return nil, fmt.Errorf("count mes: %w", err)
	}

	recientes, _, err := s.ofertaRepo.List(ctx, repositories.OfertaFilter{}, 0, RecientesLimit)
	if err != nil {
		return nil, fmt.Errorf("list recientes: %w", err)
	}
	data.OfertasRecientes = models.OfertasToResponse(recientes)

	return data, nil
}
