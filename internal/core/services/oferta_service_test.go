package services_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"chatarra-market/internal/adapters/persistence/models"
	"chatarra-market/internal/adapters/persistence/repositories"
	"chatarra-market/internal/adapters/storage"
	"chatarra-market/internal/core/domain"
	"chatarra-market/internal/core/services"
	"chatarra-market/internal/pkg/testkit"
)

func newOfertaService(t *testing.T) (*services.OfertaService, *gorm.DB) {
	t.Helper()
	db := testkit.NewDB(t)
	c, _ := testkit.NewCache(t)
	return services.NewOfertaService(repositories.NewOfertaRepository(db), c, nil), db
}

func cobreInput() *services.OfertaInput {
	in := &services.OfertaInput{
		TipoMaterial:   " Cobre ",
		Cantidad:       decimal.RequireFromString("12.5"),
		PrecioUnitario: decimal.RequireFromString("3.20"),
		Descripcion:    "Cable pelado",
		Ubicacion:      "Lima",
	}
	in.Trim()
	in.RoundAmounts()
	return in
}

func TestCrear_ComputesPrecioTotal(t *testing.T) {
	svc, db := newOfertaService(t)
	vendedor := testkit.CreateUsuario(t, db, "v@test.com", domain.RolVendedor)

	res, err := svc.Crear(context.Background(), vendedor.ID, cobreInput())
	require.NoError(t, err)

	assert.Equal(t, "Cobre", res.TipoMaterial)
	assert.Equal(t, "PENDIENTE", res.Estado)
	assert.Equal(t, vendedor.ID, res.VendedorID)
	assert.Equal(t, vendedor.NombreCompleto, res.VendedorNombre)
	assert.True(t, res.PrecioTotal.Equal(decimal.NewFromInt(40)), res.PrecioTotal.String())
	assert.False(t, res.FechaCreacion.IsZero())
}

func TestActualizar_RecomputesAndRequiresPendiente(t *testing.T) {
	svc, db := newOfertaService(t)
	ctx := context.Background()
	vendedor := testkit.CreateUsuario(t, db, "v@test.com", domain.RolVendedor)
	o := testkit.CreateOferta(t, db, vendedor.ID, "10", "2", domain.EstadoPendiente)

	in := cobreInput()
	in.Cantidad = decimal.NewFromInt(3)
	in.PrecioUnitario = decimal.NewFromInt(5)
	res, err := svc.Actualizar(ctx, vendedor.ID, o.ID, in)
	require.NoError(t, err)
	assert.True(t, res.PrecioTotal.Equal(decimal.NewFromInt(15)))

	var stored models.Oferta
	require.NoError(t, db.First(&stored, o.ID).Error)
	assert.True(t, stored.PrecioTotal.Equal(decimal.NewFromInt(15)))

	aprobada := testkit.CreateOferta(t, db, vendedor.ID, "1", "1", domain.EstadoAprobada)
	_, err = svc.Actualizar(ctx, vendedor.ID, aprobada.ID, in)
	assert.ErrorIs(t, err, domain.ErrOfertaNotEditable)
}

func TestOwnership(t *testing.T) {
	svc, db := newOfertaService(t)
	ctx := context.Background()
	duena := testkit.CreateUsuario(t, db, "a@test.com", domain.RolVendedor)
	otro := testkit.CreateUsuario(t, db, "b@test.com", domain.RolVendedor)
	o := testkit.CreateOferta(t, db, duena.ID, "1", "1", domain.EstadoPendiente)

	_, err := svc.ObtenerPropia(ctx, otro.ID, o.ID)
	assert.ErrorIs(t, err, domain.ErrNotOfertaOwner)
	_, err = svc.Actualizar(ctx, otro.ID, o.ID, cobreInput())
	assert.ErrorIs(t, err, domain.ErrNotOfertaOwner)
	_, err = svc.Cancelar(ctx, otro.ID, o.ID)
	assert.ErrorIs(t, err, domain.ErrNotOfertaOwner)
	assert.ErrorIs(t, svc.Eliminar(ctx, otro.ID, o.ID), domain.ErrNotOfertaOwner)

	_, err = svc.ObtenerPropia(ctx, duena.ID, 9999)
	assert.ErrorIs(t, err, domain.ErrOfertaNotFound)
}

func TestCancelar(t *testing.T) {
	svc, db := newOfertaService(t)
	ctx := context.Background()
	v := testkit.CreateUsuario(t, db, "v@test.com", domain.RolVendedor)
	pendiente := testkit.CreateOferta(t, db, v.ID, "1", "1", domain.EstadoPendiente)
	aprobada := testkit.CreateOferta(t, db, v.ID, "1", "1", domain.EstadoAprobada)

	res, err := svc.Cancelar(ctx, v.ID, pendiente.ID)
	require.NoError(t, err)
	assert.Equal(t, "CANCELADA", res.Estado)

	_, err = svc.Cancelar(ctx, v.ID, aprobada.ID)
	assert.ErrorIs(t, err, domain.ErrTransitionForbidden)

	// a cancelled oferta cannot be cancelled again
	_, err = svc.Cancelar(ctx, v.ID, pendiente.ID)
	assert.ErrorIs(t, err, domain.ErrTransitionForbidden)
}

func TestEliminar(t *testing.T) {
	svc, db := newOfertaService(t)
	ctx := context.Background()
	v := testkit.CreateUsuario(t, db, "v@test.com", domain.RolVendedor)
	pendiente := testkit.CreateOferta(t, db, v.ID, "1", "1", domain.EstadoPendiente)
	vendida := testkit.CreateOferta(t, db, v.ID, "1", "1", domain.EstadoVendida)

	require.NoError(t, svc.Eliminar(ctx, v.ID, pendiente.ID))
	_, err := svc.ObtenerPropia(ctx, v.ID, pendiente.ID)
	assert.ErrorIs(t, err, domain.ErrOfertaNotFound)

	assert.ErrorIs(t, svc.Eliminar(ctx, v.ID, vendida.ID), domain.ErrOfertaNotEditable)
}

func TestImagenRemovedWithOferta(t *testing.T) {
	db := testkit.NewDB(t)
	c, _ := testkit.NewCache(t)
	root := t.TempDir()
	disk, err := storage.NewLocal(root, "/uploads")
	require.NoError(t, err)
	imagenes := services.NewImagenService(disk)
	svc := services.NewOfertaService(repositories.NewOfertaRepository(db), c, imagenes)
	ctx := context.Background()
	vendedor := testkit.CreateUsuario(t, db, "v@test.com", domain.RolVendedor)

	stored := func(url string) bool {
		_, err := os.Stat(filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(url, "/uploads/"))))
		return err == nil
	}

	first, err := imagenes.Subir(ctx, "a.png", 3, strings.NewReader("png"))
	require.NoError(t, err)
	in := cobreInput()
	in.ImagenURL = first
	created, err := svc.Crear(ctx, vendedor.ID, in)
	require.NoError(t, err)
	require.True(t, stored(first))

	// replacing the image drops the previous object
	second, err := imagenes.Subir(ctx, "b.png", 3, strings.NewReader("png"))
	require.NoError(t, err)
	in.ImagenURL = second
	_, err = svc.Actualizar(ctx, vendedor.ID, created.ID, in)
	require.NoError(t, err)
	assert.False(t, stored(first))
	assert.True(t, stored(second))

	// an unchanged image survives an update
	_, err = svc.Actualizar(ctx, vendedor.ID, created.ID, in)
	require.NoError(t, err)
	assert.True(t, stored(second))

	require.NoError(t, svc.Eliminar(ctx, vendedor.ID, created.ID))
	assert.False(t, stored(second))
}

func TestEliminar_ExternalImagenIgnored(t *testing.T) {
	db := testkit.NewDB(t)
	c, _ := testkit.NewCache(t)
	disk, err := storage.NewLocal(t.TempDir(), "/uploads")
	require.NoError(t, err)
	svc := services.NewOfertaService(repositories.NewOfertaRepository(db), c, services.NewImagenService(disk))
	vendedor := testkit.CreateUsuario(t, db, "v@test.com", domain.RolVendedor)

	in := cobreInput()
	in.ImagenURL = "https://cdn.example.com/cobre.jpg"
	created, err := svc.Crear(context.Background(), vendedor.ID, in)
	require.NoError(t, err)

	assert.NoError(t, svc.Eliminar(context.Background(), vendedor.ID, created.ID))
}

func TestMisOfertasAndRecientes(t *testing.T) {
	svc, db := newOfertaService(t)
	ctx := context.Background()
	v := testkit.CreateUsuario(t, db, "v@test.com", domain.RolVendedor)
	otro := testkit.CreateUsuario(t, db, "o@test.com", domain.RolVendedor)
	var last *models.Oferta
	for i := 0; i < 7; i++ {
		last = testkit.CreateOferta(t, db, v.ID, "1", "1", domain.EstadoPendiente)
	}
	testkit.CreateOferta(t, db, otro.ID, "1", "1", domain.EstadoPendiente)

	mias, err := svc.MisOfertas(ctx, v.ID)
	require.NoError(t, err)
	assert.Len(t, mias, 7)

	recientes, err := svc.Recientes(ctx, v.ID)
	require.NoError(t, err)
	require.Len(t, recientes, services.RecientesLimit)
	assert.Equal(t, last.ID, recientes[0].ID)
}

func TestCambiarEstado_AdminTransitions(t *testing.T) {
	svc, db := newOfertaService(t)
	ctx := context.Background()
	v := testkit.CreateUsuario(t, db, "v@test.com", domain.RolVendedor)
	o := testkit.CreateOferta(t, db, v.ID, "1", "1", domain.EstadoPendiente)

	res, err := svc.CambiarEstado(ctx, 1, o.ID, "aprobada")
	require.NoError(t, err)
	assert.Equal(t, "APROBADA", res.Estado)

	res, err = svc.CambiarEstado(ctx, 1, o.ID, "VENDIDA")
	require.NoError(t, err)
	assert.Equal(t, "VENDIDA", res.Estado)

	_, err = svc.CambiarEstado(ctx, 1, o.ID, "APROBADA")
	assert.ErrorIs(t, err, domain.ErrTransitionForbidden)

	_, err = svc.CambiarEstado(ctx, 1, o.ID, "CANCELADA")
	assert.ErrorIs(t, err, domain.ErrInvalidEstado)

	_, err = svc.CambiarEstado(ctx, 1, o.ID, "desconocido")
	assert.ErrorIs(t, err, domain.ErrInvalidEstado)

	_, err = svc.CambiarEstado(ctx, 1, 9999, "APROBADA")
	assert.ErrorIs(t, err, domain.ErrOfertaNotFound)
}

func TestListar_FilterByEstado(t *testing.T) {
	svc, db := newOfertaService(t)
	ctx := context.Background()
	v := testkit.CreateUsuario(t, db, "v@test.com", domain.RolVendedor)
	testkit.CreateOferta(t, db, v.ID, "1", "1", domain.EstadoPendiente)
	testkit.CreateOferta(t, db, v.ID, "1", "1", domain.EstadoAprobada)
	testkit.CreateOferta(t, db, v.ID, "1", "1", domain.EstadoAprobada)

	todas, err := svc.Listar(ctx, "")
	require.NoError(t, err)
	assert.Len(t, todas, 3)

	aprobadas, err := svc.Listar(ctx, "aprobada")
	require.NoError(t, err)
	assert.Len(t, aprobadas, 2)

	_, err = svc.Listar(ctx, "ARCHIVADA")
	assert.ErrorIs(t, err, domain.ErrInvalidEstado)
}

func TestCatalogo_OnlyAprobadas(t *testing.T) {
	svc, db := newOfertaService(t)
	ctx := context.Background()
	v := testkit.CreateUsuario(t, db, "v@test.com", domain.RolVendedor)
	pendiente := testkit.CreateOferta(t, db, v.ID, "1", "1", domain.EstadoPendiente)
	aprobada := testkit.CreateOferta(t, db, v.ID, "1", "1", domain.EstadoAprobada)
	hierro := testkit.CreateOferta(t, db, v.ID, "1", "1", domain.EstadoAprobada)
	require.NoError(t, db.Model(hierro).Update("tipo_material", "Hierro").Error)

	items, total, err := svc.Catalogo(ctx, "", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)

	items, total, err = svc.Catalogo(ctx, "COB", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, aprobada.ID, items[0].ID)

	_, err = svc.DetallePublico(ctx, pendiente.ID)
	assert.ErrorIs(t, err, domain.ErrOfertaNotFound)
	res, err := svc.DetallePublico(ctx, aprobada.ID)
	require.NoError(t, err)
	assert.Equal(t, aprobada.ID, res.ID)
}
