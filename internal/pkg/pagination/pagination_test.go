package pagination_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatarra-market/internal/pkg/pagination"
)

func TestNewParams_Clamps(t *testing.T) {
	p := pagination.NewParams(0, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, pagination.DefaultLimit, p.Limit)
	assert.Equal(t, 0, p.Offset)

	p = pagination.NewParams(3, 500)
	assert.Equal(t, pagination.MaxLimit, p.Limit)
	assert.Equal(t, 200, p.Offset)
}

func TestGetMeta(t *testing.T) {
	meta := pagination.GetMeta(pagination.NewParams(2, 10), 25)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)

	meta = pagination.GetMeta(pagination.NewParams(1, 10), 0)
	assert.Equal(t, 0, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.False(t, meta.HasPrev)
}

func TestGetParams_FromQuery(t *testing.T) {
	var got *pagination.Params
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		got = pagination.GetParams(c)
		return nil
	})

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/?page=4&limit=5", nil), -1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 4, got.Page)
	assert.Equal(t, 5, got.Limit)
	assert.Equal(t, 15, got.Offset)
}
