package services_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatarra-market/internal/adapters/storage"
	"chatarra-market/internal/core/services"
)

func TestImagenService_Subir(t *testing.T) {
	disk, err := storage.NewLocal(t.TempDir(), "/uploads")
	require.NoError(t, err)
	svc := services.NewImagenService(disk)
	ctx := context.Background()

	url, err := svc.Subir(ctx, "chatarra.png", 3, strings.NewReader("png"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/ofertas/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	_, err = svc.Subir(ctx, "virus.exe", 3, strings.NewReader("exe"))
	assert.ErrorIs(t, err, services.ErrImagenType)

	_, err = svc.Subir(ctx, "vacia.png", 0, strings.NewReader(""))
	assert.ErrorIs(t, err, services.ErrImagenEmpty)

	big := bytes.Repeat([]byte("x"), services.MaxImagenSize+1)
	_, err = svc.Subir(ctx, "grande.jpg", int64(len(big)), bytes.NewReader(big))
	assert.ErrorIs(t, err, services.ErrImagenTooLarge)
}
