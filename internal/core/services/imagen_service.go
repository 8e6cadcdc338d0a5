package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"chatarra-market/internal/adapters/storage"

	"github.com/rs/zerolog/log"
)

// MaxImagenSize is the largest accepted upload in bytes
const MaxImagenSize = 5 << 20

// Imagen errors
var (
	ErrImagenTooLarge = errors.New("image exceeds 5MB")
	ErrImagenType     = errors.New("unsupported image type")
	ErrImagenEmpty    = errors.New("empty image")
)

// ImagenService stores oferta images
type ImagenService struct {
	storage storage.Storage
}

// NewImagenService creates a new imagen service
func NewImagenService(storage storage.Storage) *ImagenService {
	return &ImagenService{storage: storage}
}

// Subir stores an image and returns its public URL
func (s *ImagenService) Subir(ctx context.Context, filename string, size int64, r io.Reader) (string, error) {
	if size <= 0 {
		return "", ErrImagenEmpty
	}
	if size > MaxImagenSize {
		return "", ErrImagenTooLarge
	}
	contentType, ok := storage.ContentType(filename)
	if !ok {
		return "", ErrImagenType
	}

	key := storage.NewKey(filename)
	url, err := s.storage.Put(ctx, key, r, size, contentType)
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}

	log.Ctx(ctx).Info().Str("key", key).Str("driver", s.storage.Driver()).Int64("size", size).Msg("imagen subida")
	return url, nil
}

// Eliminar removes the stored object behind url. URLs this store did not
// issue are ignored and failures are only logged.
func (s *ImagenService) Eliminar(ctx context.Context, url string) {
	if s == nil {
		return
	}
	key, ok := storage.KeyFromURL(s.storage, url)
	if !ok {
		return
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("no se pudo eliminar la imagen")
		return
	}
	log.Ctx(ctx).Info().Str("key", key).Msg("imagen eliminada")
}
