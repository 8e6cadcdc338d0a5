package services

import (
	"context"
	"errors"
	"fmt"

	"chatarra-market/internal/adapters/persistence/models"
	"chatarra-market/internal/adapters/persistence/repositories"
	"chatarra-market/internal/core/domain"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Usuario service errors
var (
	ErrCannotChangeOwnRole  = errors.New("cannot change your own role")
	ErrCannotDeactivateSelf = errors.New("cannot deactivate your own account")
)

// UsuarioService handles admin management of usuarios
type UsuarioService struct {
	usuarioRepo      repositories.UsuarioRepository
	refreshTokenRepo repositories.RefreshTokenRepository
}

// NewUsuarioService creates a new usuario service
func NewUsuarioService(
	usuarioRepo repositories.UsuarioRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
) *UsuarioService {
	return &UsuarioService{
		usuarioRepo:      usuarioRepo,
		refreshTokenRepo: refreshTokenRepo,
	}
}

// List returns every usuario
func (s *UsuarioService) List(ctx context.Context) ([]*models.UsuarioResponse, error) {
	usuarios, err := s.usuarioRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}

	out := make([]*models.UsuarioResponse, len(usuarios))
	for i, u := range usuarios {
		out[i] = u.ToResponse()
	}
	return out, nil
}

// Get returns a usuario by ID
func (s *UsuarioService) Get(ctx context.Context, id uint) (*models.UsuarioResponse, error) {
	usuario, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return usuario.ToResponse(), nil
}

// CambiarRol sets the rol of usuario id. rol is parsed case-insensitively.
func (s *UsuarioService) CambiarRol(ctx context.Context, actorID, id uint, rol string) (*models.UsuarioResponse, error) {
	nuevoRol, ok := domain.ParseRol(rol)
	if !ok {
		return nil, domain.ErrInvalidRol
	}
	if actorID == id {
		return nil, ErrCannotChangeOwnRole
	}

	usuario, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	anterior := usuario.Rol
	usuario.Rol = nuevoRol
	if err := s.usuarioRepo.Update(ctx, usuario); err != nil {
		return nil, fmt.Errorf("update usuario: %w", err)
	}

	log.Ctx(ctx).Info().
		Uint("admin_id", actorID).
		Uint("usuario_id", id).
		Str("de", string(anterior)).
		Str("a", string(nuevoRol)).
		Msg("rol actualizado")

	return usuario.ToResponse(), nil
}

// CambiarEstado activates or deactivates usuario id. Deactivation revokes
// every refresh token of the usuario.
func (s *UsuarioService) CambiarEstado(ctx context.Context, actorID, id uint, activo bool) (*models.UsuarioResponse, error) {
	if actorID == id && !activo {
		return nil, ErrCannotDeactivateSelf
	}

	usuario, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	usuario.Activo = activo
	if err := s.usuarioRepo.Update(ctx, usuario); err != nil {
		return nil, fmt.Errorf("update usuario: %w", err)
	}

	if !activo {
		if err := s.refreshTokenRepo.RevokeAllByUsuarioID(ctx, id); err != nil {
			return nil, fmt.Errorf("revoke refresh tokens: %w", err)
		}
	}

	log.Ctx(ctx).Info().Uint("admin_id", actorID).Uint("usuario_id", id).Bool("activo", activo).Msg("estado de usuario actualizado")
	return usuario.ToResponse(), nil
}

func (s *UsuarioService) find(ctx context.Context, id uint) (*models.Usuario, error) {
	usuario, err := s.usuarioRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUsuarioNotFound
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return usuario, nil
}
