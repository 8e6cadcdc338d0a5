package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"chatarra-market/internal/adapters/persistence/models"
	"chatarra-market/internal/adapters/persistence/repositories"
	"chatarra-market/internal/config"
	"chatarra-market/internal/core/domain"
	"chatarra-market/internal/pkg/cache"
	"chatarra-market/internal/pkg/jwt"
	"chatarra-market/internal/pkg/metrics"
	"chatarra-market/internal/pkg/password"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrUserInactive       = errors.New("user account is inactive")
)

const denylistPrefix = "auth:denylist:"

// AuthService handles authentication business logic
type AuthService struct {
	usuarioRepo      repositories.UsuarioRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	cache            *cache.Cache
	cfg              *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	usuarioRepo repositories.UsuarioRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	cache *cache.Cache,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		usuarioRepo:      usuarioRepo,
		refreshTokenRepo: refreshTokenRepo,
		cache:            cache,
		cfg:              cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	NombreCompleto string `json:"nombreCompleto" validate:"required,min=2,max=100"`
	Email          string `json:"email" validate:"required,email,max=100"`
	Password       string `json:"password" validate:"required,min=6,max=72"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by register, login and refresh
type AuthResponse struct {
	Token          string `json:"token"`
	Tipo           string `json:"tipo"`
	ID             uint   `json:"id"`
	NombreCompleto string `json:"nombreCompleto"`
	Email          string `json:"email"`
	Rol            string `json:"rol"`
	RefreshToken   string `json:"refreshToken"`
	ExpiraEn       int    `json:"expiraEn"` // seconds until the access token expires
}

// Register registers a new VENDEDOR and signs them in
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResponse, error) {
	email := normalizeEmail(input.Email)

	exists, err := s.usuarioRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		log.Ctx(ctx).Warn().Str("email", email).Msg("registro con email existente")
		metrics.RecordAuth("register", "conflict")
		return nil, domain.ErrEmailAlreadyExists
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	usuario := &models.Usuario{
		NombreCompleto: strings.TrimSpace(input.NombreCompleto),
		Email:          email,
		Password:       hashed,
		Rol:            domain.RolVendedor,
		Activo:         true,
	}
	if err := s.usuarioRepo.Create(ctx, usuario); err != nil {
		return nil, fmt.Errorf("create usuario: %w", err)
	}

	log.Ctx(ctx).Info().Uint("usuario_id", usuario.ID).Str("rol", string(usuario.Rol)).Msg("usuario registrado")
	metrics.RecordAuth("register", "ok")

	return s.issue(ctx, usuario)
}

// Login authenticates a usuario by email and password
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	usuario, err := s.usuarioRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.RecordAuth("login", "invalid")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}

	if !password.Verify(input.Password, usuario.Password) {
		metrics.RecordAuth("login", "invalid")
		return nil, ErrInvalidCredentials
	}
	if !usuario.Activo {
		metrics.RecordAuth("login", "inactive")
		return nil, ErrUserInactive
	}

	log.Ctx(ctx).Info().Uint("usuario_id", usuario.ID).Msg("login exitoso")
	metrics.RecordAuth("login", "ok")

	return s.issue(ctx, usuario)
}

// Refresh rotates a refresh token: the old one is revoked and a new pair issued
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	stored, err := s.refreshTokenRepo.GetByTokenHash(ctx, password.HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("get refresh token: %w", err)
	}
	if stored.IsRevoked() {
		metrics.RecordAuth("refresh", "revoked")
		return nil, ErrTokenRevoked
	}
	if stored.IsExpired() {
		return nil, ErrTokenExpired
	}
	if stored.UsuarioID != claims.UsuarioID {
		return nil, ErrInvalidToken
	}

	usuario, err := s.usuarioRepo.GetByID(ctx, stored.UsuarioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	if !usuario.Activo {
		return nil, ErrUserInactive
	}

	revoked, err := s.refreshTokenRepo.Revoke(ctx, stored.ID)
	if err != nil {
		return nil, fmt.Errorf("revoke refresh token: %w", err)
	}
	if !revoked {
		metrics.RecordAuth("refresh", "revoked")
		return nil, ErrTokenRevoked
	}

	metrics.RecordAuth("refresh", "ok")
	return s.issue(ctx, usuario)
}

// Logout revokes the refresh token and, when given, denylists the access
// token until it expires. Both arguments are optional.
func (s *AuthService) Logout(ctx context.Context, refreshToken, accessToken string) error {
	if refreshToken != "" {
		if err := s.refreshTokenRepo.RevokeByTokenHash(ctx, password.HashToken(refreshToken)); err != nil {
			return fmt.Errorf("revoke refresh token: %w", err)
		}
	}

	if accessToken != "" {
		if claims, err := jwt.ValidateAccessToken(accessToken, s.cfg.JWT.Secret); err == nil {
			if err := s.RevokeAccessToken(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
				log.Ctx(ctx).Warn().Err(err).Msg("no se pudo invalidar el access token")
			}
		}
	}

	metrics.RecordAuth("logout", "ok")
	return nil
}

// LogoutAll revokes every refresh token of the usuario
func (s *AuthService) LogoutAll(ctx context.Context, usuarioID uint) error {
	if err := s.refreshTokenRepo.RevokeAllByUsuarioID(ctx, usuarioID); err != nil {
		return fmt.Errorf("revoke refresh tokens: %w", err)
	}
	log.Ctx(ctx).Info().Uint("usuario_id", usuarioID).Msg("todas las sesiones revocadas")
	return nil
}

// Authenticate validates an access token and resolves it to an active usuario.
// The token's subject is the email; rol comes from the stored row.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*models.Usuario, *jwt.Claims, error) {
	claims, err := jwt.ValidateAccessToken(accessToken, s.cfg.JWT.Secret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, nil, ErrTokenExpired
		}
		return nil, nil, ErrInvalidToken
	}

	revoked, err := s.IsAccessTokenRevoked(ctx, claims.ID)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("denylist lookup failed")
	}
	if revoked {
		return nil, nil, ErrTokenRevoked
	}

	usuario, err := s.usuarioRepo.GetByEmail(ctx, claims.Email())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidToken
		}
		return nil, nil, fmt.Errorf("get usuario: %w", err)
	}
	if !usuario.Activo {
		return nil, nil, ErrUserInactive
	}

	return usuario, claims, nil
}

// RevokeAccessToken puts jti on the denylist until exp
func (s *AuthService) RevokeAccessToken(ctx context.Context, jti string, exp time.Time) error {
	ttl := time.Until(exp)
	if jti == "" || ttl <= 0 {
		return nil
	}
	return s.cache.Set(ctx, denylistPrefix+jti, "1", ttl)
}

// IsAccessTokenRevoked reports whether jti is on the denylist
func (s *AuthService) IsAccessTokenRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	return s.cache.Exists(ctx, denylistPrefix+jti)
}

// GetUsuarioByID gets a usuario by ID
func (s *AuthService) GetUsuarioByID(ctx context.Context, id uint) (*models.Usuario, error) {
	usuario, err := s.usuarioRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUsuarioNotFound
		}
		return nil, err
	}
	return usuario, nil
}

// issue generates and stores a token pair for usuario
func (s *AuthService) issue(ctx context.Context, usuario *models.Usuario) (*AuthResponse, error) {
	accessToken, err := jwt.GenerateAccessToken(
		usuario.ID,
		usuario.Email,
		string(usuario.Rol),
		s.cfg.JWT.Secret,
		s.cfg.JWT.Issuer,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := jwt.GenerateRefreshToken(
		usuario.ID,
		uuid.New().String(),
		s.cfg.JWT.RefreshSecret,
		s.cfg.JWT.Issuer,
		s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	stored := &models.RefreshToken{
		UsuarioID: usuario.ID,
		TokenHash: password.HashToken(refreshToken),
		ExpiresAt: jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays),
	}
	if err := s.refreshTokenRepo.Create(ctx, stored); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &AuthResponse{
		Token:          accessToken,
		Tipo:           "Bearer",
		ID:             usuario.ID,
		NombreCompleto: usuario.NombreCompleto,
		Email:          usuario.Email,
		Rol:            string(usuario.Rol),
		RefreshToken:   refreshToken,
		ExpiraEn:       s.cfg.JWT.AccessTokenMins * 60,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
