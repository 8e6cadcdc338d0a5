package config

import (
	"context"
	"fmt"
	"strings"

	"chatarra-market/internal/adapters/persistence/models"
	"chatarra-market/internal/core/domain"
	"chatarra-market/internal/pkg/password"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db    *gorm.DB
	admin AdminConfig
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, admin AdminConfig) *Seeder {
	return &Seeder{db: db, admin: admin}
}

// Run executes all seeders
func (s *Seeder) Run(ctx context.Context) error {
	log.Info().Msg("running database seeders")

	created, err := s.SeedAdmin(ctx)
	if err != nil {
		return err
	}
	if created {
		log.Info().Str("email", s.admin.Email).Msg("admin user created")
	}

	log.Info().Msg("database seeding completed")
	return nil
}

// SeedAdmin creates the configured admin when no ADMIN exists yet
func (s *Seeder) SeedAdmin(ctx context.Context) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Usuario{}).Where("rol = ?", domain.RolAdmin).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	email := strings.ToLower(strings.TrimSpace(s.admin.Email))
	if email == "" || s.admin.Password == "" {
		log.Warn().Msg("admin seed skipped: ADMIN_EMAIL or ADMIN_PASSWORD empty")
		return false, nil
	}
	if !password.ValidatePassword(s.admin.Password) {
		return false, fmt.Errorf("ADMIN_PASSWORD must be between %d and %d characters", password.MinLength, password.MaxLength)
	}

	hashed, err := password.Hash(s.admin.Password)
	if err != nil {
		return false, err
	}

	var existing models.Usuario
	err = s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	switch {
	case err == nil:
		// promote the existing account instead of failing on the unique email
		existing.Rol = domain.RolAdmin
		existing.Activo = true
		if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return false, fmt.Errorf("promote admin: %w", err)
		}
		return true, nil
	case err != gorm.ErrRecordNotFound:
		return false, fmt.Errorf("find admin: %w", err)
	}

	nombre := s.admin.NombreCompleto
	if nombre == "" {
		nombre = "Administrador"
	}
	admin := &models.Usuario{
		NombreCompleto: nombre,
		Email:          email,
		Password:       hashed,
		Rol:            domain.RolAdmin,
		Activo:         true,
	}
	if err := s.db.WithContext(ctx).Create(admin).Error; err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	return true, nil
}
