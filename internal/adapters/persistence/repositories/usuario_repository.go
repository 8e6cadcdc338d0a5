package repositories

import (
	"context"

	"chatarra-market/internal/adapters/persistence/models"
	"chatarra-market/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// usuarioRepository implements UsuarioRepository interface
type usuarioRepository struct {
	db *gorm.DB
}

// NewUsuarioRepository creates a new usuario repository
func NewUsuarioRepository(db *gorm.DB) UsuarioRepository {
	return &usuarioRepository{db: db}
}

func (r *usuarioRepository) Create(ctx context.Context, usuario *models.Usuario) error {
	return r.db.WithContext(ctx).Create(usuario).Error
}

func (r *usuarioRepository) GetByID(ctx context.Context, id uint) (*models.Usuario, error) {
	var usuario models.Usuario
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&usuario).Error
	if err != nil {
		return nil, err
	}
	return &usuario, nil
}

func (r *usuarioRepository) GetByEmail(ctx context.Context, email string) (*models.Usuario, error) {
	var usuario models.Usuario
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&usuario).Error
	if err != nil {
		return nil, err
	}
	return &usuario, nil
}

// Update saves every column of the usuario
func (r *usuarioRepository) Update(ctx context.Context, usuario *models.Usuario) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(usuario).Error
}

// List lists all usuarios ordered by id
func (r *usuarioRepository) List(ctx context.Context) ([]*models.Usuario, error) {
	var usuarios []*models.Usuario
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&usuarios).Error; err != nil {
		return nil, err
	}
	return usuarios, nil
}

func (r *usuarioRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Usuario{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *usuarioRepository) CountByRol(ctx context.Context, rol domain.Rol) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Usuario{}).Where("rol = ?", rol).Count(&count).Error
	return count, err
}

func (r *usuarioRepository) CountActivos(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Usuario{}).Where("activo = ?", true).Count(&count).Error
	return count, err
}
