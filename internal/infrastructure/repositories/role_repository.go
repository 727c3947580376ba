package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sibe/identity/domain"
)

// DBRole is the database model for Role.
type DBRole struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;size:64"`
	Description string `gorm:"size:255"`
}

func (DBRole) TableName() string { return "roles" }

// RoleRepositoryImpl implements domain.RoleRepository using GORM.
type RoleRepositoryImpl struct {
	db *gorm.DB
}

// NewRoleRepository creates a new role repository.
func NewRoleRepository(db *gorm.DB) domain.RoleRepository {
	return &RoleRepositoryImpl{db: db}
}

// Create implements domain.RoleRepository.
func (r *RoleRepositoryImpl) Create(ctx context.Context, role *domain.Role) error {
	dbRole := &DBRole{Name: string(role.Name), Description: role.Description}
	if err := r.db.WithContext(ctx).Create(dbRole).Error; err != nil {
		return err
	}
	role.ID = dbRole.ID
	return nil
}

// FindByID implements domain.RoleRepository.
func (r *RoleRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Role, error) {
	var dbRole DBRole
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbRole).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, err
	}
	return roleToDomain(&dbRole), nil
}

// FindByName implements domain.RoleRepository.
func (r *RoleRepositoryImpl) FindByName(ctx context.Context, name domain.RoleName) (*domain.Role, error) {
	var dbRole DBRole
	err := r.db.WithContext(ctx).Where("name = ?", string(name)).First(&dbRole).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, err
	}
	return roleToDomain(&dbRole), nil
}

// List implements domain.RoleRepository.
func (r *RoleRepositoryImpl) List(ctx context.Context) ([]domain.Role, error) {
	var rows []DBRole
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	roles := make([]domain.Role, 0, len(rows))
	for _, row := range rows {
		roles = append(roles, *roleToDomain(&row))
	}
	return roles, nil
}

// Update implements domain.RoleRepository.
func (r *RoleRepositoryImpl) Update(ctx context.Context, role *domain.Role) error {
	result := r.db.WithContext(ctx).
		Model(&DBRole{}).
		Where("id = ?", role.ID).
		Updates(map[string]interface{}{
			"name":        string(role.Name),
			"description": role.Description,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrRoleNotFound
	}
	return nil
}

// Delete implements domain.RoleRepository. A role referenced by at least
// one account cannot be deleted.
func (r *RoleRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&DBAccount{}).Where("role_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrRoleInUse
		}

		result := tx.Delete(&DBRole{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrRoleNotFound
		}
		return nil
	})
}

func roleToDomain(dbRole *DBRole) *domain.Role {
	return &domain.Role{
		ID:          dbRole.ID,
		Name:        domain.RoleName(dbRole.Name),
		Description: dbRole.Description,
	}
}
