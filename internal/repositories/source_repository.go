package repositories

import (
	"fmt"

	"github.com/ushadow-io/feed-service/internal/models"
	"gorm.io/gorm"
)

// SourceRepository defines the interface for source operations
type SourceRepository interface {
	Create(source *models.Source) error
	Delete(sourceID string) error
	List() ([]models.Source, error)
	ListByPlatform(platform models.PlatformType) ([]models.Source, error)
	CountByPlatform(platform models.PlatformType) (int64, error)
}

// PostgresSourceRepository implements SourceRepository
type PostgresSourceRepository struct {
	db *gorm.DB
}

func NewPostgresSourceRepository(db *gorm.DB) *PostgresSourceRepository {
	return &PostgresSourceRepository{db: db}
}

func (r *PostgresSourceRepository) Create(source *models.Source) error {
	return r.db.Create(source).Error
}

func (r *PostgresSourceRepository) Delete(sourceID string) error {
	res := r.db.Where("source_id = ?", sourceID).Delete(&models.Source{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("source not found")
	}
	return nil
}

func (r *PostgresSourceRepository) List() ([]models.Source, error) {
	var sources []models.Source
	err := r.db.Order("created_at DESC").Find(&sources).Error
	return sources, err
}

func (r *PostgresSourceRepository) ListByPlatform(platform models.PlatformType) ([]models.Source, error) {
	var sources []models.Source
	err := r.db.Where("platform_type = ?", platform).Order("created_at DESC").Find(&sources).Error
	return sources, err
}

func (r *PostgresSourceRepository) CountByPlatform(platform models.PlatformType) (int64, error) {
	var count int64
	err := r.db.Model(&models.Source{}).Where("platform_type = ?", platform).Count(&count).Error
	return count, err
}
