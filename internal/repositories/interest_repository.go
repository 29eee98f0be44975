package repositories

import (
	"github.com/ushadow-io/feed-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InterestRepository defines the interface for interest vocabulary operations
type InterestRepository interface {
	List() ([]models.Interest, error)
	IncrementWeight(name string, delta int64) error
	Count() (int64, error)
}

// PostgresInterestRepository implements InterestRepository
type PostgresInterestRepository struct {
	db *gorm.DB
}

func NewPostgresInterestRepository(db *gorm.DB) *PostgresInterestRepository {
	return &PostgresInterestRepository{db: db}
}

func (r *PostgresInterestRepository) List() ([]models.Interest, error) {
	var interests []models.Interest
	err := r.db.Order("weight DESC, name ASC").Find(&interests).Error
	return interests, err
}

// IncrementWeight upserts the interest and bumps its weight by delta.
func (r *PostgresInterestRepository) IncrementWeight(name string, delta int64) error {
	interest := models.Interest{Name: name, Weight: delta}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"weight": gorm.Expr("interests.weight + ?", delta),
		}),
	}).Create(&interest).Error
}

func (r *PostgresInterestRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Interest{}).Count(&count).Error
	return count, err
}
