package repositories

import (
	"context"

	"github.com/socially/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	// CreateLike inserts a like row. Returns ErrDuplicateKey when the
	// (user, post) pair already exists — a concurrent toggle won the race.
	CreateLike(ctx context.Context, like *models.Like) error
	DeleteLike(ctx context.Context, userID, postID uint) error
	GetLike(ctx context.Context, userID, postID uint) (*models.Like, error)
	ListByPostIDs(ctx context.Context, postIDs []uint) ([]models.Like, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike creates a new like in PostgreSQL
func (r *PostgresLikeRepository) CreateLike(ctx context.Context, like *models.Like) error {
	return translateError(r.db.WithContext(ctx).Create(like).Error)
}

// DeleteLike deletes a like from PostgreSQL
func (r *PostgresLikeRepository) DeleteLike(ctx context.Context, userID, postID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetLike retrieves a specific like by userID and postID
func (r *PostgresLikeRepository) GetLike(ctx context.Context, userID, postID uint) (*models.Like, error) {
	var like models.Like
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&like).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

// ListByPostIDs retrieves the likes for a set of posts in one query
func (r *PostgresLikeRepository) ListByPostIDs(ctx context.Context, postIDs []uint) ([]models.Like, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var likes []models.Like
	if err := r.db.WithContext(ctx).Where("post_id IN ?", postIDs).Find(&likes).Error; err != nil {
		return nil, err
	}
	return likes, nil
}
