package repositories

import (
	"context"

	"github.com/socially/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPostID(ctx context.Context, postID uint) ([]models.Comment, error)
	ListByPostIDs(ctx context.Context, postIDs []uint) ([]models.Comment, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment creates a new comment in PostgreSQL
func (r *PostgresCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return translateError(r.db.WithContext(ctx).Create(comment).Error)
}

// GetCommentByID retrieves a comment by ID from PostgreSQL
func (r *PostgresCommentRepository) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByPostID retrieves one post's comments ordered by creation time ascending
func (r *PostgresCommentRepository) ListByPostID(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// ListByPostIDs retrieves comments for a set of posts in one query, ordered
// by creation time ascending
func (r *PostgresCommentRepository) ListByPostIDs(ctx context.Context, postIDs []uint) ([]models.Comment, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
