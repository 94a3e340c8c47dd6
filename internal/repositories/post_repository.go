package repositories

import (
	"context"

	"github.com/socially/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	ListPosts(ctx context.Context) ([]models.Post, error)
	ListPostsByAuthor(ctx context.Context, authorID uint) ([]models.Post, error)
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
	DeletePost(ctx context.Context, id uint) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a new post in PostgreSQL
func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return translateError(r.db.WithContext(ctx).Create(post).Error)
}

// GetPostByID retrieves a post by ID from PostgreSQL
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPosts retrieves all posts ordered by creation time descending
func (r *PostgresPostRepository) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListPostsByAuthor retrieves one author's posts, newest first
func (r *PostgresPostRepository) ListPostsByAuthor(ctx context.Context, authorID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// CountByAuthor returns the number of posts by one author
func (r *PostgresPostRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

// DeletePost deletes a post by ID. Dependent likes, comments and
// notifications are removed by the database cascade.
func (r *PostgresPostRepository) DeletePost(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
