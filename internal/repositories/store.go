package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrDuplicateKey is returned by insert operations when a uniqueness
// constraint rejects the row. Toggle callers treat it as losing a race, not
// as a fatal store error.
var ErrDuplicateKey = errors.New("duplicate key")

// Repositories bundles the per-entity repositories bound to one database
// handle. Inside RunAtomic every repository shares the same transaction.
type Repositories struct {
	Users         UserRepository
	Posts         PostRepository
	Likes         LikeRepository
	Follows       FollowRepository
	Comments      CommentRepository
	Notifications NotificationRepository
}

// Store is the entity store consumed by the services: plain repository
// access for reads plus a transaction wrapper that commits every write
// performed by fn or rolls all of them back.
type Store interface {
	Repos() *Repositories
	RunAtomic(ctx context.Context, fn func(r *Repositories) error) error
}

// GormStore implements Store on a PostgreSQL connection managed by GORM.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GormStore
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func newRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:         NewPostgresUserRepository(db),
		Posts:         NewPostgresPostRepository(db),
		Likes:         NewPostgresLikeRepository(db),
		Follows:       NewPostgresFollowRepository(db),
		Comments:      NewPostgresCommentRepository(db),
		Notifications: NewPostgresNotificationRepository(db),
	}
}

// Repos returns repositories bound to the shared connection pool.
func (s *GormStore) Repos() *Repositories {
	return newRepositories(s.db)
}

// RunAtomic executes fn inside a single database transaction. Returning an
// error from fn rolls back everything fn wrote; context cancellation before
// commit aborts the transaction the same way.
func (s *GormStore) RunAtomic(ctx context.Context, fn func(r *Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newRepositories(tx))
	})
}

// translateError maps GORM's translated driver errors onto the repository
// sentinel used by the toggle race tie-break.
func translateError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateKey
	}
	return err
}
