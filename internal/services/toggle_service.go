package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/socially/backend/internal/models"
	"github.com/socially/backend/internal/repositories"
	"github.com/socially/backend/internal/views"
	"gorm.io/gorm"
)

// ToggleResult reports the state of a like or follow edge after a toggle.
// Authenticated is false when no actor was resolved for the request; the
// operation is then a no-op, not a failure.
type ToggleResult struct {
	Authenticated bool `json:"authenticated"`
	Active        bool `json:"active"`
}

// ToggleService flips like and follow edges between ABSENT and PRESENT.
// Each toggle runs as one store transaction: the edge insert and its
// notification commit together or not at all. Concurrent toggles on the
// same pair are serialized by the store's unique index; the loser of an
// insert race gets ErrConflict.
type ToggleService struct {
	store  repositories.Store
	views  views.Invalidator
	logger *slog.Logger
}

// NewToggleService creates a new ToggleService
func NewToggleService(store repositories.Store, invalidator views.Invalidator, logger *slog.Logger) *ToggleService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ToggleService{store: store, views: invalidator, logger: logger}
}

// ToggleLike flips the like edge for (actorID, postID). Creating the edge
// also writes a LIKE notification to the post's author unless the actor is
// liking their own post. Removal is silent.
func (s *ToggleService) ToggleLike(ctx context.Context, actorID, postID uint) (*ToggleResult, error) {
	if actorID == 0 {
		return &ToggleResult{}, nil
	}

	result := &ToggleResult{Authenticated: true}
	var recipientID uint

	err := s.store.RunAtomic(ctx, func(r *repositories.Repositories) error {
		post, err := r.Posts.GetPostByID(ctx, postID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return fmt.Errorf("load post: %w", err)
		}

		_, err = r.Likes.GetLike(ctx, actorID, postID)
		switch {
		case err == nil:
			// PRESENT -> ABSENT, no notification on removal
			if err := r.Likes.DeleteLike(ctx, actorID, postID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("delete like: %w", err)
			}
			result.Active = false
			return nil

		case errors.Is(err, gorm.ErrRecordNotFound):
			// ABSENT -> PRESENT
			if err := r.Likes.CreateLike(ctx, &models.Like{UserID: actorID, PostID: postID}); err != nil {
				if errors.Is(err, repositories.ErrDuplicateKey) {
					return ErrConflict
				}
				return fmt.Errorf("create like: %w", err)
			}
			if post.AuthorID != actorID {
				notification := &models.Notification{
					Type:        models.NotificationLike,
					RecipientID: post.AuthorID,
					CreatorID:   actorID,
					PostID:      &post.ID,
				}
				if err := r.Notifications.CreateNotification(ctx, notification); err != nil {
					return fmt.Errorf("create like notification: %w", err)
				}
				recipientID = post.AuthorID
			}
			result.Active = true
			return nil

		default:
			return fmt.Errorf("check like: %w", err)
		}
	})
	if err != nil {
		return nil, err
	}

	keys := []string{views.FeedKey}
	if recipientID != 0 {
		keys = append(keys, views.NotificationsKey(recipientID))
	}
	s.views.Invalidate(ctx, keys...)

	s.logger.Info("like toggled", "actor", actorID, "post", postID, "liked", result.Active)
	return result, nil
}

// ToggleFollow flips the follow edge for (followerID, followeeID). A
// self-follow is rejected outright. Creating the edge always writes a
// FOLLOW notification to the followee.
func (s *ToggleService) ToggleFollow(ctx context.Context, followerID, followeeID uint) (*ToggleResult, error) {
	if followerID == 0 {
		return &ToggleResult{}, nil
	}
	if followerID == followeeID {
		return nil, ErrSelfFollow
	}

	result := &ToggleResult{Authenticated: true}
	notified := false

	err := s.store.RunAtomic(ctx, func(r *repositories.Repositories) error {
		if _, err := r.Users.GetUserByID(ctx, followeeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrActorNotFound
			}
			return fmt.Errorf("load followee: %w", err)
		}

		_, err := r.Follows.GetFollow(ctx, followerID, followeeID)
		switch {
		case err == nil:
			if err := r.Follows.DeleteFollow(ctx, followerID, followeeID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("delete follow: %w", err)
			}
			result.Active = false
			return nil

		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := r.Follows.CreateFollow(ctx, &models.Follow{FollowerID: followerID, FolloweeID: followeeID}); err != nil {
				if errors.Is(err, repositories.ErrDuplicateKey) {
					return ErrConflict
				}
				return fmt.Errorf("create follow: %w", err)
			}
			notification := &models.Notification{
				Type:        models.NotificationFollow,
				RecipientID: followeeID,
				CreatorID:   followerID,
			}
			if err := r.Notifications.CreateNotification(ctx, notification); err != nil {
				return fmt.Errorf("create follow notification: %w", err)
			}
			notified = true
			result.Active = true
			return nil

		default:
			return fmt.Errorf("check follow: %w", err)
		}
	})
	if err != nil {
		return nil, err
	}

	keys := []string{views.FeedKey}
	if notified {
		keys = append(keys, views.NotificationsKey(followeeID))
	}
	s.views.Invalidate(ctx, keys...)

	s.logger.Info("follow toggled", "follower", followerID, "followee", followeeID, "following", result.Active)
	return result, nil
}
