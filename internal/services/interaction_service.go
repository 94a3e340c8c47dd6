package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/socially/backend/internal/models"
	"github.com/socially/backend/internal/repositories"
	"github.com/socially/backend/internal/views"
	"gorm.io/gorm"
)

// PostResult carries a created post, or Authenticated=false when no actor
// was resolved.
type PostResult struct {
	Authenticated bool         `json:"authenticated"`
	Post          *models.Post `json:"post,omitempty"`
}

// CommentResult carries a created comment, or Authenticated=false when no
// actor was resolved.
type CommentResult struct {
	Authenticated bool            `json:"authenticated"`
	Comment       *models.Comment `json:"comment,omitempty"`
}

// InteractionService creates posts and comments. A comment and its derived
// notification are one atomic unit: a crash or failure between the two
// writes leaves neither behind.
type InteractionService struct {
	store  repositories.Store
	views  views.Invalidator
	logger *slog.Logger
}

// NewInteractionService creates a new InteractionService
func NewInteractionService(store repositories.Store, invalidator views.Invalidator, logger *slog.Logger) *InteractionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &InteractionService{store: store, views: invalidator, logger: logger}
}

// CreatePost inserts a post authored by actorID. No notification side
// effect.
func (s *InteractionService) CreatePost(ctx context.Context, actorID uint, content, imageURL string) (*PostResult, error) {
	if actorID == 0 {
		return &PostResult{}, nil
	}

	post := &models.Post{
		AuthorID: actorID,
		Content:  content,
		ImageURL: imageURL,
	}
	if err := s.store.Repos().Posts.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.views.Invalidate(ctx, views.FeedKey)
	s.logger.Info("post created", "actor", actorID, "post", post.ID)
	return &PostResult{Authenticated: true, Post: post}, nil
}

// CreateComment appends a comment to a post and, when the commenter is not
// the post's author, writes a COMMENT notification referencing both the
// post and the new comment. Both writes commit together or neither does.
func (s *InteractionService) CreateComment(ctx context.Context, actorID, postID uint, content string) (*CommentResult, error) {
	if actorID == 0 {
		return &CommentResult{}, nil
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: actorID,
		Content:  content,
	}
	var recipientID uint

	err := s.store.RunAtomic(ctx, func(r *repositories.Repositories) error {
		post, err := r.Posts.GetPostByID(ctx, postID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return fmt.Errorf("load post: %w", err)
		}

		if err := r.Comments.CreateComment(ctx, comment); err != nil {
			return fmt.Errorf("create comment: %w", err)
		}

		if post.AuthorID != actorID {
			notification := &models.Notification{
				Type:        models.NotificationComment,
				RecipientID: post.AuthorID,
				CreatorID:   actorID,
				PostID:      &post.ID,
				CommentID:   &comment.ID,
			}
			if err := r.Notifications.CreateNotification(ctx, notification); err != nil {
				return fmt.Errorf("create comment notification: %w", err)
			}
			recipientID = post.AuthorID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	keys := []string{views.FeedKey}
	if recipientID != 0 {
		keys = append(keys, views.NotificationsKey(recipientID))
	}
	s.views.Invalidate(ctx, keys...)

	s.logger.Info("comment created", "actor", actorID, "post", postID, "comment", comment.ID)
	return &CommentResult{Authenticated: true, Comment: comment}, nil
}

// DeletePost removes a post owned by actorID. Dependent likes, comments
// and notifications go with it via the store's cascade.
func (s *InteractionService) DeletePost(ctx context.Context, actorID, postID uint) error {
	repos := s.store.Repos()
	post, err := repos.Posts.GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("load post: %w", err)
	}
	if post.AuthorID != actorID {
		return ErrNotOwner
	}
	if err := repos.Posts.DeletePost(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("delete post: %w", err)
	}

	s.views.Invalidate(ctx, views.FeedKey)
	s.logger.Info("post deleted", "actor", actorID, "post", postID)
	return nil
}
