package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/socially/backend/internal/models"
	"github.com/socially/backend/internal/repositories"
)

// FeedComment is a comment enriched with its author's identity fields.
type FeedComment struct {
	models.Comment
	Author models.UserCompact `json:"author"`
}

// FeedPost is a post enriched for display: author identity, comments oldest
// first, the ids of actors that liked it, and count summaries.
type FeedPost struct {
	models.Post
	Author       models.UserCompact `json:"author"`
	Comments     []FeedComment      `json:"comments"`
	LikedByIDs   []uint             `json:"liked_by_ids"`
	LikeCount    int                `json:"like_count"`
	CommentCount int                `json:"comment_count"`
}

// FeedService assembles the read-only feed view.
type FeedService struct {
	store  repositories.Store
	logger *slog.Logger
}

// NewFeedService creates a new FeedService
func NewFeedService(store repositories.Store, logger *slog.Logger) *FeedService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FeedService{store: store, logger: logger}
}

// ListPosts returns all posts newest first, each hydrated with author
// identity, comments oldest first, liking actor ids and counts. The author
// and like/comment loads are batched to avoid per-post queries.
func (s *FeedService) ListPosts(ctx context.Context) ([]FeedPost, error) {
	repos := s.store.Repos()

	posts, err := repos.Posts.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	if len(posts) == 0 {
		return []FeedPost{}, nil
	}

	postIDs := make([]uint, len(posts))
	userIDSet := make(map[uint]struct{})
	for i, p := range posts {
		postIDs[i] = p.ID
		userIDSet[p.AuthorID] = struct{}{}
	}

	comments, err := repos.Comments.ListByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	for _, c := range comments {
		userIDSet[c.AuthorID] = struct{}{}
	}

	likes, err := repos.Likes.ListByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, fmt.Errorf("list likes: %w", err)
	}

	userIDs := make([]uint, 0, len(userIDSet))
	for id := range userIDSet {
		userIDs = append(userIDs, id)
	}
	users, err := repos.Users.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("load authors: %w", err)
	}
	userMap := make(map[uint]models.UserCompact, len(users))
	for _, u := range users {
		userMap[u.ID] = u.ToCompact()
	}

	commentsByPost := make(map[uint][]FeedComment)
	for _, c := range comments {
		commentsByPost[c.PostID] = append(commentsByPost[c.PostID], FeedComment{
			Comment: c,
			Author:  userMap[c.AuthorID],
		})
	}
	likerIDsByPost := make(map[uint][]uint)
	for _, l := range likes {
		likerIDsByPost[l.PostID] = append(likerIDsByPost[l.PostID], l.UserID)
	}

	feed := make([]FeedPost, len(posts))
	for i, p := range posts {
		postComments := commentsByPost[p.ID]
		if postComments == nil {
			postComments = []FeedComment{}
		}
		likedBy := likerIDsByPost[p.ID]
		if likedBy == nil {
			likedBy = []uint{}
		}
		feed[i] = FeedPost{
			Post:         p,
			Author:       userMap[p.AuthorID],
			Comments:     postComments,
			LikedByIDs:   likedBy,
			LikeCount:    len(likedBy),
			CommentCount: len(postComments),
		}
	}
	return feed, nil
}

// SuggestedUsers returns up to limit users the actor doesn't follow yet,
// excluding the actor. Anonymous callers get an empty list.
func (s *FeedService) SuggestedUsers(ctx context.Context, actorID uint, limit int) ([]models.UserCompact, error) {
	if actorID == 0 {
		return []models.UserCompact{}, nil
	}
	users, err := s.store.Repos().Users.SuggestedUsers(ctx, actorID, limit)
	if err != nil {
		return nil, fmt.Errorf("suggested users: %w", err)
	}
	compact := make([]models.UserCompact, len(users))
	for i, u := range users {
		compact[i] = u.ToCompact()
	}
	return compact, nil
}
