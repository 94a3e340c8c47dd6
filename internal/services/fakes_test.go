package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/socially/backend/internal/models"
	"github.com/socially/backend/internal/repositories"
	"gorm.io/gorm"
)

// fakeData is the backing state of the in-memory store. Everything is
// keyed by id; list operations sort on the way out, mirroring the queries
// the real repositories run.
type fakeData struct {
	users         map[uint]models.User
	posts         map[uint]models.Post
	likes         map[uint]models.Like
	follows       map[uint]models.Follow
	comments      map[uint]models.Comment
	notifications map[uint]models.Notification
	nextID        uint
}

func newFakeData() *fakeData {
	return &fakeData{
		users:         make(map[uint]models.User),
		posts:         make(map[uint]models.Post),
		likes:         make(map[uint]models.Like),
		follows:       make(map[uint]models.Follow),
		comments:      make(map[uint]models.Comment),
		notifications: make(map[uint]models.Notification),
	}
}

func (d *fakeData) clone() *fakeData {
	c := newFakeData()
	c.nextID = d.nextID
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.posts {
		c.posts[k] = v
	}
	for k, v := range d.likes {
		c.likes[k] = v
	}
	for k, v := range d.follows {
		c.follows[k] = v
	}
	for k, v := range d.comments {
		c.comments[k] = v
	}
	for k, v := range d.notifications {
		c.notifications[k] = v
	}
	return c
}

// fakeStore implements repositories.Store in memory. RunAtomic snapshots
// the state before fn and restores it when fn fails, which is what makes
// the all-or-nothing assertions in the service tests meaningful.
type fakeStore struct {
	data *fakeData

	// failNotifications makes every notification insert fail, to prove
	// the surrounding transaction rolls back the primary write too.
	failNotifications bool

	// raceEdgeCreates makes like and follow inserts report a duplicate
	// even when the prior existence check saw nothing, reproducing a
	// concurrent toggle winning between the check and the insert.
	raceEdgeCreates bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: newFakeData()}
}

func (s *fakeStore) Repos() *repositories.Repositories {
	return &repositories.Repositories{
		Users:         &fakeUserRepo{s},
		Posts:         &fakePostRepo{s},
		Likes:         &fakeLikeRepo{s},
		Follows:       &fakeFollowRepo{s},
		Comments:      &fakeCommentRepo{s},
		Notifications: &fakeNotificationRepo{s},
	}
}

func (s *fakeStore) RunAtomic(ctx context.Context, fn func(r *repositories.Repositories) error) error {
	snapshot := s.data.clone()
	if err := fn(s.Repos()); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

func (s *fakeStore) id() uint {
	s.data.nextID++
	return s.data.nextID
}

// seedUser and seedPost keep test setup short.
func (s *fakeStore) seedUser(name string) models.User {
	u := models.User{
		ID:       s.id(),
		Name:     name,
		Username: name,
		Email:    name + "@example.com",
	}
	s.data.users[u.ID] = u
	return u
}

func (s *fakeStore) seedPost(authorID uint, content string) models.Post {
	p := models.Post{
		ID:        s.id(),
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	s.data.posts[p.ID] = p
	return p
}

type fakeUserRepo struct{ s *fakeStore }

func (r *fakeUserRepo) CreateUser(ctx context.Context, user *models.User) error {
	for _, u := range r.s.data.users {
		if u.Username == user.Username || u.Email == user.Email ||
			(user.ProviderUID != "" && u.ProviderUID == user.ProviderUID) {
			return repositories.ErrDuplicateKey
		}
	}
	user.ID = r.s.id()
	r.s.data.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	u, ok := r.s.data.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.s.data.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUserByProviderUID(ctx context.Context, providerUID string) (*models.User, error) {
	for _, u := range r.s.data.users {
		if u.ProviderUID == providerUID {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUsersByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	var out []models.User
	for _, id := range ids {
		if u, ok := r.s.data.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateUser(ctx context.Context, user *models.User) error {
	if _, ok := r.s.data.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.s.data.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) SuggestedUsers(ctx context.Context, forUserID uint, limit int) ([]models.User, error) {
	followed := make(map[uint]bool)
	for _, f := range r.s.data.follows {
		if f.FollowerID == forUserID {
			followed[f.FolloweeID] = true
		}
	}
	var out []models.User
	for _, u := range r.s.data.users {
		if u.ID != forUserID && !followed[u.ID] {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakePostRepo struct{ s *fakeStore }

func (r *fakePostRepo) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = r.s.id()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	r.s.data.posts[post.ID] = *post
	return nil
}

func (r *fakePostRepo) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	p, ok := r.s.data.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *fakePostRepo) ListPosts(ctx context.Context) ([]models.Post, error) {
	out := make([]models.Post, 0, len(r.s.data.posts))
	for _, p := range r.s.data.posts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *fakePostRepo) ListPostsByAuthor(ctx context.Context, authorID uint) ([]models.Post, error) {
	all, _ := r.ListPosts(ctx)
	var out []models.Post
	for _, p := range all {
		if p.AuthorID == authorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePostRepo) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var n int64
	for _, p := range r.s.data.posts {
		if p.AuthorID == authorID {
			n++
		}
	}
	return n, nil
}

func (r *fakePostRepo) DeletePost(ctx context.Context, id uint) error {
	if _, ok := r.s.data.posts[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.s.data.posts, id)
	// mirror the database-level cascades
	for k, l := range r.s.data.likes {
		if l.PostID == id {
			delete(r.s.data.likes, k)
		}
	}
	for k, c := range r.s.data.comments {
		if c.PostID == id {
			delete(r.s.data.comments, k)
		}
	}
	for k, n := range r.s.data.notifications {
		if n.PostID != nil && *n.PostID == id {
			delete(r.s.data.notifications, k)
		}
	}
	return nil
}

type fakeLikeRepo struct{ s *fakeStore }

func (r *fakeLikeRepo) CreateLike(ctx context.Context, like *models.Like) error {
	if r.s.raceEdgeCreates {
		return repositories.ErrDuplicateKey
	}
	for _, l := range r.s.data.likes {
		if l.UserID == like.UserID && l.PostID == like.PostID {
			return repositories.ErrDuplicateKey
		}
	}
	like.ID = r.s.id()
	like.CreatedAt = time.Now()
	r.s.data.likes[like.ID] = *like
	return nil
}

func (r *fakeLikeRepo) DeleteLike(ctx context.Context, userID, postID uint) error {
	for k, l := range r.s.data.likes {
		if l.UserID == userID && l.PostID == postID {
			delete(r.s.data.likes, k)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeLikeRepo) GetLike(ctx context.Context, userID, postID uint) (*models.Like, error) {
	for _, l := range r.s.data.likes {
		if l.UserID == userID && l.PostID == postID {
			return &l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeLikeRepo) ListByPostIDs(ctx context.Context, postIDs []uint) ([]models.Like, error) {
	ids := make(map[uint]bool, len(postIDs))
	for _, id := range postIDs {
		ids[id] = true
	}
	var out []models.Like
	for _, l := range r.s.data.likes {
		if ids[l.PostID] {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeFollowRepo struct{ s *fakeStore }

func (r *fakeFollowRepo) CreateFollow(ctx context.Context, follow *models.Follow) error {
	if r.s.raceEdgeCreates {
		return repositories.ErrDuplicateKey
	}
	for _, f := range r.s.data.follows {
		if f.FollowerID == follow.FollowerID && f.FolloweeID == follow.FolloweeID {
			return repositories.ErrDuplicateKey
		}
	}
	follow.ID = r.s.id()
	follow.CreatedAt = time.Now()
	r.s.data.follows[follow.ID] = *follow
	return nil
}

func (r *fakeFollowRepo) DeleteFollow(ctx context.Context, followerID, followeeID uint) error {
	for k, f := range r.s.data.follows {
		if f.FollowerID == followerID && f.FolloweeID == followeeID {
			delete(r.s.data.follows, k)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeFollowRepo) GetFollow(ctx context.Context, followerID, followeeID uint) (*models.Follow, error) {
	for _, f := range r.s.data.follows {
		if f.FollowerID == followerID && f.FolloweeID == followeeID {
			return &f, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeFollowRepo) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	var n int64
	for _, f := range r.s.data.follows {
		if f.FolloweeID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakeFollowRepo) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	var n int64
	for _, f := range r.s.data.follows {
		if f.FollowerID == userID {
			n++
		}
	}
	return n, nil
}

type fakeCommentRepo struct{ s *fakeStore }

func (r *fakeCommentRepo) CreateComment(ctx context.Context, comment *models.Comment) error {
	comment.ID = r.s.id()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	r.s.data.comments[comment.ID] = *comment
	return nil
}

func (r *fakeCommentRepo) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	c, ok := r.s.data.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *fakeCommentRepo) ListByPostID(ctx context.Context, postID uint) ([]models.Comment, error) {
	return r.ListByPostIDs(ctx, []uint{postID})
}

func (r *fakeCommentRepo) ListByPostIDs(ctx context.Context, postIDs []uint) ([]models.Comment, error) {
	ids := make(map[uint]bool, len(postIDs))
	for _, id := range postIDs {
		ids[id] = true
	}
	var out []models.Comment
	for _, c := range r.s.data.comments {
		if ids[c.PostID] {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

type fakeNotificationRepo struct{ s *fakeStore }

func (r *fakeNotificationRepo) CreateNotification(ctx context.Context, notification *models.Notification) error {
	if r.s.failNotifications {
		return errors.New("notification insert failed")
	}
	notification.ID = r.s.id()
	notification.CreatedAt = time.Now()
	r.s.data.notifications[notification.ID] = *notification
	return nil
}

func (r *fakeNotificationRepo) ListByRecipient(ctx context.Context, recipientID uint, page, limit int) ([]models.Notification, int64, error) {
	var all []models.Notification
	for _, n := range r.s.data.notifications {
		if n.RecipientID == recipientID {
			all = append(all, n)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})
	total := int64(len(all))
	offset := (page - 1) * limit
	if offset >= len(all) {
		return []models.Notification{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeNotificationRepo) UnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	var n int64
	for _, notif := range r.s.data.notifications {
		if notif.RecipientID == recipientID && !notif.IsRead {
			n++
		}
	}
	return n, nil
}

func (r *fakeNotificationRepo) MarkAsRead(ctx context.Context, id, recipientID uint) error {
	n, ok := r.s.data.notifications[id]
	if !ok || n.RecipientID != recipientID {
		return gorm.ErrRecordNotFound
	}
	n.IsRead = true
	r.s.data.notifications[id] = n
	return nil
}

func (r *fakeNotificationRepo) MarkAllAsRead(ctx context.Context, recipientID uint) error {
	for k, n := range r.s.data.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			n.IsRead = true
			r.s.data.notifications[k] = n
		}
	}
	return nil
}

// fakeInvalidator records the keys every invalidation touched.
type fakeInvalidator struct {
	keys []string
}

func (f *fakeInvalidator) Invalidate(ctx context.Context, keys ...string) {
	f.keys = append(f.keys, keys...)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
