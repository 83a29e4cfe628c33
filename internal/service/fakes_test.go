package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"blogHub/internal/auth"
	"blogHub/internal/config"
	"blogHub/internal/models"
	"blogHub/internal/pagination"
	"blogHub/internal/repository"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecretKey:         "test-secret",
		AccessTokenDuration:  time.Hour,
		RefreshTokenDuration: 24 * time.Hour,
		MaxUploadSize:        1024,
		Pagination:           config.Pagination{DefaultLimit: 10, MaxLimit: 100},
		Blog: config.Blog{
			SlugMaxAttempts:   100,
			CommentReplyDepth: 1,
			StatsCacheTTL:     time.Minute,
			StatsCacheSize:    4,
		},
	}
}

func window[T any](items []T, p pagination.Params) []T {
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

type fakeStore struct {
	mu       sync.Mutex
	users    map[string]*models.User
	posts    map[string]*models.Post
	comments map[string]*models.Comment
	clock    time.Time

	// slugRaces makes the next n post writes fail as if another writer took the slug.
	slugRaces int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    map[string]*models.User{},
		posts:    map[string]*models.Post{},
		comments: map[string]*models.Comment{},
		clock:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *fakeStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *fakeStore) addUser(username, role string) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &models.User{
		UserID:    uuid.New().String(),
		Username:  username,
		Email:     username + "@example.com",
		Role:      role,
		IsActive:  true,
		Followers: pq.StringArray{},
		Following: pq.StringArray{},
		Bookmarks: pq.StringArray{},
		CreatedAt: s.tick(),
	}
	s.users[u.UserID] = u
	return u
}

func actorOf(u *models.User) *auth.Actor {
	return auth.ActorFromUser(u)
}

func clonePost(p *models.Post) *models.Post {
	c := *p
	c.Tags = append(pq.StringArray{}, p.Tags...)
	c.LikedBy = append(pq.StringArray{}, p.LikedBy...)
	return &c
}

func cloneComment(c *models.Comment) *models.Comment {
	out := *c
	out.LikedBy = append(pq.StringArray{}, c.LikedBy...)
	out.Replies = nil
	return &out
}

func cloneUser(u *models.User) *models.User {
	c := *u
	c.Followers = append(pq.StringArray{}, u.Followers...)
	c.Following = append(pq.StringArray{}, u.Following...)
	c.Bookmarks = append(pq.StringArray{}, u.Bookmarks...)
	return &c
}

func without(set pq.StringArray, id string) pq.StringArray {
	out := pq.StringArray{}
	for _, v := range set {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// fakeUsers

type fakeUsers struct{ s *fakeStore }

func (f fakeUsers) CreateUser(_ context.Context, user *models.User, password string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, u := range f.s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	user.UserID = uuid.New().String()
	user.PasswordHash = hash
	user.CreatedAt = f.s.tick()
	f.s.users[user.UserID] = cloneUser(user)
	return nil
}

func (f fakeUsers) find(match func(*models.User) bool) (*models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, u := range f.s.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f fakeUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	return f.find(func(u *models.User) bool { return u.UserID == id })
}

func (f fakeUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return f.find(func(u *models.User) bool { return u.Email == email })
}

func (f fakeUsers) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	return f.find(func(u *models.User) bool { return u.Username == username })
}

func (f fakeUsers) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	u, err := f.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (f fakeUsers) UpdateProfile(_ context.Context, user *models.User) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, u := range f.s.users {
		if u.UserID != user.UserID && u.Username == user.Username {
			return repository.ErrDuplicate
		}
	}
	if _, ok := f.s.users[user.UserID]; !ok {
		return repository.ErrNotFound
	}
	f.s.users[user.UserID] = cloneUser(user)
	return nil
}

func (f fakeUsers) UpdateRole(_ context.Context, userID, role string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	u, ok := f.s.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.Role = role
	return nil
}

func (f fakeUsers) TouchLastLogin(_ context.Context, userID string, at time.Time) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if u, ok := f.s.users[userID]; ok {
		u.LastLogin = &at
	}
	return nil
}

func (f fakeUsers) DeleteUser(_ context.Context, userID string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.users[userID]; !ok {
		return repository.ErrNotFound
	}
	delete(f.s.users, userID)
	for id, p := range f.s.posts {
		if p.AuthorID == userID {
			delete(f.s.posts, id)
		}
	}
	return nil
}

func (f fakeUsers) UpdateRefreshToken(_ context.Context, userID, token string, expiry time.Time) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	u, ok := f.s.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.RefreshToken = token
	u.RefreshTokenExpiryTime = expiry
	return nil
}

func (f fakeUsers) GetUserByRefreshToken(_ context.Context, token string) (*models.User, error) {
	return f.find(func(u *models.User) bool {
		return u.RefreshToken == token && u.RefreshTokenExpiryTime.After(time.Now())
	})
}

func (f fakeUsers) Follow(_ context.Context, followerID, targetID string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	follower, target := f.s.users[followerID], f.s.users[targetID]
	if !contains(follower.Following, targetID) {
		follower.Following = append(follower.Following, targetID)
	}
	if !contains(target.Followers, followerID) {
		target.Followers = append(target.Followers, followerID)
	}
	return nil
}

func (f fakeUsers) Unfollow(_ context.Context, followerID, targetID string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.users[followerID].Following = without(f.s.users[followerID].Following, targetID)
	f.s.users[targetID].Followers = without(f.s.users[targetID].Followers, followerID)
	return nil
}

func (f fakeUsers) AddBookmark(_ context.Context, userID, postID string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	u := f.s.users[userID]
	if !contains(u.Bookmarks, postID) {
		u.Bookmarks = append(u.Bookmarks, postID)
	}
	return nil
}

func (f fakeUsers) RemoveBookmark(_ context.Context, userID, postID string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.users[userID].Bookmarks = without(f.s.users[userID].Bookmarks, postID)
	return nil
}

func (f fakeUsers) ListSummaries(_ context.Context, ids []string, p pagination.Params) ([]*models.UserSummary, int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := []*models.UserSummary{}
	for _, id := range ids {
		if u, ok := f.s.users[id]; ok {
			out = append(out, &models.UserSummary{UserID: u.UserID, Username: u.Username})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return window(out, p), len(out), nil
}

func (f fakeUsers) List(_ context.Context, filter repository.UserFilter) ([]*models.AdminUser, int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := []*models.AdminUser{}
	for _, u := range f.s.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.ActiveOnly && !u.IsActive {
			continue
		}
		out = append(out, &models.AdminUser{User: *cloneUser(u)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return window(out, filter.Page), len(out), nil
}

func (f fakeUsers) Stats(_ context.Context, userID string) (models.UserStats, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var stats models.UserStats
	for _, p := range f.s.posts {
		if p.AuthorID == userID && p.Status == models.PostStatusPublished {
			stats.Posts++
			stats.Likes += p.Likes
			stats.Views += p.Views
		}
	}
	return stats, nil
}

func (f fakeUsers) CountAdmins(_ context.Context) (int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	n := 0
	for _, u := range f.s.users {
		if u.Role == models.RoleAdmin {
			n++
		}
	}
	return n, nil
}

// fakePosts

type fakePosts struct{ s *fakeStore }

func (f fakePosts) write(post *models.Post, create bool) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.slugRaces > 0 {
		f.s.slugRaces--
		return repository.ErrSlugTaken
	}
	for _, p := range f.s.posts {
		if p.Slug == post.Slug && p.PostID != post.PostID {
			return repository.ErrSlugTaken
		}
	}
	if create {
		if post.PostID == "" {
			post.PostID = uuid.New().String()
		}
		post.CreatedAt = f.s.tick()
	} else if _, ok := f.s.posts[post.PostID]; !ok {
		return repository.ErrNotFound
	}
	post.UpdatedAt = f.s.tick()
	f.s.posts[post.PostID] = clonePost(post)
	return nil
}

func (f fakePosts) Create(_ context.Context, post *models.Post) error {
	return f.write(post, true)
}

func (f fakePosts) Update(_ context.Context, post *models.Post) error {
	return f.write(post, false)
}

func (f fakePosts) load(p *models.Post) *models.Post {
	out := clonePost(p)
	if u, ok := f.s.users[p.AuthorID]; ok {
		out.Author = models.UserSummary{UserID: u.UserID, Username: u.Username}
	}
	for _, c := range f.s.comments {
		if c.PostID == p.PostID {
			out.CommentCount++
		}
	}
	return out
}

func (f fakePosts) GetByID(_ context.Context, id string) (*models.Post, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p, ok := f.s.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return f.load(p), nil
}

func (f fakePosts) GetBySlug(_ context.Context, slug string) (*models.Post, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, p := range f.s.posts {
		if p.Slug == slug {
			return f.load(p), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f fakePosts) SlugExists(_ context.Context, slug, excludeID string) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, p := range f.s.posts {
		if p.Slug == slug && p.PostID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f fakePosts) IncrementViews(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if p, ok := f.s.posts[id]; ok {
		p.Views++
	}
	return nil
}

func (f fakePosts) SaveLikes(_ context.Context, id string, likedBy []string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p, ok := f.s.posts[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.LikedBy = append(pq.StringArray{}, likedBy...)
	p.Likes = len(likedBy)
	return nil
}

func (f fakePosts) Delete(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.s.posts, id)
	for cid, c := range f.s.comments {
		if c.PostID == id {
			delete(f.s.comments, cid)
		}
	}
	for _, u := range f.s.users {
		u.Bookmarks = without(u.Bookmarks, id)
	}
	return nil
}

func (f fakePosts) List(_ context.Context, filter repository.PostFilter) ([]*models.Post, int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := []*models.Post{}
	for _, p := range f.s.posts {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.AuthorID != "" && p.AuthorID != filter.AuthorID {
			continue
		}
		if filter.Tag != "" && !contains(p.Tags, filter.Tag) {
			continue
		}
		if filter.IDs != nil && !contains(filter.IDs, p.PostID) {
			continue
		}
		out = append(out, f.load(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return window(out, filter.Page), len(out), nil
}

// fakeComments

type fakeComments struct{ s *fakeStore }

func (f fakeComments) Create(_ context.Context, c *models.Comment) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if c.CommentID == "" {
		c.CommentID = uuid.New().String()
	}
	c.CreatedAt = f.s.tick()
	c.UpdatedAt = c.CreatedAt
	f.s.comments[c.CommentID] = cloneComment(c)
	return nil
}

func (f fakeComments) UpdateContent(_ context.Context, id, text string, at time.Time) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	c, ok := f.s.comments[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.Content = text
	c.IsEdited = true
	c.EditedAt = &at
	return nil
}

func (f fakeComments) GetByID(_ context.Context, id string) (*models.Comment, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	c, ok := f.s.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneComment(c), nil
}

func (f fakeComments) sorted(match func(*models.Comment) bool) []*models.Comment {
	out := []*models.Comment{}
	for _, c := range f.s.comments {
		if match(c) {
			out = append(out, cloneComment(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f fakeComments) ListTopLevel(_ context.Context, postID, status string, p pagination.Params) ([]*models.Comment, int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := f.sorted(func(c *models.Comment) bool {
		return c.PostID == postID && c.ParentID == nil && (status == "" || c.Status == status)
	})
	return window(out, p), len(out), nil
}

func (f fakeComments) ListReplies(_ context.Context, parentIDs []string, status string) ([]*models.Comment, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.sorted(func(c *models.Comment) bool {
		return c.ParentID != nil && contains(parentIDs, *c.ParentID) && (status == "" || c.Status == status)
	}), nil
}

func (f fakeComments) DeleteWithReplies(_ context.Context, id string) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.comments[id]; !ok {
		return 0, repository.ErrNotFound
	}
	var n int64
	for cid, c := range f.s.comments {
		if c.ParentID != nil && *c.ParentID == id {
			delete(f.s.comments, cid)
			n++
		}
	}
	delete(f.s.comments, id)
	return n + 1, nil
}

func (f fakeComments) SaveLikes(_ context.Context, id string, likedBy []string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	c, ok := f.s.comments[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.LikedBy = append(pq.StringArray{}, likedBy...)
	c.Likes = len(likedBy)
	return nil
}

func (f fakeComments) List(_ context.Context, filter repository.CommentFilter) ([]*models.Comment, int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := f.sorted(func(c *models.Comment) bool {
		return (filter.PostID == "" || c.PostID == filter.PostID) && (filter.Status == "" || c.Status == filter.Status)
	})
	return window(out, filter.Page), len(out), nil
}

// fakeStats counts how often the database was asked.
type fakeStats struct {
	calls int
	stats models.SiteStats
}

func (f *fakeStats) SiteStats(_ context.Context, _ time.Time) (*models.SiteStats, error) {
	f.calls++
	s := f.stats
	return &s, nil
}

func (f *fakeStats) CountTables(_ context.Context) (int, error) {
	return 4, nil
}

func newFakeRepository(s *fakeStore, stats *fakeStats) *repository.Repository {
	return &repository.Repository{
		Users:    fakeUsers{s},
		Posts:    fakePosts{s},
		Comments: fakeComments{s},
		Stats:    stats,
	}
}
