package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lib/pq"

	"blogHub/internal/auth"
	"blogHub/internal/config"
	"blogHub/internal/content"
	"blogHub/internal/models"
	"blogHub/internal/pagination"
	"blogHub/internal/repository"
)

// persistAttempts bounds how often a write is retried after losing a slug race.
const persistAttempts = 3

type PostService interface {
	List(ctx context.Context, actor *auth.Actor, q PostQuery) ([]*models.Post, pagination.Meta, error)
	ListByUser(ctx context.Context, actor *auth.Actor, username string, page pagination.Params) ([]*models.Post, pagination.Meta, error)
	GetBySlug(ctx context.Context, actor *auth.Actor, slug string) (*models.Post, error)
	Create(ctx context.Context, actor *auth.Actor, in PostInput) (*models.Post, error)
	Update(ctx context.Context, actor *auth.Actor, postID string, in PostUpdate) (*models.Post, error)
	Delete(ctx context.Context, actor *auth.Actor, postID string) error
	ToggleLike(ctx context.Context, actor *auth.Actor, postID string) (*LikeResult, error)
	ToggleBookmark(ctx context.Context, actor *auth.Actor, postID string) (*BookmarkResult, error)
}

type LikeResult struct {
	Likes   int  `json:"likes"`
	IsLiked bool `json:"isLiked"`
}

type BookmarkResult struct {
	IsBookmarked bool `json:"isBookmarked"`
}

type postService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, cfg *config.Config) PostService {
	return &postService{
		postRepo: postRepo,
		userRepo: userRepo,
		cfg:      cfg,
	}
}

func (s *postService) List(ctx context.Context, actor *auth.Actor, q PostQuery) ([]*models.Post, pagination.Meta, error) {
	filter := repository.PostFilter{
		Search:   q.Search,
		Tag:      strings.ToLower(strings.TrimSpace(q.Tag)),
		Status:   q.Status,
		Featured: q.Featured,
		Sort:     q.Sort,
		Page:     q.Page,
	}
	if filter.Status == "" {
		filter.Status = models.PostStatusPublished
	}

	if q.Author != "" {
		author, err := s.userRepo.GetUserByUsername(ctx, q.Author)
		switch {
		case err == nil:
			filter.AuthorID = author.UserID
		case !errors.Is(err, repository.ErrNotFound):
			return nil, pagination.Meta{}, fmt.Errorf("failed to resolve author: %w", err)
		}
	}

	// Drafts and archived posts are only listed to their author and to admins.
	if filter.Status != models.PostStatusPublished && !actor.IsAdmin() {
		if actor == nil {
			filter.Status = models.PostStatusPublished
		} else {
			filter.AuthorID = actor.UserID
		}
	}

	return s.list(ctx, actor, filter)
}

func (s *postService) ListByUser(ctx context.Context, actor *auth.Actor, username string, page pagination.Params) ([]*models.Post, pagination.Meta, error) {
	author, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, pagination.Meta{}, notFoundOr(err, "user")
	}

	filter := repository.PostFilter{AuthorID: author.UserID, Page: page}
	if !actor.CanModify(author.UserID) {
		filter.Status = models.PostStatusPublished
	}

	return s.list(ctx, actor, filter)
}

func (s *postService) list(ctx context.Context, actor *auth.Actor, filter repository.PostFilter) ([]*models.Post, pagination.Meta, error) {
	posts, total, err := s.postRepo.List(ctx, filter)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	if err := s.decorate(ctx, actor, posts...); err != nil {
		return nil, pagination.Meta{}, err
	}

	return posts, pagination.NewMeta(filter.Page, total), nil
}

// GetBySlug returns a post and counts the view. Unpublished posts are hidden from everyone but
// their author and admins.
func (s *postService) GetBySlug(ctx context.Context, actor *auth.Actor, slug string) (*models.Post, error) {
	post, err := s.postRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, notFoundOr(err, "post")
	}

	if post.Status != models.PostStatusPublished && !actor.CanModify(post.AuthorID) {
		return nil, newError(ErrNotFound, "post not found")
	}

	if err := s.postRepo.IncrementViews(ctx, post.PostID); err != nil {
		return nil, err
	}
	post.Views++

	if err := s.decorate(ctx, actor, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) Create(ctx context.Context, actor *auth.Actor, in PostInput) (*models.Post, error) {
	if actor == nil {
		return nil, newError(ErrUnauthorized, "authentication required")
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, newError(ErrValidation, "title is required")
	}
	if utf8.RuneCountInString(title) > 200 {
		return nil, newError(ErrValidation, "title must be at most 200 characters")
	}

	format := in.Format
	if format == "" {
		format = content.FormatHTML
	}

	body, err := content.PrepareBody(in.Content, format)
	if err != nil {
		return nil, newError(ErrValidation, "%s", err.Error())
	}
	if strings.TrimSpace(body) == "" {
		return nil, newError(ErrValidation, "content is required")
	}

	status := in.Status
	if status == "" {
		status = models.PostStatusPublished
	}

	commentsEnabled := true
	if in.CommentsEnabled != nil {
		commentsEnabled = *in.CommentsEnabled
	}

	post := &models.Post{
		Title:           title,
		Content:         body,
		Format:          format,
		Excerpt:         excerptFor(in.Excerpt, body),
		Image:           coverFor(in.Image, body),
		AuthorID:        actor.UserID,
		Tags:            pq.StringArray(content.NormalizeTags(in.Tags)),
		Status:          status,
		LikedBy:         pq.StringArray{},
		ReadingTime:     content.ReadingTime(body),
		Featured:        in.Featured,
		CommentsEnabled: commentsEnabled,
	}

	if err := s.persist(ctx, post, s.postRepo.Create, true); err != nil {
		return nil, err
	}

	return s.reload(ctx, actor, post.PostID)
}

func (s *postService) Update(ctx context.Context, actor *auth.Actor, postID string, in PostUpdate) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, notFoundOr(err, "post")
	}
	if !actor.CanModify(post.AuthorID) {
		return nil, newError(ErrForbidden, "not authorized to update this post")
	}

	titleChanged := false
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, newError(ErrValidation, "title is required")
		}
		titleChanged = title != post.Title
		post.Title = title
	}

	if in.Content != nil {
		// New content without a format is read in the format the post was written in.
		format := in.Format
		if format == "" {
			format = post.Format
		}
		if format == "" {
			format = content.FormatHTML
		}
		body, err := content.PrepareBody(*in.Content, format)
		if err != nil {
			return nil, newError(ErrValidation, "%s", err.Error())
		}
		if strings.TrimSpace(body) == "" {
			return nil, newError(ErrValidation, "content is required")
		}
		post.Format = format
		if body != post.Content {
			post.Content = body
			post.ReadingTime = content.ReadingTime(body)
		}
	}

	if in.Excerpt != nil {
		post.Excerpt = excerptFor(*in.Excerpt, post.Content)
	}
	if in.Image != nil {
		post.Image = coverFor(*in.Image, post.Content)
	}
	if in.Tags != nil {
		post.Tags = pq.StringArray(content.NormalizeTags(in.Tags))
	}
	if in.Status != nil {
		post.Status = *in.Status
	}
	if in.Featured != nil {
		post.Featured = *in.Featured
	}
	if in.CommentsEnabled != nil {
		post.CommentsEnabled = *in.CommentsEnabled
	}

	if err := s.persist(ctx, post, s.postRepo.Update, titleChanged); err != nil {
		return nil, notFoundOr(err, "post")
	}

	return s.reload(ctx, actor, post.PostID)
}

// Delete removes the post together with its comments and every bookmark of it.
func (s *postService) Delete(ctx context.Context, actor *auth.Actor, postID string) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return notFoundOr(err, "post")
	}
	if !actor.CanModify(post.AuthorID) {
		return newError(ErrForbidden, "not authorized to delete this post")
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return notFoundOr(err, "post")
	}
	return nil
}

// ToggleLike flips the actor's membership in the post's liker set.
func (s *postService) ToggleLike(ctx context.Context, actor *auth.Actor, postID string) (*LikeResult, error) {
	if actor == nil {
		return nil, newError(ErrUnauthorized, "authentication required")
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, notFoundOr(err, "post")
	}

	likedBy, liked := toggleMember(post.LikedBy, actor.UserID)
	if err := s.postRepo.SaveLikes(ctx, postID, likedBy); err != nil {
		return nil, notFoundOr(err, "post")
	}

	return &LikeResult{Likes: len(likedBy), IsLiked: liked}, nil
}

func (s *postService) ToggleBookmark(ctx context.Context, actor *auth.Actor, postID string) (*BookmarkResult, error) {
	if actor == nil {
		return nil, newError(ErrUnauthorized, "authentication required")
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, notFoundOr(err, "post")
	}

	user, err := s.userRepo.GetUserByID(ctx, actor.UserID)
	if err != nil {
		return nil, notFoundOr(err, "user")
	}

	if contains(user.Bookmarks, postID) {
		if err := s.userRepo.RemoveBookmark(ctx, user.UserID, postID); err != nil {
			return nil, err
		}
		return &BookmarkResult{IsBookmarked: false}, nil
	}

	if err := s.userRepo.AddBookmark(ctx, user.UserID, postID); err != nil {
		return nil, err
	}
	return &BookmarkResult{IsBookmarked: true}, nil
}

// persist writes the post, picking a free slug first when regenerate is set. A slug lost to a
// concurrent writer between the check and the write is re-resolved a bounded number of times.
func (s *postService) persist(ctx context.Context, post *models.Post, write func(context.Context, *models.Post) error, regenerate bool) error {
	for attempt := 1; ; attempt++ {
		if regenerate {
			slug, err := s.resolveSlug(ctx, post.Title, post.PostID)
			if err != nil {
				return err
			}
			post.Slug = slug
		}

		err := write(ctx, post)
		if !errors.Is(err, repository.ErrSlugTaken) {
			return err
		}
		if !regenerate || attempt >= persistAttempts {
			return newError(ErrConflict, "slug %q is already taken", post.Slug)
		}
	}
}

// resolveSlug returns the first of base, base-1, base-2, ... that no other post uses.
func (s *postService) resolveSlug(ctx context.Context, title, excludeID string) (string, error) {
	base := content.Slugify(title)

	for n := 0; n < s.cfg.Blog.SlugMaxAttempts; n++ {
		candidate := content.WithSuffix(base, n)
		exists, err := s.postRepo.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}

	return "", newError(ErrConflict, "no free slug for %q after %d attempts", base, s.cfg.Blog.SlugMaxAttempts)
}

func (s *postService) reload(ctx context.Context, actor *auth.Actor, postID string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, notFoundOr(err, "post")
	}
	if err := s.decorate(ctx, actor, post); err != nil {
		return nil, err
	}
	return post, nil
}

// decorate fills the per-viewer flags. Anonymous viewers get none.
func (s *postService) decorate(ctx context.Context, actor *auth.Actor, posts ...*models.Post) error {
	if actor == nil || len(posts) == 0 {
		return nil
	}

	user, err := s.userRepo.GetUserByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load viewer: %w", err)
	}

	for _, p := range posts {
		liked := contains(p.LikedBy, actor.UserID)
		bookmarked := contains(user.Bookmarks, p.PostID)
		p.IsLiked = &liked
		p.IsBookmarked = &bookmarked
	}
	return nil
}

func excerptFor(given, body string) string {
	if text := content.PlainText(given); text != "" {
		return content.Excerpt(text, 500)
	}
	return content.Excerpt(body, content.ExcerptLength)
}

func coverFor(given, body string) string {
	if given = strings.TrimSpace(given); given != "" {
		return given
	}
	if img := content.FirstImage(body); img != "" {
		return img
	}
	return models.DefaultPostImage
}

// toggleMember removes id from set when present, appends it otherwise, and reports membership afterwards.
func toggleMember(set []string, id string) ([]string, bool) {
	out := make([]string, 0, len(set)+1)
	found := false
	for _, v := range set {
		if v == id {
			found = true
			continue
		}
		out = append(out, v)
	}
	if found {
		return out, false
	}
	return append(out, id), true
}

func contains(set []string, id string) bool {
	for _, v := range set {
		if v == id {
			return true
		}
	}
	return false
}
