package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/honkaku-tattoo/backend/internal/db"
	"github.com/honkaku-tattoo/backend/internal/model"
)

type BlogStore interface {
	ListBlogPosts(ctx context.Context, publishedOnly bool) ([]model.BlogPost, error)
	GetBlogPostBySlug(ctx context.Context, slug string) (*model.BlogPost, error)
	GetBlogPostByID(ctx context.Context, id int64) (*model.BlogPost, error)
	CreateBlogPost(ctx context.Context, p *model.BlogPost) (*model.BlogPost, error)
	UpdateBlogPost(ctx context.Context, p *model.BlogPost) (*model.BlogPost, error)
	DeleteBlogPost(ctx context.Context, id int64) error
}

type BlogService struct {
	store BlogStore
	now   func() time.Time
}

func NewBlogService(store BlogStore) *BlogService {
	return &BlogService{store: store, now: time.Now}
}

func (s *BlogService) List(ctx context.Context, publishedOnly bool) ([]model.BlogPost, error) {
	return s.store.ListBlogPosts(ctx, publishedOnly)
}

// GetPublishedBySlug serves the public blog page; drafts stay invisible.
func (s *BlogService) GetPublishedBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	post, err := s.store.GetBlogPostBySlug(ctx, slug)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !post.IsPublished {
		return nil, ErrNotFound
	}
	return post, nil
}

func (s *BlogService) Create(ctx context.Context, req model.BlogPostRequest) (*model.BlogPost, error) {
	post, err := s.postFromRequest(req)
	if err != nil {
		return nil, err
	}
	if post.IsPublished {
		now := s.now()
		post.PublishedAt = &now
	}

	created, err := s.store.CreateBlogPost(ctx, post)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: slug %q", ErrConflict, post.Slug)
		}
		return nil, err
	}
	return created, nil
}

// Update keeps the first publish timestamp across republishes and clears
// it when the post is taken down.
func (s *BlogService) Update(ctx context.Context, id int64, req model.BlogPostRequest) (*model.BlogPost, error) {
	post, err := s.postFromRequest(req)
	if err != nil {
		return nil, err
	}
	post.ID = id

	existing, err := s.store.GetBlogPostByID(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if post.IsPublished {
		if existing.PublishedAt != nil {
			post.PublishedAt = existing.PublishedAt
		} else {
			now := s.now()
			post.PublishedAt = &now
		}
	}

	updated, err := s.store.UpdateBlogPost(ctx, post)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: slug %q", ErrConflict, post.Slug)
		}
		return nil, err
	}
	return updated, nil
}

func (s *BlogService) Delete(ctx context.Context, id int64) error {
	return s.store.DeleteBlogPost(ctx, id)
}

func (s *BlogService) postFromRequest(req model.BlogPostRequest) (*model.BlogPost, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		return nil, fmt.Errorf("%w: slug is required", ErrInvalidInput)
	}

	return &model.BlogPost{
		Slug:          slug,
		Title:         title,
		Excerpt:       nullable(req.Excerpt),
		Content:       strings.TrimSpace(req.Content),
		CoverImageURL: nullable(req.CoverImageURL),
		Category:      nullable(req.Category),
		IsPublished:   req.IsPublished,
	}, nil
}
