package ports

import (
	"context"

	"github.com/newsdesk/newsroom-api/internal/core/domain"
)

// CreateArticleInput carries all data needed to publish a new article.
type CreateArticleInput struct {
	Title       string
	Author      string
	JournalName string
	Category    []string
	Description string
	ImageURL    string
}

// UpdateArticleInput carries the optional fields of an update request.
// Empty fields are not applied.
type UpdateArticleInput struct {
	Title       string
	JournalName string
	Category    []string
	Description string
	ImageURL    string
}

// ArticlePage is a single page of articles plus pagination totals.
type ArticlePage struct {
	Items      []*domain.Article
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// BulkResult reports the outcome of a bulk update or delete.
type BulkResult struct {
	Count int64
}

// ArticleService defines article use-cases. Mutations publish a change
// notification after — and only after — the store reports a non-zero count.
type ArticleService interface {
	Create(ctx context.Context, input CreateArticleInput) (*domain.Article, error)
	GetByID(ctx context.Context, id string) (*domain.Article, error)
	FindByField(ctx context.Context, field, value string) ([]*domain.Article, error)
	List(ctx context.Context, page, limit int) (*ArticlePage, error)
	Search(ctx context.Context, keywords string, page, limit int) (*ArticlePage, error)
	UpdateByID(ctx context.Context, id string, input UpdateArticleInput) (*domain.Article, error)
	UpdateByField(ctx context.Context, field, value string, input UpdateArticleInput) (*BulkResult, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteByField(ctx context.Context, field, value string) (*BulkResult, error)
	// AttachImage sets the article's image URL after an upload succeeded.
	AttachImage(ctx context.Context, id, imageURL string) (*domain.Article, error)
}
