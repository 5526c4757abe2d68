package ports

import (
	"context"

	"github.com/newsdesk/newsroom-api/internal/core/domain"
)

// ArticleUpdate carries the mutable fields of an article. Nil/empty fields
// are left untouched by update operations.
type ArticleUpdate struct {
	Title       string
	JournalName string
	Category    []string
	Description string
	ImageURL    string
}

// ArticleRepository defines persistence operations for articles.
//
// Every mutating call either fully applies or reports a zero count; callers
// use the count to decide whether a change notification must be published.
type ArticleRepository interface {
	Create(ctx context.Context, a *domain.Article) (*domain.Article, error)
	FindByID(ctx context.Context, id string) (*domain.Article, error)
	// FindByField matches text fields with case-insensitive substring
	// semantics. Supported fields: title, author, journal_name, category.
	FindByField(ctx context.Context, field, value string) ([]*domain.Article, error)
	// List returns a page of articles, newest first, and the total count.
	List(ctx context.Context, page, limit int) ([]*domain.Article, int64, error)
	// Search matches keywords case-insensitively across title, author,
	// journal_name, category and description, OR-combined.
	Search(ctx context.Context, keywords string, page, limit int) ([]*domain.Article, int64, error)
	UpdateByID(ctx context.Context, id string, update ArticleUpdate) (int64, error)
	UpdateByField(ctx context.Context, field, value string, update ArticleUpdate) (int64, error)
	DeleteByID(ctx context.Context, id string) (int64, error)
	DeleteByField(ctx context.Context, field, value string) (int64, error)
}
