package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/newsdesk/newsroom-api/internal/core/domain"
	"github.com/newsdesk/newsroom-api/internal/core/ports"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
	minSearchChars   = 2
)

// bulkFields are the article fields bulk update/delete may be scoped by.
var bulkFields = map[string]struct{}{
	"title":  {},
	"author": {},
}

// ArticleService implements article use-cases. Every mutation publishes a
// change event strictly after its store write succeeds with a non-zero
// count; a zero count never produces a broadcast.
type ArticleService struct {
	repo      ports.ArticleRepository
	publisher ports.EventPublisher
	log       zerolog.Logger
}

func NewArticleService(repo ports.ArticleRepository, publisher ports.EventPublisher, log zerolog.Logger) *ArticleService {
	return &ArticleService{repo: repo, publisher: publisher, log: log}
}

func (s *ArticleService) Create(ctx context.Context, input ports.CreateArticleInput) (*domain.Article, error) {
	if input.Title == "" || input.Author == "" || input.JournalName == "" {
		return nil, domain.ErrValidation
	}

	now := time.Now().UTC()
	article := &domain.Article{
		Title:       input.Title,
		Author:      input.Author,
		JournalName: input.JournalName,
		Category:    input.Category,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, article)
	if err != nil {
		s.log.Error().Err(err).Str("title", input.Title).Msg("failed to create article")
		return nil, err
	}

	s.log.Info().Str("article_id", created.ID).Str("author", created.Author).Msg("article created")
	s.publisher.Publish(domain.ArticleCreated(created))

	return created, nil
}

func (s *ArticleService) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ArticleService) FindByField(ctx context.Context, field, value string) ([]*domain.Article, error) {
	if value == "" {
		return nil, domain.ErrValidation
	}
	return s.repo.FindByField(ctx, field, value)
}

func (s *ArticleService) List(ctx context.Context, page, limit int) (*ports.ArticlePage, error) {
	page, limit, err := normalizePage(page, limit)
	if err != nil {
		return nil, err
	}

	items, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	return newArticlePage(items, total, page, limit), nil
}

func (s *ArticleService) Search(ctx context.Context, keywords string, page, limit int) (*ports.ArticlePage, error) {
	keywords = strings.TrimSpace(keywords)
	if len([]rune(keywords)) < minSearchChars {
		return nil, domain.ErrValidation
	}

	page, limit, err := normalizePage(page, limit)
	if err != nil {
		return nil, err
	}

	items, total, err := s.repo.Search(ctx, keywords, page, limit)
	if err != nil {
		return nil, err
	}
	return newArticlePage(items, total, page, limit), nil
}

func (s *ArticleService) UpdateByID(ctx context.Context, id string, input ports.UpdateArticleInput) (*domain.Article, error) {
	count, err := s.repo.UpdateByID(ctx, id, ports.ArticleUpdate{
		Title:       input.Title,
		JournalName: input.JournalName,
		Category:    input.Category,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// A matched-but-unmodified write (identical values) is not a change;
	// observers are only notified when the store reports a modification.
	if count > 0 {
		s.log.Info().Str("article_id", id).Msg("article updated")
		s.publisher.Publish(domain.ArticleUpdated(updated))
	}

	return updated, nil
}

func (s *ArticleService) UpdateByField(ctx context.Context, field, value string, input ports.UpdateArticleInput) (*ports.BulkResult, error) {
	if err := validateBulkScope(field, value); err != nil {
		return nil, err
	}

	count, err := s.repo.UpdateByField(ctx, field, value, ports.ArticleUpdate{
		Title:       input.Title,
		JournalName: input.JournalName,
		Category:    input.Category,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	})
	if err != nil {
		return nil, err
	}

	if count > 0 {
		s.log.Info().Str(field, value).Int64("count", count).Msg("articles updated")
		s.publisher.Publish(domain.ArticlesUpdated(count, field, value))
	}

	return &ports.BulkResult{Count: count}, nil
}

func (s *ArticleService) DeleteByID(ctx context.Context, id string) error {
	count, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return domain.ErrArticleNotFound
	}

	s.log.Info().Str("article_id", id).Msg("article deleted")
	s.publisher.Publish(domain.ArticleDeleted(id))
	return nil
}

func (s *ArticleService) DeleteByField(ctx context.Context, field, value string) (*ports.BulkResult, error) {
	if err := validateBulkScope(field, value); err != nil {
		return nil, err
	}

	count, err := s.repo.DeleteByField(ctx, field, value)
	if err != nil {
		return nil, err
	}

	if count > 0 {
		s.log.Info().Str(field, value).Int64("count", count).Msg("articles deleted")
		s.publisher.Publish(domain.ArticlesDeleted(count, field, value))
	}

	return &ports.BulkResult{Count: count}, nil
}

func (s *ArticleService) AttachImage(ctx context.Context, id, imageURL string) (*domain.Article, error) {
	if imageURL == "" {
		return nil, domain.ErrValidation
	}

	count, err := s.repo.UpdateByID(ctx, id, ports.ArticleUpdate{ImageURL: imageURL})
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if count > 0 {
		s.log.Info().Str("article_id", id).Str("image_url", imageURL).Msg("article image attached")
		s.publisher.Publish(domain.ArticleUpdated(updated))
	}

	return updated, nil
}

func validateBulkScope(field, value string) error {
	if _, ok := bulkFields[field]; !ok || value == "" {
		return domain.ErrValidation
	}
	return nil
}

// normalizePage defaults the page to 1 and the limit to defaultPageLimit,
// and rejects limits outside 1–100.
func normalizePage(page, limit int) (int, int, error) {
	if page < 1 {
		page = 1
	}
	if limit == 0 {
		limit = defaultPageLimit
	}
	if limit < 1 || limit > maxPageLimit {
		return 0, 0, domain.ErrValidation
	}
	return page, limit, nil
}

func newArticlePage(items []*domain.Article, total int64, page, limit int) *ports.ArticlePage {
	return &ports.ArticlePage{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}
}

func totalPages(total int64, limit int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
