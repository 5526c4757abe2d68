package handler

import (
	"github.com/samber/lo"

	"github.com/newsdesk/newsroom-api/internal/core/domain"
	"github.com/newsdesk/newsroom-api/internal/core/ports"
)

func toArticleResponse(a *domain.Article) articleResponse {
	return articleResponse{
		ID:          a.ID,
		Title:       a.Title,
		Author:      a.Author,
		JournalName: a.JournalName,
		Category:    a.Category,
		Description: a.Description,
		ImageURL:    a.ImageURL,
		CreatedAt:   a.CreatedAt.UTC(),
		UpdatedAt:   a.UpdatedAt.UTC(),
	}
}

func toArticlesResponse(items []*domain.Article) []articleResponse {
	return lo.Map(items, func(a *domain.Article, _ int) articleResponse {
		return toArticleResponse(a)
	})
}

func toListResponse(page *ports.ArticlePage) listArticlesResponse {
	return listArticlesResponse{
		Data: toArticlesResponse(page.Items),
		Pagination: paginationResponse{
			Total:      page.Total,
			Page:       page.Page,
			Limit:      page.Limit,
			TotalPages: page.TotalPages,
		},
	}
}

func toUpdateInput(req updateArticleRequest) ports.UpdateArticleInput {
	return ports.UpdateArticleInput{
		Title:       req.Title,
		JournalName: req.JournalName,
		Category:    req.Category,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
}
