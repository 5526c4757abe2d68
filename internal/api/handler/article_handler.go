package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/newsdesk/newsroom-api/internal/api/metrics"
	"github.com/newsdesk/newsroom-api/internal/core/domain"
	"github.com/newsdesk/newsroom-api/internal/core/ports"
)

// ArticleHandler handles HTTP requests for article operations.
type ArticleHandler struct {
	service ports.ArticleService
}

func NewArticleHandler(service ports.ArticleService) *ArticleHandler {
	return &ArticleHandler{service: service}
}

// Create handles POST /v1/articles.
//
// @Summary      Publish a new article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createArticleRequest  true  "Article details"
// @Success      201   {object}  articleResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/articles [post]
func (h *ArticleHandler) Create(c echo.Context) error {
	var req createArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	_, username, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	// Authors always publish as themselves; admins may publish on behalf
	// of another author.
	author := username
	if role == domain.RoleAdmin && req.Author != "" {
		author = req.Author
	}

	article, err := h.service.Create(c.Request().Context(), ports.CreateArticleInput{
		Title:       req.Title,
		Author:      author,
		JournalName: req.JournalName,
		Category:    req.Category,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return err
	}

	metrics.ArticleMutationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, toArticleResponse(article))
}

// Get handles GET /v1/articles/:id.
//
// @Summary      Get an article by id
// @Tags         articles
// @Produce      json
// @Param        id  path      string  true  "Article id"
// @Success      200 {object}  articleResponse
// @Failure      404 {object}  errorResponse
// @Router       /v1/articles/{id} [get]
func (h *ArticleHandler) Get(c echo.Context) error {
	article, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArticleResponse(article))
}

// List handles GET /v1/articles.
//
// @Summary      List articles, newest first
// @Tags         articles
// @Produce      json
// @Param        page   query     int  false  "Page (1-based)"
// @Param        limit  query     int  false  "Page size (1-100)"
// @Success      200    {object}  listArticlesResponse
// @Failure      400    {object}  errorResponse
// @Router       /v1/articles [get]
func (h *ArticleHandler) List(c echo.Context) error {
	page, limit := pageParams(c)
	result, err := h.service.List(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(result))
}

// Search handles GET /v1/articles/search.
//
// @Summary      Keyword search across articles
// @Tags         articles
// @Produce      json
// @Param        q      query     string  true   "Keywords (min 2 characters)"
// @Param        page   query     int     false  "Page (1-based)"
// @Param        limit  query     int     false  "Page size (1-100)"
// @Success      200    {object}  listArticlesResponse
// @Failure      400    {object}  errorResponse
// @Router       /v1/articles/search [get]
func (h *ArticleHandler) Search(c echo.Context) error {
	page, limit := pageParams(c)
	result, err := h.service.Search(c.Request().Context(), c.QueryParam("q"), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(result))
}

// GetByTitle handles GET /v1/articles/title/:title — case-insensitive
// substring match.
func (h *ArticleHandler) GetByTitle(c echo.Context) error {
	return h.findByField(c, "title", c.Param("title"))
}

// GetByAuthor handles GET /v1/articles/author/:author — case-insensitive
// substring match.
func (h *ArticleHandler) GetByAuthor(c echo.Context) error {
	return h.findByField(c, "author", c.Param("author"))
}

func (h *ArticleHandler) findByField(c echo.Context, field, value string) error {
	articles, err := h.service.FindByField(c.Request().Context(), field, value)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, articlesResponse{Data: toArticlesResponse(articles)})
}

// Update handles PUT /v1/articles/:id.
//
// @Summary      Update an article by id
// @Tags         articles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Article id"
// @Param        body  body      updateArticleRequest  true  "Fields to update"
// @Success      200   {object}  articleResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/articles/{id} [put]
func (h *ArticleHandler) Update(c echo.Context) error {
	var req updateArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	article, err := h.service.UpdateByID(c.Request().Context(), c.Param("id"), toUpdateInput(req))
	if err != nil {
		return err
	}

	metrics.ArticleMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, toArticleResponse(article))
}

// UpdateByTitle handles PUT /v1/articles/title/:title — bulk update over
// every article whose title matches.
func (h *ArticleHandler) UpdateByTitle(c echo.Context) error {
	return h.updateByField(c, "title", c.Param("title"))
}

// UpdateByAuthor handles PUT /v1/articles/author/:author.
func (h *ArticleHandler) UpdateByAuthor(c echo.Context) error {
	return h.updateByField(c, "author", c.Param("author"))
}

func (h *ArticleHandler) updateByField(c echo.Context, field, value string) error {
	var req updateArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.UpdateByField(c.Request().Context(), field, value, toUpdateInput(req))
	if err != nil {
		return err
	}

	metrics.ArticleMutationsTotal.WithLabelValues("bulk_update").Inc()
	return c.JSON(http.StatusOK, bulkResultResponse{
		Count:    result.Count,
		Criteria: map[string]string{field: value},
	})
}

// Delete handles DELETE /v1/articles/:id.
//
// @Summary      Delete an article by id
// @Tags         articles
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Article id"
// @Success      200 {object}  messageResponse
// @Failure      403 {object}  errorResponse
// @Failure      404 {object}  errorResponse
// @Router       /v1/articles/{id} [delete]
func (h *ArticleHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteByID(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.ArticleMutationsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "article deleted"})
}

// DeleteByTitle handles DELETE /v1/articles/title/:title.
func (h *ArticleHandler) DeleteByTitle(c echo.Context) error {
	return h.deleteByField(c, "title", c.Param("title"))
}

// DeleteByAuthor handles DELETE /v1/articles/author/:author.
func (h *ArticleHandler) DeleteByAuthor(c echo.Context) error {
	return h.deleteByField(c, "author", c.Param("author"))
}

func (h *ArticleHandler) deleteByField(c echo.Context, field, value string) error {
	result, err := h.service.DeleteByField(c.Request().Context(), field, value)
	if err != nil {
		return err
	}

	metrics.ArticleMutationsTotal.WithLabelValues("bulk_delete").Inc()
	return c.JSON(http.StatusOK, bulkResultResponse{
		Count:    result.Count,
		Criteria: map[string]string{field: value},
	})
}

// pageParams reads page/limit query parameters, leaving zero values for the
// service layer to default and validate.
func pageParams(c echo.Context) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return page, limit
}
