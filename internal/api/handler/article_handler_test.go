package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/newsdesk/newsroom-api/internal/core/domain"
	"github.com/newsdesk/newsroom-api/internal/core/ports"
)

// stubArticleService implements the methods the handler exercises and
// records what it was called with.
type stubArticleService struct {
	ports.ArticleService

	article *domain.Article
	page    *ports.ArticlePage
	bulk    *ports.BulkResult
	err     error

	createInput ports.CreateArticleInput
	gotID       string
	gotField    string
	gotValue    string
	gotKeywords string
	gotPage     int
	gotLimit    int
}

func (s *stubArticleService) Create(_ context.Context, input ports.CreateArticleInput) (*domain.Article, error) {
	s.createInput = input
	return s.article, s.err
}

func (s *stubArticleService) GetByID(_ context.Context, id string) (*domain.Article, error) {
	s.gotID = id
	return s.article, s.err
}

func (s *stubArticleService) List(_ context.Context, page, limit int) (*ports.ArticlePage, error) {
	s.gotPage, s.gotLimit = page, limit
	return s.page, s.err
}

func (s *stubArticleService) Search(_ context.Context, keywords string, page, limit int) (*ports.ArticlePage, error) {
	s.gotKeywords, s.gotPage, s.gotLimit = keywords, page, limit
	return s.page, s.err
}

func (s *stubArticleService) UpdateByID(_ context.Context, id string, _ ports.UpdateArticleInput) (*domain.Article, error) {
	s.gotID = id
	return s.article, s.err
}

func (s *stubArticleService) UpdateByField(_ context.Context, field, value string, _ ports.UpdateArticleInput) (*ports.BulkResult, error) {
	s.gotField, s.gotValue = field, value
	return s.bulk, s.err
}

func (s *stubArticleService) DeleteByID(_ context.Context, id string) error {
	s.gotID = id
	return s.err
}

func (s *stubArticleService) DeleteByField(_ context.Context, field, value string) (*ports.BulkResult, error) {
	s.gotField, s.gotValue = field, value
	return s.bulk, s.err
}

func newArticleContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func setClaims(c echo.Context, username string, role domain.Role) {
	c.Set("subject_id", "user-1")
	c.Set("username", username)
	c.Set("role", role)
}

func TestArticleHandler_Create_AuthorPublishesAsSelf(t *testing.T) {
	svc := &stubArticleService{article: &domain.Article{ID: "art-1", Title: "Go tips", Author: "alice"}}
	h := NewArticleHandler(svc)

	c, rec := newArticleContext(http.MethodPost, "/v1/articles",
		`{"title":"Go tips","author":"somebody-else","journal_name":"Daily Planet","description":"tips"}`)
	setClaims(c, "alice", domain.RoleAuthor)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	// The author field in the payload is ignored for non-admins.
	if svc.createInput.Author != "alice" {
		t.Fatalf("author = %q, want alice", svc.createInput.Author)
	}
}

func TestArticleHandler_Create_AdminOverridesAuthor(t *testing.T) {
	svc := &stubArticleService{article: &domain.Article{ID: "art-1"}}
	h := NewArticleHandler(svc)

	c, _ := newArticleContext(http.MethodPost, "/v1/articles",
		`{"title":"Go tips","author":"ghostwriter","journal_name":"Daily Planet","description":"tips"}`)
	setClaims(c, "root", domain.RoleAdmin)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if svc.createInput.Author != "ghostwriter" {
		t.Fatalf("author = %q, want ghostwriter", svc.createInput.Author)
	}
}

func TestArticleHandler_Create_Validation(t *testing.T) {
	h := NewArticleHandler(&stubArticleService{})

	c, _ := newArticleContext(http.MethodPost, "/v1/articles",
		`{"journal_name":"Daily Planet","description":"tips"}`)
	setClaims(c, "alice", domain.RoleAuthor)

	err := h.Create(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected HTTP 400 for missing title, got %v", err)
	}
}

func TestArticleHandler_Create_MissingClaims(t *testing.T) {
	h := NewArticleHandler(&stubArticleService{})

	c, _ := newArticleContext(http.MethodPost, "/v1/articles",
		`{"title":"Go tips","journal_name":"Daily Planet","description":"tips"}`)

	if err := h.Create(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated without claims, got %v", err)
	}
}

func TestArticleHandler_Get(t *testing.T) {
	svc := &stubArticleService{article: &domain.Article{ID: "art-1", Title: "Go tips"}}
	h := NewArticleHandler(svc)

	c, rec := newArticleContext(http.MethodGet, "/v1/articles/art-1", "")
	c.SetParamNames("id")
	c.SetParamValues("art-1")

	if err := h.Get(c); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if rec.Code != http.StatusOK || svc.gotID != "art-1" {
		t.Fatalf("status=%d id=%q", rec.Code, svc.gotID)
	}

	var resp articleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Title != "Go tips" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestArticleHandler_Get_NotFound(t *testing.T) {
	h := NewArticleHandler(&stubArticleService{err: domain.ErrArticleNotFound})

	c, _ := newArticleContext(http.MethodGet, "/v1/articles/ghost", "")
	c.SetParamNames("id")
	c.SetParamValues("ghost")

	if err := h.Get(c); !errors.Is(err, domain.ErrArticleNotFound) {
		t.Fatalf("expected ErrArticleNotFound, got %v", err)
	}
}

func TestArticleHandler_List_PassesPagination(t *testing.T) {
	svc := &stubArticleService{page: &ports.ArticlePage{Page: 2, Limit: 5, Total: 11, TotalPages: 3}}
	h := NewArticleHandler(svc)

	c, rec := newArticleContext(http.MethodGet, "/v1/articles?page=2&limit=5", "")

	if err := h.List(c); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if svc.gotPage != 2 || svc.gotLimit != 5 {
		t.Fatalf("pagination not forwarded: page=%d limit=%d", svc.gotPage, svc.gotLimit)
	}

	var resp listArticlesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Pagination.Total != 11 || resp.Pagination.TotalPages != 3 {
		t.Fatalf("unexpected pagination: %+v", resp.Pagination)
	}
}

func TestArticleHandler_Search(t *testing.T) {
	svc := &stubArticleService{page: &ports.ArticlePage{Page: 1, Limit: 10}}
	h := NewArticleHandler(svc)

	c, _ := newArticleContext(http.MethodGet, "/v1/articles/search?q=golang", "")

	if err := h.Search(c); err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if svc.gotKeywords != "golang" {
		t.Fatalf("keywords = %q", svc.gotKeywords)
	}
}

func TestArticleHandler_Delete(t *testing.T) {
	svc := &stubArticleService{}
	h := NewArticleHandler(svc)

	c, rec := newArticleContext(http.MethodDelete, "/v1/articles/art-1", "")
	c.SetParamNames("id")
	c.SetParamValues("art-1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if rec.Code != http.StatusOK || svc.gotID != "art-1" {
		t.Fatalf("status=%d id=%q", rec.Code, svc.gotID)
	}
}

func TestArticleHandler_UpdateByAuthor_Bulk(t *testing.T) {
	svc := &stubArticleService{bulk: &ports.BulkResult{Count: 4}}
	h := NewArticleHandler(svc)

	c, rec := newArticleContext(http.MethodPut, "/v1/articles/author/alice",
		`{"description":"refreshed"}`)
	c.SetParamNames("author")
	c.SetParamValues("alice")

	if err := h.UpdateByAuthor(c); err != nil {
		t.Fatalf("UpdateByAuthor returned error: %v", err)
	}
	if svc.gotField != "author" || svc.gotValue != "alice" {
		t.Fatalf("scope not forwarded: %q=%q", svc.gotField, svc.gotValue)
	}

	var resp bulkResultResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Count != 4 || resp.Criteria["author"] != "alice" {
		t.Fatalf("unexpected bulk response: %+v", resp)
	}
}

func TestArticleHandler_DeleteByTitle_Bulk(t *testing.T) {
	svc := &stubArticleService{bulk: &ports.BulkResult{Count: 0}}
	h := NewArticleHandler(svc)

	c, rec := newArticleContext(http.MethodDelete, "/v1/articles/title/nothing", "")
	c.SetParamNames("title")
	c.SetParamValues("nothing")

	if err := h.DeleteByTitle(c); err != nil {
		t.Fatalf("DeleteByTitle returned error: %v", err)
	}

	var resp bulkResultResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	// A no-match bulk delete is still a 200 with count zero.
	if rec.Code != http.StatusOK || resp.Count != 0 {
		t.Fatalf("status=%d count=%d", rec.Code, resp.Count)
	}
}
