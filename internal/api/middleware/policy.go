package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/newsdesk/newsroom-api/internal/core/domain"
	"github.com/newsdesk/newsroom-api/internal/core/ports"
)

// Policy selects the authorization rule applied after authentication.
type Policy int

const (
	// AdminOnly passes only the admin role.
	AdminOnly Policy = iota
	// AuthorOrAdmin passes admin unconditionally; author passes on
	// id-targeted routes only when it owns the article, and on routes
	// without an :id target unconditionally.
	AuthorOrAdmin
)

// Authorize enforces the given policy. It runs after Authenticate and
// short-circuits on the first failing check — the article lookup for the
// ownership comparison is the only store access, and it happens only for
// author-role requests that target a specific article.
//
// Known gap, preserved from the product's original behavior: bulk
// title/author-scoped mutations have no :id target, so an author passes
// without any ownership filtering and can mutate articles that are not
// theirs. Flagged in DESIGN.md, pending product clarification.
func Authorize(policy Policy, articles ports.ArticleRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(domain.Role)

			switch policy {
			case AdminOnly:
				if role != domain.RoleAdmin {
					return domain.ErrForbidden
				}
				return next(c)

			case AuthorOrAdmin:
				if role == domain.RoleAdmin {
					return next(c)
				}
				if role != domain.RoleAuthor {
					return domain.ErrForbidden
				}

				id := c.Param("id")
				if id == "" {
					// Bulk path: no single-article target to resolve.
					return next(c)
				}

				article, err := articles.FindByID(c.Request().Context(), id)
				if err != nil {
					return err
				}

				username, _ := c.Get("username").(string)
				if article.Author != username {
					return domain.ErrForbidden
				}
				return next(c)
			}

			return domain.ErrForbidden
		}
	}
}
