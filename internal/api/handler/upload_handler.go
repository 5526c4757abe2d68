package handler

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/newsdesk/newsroom-api/internal/core/ports"
)

// allowedImageExts bounds what an article image upload may be.
var allowedImageExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// UploadHandler stores article images on local disk and records the derived
// URL on the article.
type UploadHandler struct {
	service   ports.ArticleService
	uploadDir string
}

func NewUploadHandler(service ports.ArticleService, uploadDir string) *UploadHandler {
	return &UploadHandler{service: service, uploadDir: uploadDir}
}

// AttachImage handles POST /v1/articles/:id/image.
//
// @Summary      Upload an image for an article
// @Tags         articles
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true  "Article id"
// @Param        image  formData  file    true  "Image file"
// @Success      200    {object}  articleResponse
// @Failure      400    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /v1/articles/{id}/image [post]
func (h *UploadHandler) AttachImage(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image file is required")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowedImageExts[ext]; !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "unsupported image type")
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return err
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(h.uploadDir, name))
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return err
	}

	article, err := h.service.AttachImage(c.Request().Context(), c.Param("id"), "/uploads/"+name)
	if err != nil {
		// The article row wasn't touched; drop the orphaned file.
		_ = os.Remove(filepath.Join(h.uploadDir, name))
		return err
	}

	return c.JSON(http.StatusOK, toArticleResponse(article))
}
