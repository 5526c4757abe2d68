package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/newsdesk/newsroom-api/internal/core/domain"
	"github.com/newsdesk/newsroom-api/internal/core/ports"
)

// UserHandler handles the admin user-management surface plus self-lookup.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type updateUserRequest struct {
	Username string `json:"username" validate:"omitempty,min=3,max=64"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=8"`
	Role     string `json:"role"     validate:"omitempty,oneof=member author admin"`
}

type listUsersResponse struct {
	Data       []*domain.User     `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// Me handles GET /v1/users/me — the authenticated user's own record.
func (h *UserHandler) Me(c echo.Context) error {
	subjectID, _, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.service.GetByID(c.Request().Context(), subjectID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// List handles GET /v1/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page (1-based)"
// @Param        limit  query     int  false  "Page size (1-100)"
// @Success      200    {object}  listUsersResponse
// @Failure      403    {object}  errorResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listUsersResponse{
		Data: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Get handles GET /v1/users/:id.
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update handles PUT /v1/users/:id. A changed password is re-hashed by the
// service before storage.
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.UpdateByID(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /v1/users/:id.
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteByID(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "user deleted"})
}

// DeleteByEmail handles DELETE /v1/users/email/:email.
func (h *UserHandler) DeleteByEmail(c echo.Context) error {
	if err := h.service.DeleteByEmail(c.Request().Context(), c.Param("email")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "user deleted"})
}

// DeleteByUsername handles DELETE /v1/users/username/:username.
func (h *UserHandler) DeleteByUsername(c echo.Context) error {
	if err := h.service.DeleteByUsername(c.Request().Context(), c.Param("username")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "user deleted"})
}
