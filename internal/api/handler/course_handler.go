package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/learnhub-client/internal/core/domain"
	"github.com/learnhub/learnhub-client/internal/core/ports"
)

// CourseHandler passes catalog reads through to the remote API. The catalog
// is remote-owned; failure envelopes flow back to the caller unchanged.
type CourseHandler struct {
	api ports.APIClient
}

func NewCourseHandler(api ports.APIClient) *CourseHandler {
	return &CourseHandler{api: api}
}

// List returns the course catalog, optionally filtered.
//
// @Summary      List courses
// @Tags         courses
// @Produce      json
// @Param        category    query  int     false  "Category ID"
// @Param        difficulty  query  string  false  "beginner, intermediate or advanced"
// @Param        search      query  string  false  "Free-text search"
// @Param        page        query  int     false  "Page number"
// @Param        limit       query  int     false  "Page size"
// @Success      200  {object}  domain.Envelope[domain.CourseList]
// @Router       /api/courses [get]
func (h *CourseHandler) List(c echo.Context) error {
	var filter domain.CourseFilter
	if err := c.Bind(&filter); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid filter")
	}

	env, err := h.api.GetCourses(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, env)
}

// Get returns one course by id.
//
// @Summary      Get a course
// @Tags         courses
// @Produce      json
// @Param        id   path      int  true  "Course ID"
// @Success      200  {object}  domain.Envelope[domain.Course]
// @Failure      404  {object}  errorResponse
// @Router       /api/courses/{id} [get]
func (h *CourseHandler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid course id")
	}

	env, err := h.api.GetCourse(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, env)
}
