package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gradpath/gradpath-backend/internal/logger"
	"github.com/gradpath/gradpath-backend/internal/services"
)

type CourseHandler struct {
	log           *logger.Logger
	courseService services.CourseService
}

func NewCourseHandler(log *logger.Logger, courseService services.CourseService) *CourseHandler {
	return &CourseHandler{
		log:           log.With("handler", "CourseHandler"),
		courseService: courseService,
	}
}

func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courseService.ListCourses(c.Request.Context())
	if err != nil {
		h.log.Error("ListCourses failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "load_courses_failed", err)
		return
	}
	RespondOK(c, gin.H{"courses": courses})
}

func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req services.CourseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("invalid request body"))
		return
	}
	course, err := h.courseService.CreateCourse(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrCourseExists) {
			RespondError(c, http.StatusConflict, "course_exists", err)
			return
		}
		RespondError(c, http.StatusBadRequest, "create_course_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"course": course})
}
