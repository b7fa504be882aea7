package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gradpath/gradpath-backend/internal/logger"
	"github.com/gradpath/gradpath-backend/internal/services"
)

type UserCourseHandler struct {
	log               *logger.Logger
	userCourseService services.UserCourseService
}

func NewUserCourseHandler(log *logger.Logger, userCourseService services.UserCourseService) *UserCourseHandler {
	return &UserCourseHandler{
		log:               log.With("handler", "UserCourseHandler"),
		userCourseService: userCourseService,
	}
}

func (h *UserCourseHandler) ListUserCourses(c *gin.Context) {
	views, err := h.userCourseService.ListForUser(c.Request.Context())
	if err != nil {
		h.log.Error("ListUserCourses failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "load_user_courses_failed", err)
		return
	}
	RespondOK(c, gin.H{"user_courses": views})
}

func (h *UserCourseHandler) UpsertUserCourse(c *gin.Context) {
	var req services.UserCourseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("invalid request body"))
		return
	}
	view, err := h.userCourseService.UpsertForUser(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			RespondError(c, http.StatusNotFound, "course_not_found", err)
			return
		}
		RespondError(c, http.StatusBadRequest, "upsert_user_course_failed", err)
		return
	}
	RespondOK(c, gin.H{"user_course": view})
}
