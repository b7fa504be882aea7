package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/gradpath/gradpath-backend/internal/services"
)

type UserHandler struct {
  userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
  return &UserHandler{userService: userService}
}

func (uh *UserHandler) GetMe(c *gin.Context) {
  me, err := uh.userService.GetMe(c.Request.Context())
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "load_user_failed", err)
    return
  }
  RespondOK(c, gin.H{"me": me})
}
