package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/leopark123/ideahub/internal/services"
)

type UserHandler struct {
  userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
  return &UserHandler{userService: userService}
}

func (uh *UserHandler) GetMe(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  user, err := uh.userService.GetByID(c.Request.Context(), userID)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, user)
}

func (uh *UserHandler) UpdateMe(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req services.UserProfileUpdate
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
    return
  }
  user, err := uh.userService.UpdateProfile(c.Request.Context(), userID, req)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, user)
}

func (uh *UserHandler) GetByID(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  user, err := uh.userService.GetByID(c.Request.Context(), id)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  // Public view only.
  RespondOK(c, user.Brief())
}
