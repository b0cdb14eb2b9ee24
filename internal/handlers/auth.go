package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/leopark123/ideahub/internal/services"
)

type AuthHandler struct {
  authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
  return &AuthHandler{authService: authService}
}

type registerRequest struct {
  Email    string    `json:"email" binding:"required,email"`
  Password string    `json:"password" binding:"required,min=8"`
  Nickname string    `json:"nickname"`
}

func (ah *AuthHandler) Register(c *gin.Context) {
  var req registerRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
    return
  }
  user, err := ah.authService.Register(c.Request.Context(), req.Email, req.Password, req.Nickname)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondCreated(c, user)
}

type loginRequest struct {
  Email    string    `json:"email" binding:"required,email"`
  Password string    `json:"password" binding:"required"`
}

func (ah *AuthHandler) Login(c *gin.Context) {
  var req loginRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
    return
  }
  tokens, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, tokens)
}

type refreshRequest struct {
  RefreshToken string    `json:"refresh_token" binding:"required"`
}

func (ah *AuthHandler) Refresh(c *gin.Context) {
  var req refreshRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
    return
  }
  tokens, err := ah.authService.Refresh(c.Request.Context(), req.RefreshToken)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, tokens)
}
