package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/leopark123/ideahub/internal/services"
)

type CrowdfundingHandler struct {
  crowdfundingService services.CrowdfundingService
}

func NewCrowdfundingHandler(crowdfundingService services.CrowdfundingService) *CrowdfundingHandler {
  return &CrowdfundingHandler{crowdfundingService: crowdfundingService}
}

func (ch *CrowdfundingHandler) Create(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req services.CrowdfundingCreate
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
    return
  }
  crowdfunding, err := ch.crowdfundingService.Create(c.Request.Context(), userID, req)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondCreated(c, crowdfunding)
}

func (ch *CrowdfundingHandler) Get(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  crowdfunding, err := ch.crowdfundingService.Get(c.Request.Context(), id)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, crowdfunding)
}

func (ch *CrowdfundingHandler) GetStats(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  crowdfunding, err := ch.crowdfundingService.Get(c.Request.Context(), id)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, ch.crowdfundingService.Stats(crowdfunding))
}

func (ch *CrowdfundingHandler) GetByProject(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  crowdfunding, err := ch.crowdfundingService.GetByProject(c.Request.Context(), id)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, crowdfunding)
}

func (ch *CrowdfundingHandler) ListActive(c *gin.Context) {
  crowdfundings, err := ch.crowdfundingService.ListActive(c.Request.Context())
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, crowdfundings)
}

func (ch *CrowdfundingHandler) Update(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  var req services.CrowdfundingUpdate
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
    return
  }
  crowdfunding, err := ch.crowdfundingService.Update(c.Request.Context(), id, userID, req)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, crowdfunding)
}

func (ch *CrowdfundingHandler) Start(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  crowdfunding, err := ch.crowdfundingService.Start(c.Request.Context(), id, userID)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, crowdfunding)
}
