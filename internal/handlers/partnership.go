package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/leopark123/ideahub/internal/services"
)

type PartnershipHandler struct {
  partnershipService services.PartnershipService
}

func NewPartnershipHandler(partnershipService services.PartnershipService) *PartnershipHandler {
  return &PartnershipHandler{partnershipService: partnershipService}
}

func (ph *PartnershipHandler) Apply(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req services.PartnershipApply
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
    return
  }
  partnership, err := ph.partnershipService.Apply(c.Request.Context(), userID, req)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondCreated(c, partnership)
}

func (ph *PartnershipHandler) Approve(c *gin.Context) {
  ph.review(c, true)
}

func (ph *PartnershipHandler) Reject(c *gin.Context) {
  ph.review(c, false)
}

func (ph *PartnershipHandler) review(c *gin.Context, approve bool) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  var err error
  var partnership interface{}
  if approve {
    partnership, err = ph.partnershipService.Approve(c.Request.Context(), id, userID)
  } else {
    partnership, err = ph.partnershipService.Reject(c.Request.Context(), id, userID)
  }
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, partnership)
}

func (ph *PartnershipHandler) Leave(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  partnership, err := ph.partnershipService.Leave(c.Request.Context(), id, userID)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, partnership)
}

func (ph *PartnershipHandler) ListByProject(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  partnerships, err := ph.partnershipService.ListByProject(c.Request.Context(), id)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, partnerships)
}

func (ph *PartnershipHandler) ListMine(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  partnerships, err := ph.partnershipService.ListByUser(c.Request.Context(), userID)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, partnerships)
}
