package handlers

import (
  "net/http"
  "strconv"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/leopark123/ideahub/internal/repos"
  "github.com/leopark123/ideahub/internal/services"
  "github.com/leopark123/ideahub/internal/types"
)

type ProjectHandler struct {
  projectService services.ProjectService
}

func NewProjectHandler(projectService services.ProjectService) *ProjectHandler {
  return &ProjectHandler{projectService: projectService}
}

func (ph *ProjectHandler) Create(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req services.ProjectCreate
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
    return
  }
  project, err := ph.projectService.Create(c.Request.Context(), userID, req)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondCreated(c, project)
}

func (ph *ProjectHandler) Get(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  project, err := ph.projectService.Get(c.Request.Context(), id)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, project)
}

func (ph *ProjectHandler) List(c *gin.Context) {
  page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
  pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

  filter := repos.ProjectFilter{
    Category: types.ProjectCategory(c.Query("category")),
    Status:   types.ProjectStatus(c.Query("status")),
    Keyword:  c.Query("keyword"),
  }
  if ownerStr := c.Query("owner_id"); ownerStr != "" {
    ownerID, err := uuid.Parse(ownerStr)
    if err != nil {
      RespondError(c, http.StatusBadRequest, "INVALID_ID", err)
      return
    }
    filter.OwnerID = ownerID
  }

  list, err := ph.projectService.List(c.Request.Context(), filter, page, pageSize)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, list)
}

func (ph *ProjectHandler) Update(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  var req services.ProjectUpdate
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
    return
  }
  project, err := ph.projectService.Update(c.Request.Context(), id, userID, req)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, project)
}

func (ph *ProjectHandler) Delete(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  if err := ph.projectService.Delete(c.Request.Context(), id, userID); err != nil {
    RespondAPIError(c, err)
    return
  }
  c.Status(http.StatusNoContent)
}

func (ph *ProjectHandler) Publish(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  project, err := ph.projectService.Publish(c.Request.Context(), id, userID)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, project)
}
