package services

import (
  "context"
  "fmt"
  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"
  "github.com/leopark123/ideahub/internal/apierr"
  "github.com/leopark123/ideahub/internal/logger"
  "github.com/leopark123/ideahub/internal/repos"
  "github.com/leopark123/ideahub/internal/types"
)

type ProjectCreate struct {
  Title          string                  `json:"title" binding:"required"`
  Subtitle       string                  `json:"subtitle"`
  Description    string                  `json:"description" binding:"required"`
  Category       types.ProjectCategory   `json:"category"`
  CoverImage     string                  `json:"cover_image"`
  Images         datatypes.JSON          `json:"images"`
  VideoURL       string                  `json:"video_url"`
  RequiredSkills datatypes.JSON          `json:"required_skills"`
  TeamSize       int                     `json:"team_size"`
}

type ProjectUpdate struct {
  Title          *string                 `json:"title"`
  Subtitle       *string                 `json:"subtitle"`
  Description    *string                 `json:"description"`
  Category       *types.ProjectCategory  `json:"category"`
  CoverImage     *string                 `json:"cover_image"`
  Images         datatypes.JSON          `json:"images"`
  VideoURL       *string                 `json:"video_url"`
  RequiredSkills datatypes.JSON          `json:"required_skills"`
  TeamSize       *int                    `json:"team_size"`
}

type ProjectList struct {
  Items    []*types.Project   `json:"items"`
  Total    int64              `json:"total"`
  Page     int                `json:"page"`
  PageSize int                `json:"page_size"`
}

type ProjectService interface {
  Create(ctx context.Context, ownerID uuid.UUID, data ProjectCreate) (*types.Project, error)
  Get(ctx context.Context, projectID uuid.UUID) (*types.Project, error)
  List(ctx context.Context, filter repos.ProjectFilter, page, pageSize int) (*ProjectList, error)
  Update(ctx context.Context, projectID, currentUserID uuid.UUID, data ProjectUpdate) (*types.Project, error)
  Delete(ctx context.Context, projectID, currentUserID uuid.UUID) error
  Publish(ctx context.Context, projectID, currentUserID uuid.UUID) (*types.Project, error)
}

type projectService struct {
  db          *gorm.DB
  log         *logger.Logger
  projectRepo repos.ProjectRepo
  cache       CacheService
}

func NewProjectService(db *gorm.DB, baseLog *logger.Logger, projectRepo repos.ProjectRepo, cache CacheService) ProjectService {
  serviceLog := baseLog.With("service", "ProjectService")
  return &projectService{db: db, log: serviceLog, projectRepo: projectRepo, cache: cache}
}

func (ps *projectService) Create(ctx context.Context, ownerID uuid.UUID, data ProjectCreate) (*types.Project, error) {
  category := data.Category
  if category == "" {
    category = types.ProjectCategoryOther
  }
  teamSize := data.TeamSize
  if teamSize < 1 {
    teamSize = 1
  }
  project := &types.Project{
    ID:             uuid.New(),
    OwnerID:        ownerID,
    Title:          data.Title,
    Subtitle:       data.Subtitle,
    Description:    data.Description,
    Category:       category,
    CoverImage:     data.CoverImage,
    Images:         data.Images,
    VideoURL:       data.VideoURL,
    RequiredSkills: data.RequiredSkills,
    TeamSize:       teamSize,
    Status:         types.ProjectStatusDraft,
  }
  if _, err := ps.projectRepo.Create(ctx, nil, []*types.Project{project}); err != nil {
    ps.log.Error("Create project failed", "error", err)
    return nil, apierr.Internal(fmt.Errorf("create project: %w", err))
  }
  return project, nil
}

func (ps *projectService) Get(ctx context.Context, projectID uuid.UUID) (*types.Project, error) {
  var cached types.Project
  if ps.cache.GetJSON(ctx, CacheKeyProject(projectID.String()), &cached) {
    return &cached, nil
  }
  projects, err := ps.projectRepo.GetByIDs(ctx, nil, []uuid.UUID{projectID})
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("load project: %w", err))
  }
  if len(projects) == 0 {
    return nil, apierr.NotFound("project %s not found", projectID)
  }
  ps.cache.SetJSON(ctx, CacheKeyProject(projectID.String()), projects[0], CacheTTLMedium)
  return projects[0], nil
}

func (ps *projectService) List(ctx context.Context, filter repos.ProjectFilter, page, pageSize int) (*ProjectList, error) {
  items, total, err := ps.projectRepo.List(ctx, nil, filter, page, pageSize)
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("list projects: %w", err))
  }
  if page < 1 {
    page = 1
  }
  if pageSize < 1 {
    pageSize = 10
  }
  return &ProjectList{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}

func (ps *projectService) Update(ctx context.Context, projectID, currentUserID uuid.UUID, data ProjectUpdate) (*types.Project, error) {
  project, err := ps.getOwned(ctx, projectID, currentUserID, "modify")
  if err != nil {
    return nil, err
  }
  if data.Title != nil {
    project.Title = *data.Title
  }
  if data.Subtitle != nil {
    project.Subtitle = *data.Subtitle
  }
  if data.Description != nil {
    project.Description = *data.Description
  }
  if data.Category != nil {
    project.Category = *data.Category
  }
  if data.CoverImage != nil {
    project.CoverImage = *data.CoverImage
  }
  if data.Images != nil {
    project.Images = data.Images
  }
  if data.VideoURL != nil {
    project.VideoURL = *data.VideoURL
  }
  if data.RequiredSkills != nil {
    project.RequiredSkills = data.RequiredSkills
  }
  if data.TeamSize != nil {
    project.TeamSize = *data.TeamSize
  }
  updated, err := ps.projectRepo.Update(ctx, nil, project)
  if err != nil {
    ps.log.Error("Update project failed", "error", err, "project_id", projectID)
    return nil, apierr.Internal(fmt.Errorf("update project: %w", err))
  }
  ps.cache.Delete(ctx, CacheKeyProject(projectID.String()))
  return updated, nil
}

func (ps *projectService) Delete(ctx context.Context, projectID, currentUserID uuid.UUID) error {
  if _, err := ps.getOwned(ctx, projectID, currentUserID, "delete"); err != nil {
    return err
  }
  if err := ps.projectRepo.Delete(ctx, nil, projectID); err != nil {
    ps.log.Error("Delete project failed", "error", err, "project_id", projectID)
    return apierr.Internal(fmt.Errorf("delete project: %w", err))
  }
  ps.cache.Delete(ctx, CacheKeyProject(projectID.String()))
  return nil
}

func (ps *projectService) Publish(ctx context.Context, projectID, currentUserID uuid.UUID) (*types.Project, error) {
  project, err := ps.getOwned(ctx, projectID, currentUserID, "publish")
  if err != nil {
    return nil, err
  }
  if project.Status != types.ProjectStatusDraft && project.Status != types.ProjectStatusPending {
    return nil, apierr.InvalidState("only draft or pending projects can be published")
  }
  project.Status = types.ProjectStatusActive
  updated, err := ps.projectRepo.Update(ctx, nil, project)
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("publish project: %w", err))
  }
  ps.cache.Delete(ctx, CacheKeyProject(projectID.String()))
  return updated, nil
}

func (ps *projectService) getOwned(ctx context.Context, projectID, currentUserID uuid.UUID, action string) (*types.Project, error) {
  projects, err := ps.projectRepo.GetByIDs(ctx, nil, []uuid.UUID{projectID})
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("load project: %w", err))
  }
  if len(projects) == 0 {
    return nil, apierr.NotFound("project %s not found", projectID)
  }
  if projects[0].OwnerID != currentUserID {
    return nil, apierr.Forbidden("no permission to %s this project", action)
  }
  return projects[0], nil
}
