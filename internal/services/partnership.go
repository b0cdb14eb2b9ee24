package services

import (
  "context"
  "fmt"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/leopark123/ideahub/internal/apierr"
  "github.com/leopark123/ideahub/internal/logger"
  "github.com/leopark123/ideahub/internal/repos"
  "github.com/leopark123/ideahub/internal/types"
)

type PartnershipApply struct {
  ProjectID          uuid.UUID               `json:"project_id" binding:"required"`
  Role               types.PartnershipRole   `json:"role"`
  Position           string                  `json:"position"`
  ApplicationMessage string                  `json:"application_message"`
}

type PartnershipService interface {
  Apply(ctx context.Context, applicantID uuid.UUID, data PartnershipApply) (*types.Partnership, error)
  Approve(ctx context.Context, partnershipID, currentUserID uuid.UUID) (*types.Partnership, error)
  Reject(ctx context.Context, partnershipID, currentUserID uuid.UUID) (*types.Partnership, error)
  Leave(ctx context.Context, partnershipID, currentUserID uuid.UUID) (*types.Partnership, error)
  ListByProject(ctx context.Context, projectID uuid.UUID) ([]*types.Partnership, error)
  ListByUser(ctx context.Context, userID uuid.UUID) ([]*types.Partnership, error)
}

type partnershipService struct {
  db              *gorm.DB
  log             *logger.Logger
  partnershipRepo repos.PartnershipRepo
  projectRepo     repos.ProjectRepo
}

func NewPartnershipService(db *gorm.DB, baseLog *logger.Logger, partnershipRepo repos.PartnershipRepo, projectRepo repos.ProjectRepo) PartnershipService {
  serviceLog := baseLog.With("service", "PartnershipService")
  return &partnershipService{
    db:              db,
    log:             serviceLog,
    partnershipRepo: partnershipRepo,
    projectRepo:     projectRepo,
  }
}

func (ps *partnershipService) Apply(ctx context.Context, applicantID uuid.UUID, data PartnershipApply) (*types.Partnership, error) {
  projects, err := ps.projectRepo.GetByIDs(ctx, nil, []uuid.UUID{data.ProjectID})
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("load project: %w", err))
  }
  if len(projects) == 0 {
    return nil, apierr.NotFound("project %s not found", data.ProjectID)
  }
  if projects[0].OwnerID == applicantID {
    return nil, apierr.InvalidState("cannot apply to your own project")
  }

  role := data.Role
  if role == "" {
    role = types.PartnershipRoleMember
  }

  existing, err := ps.partnershipRepo.GetByUserAndProject(ctx, nil, applicantID, data.ProjectID)
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("load partnership: %w", err))
  }
  if existing != nil {
    switch existing.Status {
    case types.PartnershipStatusPending:
      return nil, apierr.Conflict("application already submitted and awaiting review")
    case types.PartnershipStatusApproved:
      return nil, apierr.Conflict("already a partner on this project")
    default:
      // Rejected or left: re-application resets the existing row.
      existing.Status = types.PartnershipStatusPending
      existing.Role = role
      existing.Position = data.Position
      existing.ApplicationMessage = data.ApplicationMessage
      updated, err := ps.partnershipRepo.Update(ctx, nil, existing)
      if err != nil {
        return nil, apierr.Internal(fmt.Errorf("update partnership: %w", err))
      }
      return updated, nil
    }
  }

  partnership := &types.Partnership{
    ID:                 uuid.New(),
    ProjectID:          data.ProjectID,
    UserID:             applicantID,
    Role:               role,
    Position:           data.Position,
    ApplicationMessage: data.ApplicationMessage,
    Status:             types.PartnershipStatusPending,
  }
  if _, err := ps.partnershipRepo.Create(ctx, nil, []*types.Partnership{partnership}); err != nil {
    ps.log.Error("Apply failed", "error", err)
    return nil, apierr.Internal(fmt.Errorf("create partnership: %w", err))
  }
  return partnership, nil
}

func (ps *partnershipService) Approve(ctx context.Context, partnershipID, currentUserID uuid.UUID) (*types.Partnership, error) {
  return ps.review(ctx, partnershipID, currentUserID, types.PartnershipStatusApproved)
}

func (ps *partnershipService) Reject(ctx context.Context, partnershipID, currentUserID uuid.UUID) (*types.Partnership, error) {
  return ps.review(ctx, partnershipID, currentUserID, types.PartnershipStatusRejected)
}

func (ps *partnershipService) review(ctx context.Context, partnershipID, currentUserID uuid.UUID, to types.PartnershipStatus) (*types.Partnership, error) {
  partnerships, err := ps.partnershipRepo.GetByIDs(ctx, nil, []uuid.UUID{partnershipID})
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("load partnership: %w", err))
  }
  if len(partnerships) == 0 {
    return nil, apierr.NotFound("application %s not found", partnershipID)
  }
  partnership := partnerships[0]

  projects, err := ps.projectRepo.GetByIDs(ctx, nil, []uuid.UUID{partnership.ProjectID})
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("load project: %w", err))
  }
  if len(projects) == 0 {
    return nil, apierr.NotFound("project %s not found", partnership.ProjectID)
  }
  if projects[0].OwnerID != currentUserID {
    return nil, apierr.Forbidden("only the project owner can review applications")
  }
  if partnership.Status != types.PartnershipStatusPending {
    return nil, apierr.InvalidState("application has already been processed")
  }

  partnership.Status = to
  updated, err := ps.partnershipRepo.Update(ctx, nil, partnership)
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("update partnership: %w", err))
  }
  return updated, nil
}

func (ps *partnershipService) Leave(ctx context.Context, partnershipID, currentUserID uuid.UUID) (*types.Partnership, error) {
  partnerships, err := ps.partnershipRepo.GetByIDs(ctx, nil, []uuid.UUID{partnershipID})
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("load partnership: %w", err))
  }
  if len(partnerships) == 0 {
    return nil, apierr.NotFound("partnership %s not found", partnershipID)
  }
  partnership := partnerships[0]
  if partnership.UserID != currentUserID {
    return nil, apierr.Forbidden("cannot leave a partnership that is not yours")
  }
  if partnership.Status != types.PartnershipStatusApproved {
    return nil, apierr.InvalidState("only approved partnerships can be left")
  }
  partnership.Status = types.PartnershipStatusLeft
  updated, err := ps.partnershipRepo.Update(ctx, nil, partnership)
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("update partnership: %w", err))
  }
  return updated, nil
}

func (ps *partnershipService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*types.Partnership, error) {
  partnerships, err := ps.partnershipRepo.GetByProjectIDs(ctx, nil, []uuid.UUID{projectID})
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("list partnerships: %w", err))
  }
  return partnerships, nil
}

func (ps *partnershipService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*types.Partnership, error) {
  partnerships, err := ps.partnershipRepo.GetByUserIDs(ctx, nil, []uuid.UUID{userID})
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("list partnerships: %w", err))
  }
  return partnerships, nil
}
