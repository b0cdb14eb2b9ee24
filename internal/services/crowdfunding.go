package services

import (
  "context"
  "fmt"
  "time"
  "github.com/google/uuid"
  "github.com/shopspring/decimal"
  "gorm.io/datatypes"
  "gorm.io/gorm"
  "github.com/leopark123/ideahub/internal/apierr"
  "github.com/leopark123/ideahub/internal/logger"
  "github.com/leopark123/ideahub/internal/repos"
  "github.com/leopark123/ideahub/internal/types"
)

type CrowdfundingCreate struct {
  ProjectID     uuid.UUID          `json:"project_id" binding:"required"`
  TargetAmount  decimal.Decimal    `json:"target_amount" binding:"required"`
  MinInvestment decimal.Decimal    `json:"min_investment"`
  MaxInvestment *decimal.Decimal   `json:"max_investment"`
  StartTime     time.Time          `json:"start_time" binding:"required"`
  EndTime       time.Time          `json:"end_time" binding:"required"`
  RewardTiers   datatypes.JSON     `json:"reward_tiers"`
}

type CrowdfundingUpdate struct {
  TargetAmount  *decimal.Decimal   `json:"target_amount"`
  MinInvestment *decimal.Decimal   `json:"min_investment"`
  MaxInvestment *decimal.Decimal   `json:"max_investment"`
  StartTime     *time.Time         `json:"start_time"`
  EndTime       *time.Time         `json:"end_time"`
  RewardTiers   datatypes.JSON     `json:"reward_tiers"`
}

type CrowdfundingService interface {
  Create(ctx context.Context, currentUserID uuid.UUID, data CrowdfundingCreate) (*types.Crowdfunding, error)
  Get(ctx context.Context, crowdfundingID uuid.UUID) (*types.Crowdfunding, error)
  GetByProject(ctx context.Context, projectID uuid.UUID) (*types.Crowdfunding, error)
  ListActive(ctx context.Context) ([]*types.Crowdfunding, error)
  Update(ctx context.Context, crowdfundingID, currentUserID uuid.UUID, data CrowdfundingUpdate) (*types.Crowdfunding, error)
  Start(ctx context.Context, crowdfundingID, currentUserID uuid.UUID) (*types.Crowdfunding, error)
  Stats(crowdfunding *types.Crowdfunding) types.CrowdfundingStats
}

type crowdfundingService struct {
  db               *gorm.DB
  log              *logger.Logger
  crowdfundingRepo repos.CrowdfundingRepo
  projectRepo      repos.ProjectRepo
  cache            CacheService
}

func NewCrowdfundingService(
  db *gorm.DB,
  baseLog *logger.Logger,
  crowdfundingRepo repos.CrowdfundingRepo,
  projectRepo repos.ProjectRepo,
  cache CacheService,
) CrowdfundingService {
  serviceLog := baseLog.With("service", "CrowdfundingService")
  return &crowdfundingService{
    db:               db,
    log:              serviceLog,
    crowdfundingRepo: crowdfundingRepo,
    projectRepo:      projectRepo,
    cache:            cache,
  }
}

func (cs *crowdfundingService) Create(ctx context.Context, currentUserID uuid.UUID, data CrowdfundingCreate) (*types.Crowdfunding, error) {
  projects, err := cs.projectRepo.GetByIDs(ctx, nil, []uuid.UUID{data.ProjectID})
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("load project: %w", err))
  }
  if len(projects) == 0 {
    return nil, apierr.NotFound("project %s not found", data.ProjectID)
  }
  project := projects[0]
  if project.OwnerID != currentUserID {
    return nil, apierr.Forbidden("no permission to create a campaign for this project")
  }

  existing, err := cs.crowdfundingRepo.GetByProjectIDs(ctx, nil, []uuid.UUID{data.ProjectID})
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("load campaign: %w", err))
  }
  if len(existing) > 0 {
    return nil, apierr.Conflict("project %s already has a campaign", data.ProjectID)
  }

  startTime := data.StartTime.UTC()
  endTime := data.EndTime.UTC()
  if !endTime.After(startTime) {
    return nil, apierr.InvalidRange("end time must be after start time")
  }
  if data.TargetAmount.LessThanOrEqual(decimal.Zero) {
    return nil, apierr.InvalidRange("target amount must be positive")
  }

  minInvestment := data.MinInvestment
  if minInvestment.IsZero() {
    minInvestment = decimal.NewFromInt(100)
  }

  crowdfunding := &types.Crowdfunding{
    ID:            uuid.New(),
    ProjectID:     data.ProjectID,
    TargetAmount:  data.TargetAmount,
    CurrentAmount: decimal.Zero,
    MinInvestment: minInvestment,
    MaxInvestment: data.MaxInvestment,
    StartTime:     startTime,
    EndTime:       endTime,
    RewardTiers:   data.RewardTiers,
    Status:        types.CrowdfundingStatusPending,
  }

  // Campaign creation also moves the project into funding; both writes
  // commit together.
  if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, err := cs.crowdfundingRepo.Create(ctx, tx, []*types.Crowdfunding{crowdfunding}); err != nil {
      return fmt.Errorf("create campaign: %w", err)
    }
    project.Status = types.ProjectStatusFunding
    if _, err := cs.projectRepo.Update(ctx, tx, project); err != nil {
      return fmt.Errorf("update project status: %w", err)
    }
    return nil
  }); err != nil {
    cs.log.Error("Create campaign failed", "error", err, "project_id", data.ProjectID)
    return nil, apierr.Internal(err)
  }
  cs.cache.Delete(ctx, CacheKeyProject(data.ProjectID.String()))
  return crowdfunding, nil
}

func (cs *crowdfundingService) Get(ctx context.Context, crowdfundingID uuid.UUID) (*types.Crowdfunding, error) {
  var cached types.Crowdfunding
  if cs.cache.GetJSON(ctx, CacheKeyCrowdfunding(crowdfundingID.String()), &cached) {
    return &cached, nil
  }
  crowdfundings, err := cs.crowdfundingRepo.GetByIDs(ctx, nil, []uuid.UUID{crowdfundingID})
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("load campaign: %w", err))
  }
  if len(crowdfundings) == 0 {
    return nil, apierr.NotFound("campaign %s not found", crowdfundingID)
  }
  // Totals move with every settlement, so only a short TTL is safe.
  cs.cache.SetJSON(ctx, CacheKeyCrowdfunding(crowdfundingID.String()), crowdfundings[0], CacheTTLShort)
  return crowdfundings[0], nil
}

func (cs *crowdfundingService) GetByProject(ctx context.Context, projectID uuid.UUID) (*types.Crowdfunding, error) {
  crowdfundings, err := cs.crowdfundingRepo.GetByProjectIDs(ctx, nil, []uuid.UUID{projectID})
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("load campaign: %w", err))
  }
  if len(crowdfundings) == 0 {
    return nil, apierr.NotFound("project %s has no campaign", projectID)
  }
  return crowdfundings[0], nil
}

func (cs *crowdfundingService) ListActive(ctx context.Context) ([]*types.Crowdfunding, error) {
  crowdfundings, err := cs.crowdfundingRepo.ListActive(ctx, nil)
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("list active campaigns: %w", err))
  }
  return crowdfundings, nil
}

func (cs *crowdfundingService) Update(ctx context.Context, crowdfundingID, currentUserID uuid.UUID, data CrowdfundingUpdate) (*types.Crowdfunding, error) {
  crowdfunding, err := cs.getOwned(ctx, crowdfundingID, currentUserID)
  if err != nil {
    return nil, err
  }
  if crowdfunding.Status == types.CrowdfundingStatusActive {
    return nil, apierr.InvalidState("an active campaign cannot be modified")
  }

  if data.TargetAmount != nil {
    crowdfunding.TargetAmount = *data.TargetAmount
  }
  if data.MinInvestment != nil {
    crowdfunding.MinInvestment = *data.MinInvestment
  }
  if data.MaxInvestment != nil {
    crowdfunding.MaxInvestment = data.MaxInvestment
  }
  if data.StartTime != nil {
    crowdfunding.StartTime = data.StartTime.UTC()
  }
  if data.EndTime != nil {
    crowdfunding.EndTime = data.EndTime.UTC()
  }
  if data.RewardTiers != nil {
    crowdfunding.RewardTiers = data.RewardTiers
  }
  if !crowdfunding.EndTime.After(crowdfunding.StartTime) {
    return nil, apierr.InvalidRange("end time must be after start time")
  }
  if crowdfunding.TargetAmount.LessThanOrEqual(decimal.Zero) {
    return nil, apierr.InvalidRange("target amount must be positive")
  }
  if crowdfunding.MinInvestment.LessThanOrEqual(decimal.Zero) {
    return nil, apierr.InvalidRange("minimum investment must be positive")
  }

  updated, err := cs.crowdfundingRepo.Update(ctx, nil, crowdfunding)
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("update campaign: %w", err))
  }
  cs.cache.Delete(ctx, CacheKeyCrowdfunding(crowdfundingID.String()))
  return updated, nil
}

func (cs *crowdfundingService) Start(ctx context.Context, crowdfundingID, currentUserID uuid.UUID) (*types.Crowdfunding, error) {
  crowdfunding, err := cs.getOwned(ctx, crowdfundingID, currentUserID)
  if err != nil {
    return nil, err
  }
  if crowdfunding.Status != types.CrowdfundingStatusPending {
    return nil, apierr.InvalidState("only a pending campaign can be started")
  }

  // The campaign clock begins at activation: the scheduled start time is
  // overwritten with the actual activation moment.
  crowdfunding.Status = types.CrowdfundingStatusActive
  crowdfunding.StartTime = time.Now().UTC()

  updated, err := cs.crowdfundingRepo.Update(ctx, nil, crowdfunding)
  if err != nil {
    cs.log.Error("Start campaign failed", "error", err, "crowdfunding_id", crowdfundingID)
    return nil, apierr.Internal(fmt.Errorf("start campaign: %w", err))
  }
  cs.cache.Delete(ctx, CacheKeyCrowdfunding(crowdfundingID.String()))
  return updated, nil
}

func (cs *crowdfundingService) Stats(crowdfunding *types.Crowdfunding) types.CrowdfundingStats {
  now := time.Now().UTC()
  daysRemaining := 0
  if crowdfunding.EndTime.After(now) {
    daysRemaining = int(crowdfunding.EndTime.Sub(now).Hours() / 24)
  }

  progress := 0.0
  if crowdfunding.TargetAmount.GreaterThan(decimal.Zero) {
    progress, _ = crowdfunding.CurrentAmount.
      Div(crowdfunding.TargetAmount).
      Mul(decimal.NewFromInt(100)).
      Round(2).
      Float64()
  }

  return types.CrowdfundingStats{
    TotalRaised:        crowdfunding.CurrentAmount,
    InvestorCount:      crowdfunding.InvestorCount,
    DaysRemaining:      daysRemaining,
    ProgressPercentage: progress,
  }
}

func (cs *crowdfundingService) getOwned(ctx context.Context, crowdfundingID, currentUserID uuid.UUID) (*types.Crowdfunding, error) {
  crowdfundings, err := cs.crowdfundingRepo.GetByIDs(ctx, nil, []uuid.UUID{crowdfundingID})
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("load campaign: %w", err))
  }
  if len(crowdfundings) == 0 {
    return nil, apierr.NotFound("campaign %s not found", crowdfundingID)
  }
  crowdfunding := crowdfundings[0]

  projects, err := cs.projectRepo.GetByIDs(ctx, nil, []uuid.UUID{crowdfunding.ProjectID})
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("load project: %w", err))
  }
  if len(projects) == 0 {
    return nil, apierr.NotFound("project %s not found", crowdfunding.ProjectID)
  }
  if projects[0].OwnerID != currentUserID {
    return nil, apierr.Forbidden("no permission to manage this campaign")
  }
  return crowdfunding, nil
}
