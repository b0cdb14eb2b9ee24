package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/leopark123/ideahub/internal/logger"
  "github.com/leopark123/ideahub/internal/types"
)

type CrowdfundingRepo interface {
  Create(ctx context.Context, tx *gorm.DB, crowdfundings []*types.Crowdfunding) ([]*types.Crowdfunding, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, crowdfundingIDs []uuid.UUID) ([]*types.Crowdfunding, error)
  // GetByIDForUpdate loads one campaign row under a row-level lock. Must be
  // called with a tx that belongs to an open transaction; the lock is held
  // until that transaction commits or rolls back.
  GetByIDForUpdate(ctx context.Context, tx *gorm.DB, crowdfundingID uuid.UUID) (*types.Crowdfunding, error)
  GetByProjectIDs(ctx context.Context, tx *gorm.DB, projectIDs []uuid.UUID) ([]*types.Crowdfunding, error)
  ListActive(ctx context.Context, tx *gorm.DB) ([]*types.Crowdfunding, error)
  Update(ctx context.Context, tx *gorm.DB, crowdfunding *types.Crowdfunding) (*types.Crowdfunding, error)
}

type crowdfundingRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCrowdfundingRepo(db *gorm.DB, baseLog *logger.Logger) CrowdfundingRepo {
  repoLog := baseLog.With("repo", "CrowdfundingRepo")
  return &crowdfundingRepo{db: db, log: repoLog}
}

func (cr *crowdfundingRepo) Create(ctx context.Context, tx *gorm.DB, crowdfundings []*types.Crowdfunding) ([]*types.Crowdfunding, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  if len(crowdfundings) == 0 {
    return []*types.Crowdfunding{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&crowdfundings).Error; err != nil {
    return nil, err
  }
  return crowdfundings, nil
}

func (cr *crowdfundingRepo) GetByIDs(ctx context.Context, tx *gorm.DB, crowdfundingIDs []uuid.UUID) ([]*types.Crowdfunding, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  var results []*types.Crowdfunding
  if len(crowdfundingIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("id IN ?", crowdfundingIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (cr *crowdfundingRepo) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, crowdfundingID uuid.UUID) (*types.Crowdfunding, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  var results []*types.Crowdfunding
  if err := transaction.WithContext(ctx).
    Clauses(clause.Locking{Strength: "UPDATE"}).
    Where("id = ?", crowdfundingID).
    Limit(1).
    Find(&results).Error; err != nil {
    return nil, err
  }
  if len(results) == 0 {
    return nil, nil
  }
  return results[0], nil
}

func (cr *crowdfundingRepo) GetByProjectIDs(ctx context.Context, tx *gorm.DB, projectIDs []uuid.UUID) ([]*types.Crowdfunding, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  var results []*types.Crowdfunding
  if len(projectIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("project_id IN ?", projectIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (cr *crowdfundingRepo) ListActive(ctx context.Context, tx *gorm.DB) ([]*types.Crowdfunding, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  var results []*types.Crowdfunding
  if err := transaction.WithContext(ctx).
    Where("status = ?", types.CrowdfundingStatusActive).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (cr *crowdfundingRepo) Update(ctx context.Context, tx *gorm.DB, crowdfunding *types.Crowdfunding) (*types.Crowdfunding, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  if err := transaction.WithContext(ctx).Save(crowdfunding).Error; err != nil {
    return nil, err
  }
  return crowdfunding, nil
}
