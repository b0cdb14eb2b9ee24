package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/leopark123/ideahub/internal/logger"
  "github.com/leopark123/ideahub/internal/types"
)

type PartnershipRepo interface {
  Create(ctx context.Context, tx *gorm.DB, partnerships []*types.Partnership) ([]*types.Partnership, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, partnershipIDs []uuid.UUID) ([]*types.Partnership, error)
  GetByUserAndProject(ctx context.Context, tx *gorm.DB, userID, projectID uuid.UUID) (*types.Partnership, error)
  GetByProjectIDs(ctx context.Context, tx *gorm.DB, projectIDs []uuid.UUID) ([]*types.Partnership, error)
  GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.Partnership, error)
  Update(ctx context.Context, tx *gorm.DB, partnership *types.Partnership) (*types.Partnership, error)
}

type partnershipRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPartnershipRepo(db *gorm.DB, baseLog *logger.Logger) PartnershipRepo {
  repoLog := baseLog.With("repo", "PartnershipRepo")
  return &partnershipRepo{db: db, log: repoLog}
}

func (pr *partnershipRepo) Create(ctx context.Context, tx *gorm.DB, partnerships []*types.Partnership) ([]*types.Partnership, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  if len(partnerships) == 0 {
    return []*types.Partnership{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&partnerships).Error; err != nil {
    return nil, err
  }
  return partnerships, nil
}

func (pr *partnershipRepo) GetByIDs(ctx context.Context, tx *gorm.DB, partnershipIDs []uuid.UUID) ([]*types.Partnership, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  var results []*types.Partnership
  if len(partnershipIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("id IN ?", partnershipIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *partnershipRepo) GetByUserAndProject(ctx context.Context, tx *gorm.DB, userID, projectID uuid.UUID) (*types.Partnership, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  var results []*types.Partnership
  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND project_id = ?", userID, projectID).
    Limit(1).
    Find(&results).Error; err != nil {
    return nil, err
  }
  if len(results) == 0 {
    return nil, nil
  }
  return results[0], nil
}

func (pr *partnershipRepo) GetByProjectIDs(ctx context.Context, tx *gorm.DB, projectIDs []uuid.UUID) ([]*types.Partnership, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  var results []*types.Partnership
  if len(projectIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("project_id IN ?", projectIDs).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *partnershipRepo) GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.Partnership, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  var results []*types.Partnership
  if len(userIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("user_id IN ?", userIDs).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *partnershipRepo) Update(ctx context.Context, tx *gorm.DB, partnership *types.Partnership) (*types.Partnership, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  if err := transaction.WithContext(ctx).Save(partnership).Error; err != nil {
    return nil, err
  }
  return partnership, nil
}
