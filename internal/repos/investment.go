package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/leopark123/ideahub/internal/logger"
  "github.com/leopark123/ideahub/internal/types"
)

type InvestmentRepo interface {
  Create(ctx context.Context, tx *gorm.DB, investments []*types.Investment) ([]*types.Investment, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, investmentIDs []uuid.UUID) ([]*types.Investment, error)
  // GetByIDForUpdate locks the investment row so that two settlements of the
  // same pledge serialize on the pending-status check.
  GetByIDForUpdate(ctx context.Context, tx *gorm.DB, investmentID uuid.UUID) (*types.Investment, error)
  GetByInvestor(ctx context.Context, tx *gorm.DB, investorID uuid.UUID, page, pageSize int) ([]*types.Investment, int64, error)
  Update(ctx context.Context, tx *gorm.DB, investment *types.Investment) (*types.Investment, error)
}

type investmentRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewInvestmentRepo(db *gorm.DB, baseLog *logger.Logger) InvestmentRepo {
  repoLog := baseLog.With("repo", "InvestmentRepo")
  return &investmentRepo{db: db, log: repoLog}
}

func (ir *investmentRepo) Create(ctx context.Context, tx *gorm.DB, investments []*types.Investment) ([]*types.Investment, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }
  if len(investments) == 0 {
    return []*types.Investment{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&investments).Error; err != nil {
    return nil, err
  }
  return investments, nil
}

func (ir *investmentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, investmentIDs []uuid.UUID) ([]*types.Investment, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }
  var results []*types.Investment
  if len(investmentIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("id IN ?", investmentIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ir *investmentRepo) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, investmentID uuid.UUID) (*types.Investment, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }
  var results []*types.Investment
  if err := transaction.WithContext(ctx).
    Clauses(clause.Locking{Strength: "UPDATE"}).
    Where("id = ?", investmentID).
    Limit(1).
    Find(&results).Error; err != nil {
    return nil, err
  }
  if len(results) == 0 {
    return nil, nil
  }
  return results[0], nil
}

func (ir *investmentRepo) GetByInvestor(ctx context.Context, tx *gorm.DB, investorID uuid.UUID, page, pageSize int) ([]*types.Investment, int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }
  if page < 1 {
    page = 1
  }
  if pageSize < 1 {
    pageSize = 10
  }

  query := transaction.WithContext(ctx).
    Model(&types.Investment{}).
    Where("investor_id = ?", investorID)

  var total int64
  if err := query.Count(&total).Error; err != nil {
    return nil, 0, err
  }

  var results []*types.Investment
  if err := query.
    Order("created_at DESC").
    Offset((page - 1) * pageSize).
    Limit(pageSize).
    Find(&results).Error; err != nil {
    return nil, 0, err
  }
  return results, total, nil
}

func (ir *investmentRepo) Update(ctx context.Context, tx *gorm.DB, investment *types.Investment) (*types.Investment, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }
  if err := transaction.WithContext(ctx).Save(investment).Error; err != nil {
    return nil, err
  }
  return investment, nil
}
