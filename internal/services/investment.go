package services

import (
  "context"
  "fmt"
  "github.com/google/uuid"
  "github.com/shopspring/decimal"
  "gorm.io/gorm"
  "github.com/leopark123/ideahub/internal/apierr"
  "github.com/leopark123/ideahub/internal/logger"
  "github.com/leopark123/ideahub/internal/repos"
  "github.com/leopark123/ideahub/internal/types"
)

type InvestmentCreate struct {
  CrowdfundingID uuid.UUID             `json:"crowdfunding_id" binding:"required"`
  Amount         decimal.Decimal       `json:"amount" binding:"required"`
  RewardTierID   *string               `json:"reward_tier_id"`
  PaymentMethod  types.PaymentMethod   `json:"payment_method"`
}

type InvestmentList struct {
  Items    []*types.Investment   `json:"items"`
  Total    int64                 `json:"total"`
  Page     int                   `json:"page"`
  PageSize int                   `json:"page_size"`
}

type InvestmentService interface {
  Create(ctx context.Context, investorID uuid.UUID, data InvestmentCreate) (*types.Investment, error)
  // Confirm settles a pending investment: the payment callback hands over
  // the external transaction id, and the investment row and its campaign's
  // totals are updated in one atomic transaction.
  Confirm(ctx context.Context, investmentID uuid.UUID, transactionID string) (*types.Investment, error)
  Get(ctx context.Context, investmentID uuid.UUID) (*types.Investment, error)
  ListByInvestor(ctx context.Context, investorID uuid.UUID, page, pageSize int) (*InvestmentList, error)
}

type investmentService struct {
  db               *gorm.DB
  log              *logger.Logger
  investmentRepo   repos.InvestmentRepo
  crowdfundingRepo repos.CrowdfundingRepo
  cache            CacheService
}

func NewInvestmentService(
  db *gorm.DB,
  baseLog *logger.Logger,
  investmentRepo repos.InvestmentRepo,
  crowdfundingRepo repos.CrowdfundingRepo,
  cache CacheService,
) InvestmentService {
  serviceLog := baseLog.With("service", "InvestmentService")
  return &investmentService{
    db:               db,
    log:              serviceLog,
    investmentRepo:   investmentRepo,
    crowdfundingRepo: crowdfundingRepo,
    cache:            cache,
  }
}

// Create records a pending pledge. Amount bounds are validated against the
// campaign's bounds at this moment only; Confirm never re-checks them.
// Pledging reserves nothing on the campaign side.
func (is *investmentService) Create(ctx context.Context, investorID uuid.UUID, data InvestmentCreate) (*types.Investment, error) {
  crowdfundings, err := is.crowdfundingRepo.GetByIDs(ctx, nil, []uuid.UUID{data.CrowdfundingID})
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("load campaign: %w", err))
  }
  if len(crowdfundings) == 0 {
    return nil, apierr.NotFound("campaign %s not found", data.CrowdfundingID)
  }
  crowdfunding := crowdfundings[0]

  if crowdfunding.Status != types.CrowdfundingStatusActive {
    return nil, apierr.InvalidState("campaign is not open for investment")
  }
  // Amounts must be positive regardless of the campaign's configured
  // minimum; a settled non-positive pledge would move totals backwards.
  if data.Amount.LessThanOrEqual(decimal.Zero) {
    return nil, apierr.OutOfRange("investment amount must be positive")
  }
  if data.Amount.LessThan(crowdfunding.MinInvestment) {
    return nil, apierr.OutOfRange("minimum investment is %s", crowdfunding.MinInvestment.String())
  }
  if crowdfunding.MaxInvestment != nil && data.Amount.GreaterThan(*crowdfunding.MaxInvestment) {
    return nil, apierr.OutOfRange("maximum investment is %s", crowdfunding.MaxInvestment.String())
  }

  investment := &types.Investment{
    ID:             uuid.New(),
    InvestorID:     investorID,
    CrowdfundingID: data.CrowdfundingID,
    Amount:         data.Amount,
    RewardTierID:   data.RewardTierID,
    PaymentMethod:  data.PaymentMethod,
    Status:         types.InvestmentStatusPending,
  }
  if _, err := is.investmentRepo.Create(ctx, nil, []*types.Investment{investment}); err != nil {
    is.log.Error("Create investment failed", "error", err)
    return nil, apierr.Internal(fmt.Errorf("create investment: %w", err))
  }
  return investment, nil
}

// Confirm applies a payment confirmation atomically to the investment row
// and its campaign's totals. Both rows are locked for the duration of the
// transaction, so concurrent confirmations against the same campaign
// serialize their increments and a second confirmation of the same
// investment hits the pending-only guard. Any failure rolls the whole
// transaction back, leaving the investment pending and retry-safe.
func (is *investmentService) Confirm(ctx context.Context, investmentID uuid.UUID, transactionID string) (*types.Investment, error) {
  var confirmed *types.Investment
  var crowdfundingID uuid.UUID

  err := is.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    investment, err := is.investmentRepo.GetByIDForUpdate(ctx, tx, investmentID)
    if err != nil {
      return fmt.Errorf("load investment: %w", err)
    }
    if investment == nil {
      return apierr.NotFound("investment %s not found", investmentID)
    }
    if investment.Status != types.InvestmentStatusPending {
      return apierr.InvalidState("investment has already been processed")
    }

    crowdfunding, err := is.crowdfundingRepo.GetByIDForUpdate(ctx, tx, investment.CrowdfundingID)
    if err != nil {
      return fmt.Errorf("load campaign: %w", err)
    }
    if crowdfunding == nil {
      return apierr.NotFound("campaign %s not found", investment.CrowdfundingID)
    }

    investment.Status = types.InvestmentStatusPaid
    investment.TransactionID = &transactionID
    if _, err := is.investmentRepo.Update(ctx, tx, investment); err != nil {
      return fmt.Errorf("update investment: %w", err)
    }

    crowdfunding.CurrentAmount = crowdfunding.CurrentAmount.Add(investment.Amount)
    crowdfunding.InvestorCount++
    if _, err := is.crowdfundingRepo.Update(ctx, tx, crowdfunding); err != nil {
      return fmt.Errorf("update campaign totals: %w", err)
    }

    confirmed = investment
    crowdfundingID = crowdfunding.ID
    return nil
  })
  if err != nil {
    is.log.Warn("Confirm investment did not commit", "error", err, "investment_id", investmentID)
    return nil, apierr.From(err)
  }

  is.cache.Delete(ctx, CacheKeyCrowdfunding(crowdfundingID.String()))
  return confirmed, nil
}

func (is *investmentService) Get(ctx context.Context, investmentID uuid.UUID) (*types.Investment, error) {
  investments, err := is.investmentRepo.GetByIDs(ctx, nil, []uuid.UUID{investmentID})
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("load investment: %w", err))
  }
  if len(investments) == 0 {
    return nil, apierr.NotFound("investment %s not found", investmentID)
  }
  return investments[0], nil
}

func (is *investmentService) ListByInvestor(ctx context.Context, investorID uuid.UUID, page, pageSize int) (*InvestmentList, error) {
  items, total, err := is.investmentRepo.GetByInvestor(ctx, nil, investorID, page, pageSize)
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("list investments: %w", err))
  }
  if page < 1 {
    page = 1
  }
  if pageSize < 1 {
    pageSize = 10
  }
  return &InvestmentList{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}
