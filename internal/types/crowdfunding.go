package types

import (
  "time"
  "github.com/google/uuid"
  "github.com/shopspring/decimal"
  "gorm.io/datatypes"
)

type CrowdfundingStatus string

const (
  CrowdfundingStatusPending   CrowdfundingStatus = "pending"
  CrowdfundingStatusActive    CrowdfundingStatus = "active"
  CrowdfundingStatusSuccess   CrowdfundingStatus = "success"
  CrowdfundingStatusFailed    CrowdfundingStatus = "failed"
  CrowdfundingStatusCancelled CrowdfundingStatus = "cancelled"
)

// Crowdfunding is the campaign aggregate. CurrentAmount and InvestorCount
// are derived from paid investments and mutated only inside the settlement
// transaction in InvestmentService.
type Crowdfunding struct {
  ID             uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
  ProjectID      uuid.UUID            `gorm:"type:uuid;uniqueIndex;not null;column:project_id" json:"project_id"`
  TargetAmount   decimal.Decimal      `gorm:"type:numeric(12,2);not null;column:target_amount" json:"target_amount"`
  CurrentAmount  decimal.Decimal      `gorm:"type:numeric(12,2);not null;column:current_amount" json:"current_amount"`
  MinInvestment  decimal.Decimal      `gorm:"type:numeric(10,2);not null;column:min_investment" json:"min_investment"`
  MaxInvestment  *decimal.Decimal     `gorm:"type:numeric(10,2);column:max_investment" json:"max_investment,omitempty"`
  StartTime      time.Time            `gorm:"not null;column:start_time" json:"start_time"`
  EndTime        time.Time            `gorm:"not null;column:end_time" json:"end_time"`
  RewardTiers    datatypes.JSON       `gorm:"column:reward_tiers" json:"reward_tiers,omitempty"`
  Status         CrowdfundingStatus   `gorm:"column:status;default:pending;index" json:"status"`
  InvestorCount  int                  `gorm:"column:investor_count;not null;default:0" json:"investor_count"`
  CreatedAt      time.Time            `gorm:"not null" json:"created_at"`
  UpdatedAt      time.Time            `gorm:"not null" json:"updated_at"`
}

func (Crowdfunding) TableName() string {
  return "crowdfunding"
}

// RewardTier is one entry of the Crowdfunding.RewardTiers JSON column.
type RewardTier struct {
  ID           string            `json:"id"`
  Amount       decimal.Decimal   `json:"amount"`
  Title        string            `json:"title"`
  Description  string            `json:"description"`
  Limit        int               `json:"limit"`
  Claimed      int               `json:"claimed"`
}

// CrowdfundingStats is the derived read model for a campaign.
type CrowdfundingStats struct {
  TotalRaised         decimal.Decimal   `json:"total_raised"`
  InvestorCount       int               `json:"investor_count"`
  DaysRemaining       int               `json:"days_remaining"`
  ProgressPercentage  float64           `json:"progress_percentage"`
}
