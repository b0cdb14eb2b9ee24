package types

import (
  "time"
  "github.com/google/uuid"
  "github.com/shopspring/decimal"
)

type InvestmentStatus string

const (
  InvestmentStatusPending   InvestmentStatus = "pending"
  InvestmentStatusPaid      InvestmentStatus = "paid"
  InvestmentStatusConfirmed InvestmentStatus = "confirmed"
  InvestmentStatusRefunded  InvestmentStatus = "refunded"
  InvestmentStatusCancelled InvestmentStatus = "cancelled"
)

type PaymentMethod string

const (
  PaymentMethodAlipay PaymentMethod = "alipay"
  PaymentMethodWechat PaymentMethod = "wechat"
  PaymentMethodBank   PaymentMethod = "bank"
)

// Investment is a single pledge. TransactionID is set exactly once, inside
// the settlement transaction that moves the row from pending to paid.
type Investment struct {
  ID              uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
  InvestorID      uuid.UUID          `gorm:"type:uuid;not null;index;column:investor_id" json:"investor_id"`
  CrowdfundingID  uuid.UUID          `gorm:"type:uuid;not null;index;column:crowdfunding_id" json:"crowdfunding_id"`
  Amount          decimal.Decimal    `gorm:"type:numeric(10,2);not null;column:amount" json:"amount"`
  RewardTierID    *string            `gorm:"column:reward_tier_id" json:"reward_tier_id,omitempty"`
  PaymentMethod   PaymentMethod      `gorm:"column:payment_method" json:"payment_method"`
  TransactionID   *string            `gorm:"column:transaction_id" json:"transaction_id,omitempty"`
  Status          InvestmentStatus   `gorm:"column:status;default:pending;index" json:"status"`
  Notes           string             `gorm:"column:notes" json:"notes,omitempty"`
  CreatedAt       time.Time          `gorm:"not null" json:"created_at"`
  UpdatedAt       time.Time          `gorm:"not null" json:"updated_at"`
}

func (Investment) TableName() string {
  return "investment"
}
