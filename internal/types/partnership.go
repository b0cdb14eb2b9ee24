package types

import (
  "time"
  "github.com/google/uuid"
)

type PartnershipStatus string

const (
  PartnershipStatusPending  PartnershipStatus = "pending"
  PartnershipStatusApproved PartnershipStatus = "approved"
  PartnershipStatusRejected PartnershipStatus = "rejected"
  PartnershipStatusLeft     PartnershipStatus = "left"
)

type PartnershipRole string

const (
  PartnershipRoleFounder   PartnershipRole = "founder"
  PartnershipRoleCoFounder PartnershipRole = "co_founder"
  PartnershipRolePartner   PartnershipRole = "partner"
  PartnershipRoleAdvisor   PartnershipRole = "advisor"
  PartnershipRoleMember    PartnershipRole = "member"
)

type Partnership struct {
  ID                  uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
  ProjectID           uuid.UUID           `gorm:"type:uuid;not null;index;column:project_id" json:"project_id"`
  UserID              uuid.UUID           `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
  Role                PartnershipRole     `gorm:"column:role;default:member" json:"role"`
  Position            string              `gorm:"column:position" json:"position"`
  Responsibilities    string              `gorm:"column:responsibilities" json:"responsibilities"`
  EquityShare         string              `gorm:"column:equity_share" json:"equity_share"`
  ApplicationMessage  string              `gorm:"column:application_message" json:"application_message"`
  Status              PartnershipStatus   `gorm:"column:status;default:pending" json:"status"`
  CreatedAt           time.Time           `gorm:"not null" json:"created_at"`
  UpdatedAt           time.Time           `gorm:"not null" json:"updated_at"`
}

func (Partnership) TableName() string {
  return "partnership"
}
