package types

import (
  "time"
  "github.com/google/uuid"
)

type UserRole string

const (
  UserRoleUser     UserRole = "user"
  UserRoleCreator  UserRole = "creator"
  UserRoleInvestor UserRole = "investor"
  UserRoleAdmin    UserRole = "admin"
)

type User struct {
  ID              uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  Email           string      `gorm:"uniqueIndex;not null;column:email" json:"email"`
  HashedPassword  string      `gorm:"not null;column:hashed_password" json:"-"`
  Nickname        string      `gorm:"column:nickname" json:"nickname"`
  Avatar          string      `gorm:"column:avatar" json:"avatar"`
  Bio             string      `gorm:"column:bio" json:"bio"`
  Skills          string      `gorm:"column:skills" json:"skills"`
  Experience      string      `gorm:"column:experience" json:"experience"`
  Role            UserRole    `gorm:"column:role;default:user" json:"role"`
  IsActive        bool        `gorm:"column:is_active;default:true" json:"is_active"`
  IsVerified      bool        `gorm:"column:is_verified;default:false" json:"is_verified"`
  CreatedAt       time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt       time.Time   `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
  return "user"
}

// UserBrief is the public profile snapshot embedded in conversation
// summaries and partnership listings.
type UserBrief struct {
  ID        uuid.UUID   `json:"id"`
  Nickname  string      `json:"nickname"`
  Avatar    string      `json:"avatar"`
  Role      UserRole    `json:"role"`
}

func (u *User) Brief() UserBrief {
  return UserBrief{
    ID:       u.ID,
    Nickname: u.Nickname,
    Avatar:   u.Avatar,
    Role:     u.Role,
  }
}
