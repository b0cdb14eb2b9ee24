package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
)

type ProjectStatus string

const (
  ProjectStatusDraft     ProjectStatus = "draft"
  ProjectStatusPending   ProjectStatus = "pending"
  ProjectStatusActive    ProjectStatus = "active"
  ProjectStatusFunding   ProjectStatus = "funding"
  ProjectStatusFunded    ProjectStatus = "funded"
  ProjectStatusFailed    ProjectStatus = "failed"
  ProjectStatusCompleted ProjectStatus = "completed"
  ProjectStatusArchived  ProjectStatus = "archived"
)

type ProjectCategory string

const (
  ProjectCategoryTech          ProjectCategory = "tech"
  ProjectCategoryArt           ProjectCategory = "art"
  ProjectCategoryEducation     ProjectCategory = "education"
  ProjectCategoryHealth        ProjectCategory = "health"
  ProjectCategorySocial        ProjectCategory = "social"
  ProjectCategoryEntertainment ProjectCategory = "entertainment"
  ProjectCategoryFinance       ProjectCategory = "finance"
  ProjectCategoryOther         ProjectCategory = "other"
)

type Project struct {
  ID              uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
  OwnerID         uuid.UUID         `gorm:"type:uuid;not null;index;column:owner_id" json:"owner_id"`
  Title           string            `gorm:"not null;column:title" json:"title"`
  Subtitle        string            `gorm:"column:subtitle" json:"subtitle"`
  Description     string            `gorm:"not null;column:description" json:"description"`
  Category        ProjectCategory   `gorm:"column:category;default:other" json:"category"`
  CoverImage      string            `gorm:"column:cover_image" json:"cover_image"`
  Images          datatypes.JSON    `gorm:"column:images" json:"images"`
  VideoURL        string            `gorm:"column:video_url" json:"video_url"`
  RequiredSkills  datatypes.JSON    `gorm:"column:required_skills" json:"required_skills"`
  TeamSize        int               `gorm:"column:team_size;default:1" json:"team_size"`
  Status          ProjectStatus     `gorm:"column:status;default:draft;index" json:"status"`
  ViewCount       int               `gorm:"column:view_count;default:0" json:"view_count"`
  LikeCount       int               `gorm:"column:like_count;default:0" json:"like_count"`
  CreatedAt       time.Time         `gorm:"not null" json:"created_at"`
  UpdatedAt       time.Time         `gorm:"not null" json:"updated_at"`
}

func (Project) TableName() string {
  return "project"
}
