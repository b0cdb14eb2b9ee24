package services

import (
  "context"
  "fmt"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/leopark123/ideahub/internal/apierr"
  "github.com/leopark123/ideahub/internal/logger"
  "github.com/leopark123/ideahub/internal/repos"
  "github.com/leopark123/ideahub/internal/types"
)

// UserProfileUpdate carries the mutable profile fields. Nil means "leave
// unchanged".
type UserProfileUpdate struct {
  Nickname   *string   `json:"nickname"`
  Avatar     *string   `json:"avatar"`
  Bio        *string   `json:"bio"`
  Skills     *string   `json:"skills"`
  Experience *string   `json:"experience"`
}

type UserService interface {
  GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error)
  UpdateProfile(ctx context.Context, userID uuid.UUID, update UserProfileUpdate) (*types.User, error)
}

type userService struct {
  db       *gorm.DB
  log      *logger.Logger
  userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, baseLog *logger.Logger, userRepo repos.UserRepo) UserService {
  serviceLog := baseLog.With("service", "UserService")
  return &userService{db: db, log: serviceLog, userRepo: userRepo}
}

func (us *userService) GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
  users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("load user: %w", err))
  }
  if len(users) == 0 {
    return nil, apierr.NotFound("user %s not found", userID)
  }
  return users[0], nil
}

func (us *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, update UserProfileUpdate) (*types.User, error) {
  user, err := us.GetByID(ctx, userID)
  if err != nil {
    return nil, err
  }
  if update.Nickname != nil {
    user.Nickname = *update.Nickname
  }
  if update.Avatar != nil {
    user.Avatar = *update.Avatar
  }
  if update.Bio != nil {
    user.Bio = *update.Bio
  }
  if update.Skills != nil {
    user.Skills = *update.Skills
  }
  if update.Experience != nil {
    user.Experience = *update.Experience
  }
  updated, err := us.userRepo.Update(ctx, nil, user)
  if err != nil {
    us.log.Error("UpdateProfile failed", "error", err, "user_id", userID)
    return nil, apierr.Internal(fmt.Errorf("update user: %w", err))
  }
  return updated, nil
}
