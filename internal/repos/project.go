package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/leopark123/ideahub/internal/logger"
  "github.com/leopark123/ideahub/internal/types"
)

// ProjectFilter narrows List. Zero values mean "no filter".
type ProjectFilter struct {
  Category  types.ProjectCategory
  Status    types.ProjectStatus
  Keyword   string
  OwnerID   uuid.UUID
}

type ProjectRepo interface {
  Create(ctx context.Context, tx *gorm.DB, projects []*types.Project) ([]*types.Project, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, projectIDs []uuid.UUID) ([]*types.Project, error)
  List(ctx context.Context, tx *gorm.DB, filter ProjectFilter, page, pageSize int) ([]*types.Project, int64, error)
  Update(ctx context.Context, tx *gorm.DB, project *types.Project) (*types.Project, error)
  Delete(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) error
}

type projectRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewProjectRepo(db *gorm.DB, baseLog *logger.Logger) ProjectRepo {
  repoLog := baseLog.With("repo", "ProjectRepo")
  return &projectRepo{db: db, log: repoLog}
}

func (pr *projectRepo) Create(ctx context.Context, tx *gorm.DB, projects []*types.Project) ([]*types.Project, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  if len(projects) == 0 {
    return []*types.Project{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&projects).Error; err != nil {
    return nil, err
  }
  return projects, nil
}

func (pr *projectRepo) GetByIDs(ctx context.Context, tx *gorm.DB, projectIDs []uuid.UUID) ([]*types.Project, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  var results []*types.Project
  if len(projectIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("id IN ?", projectIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *projectRepo) List(ctx context.Context, tx *gorm.DB, filter ProjectFilter, page, pageSize int) ([]*types.Project, int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  if page < 1 {
    page = 1
  }
  if pageSize < 1 {
    pageSize = 10
  }

  query := transaction.WithContext(ctx).Model(&types.Project{})
  if filter.Category != "" {
    query = query.Where("category = ?", filter.Category)
  }
  if filter.Status != "" {
    query = query.Where("status = ?", filter.Status)
  }
  if filter.Keyword != "" {
    like := "%" + filter.Keyword + "%"
    query = query.Where("title LIKE ? OR description LIKE ?", like, like)
  }
  if filter.OwnerID != uuid.Nil {
    query = query.Where("owner_id = ?", filter.OwnerID)
  }

  var total int64
  if err := query.Count(&total).Error; err != nil {
    return nil, 0, err
  }

  var results []*types.Project
  if err := query.
    Order("created_at DESC").
    Offset((page - 1) * pageSize).
    Limit(pageSize).
    Find(&results).Error; err != nil {
    return nil, 0, err
  }
  return results, total, nil
}

func (pr *projectRepo) Update(ctx context.Context, tx *gorm.DB, project *types.Project) (*types.Project, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  if err := transaction.WithContext(ctx).Save(project).Error; err != nil {
    return nil, err
  }
  return project, nil
}

func (pr *projectRepo) Delete(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  return transaction.WithContext(ctx).
    Where("id = ?", projectID).
    Delete(&types.Project{}).Error
}
