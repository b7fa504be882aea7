package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/gradpath/gradpath-backend/internal/logger"
  "github.com/gradpath/gradpath-backend/internal/types"
)

type CourseRepo interface {
  Create(ctx context.Context, tx *gorm.DB, courses []*types.Course) ([]*types.Course, error)
  Update(ctx context.Context, tx *gorm.DB, courses []*types.Course) ([]*types.Course, error)
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Course, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*types.Course, error)
  GetByCodes(ctx context.Context, tx *gorm.DB, codes []string) ([]*types.Course, error)
  CodeExists(ctx context.Context, tx *gorm.DB, code string) (bool, error)
}

type courseRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
  repoLog := baseLog.With("repo", "CourseRepo")
  return &courseRepo{db: db, log: repoLog}
}

func (cr *courseRepo) Create(ctx context.Context, tx *gorm.DB, courses []*types.Course) ([]*types.Course, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  if len(courses) == 0 {
    return []*types.Course{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&courses).Error; err != nil {
    return nil, err
  }

  return courses, nil
}

func (cr *courseRepo) Update(ctx context.Context, tx *gorm.DB, courses []*types.Course) ([]*types.Course, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  if len(courses) == 0 {
    return []*types.Course{}, nil
  }

  for _, course := range courses {
    if err := transaction.WithContext(ctx).Save(course).Error; err != nil {
      return nil, err
    }
  }

  return courses, nil
}

func (cr *courseRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Course, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  results := []*types.Course{}

  if err := transaction.WithContext(ctx).
    Order("code ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (cr *courseRepo) GetByIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*types.Course, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  var results []*types.Course

  if len(courseIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", courseIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (cr *courseRepo) GetByCodes(ctx context.Context, tx *gorm.DB, codes []string) ([]*types.Course, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  var results []*types.Course

  if len(codes) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("code IN ?", codes).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (cr *courseRepo) CodeExists(ctx context.Context, tx *gorm.DB, code string) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  var count int64

  if err := transaction.WithContext(ctx).
    Model(&types.Course{}).
    Where("code = ?", code).
    Count(&count).Error; err != nil {
    return false, err
  }
  exists := count > 0
  return exists, nil
}
