package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/gradpath/gradpath-backend/internal/logger"
  "github.com/gradpath/gradpath-backend/internal/types"
)

type UserCourseRepo interface {
  Create(ctx context.Context, tx *gorm.DB, userCourses []*types.UserCourse) ([]*types.UserCourse, error)
  Update(ctx context.Context, tx *gorm.DB, userCourses []*types.UserCourse) ([]*types.UserCourse, error)
  GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.UserCourse, error)
  GetByUserAndCourseIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, courseIDs []uuid.UUID) ([]*types.UserCourse, error)
}

type userCourseRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewUserCourseRepo(db *gorm.DB, baseLog *logger.Logger) UserCourseRepo {
  repoLog := baseLog.With("repo", "UserCourseRepo")
  return &userCourseRepo{db: db, log: repoLog}
}

func (ucr *userCourseRepo) Create(ctx context.Context, tx *gorm.DB, userCourses []*types.UserCourse) ([]*types.UserCourse, error) {
  transaction := tx
  if transaction == nil {
    transaction = ucr.db
  }

  if len(userCourses) == 0 {
    return []*types.UserCourse{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&userCourses).Error; err != nil {
    return nil, err
  }

  return userCourses, nil
}

func (ucr *userCourseRepo) Update(ctx context.Context, tx *gorm.DB, userCourses []*types.UserCourse) ([]*types.UserCourse, error) {
  transaction := tx
  if transaction == nil {
    transaction = ucr.db
  }

  if len(userCourses) == 0 {
    return []*types.UserCourse{}, nil
  }

  for _, userCourse := range userCourses {
    if err := transaction.WithContext(ctx).Save(userCourse).Error; err != nil {
      return nil, err
    }
  }

  return userCourses, nil
}

func (ucr *userCourseRepo) GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.UserCourse, error) {
  transaction := tx
  if transaction == nil {
    transaction = ucr.db
  }

  results := []*types.UserCourse{}

  if len(userIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id IN ?", userIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ucr *userCourseRepo) GetByUserAndCourseIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, courseIDs []uuid.UUID) ([]*types.UserCourse, error) {
  transaction := tx
  if transaction == nil {
    transaction = ucr.db
  }

  var results []*types.UserCourse

  if userID == uuid.Nil || len(courseIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND course_id IN ?", userID, courseIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
