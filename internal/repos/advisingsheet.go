package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/gradpath/gradpath-backend/internal/logger"
  "github.com/gradpath/gradpath-backend/internal/types"
)

type AdvisingSheetRepo interface {
  Create(ctx context.Context, tx *gorm.DB, sheets []*types.AdvisingSheet) ([]*types.AdvisingSheet, error)
  Update(ctx context.Context, tx *gorm.DB, sheets []*types.AdvisingSheet) ([]*types.AdvisingSheet, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, sheetIDs []uuid.UUID) ([]*types.AdvisingSheet, error)
  GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.AdvisingSheet, error)
}

type advisingSheetRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewAdvisingSheetRepo(db *gorm.DB, baseLog *logger.Logger) AdvisingSheetRepo {
  repoLog := baseLog.With("repo", "AdvisingSheetRepo")
  return &advisingSheetRepo{db: db, log: repoLog}
}

func (asr *advisingSheetRepo) Create(ctx context.Context, tx *gorm.DB, sheets []*types.AdvisingSheet) ([]*types.AdvisingSheet, error) {
  transaction := tx
  if transaction == nil {
    transaction = asr.db
  }

  if len(sheets) == 0 {
    return []*types.AdvisingSheet{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&sheets).Error; err != nil {
    return nil, err
  }

  return sheets, nil
}

func (asr *advisingSheetRepo) Update(ctx context.Context, tx *gorm.DB, sheets []*types.AdvisingSheet) ([]*types.AdvisingSheet, error) {
  transaction := tx
  if transaction == nil {
    transaction = asr.db
  }

  if len(sheets) == 0 {
    return []*types.AdvisingSheet{}, nil
  }

  for _, sheet := range sheets {
    if err := transaction.WithContext(ctx).Save(sheet).Error; err != nil {
      return nil, err
    }
  }

  return sheets, nil
}

func (asr *advisingSheetRepo) GetByIDs(ctx context.Context, tx *gorm.DB, sheetIDs []uuid.UUID) ([]*types.AdvisingSheet, error) {
  transaction := tx
  if transaction == nil {
    transaction = asr.db
  }

  var results []*types.AdvisingSheet

  if len(sheetIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", sheetIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (asr *advisingSheetRepo) GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.AdvisingSheet, error) {
  transaction := tx
  if transaction == nil {
    transaction = asr.db
  }

  results := []*types.AdvisingSheet{}

  if len(userIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id IN ?", userIDs).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
