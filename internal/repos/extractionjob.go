package repos

import (
  "context"
  "errors"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/gradpath/gradpath-backend/internal/logger"
  "github.com/gradpath/gradpath-backend/internal/types"
)

type ExtractionJobRepo interface {
  Create(ctx context.Context, tx *gorm.DB, jobs []*types.ExtractionJob) ([]*types.ExtractionJob, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ExtractionJob, error)
  ClaimNextPending(ctx context.Context, tx *gorm.DB) (*types.ExtractionJob, error)
  UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
}

type extractionJobRepo struct {
  db         *gorm.DB
  useLocking bool
  log        *logger.Logger
}

// NewExtractionJobRepo needs the database driver name: row locking with SKIP
// LOCKED only exists on postgres, sqlite serializes writers anyway.
func NewExtractionJobRepo(db *gorm.DB, driver string, baseLog *logger.Logger) ExtractionJobRepo {
  return &extractionJobRepo{
    db:         db,
    useLocking: driver == "postgres",
    log:        baseLog.With("repo", "ExtractionJobRepo"),
  }
}

func (r *extractionJobRepo) Create(ctx context.Context, tx *gorm.DB, jobs []*types.ExtractionJob) ([]*types.ExtractionJob, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if len(jobs) == 0 {
    return []*types.ExtractionJob{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&jobs).Error; err != nil {
    return nil, err
  }
  return jobs, nil
}

func (r *extractionJobRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ExtractionJob, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var out []*types.ExtractionJob
  if len(ids) == 0 {
    return out, nil
  }
  if err := transaction.WithContext(ctx).
    Where("id IN ?", ids).
    Find(&out).Error; err != nil {
    return nil, err
  }
  return out, nil
}

func (r *extractionJobRepo) ClaimNextPending(ctx context.Context, tx *gorm.DB) (*types.ExtractionJob, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  now := time.Now()
  var claimed *types.ExtractionJob
  err := transaction.WithContext(ctx).Transaction(func(txx *gorm.DB) error {
    var job types.ExtractionJob
    q := txx.Where("status = ?", types.ExtractionJobPending).
      Order("created_at ASC")
    if r.useLocking {
      q = q.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"})
    }
    qErr := q.First(&job).Error
    if errors.Is(qErr, gorm.ErrRecordNotFound) {
      return nil
    }
    if qErr != nil {
      return qErr
    }
    uErr := txx.Model(&types.ExtractionJob{}).
      Where("id = ?", job.ID).
      Updates(map[string]interface{}{
        "status":     types.ExtractionJobRunning,
        "attempts":   gorm.Expr("attempts + 1"),
        "started_at": now,
        "updated_at": now,
      }).Error
    if uErr != nil {
      return uErr
    }
    claimed = &job
    return nil
  })
  if err != nil {
    return nil, err
  }
  return claimed, nil
}

func (r *extractionJobRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if id == uuid.Nil {
    return nil
  }
  if updates == nil {
    updates = map[string]interface{}{}
  }
  if _, ok := updates["updated_at"]; !ok {
    updates["updated_at"] = time.Now()
  }
  return transaction.WithContext(ctx).
    Model(&types.ExtractionJob{}).
    Where("id = ?", id).
    Updates(updates).Error
}
