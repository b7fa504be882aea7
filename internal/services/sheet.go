package services

import (
  "bytes"
  "context"
  "encoding/json"
  "errors"
  "fmt"
  "io"
  "path/filepath"
  "strings"
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/gradpath/gradpath-backend/internal/clients/gcp"
  "github.com/gradpath/gradpath-backend/internal/extraction"
  "github.com/gradpath/gradpath-backend/internal/logger"
  "github.com/gradpath/gradpath-backend/internal/repos"
  "github.com/gradpath/gradpath-backend/internal/requestdata"
  "github.com/gradpath/gradpath-backend/internal/storage"
  "github.com/gradpath/gradpath-backend/internal/types"
  "github.com/gradpath/gradpath-backend/internal/utils"
)

var (
  ErrUploadEmpty      = errors.New("Uploaded file is empty")
  ErrUploadTooLarge   = errors.New("Uploaded file is too large")
  ErrUploadBadType    = errors.New("Unsupported file type; upload pdf, csv, or txt")
  ErrUnreadableUpload = errors.New("Could not extract text from the uploaded file")
  ErrJobNotFound      = errors.New("Job not found")
)

var allowedUploadExtensions = map[string]bool{
  ".pdf": true,
  ".csv": true,
  ".txt": true,
}

type UploadInput struct {
  Filename string
  Data     []byte
}

type UploadResult struct {
  SheetID        uuid.UUID `json:"sheet_id"`
  CoursesFound   int       `json:"courses_found"`
  CoursesApplied int       `json:"courses_applied"`
  CoursesAdded   int       `json:"courses_added"`
}

type JobStatusView struct {
  JobID  uuid.UUID       `json:"job_id"`
  Status string          `json:"status"`
  Error  string          `json:"error,omitempty"`
  Result json.RawMessage `json:"result,omitempty"`
}

type SheetView struct {
  ID           uuid.UUID `json:"id"`
  Filename     string    `json:"filename"`
  CoursesFound int       `json:"courses_found"`
  UploadedAt   time.Time `json:"uploaded_at"`
}

// SheetService owns the advising sheet pipeline: validate, store,
// extract course rows, and fold them into the catalog and the caller's
// completion records. The sync upload route and the background worker
// run the same pipeline; the worker just reads the bytes back from
// storage first.
type SheetService interface {
  Upload(ctx context.Context, input UploadInput) (*UploadResult, error)
  EnqueueUpload(ctx context.Context, input UploadInput) (*types.ExtractionJob, error)
  JobStatus(ctx context.Context, jobID uuid.UUID) (*JobStatusView, error)
  ListSheets(ctx context.Context) ([]SheetView, error)
  ProcessJob(ctx context.Context, job *types.ExtractionJob) error
}

type sheetService struct {
  db                *gorm.DB
  log               *logger.Logger
  store             storage.Store
  document          gcp.Document
  courseRepo        repos.CourseRepo
  userCourseRepo    repos.UserCourseRepo
  sheetRepo         repos.AdvisingSheetRepo
  extractionJobRepo repos.ExtractionJobRepo
  maxUploadBytes    int64
}

func NewSheetService(
  db *gorm.DB,
  baseLog *logger.Logger,
  store storage.Store,
  document gcp.Document,
  courseRepo repos.CourseRepo,
  userCourseRepo repos.UserCourseRepo,
  sheetRepo repos.AdvisingSheetRepo,
  extractionJobRepo repos.ExtractionJobRepo,
) SheetService {
  serviceLog := baseLog.With("service", "SheetService")
  return &sheetService{
    db:                db,
    log:               serviceLog,
    store:             store,
    document:          document,
    courseRepo:        courseRepo,
    userCourseRepo:    userCourseRepo,
    sheetRepo:         sheetRepo,
    extractionJobRepo: extractionJobRepo,
    maxUploadBytes:    utils.GetEnvAsInt64("MAX_UPLOAD_BYTES", 16<<20, baseLog),
  }
}

func (ss *sheetService) Upload(ctx context.Context, input UploadInput) (*UploadResult, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, fmt.Errorf("Request data not set in context")
  }
  if vErr := ss.validateUpload(input); vErr != nil {
    return nil, vErr
  }

  key := storage.NewKey(input.Filename)
  if err := ss.store.Save(ctx, key, bytes.NewReader(input.Data)); err != nil {
    return nil, fmt.Errorf("Failed to store upload: %w", err)
  }
  return ss.extractAndApply(ctx, rd.UserID, input.Filename, key, input.Data)
}

func (ss *sheetService) EnqueueUpload(ctx context.Context, input UploadInput) (*types.ExtractionJob, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, fmt.Errorf("Request data not set in context")
  }
  if vErr := ss.validateUpload(input); vErr != nil {
    return nil, vErr
  }

  key := storage.NewKey(input.Filename)
  if err := ss.store.Save(ctx, key, bytes.NewReader(input.Data)); err != nil {
    return nil, fmt.Errorf("Failed to store upload: %w", err)
  }

  job := &types.ExtractionJob{
    UserID:     rd.UserID,
    Filename:   input.Filename,
    StorageKey: key,
    Status:     types.ExtractionJobPending,
  }
  if _, err := ss.extractionJobRepo.Create(ctx, nil, []*types.ExtractionJob{job}); err != nil {
    return nil, fmt.Errorf("Failed to enqueue extraction job: %w", err)
  }
  return job, nil
}

// JobStatus answers only for the owning user. A job that exists but
// belongs to someone else looks identical to one that never existed.
func (ss *sheetService) JobStatus(ctx context.Context, jobID uuid.UUID) (*JobStatusView, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, fmt.Errorf("Request data not set in context")
  }

  jobs, err := ss.extractionJobRepo.GetByIDs(ctx, nil, []uuid.UUID{jobID})
  if err != nil {
    return nil, fmt.Errorf("Failed to load job: %w", err)
  }
  if len(jobs) == 0 || jobs[0].UserID != rd.UserID {
    return nil, ErrJobNotFound
  }
  job := jobs[0]

  view := &JobStatusView{
    JobID:  job.ID,
    Status: job.Status,
    Error:  job.LastError,
  }
  if len(job.Result) > 0 {
    view.Result = json.RawMessage(job.Result)
  }
  return view, nil
}

func (ss *sheetService) ListSheets(ctx context.Context) ([]SheetView, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, fmt.Errorf("Request data not set in context")
  }

  sheets, err := ss.sheetRepo.GetByUserIDs(ctx, nil, []uuid.UUID{rd.UserID})
  if err != nil {
    return nil, fmt.Errorf("Failed to load advising sheets: %w", err)
  }
  views := make([]SheetView, 0, len(sheets))
  for _, s := range sheets {
    views = append(views, SheetView{
      ID:           s.ID,
      Filename:     s.Filename,
      CoursesFound: s.CoursesFound,
      UploadedAt:   s.CreatedAt,
    })
  }
  return views, nil
}

// ProcessJob runs a claimed job end to end and records the outcome on
// the job row. The returned error is for the worker's log only; the job
// row is already marked failed by the time it is non-nil.
func (ss *sheetService) ProcessJob(ctx context.Context, job *types.ExtractionJob) error {
  result, err := ss.processStoredUpload(ctx, job.UserID, job.Filename, job.StorageKey)
  if err != nil {
    ss.failJob(ctx, job.ID, err)
    return err
  }

  raw, mErr := json.Marshal(result)
  if mErr != nil {
    ss.failJob(ctx, job.ID, mErr)
    return fmt.Errorf("Failed to encode job result: %w", mErr)
  }
  fields := map[string]interface{}{
    "status":      types.ExtractionJobComplete,
    "sheet_id":    result.SheetID,
    "result":      datatypes.JSON(raw),
    "last_error":  "",
    "finished_at": time.Now(),
  }
  if uErr := ss.extractionJobRepo.UpdateFields(ctx, nil, job.ID, fields); uErr != nil {
    return fmt.Errorf("Failed to mark job complete: %w", uErr)
  }
  return nil
}

func (ss *sheetService) failJob(ctx context.Context, jobID uuid.UUID, cause error) {
  fields := map[string]interface{}{
    "status":      types.ExtractionJobFailed,
    "last_error":  cause.Error(),
    "finished_at": time.Now(),
  }
  if err := ss.extractionJobRepo.UpdateFields(ctx, nil, jobID, fields); err != nil {
    ss.log.Error("Failed to mark job failed", "job_id", jobID, "error", err)
  }
}

func (ss *sheetService) processStoredUpload(ctx context.Context, userID uuid.UUID, filename, key string) (*UploadResult, error) {
  rc, err := ss.store.Open(ctx, key)
  if err != nil {
    return nil, fmt.Errorf("Failed to open stored upload: %w", err)
  }
  defer rc.Close()
  data, err := io.ReadAll(rc)
  if err != nil {
    return nil, fmt.Errorf("Failed to read stored upload: %w", err)
  }
  return ss.extractAndApply(ctx, userID, filename, key, data)
}

func (ss *sheetService) validateUpload(input UploadInput) error {
  if len(input.Data) == 0 {
    return ErrUploadEmpty
  }
  if int64(len(input.Data)) > ss.maxUploadBytes {
    return ErrUploadTooLarge
  }
  ext := strings.ToLower(filepath.Ext(input.Filename))
  if !allowedUploadExtensions[ext] {
    return ErrUploadBadType
  }
  return nil
}

func (ss *sheetService) extractAndApply(ctx context.Context, userID uuid.UUID, filename, key string, data []byte) (*UploadResult, error) {
  courses, err := ss.extractCourses(ctx, filename, mimeTypeForName(filename), data)
  if err != nil {
    return nil, err
  }
  return ss.applyCourses(ctx, userID, filename, key, courses)
}

// extractCourses runs the local text pass first and falls back to
// Document AI when it is configured and the local pass produced no
// course rows. Zero rows from a readable file is a legitimate outcome.
func (ss *sheetService) extractCourses(ctx context.Context, filename, mimeType string, data []byte) ([]extraction.ExtractedCourse, error) {
  text, extractErr := extraction.ExtractText(filename, mimeType, data)
  if extractErr != nil {
    ss.log.Warn("Local text extraction failed", "filename", filename, "error", extractErr)
    text = ""
  }
  courses := extraction.ParseCourses(text)
  if len(courses) > 0 {
    return courses, nil
  }

  if ss.document == nil {
    if extractErr != nil {
      return nil, fmt.Errorf("%w: %v", ErrUnreadableUpload, extractErr)
    }
    return courses, nil
  }

  ocrText, ocrErr := ss.document.ProcessBytes(ctx, mimeType, data)
  if ocrErr != nil {
    ss.log.Warn("Document AI fallback failed", "filename", filename, "error", ocrErr)
    if extractErr != nil {
      return nil, fmt.Errorf("%w: %v", ErrUnreadableUpload, extractErr)
    }
    return courses, nil
  }
  return extraction.ParseCourses(ocrText), nil
}

func (ss *sheetService) applyCourses(ctx context.Context, userID uuid.UUID, filename, key string, found []extraction.ExtractedCourse) (*UploadResult, error) {
  var result *UploadResult
  err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    codes := make([]string, 0, len(found))
    for _, f := range found {
      codes = append(codes, f.Code)
    }
    existing, gErr := ss.courseRepo.GetByCodes(ctx, tx, codes)
    if gErr != nil {
      return fmt.Errorf("Failed to load catalog courses: %w", gErr)
    }
    byCode := make(map[string]*types.Course, len(existing))
    for _, c := range existing {
      byCode[c.Code] = c
    }

    toCreate := []*types.Course{}
    for _, f := range found {
      if _, ok := byCode[f.Code]; ok {
        continue
      }
      course := &types.Course{
        Code:     f.Code,
        Name:     f.Name,
        Credits:  f.Credits,
        Required: f.Required,
      }
      if sErr := course.SetPrerequisiteCodes(nil); sErr != nil {
        return fmt.Errorf("Failed to encode prerequisites: %w", sErr)
      }
      toCreate = append(toCreate, course)
      byCode[f.Code] = course
    }
    if len(toCreate) > 0 {
      if _, cErr := ss.courseRepo.Create(ctx, tx, toCreate); cErr != nil {
        return fmt.Errorf("Failed to create catalog courses: %w", cErr)
      }
    }

    courseIDs := make([]uuid.UUID, 0, len(found))
    for _, f := range found {
      courseIDs = append(courseIDs, byCode[f.Code].ID)
    }
    existingRecords, rErr := ss.userCourseRepo.GetByUserAndCourseIDs(ctx, tx, userID, courseIDs)
    if rErr != nil {
      return fmt.Errorf("Failed to load existing records: %w", rErr)
    }
    recordsByCourse := make(map[uuid.UUID]*types.UserCourse, len(existingRecords))
    for _, r := range existingRecords {
      recordsByCourse[r.CourseID] = r
    }

    newRecords := []*types.UserCourse{}
    changedRecords := []*types.UserCourse{}
    for _, f := range found {
      course := byCode[f.Code]
      if rec, ok := recordsByCourse[course.ID]; ok {
        // A sheet row never clears a grade the student entered by hand.
        rec.Completed = f.Completed
        rec.SemesterTaken = f.SemesterTaken
        changedRecords = append(changedRecords, rec)
      } else {
        newRecords = append(newRecords, &types.UserCourse{
          UserID:        userID,
          CourseID:      course.ID,
          Completed:     f.Completed,
          SemesterTaken: f.SemesterTaken,
        })
      }
    }
    if len(newRecords) > 0 {
      if _, crErr := ss.userCourseRepo.Create(ctx, tx, newRecords); crErr != nil {
        return fmt.Errorf("Failed to create user courses: %w", crErr)
      }
    }
    if len(changedRecords) > 0 {
      if _, uErr := ss.userCourseRepo.Update(ctx, tx, changedRecords); uErr != nil {
        return fmt.Errorf("Failed to update user courses: %w", uErr)
      }
    }

    parsed, pErr := json.Marshal(found)
    if pErr != nil {
      return fmt.Errorf("Failed to encode parsed payload: %w", pErr)
    }
    sheet := &types.AdvisingSheet{
      UserID:       userID,
      Filename:     filename,
      StorageKey:   key,
      ParsedData:   datatypes.JSON(parsed),
      CoursesFound: len(found),
    }
    if _, shErr := ss.sheetRepo.Create(ctx, tx, []*types.AdvisingSheet{sheet}); shErr != nil {
      return fmt.Errorf("Failed to create advising sheet: %w", shErr)
    }

    result = &UploadResult{
      SheetID:        sheet.ID,
      CoursesFound:   len(found),
      CoursesApplied: len(newRecords) + len(changedRecords),
      CoursesAdded:   len(toCreate),
    }
    return nil
  })
  if err != nil {
    return nil, err
  }
  return result, nil
}

func mimeTypeForName(name string) string {
  switch strings.ToLower(filepath.Ext(name)) {
  case ".pdf":
    return "application/pdf"
  case ".csv":
    return "text/csv"
  case ".txt":
    return "text/plain"
  default:
    return ""
  }
}
