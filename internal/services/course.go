package services

import (
  "context"
  "errors"
  "fmt"
  "strings"

  "gorm.io/gorm"

  "github.com/gradpath/gradpath-backend/internal/logger"
  "github.com/gradpath/gradpath-backend/internal/repos"
  "github.com/gradpath/gradpath-backend/internal/types"
)

var ErrCourseExists = errors.New("A course with this code already exists")

// NormalizeCourseCode folds "cs  101" and "CS 101" into the same catalog
// key: uppercase, single spaces.
func NormalizeCourseCode(code string) string {
  return strings.Join(strings.Fields(strings.ToUpper(code)), " ")
}

type CourseInput struct {
  Code          string   `json:"code"`
  Name          string   `json:"name"`
  Credits       int      `json:"credits"`
  Required      *bool    `json:"required"`
  Prerequisites []string `json:"prerequisites"`
}

type CourseService interface {
  ListCourses(ctx context.Context) ([]*types.Course, error)
  CreateCourse(ctx context.Context, input CourseInput) (*types.Course, error)
}

type courseService struct {
  db         *gorm.DB
  log        *logger.Logger
  courseRepo repos.CourseRepo
}

func NewCourseService(
  db *gorm.DB,
  baseLog *logger.Logger,
  courseRepo repos.CourseRepo,
) CourseService {
  serviceLog := baseLog.With("service", "CourseService")
  return &courseService{
    db:         db,
    log:        serviceLog,
    courseRepo: courseRepo,
  }
}

func (cs *courseService) ListCourses(ctx context.Context) ([]*types.Course, error) {
  courses, err := cs.courseRepo.GetAll(ctx, nil)
  if err != nil {
    return nil, fmt.Errorf("Failed to list courses: %w", err)
  }
  return courses, nil
}

func (cs *courseService) CreateCourse(ctx context.Context, input CourseInput) (*types.Course, error) {
  code := NormalizeCourseCode(input.Code)
  name := strings.TrimSpace(input.Name)
  if code == "" {
    return nil, fmt.Errorf("Course code is required")
  }
  if name == "" {
    return nil, fmt.Errorf("Course name is required")
  }

  credits := input.Credits
  if credits == 0 {
    credits = 3
  }
  if credits < 1 || credits > 12 {
    return nil, fmt.Errorf("Credits must be between 1 and 12")
  }

  required := true
  if input.Required != nil {
    required = *input.Required
  }

  seen := map[string]bool{}
  prereqs := make([]string, 0, len(input.Prerequisites))
  for _, p := range input.Prerequisites {
    c := NormalizeCourseCode(p)
    if c == "" || c == code || seen[c] {
      continue
    }
    seen[c] = true
    prereqs = append(prereqs, c)
  }

  course := &types.Course{
    Code:     code,
    Name:     name,
    Credits:  credits,
    Required: required,
  }
  if err := course.SetPrerequisiteCodes(prereqs); err != nil {
    return nil, fmt.Errorf("Failed to encode prerequisites: %w", err)
  }

  err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    exists, exErr := cs.courseRepo.CodeExists(ctx, tx, code)
    if exErr != nil {
      return fmt.Errorf("Failed to check course code: %w", exErr)
    }
    if exists {
      return ErrCourseExists
    }
    if _, cErr := cs.courseRepo.Create(ctx, tx, []*types.Course{course}); cErr != nil {
      return fmt.Errorf("Failed to create course: %w", cErr)
    }
    return nil
  })
  if err != nil {
    return nil, err
  }
  return course, nil
}
