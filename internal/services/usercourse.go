package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gradpath/gradpath-backend/internal/logger"
	"github.com/gradpath/gradpath-backend/internal/normalization"
	"github.com/gradpath/gradpath-backend/internal/repos"
	"github.com/gradpath/gradpath-backend/internal/requestdata"
	"github.com/gradpath/gradpath-backend/internal/types"
)

var ErrCourseNotFound = errors.New("Course not found")

// UserCourseView joins a completion record with its catalog course, which
// is the shape the frontend renders.
type UserCourseView struct {
	CourseID      uuid.UUID `json:"course_id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Credits       int       `json:"credits"`
	Required      bool      `json:"required"`
	Completed     bool      `json:"completed"`
	Grade         string    `json:"grade"`
	SemesterTaken string    `json:"semester_taken"`
}

type UserCourseInput struct {
	CourseCode    string `json:"course_code"`
	Completed     *bool  `json:"completed"`
	Grade         string `json:"grade"`
	SemesterTaken string `json:"semester_taken"`
}

type UserCourseService interface {
	ListForUser(ctx context.Context) ([]UserCourseView, error)
	UpsertForUser(ctx context.Context, input UserCourseInput) (*UserCourseView, error)
}

type userCourseService struct {
	db             *gorm.DB
	log            *logger.Logger
	courseRepo     repos.CourseRepo
	userCourseRepo repos.UserCourseRepo
}

func NewUserCourseService(
	db *gorm.DB,
	baseLog *logger.Logger,
	courseRepo repos.CourseRepo,
	userCourseRepo repos.UserCourseRepo,
) UserCourseService {
	serviceLog := baseLog.With("service", "UserCourseService")
	return &userCourseService{
		db:             db,
		log:            serviceLog,
		courseRepo:     courseRepo,
		userCourseRepo: userCourseRepo,
	}
}

func (ucs *userCourseService) ListForUser(ctx context.Context) ([]UserCourseView, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, fmt.Errorf("Request data not set in context")
	}

	records, err := ucs.userCourseRepo.GetByUserIDs(ctx, nil, []uuid.UUID{rd.UserID})
	if err != nil {
		return nil, fmt.Errorf("Failed to load user courses: %w", err)
	}

	courseIDs := make([]uuid.UUID, 0, len(records))
	for _, r := range records {
		courseIDs = append(courseIDs, r.CourseID)
	}
	courses, err := ucs.courseRepo.GetByIDs(ctx, nil, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("Failed to load courses for records: %w", err)
	}
	coursesByID := make(map[uuid.UUID]*types.Course, len(courses))
	for _, c := range courses {
		coursesByID[c.ID] = c
	}

	views := make([]UserCourseView, 0, len(records))
	for _, r := range records {
		course, ok := coursesByID[r.CourseID]
		if !ok {
			continue
		}
		views = append(views, viewFor(course, r))
	}
	sort.Slice(views, func(i, j int) bool { return views[i].Code < views[j].Code })
	return views, nil
}

func (ucs *userCourseService) UpsertForUser(ctx context.Context, input UserCourseInput) (*UserCourseView, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, fmt.Errorf("Request data not set in context")
	}

	code := NormalizeCourseCode(input.CourseCode)
	if code == "" {
		return nil, fmt.Errorf("Course code is required")
	}
	completed := true
	if input.Completed != nil {
		completed = *input.Completed
	}
	grade := normalization.TrimInputString(input.Grade)
	semester := normalization.TrimInputString(input.SemesterTaken)

	var view *UserCourseView
	err := ucs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		courses, cErr := ucs.courseRepo.GetByCodes(ctx, tx, []string{code})
		if cErr != nil {
			return fmt.Errorf("Failed to load course %q: %w", code, cErr)
		}
		if len(courses) == 0 {
			return ErrCourseNotFound
		}
		course := courses[0]

		existing, gErr := ucs.userCourseRepo.GetByUserAndCourseIDs(ctx, tx, rd.UserID, []uuid.UUID{course.ID})
		if gErr != nil {
			return fmt.Errorf("Failed to load existing record: %w", gErr)
		}

		var record *types.UserCourse
		if len(existing) > 0 {
			record = existing[0]
			record.Completed = completed
			record.Grade = grade
			record.SemesterTaken = semester
			if _, uErr := ucs.userCourseRepo.Update(ctx, tx, []*types.UserCourse{record}); uErr != nil {
				return fmt.Errorf("Failed to update user course: %w", uErr)
			}
		} else {
			record = &types.UserCourse{
				UserID:        rd.UserID,
				CourseID:      course.ID,
				Completed:     completed,
				Grade:         grade,
				SemesterTaken: semester,
			}
			if _, crErr := ucs.userCourseRepo.Create(ctx, tx, []*types.UserCourse{record}); crErr != nil {
				return fmt.Errorf("Failed to create user course: %w", crErr)
			}
		}

		v := viewFor(course, record)
		view = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func viewFor(course *types.Course, record *types.UserCourse) UserCourseView {
	return UserCourseView{
		CourseID:      course.ID,
		Code:          course.Code,
		Name:          course.Name,
		Credits:       course.Credits,
		Required:      course.Required,
		Completed:     record.Completed,
		Grade:         record.Grade,
		SemesterTaken: record.SemesterTaken,
	}
}
