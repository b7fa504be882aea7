package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gradpath/gradpath-backend/internal/journey"
	"github.com/gradpath/gradpath-backend/internal/logger"
	"github.com/gradpath/gradpath-backend/internal/repos"
	"github.com/gradpath/gradpath-backend/internal/requestdata"
)

// JourneyService feeds catalog and completion snapshots to the journey
// engine. All graph and progress semantics live in internal/journey;
// this service only loads data and hands the payload through untouched.
type JourneyService interface {
	Progress(ctx context.Context) (*journey.Progress, error)
	Graph(ctx context.Context) (*journey.Graph, error)
}

type journeyService struct {
	db             *gorm.DB
	log            *logger.Logger
	courseRepo     repos.CourseRepo
	userCourseRepo repos.UserCourseRepo
}

func NewJourneyService(
	db *gorm.DB,
	baseLog *logger.Logger,
	courseRepo repos.CourseRepo,
	userCourseRepo repos.UserCourseRepo,
) JourneyService {
	serviceLog := baseLog.With("service", "JourneyService")
	return &journeyService{
		db:             db,
		log:            serviceLog,
		courseRepo:     courseRepo,
		userCourseRepo: userCourseRepo,
	}
}

func (js *journeyService) Progress(ctx context.Context) (*journey.Progress, error) {
	catalog, records, err := js.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	progress, err := journey.CalculateProgress(catalog, records)
	if err != nil {
		return nil, fmt.Errorf("Failed to calculate progress: %w", err)
	}
	return &progress, nil
}

func (js *journeyService) Graph(ctx context.Context) (*journey.Graph, error) {
	catalog, records, err := js.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	graph, err := journey.BuildGraph(catalog, records)
	if err != nil {
		return nil, fmt.Errorf("Failed to build journey graph: %w", err)
	}
	return graph, nil
}

// loadSnapshot returns non-nil slices even when the catalog or the
// user's records are empty; nil means "no data" to the engine and is an
// error there.
func (js *journeyService) loadSnapshot(ctx context.Context) ([]journey.Course, []journey.CompletionRecord, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, nil, fmt.Errorf("Request data not set in context")
	}

	courses, err := js.courseRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("Failed to load course catalog: %w", err)
	}
	userCourses, err := js.userCourseRepo.GetByUserIDs(ctx, nil, []uuid.UUID{rd.UserID})
	if err != nil {
		return nil, nil, fmt.Errorf("Failed to load user courses: %w", err)
	}

	catalog := make([]journey.Course, 0, len(courses))
	codesByID := make(map[uuid.UUID]string, len(courses))
	for _, c := range courses {
		catalog = append(catalog, journey.Course{
			Code:          c.Code,
			Name:          c.Name,
			Credits:       c.Credits,
			Required:      c.Required,
			Prerequisites: c.PrerequisiteCodes(),
		})
		codesByID[c.ID] = c.Code
	}

	records := make([]journey.CompletionRecord, 0, len(userCourses))
	for _, uc := range userCourses {
		code, ok := codesByID[uc.CourseID]
		if !ok {
			continue
		}
		records = append(records, journey.CompletionRecord{
			CourseCode:    code,
			Completed:     uc.Completed,
			Grade:         uc.Grade,
			SemesterTaken: uc.SemesterTaken,
		})
	}
	return catalog, records, nil
}
